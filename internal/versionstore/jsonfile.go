package versionstore

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/pkg/errors"
	"github.com/spf13/afero"

	apperrors "zappy/internal/errors"
)

// DefaultPath is the version log location relative to the working directory.
const DefaultPath = "zappy/debug_log.json"

const (
	dirPerm  os.FileMode = 0o755
	filePerm os.FileMode = 0o644
)

// JSONFileBackend stores the log as an indented JSON object on an afero filesystem.
type JSONFileBackend struct {
	fs   afero.Fs
	path string
}

// NewJSONFileBackend returns a backend for path on fs. A nil fs means the OS
// filesystem and an empty path means DefaultPath.
func NewJSONFileBackend(fs afero.Fs, path string) *JSONFileBackend {
	if fs == nil {
		fs = afero.NewOsFs()
	}
	if path == "" {
		path = DefaultPath
	}
	return &JSONFileBackend{fs: fs, path: filepath.Clean(path)}
}

// Location returns the file path.
func (b *JSONFileBackend) Location() string {
	return b.path
}

// Load reads and decodes the file. A missing file yields an empty log.
func (b *JSONFileBackend) Load(_ context.Context) (VersionLog, error) {
	data, err := afero.ReadFile(b.fs, b.path)
	if err != nil {
		if os.IsNotExist(err) {
			return VersionLog{}, nil
		}
		return nil, apperrors.StorageReadError("failed to read version log",
			errors.Wrapf(err, "read %s", b.path)).WithField("path", b.path)
	}

	log, err := decodeLog(data)
	if err != nil {
		return nil, apperrors.StorageCorruptError("version log is malformed", err).
			WithField("path", b.path)
	}
	return log, nil
}

// Save writes the log to a temporary file in the same directory and renames
// it over the target, so the previous content survives a failed write.
func (b *JSONFileBackend) Save(_ context.Context, log VersionLog) error {
	data, err := encodeLog(log)
	if err != nil {
		return apperrors.StorageWriteError("failed to encode version log", err).WithField("path", b.path)
	}
	if err := b.writeAtomic(data); err != nil {
		return apperrors.StorageWriteError("failed to write version log", err).WithField("path", b.path)
	}
	return nil
}

func (b *JSONFileBackend) writeAtomic(data []byte) error {
	dir := filepath.Dir(b.path)
	if err := b.fs.MkdirAll(dir, dirPerm); err != nil {
		return errors.Wrapf(err, "mkdir %s", dir)
	}

	tmp, err := afero.TempFile(b.fs, dir, ".debug_log-*.tmp")
	if err != nil {
		return errors.Wrap(err, "create temp")
	}
	tmpPath := tmp.Name()
	committed := false
	defer func() {
		if !committed {
			_ = tmp.Close()
			_ = b.fs.Remove(tmpPath)
		}
	}()

	if _, err := tmp.Write(data); err != nil {
		return errors.Wrap(err, "write temp")
	}
	if err := tmp.Sync(); err != nil {
		return errors.Wrap(err, "sync temp")
	}
	if err := tmp.Close(); err != nil {
		return errors.Wrap(err, "close temp")
	}
	if err := b.fs.Chmod(tmpPath, filePerm); err != nil {
		return errors.Wrap(err, "chmod temp")
	}
	if err := b.fs.Rename(tmpPath, b.path); err != nil {
		return errors.Wrapf(err, "rename %s", b.path)
	}
	committed = true
	return nil
}

func decodeLog(data []byte) (VersionLog, error) {
	var log VersionLog
	if err := json.Unmarshal(data, &log); err != nil {
		return nil, errors.Wrap(err, "decode json")
	}
	if log == nil {
		return nil, errors.New("document is not a JSON object")
	}
	if err := log.Validate(); err != nil {
		return nil, err
	}
	return log, nil
}

func encodeLog(log VersionLog) ([]byte, error) {
	if log == nil {
		log = VersionLog{}
	}
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "    ")
	if err := enc.Encode(log); err != nil {
		return nil, errors.Wrap(err, "encode json")
	}
	return buf.Bytes(), nil
}

var _ Backend = (*JSONFileBackend)(nil)
