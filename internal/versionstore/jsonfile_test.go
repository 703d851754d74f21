package versionstore

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "zappy/internal/errors"
)

func TestJSONLoadMissingFileIsEmpty(t *testing.T) {
	b := NewJSONFileBackend(afero.NewMemMapFs(), "")
	assert.Equal(t, DefaultPath, b.Location())

	log, err := b.Load(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, log)
	assert.Empty(t, log)
}

func TestJSONSaveWritesIndentedSortedObject(t *testing.T) {
	fs := afero.NewMemMapFs()
	b := NewJSONFileBackend(fs, DefaultPath)

	require.NoError(t, b.Save(context.Background(), VersionLog{"beta": 2, "Alpha": 12}))

	data, err := afero.ReadFile(fs, DefaultPath)
	require.NoError(t, err)
	assert.Equal(t, "{\n    \"Alpha\": 12,\n    \"beta\": 2\n}\n", string(data))

	info, err := fs.Stat(DefaultPath)
	require.NoError(t, err)
	assert.Equal(t, filePerm, info.Mode().Perm())

	entries, err := afero.ReadDir(fs, filepath.Dir(DefaultPath))
	require.NoError(t, err)
	assert.Len(t, entries, 1, "temporary files must not be left behind")
}

func TestJSONSaveEmptyLog(t *testing.T) {
	fs := afero.NewMemMapFs()
	b := NewJSONFileBackend(fs, "state/log.json")

	require.NoError(t, b.Save(context.Background(), nil))
	data, err := afero.ReadFile(fs, "state/log.json")
	require.NoError(t, err)
	assert.Equal(t, "{}\n", string(data))
}

func TestJSONRoundTripIsStable(t *testing.T) {
	ctx := context.Background()
	fs := afero.NewMemMapFs()
	b := NewJSONFileBackend(fs, DefaultPath)
	require.NoError(t, b.Save(ctx, VersionLog{"ExampleApp": 3, "café <&>": 1}))

	before, err := afero.ReadFile(fs, DefaultPath)
	require.NoError(t, err)

	loaded, err := b.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, VersionLog{"ExampleApp": 3, "café <&>": 1}, loaded)

	require.NoError(t, b.Save(ctx, loaded))
	after, err := afero.ReadFile(fs, DefaultPath)
	require.NoError(t, err)
	assert.Equal(t, string(before), string(after))
}

func TestJSONLoadAcceptsForeignFormatting(t *testing.T) {
	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, DefaultPath, []byte(`{"b": 2, "a": 7}`), 0o644))

	log, err := NewJSONFileBackend(fs, DefaultPath).Load(context.Background())
	require.NoError(t, err)
	assert.Equal(t, VersionLog{"a": 7, "b": 2}, log)
}

func TestJSONLoadRejectsMalformedContent(t *testing.T) {
	cases := map[string]string{
		"empty file":      "",
		"whitespace":      "  \n",
		"truncated":       `{"a": 1`,
		"not an object":   `[1, 2]`,
		"null document":   `null`,
		"string value":    `{"a": "1"}`,
		"float value":     `{"a": 1.5}`,
		"zero value":      `{"a": 0}`,
		"negative value":  `{"a": -2}`,
		"null value":      `{"a": null}`,
		"empty name":      `{"": 1}`,
		"trailing data":   `{"a": 1} {}`,
		"unquoted string": `{a: 1}`,
	}

	for name, content := range cases {
		t.Run(name, func(t *testing.T) {
			fs := afero.NewMemMapFs()
			require.NoError(t, afero.WriteFile(fs, DefaultPath, []byte(content), 0o644))

			_, err := NewJSONFileBackend(fs, DefaultPath).Load(context.Background())
			require.Error(t, err)
			assert.True(t, apperrors.IsStorageCorrupt(err), "got %v", err)
		})
	}
}

func TestJSONLoadReadFailure(t *testing.T) {
	dir := t.TempDir()

	_, err := NewJSONFileBackend(nil, dir).Load(context.Background())
	require.Error(t, err)
	assert.True(t, apperrors.IsStorageRead(err), "got %v", err)
	assert.False(t, apperrors.IsStorageCorrupt(err))
}

func TestJSONSaveReportsWriteFailure(t *testing.T) {
	fs := afero.NewReadOnlyFs(afero.NewMemMapFs())

	err := NewJSONFileBackend(fs, DefaultPath).Save(context.Background(), VersionLog{"a": 1})
	require.Error(t, err)
	assert.True(t, apperrors.IsStorageWrite(err), "got %v", err)
}

func TestJSONOnOSFilesystem(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "nested", "zappy", "debug_log.json")
	b := NewJSONFileBackend(nil, path)

	require.NoError(t, b.Save(ctx, VersionLog{"a": 1}))
	require.NoError(t, b.Save(ctx, VersionLog{"a": 2}))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "{\n    \"a\": 2\n}\n", string(data))
}
