package versionstore

import (
	"context"
	"database/sql"
	"os"
	"path/filepath"

	"github.com/pkg/errors"
	"modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"

	apperrors "zappy/internal/errors"
)

const schema = `CREATE TABLE IF NOT EXISTS versions (
	app_name TEXT PRIMARY KEY,
	version  INTEGER NOT NULL
)`

// SQLiteBackend keeps the log in a single SQLite table.
// Save rewrites every row inside one transaction, matching the whole-log
// semantics of the JSON backend.
type SQLiteBackend struct {
	db       *sql.DB
	location string
}

// NewSQLiteBackend wires a SQLite-backed Backend around an open database.
// Bootstrap must be called before first use.
func NewSQLiteBackend(db *sql.DB, location string) *SQLiteBackend {
	return &SQLiteBackend{db: db, location: location}
}

// OpenSQLite opens (creating if needed) the database file at path and
// prepares the schema.
func OpenSQLite(ctx context.Context, path string) (*SQLiteBackend, error) {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, dirPerm); err != nil {
			return nil, apperrors.StorageWriteError("failed to create version database directory",
				errors.Wrapf(err, "mkdir %s", dir)).WithField("path", path)
		}
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, apperrors.StorageReadError("failed to open version database", err).WithField("path", path)
	}
	db.SetMaxOpenConns(1)

	backend := NewSQLiteBackend(db, path)
	if err := backend.Bootstrap(ctx); err != nil {
		_ = db.Close()
		return nil, err
	}
	return backend, nil
}

// Bootstrap creates the versions table when missing.
func (b *SQLiteBackend) Bootstrap(ctx context.Context) error {
	if _, err := b.db.ExecContext(ctx, schema); err != nil {
		return b.classify(err, "failed to prepare version database", apperrors.StorageWriteError)
	}
	return nil
}

// Location returns the database path.
func (b *SQLiteBackend) Location() string {
	return b.location
}

// Load reads every row into a VersionLog.
func (b *SQLiteBackend) Load(ctx context.Context) (VersionLog, error) {
	rows, err := b.db.QueryContext(ctx, `SELECT app_name, version FROM versions`)
	if err != nil {
		return nil, b.classify(err, "failed to read version database", apperrors.StorageReadError)
	}
	defer rows.Close()

	log := VersionLog{}
	for rows.Next() {
		var (
			name    string
			version int
		)
		if err := rows.Scan(&name, &version); err != nil {
			return nil, apperrors.StorageCorruptError("version database row is malformed", err).
				WithField("path", b.location)
		}
		log[name] = version
	}
	if err := rows.Err(); err != nil {
		return nil, b.classify(err, "failed to read version database", apperrors.StorageReadError)
	}

	if err := log.Validate(); err != nil {
		return nil, apperrors.StorageCorruptError("version database is malformed", err).
			WithField("path", b.location)
	}
	return log, nil
}

// Save replaces all rows with the content of log.
func (b *SQLiteBackend) Save(ctx context.Context, log VersionLog) (err error) {
	tx, err := b.db.BeginTx(ctx, nil)
	if err != nil {
		return b.classify(err, "failed to begin version database transaction", apperrors.StorageWriteError)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	if _, err = tx.ExecContext(ctx, `DELETE FROM versions`); err != nil {
		return b.classify(err, "failed to clear version database", apperrors.StorageWriteError)
	}
	for _, name := range log.Names() {
		if _, err = tx.ExecContext(ctx, `INSERT INTO versions (app_name, version) VALUES (?, ?)`, name, log[name]); err != nil {
			return b.classify(err, "failed to write version database", apperrors.StorageWriteError)
		}
	}
	if err = tx.Commit(); err != nil {
		return b.classify(err, "failed to commit version database", apperrors.StorageWriteError)
	}
	return nil
}

// Close releases the database handle.
func (b *SQLiteBackend) Close() error {
	return b.db.Close()
}

func (b *SQLiteBackend) classify(err error, message string, fallback func(string, error) *apperrors.AppError) error {
	var sqliteErr *sqlite.Error
	if errors.As(err, &sqliteErr) {
		switch sqliteErr.Code() & 0xff {
		case sqlite3.SQLITE_NOTADB, sqlite3.SQLITE_CORRUPT:
			return apperrors.StorageCorruptError("version database is malformed", err).
				WithField("path", b.location)
		}
	}
	return fallback(message, err).WithField("path", b.location)
}

var _ Backend = (*SQLiteBackend)(nil)
