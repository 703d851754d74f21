package versionstore

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "zappy/internal/errors"
)

func openTestSQLite(t *testing.T, path string) *SQLiteBackend {
	t.Helper()
	backend, err := OpenSQLite(context.Background(), path)
	require.NoError(t, err)
	t.Cleanup(func() { _ = backend.Close() })
	return backend
}

func TestSQLiteEmptyDatabase(t *testing.T) {
	backend := openTestSQLite(t, filepath.Join(t.TempDir(), "state", "versions.db"))

	log, err := backend.Load(context.Background())
	require.NoError(t, err)
	assert.Empty(t, log)
}

func TestSQLiteBumpPersistsAcrossRestart(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "versions.db")

	first, err := OpenSQLite(ctx, path)
	require.NoError(t, err)
	store := New(first, nil)
	for k := 1; k <= 3; k++ {
		version, err := store.Bump(ctx, "ExampleApp")
		require.NoError(t, err)
		require.Equal(t, k, version)
	}
	_, err = store.Bump(ctx, "Other")
	require.NoError(t, err)
	require.NoError(t, first.Close())

	restarted := New(openTestSQLite(t, path), nil)
	version, err := restarted.Bump(ctx, "ExampleApp")
	require.NoError(t, err)
	assert.Equal(t, 4, version)

	log, err := restarted.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, VersionLog{"ExampleApp": 4, "Other": 1}, log)
}

func TestSQLiteSaveReplacesAllRows(t *testing.T) {
	ctx := context.Background()
	backend := openTestSQLite(t, filepath.Join(t.TempDir(), "versions.db"))

	require.NoError(t, backend.Save(ctx, VersionLog{"a": 1, "b": 2}))
	require.NoError(t, backend.Save(ctx, VersionLog{"b": 3}))

	log, err := backend.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, VersionLog{"b": 3}, log)
}

func TestSQLiteInvalidRowIsCorrupt(t *testing.T) {
	ctx := context.Background()
	backend := openTestSQLite(t, filepath.Join(t.TempDir(), "versions.db"))

	_, err := backend.db.ExecContext(ctx, `INSERT INTO versions (app_name, version) VALUES ('a', 0)`)
	require.NoError(t, err)

	_, err = backend.Load(ctx)
	require.Error(t, err)
	assert.True(t, apperrors.IsStorageCorrupt(err), "got %v", err)
}

func TestSQLiteGarbageFileIsCorrupt(t *testing.T) {
	path := filepath.Join(t.TempDir(), "versions.db")
	require.NoError(t, os.WriteFile(path, bytes.Repeat([]byte("not a database "), 256), 0o644))

	_, err := OpenSQLite(context.Background(), path)
	require.Error(t, err)
	assert.True(t, apperrors.IsStorageCorrupt(err), "got %v", err)
}
