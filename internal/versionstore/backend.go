package versionstore

import "context"

// Backend loads and saves the complete VersionLog.
//
// Load returns an empty, non-nil log when nothing has been stored yet and a
// StorageCorruptError when stored content cannot be trusted. Save replaces
// the stored log in full and reports failures as StorageWriteError.
type Backend interface {
	Load(ctx context.Context) (VersionLog, error)
	Save(ctx context.Context, log VersionLog) error
	// Location describes where the log lives, for diagnostics.
	Location() string
}
