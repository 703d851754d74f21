package versionstore

import (
	"context"
	"unicode/utf8"

	apperrors "zappy/internal/errors"
	"zappy/internal/logger"
)

const moduleName = "versionstore"

// Store exposes get-and-increment semantics over a Backend.
type Store struct {
	backend Backend
	log     logger.Logger
}

// New creates a Store. A nil logger discards diagnostics.
func New(backend Backend, log logger.Logger) *Store {
	if log == nil {
		log = logger.Nop()
	}
	return &Store{
		backend: backend,
		log:     log.With(logger.String("module", moduleName), logger.String("store", backend.Location())),
	}
}

// Location describes where the log is persisted.
func (s *Store) Location() string {
	return s.backend.Location()
}

// Load returns the full persisted log, or an empty one when nothing is stored.
func (s *Store) Load(ctx context.Context) (VersionLog, error) {
	log, err := s.backend.Load(ctx)
	if err != nil {
		return nil, annotate(err, "load")
	}
	return log, nil
}

// Save validates and persists the full log.
func (s *Store) Save(ctx context.Context, log VersionLog) error {
	if err := log.Validate(); err != nil {
		return apperrors.ValidationError(apperrors.CodeInvalidVersion, "refusing to save invalid version log", err).
			WithOperation("save").WithModule(moduleName)
	}
	if err := s.backend.Save(ctx, log); err != nil {
		return annotate(err, "save")
	}
	return nil
}

// Bump loads the log, increments name's version, saves the log and returns
// the new version. The first Bump for an unseen name returns 1.
func (s *Store) Bump(ctx context.Context, name string) (int, error) {
	if name == "" {
		return 0, apperrors.ValidationError(apperrors.CodeEmptyAppName, "application name must not be empty", nil).
			WithOperation("bump").WithModule(moduleName)
	}
	if !utf8.ValidString(name) {
		return 0, apperrors.ValidationError(apperrors.CodeInvalidAppName, "application name must be valid UTF-8", nil).
			WithOperation("bump").WithModule(moduleName).WithField("app", name)
	}

	log, err := s.Load(ctx)
	if err != nil {
		return 0, err
	}

	version := log.Next(name)
	log[name] = version

	if err := s.Save(ctx, log); err != nil {
		return 0, err
	}

	s.log.DebugContext(ctx, "version bumped", logger.String("app", name), logger.Int("version", version))
	return version, nil
}

// Current returns name's stored version without modifying the log.
func (s *Store) Current(ctx context.Context, name string) (int, bool, error) {
	log, err := s.Load(ctx)
	if err != nil {
		return 0, false, err
	}
	version, ok := log[name]
	return version, ok, nil
}

func annotate(err error, operation string) error {
	if appErr, ok := apperrors.As(err); ok {
		if appErr.Operation == "" {
			appErr.Operation = operation
		}
		if appErr.Module == "" {
			appErr.Module = moduleName
		}
	}
	return err
}
