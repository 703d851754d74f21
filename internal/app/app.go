package app

import (
	"context"
	"io"

	"github.com/spf13/afero"

	"zappy/internal/config"
	"zappy/internal/logger"
	"zappy/internal/runner"
	"zappy/internal/ui"
	"zappy/internal/versionstore"
)

// App bundles a configured run wrapper with the resources it owns.
type App struct {
	Store   *versionstore.Store
	Wrapper *runner.Wrapper
	closers []io.Closer
}

// Options overrides the process defaults, mainly for tests.
type Options struct {
	// Stdout receives the banner, error line and separator.
	Stdout io.Writer
	// Fs backs the JSON store. Nil means the OS filesystem.
	Fs afero.Fs
	// Logger replaces the coloured stderr logger built from cfg.
	Logger logger.Logger
}

// New assembles the store, printer and wrapper described by cfg.
func New(ctx context.Context, cfg *config.Config, opts Options) (*App, error) {
	if cfg == nil {
		cfg = config.Default()
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	log := opts.Logger
	if log == nil {
		log = logger.NewColoredLogger(logger.WithLevel(cfg.LogLevel()))
	}

	a := &App{}

	var backend versionstore.Backend
	switch cfg.Store.Backend {
	case config.BackendSQLite:
		sqlite, err := versionstore.OpenSQLite(ctx, cfg.Store.Path)
		if err != nil {
			return nil, err
		}
		a.closers = append(a.closers, sqlite)
		backend = sqlite
	default:
		backend = versionstore.NewJSONFileBackend(opts.Fs, cfg.Store.Path)
	}

	a.Store = versionstore.New(backend, log)
	a.Wrapper = runner.New(a.Store, ui.NewPrinter(opts.Stdout, cfg.Output.Color), log)

	log.Debug("run wrapper ready (backend=%s, store=%s)", cfg.Store.Backend, a.Store.Location())
	return a, nil
}

// Run executes logic under appName through the wrapper.
func (a *App) Run(ctx context.Context, appName string, logic func() error) (runner.Result, error) {
	return a.Wrapper.RunFunc(ctx, appName, logic)
}

// Close releases backend resources.
func (a *App) Close() error {
	var first error
	for _, c := range a.closers {
		if err := c.Close(); err != nil && first == nil {
			first = err
		}
	}
	return first
}
