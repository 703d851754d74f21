package runner

import (
	"context"
	"fmt"

	"github.com/pkg/errors"

	apperrors "zappy/internal/errors"
	"zappy/internal/errors/logging"
	"zappy/internal/logger"
	"zappy/internal/ui"
)

const moduleName = "runner"

// Logic is the application code executed by a Wrapper.
type Logic interface {
	Run() error
}

// LogicFunc adapts a plain function to Logic.
type LogicFunc func() error

// Run calls f.
func (f LogicFunc) Run() error {
	return f()
}

// VersionBumper hands out the next version for an application.
type VersionBumper interface {
	Bump(ctx context.Context, name string) (int, error)
}

// Sink receives the console output of a run.
type Sink interface {
	Banner(version int, appName string)
	ErrorLine(appName, message string)
	Separator()
}

// Result is the outcome of one wrapped invocation.
type Result struct {
	AppName string
	Version int
	// Err is the captured UserLogicError, nil on success.
	Err error
}

// OK reports whether the wrapped logic succeeded.
func (r Result) OK() bool {
	return r.Err == nil
}

// Wrapper bumps the version, prints the banner, runs logic, reports any
// failure and always closes with the separator.
type Wrapper struct {
	versions VersionBumper
	sink     Sink
	log      logger.Logger
}

// New builds a Wrapper. A nil sink prints to stdout in ColorAuto mode and a
// nil logger discards diagnostics.
func New(versions VersionBumper, sink Sink, log logger.Logger) *Wrapper {
	if sink == nil {
		sink = ui.NewPrinter(nil, ui.ColorAuto)
	}
	if log == nil {
		log = logger.Nop()
	}
	return &Wrapper{
		versions: versions,
		sink:     sink,
		log:      log.With(logger.String("module", moduleName)),
	}
}

// Run executes logic under appName.
//
// The returned error is non-nil only when the version could not be bumped;
// nothing is printed in that case. Failures of logic itself, returned errors
// and panics alike, are printed and carried in Result.Err.
func (w *Wrapper) Run(ctx context.Context, appName string, logic Logic) (Result, error) {
	version, err := w.versions.Bump(ctx, appName)
	if err != nil {
		return Result{AppName: appName}, errors.Wrapf(err, "bump version for %q", appName)
	}

	result := Result{AppName: appName, Version: version}
	w.sink.Banner(version, appName)

	if appErr := invoke(logic); appErr != nil {
		appErr.WithModule(moduleName).
			WithField("app", appName).
			WithField("version", version)
		w.sink.ErrorLine(appName, appErr.Cause())
		logging.Debug(ctx, w.log, "wrapped logic failed", appErr)
		result.Err = appErr
	}

	w.sink.Separator()
	return result, nil
}

// RunFunc is Run for a plain function.
func (w *Wrapper) RunFunc(ctx context.Context, appName string, fn func() error) (Result, error) {
	var logic Logic
	if fn != nil {
		logic = LogicFunc(fn)
	}
	return w.Run(ctx, appName, logic)
}

func invoke(logic Logic) (appErr *apperrors.AppError) {
	if logic == nil {
		return apperrors.UserLogicError("no logic supplied", nil).WithOperation("invoke")
	}

	defer func() {
		if r := recover(); r != nil {
			cause, ok := r.(error)
			if !ok {
				cause = errors.New(fmt.Sprint(r))
			}
			appErr = apperrors.UserLogicError("logic panicked", cause).
				WithOperation("invoke").
				WithField("panic", true)
		}
	}()

	if err := logic.Run(); err != nil {
		return apperrors.UserLogicError("logic returned an error", err).WithOperation("invoke")
	}
	return nil
}
