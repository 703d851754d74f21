package main

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/spf13/afero"

	"zappy/internal/app"
	"zappy/internal/config"
	apperrors "zappy/internal/errors"
	"zappy/internal/errors/logging"
	"zappy/internal/logger"
)

const appName = "ExampleApp"

func main() {
	log := logger.NewColoredLogger()
	os.Exit(run(context.Background(), log, config.DefaultFileName, os.Stdout, nil))
}

// run executes ExampleApp once and returns the process exit code.
func run(ctx context.Context, log logger.Logger, cfgPath string, stdout io.Writer, fs afero.Fs) int {
	cfg, err := config.Load(cfgPath)
	if err != nil {
		reportFailure(ctx, log, "Failed to load configuration", err)
		return 1
	}

	application, err := app.New(ctx, cfg, app.Options{Stdout: stdout, Fs: fs, Logger: log})
	if err != nil {
		reportFailure(ctx, log, "Failed to initialise run wrapper", err)
		return 1
	}

	code := 0
	if _, err := application.Run(ctx, appName, func() error {
		fmt.Fprintf(stdout, "Running logic for %s...\n", appName)
		return nil
	}); err != nil {
		reportFailure(ctx, log, "Run aborted", err)
		code = 1
	}

	if err := application.Close(); err != nil {
		reportFailure(ctx, log, "Failed to close run wrapper", err)
		code = 1
	}
	return code
}

// reportFailure logs err with its AppError fields when it carries one.
func reportFailure(ctx context.Context, log logger.Logger, msg string, err error) {
	if appErr, ok := apperrors.As(err); ok {
		logging.Error(ctx, log, msg, appErr)
		return
	}
	log.ErrorContext(ctx, msg, logger.Error(err))
}
