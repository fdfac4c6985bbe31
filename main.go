package main

import (
	"context"
	"errors"
	"io/fs"
	"os"
	"os/signal"
	"syscall"

	"github.com/robmorgan/showtape/config"
	"github.com/robmorgan/showtape/logger"
	"github.com/robmorgan/showtape/show"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cmd := newRootCommand()
	if err := cmd.ExecuteContext(ctx); err != nil {
		logger.GetProjectLogger().Error(err)
		os.Exit(exitStatus(err))
	}
}

// exitStatus maps an error to the sysexits-style status the olad tools use.
func exitStatus(err error) int {
	var usage *config.UsageError
	switch {
	case errors.As(err, &usage):
		return ExitUsage
	case errors.Is(err, fs.ErrNotExist) || errors.Is(err, fs.ErrPermission):
		return ExitNoInput
	case errors.Is(err, show.ErrCorrupt):
		return ExitDataErr
	}
	return 1
}
