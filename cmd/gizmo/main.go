// Package main is the entry point for the gizmo model viewer.
//
// Usage:
//
//	gizmo [flags] [model-path] [seconds]
//
// The viewer closes itself after the given number of seconds (10 by
// default, 0 disables the countdown). Space keeps it open.
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/sqweek/dialog"
	"go.uber.org/zap"

	"github.com/Faultbox/gizmo/internal/config"
	"github.com/Faultbox/gizmo/internal/logger"
	"github.com/Faultbox/gizmo/internal/viewer"
)

// Replaced in tests.
var (
	osExit     = os.Exit
	syncLogger = logger.Sync
)

func main() {
	config.ParseFlags()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Config error: %v\n", err)
		os.Exit(-1)
	}

	// A bad duration only falls back to the default; it is logged below.
	argErr := config.ApplyArgs(cfg, config.Args())
	var durErr *config.DurationError
	if argErr != nil && !errors.As(argErr, &durErr) {
		fmt.Fprintf(os.Stderr, "Usage error: %v\n", argErr)
		os.Exit(-1)
	}

	if err := logger.Init(cfg.Logging.Level, config.ExpandPath(cfg.Logging.LogFile)); err != nil {
		fmt.Fprintf(os.Stderr, "Logger error: %v\n", err)
		os.Exit(-1)
	}
	defer logger.Sync()

	logger.Info("=== gizmo ===")
	if durErr != nil {
		logger.Warn("invalid duration, using default",
			zap.String("value", durErr.Value),
			zap.Int("seconds", config.DefaultDuration),
		)
	}

	if config.PickRequested() {
		path, err := pickModel()
		if err != nil {
			if errors.Is(err, dialog.ErrCancelled) {
				logger.Info("no model chosen")
				return
			}
			fatal("file dialog failed", err)
		}
		cfg.Viewer.Model = path
	}

	if err := cfg.Validate(); err != nil {
		fatal("invalid configuration", err)
	}
	logger.Sugar.Debugf("Config: %+v", cfg)

	v, err := viewer.New(cfg)
	if err != nil {
		fatal("failed to create viewer", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	runErr := v.Run(ctx)
	stop()
	v.Close()

	if runErr != nil {
		fatal("viewer error", runErr)
	}
	logger.Info("viewer closed normally")
}

// fatal logs err, flushes the log file and exits with -1.
func fatal(msg string, err error) {
	logger.Error(msg, zap.Error(err))
	syncLogger()
	osExit(-1)
}

// pickModel asks for a model file with the native file dialog.
func pickModel() (string, error) {
	return dialog.File().
		Filter("glTF models", "gltf", "glb").
		Filter("All Files", "*").
		Title("Open Model").
		Load()
}
