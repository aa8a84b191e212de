// Package main is the entry point for the attractor viewer.
//
// Usage:
//
//	attractor [flags] [first-trajectory first-section second-trajectory second-section]
//
// The four dataset directories are resolved under the configured data root.
// Either all four are given or none.
package main

import (
	"errors"
	"fmt"
	"os"

	"go.uber.org/zap"

	"github.com/Faultbox/attractor-viewer/internal/attractor"
	"github.com/Faultbox/attractor-viewer/internal/config"
	"github.com/Faultbox/attractor-viewer/internal/engine/shader"
	"github.com/Faultbox/attractor-viewer/internal/logger"
	"github.com/Faultbox/attractor-viewer/internal/viewer"
)

// Exit codes.
const (
	exitOK       = 0
	exitFailure  = 1
	exitShader   = 2
	exitDataFile = 4
)

func main() {
	os.Exit(run())
}

// exitCode maps a startup error to the process exit code.
func exitCode(err error) int {
	switch {
	case err == nil:
		return exitOK
	case errors.Is(err, attractor.ErrDataFile):
		return exitDataFile
	case errors.Is(err, shader.ErrCompile), errors.Is(err, shader.ErrLink):
		return exitShader
	default:
		return exitFailure
	}
}

func run() int {
	// Parse CLI flags first
	config.ParseFlags()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Config error: %v\n", err)
		return exitFailure
	}

	if err := logger.Init(cfg.Logging.Level, cfg.Logging.LogFile); err != nil {
		fmt.Fprintf(os.Stderr, "Logger error: %v\n", err)
		return exitFailure
	}
	defer logger.Sync()

	logger.Info("=== Attractor Viewer ===")
	logger.Sugar.Debugf("Config: %+v", cfg)
	if args := config.IgnoredArgs(); args != nil {
		logger.Debug("positional arguments ignored, expected exactly four dataset directories",
			zap.Strings("args", args))
	}
	if config.SaveRequested() {
		if err := cfg.Save(); err != nil {
			logger.Warn("failed to save config", zap.Error(err))
		} else {
			logger.Info("config saved", zap.String("dir", config.ConfigDir()))
		}
	}

	v, err := viewer.New(cfg)
	if err != nil {
		logger.Error("failed to start viewer", zap.Error(err))
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return exitCode(err)
	}
	defer v.Close()

	if err := v.Run(); err != nil {
		logger.Error("viewer error", zap.Error(err))
		return exitFailure
	}

	logger.Info("viewer closed normally")
	return exitOK
}
