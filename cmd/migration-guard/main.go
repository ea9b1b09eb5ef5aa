// Package main is the entry point for migration-guard.
//
// Run it from the repository root with no arguments. Exit codes:
// 0 = no migrations or all checks passed, 1 = violations, 2 = guard failure.
//
// Import Path: migguard.io/guard/cmd/migration-guard
package main

import (
	"context"
	"fmt"
	"os"

	"go.uber.org/zap"

	"migguard.io/guard/internal/app"
	"migguard.io/guard/internal/config"
	apperrors "migguard.io/guard/internal/pkg/errors"
	"migguard.io/guard/internal/pkg/logger"
)

func main() {
	code, err := run(os.Args[1:])
	if err != nil {
		fmt.Fprintf(os.Stderr, "migration-guard: %v\n", err)
		os.Exit(apperrors.ExitCodeOf(err))
	}
	os.Exit(code)
}

func run(args []string) (int, error) {
	if len(args) > 0 {
		return 0, apperrors.New(apperrors.CodeConfigInvalid,
			"unexpected arguments; run from the repository root without arguments and configure via migration-guard.yaml or MIGRATION_GUARD_* variables")
	}

	cfg, err := config.Load()
	if err != nil {
		return 0, fmt.Errorf("load config: %w", err)
	}

	if err := logger.Init(cfg.Log.Level, cfg.Log.Format); err != nil {
		return 0, fmt.Errorf("init logger: %w", err)
	}
	defer logger.Sync()

	root, err := os.Getwd()
	if err != nil {
		return 0, fmt.Errorf("resolve working directory: %w", err)
	}

	application, err := app.Bootstrap(cfg)
	if err != nil {
		return 0, fmt.Errorf("bootstrap: %w", err)
	}

	logger.Debug("Starting migration guard",
		zap.String("root", root),
		zap.Strings("candidates", cfg.Guard.Candidates),
		zap.String("suppression_scope", cfg.Guard.Exception.Scope),
	)

	return application.Run(context.Background(), root, os.Stdout)
}
