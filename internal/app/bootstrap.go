// Package app is the composition root: it turns a loaded Config into wired
// services and a renderer, and holds no logic of its own.
package app

import (
	"fmt"

	"github.com/fatih/color"

	"migguard.io/guard/internal/config"
	apperrors "migguard.io/guard/internal/pkg/errors"
	"migguard.io/guard/internal/report"
	"migguard.io/guard/internal/service"
	"migguard.io/guard/internal/usecase"
)

// Application holds composed application dependencies.
type Application struct {
	Config   *config.Config
	Check    *usecase.CheckMigrationsUseCase
	Renderer report.Renderer
}

// Bootstrap compiles the rule tables and wires the check use case.
// Configs not produced by config.Load are validated here as well.
func Bootstrap(cfg *config.Config) (*Application, error) {
	if err := cfg.Validate(); err != nil {
		return nil, apperrors.Wrap(err, apperrors.CodeConfigInvalid, "invalid configuration")
	}

	discovery, err := service.NewDiscovery(cfg.Guard)
	if err != nil {
		return nil, fmt.Errorf("init discovery: %w", err)
	}

	naming, err := service.NewNamingValidator(cfg.Guard.Naming)
	if err != nil {
		return nil, fmt.Errorf("init naming validator: %w", err)
	}

	scanner, err := service.NewPatternScanner(cfg.Guard)
	if err != nil {
		return nil, fmt.Errorf("init pattern scanner: %w", err)
	}

	renderer, err := report.New(cfg.Report.Format, report.Options{
		MarkerExample: "-- ALLOWED: " + cfg.Guard.Exception.Reasons[0],
		NamingFormat:  cfg.Guard.Naming.Format,
		NoColor:       color.NoColor,
	})
	if err != nil {
		return nil, fmt.Errorf("init renderer: %w", err)
	}

	return &Application{
		Config:   cfg,
		Check:    usecase.NewCheckMigrationsUseCase(discovery, naming, scanner),
		Renderer: renderer,
	}, nil
}
