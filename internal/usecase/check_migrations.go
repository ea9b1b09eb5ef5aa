// Package usecase provides application use cases.
//
// UseCases are reusable across the CLI and tests.
//
// Import Path: migguard.io/guard/internal/usecase
package usecase

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"migguard.io/guard/internal/domain"
	"migguard.io/guard/internal/pkg/logger"
	"migguard.io/guard/internal/service"
)

// CheckMigrationsUseCase runs one guard pass over a repository:
// Discover → Validate-Naming → Scan-Content. Each phase is terminal on failure.
type CheckMigrationsUseCase struct {
	discovery *service.Discovery
	naming    *service.NamingValidator
	scanner   *service.PatternScanner
}

// NewCheckMigrationsUseCase creates a new CheckMigrationsUseCase.
func NewCheckMigrationsUseCase(
	discovery *service.Discovery,
	naming *service.NamingValidator,
	scanner *service.PatternScanner,
) *CheckMigrationsUseCase {
	return &CheckMigrationsUseCase{
		discovery: discovery,
		naming:    naming,
		scanner:   scanner,
	}
}

// Execute checks the repository at root and returns the report.
// A returned error means no verdict was reached; violations are reported
// through Report.Outcome, never as an error.
func (uc *CheckMigrationsUseCase) Execute(ctx context.Context, root string) (*domain.Report, error) {
	absRoot, err := filepath.Abs(root)
	if err != nil {
		return nil, fmt.Errorf("resolve root: %w", err)
	}

	report := &domain.Report{
		RunID:             uuid.NewString(),
		Root:              absRoot,
		NamingViolations:  []domain.NamingViolation{},
		PatternViolations: []domain.PatternViolation{},
	}
	log := logger.With(zap.String("run_id", report.RunID), zap.String("root", absRoot))

	// Phase 1: discovery.
	files, err := uc.discovery.Discover(absRoot)
	if err != nil {
		return nil, fmt.Errorf("discover migrations: %w", err)
	}
	report.FilesScanned = len(files)
	if len(files) == 0 {
		// Repositories without migrations yet must not block the pipeline.
		report.Outcome = domain.OutcomePassEmpty
		log.Info("No migration files found")
		return report, nil
	}
	log.Debug("Discovered migration files", zap.Int("count", len(files)))

	// Phase 2: naming. Failures short-circuit the content scan.
	if violations := uc.naming.Validate(files); len(violations) > 0 {
		report.Outcome = domain.OutcomeFailNaming
		report.NamingViolations = violations
		log.Info("Naming validation failed", zap.Int("violations", len(violations)))
		return report, nil
	}

	// Phase 3: content.
	violations, err := uc.scanner.Scan(ctx, files)
	if err != nil {
		return nil, fmt.Errorf("scan migrations: %w", err)
	}
	if len(violations) > 0 {
		report.Outcome = domain.OutcomeFailContent
		report.PatternViolations = violations
		log.Info("Forbidden operations detected", zap.Int("violations", len(violations)))
		return report, nil
	}

	report.Outcome = domain.OutcomePass
	log.Info("Migration safety check passed", zap.Int("files", len(files)))
	return report, nil
}
