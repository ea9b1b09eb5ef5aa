package service

import (
	"regexp"

	"github.com/samber/lo"

	"migguard.io/guard/internal/config"
	"migguard.io/guard/internal/domain"
	apperrors "migguard.io/guard/internal/pkg/errors"
)

// NamingValidator enforces the timestamp-prefixed filename convention.
// Pattern: {YYYYMMDD}_{HHMMSS}_{description}.sql
// Example: 20250115_120000_add_payment_state.sql
type NamingValidator struct {
	rule    config.NamingConfig
	pattern *regexp.Regexp
}

// NewNamingValidator creates a NamingValidator from the naming rule.
func NewNamingValidator(rule config.NamingConfig) (*NamingValidator, error) {
	re, err := regexp.Compile(rule.Pattern)
	if err != nil {
		return nil, apperrors.ErrPatternInvalidf(rule.Pattern, err)
	}
	return &NamingValidator{rule: rule, pattern: re}, nil
}

// Applies reports whether the rule governs f: a .sql file whose directory
// lineage contains both the root and the migrations segment, in any order.
func (v *NamingValidator) Applies(f domain.MigrationFile) bool {
	if f.Ext != ".sql" {
		return false
	}
	lineage := f.Lineage()
	dirs := lineage[:len(lineage)-1]
	return lo.Contains(dirs, v.rule.RootSegment) && lo.Contains(dirs, v.rule.MigrationsSegment)
}

// Validate returns one violation per governed file whose basename does not
// match the convention, in input order.
func (v *NamingValidator) Validate(files []domain.MigrationFile) []domain.NamingViolation {
	violations := []domain.NamingViolation{}
	for _, f := range files {
		if !v.Applies(f) || v.pattern.MatchString(f.Name()) {
			continue
		}
		violations = append(violations, domain.NamingViolation{
			File:     f.RelPath,
			Expected: v.rule.Format,
			Example:  v.rule.Example,
		})
	}
	return violations
}
