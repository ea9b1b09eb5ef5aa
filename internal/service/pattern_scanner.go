package service

import (
	"context"
	"io"
	"os"
	"regexp"
	"strings"

	"go.uber.org/zap"

	"migguard.io/guard/internal/config"
	"migguard.io/guard/internal/domain"
	apperrors "migguard.io/guard/internal/pkg/errors"
	"migguard.io/guard/internal/pkg/logger"
)

// forbiddenPattern pairs a pattern source (the rule id shown to users) with
// its compiled form.
type forbiddenPattern struct {
	source string
	re     *regexp.Regexp
}

// PatternScanner detects destructive operations in migration text.
type PatternScanner struct {
	patterns []forbiddenPattern
	marker   *regexp.Regexp
	scope    string
	radius   int
}

// NewPatternScanner compiles the forbidden-pattern table and the exception
// marker. Patterns are matched case-insensitively with dot matching newline.
func NewPatternScanner(cfg config.GuardConfig) (*PatternScanner, error) {
	sources := cfg.ForbiddenPatterns()
	patterns := make([]forbiddenPattern, 0, len(sources))
	for _, src := range sources {
		re, err := regexp.Compile("(?is)" + src)
		if err != nil {
			return nil, apperrors.ErrPatternInvalidf(src, err)
		}
		if re.MatchString("") {
			return nil, apperrors.New(apperrors.CodePatternInvalid, "pattern matches empty text").
				WithParams(map[string]interface{}{"pattern": src})
		}
		patterns = append(patterns, forbiddenPattern{source: src, re: re})
	}

	marker, err := ExceptionMarker(cfg.Exception.Reasons)
	if err != nil {
		return nil, err
	}

	return &PatternScanner{
		patterns: patterns,
		marker:   marker,
		scope:    cfg.Exception.Scope,
		radius:   cfg.Exception.WindowRadius,
	}, nil
}

// ExceptionMarker builds the ALLOWED: comment matcher for the given reasons.
// SQL (--), Python (#) and JS/TS (//) comment leaders are accepted.
func ExceptionMarker(reasons []string) (*regexp.Regexp, error) {
	quoted := make([]string, 0, len(reasons))
	for _, r := range reasons {
		quoted = append(quoted, regexp.QuoteMeta(r))
	}
	src := `(?i)(?:--|#|//)\s*ALLOWED:\s*(?:` + strings.Join(quoted, "|") + `)`
	re, err := regexp.Compile(src)
	if err != nil {
		return nil, apperrors.ErrPatternInvalidf(src, err)
	}
	return re, nil
}

// Patterns returns the pattern sources in report order.
func (s *PatternScanner) Patterns() []string {
	out := make([]string, 0, len(s.patterns))
	for _, p := range s.patterns {
		out = append(out, p.source)
	}
	return out
}

// Scan checks every file and accumulates all violations. It never stops at
// the first failing file; ctx is only consulted between files.
func (s *PatternScanner) Scan(ctx context.Context, files []domain.MigrationFile) ([]domain.PatternViolation, error) {
	violations := []domain.PatternViolation{}
	for _, f := range files {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		found, err := s.ScanFile(f)
		if err != nil {
			return nil, err
		}
		violations = append(violations, found...)
	}
	return violations, nil
}

// ScanFile reads f once and returns its violations.
func (s *PatternScanner) ScanFile(f domain.MigrationFile) ([]domain.PatternViolation, error) {
	raw, err := readFile(f.Path)
	if err != nil {
		return nil, apperrors.ErrFileReadf(f.RelPath, err)
	}
	violations := s.ScanText(f.RelPath, decodeLossy(raw))
	if len(violations) > 0 {
		logger.Debug("Forbidden operations found",
			zap.String("file", f.RelPath),
			zap.Int("count", len(violations)),
		)
	}
	return violations, nil
}

// ScanText enumerates every match of every pattern in text, in pattern order
// then position order, dropping matches covered by an exception marker.
func (s *PatternScanner) ScanText(name, text string) []domain.PatternViolation {
	marked := s.marker.MatchString(text)

	var violations []domain.PatternViolation
	for _, p := range s.patterns {
		for _, loc := range p.re.FindAllStringIndex(text, -1) {
			if marked && s.suppressed(text, loc[0], loc[1]) {
				logger.Debug("Match suppressed by exception marker",
					zap.String("file", name),
					zap.String("pattern", p.source),
					zap.Int("line", domain.LineAt(text, loc[0])),
				)
				continue
			}
			violations = append(violations, domain.PatternViolation{
				File:    name,
				Pattern: p.source,
				Line:    domain.LineAt(text, loc[0]),
				Offset:  loc[0],
			})
		}
	}
	return violations
}

// suppressed is only called when the file carries at least one marker.
func (s *PatternScanner) suppressed(text string, start, end int) bool {
	if s.scope == config.ScopeFile {
		return true
	}
	return s.marker.MatchString(window(text, start, end, s.radius))
}

func readFile(path string) ([]byte, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	return io.ReadAll(f)
}
