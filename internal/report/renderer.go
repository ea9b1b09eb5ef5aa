// Package report renders guard reports for people (text) and machines
// (json, yaml). Output always goes to the writer given by the caller.
package report

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/fatih/color"
	"gopkg.in/yaml.v3"

	"migguard.io/guard/internal/config"
	"migguard.io/guard/internal/domain"
	apperrors "migguard.io/guard/internal/pkg/errors"
)

// Renderer writes a report to w.
type Renderer interface {
	Render(w io.Writer, r *domain.Report) error
}

// Options tune rendering.
type Options struct {
	// MarkerExample is the exception comment suggested in remediation text.
	MarkerExample string

	// NamingFormat is the filename convention quoted in the rename hint.
	NamingFormat string

	// NoColor disables ANSI colours in text output.
	NoColor bool
}

// New returns the renderer for format.
func New(format string, opts Options) (Renderer, error) {
	switch format {
	case config.FormatText:
		return &TextRenderer{opts: opts}, nil
	case config.FormatJSON:
		return JSONRenderer{}, nil
	case config.FormatYAML:
		return YAMLRenderer{}, nil
	default:
		return nil, apperrors.New(apperrors.CodeConfigInvalid, fmt.Sprintf("unknown report format %q", format))
	}
}

// TextRenderer prints one line per violation followed by remediation hints.
type TextRenderer struct {
	opts Options
}

func (t *TextRenderer) paint(attrs ...color.Attribute) *color.Color {
	c := color.New(attrs...)
	if t.opts.NoColor {
		c.DisableColor()
	}
	return c
}

// Render implements Renderer.
func (t *TextRenderer) Render(w io.Writer, r *domain.Report) error {
	ok := t.paint(color.FgGreen)
	bad := t.paint(color.FgRed, color.Bold)
	hint := t.paint(color.FgYellow)

	var err error
	printf := func(c *color.Color, format string, args ...interface{}) {
		if err != nil {
			return
		}
		if c == nil {
			_, err = fmt.Fprintf(w, format, args...)
			return
		}
		_, err = c.Fprintf(w, format, args...)
	}

	switch r.Outcome {
	case domain.OutcomePassEmpty:
		printf(ok, "✅ No migration files found. Skip migration safety check.\n")

	case domain.OutcomeFailNaming:
		printf(bad, "❌ Migration naming validation failed:\n")
		for _, v := range r.NamingViolations {
			printf(nil, "❌ Naming convention violation: %s\n", v.File)
			printf(nil, "   Expected format: %s\n", v.Expected)
			printf(nil, "   Example: %s\n", v.Example)
		}
		printf(hint, "\nFix: Rename migration files to follow the pattern: %s\n", t.opts.NamingFormat)

	case domain.OutcomeFailContent:
		printf(bad, "❌ Forbidden DB migration operations detected (Add-only DB violated):\n")
		for _, v := range r.PatternViolations {
			printf(nil, " - %s:%d  matched: %s\n", v.File, v.Line, v.Pattern)
		}
		printf(hint, "\nFix: convert changes into ADD-only (add new column/table/view), no drop/rename/type change/not-null.\n")
		printf(hint, "Exception: If data migration is required, add comment: %s\n", t.opts.MarkerExample)

	case domain.OutcomePass:
		printf(ok, "✅ Migration safety check passed.\n")
		printf(ok, "✅ Migration naming validation passed.\n")

	default:
		return fmt.Errorf("render report: unknown outcome %q", r.Outcome)
	}
	return err
}

// JSONRenderer writes the report as indented JSON.
type JSONRenderer struct{}

// Render implements Renderer.
func (JSONRenderer) Render(w io.Writer, r *domain.Report) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	if err := enc.Encode(r); err != nil {
		return fmt.Errorf("encode json report: %w", err)
	}
	return nil
}

// YAMLRenderer writes the report as a YAML document.
type YAMLRenderer struct{}

// Render implements Renderer.
func (YAMLRenderer) Render(w io.Writer, r *domain.Report) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(r); err != nil {
		return fmt.Errorf("encode yaml report: %w", err)
	}
	if err := enc.Close(); err != nil {
		return fmt.Errorf("close yaml encoder: %w", err)
	}
	return nil
}
