// Package domain holds the migration-guard data model.
//
// Nothing here touches the filesystem; services fill these types and the
// report package renders them.
package domain

import (
	"path"
	"strings"

	apperrors "migguard.io/guard/internal/pkg/errors"
)

// MigrationFile is a discovered candidate migration.
// Identity is the normalized absolute Path.
type MigrationFile struct {
	Path    string `json:"path" yaml:"path"`
	RelPath string `json:"rel_path" yaml:"rel_path"`
	Ext     string `json:"ext" yaml:"ext"`
}

// Name returns the basename of the file.
func (f MigrationFile) Name() string {
	return path.Base(f.RelPath)
}

// Lineage returns the repository-relative path components, basename included.
func (f MigrationFile) Lineage() []string {
	return strings.Split(f.RelPath, "/")
}

// Outcome is the terminal state of one guard run.
type Outcome string

const (
	OutcomePassEmpty   Outcome = "PASS_EMPTY"
	OutcomeFailNaming  Outcome = "FAIL_NAMING"
	OutcomeFailContent Outcome = "FAIL_CONTENT"
	OutcomePass        Outcome = "PASS"
)

// Failed reports whether the outcome fails the run.
func (o Outcome) Failed() bool {
	return o == OutcomeFailNaming || o == OutcomeFailContent
}

// ExitCode maps the outcome to the process exit status.
func (o Outcome) ExitCode() int {
	if o.Failed() {
		return apperrors.ExitViolation
	}
	return apperrors.ExitOK
}

// NamingViolation is a file under the naming-rule lineage whose basename
// does not follow the timestamp convention.
type NamingViolation struct {
	File     string `json:"file" yaml:"file"`
	Expected string `json:"expected" yaml:"expected"`
	Example  string `json:"example" yaml:"example"`
}

// PatternViolation ties a file to the forbidden pattern it matched.
// Pattern is the regular expression source; it doubles as the rule id.
type PatternViolation struct {
	File    string `json:"file" yaml:"file"`
	Pattern string `json:"pattern" yaml:"pattern"`
	Line    int    `json:"line" yaml:"line"`
	Offset  int    `json:"offset" yaml:"offset"`
}

// LineAt returns the 1-based line number of a byte offset in text.
func LineAt(text string, offset int) int {
	if offset > len(text) {
		offset = len(text)
	}
	return 1 + strings.Count(text[:offset], "\n")
}
