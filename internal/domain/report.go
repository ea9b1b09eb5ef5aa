package domain

// Report is the result of one guard run. It lives for a single invocation.
type Report struct {
	RunID             string             `json:"run_id" yaml:"run_id"`
	Root              string             `json:"root" yaml:"root"`
	Outcome           Outcome            `json:"outcome" yaml:"outcome"`
	FilesScanned      int                `json:"files_scanned" yaml:"files_scanned"`
	NamingViolations  []NamingViolation  `json:"naming_violations" yaml:"naming_violations"`
	PatternViolations []PatternViolation `json:"pattern_violations" yaml:"pattern_violations"`
}

// ExitCode returns the process exit status for the report.
func (r *Report) ExitCode() int {
	return r.Outcome.ExitCode()
}
