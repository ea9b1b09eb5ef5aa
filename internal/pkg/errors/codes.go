package errors

// Configuration error codes.
const (
	CodeConfigInvalid  = "CONFIG_INVALID"
	CodePatternInvalid = "PATTERN_INVALID"
)

// Filesystem error codes.
const (
	CodeDiscoveryFailed = "DISCOVERY_FAILED"
	CodeFileReadFailed  = "FILE_READ_FAILED"
)

// ErrPatternInvalidf creates an error for a forbidden or naming pattern that
// does not compile.
func ErrPatternInvalidf(pattern string, err error) *GuardError {
	return Wrap(err, CodePatternInvalid, "pattern does not compile").
		WithParams(map[string]interface{}{"pattern": pattern})
}

// ErrFileReadf creates an error for a migration file that cannot be read.
func ErrFileReadf(path string, err error) *GuardError {
	return Wrap(err, CodeFileReadFailed, "cannot read migration file").
		WithParams(map[string]interface{}{"path": path})
}

// ErrDiscoveryf creates an error for a repository root that cannot be walked.
func ErrDiscoveryf(root string, err error) *GuardError {
	return Wrap(err, CodeDiscoveryFailed, "cannot discover migration files").
		WithParams(map[string]interface{}{"root": root})
}
