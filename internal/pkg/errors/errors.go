// Package errors provides structured error types for migration-guard.
//
// A GuardError means the guard could not reach a verdict (bad configuration,
// unreadable tree). Naming and content violations are verdicts and are
// carried by the report, never by an error.
//
// Import Path: migguard.io/guard/internal/pkg/errors
package errors

import (
	"errors"
	"fmt"
)

// Exit codes for the migration-guard command.
const (
	ExitOK        = 0
	ExitViolation = 1
	ExitFailure   = 2
)

// Sentinel errors for common failure scenarios.
var (
	ErrInvalidConfig = errors.New("invalid configuration")
	ErrNotDirectory  = errors.New("not a directory")
)

// GuardError is a structured error with a machine-readable code and the
// process exit code it maps to.
type GuardError struct {
	// Code is a machine-readable error code (e.g., "CONFIG_INVALID").
	Code string `json:"code"`

	// Message is a human-readable error message.
	Message string `json:"message"`

	// ExitCode is the process exit status for this failure.
	ExitCode int `json:"-"`

	// Params carries structured context (paths, patterns) for logs.
	Params map[string]interface{} `json:"params,omitempty"`

	// Err is the wrapped underlying error.
	Err error `json:"-"`
}

// Error implements the error interface.
func (e *GuardError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap returns the underlying error for errors.Is/As support.
func (e *GuardError) Unwrap() error {
	return e.Err
}

// New creates a new GuardError exiting with ExitFailure.
func New(code, message string) *GuardError {
	return &GuardError{
		Code:     code,
		Message:  message,
		ExitCode: ExitFailure,
	}
}

// Wrap wraps an existing error into a GuardError exiting with ExitFailure.
func Wrap(err error, code, message string) *GuardError {
	return &GuardError{
		Code:     code,
		Message:  message,
		ExitCode: ExitFailure,
		Err:      err,
	}
}

// WithParams attaches structured parameters to the error.
func (e *GuardError) WithParams(params map[string]interface{}) *GuardError {
	if e == nil || len(params) == 0 {
		return e
	}
	e.Params = params
	return e
}

// IsGuardError checks if an error is a GuardError and returns it.
func IsGuardError(err error) (*GuardError, bool) {
	var guardErr *GuardError
	if errors.As(err, &guardErr) {
		return guardErr, true
	}
	return nil, false
}

// ExitCodeOf maps any error to a process exit code.
// nil maps to ExitOK; errors that are not GuardErrors map to ExitFailure.
func ExitCodeOf(err error) int {
	if err == nil {
		return ExitOK
	}
	if guardErr, ok := IsGuardError(err); ok {
		return guardErr.ExitCode
	}
	return ExitFailure
}
