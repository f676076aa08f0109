package cli

import (
	"errors"
	"fmt"
)

// Exit codes for the sagalint CLI
const (
	// ExitSuccess indicates the run completed. Diagnostics alone do not fail
	// a run unless --exit-on-errors is set.
	ExitSuccess = 0

	// ExitValidationFailed indicates diagnostics were found with
	// --exit-on-errors, or the run was interrupted
	ExitValidationFailed = 1

	// ExitInvalidArguments indicates bad arguments, flags or configuration
	ExitInvalidArguments = 3

	// ExitLoadFailed indicates an input document could not be loaded
	ExitLoadFailed = 4
)

// exitError is a custom error type that carries an exit code.
type exitError struct {
	code int
}

func (e *exitError) Error() string {
	return fmt.Sprintf("exit code %d", e.code)
}

// NewExitError creates a new exit error with the given code.
func NewExitError(code int) error {
	return &exitError{code: code}
}

// ExitCode returns the exit code from an error.
func ExitCode(err error) int {
	if err == nil {
		return ExitSuccess
	}
	var e *exitError
	if errors.As(err, &e) {
		return e.code
	}
	return ExitValidationFailed
}

func isExitError(err error) bool {
	var e *exitError
	return errors.As(err, &e)
}
