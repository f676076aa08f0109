// Package errors provides user-facing CLI errors with a category, optional
// usage line and remediation steps.
package errors

import (
	"errors"
	"fmt"
)

// ErrorCategory groups errors by what the user has to fix.
type ErrorCategory int

const (
	// Argument covers bad command line arguments and flags.
	Argument ErrorCategory = iota
	// Configuration covers unreadable or invalid configuration.
	Configuration
	// Prerequisite covers missing input files and directories.
	Prerequisite
	// Runtime covers failures while a run is in progress.
	Runtime
)

// String returns the heading shown above the error message.
func (c ErrorCategory) String() string {
	switch c {
	case Argument:
		return "Argument Error"
	case Configuration:
		return "Configuration Error"
	case Prerequisite:
		return "Prerequisite Error"
	case Runtime:
		return "Runtime Error"
	default:
		return "Error"
	}
}

// CLIError is an error meant to be printed to the user as is.
type CLIError struct {
	Category    ErrorCategory
	Message     string
	Usage       string
	Remediation []string
	cause       error
}

// Error implements the error interface.
func (e *CLIError) Error() string {
	return e.Message
}

// Unwrap returns the wrapped error, if any.
func (e *CLIError) Unwrap() error {
	return e.cause
}

// NewArgumentError creates an Argument error.
func NewArgumentError(message string, remediation ...string) *CLIError {
	return &CLIError{Category: Argument, Message: message, Remediation: remediation}
}

// NewArgumentErrorWithUsage creates an Argument error that prints usage.
func NewArgumentErrorWithUsage(message, usage string, remediation ...string) *CLIError {
	return &CLIError{Category: Argument, Message: message, Usage: usage, Remediation: remediation}
}

// NewConfigError creates a Configuration error.
func NewConfigError(message string, remediation ...string) *CLIError {
	return &CLIError{Category: Configuration, Message: message, Remediation: remediation}
}

// NewPrerequisiteError creates a Prerequisite error.
func NewPrerequisiteError(message string, remediation ...string) *CLIError {
	return &CLIError{Category: Prerequisite, Message: message, Remediation: remediation}
}

// NewRuntimeError creates a Runtime error.
func NewRuntimeError(message string, remediation ...string) *CLIError {
	return &CLIError{Category: Runtime, Message: message, Remediation: remediation}
}

// Wrap turns err into a CLIError of the given category. It returns nil for
// a nil err.
func Wrap(err error, category ErrorCategory, remediation ...string) *CLIError {
	if err == nil {
		return nil
	}
	return &CLIError{Category: category, Message: err.Error(), Remediation: remediation, cause: err}
}

// WrapWithMessage is Wrap with "message: " prepended to err's text.
func WrapWithMessage(err error, category ErrorCategory, message string, remediation ...string) *CLIError {
	if err == nil {
		return nil
	}
	return &CLIError{
		Category:    category,
		Message:     fmt.Sprintf("%s: %s", message, err.Error()),
		Remediation: remediation,
		cause:       err,
	}
}

// IsCLIError reports whether err is or wraps a CLIError.
func IsCLIError(err error) bool {
	var cliErr *CLIError
	return errors.As(err, &cliErr)
}

// AsCLIError returns the CLIError in err's chain, or nil.
func AsCLIError(err error) *CLIError {
	var cliErr *CLIError
	if errors.As(err, &cliErr) {
		return cliErr
	}
	return nil
}
