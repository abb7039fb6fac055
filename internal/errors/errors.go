package errors

import (
	"errors"
	"fmt"
)

// Exit codes for drivectl
const (
	ExitSuccess      = 0
	ExitGeneralError = 1
	ExitMissingField = 2
	ExitInvalidLevel = 3
	ExitFilesystem   = 4
	ExitConfigParse  = 5
	ExitSSHError     = 6
)

// DriveError is the base error type for drivectl
type DriveError struct {
	Code    int
	Message string
	Cause   error
}

func (e *DriveError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

func (e *DriveError) Unwrap() error {
	return e.Cause
}

// ExitCode returns the exit code for this error
func (e *DriveError) ExitCode() int {
	return e.Code
}

// New creates a new DriveError
func New(code int, message string) *DriveError {
	return &DriveError{
		Code:    code,
		Message: message,
	}
}

// Wrap wraps an existing error with a DriveError
func Wrap(code int, message string, cause error) *DriveError {
	return &DriveError{
		Code:    code,
		Message: message,
		Cause:   cause,
	}
}

// Common error constructors

// MissingField returns an error for a required study config field that is
// absent or empty. Raised before any filesystem mutation.
func MissingField(field string) *DriveError {
	return New(ExitMissingField, fmt.Sprintf("required field is missing or empty: %s", field))
}

// InvalidLevel returns an error for an unrecognized security level.
func InvalidLevel(value string) *DriveError {
	return New(ExitInvalidLevel, fmt.Sprintf("invalid security level %q (must be PUBLIC, INTERNAL, CONFIDENTIAL, or RESTRICTED)", value))
}

// Filesystem returns an error for a failed directory or file operation.
func Filesystem(path string, cause error) *DriveError {
	return Wrap(ExitFilesystem, fmt.Sprintf("filesystem operation failed for %s", path), cause)
}

// ConfigParse returns an error for a malformed config or structure file.
func ConfigParse(file string, cause error) *DriveError {
	return Wrap(ExitConfigParse, fmt.Sprintf("failed to parse %s", file), cause)
}

// SSHError returns an error for SSH provisioning operations.
func SSHError(message string, cause error) *DriveError {
	return Wrap(ExitSSHError, message, cause)
}

// ValidationError returns an error for input validation failures.
func ValidationError(message string) *DriveError {
	return New(ExitGeneralError, message)
}

// GetExitCode extracts the exit code from an error
func GetExitCode(err error) int {
	var driveErr *DriveError
	if errors.As(err, &driveErr) {
		return driveErr.ExitCode()
	}
	return ExitGeneralError
}

// Is checks if an error is of a specific type
func Is(err, target error) bool {
	return errors.Is(err, target)
}

// As finds the first error in err's chain that matches target
func As(err error, target any) bool {
	return errors.As(err, target)
}
