// Package errors provides the error taxonomy for plugin-init.
package errors

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"
)

// Exit codes for the CLI.
const (
	// ExitSuccess indicates the run completed, possibly with skipped files.
	ExitSuccess = 0

	// ExitGeneralError indicates a component failed or an unexpected error occurred.
	ExitGeneralError = 1

	// ExitValidationError indicates invalid input or verification findings.
	ExitValidationError = 2

	// ExitPermissionDenied indicates the template tree is not writable.
	ExitPermissionDenied = 4

	// ExitNotFound indicates the template root does not exist.
	ExitNotFound = 5
)

// ExitError wraps an error with a process exit code.
type ExitError struct {
	// Code is the exit code to use.
	Code int

	// Err is the underlying error.
	Err error

	// Printed indicates the error was already reported to the user.
	Printed bool
}

// Error implements the error interface.
func (e *ExitError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("exit code %d", e.Code)
	}
	return e.Err.Error()
}

// Unwrap returns the underlying error.
func (e *ExitError) Unwrap() error {
	return e.Err
}

// DetailError captures structured error information.
type DetailError struct {
	// Type is the error category (required).
	Type string

	// Message is the specific description (required).
	Message string

	// Location is the file path, optionally with a line number.
	Location string

	// Context contains additional key-value context (optional).
	Context map[string]string

	// Hint provides actionable guidance (optional).
	Hint string

	// Cause is the underlying error (optional).
	Cause error
}

// Error implements the error interface.
func (e *DetailError) Error() string {
	var b strings.Builder

	b.WriteString("Error: ")
	b.WriteString(e.Type)
	b.WriteString("\n")

	if e.Location != "" {
		b.WriteString("  Location: ")
		b.WriteString(e.Location)
		b.WriteString("\n")
	}
	for k, v := range e.Context {
		b.WriteString("  ")
		b.WriteString(k)
		b.WriteString(": ")
		b.WriteString(v)
		b.WriteString("\n")
	}

	b.WriteString("\n  ")
	b.WriteString(e.Message)
	b.WriteString("\n")

	if e.Hint != "" {
		b.WriteString("\nHint: ")
		b.WriteString(e.Hint)
		b.WriteString("\n")
	}

	return b.String()
}

// Unwrap returns the underlying error.
func (e *DetailError) Unwrap() error {
	return e.Cause
}

// NewValidationError creates a validation error with details.
func NewValidationError(message, location, hint string) error {
	return &DetailError{
		Type:     "validation failed",
		Message:  message,
		Location: location,
		Hint:     hint,
		Cause:    ErrValidation,
	}
}

// NewNotFoundError creates a not found error with details.
func NewNotFoundError(message, location, hint string) error {
	return &DetailError{
		Type:     "not found",
		Message:  message,
		Location: location,
		Hint:     hint,
		Cause:    ErrNotFound,
	}
}

// NewMissingFileError reports an absent template file.
func NewMissingFileError(location string) error {
	return &DetailError{
		Type:     "missing expected file",
		Message:  "template file not found, skipping",
		Location: location,
		Cause:    ErrMissingFile,
	}
}

// NewParseError reports a document that could not be parsed.
func NewParseError(message, location string) error {
	return &DetailError{
		Type:     "parse failed",
		Message:  message,
		Location: location,
		Hint:     "The file was left untouched. Fix the document and re-run.",
		Cause:    ErrParse,
	}
}

// NewFilesystemError wraps a failed filesystem operation.
// Permission failures are additionally tagged with ErrPermission.
func NewFilesystemError(op, location string, err error) error {
	cause := fmt.Errorf("%w: %w", ErrFilesystem, err)
	if errors.Is(err, fs.ErrPermission) {
		cause = fmt.Errorf("%w: %w: %w", ErrFilesystem, ErrPermission, err)
	}
	return &DetailError{
		Type:     "filesystem operation failed",
		Message:  fmt.Sprintf("%s: %v", op, err),
		Location: location,
		Cause:    cause,
	}
}

// Wrap wraps an error with a sentinel error type.
func Wrap(sentinel error, message string) error {
	return fmt.Errorf("%s: %w", message, sentinel)
}

// OnlyMissingFiles reports whether err consists solely of missing-file
// errors. Joined errors qualify only when every member does, so a missing file
// joined beside a write failure does not hide the failure.
func OnlyMissingFiles(err error) bool {
	if err == nil {
		return false
	}
	if err == ErrMissingFile {
		return true
	}
	if detail, ok := err.(*DetailError); ok {
		return errors.Is(detail.Cause, ErrMissingFile)
	}

	switch x := err.(type) {
	case interface{ Unwrap() []error }:
		errs := x.Unwrap()
		if len(errs) == 0 {
			return false
		}
		for _, e := range errs {
			if !OnlyMissingFiles(e) {
				return false
			}
		}
		return true
	case interface{ Unwrap() error }:
		return OnlyMissingFiles(x.Unwrap())
	}
	return false
}

// ExitCodeFromError determines the exit code for an error.
func ExitCodeFromError(err error) int {
	if err == nil {
		return ExitSuccess
	}

	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		return exitErr.Code
	}

	switch {
	case errors.Is(err, ErrValidation):
		return ExitValidationError
	case errors.Is(err, ErrPermission):
		return ExitPermissionDenied
	case errors.Is(err, ErrNotFound):
		return ExitNotFound
	default:
		return ExitGeneralError
	}
}
