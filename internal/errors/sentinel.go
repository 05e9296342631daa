package errors

import "errors"

// Sentinel errors for known conditions.
var (
	// ErrValidation indicates invalid user input or a failed tree verification.
	ErrValidation = errors.New("validation error")

	// ErrNotFound indicates the template root itself could not be found.
	ErrNotFound = errors.New("not found")

	// ErrMissingFile indicates a well-known template file is absent.
	// It is never fatal: the component that needed the file is skipped.
	ErrMissingFile = errors.New("missing expected file")

	// ErrParse indicates a structured document (JSON, XML) could not be parsed.
	ErrParse = errors.New("parse error")

	// ErrFilesystem indicates a read, write or rename failed.
	ErrFilesystem = errors.New("filesystem error")

	// ErrPermission indicates insufficient permissions on the template tree.
	ErrPermission = errors.New("permission denied")
)
