// Package cmd provides the plugin-init command implementations.
package cmd

import (
	oerrors "github.com/asaapi/plugin-init/internal/errors"
	"github.com/asaapi/plugin-init/internal/output"
)

// Exit codes, aliased from internal/errors.
const (
	ExitSuccess          = oerrors.ExitSuccess
	ExitGeneralError     = oerrors.ExitGeneralError
	ExitValidationError  = oerrors.ExitValidationError
	ExitPermissionDenied = oerrors.ExitPermissionDenied
	ExitNotFound         = oerrors.ExitNotFound
)

// ExitError is the error type main maps to a process exit code.
type ExitError = oerrors.ExitError

// ExitCodeName returns the name of the exit code.
func ExitCodeName(code int) string {
	switch code {
	case ExitSuccess:
		return "Success"
	case ExitGeneralError:
		return "General Error"
	case ExitValidationError:
		return "Validation Error"
	case ExitPermissionDenied:
		return "Permission Denied"
	case ExitNotFound:
		return "Not Found"
	default:
		return "Unknown"
	}
}

// exitError wraps err with the exit code derived from its sentinel.
// main prints it.
func exitError(err error) error {
	code := oerrors.ExitCodeFromError(err)
	output.Debug("command failed", "exit", code, "reason", ExitCodeName(code))
	return &ExitError{Code: code, Err: err}
}

// reportedError wraps err with code for a failure the command already
// rendered, so main only sets the exit status.
func reportedError(code int, err error) error {
	output.Debug("command failed", "exit", code, "reason", ExitCodeName(code))
	return &ExitError{Code: code, Err: err, Printed: true}
}
