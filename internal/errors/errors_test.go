//nolint:revive // Package name matches the package it tests
package errors

import (
	"errors"
	"fmt"
	"io/fs"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSentinelErrors(t *testing.T) {
	// Verify sentinel errors are distinct
	assert.NotEqual(t, ErrValidation, ErrMissingFile)
	assert.NotEqual(t, ErrParse, ErrFilesystem)
	assert.NotEqual(t, ErrNotFound, ErrMissingFile)
}

func TestDetailErrorError(t *testing.T) {
	detail := &DetailError{
		Type:     "parse failed",
		Message:  "invalid character",
		Location: "Configs/PluginInfo.json",
		Context:  map[string]string{"Component": "metadata"},
		Hint:     "Fix the document",
	}

	output := detail.Error()

	assert.Contains(t, output, "Error: parse failed")
	assert.Contains(t, output, "Location: Configs/PluginInfo.json")
	assert.Contains(t, output, "Component: metadata")
	assert.Contains(t, output, "invalid character")
	assert.Contains(t, output, "Hint: Fix the document")
}

func TestDetailErrorUnwrap(t *testing.T) {
	detail := &DetailError{
		Type:    "test",
		Message: "test message",
		Cause:   ErrParse,
	}

	assert.True(t, errors.Is(detail, ErrParse))
	assert.Equal(t, ErrParse, detail.Unwrap())
}

func TestNewValidationError(t *testing.T) {
	err := NewValidationError("invalid project name", "", "Use letters and digits")

	require.NotNil(t, err)
	assert.True(t, errors.Is(err, ErrValidation))

	var detail *DetailError
	require.True(t, errors.As(err, &detail))
	assert.Equal(t, "validation failed", detail.Type)
	assert.Equal(t, "Use letters and digits", detail.Hint)
}

func TestNewFilesystemError(t *testing.T) {
	err := NewFilesystemError("rename", "Foo.sln", fs.ErrExist)
	assert.True(t, errors.Is(err, ErrFilesystem))
	assert.True(t, errors.Is(err, fs.ErrExist))
	assert.False(t, errors.Is(err, ErrPermission))

	permErr := NewFilesystemError("write", "vcpkg.json", fs.ErrPermission)
	assert.True(t, errors.Is(permErr, ErrFilesystem))
	assert.True(t, errors.Is(permErr, ErrPermission))
}

func TestNewMissingFileError(t *testing.T) {
	err := NewMissingFileError("PluginTemplate.sln")
	assert.True(t, errors.Is(err, ErrMissingFile))
	assert.Contains(t, err.Error(), "PluginTemplate.sln")
}

func TestWrap(t *testing.T) {
	wrapped := Wrap(ErrValidation, "verification failed")

	assert.True(t, errors.Is(wrapped, ErrValidation))
	assert.Contains(t, wrapped.Error(), "verification failed")
}

func TestExitCodeFromError(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		wantCode int
	}{
		{name: "nil error returns success", err: nil, wantCode: ExitSuccess},
		{name: "validation error", err: ErrValidation, wantCode: ExitValidationError},
		{name: "wrapped validation error", err: Wrap(ErrValidation, "bad name"), wantCode: ExitValidationError},
		{name: "not found error", err: NewNotFoundError("no root", "/tmp/x", ""), wantCode: ExitNotFound},
		{name: "permission error", err: NewFilesystemError("write", "a", fs.ErrPermission), wantCode: ExitPermissionDenied},
		{name: "explicit exit error", err: &ExitError{Code: 7, Err: errors.New("x")}, wantCode: 7},
		{name: "wrapped exit error", err: fmt.Errorf("outer: %w", &ExitError{Code: ExitValidationError}), wantCode: ExitValidationError},
		{name: "unknown error returns general error", err: errors.New("boom"), wantCode: ExitGeneralError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.wantCode, ExitCodeFromError(tt.err))
		})
	}
}

func TestExitErrorMessage(t *testing.T) {
	assert.Equal(t, "boom", (&ExitError{Code: 1, Err: errors.New("boom")}).Error())
	assert.Equal(t, "exit code 3", (&ExitError{Code: 3}).Error())
}

func TestOnlyMissingFiles(t *testing.T) {
	missingA := NewMissingFileError("Source/A.cpp")
	missingB := NewMissingFileError("Source/B.cpp")
	writeFailed := NewFilesystemError("write", "Source/C.cpp", fs.ErrPermission)

	tests := []struct {
		name string
		err  error
		want bool
	}{
		{name: "nil", err: nil, want: false},
		{name: "sentinel", err: ErrMissingFile, want: true},
		{name: "single missing file", err: missingA, want: true},
		{name: "wrapped missing file", err: fmt.Errorf("rewriting Source: %w", missingA), want: true},
		{name: "joined missing files", err: errors.Join(missingA, missingB), want: true},
		{name: "missing file beside write failure", err: errors.Join(missingA, writeFailed), want: false},
		{name: "wrapped mixed join", err: fmt.Errorf("rewriting Source: %w", errors.Join(writeFailed, missingB)), want: false},
		{name: "filesystem error", err: writeFailed, want: false},
		{name: "parse error", err: NewParseError("bad json", "vcpkg.json"), want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, OnlyMissingFiles(tt.err))
		})
	}
}
