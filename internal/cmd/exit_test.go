package cmd

import (
	"errors"
	"fmt"
	"io/fs"
	"testing"

	"github.com/stretchr/testify/assert"

	oerrors "github.com/asaapi/plugin-init/internal/errors"
)

func TestExitError(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		wantCode int
	}{
		{
			name:     "validation error",
			err:      oerrors.NewValidationError("bad name", "", ""),
			wantCode: ExitValidationError,
		},
		{
			name:     "root not found",
			err:      oerrors.NewNotFoundError("template root does not exist", "/nowhere", ""),
			wantCode: ExitNotFound,
		},
		{
			name:     "permission denied",
			err:      oerrors.NewFilesystemError("write", "vcpkg.json", fs.ErrPermission),
			wantCode: ExitPermissionDenied,
		},
		{
			name:     "other filesystem error",
			err:      oerrors.NewFilesystemError("rename", "Foo.sln", fs.ErrExist),
			wantCode: ExitGeneralError,
		},
		{
			name:     "unclassified error",
			err:      errors.New("boom"),
			wantCode: ExitGeneralError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := exitError(tt.err)

			var exitErr *ExitError
			assert.True(t, errors.As(err, &exitErr))
			assert.Equal(t, tt.wantCode, exitErr.Code)
			assert.False(t, exitErr.Printed)
			assert.ErrorIs(t, err, tt.err)
		})
	}
}

func TestReportedError(t *testing.T) {
	cause := fmt.Errorf("2 component(s) failed")
	err := reportedError(ExitGeneralError, cause)

	var exitErr *ExitError
	assert.True(t, errors.As(err, &exitErr))
	assert.Equal(t, ExitGeneralError, exitErr.Code)
	assert.True(t, exitErr.Printed)
	assert.Equal(t, cause.Error(), err.Error())
}

func TestExitCodeName(t *testing.T) {
	assert.Equal(t, "Success", ExitCodeName(ExitSuccess))
	assert.Equal(t, "General Error", ExitCodeName(ExitGeneralError))
	assert.Equal(t, "Validation Error", ExitCodeName(ExitValidationError))
	assert.Equal(t, "Permission Denied", ExitCodeName(ExitPermissionDenied))
	assert.Equal(t, "Not Found", ExitCodeName(ExitNotFound))
	assert.Equal(t, "Unknown", ExitCodeName(42))
}
