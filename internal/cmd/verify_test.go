package cmd

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/asaapi/plugin-init/internal/testutil"
)

func TestVerifyCmd_CleanAfterInstantiation(t *testing.T) {
	dir := testutil.Template(t)

	_, err := execute(t, "--root", dir, "Foo", "Bar")
	require.NoError(t, err)

	out, err := execute(t, "--root", dir, "verify", "Foo")
	require.NoError(t, err)
	assert.Contains(t, out, "no problems found")
}

func TestVerifyCmd_PristineTreeHasLeftovers(t *testing.T) {
	dir := testutil.Template(t)

	out, err := execute(t, "--root", dir, "verify")
	exitErr := requireExitCode(t, err, ExitValidationError)
	assert.True(t, exitErr.Printed)

	assert.Contains(t, out, "[leftover]")
	assert.Contains(t, out, "PluginTemplate.sln")
	assert.Contains(t, out, "problem(s) found")
}

func TestVerifyCmd_NameMismatch(t *testing.T) {
	dir := testutil.Template(t)

	_, err := execute(t, "--root", dir, "Foo", "Bar")
	require.NoError(t, err)

	out, err := execute(t, "--root", dir, "verify", "Other")
	requireExitCode(t, err, ExitValidationError)
	assert.Contains(t, out, "Other.sln")
}

func TestVerifyCmd_JSON(t *testing.T) {
	dir := testutil.Template(t)

	out, err := execute(t, "--root", dir, "-o", "json", "verify")
	requireExitCode(t, err, ExitValidationError)

	var result struct {
		FilesScanned int `json:"filesScanned"`
		Findings     []struct {
			Kind string `json:"kind"`
			Path string `json:"path"`
		} `json:"findings"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &result))
	assert.Positive(t, result.FilesScanned)
	require.NotEmpty(t, result.Findings)

	kinds := make([]string, 0, len(result.Findings))
	for _, f := range result.Findings {
		kinds = append(kinds, f.Kind)
	}
	assert.Contains(t, kinds, "leftover")
}

func TestVerifyCmd_InvalidName(t *testing.T) {
	dir := testutil.Template(t)

	_, err := execute(t, "--root", dir, "verify", "not-valid")
	exitErr := requireExitCode(t, err, ExitValidationError)
	assert.False(t, exitErr.Printed)
}

func TestVerifyCmd_TooManyArgs(t *testing.T) {
	dir := testutil.Template(t)

	_, err := execute(t, "--root", dir, "verify", "Foo", "Bar")
	assert.Error(t, err)
}
