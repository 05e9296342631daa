package version

import (
	"runtime/debug"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func stubBuildInfo(t *testing.T, bi *debug.BuildInfo, ok bool) {
	t.Helper()
	orig := readBuildInfo
	readBuildInfo = func() (*debug.BuildInfo, bool) { return bi, ok }
	t.Cleanup(func() { readBuildInfo = orig })
}

func TestGet(t *testing.T) {
	info := Get()

	require.NotEmpty(t, info.GoVersion, "GoVersion should be populated")
	require.NotEmpty(t, info.Version)
}

func TestGet_FallsBackToVCSStamps(t *testing.T) {
	stubBuildInfo(t, &debug.BuildInfo{
		Main: debug.Module{Version: "v1.2.3"},
		Settings: []debug.BuildSetting{
			{Key: "vcs.revision", Value: "deadbeef"},
			{Key: "vcs.time", Value: "2026-01-29T10:00:00Z"},
			{Key: "vcs.modified", Value: "true"},
		},
	}, true)

	info := Get()

	assert.Equal(t, "v1.2.3", info.Version)
	assert.Equal(t, "deadbeef", info.GitCommit)
	assert.Equal(t, "2026-01-29T10:00:00Z", info.BuildDate)
	assert.True(t, info.Modified)
}

func TestGet_LdflagsWin(t *testing.T) {
	origVersion, origCommit := Version, GitCommit
	Version, GitCommit = "v9.9.9", "cafe"
	t.Cleanup(func() { Version, GitCommit = origVersion, origCommit })

	stubBuildInfo(t, &debug.BuildInfo{
		Main:     debug.Module{Version: "v1.2.3"},
		Settings: []debug.BuildSetting{{Key: "vcs.revision", Value: "deadbeef"}},
	}, true)

	info := Get()

	assert.Equal(t, "v9.9.9", info.Version)
	assert.Equal(t, "cafe", info.GitCommit)
}

func TestGet_DevelBuildKeepsDefault(t *testing.T) {
	stubBuildInfo(t, &debug.BuildInfo{Main: debug.Module{Version: "(devel)"}}, true)

	assert.Equal(t, Version, Get().Version)
}

func TestInfoString(t *testing.T) {
	info := Info{
		Version:   "v1.0.0",
		GitCommit: "abc123",
		BuildDate: "2026-01-29",
		GoVersion: "go1.25",
	}

	str := info.String()

	assert.Contains(t, str, "plugin-init version v1.0.0")
	assert.Contains(t, str, "abc123")
	assert.Contains(t, str, "2026-01-29")
	assert.Contains(t, str, "go1.25")
	assert.NotContains(t, str, "dirty")

	info.Modified = true
	assert.Contains(t, info.String(), "abc123-dirty")
}
