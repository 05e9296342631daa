package output

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRenderFileTree(t *testing.T) {
	t.Run("empty input renders nothing", func(t *testing.T) {
		assert.Empty(t, RenderFileTree("root", nil))
	})

	t.Run("directories sort before files", func(t *testing.T) {
		out := RenderFileTree("Foo", map[string]string{
			"Foo.sln":                    "",
			"Source/Foo.cpp":             "",
			"Source/Public/Foo.h":        "",
			"AsaApi.Plugins.Foo.vcxproj": "",
		})

		lines := strings.Split(strings.TrimSuffix(out, "\n"), "\n")
		assert.Contains(t, lines[0], "Foo/")
		assert.Contains(t, lines[1], "Source/")
		assert.Contains(t, out, "└── Foo.sln")
		assert.Contains(t, out, "Public/")

		sourceIdx := strings.Index(out, "Source/")
		slnIdx := strings.Index(out, "Foo.sln")
		assert.Less(t, sourceIdx, slnIdx)
	})
}

func TestRenderRenameTree(t *testing.T) {
	out := RenderRenameTree("plugin", []RenameEntry{
		{Old: "PluginTemplate.sln", New: "Foo.sln"},
		{Old: "Source/PluginTemplate.cpp", New: "Source/Foo.cpp"},
	})

	assert.Contains(t, out, "Foo.sln")
	assert.Contains(t, out, "was PluginTemplate.sln")
	assert.Contains(t, out, "Foo.cpp")
	assert.Contains(t, out, "was PluginTemplate.cpp")
}
