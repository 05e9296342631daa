package rewrite

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	oerrors "github.com/asaapi/plugin-init/internal/errors"
)

func TestRenameMappings(t *testing.T) {
	got := RenameMappings(mustIdentity(t, "Foo", ""))
	assert.Equal(t, []Rename{
		{Old: "PluginTemplate.sln", New: "Foo.sln"},
		{Old: "AsaApi.Plugins.Template.vcxproj", New: "AsaApi.Plugins.Foo.vcxproj"},
		{Old: "AsaApi.Plugins.Template.vcxproj.filters", New: "AsaApi.Plugins.Foo.vcxproj.filters"},
		{Old: "AsaApi.Plugins.Template.vcxproj.user", New: "AsaApi.Plugins.Foo.vcxproj.user"},
		{Old: "Source/PluginTemplate.cpp", New: "Source/Foo.cpp"},
		{Old: "Source/Public/PluginTemplate.h", New: "Source/Public/Foo.h"},
	}, got)
}

func TestFileRenamer(t *testing.T) {
	ctx := context.Background()
	id := mustIdentity(t, "Foo", "Bar")

	t.Run("renames every template file", func(t *testing.T) {
		ws, fsys := newWorkspace(t)

		res, err := NewFileRenamer().Apply(ctx, ws, id)
		require.NoError(t, err)
		assert.Len(t, res.Renames, 6)

		for _, m := range RenameMappings(id) {
			assert.False(t, exists(t, fsys, m.Old), m.Old)
			assert.True(t, exists(t, fsys, m.New), m.New)
		}
	})

	t.Run("missing files are skipped", func(t *testing.T) {
		ws, fsys := newWorkspace(t, "AsaApi.Plugins.Template.vcxproj.user", "Source/PluginTemplate.cpp")

		res, err := NewFileRenamer().Apply(ctx, ws, id)
		require.NoError(t, err)
		assert.Len(t, res.Renames, 4)
		assert.True(t, exists(t, fsys, "Foo.sln"))
	})

	t.Run("existing target fails that rename only", func(t *testing.T) {
		ws, fsys := newWorkspace(t)
		write(t, fsys, "Foo.sln", "mine")

		res, err := NewFileRenamer().Apply(ctx, ws, id)
		require.Error(t, err)
		assert.ErrorIs(t, err, oerrors.ErrFilesystem)
		assert.Len(t, res.Renames, 5)
		assert.Equal(t, "mine", read(t, fsys, "Foo.sln"))
		assert.True(t, exists(t, fsys, "PluginTemplate.sln"))
		assert.True(t, exists(t, fsys, "Source/Foo.cpp"))
	})

	t.Run("name equal to the template is a no-op", func(t *testing.T) {
		ws, _ := newWorkspace(t)

		res, err := NewFileRenamer().Apply(ctx, ws, mustIdentity(t, "PluginTemplate", ""))
		require.NoError(t, err)
		assert.Len(t, res.Renames, 3, "only the vcxproj family changes name")
	})
}
