package rewrite

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/asaapi/plugin-init/internal/output"
	"github.com/asaapi/plugin-init/internal/testutil"
)

func TestRewriteDirectory(t *testing.T) {
	ctx := context.Background()
	log := output.ComponentLogger("test")

	t.Run("replaces every occurrence in immediate files", func(t *testing.T) {
		ws, fsys := newWorkspace(t)
		write(t, fsys, "Source/Nested/Deep.cpp", "PluginTemplate")

		job := DirectoryJob{Dir: "Source", Token: "PluginTemplate", Replacement: "Foo"}
		summary, res, err := RewriteDirectory(ctx, ws, job, log)
		require.NoError(t, err)

		assert.Equal(t, DirectorySummary{Dir: "Source", FilesScanned: 2, FilesModified: 2, Replacements: 6}, summary)
		assert.Len(t, res.Changes, 6)
		assert.NotContains(t, read(t, fsys, "Source/PluginTemplate.cpp"), "PluginTemplate")
		assert.Contains(t, read(t, fsys, "Source/PluginTemplate.cpp"), `#include "Foo.h"`)
		assert.Equal(t, "PluginTemplate", read(t, fsys, "Source/Nested/Deep.cpp"), "subdirectories are not descended into")
	})

	t.Run("files without the token are untouched", func(t *testing.T) {
		ws, _ := newWorkspace(t)

		job := DirectoryJob{Dir: "Source/Public", Token: "PluginTemplate", Replacement: "Foo"}
		summary, _, err := RewriteDirectory(ctx, ws, job, log)
		require.NoError(t, err)

		assert.Equal(t, 4, summary.FilesScanned)
		assert.Equal(t, 2, summary.FilesModified)
		for _, e := range ws.Journal() {
			assert.NotEqual(t, "Source/Public/Utils.h", e.Path)
			assert.NotEqual(t, "Source/Public/Config.h", e.Path)
		}
	})

	t.Run("token is matched literally", func(t *testing.T) {
		ws, fsys := newWorkspace(t)
		write(t, fsys, "Source/Dots.h", "a.b axb")

		job := DirectoryJob{Dir: "Source", Token: "a.b", Replacement: "Z"}
		_, _, err := RewriteDirectory(ctx, ws, job, log)
		require.NoError(t, err)
		assert.Equal(t, "Z axb", read(t, fsys, "Source/Dots.h"))
	})

	t.Run("cancelled context", func(t *testing.T) {
		ws, _ := newWorkspace(t)
		cctx, cancel := context.WithCancel(ctx)
		cancel()

		_, _, err := RewriteDirectory(cctx, ws, DirectoryJob{Dir: "Source", Token: "PluginTemplate", Replacement: "Foo"}, log)
		assert.ErrorIs(t, err, context.Canceled)
	})
}

func TestSourceRewriter(t *testing.T) {
	ctx := context.Background()
	id := mustIdentity(t, "Foo", "Bar")

	t.Run("rewrites both directories", func(t *testing.T) {
		ws, fsys := newWorkspace(t)

		res, err := NewSourceRewriter().Apply(ctx, ws, id)
		require.NoError(t, err)
		assert.NotEmpty(t, res.Changes)

		for _, rel := range []string{"Source/PluginTemplate.cpp", "Source/Hooks.cpp", "Source/Public/PluginTemplate.h", "Source/Public/Hooks.h"} {
			assert.NotContains(t, read(t, fsys, rel), "PluginTemplate", rel)
		}
		assert.Equal(t, testutil.TemplateContent(t, "Source/Public/Utils.h"), read(t, fsys, "Source/Public/Utils.h"))
	})

	t.Run("second run is a no-op", func(t *testing.T) {
		ws, _ := newWorkspace(t)
		_, err := NewSourceRewriter().Apply(ctx, ws, id)
		require.NoError(t, err)
		writes := len(ws.Journal())

		res, err := NewSourceRewriter().Apply(ctx, ws, id)
		require.NoError(t, err)
		assert.Empty(t, res.Changes)
		assert.Len(t, ws.Journal(), writes)
	})

	t.Run("missing directories are skipped", func(t *testing.T) {
		ws, _ := newWorkspace(t,
			"Source/PluginTemplate.cpp", "Source/Hooks.cpp",
			"Source/Public/PluginTemplate.h", "Source/Public/Hooks.h",
			"Source/Public/Utils.h", "Source/Public/Config.h",
		)

		res, err := NewSourceRewriter().Apply(ctx, ws, id)
		require.NoError(t, err)
		assert.True(t, res.Empty())
	})
}
