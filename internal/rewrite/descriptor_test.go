package rewrite

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	oerrors "github.com/asaapi/plugin-init/internal/errors"
	"github.com/asaapi/plugin-init/internal/testutil"
)

func lineOf(content string, n int) string {
	return strings.Split(content, "\n")[n-1]
}

func TestSolutionRewriter(t *testing.T) {
	ctx := context.Background()
	id := mustIdentity(t, "Foo", "Bar")

	t.Run("rewrites the project declaration only", func(t *testing.T) {
		ws, fsys := newWorkspace(t)

		res, err := NewSolutionRewriter().Apply(ctx, ws, id)
		require.NoError(t, err)
		require.Len(t, res.Changes, 1)
		assert.Equal(t, 6, res.Changes[0].Line)

		got := read(t, fsys, SolutionFile)
		line := lineOf(got, 6)
		assert.Contains(t, line, `"Foo"`)
		assert.Contains(t, line, `"AsaApi.Plugins.Foo.vcxproj"`)
		assert.NotContains(t, got, "PluginTemplate")

		pristine := strings.Split(testutil.TemplateContent(t, SolutionFile), "\n")
		rewritten := strings.Split(got, "\n")
		require.Len(t, rewritten, len(pristine))
		for i := range pristine {
			if i == 5 {
				continue
			}
			assert.Equal(t, pristine[i], rewritten[i], "line %d", i+1)
		}
	})

	t.Run("second run changes nothing", func(t *testing.T) {
		ws, _ := newWorkspace(t)
		_, err := NewSolutionRewriter().Apply(ctx, ws, id)
		require.NoError(t, err)
		writes := len(ws.Journal())

		res, err := NewSolutionRewriter().Apply(ctx, ws, id)
		require.NoError(t, err)
		assert.Empty(t, res.Changes)
		assert.NotEmpty(t, res.Diagnostics)
		assert.Len(t, ws.Journal(), writes)
	})

	t.Run("missing file", func(t *testing.T) {
		ws, _ := newWorkspace(t, SolutionFile)
		_, err := NewSolutionRewriter().Apply(ctx, ws, id)
		assert.ErrorIs(t, err, oerrors.ErrMissingFile)
	})
}

func TestFiltersRewriter(t *testing.T) {
	ctx := context.Background()
	id := mustIdentity(t, "Foo", "Bar")

	t.Run("rewrites both entries", func(t *testing.T) {
		ws, fsys := newWorkspace(t)

		res, err := NewFiltersRewriter().Apply(ctx, ws, id)
		require.NoError(t, err)
		require.Len(t, res.Changes, 2)
		assert.Equal(t, 45, res.Changes[0].Line)
		assert.Equal(t, 59, res.Changes[1].Line)

		got := read(t, fsys, FiltersFile)
		assert.Equal(t, `    <ClCompile Include="Source\Foo.cpp">`, lineOf(got, 45))
		assert.Equal(t, `    <ClInclude Include="Source\Public\Foo.h">`, lineOf(got, 59))
		assert.NotContains(t, got, "PluginTemplate")
	})

	t.Run("entry that moved is still found", func(t *testing.T) {
		ws, fsys := newWorkspace(t)
		write(t, fsys, FiltersFile, "<Project>\n"+testutil.TemplateContent(t, FiltersFile))

		res, err := NewFiltersRewriter().Apply(ctx, ws, id)
		require.NoError(t, err)
		require.Len(t, res.Changes, 2)
		assert.Equal(t, 46, res.Changes[0].Line)
		assert.Equal(t, 60, res.Changes[1].Line)
	})

	t.Run("missing file", func(t *testing.T) {
		ws, _ := newWorkspace(t, FiltersFile)
		_, err := NewFiltersRewriter().Apply(ctx, ws, id)
		assert.ErrorIs(t, err, oerrors.ErrMissingFile)
	})
}

func TestProjectRewriter(t *testing.T) {
	ctx := context.Background()
	id := mustIdentity(t, "Foo", "Bar")

	t.Run("rewrites the five declarations", func(t *testing.T) {
		ws, fsys := newWorkspace(t)

		res, err := NewProjectRewriter().Apply(ctx, ws, id)
		require.NoError(t, err)
		require.Len(t, res.Changes, 5)
		assert.Empty(t, res.Diagnostics)

		got := read(t, fsys, ProjectFile)
		assert.Equal(t, `    <ClCompile Include="Source\Foo.cpp" />`, lineOf(got, 20))
		assert.Equal(t, `    <ClInclude Include="Source\Public\Foo.h" />`, lineOf(got, 30))
		assert.Equal(t, `    <RootNamespace>AsaApiPluginsFoo</RootNamespace>`, lineOf(got, 40))
		assert.Equal(t, `    <ProjectName>Foo</ProjectName>`, lineOf(got, 42))
		assert.Contains(t, lineOf(got, 81), "ASAAPIPLUGINSFOO_EXPORTS;")
		assert.NotContains(t, got, "PluginTemplate")
		assert.NotContains(t, got, "ASAAPIPLUGINSTEMPLATE_EXPORTS")
	})

	t.Run("rule that does not match leaves the rest working", func(t *testing.T) {
		ws, fsys := newWorkspace(t)
		pristine := testutil.TemplateContent(t, ProjectFile)
		write(t, fsys, ProjectFile, strings.Replace(pristine, "<ProjectName>PluginTemplate</ProjectName>", "<ProjectName>Custom</ProjectName>", 1))

		res, err := NewProjectRewriter().Apply(ctx, ws, id)
		require.NoError(t, err)
		assert.Len(t, res.Changes, 4)
		require.Len(t, res.Diagnostics, 1)
		assert.Equal(t, 42, res.Diagnostics[0].Line)
		assert.Contains(t, read(t, fsys, ProjectFile), "<ProjectName>Custom</ProjectName>")
	})

	t.Run("missing file", func(t *testing.T) {
		ws, _ := newWorkspace(t, ProjectFile)
		_, err := NewProjectRewriter().Apply(ctx, ws, id)
		assert.ErrorIs(t, err, oerrors.ErrMissingFile)
	})
}
