package rewrite

import (
	"path"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/require"

	"github.com/asaapi/plugin-init/internal/identity"
	"github.com/asaapi/plugin-init/internal/testutil"
	"github.com/asaapi/plugin-init/internal/workspace"
)

const testRoot = "/tpl"

func newWorkspace(t *testing.T, omit ...string) (*workspace.Workspace, afero.Fs) {
	t.Helper()
	fsys := testutil.TemplateFs(t, testRoot, omit...)
	ws, err := workspace.New(fsys, testRoot)
	require.NoError(t, err)
	return ws, fsys
}

func mustIdentity(t *testing.T, name, description string) identity.Identity {
	t.Helper()
	id, err := identity.New(name, description)
	require.NoError(t, err)
	return id
}

func read(t *testing.T, fsys afero.Fs, rel string) string {
	t.Helper()
	data, err := afero.ReadFile(fsys, testRoot+"/"+rel)
	require.NoError(t, err)
	return string(data)
}

func write(t *testing.T, fsys afero.Fs, rel, content string) {
	t.Helper()
	p := path.Join(testRoot, rel)
	require.NoError(t, fsys.MkdirAll(path.Dir(p), 0o755))
	require.NoError(t, afero.WriteFile(fsys, p, []byte(content), 0o644))
}

func exists(t *testing.T, fsys afero.Fs, rel string) bool {
	t.Helper()
	ok, err := afero.Exists(fsys, testRoot+"/"+rel)
	require.NoError(t, err)
	return ok
}
