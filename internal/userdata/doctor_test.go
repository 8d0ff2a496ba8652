package userdata

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/toxicwind/ComfyUI-Manager/internal/lifecycle"
)

func doctorSandbox(t *testing.T) (manager, nodes string) {
	t.Helper()
	manager = filepath.Join(t.TempDir(), "manager")
	host := t.TempDir()
	nodes = filepath.Join(host, "custom_nodes")
	t.Setenv("CMCLI_MANAGER_PATH", manager)
	t.Setenv("COMFYUI_PATH", host)
	t.Setenv("CMCLI_CUSTOM_NODES", "")
	return manager, nodes
}

func TestCheckInstallation_FixCreatesManagerDir(t *testing.T) {
	manager, nodes := doctorSandbox(t)
	require.NoError(t, os.MkdirAll(nodes, 0755))

	var buf bytes.Buffer
	_, err := CheckInstallation(&buf, "python3", true)
	require.NoError(t, err)

	assert.Contains(t, buf.String(), "[FIX ] Running init...")
	assert.DirExists(t, filepath.Join(manager, "startup-scripts"))
	assert.DirExists(t, filepath.Join(manager, "cache"))
}

func TestCheckInstallation_ReportsMissing(t *testing.T) {
	_, _ = doctorSandbox(t)

	var buf bytes.Buffer
	problems, err := CheckInstallation(&buf, "python3", false)
	require.NoError(t, err)

	assert.GreaterOrEqual(t, problems, 2)
	assert.Contains(t, buf.String(), "Run 'cm-cli init' to create")
	assert.Contains(t, buf.String(), "custom_nodes does not exist")
}

func TestCheckInstallation_ReportsInconsistentNodes(t *testing.T) {
	_, nodes := doctorSandbox(t)
	require.NoError(t, os.MkdirAll(filepath.Join(nodes, "foo-nodes"), 0755))
	require.NoError(t, os.MkdirAll(filepath.Join(nodes, "foo-nodes.disabled"), 0755))

	var buf bytes.Buffer
	_, err := CheckInstallation(&buf, "python3", true)
	require.NoError(t, err)

	assert.Contains(t, buf.String(), "[WARN] foo-nodes has both foo-nodes and foo-nodes.disabled")
	assert.DirExists(t, filepath.Join(nodes, "foo-nodes"))
	assert.DirExists(t, filepath.Join(nodes, "foo-nodes.disabled"))
}

func TestFindInconsistentNodes(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"a", "a.disabled", "b.disabled", "c", "z", "z.disabled"} {
		require.NoError(t, os.Mkdir(filepath.Join(dir, name), 0755))
	}

	ids, err := FindInconsistentNodes(dir, lifecycle.FSInspector{})
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "z"}, ids)
}
