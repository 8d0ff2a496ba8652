package userdata

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetHostRoot_EnvOverride(t *testing.T) {
	t.Setenv("COMFYUI_PATH", "/opt/comfy")
	root, err := GetHostRoot()
	require.NoError(t, err)
	assert.Equal(t, "/opt/comfy", root.Path)
	assert.False(t, root.Assumed)
}

func TestGetHostRoot_Config(t *testing.T) {
	viper.Reset()
	t.Cleanup(viper.Reset)
	t.Setenv("COMFYUI_PATH", "")
	viper.Set("comfyui_path", "/srv/comfy")

	root, err := GetHostRoot()
	require.NoError(t, err)
	assert.Equal(t, "/srv/comfy", root.Path)
	assert.False(t, root.Assumed)
}

func TestGetHostRoot_FallsBackToWorkingDir(t *testing.T) {
	viper.Reset()
	t.Cleanup(viper.Reset)
	t.Setenv("COMFYUI_PATH", "")

	wd, err := os.Getwd()
	require.NoError(t, err)

	root, err := GetHostRoot()
	require.NoError(t, err)
	assert.Equal(t, wd, root.Path)
	assert.True(t, root.Assumed)
}

func TestGetCustomNodesRoot(t *testing.T) {
	t.Setenv("CMCLI_CUSTOM_NODES", "")
	t.Setenv("COMFYUI_PATH", "/opt/comfy")
	dir, err := GetCustomNodesRoot()
	require.NoError(t, err)
	assert.Equal(t, "/opt/comfy/custom_nodes", dir)

	t.Setenv("CMCLI_CUSTOM_NODES", "/tmp/nodes")
	dir, err = GetCustomNodesRoot()
	require.NoError(t, err)
	assert.Equal(t, "/tmp/nodes", dir)
}

func TestLocateCustomNodes_ReportsAssumedRoot(t *testing.T) {
	viper.Reset()
	t.Cleanup(viper.Reset)
	t.Setenv("CMCLI_CUSTOM_NODES", "")
	t.Setenv("COMFYUI_PATH", "")

	wd, err := os.Getwd()
	require.NoError(t, err)

	dir, assumed, err := LocateCustomNodes()
	require.NoError(t, err)
	assert.True(t, assumed)
	assert.Equal(t, filepath.Join(wd, "custom_nodes"), dir)

	t.Setenv("COMFYUI_PATH", "/opt/comfy")
	_, assumed, err = LocateCustomNodes()
	require.NoError(t, err)
	assert.False(t, assumed)
}

func TestManagerPaths(t *testing.T) {
	t.Setenv("CMCLI_MANAGER_PATH", "/tmp/mgr")

	assert.Equal(t, "/tmp/mgr", GetManagerRoot())
	assert.Equal(t, "/tmp/mgr/startup-scripts", GetStartupScriptsDir())
	assert.Equal(t, filepath.Join("/tmp/mgr", "startup-scripts", "install-scripts.txt"), GetInstallScriptsPath())
	assert.Equal(t, filepath.Join("/tmp/mgr", "startup-scripts", "restore-snapshot.json"), GetRestoreSnapshotPath())
	assert.Equal(t, "/tmp/mgr/cache", GetCacheDir())
	assert.Equal(t, "/tmp/mgr/channels.list", GetChannelsListPath())
}

func TestPermissionConstants(t *testing.T) {
	assert.Equal(t, os.FileMode(0755), DirPermNormal)
	assert.Equal(t, os.FileMode(0644), FilePermNormal)
}
