package userdata

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/toxicwind/ComfyUI-Manager/internal/branding"
	"github.com/toxicwind/ComfyUI-Manager/internal/config"
)

// Directory and file name constants for the manager layout.
const (
	CustomNodesDir     = "custom_nodes"
	StartupScriptsDir  = "startup-scripts"
	CacheDir           = "cache"
	ChannelsListFile   = "channels.list"
	InstallScriptsFile = "install-scripts.txt"
	RestoreSnapshot    = "restore-snapshot.json"
)

// Permission constants.
const (
	DirPermNormal  os.FileMode = 0755
	FilePermNormal os.FileMode = 0644
)

// HostRoot is the resolved host application root.
type HostRoot struct {
	Path string
	// Assumed is true when neither the env var nor the config named a path
	// and the current working directory was used instead.
	Assumed bool
}

// GetHostRoot returns the host application root. It checks the
// COMFYUI_PATH environment variable first, then the comfyui_path config key,
// then falls back to the current working directory.
func GetHostRoot() (HostRoot, error) {
	if v := os.Getenv(branding.HostPathEnv()); v != "" {
		return HostRoot{Path: v}, nil
	}
	if v := config.Get(config.KeyComfyUIPath); v != "" {
		return HostRoot{Path: v}, nil
	}
	wd, err := os.Getwd()
	if err != nil {
		return HostRoot{}, fmt.Errorf("resolving working directory: %w", err)
	}
	return HostRoot{Path: wd, Assumed: true}, nil
}

// GetCustomNodesRoot returns the directory nodes are installed into.
// It checks the CMCLI_CUSTOM_NODES environment variable first,
// then falls back to <host root>/custom_nodes.
func GetCustomNodesRoot() (string, error) {
	dir, _, err := LocateCustomNodes()
	return dir, err
}

// LocateCustomNodes is GetCustomNodesRoot that also reports whether the
// directory hangs off an assumed host root (the working directory).
func LocateCustomNodes() (dir string, assumed bool, err error) {
	if v := os.Getenv(branding.EnvVar("CUSTOM_NODES")); v != "" {
		return v, false, nil
	}
	host, err := GetHostRoot()
	if err != nil {
		return "", false, err
	}
	return filepath.Join(host.Path, CustomNodesDir), host.Assumed, nil
}

// GetManagerRoot returns the manager directory (~/.cm-cli by default).
func GetManagerRoot() string {
	return config.Dir()
}

// GetStartupScriptsDir returns the directory holding deferred startup work.
func GetStartupScriptsDir() string {
	return filepath.Join(GetManagerRoot(), StartupScriptsDir)
}

// GetInstallScriptsPath returns the path of the deferred install-script queue.
func GetInstallScriptsPath() string {
	return filepath.Join(GetStartupScriptsDir(), InstallScriptsFile)
}

// GetRestoreSnapshotPath returns the path of a pending restore snapshot.
func GetRestoreSnapshotPath() string {
	return filepath.Join(GetStartupScriptsDir(), RestoreSnapshot)
}

// GetCacheDir returns the registry document cache directory.
func GetCacheDir() string {
	return filepath.Join(GetManagerRoot(), CacheDir)
}

// GetChannelsListPath returns the path of the user's channels.list.
func GetChannelsListPath() string {
	return filepath.Join(GetManagerRoot(), ChannelsListFile)
}
