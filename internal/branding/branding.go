// Package branding provides compile-time identity values for the CLI.
//
// Identity lives in branding.yaml next to this file and is baked into the
// binary with //go:embed. Hard defaults cover a missing or empty file.
package branding

import (
	_ "embed"
	"strings"
	"sync"

	"go.yaml.in/yaml/v3"
)

//go:embed branding.yaml
var rawBranding []byte

var (
	once     sync.Once
	defaults brand
)

type brand struct {
	CLIName        string `yaml:"cli_name"`
	DisplayName    string `yaml:"display_name"`
	Description    string `yaml:"description"`
	HomeDir        string `yaml:"home_dir"`
	EnvPrefix      string `yaml:"env_prefix"`
	HostName       string `yaml:"host_name"`
	HostPathEnv    string `yaml:"host_path_env"`
	DefaultChannel string `yaml:"default_channel_url"`
}

func load() {
	once.Do(func() {
		defaults = brand{
			CLIName:        "cm-cli",
			DisplayName:    "ComfyUI-Manager CLI",
			Description:    "Install, update, enable and disable ComfyUI custom nodes",
			HomeDir:        ".cm-cli",
			EnvPrefix:      "CMCLI",
			HostName:       "ComfyUI",
			HostPathEnv:    "COMFYUI_PATH",
			DefaultChannel: "https://raw.githubusercontent.com/ltdrdata/ComfyUI-Manager/main",
		}
		_ = yaml.Unmarshal(rawBranding, &defaults)
	})
}

// CLIName returns the root command name (e.g., "cm-cli").
func CLIName() string { load(); return defaults.CLIName }

// DisplayName returns the human-readable product name.
func DisplayName() string { load(); return defaults.DisplayName }

// Description returns the short product description.
func Description() string { load(); return defaults.Description }

// HomeDir returns the dot-directory name under $HOME (e.g., ".cm-cli").
func HomeDir() string { load(); return defaults.HomeDir }

// EnvPrefix returns the environment variable prefix (e.g., "CMCLI").
func EnvPrefix() string { load(); return defaults.EnvPrefix }

// HostName returns the name of the host application whose nodes are managed.
func HostName() string { load(); return defaults.HostName }

// HostPathEnv returns the env var naming the host application root.
func HostPathEnv() string { load(); return defaults.HostPathEnv }

// DefaultChannelURL returns the location backing the "default" channel.
func DefaultChannelURL() string { load(); return defaults.DefaultChannel }

// EnvVar returns a fully qualified env var name, e.g., EnvVar("HOME") → "CMCLI_HOME".
func EnvVar(suffix string) string {
	load()
	return defaults.EnvPrefix + "_" + strings.ToUpper(suffix)
}
