package config

import (
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"github.com/spf13/viper"
	"github.com/toxicwind/ComfyUI-Manager/internal/branding"
)

const (
	fileName = "config"
	fileType = "yaml"
)

// Keys recognized in config.yaml (and as CMCLI_<KEY> env vars).
const (
	KeyChannel         = "channel"
	KeyMode            = "mode"
	KeyComfyUIPath     = "comfyui_path"
	KeyPython          = "python"
	KeyGitHosts        = "git_hosts"
	KeyFetchTimeout    = "fetch_timeout"
	KeyTracingExporter = "tracing.exporter"
	KeyTracingFile     = "tracing.file_path"
)

// Defaults applied when neither a flag, the config file, nor the environment
// provides a value.
const (
	DefaultChannel      = "default"
	DefaultMode         = "remote"
	DefaultPython       = "python3"
	DefaultFetchTimeout = 30 * time.Second
)

// DefaultGitHosts lists the hosting locations recognized as clone sources.
var DefaultGitHosts = []string{"github.com"}

// Dir returns the manager directory (~/.cm-cli/), or the CMCLI_MANAGER_PATH
// override when set.
func Dir() string {
	if v := os.Getenv(branding.EnvVar("MANAGER_PATH")); v != "" {
		return v
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".", branding.HomeDir())
	}
	return filepath.Join(home, branding.HomeDir())
}

// FilePath returns the full path to the config file (~/.cm-cli/config.yaml).
func FilePath() string {
	return filepath.Join(Dir(), fileName+"."+fileType)
}

// EnsureDir creates the config directory if it does not exist.
func EnsureDir() error {
	dir := Dir()
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("creating config directory %s: %w", dir, err)
	}
	return nil
}

// Load initializes Viper to read from the config file and environment.
func Load() {
	viper.SetConfigFile(FilePath())
	viper.SetConfigType(fileType)
	viper.SetEnvPrefix(branding.EnvPrefix())
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	viper.SetDefault(KeyChannel, DefaultChannel)
	viper.SetDefault(KeyMode, DefaultMode)
	viper.SetDefault(KeyPython, DefaultPython)
	viper.SetDefault(KeyGitHosts, DefaultGitHosts)
	viper.SetDefault(KeyFetchTimeout, DefaultFetchTimeout)

	// Ignore error if config file doesn't exist yet.
	_ = viper.ReadInConfig()
}

// Get returns a config value by key. Returns empty string if not set.
func Get(key string) string {
	return viper.GetString(key)
}

// Channel returns the configured default channel name.
func Channel() string {
	return viper.GetString(KeyChannel)
}

// Mode returns the configured default fetch mode.
func Mode() string {
	return viper.GetString(KeyMode)
}

// Python returns the interpreter used for pip installs and install.py.
func Python() string {
	return viper.GetString(KeyPython)
}

// GitHosts returns the hosting locations recognized as clone sources.
func GitHosts() []string {
	hosts := viper.GetStringSlice(KeyGitHosts)
	if len(hosts) == 0 {
		return DefaultGitHosts
	}
	return hosts
}

// FetchTimeout returns the timeout for a single registry document fetch.
func FetchTimeout() time.Duration {
	d := viper.GetDuration(KeyFetchTimeout)
	if d <= 0 {
		return DefaultFetchTimeout
	}
	return d
}

// Keys returns every recognized key in display order.
func Keys() []string {
	return []string{
		KeyChannel, KeyMode, KeyComfyUIPath, KeyPython,
		KeyGitHosts, KeyFetchTimeout, KeyTracingExporter, KeyTracingFile,
	}
}

// Set writes a config key-value pair and saves the config file. git_hosts
// takes a comma-separated list.
func Set(key, value string) error {
	if !slices.Contains(Keys(), key) {
		return fmt.Errorf("unknown key %q", key)
	}
	if key == KeyFetchTimeout {
		if _, err := time.ParseDuration(value); err != nil {
			return fmt.Errorf("invalid duration %q: %w", value, err)
		}
	}
	if err := EnsureDir(); err != nil {
		return err
	}

	if key == KeyGitHosts {
		var hosts []string
		for _, h := range strings.Split(value, ",") {
			if h = strings.TrimSpace(h); h != "" {
				hosts = append(hosts, h)
			}
		}
		viper.Set(key, hosts)
	} else {
		viper.Set(key, value)
	}

	configFile := FilePath()

	// Create the file if it doesn't exist.
	if _, err := os.Stat(configFile); os.IsNotExist(err) {
		f, err := os.Create(configFile)
		if err != nil {
			return fmt.Errorf("creating config file %s: %w", configFile, err)
		}
		f.Close()
	}

	if err := viper.WriteConfigAs(configFile); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}

	return nil
}
