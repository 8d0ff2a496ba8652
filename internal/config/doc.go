// Package config manages user-level settings stored at ~/.cm-cli/config.yaml.
// It provides functions to load, read, and write configuration keys such as
// the default channel and fetch mode, the host application path, and the
// python interpreter used for post-install scripts.
package config
