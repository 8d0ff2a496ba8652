// Package channel is the channel directory: the set of named registry
// sources a request may select, each mapped to the location its registry
// documents are fetched from.
//
// Built-in channels are embedded from channels.list. A user channels.list in
// the manager directory adds channels or overrides built-in locations.
package channel

import (
	"bufio"
	_ "embed"
	"fmt"
	"io"
	"log/slog"
	"os"
	"sort"
	"strings"

	"github.com/toxicwind/ComfyUI-Manager/internal/branding"
)

// Separator splits a channel name from its location on one line.
const Separator = "::"

// DefaultName is the channel used when none is configured.
const DefaultName = "default"

//go:embed channels.list
var builtin string

// Directory lists the known channels.
type Directory interface {
	// Known returns channel name -> backing location.
	Known() (map[string]string, error)
}

// FileDirectory merges the built-in channels with an optional user file.
type FileDirectory struct {
	Path   string // user channels.list; a missing file is not an error
	Logger *slog.Logger
}

// Compile-time check that FileDirectory implements Directory.
var _ Directory = (*FileDirectory)(nil)

// Known returns the built-in channels overlaid with the user file's entries.
func (d *FileDirectory) Known() (map[string]string, error) {
	channels, _, _ := Parse(strings.NewReader(builtin))
	if loc := branding.DefaultChannelURL(); loc != "" {
		channels[DefaultName] = strings.TrimRight(loc, "/")
	}

	if d.Path == "" {
		return channels, nil
	}

	f, err := os.Open(d.Path)
	if os.IsNotExist(err) {
		return channels, nil
	}
	if err != nil {
		return nil, fmt.Errorf("opening channel list %s: %w", d.Path, err)
	}
	defer f.Close()

	user, malformed, err := Parse(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", d.Path, err)
	}
	for _, line := range malformed {
		d.logger().Warn("ignoring malformed channel entry", "file", d.Path, "line", line)
	}
	for name, location := range user {
		channels[name] = location
	}
	return channels, nil
}

func (d *FileDirectory) logger() *slog.Logger {
	if d.Logger != nil {
		return d.Logger
	}
	return slog.Default()
}

// Parse reads "name::location" lines. Blank lines and lines starting with
// '#' are skipped. Lines without a separator, or with an empty name or
// location, are returned in malformed.
func Parse(r io.Reader) (channels map[string]string, malformed []string, err error) {
	channels = make(map[string]string)
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		name, location, ok := strings.Cut(line, Separator)
		name = strings.TrimSpace(name)
		location = strings.TrimSpace(location)
		if !ok || name == "" || location == "" {
			malformed = append(malformed, line)
			continue
		}
		channels[name] = strings.TrimRight(location, "/")
	}
	if err = scanner.Err(); err != nil {
		return nil, nil, fmt.Errorf("reading channel list: %w", err)
	}
	return channels, malformed, nil
}

// Names returns the channel names in sorted order.
func Names(channels map[string]string) []string {
	names := make([]string, 0, len(channels))
	for name := range channels {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Template returns the content written to a fresh user channels.list.
func Template() string {
	var b strings.Builder
	b.WriteString("# Channels available to --channel, one per line as <name>::<location>.\n")
	b.WriteString("# A location is an http(s) URL or a local directory holding custom-node-list.json.\n")
	b.WriteString("# Entries here override the built-in channels below.\n")
	b.WriteString("#\n")
	for _, line := range strings.Split(strings.TrimSpace(builtin), "\n") {
		b.WriteString("# " + line + "\n")
	}
	return b.String()
}
