package lifecycle

import (
	"fmt"
	"os"
	"path/filepath"
)

// DisabledSuffix is appended to a node's base path while it is disabled.
const DisabledSuffix = ".disabled"

// State is a node's lifecycle state, derived from the filesystem.
type State int

const (
	NotInstalled State = iota
	Enabled
	Disabled
)

// String returns the state name used in filters and logs.
func (s State) String() string {
	switch s {
	case Enabled:
		return "enabled"
	case Disabled:
		return "disabled"
	case NotInstalled:
		return "not-installed"
	default:
		return "unknown"
	}
}

// Installed reports whether the node is present on disk in either form.
func (s State) Installed() bool {
	return s == Enabled || s == Disabled
}

// Probe is the raw result of checking both candidate paths.
type Probe struct {
	Enabled  bool // base path exists
	Disabled bool // base path + DisabledSuffix exists
}

// State collapses the probe to a State. When both paths exist the node is
// reported as Enabled; Inconsistent tells callers that happened.
func (p Probe) State() State {
	switch {
	case p.Enabled:
		return Enabled
	case p.Disabled:
		return Disabled
	default:
		return NotInstalled
	}
}

// Inconsistent is true when both the enabled and disabled paths exist.
func (p Probe) Inconsistent() bool {
	return p.Enabled && p.Disabled
}

// Inspector determines a node's state from its base path.
type Inspector interface {
	Inspect(basePath string) State
	Probe(basePath string) Probe
}

// FSInspector inspects state by checking path existence on the local
// filesystem. It holds no state and never caches.
type FSInspector struct{}

// Compile-time check that FSInspector implements Inspector.
var _ Inspector = FSInspector{}

// Inspect returns Enabled if basePath exists, Disabled if only the disabled
// variant exists, and NotInstalled otherwise.
func (FSInspector) Inspect(basePath string) State {
	return FSInspector{}.Probe(basePath).State()
}

// Probe checks both candidate paths.
func (FSInspector) Probe(basePath string) Probe {
	return Probe{
		Enabled:  exists(basePath),
		Disabled: exists(DisabledPath(basePath)),
	}
}

// DisabledPath returns the disabled variant of a base path.
func DisabledPath(basePath string) string {
	return basePath + DisabledSuffix
}

// NodePath joins id onto nodesDir, rejecting any id that does not name a
// direct child of nodesDir.
func NodePath(nodesDir, id string) (string, error) {
	root := filepath.Clean(nodesDir)
	path := filepath.Join(root, id)
	if nodesDir == "" || id == "" || filepath.Dir(path) != root || filepath.Base(path) != id {
		return "", fmt.Errorf("%w: %q", ErrUnsafePath, id)
	}
	return path, nil
}

func exists(path string) bool {
	_, err := os.Lstat(path)
	return err == nil
}
