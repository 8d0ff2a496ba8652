// Package listing filters registry nodes by their on-disk state and renders
// them for the show commands.
package listing

import (
	"fmt"
	"io"
	"iter"
	"log/slog"
	"path/filepath"
	"strings"

	"github.com/toxicwind/ComfyUI-Manager/internal/lifecycle"
	"github.com/toxicwind/ComfyUI-Manager/internal/registry"
)

// Filter selects which nodes a listing includes.
type Filter string

const (
	FilterInstalled    Filter = "installed"
	FilterEnabled      Filter = "enabled"
	FilterDisabled     Filter = "disabled"
	FilterNotInstalled Filter = "not-installed"
	FilterAll          Filter = "all"
)

// Filters returns every accepted filter name.
func Filters() []string {
	return []string{
		string(FilterInstalled), string(FilterEnabled), string(FilterNotInstalled),
		string(FilterDisabled), string(FilterAll),
	}
}

// ParseFilter validates s as a Filter.
func ParseFilter(s string) (Filter, error) {
	for _, f := range Filters() {
		if s == f {
			return Filter(s), nil
		}
	}
	return "", fmt.Errorf("invalid filter %q (expected one of: %s)", s, strings.Join(Filters(), ", "))
}

// Matches reports whether a node in state passes the filter.
func (f Filter) Matches(state lifecycle.State) bool {
	switch f {
	case FilterAll:
		return true
	case FilterInstalled:
		return state.Installed()
	case FilterEnabled:
		return state == lifecycle.Enabled
	case FilterDisabled:
		return state == lifecycle.Disabled
	case FilterNotInstalled:
		return state == lifecycle.NotInstalled
	default:
		return false
	}
}

// Entry is one listed node.
type Entry struct {
	ID     string
	State  lifecycle.State
	Author string
	// Inconsistent is set when both the enabled and disabled paths exist;
	// State is then Enabled.
	Inconsistent bool
}

// Lister produces entries for a mapping.
type Lister struct {
	Mapping   *registry.Mapping
	Inspector lifecycle.Inspector
	NodesDir  string
	Logger    *slog.Logger
}

// List yields the mapping's nodes that pass filter, in mapping order. The
// filesystem is probed while iterating, so each iteration sees current
// state.
func (l *Lister) List(filter Filter) iter.Seq[Entry] {
	return func(yield func(Entry) bool) {
		for id, node := range l.Mapping.All() {
			p := l.inspector().Probe(filepath.Join(l.NodesDir, id))
			e := Entry{ID: id, State: p.State(), Author: node.Author, Inconsistent: p.Inconsistent()}
			if e.Inconsistent && l.Logger != nil {
				l.Logger.Warn("node has both enabled and disabled copies", "node", id)
			}
			if !filter.Matches(e.State) {
				continue
			}
			if !yield(e) {
				return
			}
		}
	}
}

// List is a shorthand for a Lister without logging.
func List(mapping *registry.Mapping, inspector lifecycle.Inspector, nodesDir string, filter Filter) iter.Seq[Entry] {
	l := &Lister{Mapping: mapping, Inspector: inspector, NodesDir: nodesDir}
	return l.List(filter)
}

func (l *Lister) inspector() lifecycle.Inspector {
	if l.Inspector != nil {
		return l.Inspector
	}
	return lifecycle.FSInspector{}
}

const idWidth = 50

func prefix(state lifecycle.State) string {
	switch state {
	case lifecycle.Enabled:
		return "[    ENABLED    ] "
	case lifecycle.Disabled:
		return "[    DISABLED   ] "
	default:
		return "[ NOT INSTALLED ] "
	}
}

// WriteVerbose writes one status line per entry with the author.
func WriteVerbose(w io.Writer, entries iter.Seq[Entry]) error {
	for e := range entries {
		if _, err := fmt.Fprintf(w, "%s %-*s(author: %s)\n", prefix(e.State), idWidth, e.ID, e.Author); err != nil {
			return err
		}
	}
	return nil
}

// WriteSimple writes one padded identifier per entry.
func WriteSimple(w io.Writer, entries iter.Seq[Entry]) error {
	for e := range entries {
		if _, err := fmt.Fprintf(w, "%-*s\n", idWidth, e.ID); err != nil {
			return err
		}
	}
	return nil
}
