package registry

import (
	"fmt"
	"iter"
	"slices"
	"strings"
)

// DocumentName is the registry document fetched for every channel.
const DocumentName = "custom-node-list.json"

// Document is the decoded registry document.
type Document struct {
	CustomNodes []Node `json:"custom_nodes"`
}

// Node is the metadata of one registry entry. Files lists its source
// locations in document order: clone sources and loose script files.
type Node struct {
	Author      string   `json:"author"`
	Title       string   `json:"title,omitempty"`
	Reference   string   `json:"reference,omitempty"`
	Files       []string `json:"files"`
	InstallType string   `json:"install_type,omitempty"`
	Description string   `json:"description,omitempty"`
}

// Mapping maps node identifiers to node metadata. It is built once per
// invocation and never mutated afterwards, so it is safe to share.
type Mapping struct {
	nodes map[string]Node
	order []string // first-registration order
}

func newMapping() *Mapping {
	return &Mapping{nodes: make(map[string]Node)}
}

// set registers node under id. A later registration replaces the metadata
// but keeps the identifier's original position.
func (m *Mapping) set(id string, node Node) {
	if _, ok := m.nodes[id]; !ok {
		m.order = append(m.order, id)
	}
	m.nodes[id] = node
}

// Lookup returns the node registered under id, or a *LookupError.
func (m *Mapping) Lookup(id string) (Node, error) {
	node, ok := m.nodes[id]
	if !ok {
		return Node{}, &LookupError{ID: id}
	}
	node.Files = slices.Clone(node.Files)
	return node, nil
}

// Len returns the number of identifiers.
func (m *Mapping) Len() int {
	return len(m.order)
}

// IDs returns the identifiers in registration order.
func (m *Mapping) IDs() []string {
	return slices.Clone(m.order)
}

// All yields identifier and metadata pairs in registration order.
func (m *Mapping) All() iter.Seq2[string, Node] {
	return func(yield func(string, Node) bool) {
		for _, id := range m.order {
			if !yield(id, m.nodes[id]) {
				return
			}
		}
	}
}

// ConfigurationError reports an unusable channel or mode. It is fatal for
// the whole invocation and is raised before anything is fetched.
type ConfigurationError struct {
	Field   string // "channel" or "mode"
	Value   string
	Allowed []string
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("invalid %s %q (expected one of: %s)", e.Field, e.Value, strings.Join(e.Allowed, ", "))
}

// LookupError reports a node identifier absent from the mapping.
type LookupError struct {
	ID string
}

func (e *LookupError) Error() string {
	return fmt.Sprintf("invalid node name %q", e.ID)
}

// DocumentError reports a registry document that failed schema validation.
type DocumentError struct {
	Location string
	Issues   []ValidationIssue
}

func (e *DocumentError) Error() string {
	var b strings.Builder
	fmt.Fprintf(&b, "registry document from %s is invalid", e.Location)
	for _, issue := range e.Issues {
		fmt.Fprintf(&b, "\n  %s: %s", issue.Path, issue.Message)
	}
	return b.String()
}
