package batch

import (
	"fmt"
	"slices"
)

// Operation is a lifecycle operation applied by the dispatcher.
type Operation string

const (
	OpInstall   Operation = "install"
	OpUninstall Operation = "uninstall"
	OpUpdate    Operation = "update"
	OpEnable    Operation = "enable"
	OpDisable   Operation = "disable"
)

// Operations lists every operation in command order.
func Operations() []Operation {
	return []Operation{OpInstall, OpUninstall, OpUpdate, OpDisable, OpEnable}
}

// ParseOperation validates s as an Operation.
func ParseOperation(s string) (Operation, error) {
	op := Operation(s)
	if slices.Contains(Operations(), op) {
		return op, nil
	}
	return "", fmt.Errorf("unknown operation %q", s)
}

// Gerund returns the "-ing" form used in messages, e.g. "installing".
func (op Operation) Gerund() string {
	switch op {
	case OpEnable:
		return "enabling"
	case OpDisable:
		return "disabling"
	case OpUpdate:
		return "updating"
	default:
		return string(op) + "ing"
	}
}

// Request is an immutable description of one batch: the operation, the
// distinct node identifiers, and the channel and mode the mapping was
// resolved with.
type Request struct {
	op      Operation
	ids     []string
	channel string
	mode    string
}

// NewRequest builds a Request. Duplicate identifiers collapse to one and
// the result is sorted; callers must not depend on processing order.
func NewRequest(op Operation, ids []string, channel, mode string) Request {
	set := slices.Clone(ids)
	slices.Sort(set)
	return Request{
		op:      op,
		ids:     slices.Compact(set),
		channel: channel,
		mode:    mode,
	}
}

func (r Request) Op() Operation   { return r.op }
func (r Request) Channel() string { return r.channel }
func (r Request) Mode() string    { return r.mode }

// IDs returns a copy of the node identifiers.
func (r Request) IDs() []string { return slices.Clone(r.ids) }

// Len returns the number of distinct identifiers.
func (r Request) Len() int { return len(r.ids) }
