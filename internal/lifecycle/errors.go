package lifecycle

import (
	"errors"
	"fmt"
)

// ErrStateInconsistency is returned when a node's enabled and disabled paths
// both exist. Nothing repairs this automatically; enable and disable refuse
// to rename over either path.
var ErrStateInconsistency = errors.New("both enabled and disabled paths exist")

// ErrAlreadyInstalled is returned by install when the node is present on disk
// in either form.
var ErrAlreadyInstalled = errors.New("already installed")

// ErrNotInstalled is returned when an operation needs a node that is absent.
var ErrNotInstalled = errors.New("not installed")

// ErrUnsafePath is returned for a node path that would leave the custom
// nodes directory.
var ErrUnsafePath = errors.New("refusing unsafe node path")

// OperationError records a failed transition for one node.
type OperationError struct {
	Op   string // "install", "uninstall", "update", "enable", "disable"
	Node string
	Err  error
}

func (e *OperationError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Op, e.Node, e.Err)
}

func (e *OperationError) Unwrap() error {
	return e.Err
}
