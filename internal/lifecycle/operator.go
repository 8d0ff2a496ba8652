package lifecycle

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/toxicwind/ComfyUI-Manager/internal/registry"
)

// GitOperator performs the version-control side of a transition for the
// node's source locations. A nil error means success.
type GitOperator interface {
	Install(ctx context.Context, sources []string) error
	Uninstall(ctx context.Context, sources []string) error
	Update(ctx context.Context, sources []string) error
}

// Outcome describes what a transition did when it did not fail.
type Outcome int

const (
	// OutcomeApplied means the transition changed the node.
	OutcomeApplied Outcome = iota
	// OutcomeUnchanged means the node was already in the requested state.
	OutcomeUnchanged
	// OutcomeNotInstalled means there was nothing on disk to act on.
	OutcomeNotInstalled
)

func (o Outcome) String() string {
	switch o {
	case OutcomeApplied:
		return "applied"
	case OutcomeUnchanged:
		return "unchanged"
	case OutcomeNotInstalled:
		return "not-installed"
	default:
		return "unknown"
	}
}

// Operator applies lifecycle transitions to single nodes.
type Operator struct {
	Git       GitOperator
	Inspector Inspector
	Logger    *slog.Logger
}

// NewOperator returns an Operator probing the local filesystem.
func NewOperator(git GitOperator, logger *slog.Logger) *Operator {
	return &Operator{Git: git, Inspector: FSInspector{}, Logger: logger}
}

// Install delegates cloning the node's sources to the git operator. It does
// not check whether the node is already present; the git operator decides.
func (o *Operator) Install(ctx context.Context, id string, node registry.Node) error {
	if err := o.Git.Install(ctx, node.Files); err != nil {
		return &OperationError{Op: "install", Node: id, Err: err}
	}
	return nil
}

// Uninstall delegates removal of the node's sources to the git operator.
func (o *Operator) Uninstall(ctx context.Context, id string, node registry.Node) error {
	if err := o.Git.Uninstall(ctx, node.Files); err != nil {
		return &OperationError{Op: "uninstall", Node: id, Err: err}
	}
	return nil
}

// Update delegates refreshing the node's sources to the git operator.
func (o *Operator) Update(ctx context.Context, id string, node registry.Node) error {
	if err := o.Git.Update(ctx, node.Files); err != nil {
		return &OperationError{Op: "update", Node: id, Err: err}
	}
	return nil
}

// Enable renames the disabled variant of basePath back to basePath.
func (o *Operator) Enable(basePath string) (Outcome, error) {
	p := o.inspector().Probe(basePath)
	switch {
	case p.Inconsistent():
		return 0, &OperationError{Op: "enable", Node: filepath.Base(basePath), Err: ErrStateInconsistency}
	case p.Disabled:
		if err := os.Rename(DisabledPath(basePath), basePath); err != nil {
			return 0, &OperationError{Op: "enable", Node: filepath.Base(basePath), Err: fmt.Errorf("renaming: %w", err)}
		}
		o.logger().Debug("node enabled", "path", basePath)
		return OutcomeApplied, nil
	case p.Enabled:
		return OutcomeUnchanged, nil
	default:
		return OutcomeNotInstalled, nil
	}
}

// Disable renames basePath to its disabled variant.
func (o *Operator) Disable(basePath string) (Outcome, error) {
	p := o.inspector().Probe(basePath)
	switch {
	case p.Inconsistent():
		return 0, &OperationError{Op: "disable", Node: filepath.Base(basePath), Err: ErrStateInconsistency}
	case p.Enabled:
		if err := os.Rename(basePath, DisabledPath(basePath)); err != nil {
			return 0, &OperationError{Op: "disable", Node: filepath.Base(basePath), Err: fmt.Errorf("renaming: %w", err)}
		}
		o.logger().Debug("node disabled", "path", basePath)
		return OutcomeApplied, nil
	case p.Disabled:
		return OutcomeUnchanged, nil
	default:
		return OutcomeNotInstalled, nil
	}
}

func (o *Operator) inspector() Inspector {
	if o.Inspector != nil {
		return o.Inspector
	}
	return FSInspector{}
}

func (o *Operator) logger() *slog.Logger {
	if o.Logger != nil {
		return o.Logger
	}
	return slog.Default()
}
