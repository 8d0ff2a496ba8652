package gitops

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/toxicwind/ComfyUI-Manager/internal/lifecycle"
	"github.com/toxicwind/ComfyUI-Manager/internal/platform"
	"github.com/toxicwind/ComfyUI-Manager/internal/registry"
)

// ErrNoSource is returned when none of a node's locations can be cloned.
var ErrNoSource = errors.New("no git source")

// ErrUnsafePath is returned instead of removing a path outside the custom
// nodes directory.
var ErrUnsafePath = lifecycle.ErrUnsafePath

// Operator clones, removes and updates node repositories under NodesDir.
type Operator struct {
	NodesDir string
	Git      Executor
	// Scripts runs post-install scripts. Removal scripts always run
	// immediately through Hooks.
	Scripts ScriptRunner
	Hooks   ScriptRunner
	Python  string
	Hosts   []string
	Logger  *slog.Logger
}

// Compile-time check that Operator implements lifecycle.GitOperator.
var _ lifecycle.GitOperator = (*Operator)(nil)

// New returns an Operator using the git binary and running scripts
// immediately.
func New(nodesDir, python string, hosts []string, logger *slog.Logger) *Operator {
	if logger == nil {
		logger = slog.Default()
	}
	runner := ExecRunner{Logger: logger}
	return &Operator{
		NodesDir: nodesDir,
		Git:      RealExecutor{},
		Scripts:  runner,
		Hooks:    runner,
		Python:   python,
		Hosts:    hosts,
		Logger:   logger,
	}
}

// Install clones every git source into the nodes directory and runs its
// post-install scripts. Loose script files are skipped.
func (o *Operator) Install(ctx context.Context, sources []string) error {
	ids := o.cloneSources(sources)
	if len(ids) == 0 {
		return ErrNoSource
	}

	for _, src := range ids {
		id, url := src.id, src.url
		dest := filepath.Join(o.NodesDir, id)
		if exists(dest) || exists(lifecycle.DisabledPath(dest)) {
			return fmt.Errorf("%s: %w", id, lifecycle.ErrAlreadyInstalled)
		}
		if err := os.MkdirAll(o.NodesDir, 0755); err != nil {
			return fmt.Errorf("creating custom nodes directory: %w", err)
		}

		tmp := dest + ".tmp"
		if err := platform.RemoveTree(tmp); err != nil {
			return fmt.Errorf("clearing %s: %w", tmp, err)
		}
		if err := o.Git.Clone(ctx, url, tmp); err != nil {
			_ = platform.RemoveTree(tmp)
			return fmt.Errorf("cloning %s: %w", url, err)
		}
		if err := os.Rename(tmp, dest); err != nil {
			_ = platform.RemoveTree(tmp)
			return fmt.Errorf("finalizing %s: %w", id, err)
		}
		o.Logger.Debug("cloned node", "id", id, "url", url)

		o.runInstallScripts(ctx, dest)
	}
	return nil
}

// Uninstall removes the enabled or disabled directory of every git source,
// running the node's uninstall hook first when it ships one.
func (o *Operator) Uninstall(ctx context.Context, sources []string) error {
	ids := o.cloneSources(sources)
	if len(ids) == 0 {
		return ErrNoSource
	}

	for _, src := range ids {
		id := src.id
		base := filepath.Join(o.NodesDir, id)
		if err := o.checkSafe(base); err != nil {
			return err
		}

		target := base
		if !exists(target) {
			target = lifecycle.DisabledPath(base)
			if !exists(target) {
				return fmt.Errorf("%s: %w", id, lifecycle.ErrNotInstalled)
			}
		}

		if cmd := removalCommand(target, o.python()); cmd != nil {
			if err := o.Hooks.Run(ctx, target, cmd); err != nil {
				o.Logger.Warn("uninstall script failed", "id", id, "error", err)
			}
		}
		if err := platform.RemoveTree(target); err != nil {
			return fmt.Errorf("removing %s: %w", target, err)
		}
		o.Logger.Debug("removed node", "id", id, "path", target)
	}
	return nil
}

// Update pulls every git source's enabled directory and re-runs its
// post-install scripts.
func (o *Operator) Update(ctx context.Context, sources []string) error {
	ids := o.cloneSources(sources)
	if len(ids) == 0 {
		return ErrNoSource
	}

	for _, src := range ids {
		id := src.id
		dir := filepath.Join(o.NodesDir, id)
		if !exists(dir) {
			return fmt.Errorf("%s: %w", id, lifecycle.ErrNotInstalled)
		}

		before, _ := o.Git.Describe(ctx, dir)
		if err := o.Git.Pull(ctx, dir); err != nil {
			return fmt.Errorf("pulling %s: %w", id, err)
		}
		after, _ := o.Git.Describe(ctx, dir)

		switch compareTags(before, after) {
		case tagUpgraded:
			o.Logger.Info("node upgraded", "id", id, "from", before, "to", after)
		case tagDowngraded:
			o.Logger.Warn("node tag moved backwards", "id", id, "from", before, "to", after)
		default:
			o.Logger.Debug("node updated", "id", id, "tag", after)
		}

		o.runInstallScripts(ctx, dir)
	}
	return nil
}

func (o *Operator) runInstallScripts(ctx context.Context, dir string) {
	for _, cmd := range installCommands(dir, o.python()) {
		if err := o.Scripts.Run(ctx, dir, cmd); err != nil {
			o.Logger.Warn("install script failed", "dir", dir, "error", err)
		}
	}
}

// cloneSources maps each git source to its identifier, in source order.
func (o *Operator) cloneSources(sources []string) []sourceID {
	var ids []sourceID
	for _, src := range sources {
		if !registry.IsCloneSource(src, o.Hosts) {
			continue
		}
		if id := registry.IdentifierFromURL(src); registry.ValidIdentifier(id) {
			ids = append(ids, sourceID{url: src, id: id})
		}
	}
	return ids
}

func (o *Operator) checkSafe(path string) error {
	clean := filepath.Clean(path)
	root := filepath.Clean(o.NodesDir)
	if o.NodesDir == "" || clean == string(filepath.Separator) || clean == root || filepath.Dir(clean) != root {
		return fmt.Errorf("%w: %q", ErrUnsafePath, path)
	}
	return nil
}

func (o *Operator) python() string {
	if o.Python != "" {
		return o.Python
	}
	return "python3"
}

type sourceID struct {
	url string
	id  string
}

func exists(path string) bool {
	_, err := os.Lstat(path)
	return err == nil
}
