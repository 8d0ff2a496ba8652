package gitops

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"os/exec"
	"strings"
)

// Executor runs the git commands the operator needs.
type Executor interface {
	Clone(ctx context.Context, url, dest string) error
	Pull(ctx context.Context, dir string) error
	// Describe returns the nearest tag reachable from HEAD.
	Describe(ctx context.Context, dir string) (string, error)
}

// Compile-time check that RealExecutor implements Executor.
var _ Executor = RealExecutor{}

// RealExecutor runs the git binary on PATH. Prompts are disabled so a
// private repository fails instead of blocking on credentials.
type RealExecutor struct{}

func (RealExecutor) Clone(ctx context.Context, url, dest string) error {
	_, err := runGit(ctx, "", "clone", "--recursive", url, dest)
	return err
}

func (RealExecutor) Pull(ctx context.Context, dir string) error {
	_, err := runGit(ctx, dir, "pull", "--ff-only")
	return err
}

func (RealExecutor) Describe(ctx context.Context, dir string) (string, error) {
	return runGit(ctx, dir, "describe", "--tags", "--abbrev=0")
}

func runGit(ctx context.Context, dir string, args ...string) (string, error) {
	//nolint:gosec // G204: args are built by this package
	cmd := exec.CommandContext(ctx, "git", args...)
	cmd.Dir = dir
	cmd.Env = append(os.Environ(), "GIT_TERMINAL_PROMPT=0")

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		if msg := strings.TrimSpace(stderr.String()); msg != "" {
			return "", fmt.Errorf("git %s: %s: %w", args[0], msg, err)
		}
		return "", fmt.Errorf("git %s: %w", args[0], err)
	}
	return strings.TrimSpace(stdout.String()), nil
}
