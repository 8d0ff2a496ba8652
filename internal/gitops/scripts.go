package gitops

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/toxicwind/ComfyUI-Manager/internal/startup"
)

const (
	requirementsFile = "requirements.txt"
	installScript    = "install.py"
	uninstallScript  = "uninstall.py"
	disableScript    = "disable.py"
)

// ScriptRunner runs a node script in dir.
type ScriptRunner interface {
	Run(ctx context.Context, dir string, args []string) error
}

// ExecRunner runs scripts immediately.
type ExecRunner struct {
	Logger *slog.Logger
}

func (r ExecRunner) Run(ctx context.Context, dir string, args []string) error {
	if len(args) == 0 {
		return errors.New("empty command")
	}
	//nolint:gosec // G204: commands are fixed script invocations
	cmd := exec.CommandContext(ctx, args[0], args[1:]...)
	cmd.Dir = dir
	var out bytes.Buffer
	cmd.Stdout = &out
	cmd.Stderr = &out

	if r.Logger != nil {
		r.Logger.Debug("running script", "dir", dir, "cmd", strings.Join(args, " "))
	}
	if err := cmd.Run(); err != nil {
		tail := strings.TrimSpace(out.String())
		if len(tail) > 512 {
			tail = tail[len(tail)-512:]
		}
		return fmt.Errorf("%s: %w: %s", strings.Join(args, " "), err, tail)
	}
	return nil
}

// DeferredRunner queues scripts for the host application's next start.
type DeferredRunner struct {
	Queue *startup.Queue
}

func (r DeferredRunner) Run(_ context.Context, dir string, args []string) error {
	return r.Queue.Append(dir, args)
}

// installCommands returns the post-install commands for the node in dir.
func installCommands(dir, python string) [][]string {
	var cmds [][]string
	if fileExists(filepath.Join(dir, requirementsFile)) {
		cmds = append(cmds, []string{python, "-m", "pip", "install", "-r", requirementsFile})
	}
	if fileExists(filepath.Join(dir, installScript)) {
		cmds = append(cmds, []string{python, installScript})
	}
	return cmds
}

// removalCommand returns the script to run before removing the node in dir,
// or nil when it has none.
func removalCommand(dir, python string) []string {
	for _, name := range []string{uninstallScript, disableScript} {
		if fileExists(filepath.Join(dir, name)) {
			return []string{python, name}
		}
	}
	return nil
}

func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}
