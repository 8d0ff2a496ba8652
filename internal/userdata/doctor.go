package userdata

import (
	"fmt"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"sort"
	"strings"

	"github.com/toxicwind/ComfyUI-Manager/internal/branding"
	"github.com/toxicwind/ComfyUI-Manager/internal/lifecycle"
	"github.com/toxicwind/ComfyUI-Manager/internal/startup"
)

// CheckInstallation reports on the tools and directories the CLI depends on
// and returns the number of problems found. When fix is true, missing
// manager directories are created. Nodes whose enabled and disabled copies
// both exist are reported but never repaired.
func CheckInstallation(w io.Writer, python string, fix bool) (int, error) {
	problems := 0

	fmt.Fprintln(w, "Tools:")
	for _, tool := range []string{"git", python} {
		if path, err := exec.LookPath(tool); err == nil {
			fmt.Fprintf(w, "  [ OK ] %s (%s)\n", tool, path)
		} else {
			fmt.Fprintf(w, "  [MISS] %s not found on PATH\n", tool)
			problems++
		}
	}

	fmt.Fprintln(w, "Manager directory:")
	root := GetManagerRoot()
	if _, err := os.Stat(root); os.IsNotExist(err) {
		fmt.Fprintf(w, "  [MISS] %s does not exist\n", root)
		if !fix {
			fmt.Fprintf(w, "         Run '%s init' to create\n", branding.CLIName())
			problems++
		} else {
			fmt.Fprintln(w, "  [FIX ] Running init...")
			if err := InitManager(w); err != nil {
				return problems, fmt.Errorf("auto-fix init: %w", err)
			}
		}
	} else {
		fmt.Fprintf(w, "  [ OK ] %s exists\n", root)
		for _, dir := range []string{GetStartupScriptsDir(), GetCacheDir()} {
			if !checkDir(w, dir, fix) {
				problems++
			}
		}
		if _, err := os.Stat(GetChannelsListPath()); err == nil {
			fmt.Fprintf(w, "  [ OK ] %s exists\n", GetChannelsListPath())
		} else {
			fmt.Fprintf(w, "  [SKIP] %s not present (built-in channels only)\n", GetChannelsListPath())
		}
	}

	queue := &startup.Queue{Path: GetInstallScriptsPath()}
	if entries, err := queue.Entries(); err != nil {
		fmt.Fprintf(w, "  [WARN] %v\n", err)
		problems++
	} else if len(entries) > 0 {
		fmt.Fprintf(w, "  [WARN] %d install script(s) queued for the next %s start\n", len(entries), branding.HostName())
	}

	fmt.Fprintln(w, "Custom nodes:")
	host, err := GetHostRoot()
	if err != nil {
		return problems, err
	}
	if host.Assumed {
		fmt.Fprintf(w, "  [WARN] %s not set, using %s\n", branding.HostPathEnv(), host.Path)
	}
	nodesDir, err := GetCustomNodesRoot()
	if err != nil {
		return problems, err
	}
	if info, err := os.Stat(nodesDir); err != nil || !info.IsDir() {
		fmt.Fprintf(w, "  [MISS] %s does not exist\n", nodesDir)
		return problems + 1, nil
	}
	fmt.Fprintf(w, "  [ OK ] %s exists\n", nodesDir)

	inconsistent, err := FindInconsistentNodes(nodesDir, lifecycle.FSInspector{})
	if err != nil {
		return problems, err
	}
	for _, id := range inconsistent {
		fmt.Fprintf(w, "  [WARN] %s has both %s and %s%s; remove one by hand\n", id, id, id, lifecycle.DisabledSuffix)
		problems++
	}
	return problems, nil
}

// FindInconsistentNodes returns, sorted, the node identifiers under nodesDir
// whose enabled and disabled paths both exist.
func FindInconsistentNodes(nodesDir string, inspector lifecycle.Inspector) ([]string, error) {
	entries, err := os.ReadDir(nodesDir)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", nodesDir, err)
	}
	var ids []string
	for _, e := range entries {
		id, ok := strings.CutSuffix(e.Name(), lifecycle.DisabledSuffix)
		if !ok || id == "" {
			continue
		}
		if inspector.Probe(filepath.Join(nodesDir, id)).Inconsistent() {
			ids = append(ids, id)
		}
	}
	sort.Strings(ids)
	return ids, nil
}

func checkDir(w io.Writer, path string, fix bool) bool {
	info, err := os.Stat(path)
	if os.IsNotExist(err) {
		fmt.Fprintf(w, "  [MISS] %s does not exist\n", path)
		if !fix {
			return false
		}
		if err := os.MkdirAll(path, DirPermNormal); err != nil {
			fmt.Fprintf(w, "  [FAIL] Could not create %s: %v\n", path, err)
			return false
		}
		fmt.Fprintf(w, "  [FIX ] Created %s\n", path)
		return true
	}
	if err != nil {
		fmt.Fprintf(w, "  [FAIL] %s: %v\n", path, err)
		return false
	}
	if !info.IsDir() {
		fmt.Fprintf(w, "  [WARN] %s exists but is not a directory\n", path)
		return false
	}
	fmt.Fprintf(w, "  [ OK ] %s exists\n", path)
	return true
}
