//go:build integration

package cli

import (
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// e2eEnv is a sandbox with a real git repository served through a
// local-path channel.
type e2eEnv struct {
	manager string
	nodes   string
	repo    string
}

func setupE2E(t *testing.T) *e2eEnv {
	t.Helper()
	if _, err := exec.LookPath("git"); err != nil {
		t.Skip("git not on PATH")
	}
	viper.Reset()
	t.Cleanup(viper.Reset)

	env := &e2eEnv{
		manager: t.TempDir(),
		repo:    filepath.Join(t.TempDir(), "foo-nodes"),
	}
	host := t.TempDir()
	env.nodes = filepath.Join(host, "custom_nodes")
	t.Setenv("CMCLI_MANAGER_PATH", env.manager)
	t.Setenv("COMFYUI_PATH", host)
	t.Setenv("CMCLI_CUSTOM_NODES", "")
	// Clone sources must name a recognized host, so the repository's parent
	// directory is registered as one.
	t.Setenv("CMCLI_GIT_HOSTS", filepath.Dir(env.repo))

	writeFile(t, filepath.Join(env.repo, "__init__.py"), "NODE_CLASS_MAPPINGS = {}\n")
	git(t, env.repo, "init", "-q")
	commitAll(t, env.repo, "initial")
	git(t, env.repo, "tag", "v1.0.0")

	channelDir := t.TempDir()
	writeFile(t, filepath.Join(channelDir, "custom-node-list.json"),
		`{"custom_nodes":[{"author":"alice","files":["`+env.repo+`"]}]}`)
	writeFile(t, filepath.Join(env.manager, "channels.list"), "local::"+channelDir+"\n")
	return env
}

func TestE2E_Lifecycle(t *testing.T) {
	env := setupE2E(t)
	base := filepath.Join(env.nodes, "foo-nodes")

	out, err := run(t, "install", "foo-nodes", "--channel", "local")
	require.NoError(t, err)
	require.Contains(t, out, "Installed 'foo-nodes'.")
	assertFileExists(t, filepath.Join(base, "__init__.py"))

	out, err = run(t, "disable", "foo-nodes", "--channel", "local")
	require.NoError(t, err)
	assert.Contains(t, out, "Disabled 'foo-nodes'.")
	assertFileExists(t, filepath.Join(base+".disabled", "__init__.py"))

	out, err = run(t, "enable", "foo-nodes", "--channel", "local")
	require.NoError(t, err)
	assert.Contains(t, out, "Enabled 'foo-nodes'.")

	writeFile(t, filepath.Join(env.repo, "nodes.py"), "# new node\n")
	commitAll(t, env.repo, "second")
	git(t, env.repo, "tag", "v1.1.0")

	out, err = run(t, "update", "foo-nodes", "--channel", "local")
	require.NoError(t, err)
	assert.Contains(t, out, "Updated 'foo-nodes'.")
	assertFileExists(t, filepath.Join(base, "nodes.py"))

	out, err = run(t, "uninstall", "foo-nodes", "--channel", "local")
	require.NoError(t, err)
	assert.Contains(t, out, "Uninstalled 'foo-nodes'.")
	_, statErr := os.Stat(base)
	assert.True(t, os.IsNotExist(statErr))
}

func TestE2E_CacheModeWritesCache(t *testing.T) {
	env := setupE2E(t)

	_, err := run(t, "simple-show", "all", "--channel", "local", "--mode", "cache")
	require.NoError(t, err)

	entries, err := os.ReadDir(filepath.Join(env.manager, "cache"))
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.True(t, strings.HasSuffix(entries[0].Name(), "_custom-node-list.json"))
}

func git(t *testing.T, dir string, args ...string) {
	t.Helper()
	cmd := exec.Command("git", args...)
	cmd.Dir = dir
	if out, err := cmd.CombinedOutput(); err != nil {
		t.Fatalf("git %s: %v\n%s", strings.Join(args, " "), err, out)
	}
}

func commitAll(t *testing.T, dir, msg string) {
	t.Helper()
	git(t, dir, "add", ".")
	git(t, dir, "-c", "user.name=test", "-c", "user.email=test@example.com", "commit", "-q", "-m", msg)
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		t.Fatalf("creating parent dir for %s: %v", path, err)
	}
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("writing %s: %v", path, err)
	}
}

func assertFileExists(t *testing.T, path string) {
	t.Helper()
	if _, err := os.Stat(path); err != nil {
		t.Errorf("expected file to exist: %s", path)
	}
}
