package gitops

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/toxicwind/ComfyUI-Manager/internal/lifecycle"
)

type fakeGit struct {
	// files are written into every clone.
	files    map[string]string
	cloneErr error
	pullErr  error
	tags     []string // successive Describe results

	cloned []string
	pulled []string
}

func (f *fakeGit) Clone(_ context.Context, url, dest string) error {
	f.cloned = append(f.cloned, url)
	if err := os.MkdirAll(dest, 0755); err != nil {
		return err
	}
	if f.cloneErr != nil {
		return f.cloneErr
	}
	for name, body := range f.files {
		if err := os.WriteFile(filepath.Join(dest, name), []byte(body), 0644); err != nil {
			return err
		}
	}
	return nil
}

func (f *fakeGit) Pull(_ context.Context, dir string) error {
	f.pulled = append(f.pulled, dir)
	return f.pullErr
}

func (f *fakeGit) Describe(context.Context, string) (string, error) {
	if len(f.tags) == 0 {
		return "", errors.New("no tags")
	}
	tag := f.tags[0]
	f.tags = f.tags[1:]
	return tag, nil
}

type recordRunner struct {
	runs [][]string
	err  error
}

func (r *recordRunner) Run(_ context.Context, dir string, args []string) error {
	r.runs = append(r.runs, append([]string{dir}, args...))
	return r.err
}

func newTestOperator(t *testing.T, git *fakeGit) (*Operator, *recordRunner, *recordRunner) {
	t.Helper()
	scripts, hooks := &recordRunner{}, &recordRunner{}
	return &Operator{
		NodesDir: t.TempDir(),
		Git:      git,
		Scripts:  scripts,
		Hooks:    hooks,
		Python:   "py",
		Hosts:    []string{"github.com"},
		Logger:   slog.New(slog.NewTextHandler(io.Discard, nil)),
	}, scripts, hooks
}

func TestInstall(t *testing.T) {
	git := &fakeGit{files: map[string]string{"requirements.txt": "numpy\n", "install.py": ""}}
	op, scripts, _ := newTestOperator(t, git)

	err := op.Install(context.Background(), []string{
		"https://github.com/alice/foo-nodes.git",
		"https://github.com/alice/raw/main/extra.py",
	})
	require.NoError(t, err)

	assert.Equal(t, []string{"https://github.com/alice/foo-nodes.git"}, git.cloned)
	dest := filepath.Join(op.NodesDir, "foo-nodes")
	assert.DirExists(t, dest)
	assert.NoDirExists(t, dest+".tmp")
	assert.Equal(t, [][]string{
		{dest, "py", "-m", "pip", "install", "-r", "requirements.txt"},
		{dest, "py", "install.py"},
	}, scripts.runs)
}

func TestInstall_AlreadyInstalled(t *testing.T) {
	for _, existing := range []string{"foo-nodes", "foo-nodes.disabled"} {
		t.Run(existing, func(t *testing.T) {
			git := &fakeGit{}
			op, _, _ := newTestOperator(t, git)
			require.NoError(t, os.Mkdir(filepath.Join(op.NodesDir, existing), 0755))

			err := op.Install(context.Background(), []string{"https://github.com/alice/foo-nodes"})
			require.ErrorIs(t, err, lifecycle.ErrAlreadyInstalled)
			assert.Empty(t, git.cloned)
		})
	}
}

func TestInstall_CloneFailureLeavesNothing(t *testing.T) {
	git := &fakeGit{cloneErr: errors.New("repository not found")}
	op, scripts, _ := newTestOperator(t, git)

	err := op.Install(context.Background(), []string{"https://github.com/alice/foo-nodes"})
	require.ErrorContains(t, err, "repository not found")

	entries, err := os.ReadDir(op.NodesDir)
	require.NoError(t, err)
	assert.Empty(t, entries)
	assert.Empty(t, scripts.runs)
}

func TestInstall_NoGitSource(t *testing.T) {
	op, _, _ := newTestOperator(t, &fakeGit{})
	err := op.Install(context.Background(), []string{"https://example.com/x/node.py"})
	assert.ErrorIs(t, err, ErrNoSource)
}

func TestInstall_ScriptFailureIsNotFatal(t *testing.T) {
	git := &fakeGit{files: map[string]string{"install.py": ""}}
	op, scripts, _ := newTestOperator(t, git)
	scripts.err = errors.New("exit status 1")

	require.NoError(t, op.Install(context.Background(), []string{"https://github.com/alice/foo-nodes"}))
	assert.Len(t, scripts.runs, 1)
}

func TestUninstall(t *testing.T) {
	op, _, hooks := newTestOperator(t, &fakeGit{})
	dir := filepath.Join(op.NodesDir, "foo-nodes")
	require.NoError(t, os.MkdirAll(dir, 0755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "uninstall.py"), nil, 0644))

	require.NoError(t, op.Uninstall(context.Background(), []string{"https://github.com/alice/foo-nodes"}))
	assert.NoDirExists(t, dir)
	assert.Equal(t, [][]string{{dir, "py", "uninstall.py"}}, hooks.runs)
}

func TestUninstall_Disabled(t *testing.T) {
	op, _, hooks := newTestOperator(t, &fakeGit{})
	dir := filepath.Join(op.NodesDir, "foo-nodes.disabled")
	require.NoError(t, os.MkdirAll(dir, 0755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "disable.py"), nil, 0644))

	require.NoError(t, op.Uninstall(context.Background(), []string{"https://github.com/alice/foo-nodes"}))
	assert.NoDirExists(t, dir)
	assert.Equal(t, [][]string{{dir, "py", "disable.py"}}, hooks.runs)
}

func TestUninstall_NotInstalled(t *testing.T) {
	op, _, _ := newTestOperator(t, &fakeGit{})
	err := op.Uninstall(context.Background(), []string{"https://github.com/alice/foo-nodes"})
	assert.ErrorIs(t, err, lifecycle.ErrNotInstalled)
}

func TestUninstall_UnsafePath(t *testing.T) {
	op, _, _ := newTestOperator(t, &fakeGit{})
	err := op.Uninstall(context.Background(), []string{"https://github.com/alice/.."})
	assert.ErrorIs(t, err, ErrUnsafePath)
	assert.DirExists(t, op.NodesDir)
}

func TestUpdate(t *testing.T) {
	git := &fakeGit{tags: []string{"v1.0.0", "v1.2.0"}, files: nil}
	op, scripts, _ := newTestOperator(t, git)
	dir := filepath.Join(op.NodesDir, "foo-nodes")
	require.NoError(t, os.MkdirAll(dir, 0755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "requirements.txt"), nil, 0644))

	require.NoError(t, op.Update(context.Background(), []string{"https://github.com/alice/foo-nodes"}))
	assert.Equal(t, []string{dir}, git.pulled)
	assert.Len(t, scripts.runs, 1)
}

func TestUpdate_NotInstalled(t *testing.T) {
	git := &fakeGit{}
	op, _, _ := newTestOperator(t, git)
	require.NoError(t, os.MkdirAll(filepath.Join(op.NodesDir, "foo-nodes.disabled"), 0755))

	err := op.Update(context.Background(), []string{"https://github.com/alice/foo-nodes"})
	assert.ErrorIs(t, err, lifecycle.ErrNotInstalled)
	assert.Empty(t, git.pulled)
}

func TestUpdate_PullFailure(t *testing.T) {
	git := &fakeGit{pullErr: errors.New("diverged")}
	op, scripts, _ := newTestOperator(t, git)
	require.NoError(t, os.MkdirAll(filepath.Join(op.NodesDir, "foo-nodes"), 0755))

	err := op.Update(context.Background(), []string{"https://github.com/alice/foo-nodes"})
	assert.ErrorContains(t, err, "diverged")
	assert.Empty(t, scripts.runs)
}
