package lifecycle

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func TestFSInspector(t *testing.T) {
	dir := t.TempDir()
	base := filepath.Join(dir, "foo-nodes")
	var in FSInspector

	if got := in.Inspect(base); got != NotInstalled {
		t.Fatalf("Inspect() = %v, want %v", got, NotInstalled)
	}

	if err := os.Mkdir(DisabledPath(base), 0755); err != nil {
		t.Fatal(err)
	}
	if got := in.Inspect(base); got != Disabled {
		t.Fatalf("Inspect() = %v, want %v", got, Disabled)
	}

	if err := os.Mkdir(base, 0755); err != nil {
		t.Fatal(err)
	}
	p := in.Probe(base)
	if !p.Inconsistent() {
		t.Error("expected inconsistent probe when both paths exist")
	}
	if p.State() != Enabled {
		t.Errorf("State() = %v, want %v", p.State(), Enabled)
	}

	if err := os.Remove(DisabledPath(base)); err != nil {
		t.Fatal(err)
	}
	if got := in.Inspect(base); got != Enabled {
		t.Fatalf("Inspect() = %v, want %v", got, Enabled)
	}
}

func TestStateString(t *testing.T) {
	tests := map[State]string{
		NotInstalled: "not-installed",
		Enabled:      "enabled",
		Disabled:     "disabled",
	}
	for s, want := range tests {
		if s.String() != want {
			t.Errorf("%d.String() = %q, want %q", s, s.String(), want)
		}
	}
	if NotInstalled.Installed() || !Enabled.Installed() || !Disabled.Installed() {
		t.Error("Installed() mismatch")
	}
}

func TestNodePath(t *testing.T) {
	root := t.TempDir()

	got, err := NodePath(root, "foo-nodes")
	if err != nil || got != filepath.Join(root, "foo-nodes") {
		t.Fatalf("NodePath(root, foo-nodes) = %q, %v", got, err)
	}

	for _, id := range []string{"", ".", "..", "a/b", "../escape", "/etc"} {
		if _, err := NodePath(root, id); !errors.Is(err, ErrUnsafePath) {
			t.Errorf("NodePath(root, %q) error = %v, want ErrUnsafePath", id, err)
		}
	}
	if _, err := NodePath("", "foo-nodes"); !errors.Is(err, ErrUnsafePath) {
		t.Errorf("NodePath with empty root error = %v, want ErrUnsafePath", err)
	}
}
