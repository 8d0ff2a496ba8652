package userdata

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/toxicwind/ComfyUI-Manager/internal/channel"
	"github.com/toxicwind/ComfyUI-Manager/internal/platform"
)

// InitManager creates the manager directory layout and a commented
// channels.list. Existing items are skipped with a message.
func InitManager(w io.Writer) error {
	root := GetManagerRoot()
	for _, dir := range []string{root, GetStartupScriptsDir(), GetCacheDir()} {
		if err := ensureDir(w, dir, DirPermNormal); err != nil {
			return err
		}
	}
	return ensureFile(w, GetChannelsListPath(), channel.Template(), FilePermNormal)
}

// InitCustomNodes creates the custom nodes directory under the host root.
func InitCustomNodes(w io.Writer) error {
	dir, err := GetCustomNodesRoot()
	if err != nil {
		return err
	}
	return ensureDir(w, dir, DirPermNormal)
}

func ensureDir(w io.Writer, path string, perm os.FileMode) error {
	if info, err := os.Stat(path); err == nil {
		if info.IsDir() {
			fmt.Fprintf(w, "  [SKIP] %s already exists\n", path)
			return nil
		}
		return fmt.Errorf("%s exists but is not a directory", path)
	}

	if err := os.MkdirAll(path, perm); err != nil {
		return fmt.Errorf("creating directory %s: %w", path, err)
	}
	// MkdirAll applies the umask.
	if err := platform.Chmod(path, perm); err != nil {
		return fmt.Errorf("setting permissions on %s: %w", path, err)
	}
	fmt.Fprintf(w, "  [ OK ] Created %s\n", path)
	return nil
}

func ensureFile(w io.Writer, path, content string, perm os.FileMode) error {
	if _, err := os.Stat(path); err == nil {
		fmt.Fprintf(w, "  [SKIP] %s already exists\n", path)
		return nil
	}
	if err := os.MkdirAll(filepath.Dir(path), DirPermNormal); err != nil {
		return fmt.Errorf("creating directory for %s: %w", path, err)
	}
	if err := os.WriteFile(path, []byte(content), perm); err != nil {
		return fmt.Errorf("creating file %s: %w", path, err)
	}
	fmt.Fprintf(w, "  [ OK ] Created %s\n", path)
	return nil
}
