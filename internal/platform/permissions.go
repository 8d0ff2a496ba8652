package platform

import (
	"io/fs"
	"os"
	"path/filepath"
	"runtime"
)

// Chmod sets file permissions. On Windows this is a no-op because Windows
// does not support Unix-style permission bits.
func Chmod(path string, mode os.FileMode) error {
	if runtime.GOOS == "windows" {
		return nil
	}
	return os.Chmod(path, mode)
}

// RemoveTree removes path and everything below it. If the first attempt
// fails, read-only entries are made writable and the removal is retried.
// A symlink is removed without touching its target.
func RemoveTree(path string) error {
	err := os.RemoveAll(path)
	if err == nil {
		return nil
	}
	info, lerr := os.Lstat(path)
	if lerr != nil || info.Mode()&fs.ModeSymlink != 0 {
		return err
	}
	_ = makeWritable(path)
	return os.RemoveAll(path)
}

func makeWritable(root string) error {
	return filepath.WalkDir(root, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			if d != nil && d.IsDir() {
				// Unreadable directory: open it up and keep going.
				_ = os.Chmod(p, 0700)
				return nil
			}
			return nil
		}
		if d.Type()&fs.ModeSymlink != 0 {
			return nil
		}
		if d.IsDir() {
			return os.Chmod(p, 0700)
		}
		return os.Chmod(p, 0600)
	})
}
