// Package stage mirrors the vendored source tree into an isolated working
// directory before it is built.
package stage

import (
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
)

// VCSDir is skipped at every depth while copying.
const VCSDir = ".git"

// CopyTree recursively copies src into dst, skipping any entry named VCSDir.
// Directories are created as needed; existing destination files are removed
// before being copied over. The first failure aborts the copy.
func CopyTree(src, dst string) error {
	entries, err := os.ReadDir(src)
	if err != nil {
		return err
	}
	for _, e := range entries {
		// .git may also be a file when the tree is a submodule checkout.
		if e.Name() == VCSDir {
			continue
		}
		from := filepath.Join(src, e.Name())
		to := filepath.Join(dst, e.Name())

		// Symlinks are followed, so a link to a directory is mirrored as one.
		info, err := os.Stat(from)
		if err != nil {
			return err
		}
		if info.IsDir() {
			if err := os.MkdirAll(to, 0o755); err != nil {
				return err
			}
			if err := CopyTree(from, to); err != nil {
				return err
			}
			continue
		}
		if err := os.Remove(to); err != nil && !os.IsNotExist(err) {
			return err
		}
		if err := copyFile(from, to, info.Mode().Perm()); err != nil {
			return fmt.Errorf("copy %s: %w", from, err)
		}
	}
	return nil
}

func copyFile(src, dst string, perm fs.FileMode) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := os.OpenFile(dst, os.O_WRONLY|os.O_CREATE|os.O_EXCL, perm)
	if err != nil {
		return err
	}
	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		return err
	}
	if err := out.Close(); err != nil {
		return err
	}
	// OpenFile is subject to umask.
	return os.Chmod(dst, perm)
}

// Purge removes each directory tree if it exists.
func Purge(dirs ...string) error {
	for _, dir := range dirs {
		if err := os.RemoveAll(dir); err != nil {
			return fmt.Errorf("purge %s: %w", dir, err)
		}
	}
	return nil
}
