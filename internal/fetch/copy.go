package fetch

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/starterkit/starterkit/internal/platform"
)

// vcsNames are version-control entries never copied out of a starter.
var vcsNames = map[string]bool{
	".git": true,
	".hg":  true,
}

// dependencyCacheName is the dependency directory skipped at any depth.
const dependencyCacheName = "node_modules"

// shouldExclude returns true if an entry with this base name is skipped during copy.
func shouldExclude(name string) bool {
	return vcsNames[name] || name == dependencyCacheName
}

// CopyLocal recursively copies the starter at src into dst, creating dst with
// platform.DirPerm. Version-control entries and dependency caches are skipped.
// A failure part-way leaves whatever was already copied in place. Entries
// already in dst that the starter does not ship, such as an existing .git,
// are left alone.
func CopyLocal(src, dst string) error {
	info, err := os.Stat(src)
	if err != nil {
		if os.IsNotExist(err) {
			return &NotFoundError{Path: src}
		}
		return fmt.Errorf("reading starter %s: %w", src, err)
	}
	if !info.IsDir() {
		return fmt.Errorf("starter %s is not a directory", src)
	}

	absDst, err := filepath.Abs(dst)
	if err != nil {
		return fmt.Errorf("resolving %s: %w", dst, err)
	}

	if err := platform.EnsureDir(absDst, platform.DirPerm); err != nil {
		return err
	}
	if err := copyDir(src, absDst, absDst); err != nil {
		return fmt.Errorf("copying %s to %s: %w", src, dst, err)
	}
	return nil
}

// copyDir copies the contents of src into dst. root is the top-level
// destination; it is skipped if it turns up inside src.
func copyDir(src, dst, root string) error {
	entries, err := os.ReadDir(src)
	if err != nil {
		return err
	}

	for _, entry := range entries {
		if shouldExclude(entry.Name()) {
			continue
		}

		srcPath := filepath.Join(src, entry.Name())
		dstPath := filepath.Join(dst, entry.Name())

		if abs, err := filepath.Abs(srcPath); err == nil && abs == root {
			continue
		}

		switch {
		case entry.Type()&os.ModeSymlink != 0:
			if err := platform.CopySymlink(srcPath, dstPath); err != nil {
				return err
			}
		case entry.IsDir():
			info, err := entry.Info()
			if err != nil {
				return err
			}
			if err := os.MkdirAll(dstPath, info.Mode().Perm()|0700); err != nil {
				return err
			}
			if err := copyDir(srcPath, dstPath, root); err != nil {
				return err
			}
		case entry.Type().IsRegular():
			if err := copyFile(srcPath, dstPath); err != nil {
				return err
			}
		}
		// Sockets, devices and pipes are not part of a starter.
	}

	return nil
}

// copyFile copies a single file from src to dst, preserving permissions.
func copyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	info, err := in.Stat()
	if err != nil {
		return err
	}

	out, err := os.OpenFile(dst, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, info.Mode().Perm())
	if err != nil {
		return err
	}
	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		return err
	}
	return out.Close()
}
