package platform

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"runtime"
)

// CopySymlink recreates the symlink at src as dst, pointing at the same
// (possibly relative) target. On Windows without symlink support the target
// file is copied instead; a dangling link is skipped in that case.
func CopySymlink(src, dst string) error {
	target, err := os.Readlink(src)
	if err != nil {
		return fmt.Errorf("reading link %s: %w", src, err)
	}

	if err := os.Symlink(target, dst); err == nil {
		return nil
	} else if runtime.GOOS != "windows" {
		return fmt.Errorf("creating link %s: %w", dst, err)
	}

	resolved := target
	if !filepath.IsAbs(resolved) {
		resolved = filepath.Join(filepath.Dir(src), target)
	}
	info, err := os.Stat(resolved)
	if err != nil || !info.Mode().IsRegular() {
		return nil
	}
	return copyRegular(resolved, dst, info.Mode())
}

func copyRegular(src, dst string, mode os.FileMode) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := os.OpenFile(dst, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, mode)
	if err != nil {
		return err
	}
	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		return err
	}
	return out.Close()
}
