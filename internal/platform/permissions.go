package platform

import (
	"fmt"
	"os"
	"runtime"
)

// DirPerm is the mode given to every directory created for a new project
// (rwxr-xr-x).
const DirPerm os.FileMode = 0755

// Chmod sets file permissions. On Windows this is a no-op because Windows
// does not support Unix-style permission bits.
func Chmod(path string, mode os.FileMode) error {
	if runtime.GOOS == "windows" {
		return nil
	}
	return os.Chmod(path, mode)
}

// EnsureDir creates path and any missing parents, then forces the final
// directory to mode so the result does not depend on the process umask.
func EnsureDir(path string, mode os.FileMode) error {
	if err := os.MkdirAll(path, mode); err != nil {
		return fmt.Errorf("creating directory %s: %w", path, err)
	}
	if err := Chmod(path, mode); err != nil {
		return fmt.Errorf("setting permissions on %s: %w", path, err)
	}
	return nil
}
