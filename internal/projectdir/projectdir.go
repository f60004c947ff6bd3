// Package projectdir prepares the directory a new project is written into.
// A pre-existing directory is accepted only when everything in it is a
// tool-generated artifact from the allow-list.
package projectdir

import (
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/starterkit/starterkit/internal/platform"
)

// allowedNames are entries tolerated in an otherwise empty project root.
var allowedNames = map[string]bool{
	".DS_Store":      true,
	"Thumbs.db":      true,
	".git":           true,
	".gitignore":     true,
	".gitattributes": true,
	".idea":          true,
	".vscode":        true,
	"web.iml":        true,
	".hg":            true,
	".hgignore":      true,
	".hgcheck":       true,
	".npmignore":     true,
}

// ConflictError reports entries that would be clobbered by a fresh scaffold.
type ConflictError struct {
	Dir   string
	Files []string
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("directory %s contains files that could conflict: %s", e.Dir, strings.Join(e.Files, ", "))
}

// IsAllowed reports whether name may already exist in a project root.
func IsAllowed(name string) bool {
	return allowedNames[name]
}

// Prepare creates dir (and missing parents) if needed, then fails with a
// *ConflictError when it holds anything outside the allow-list.
func Prepare(dir string) error {
	if err := os.MkdirAll(dir, platform.DirPerm); err != nil {
		return fmt.Errorf("creating project directory %s: %w", dir, err)
	}

	conflicts, err := Conflicts(dir)
	if err != nil {
		return err
	}
	if len(conflicts) > 0 {
		return &ConflictError{Dir: dir, Files: conflicts}
	}
	return nil
}

// Conflicts returns the sorted immediate entries of dir that are not
// allow-listed. A missing dir has no conflicts.
func Conflicts(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("reading directory %s: %w", dir, err)
	}

	var conflicts []string
	for _, e := range entries {
		if !IsAllowed(e.Name()) {
			conflicts = append(conflicts, e.Name())
		}
	}
	sort.Strings(conflicts)
	return conflicts, nil
}
