package manifest

import (
	"fmt"
	"strings"
)

// FileName is the manifest a starter may ship at its root.
const FileName = "starter.yaml"

// Manifest describes a starter.
type Manifest struct {
	Name        string   `yaml:"name"`
	Description string   `yaml:"description,omitempty"`
	Env         []string `yaml:"env,omitempty"` // extra keys for the project's .env
}

// InvalidError reports a manifest that does not match the schema.
type InvalidError struct {
	Path   string
	Issues []ValidationIssue
}

func (e *InvalidError) Error() string {
	parts := make([]string, 0, len(e.Issues))
	for _, issue := range e.Issues {
		if issue.Path != "" {
			parts = append(parts, issue.Path+": "+issue.Message)
		} else {
			parts = append(parts, issue.Message)
		}
	}
	return fmt.Sprintf("invalid starter manifest %s: %s", e.Path, strings.Join(parts, "; "))
}
