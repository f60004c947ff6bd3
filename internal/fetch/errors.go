package fetch

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"
)

// ErrGitNotFound is returned when a remote starter is requested but git is
// not on PATH.
var ErrGitNotFound = errors.New("git is required but not found in PATH")

// NotFoundError reports a local starter path that does not exist.
type NotFoundError struct {
	Path string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("starter %s doesn't exist", e.Path)
}

// Unwrap lets callers match with errors.Is(err, fs.ErrNotExist).
func (e *NotFoundError) Unwrap() error {
	return fs.ErrNotExist
}

// CloneError reports a failed git clone. Output holds whatever git printed
// when output was captured rather than streamed.
type CloneError struct {
	URL        string
	Committish string
	Output     string
	Err        error
}

func (e *CloneError) Error() string {
	ref := e.URL
	if e.Committish != "" {
		ref += "#" + e.Committish
	}
	msg := fmt.Sprintf("cloning %s: %v", ref, e.Err)
	if out := strings.TrimSpace(e.Output); out != "" {
		msg += "\n" + out
	}
	return msg
}

func (e *CloneError) Unwrap() error {
	return e.Err
}
