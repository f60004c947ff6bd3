package cli

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/starterkit/starterkit/internal/bootstrap"
	"github.com/starterkit/starterkit/internal/fetch"
	"github.com/starterkit/starterkit/internal/install"
	"github.com/starterkit/starterkit/internal/projectdir"
)

// reportError prints a human-readable explanation of err.
func reportError(w io.Writer, err error) {
	var (
		nameErr     *bootstrap.NameError
		conflictErr *projectdir.ConflictError
		notFound    *fetch.NotFoundError
		cloneErr    *fetch.CloneError
		installErr  *install.Error
	)

	switch {
	case errors.As(err, &nameErr):
		fmt.Fprintf(w, "Could not create a project called %q because of npm naming restrictions:\n", nameErr.Result.Name)
		for _, msg := range nameErr.Result.Messages() {
			fmt.Fprintf(w, "  *  %s\n", msg)
		}
	case errors.As(err, &conflictErr):
		fmt.Fprintf(w, "The directory %s contains files that could conflict:\n", conflictErr.Dir)
		for _, f := range conflictErr.Files {
			fmt.Fprintf(w, "  %s\n", f)
		}
		fmt.Fprintln(w, "Either try using a new directory name, or remove the files listed above.")
	case errors.As(err, &notFound):
		fmt.Fprintf(w, "Error: starter %s doesn't exist\n", notFound.Path)
	case errors.Is(err, fetch.ErrGitNotFound):
		fmt.Fprintln(w, "Error: git is required to use a remote starter but was not found in PATH")
	case errors.As(err, &cloneErr):
		fmt.Fprintf(w, "Error: could not clone %s\n", cloneErr.URL)
		if out := strings.TrimSpace(cloneErr.Output); out != "" {
			fmt.Fprintln(w, out)
		}
	case errors.As(err, &installErr):
		fmt.Fprintf(w, "Error: installing dependencies with %s failed\n", installErr.Manager)
		if out := strings.TrimSpace(installErr.Output); out != "" {
			fmt.Fprintln(w, out)
		}
	default:
		fmt.Fprintf(w, "Error: %v\n", err)
	}
}
