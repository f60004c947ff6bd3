package install

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/starterkit/starterkit/internal/ctxlog"
	"github.com/starterkit/starterkit/internal/runner"
)

// Error reports a failed dependency installation.
type Error struct {
	Manager Manager
	Output  string
	Err     error
}

func (e *Error) Error() string {
	msg := fmt.Sprintf("installing dependencies with %s: %v", e.Manager, e.Err)
	if out := strings.TrimSpace(e.Output); out != "" {
		msg += "\n" + out
	}
	return msg
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Installer runs the package manager for a project root.
type Installer struct {
	runner runner.Runner
	stdout io.Writer
	stderr io.Writer
}

// Option configures an Installer.
type Option func(*Installer)

// WithOutput sets where package-manager output is streamed in verbose mode.
func WithOutput(stdout, stderr io.Writer) Option {
	return func(i *Installer) {
		i.stdout = stdout
		i.stderr = stderr
	}
}

// New creates an Installer backed by r.
func New(r runner.Runner, opts ...Option) *Installer {
	i := &Installer{
		runner: r,
		stdout: os.Stdout,
		stderr: os.Stderr,
	}
	for _, opt := range opts {
		opt(i)
	}
	return i
}

// Install runs the detected package manager with root as its working
// directory. A root without package.json has nothing to install.
func (i *Installer) Install(ctx context.Context, root string, verbose bool) error {
	logger := ctxlog.FromContext(ctx)
	if !fileExists(filepath.Join(root, "package.json")) {
		logger.Info("no package.json found, nothing to install", "dir", root)
		return nil
	}

	d := Detect(ctx, i.runner, root)
	name, args := d.Command()
	if _, err := i.runner.LookPath(name); err != nil {
		return &Error{Manager: d.Manager, Err: fmt.Errorf("%s not found in PATH", name)}
	}

	logger.Info("installing dependencies", "manager", d.Manager, "reason", d.Reason)

	var captured bytes.Buffer
	cmd := runner.Cmd{Name: name, Args: args, Dir: root}
	if verbose {
		cmd.Stdout = i.stdout
		cmd.Stderr = i.stderr
	} else {
		cmd.Stdout = &captured
		cmd.Stderr = &captured
	}

	if err := i.runner.Run(ctx, cmd); err != nil {
		return &Error{Manager: d.Manager, Output: captured.String(), Err: err}
	}
	return nil
}
