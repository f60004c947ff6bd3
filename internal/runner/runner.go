package runner

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os/exec"
	"strings"
)

// Cmd describes one subprocess invocation.
type Cmd struct {
	Name   string
	Args   []string
	Dir    string
	Env    []string // appended to the inherited environment
	Stdout io.Writer
	Stderr io.Writer
}

// String renders the command line for logs and error messages.
func (c Cmd) String() string {
	return strings.TrimSpace(c.Name + " " + strings.Join(c.Args, " "))
}

// Runner starts subprocesses and locates executables.
type Runner interface {
	// Run executes cmd and waits for it to finish. A non-zero exit is
	// returned as an *ExitError.
	Run(ctx context.Context, cmd Cmd) error
	// LookPath reports where an executable lives on PATH.
	LookPath(name string) (string, error)
}

// ExitError is returned when a command runs but exits non-zero.
type ExitError struct {
	Cmd      string
	ExitCode int
}

func (e *ExitError) Error() string {
	return fmt.Sprintf("%s exited with status %d", e.Cmd, e.ExitCode)
}

// Exec runs real processes through os/exec.
type Exec struct{}

// New returns the os/exec backed Runner.
func New() *Exec {
	return &Exec{}
}

// Run executes cmd with its own working directory. Nil writers discard output.
func (e *Exec) Run(ctx context.Context, c Cmd) error {
	cmd := exec.CommandContext(ctx, c.Name, c.Args...)
	cmd.Dir = c.Dir
	if len(c.Env) > 0 {
		cmd.Env = append(cmd.Environ(), c.Env...)
	}
	cmd.Stdout = orDiscard(c.Stdout)
	cmd.Stderr = orDiscard(c.Stderr)

	if err := cmd.Run(); err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			return &ExitError{Cmd: c.String(), ExitCode: exitErr.ExitCode()}
		}
		return fmt.Errorf("running %s: %w", c.String(), err)
	}
	return nil
}

// LookPath wraps exec.LookPath.
func (e *Exec) LookPath(name string) (string, error) {
	return exec.LookPath(name)
}

func orDiscard(w io.Writer) io.Writer {
	if w == nil {
		return io.Discard
	}
	return w
}
