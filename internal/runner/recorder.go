package runner

import (
	"context"
	"fmt"
	"os/exec"
	"sync"
)

// Recorder is a fake Runner that records every command and answers with
// scripted results.
type Recorder struct {
	mu   sync.Mutex
	cmds []Cmd

	// Handle, when set, decides the outcome of each Run call. It may write
	// to cmd.Stdout/Stderr or touch the filesystem to simulate the command.
	Handle func(cmd Cmd) error
	// Missing lists executables LookPath should report as absent.
	Missing map[string]bool
}

// Run records cmd and delegates to Handle.
func (r *Recorder) Run(_ context.Context, cmd Cmd) error {
	r.mu.Lock()
	r.cmds = append(r.cmds, cmd)
	handle := r.Handle
	r.mu.Unlock()

	if handle == nil {
		return nil
	}
	return handle(cmd)
}

// LookPath returns a fake path unless name is listed in Missing.
func (r *Recorder) LookPath(name string) (string, error) {
	if r.Missing[name] {
		return "", fmt.Errorf("%s: %w", name, exec.ErrNotFound)
	}
	return "/usr/bin/" + name, nil
}

// Commands returns a copy of the recorded commands.
func (r *Recorder) Commands() []Cmd {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]Cmd, len(r.cmds))
	copy(out, r.cmds)
	return out
}
