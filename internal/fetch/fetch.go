package fetch

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/starterkit/starterkit/internal/ctxlog"
	"github.com/starterkit/starterkit/internal/runner"
	"github.com/starterkit/starterkit/internal/starter"
)

// Fetcher selects and runs the copy or clone strategy for a starter.
type Fetcher struct {
	runner runner.Runner
	stdout io.Writer
	stderr io.Writer
}

// Option configures a Fetcher.
type Option func(*Fetcher)

// WithOutput sets where git output is streamed in verbose mode.
func WithOutput(stdout, stderr io.Writer) Option {
	return func(f *Fetcher) {
		f.stdout = stdout
		f.stderr = stderr
	}
}

// New creates a Fetcher that runs git through r.
func New(r runner.Runner, opts ...Option) *Fetcher {
	f := &Fetcher{
		runner: r,
		stdout: os.Stdout,
		stderr: os.Stderr,
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// Fetch writes the starter's content into dst using the strategy its kind selects.
func (f *Fetcher) Fetch(ctx context.Context, ref starter.Ref, dst string, verbose bool) error {
	switch ref.Kind {
	case starter.KindRemote:
		return f.Clone(ctx, ref, dst, verbose)
	case starter.KindLocal:
		ctxlog.FromContext(ctx).Debug("copying starter", "src", ref.Path, "dir", dst)
		return CopyLocal(ref.Path, dst)
	default:
		return fmt.Errorf("unknown starter kind %q", ref.Kind)
	}
}
