package bootstrap

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/starterkit/starterkit/internal/ctxlog"
	"github.com/starterkit/starterkit/internal/pkgname"
	"github.com/starterkit/starterkit/internal/projectdir"
	"github.com/starterkit/starterkit/internal/starter"
	"github.com/starterkit/starterkit/internal/telemetry"
)

// Fetcher places starter content into a project root.
type Fetcher interface {
	Fetch(ctx context.Context, ref starter.Ref, dst string, verbose bool) error
}

// EnvInitializer writes the project's environment file.
type EnvInitializer interface {
	Init(ctx context.Context, root string) error
}

// Installer installs the project's dependencies.
type Installer interface {
	Install(ctx context.Context, root string, verbose bool) error
}

// Telemetry records anonymous usage events. Init is awaited; Event must not
// block.
type Telemetry interface {
	Init(ctx context.Context) error
	Event(name string, props map[string]any)
}

// Options control a single run.
type Options struct {
	SkipInstall bool
	Verbose     bool
	Protocol    starter.Protocol
}

// Result describes a completed run.
type Result struct {
	Name    string
	Root    string
	Starter starter.Ref
}

// Bootstrapper wires the collaborators of the flow together.
type Bootstrapper struct {
	fetcher   Fetcher
	env       EnvInitializer
	installer Installer
	telemetry Telemetry
	version   string
	workDir   string
}

// Option configures a Bootstrapper.
type Option func(*Bootstrapper)

// WithTelemetry sets the telemetry sink. Without it no events are sent.
func WithTelemetry(t Telemetry) Option {
	return func(b *Bootstrapper) {
		b.telemetry = t
	}
}

// WithVersion sets the tool version reported in telemetry events.
func WithVersion(v string) Option {
	return func(b *Bootstrapper) {
		b.version = v
	}
}

// WithWorkDir sets the directory that project names and local starters are
// resolved against. It defaults to the process working directory.
func WithWorkDir(dir string) Option {
	return func(b *Bootstrapper) {
		b.workDir = dir
	}
}

// New creates a Bootstrapper.
func New(f Fetcher, env EnvInitializer, inst Installer, opts ...Option) *Bootstrapper {
	b := &Bootstrapper{
		fetcher:   f,
		env:       env,
		installer: inst,
		telemetry: noopTelemetry{},
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// Run creates project name from starterRef. The returned error, if any, is a
// *StepError naming the failed stage. Progress is logged to the logger
// carried by ctx.
func (b *Bootstrapper) Run(ctx context.Context, name, starterRef string, opts Options) (*Result, error) {
	logger := ctxlog.FromContext(ctx)
	if err := b.telemetry.Init(ctx); err != nil {
		logger.Debug("telemetry unavailable", "error", err)
	}
	b.telemetry.Event(telemetry.EventStart, map[string]any{
		"version":     b.version,
		"starter":     starterRef,
		"skipInstall": opts.SkipInstall,
		"verbose":     opts.Verbose,
	})

	res, err := pkgname.Validate(name)
	if err != nil {
		return nil, &StepError{Step: StepValidateName, Err: err}
	}
	if !res.ValidForNewPackages {
		return nil, &StepError{Step: StepValidateName, Err: &NameError{Result: res}}
	}

	cwd, err := b.cwd()
	if err != nil {
		return nil, &StepError{Step: StepPrepareDir, Err: err}
	}
	root := filepath.Join(cwd, name)

	if err := projectdir.Prepare(root); err != nil {
		return nil, &StepError{Step: StepPrepareDir, Err: err}
	}

	ref := starter.Resolve(starterRef, cwd, opts.Protocol)
	logger.Info("creating project", "name", name, "root", root, "starter", ref.String(), "kind", ref.Kind)

	if err := b.fetcher.Fetch(ctx, ref, root, opts.Verbose); err != nil {
		return nil, &StepError{Step: StepFetch, Err: err}
	}

	if err := b.env.Init(ctx, root); err != nil {
		return nil, &StepError{Step: StepEnv, Err: err}
	}

	if opts.SkipInstall {
		logger.Info("Skipping dependency installation")
	} else if err := b.installer.Install(ctx, root, opts.Verbose); err != nil {
		return nil, &StepError{Step: StepInstall, Err: err}
	}

	b.telemetry.Event(telemetry.EventSuccess, map[string]any{
		"version": b.version,
	})

	return &Result{Name: name, Root: root, Starter: ref}, nil
}

func (b *Bootstrapper) cwd() (string, error) {
	if b.workDir != "" {
		return filepath.Abs(b.workDir)
	}
	wd, err := os.Getwd()
	if err != nil {
		return "", fmt.Errorf("resolving working directory: %w", err)
	}
	return wd, nil
}

type noopTelemetry struct{}

func (noopTelemetry) Init(context.Context) error    { return nil }
func (noopTelemetry) Event(string, map[string]any) {}
