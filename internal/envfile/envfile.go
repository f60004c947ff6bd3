package envfile

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/starterkit/starterkit/internal/ctxlog"
	"github.com/starterkit/starterkit/internal/manifest"
)

const (
	// FileName is the environment file written into the project root.
	FileName = ".env"
	// ExampleFileName is the template a starter may ship instead of a .env.
	ExampleFileName = ".env.example"
	filePerm        = 0600
)

// keyComments documents the default keys in the written file.
var keyComments = map[string]string{
	"THEME_STORE":        "Store URL the theme deploys to",
	"THEME_PASSWORD":     "API password or access token for the store",
	"THEME_ID":           `ID of the theme to deploy to, or "live"`,
	"THEME_IGNORE_FILES": "Comma-separated file globs excluded from deploys",
}

// Initializer writes a project's .env file.
type Initializer struct {
	keys   []string
	lookup func(string) (string, bool)
}

// Option configures an Initializer.
type Option func(*Initializer)

// WithLookup replaces os.LookupEnv as the source of process values.
func WithLookup(fn func(string) (string, bool)) Option {
	return func(i *Initializer) {
		i.lookup = fn
	}
}

// New creates an Initializer that guarantees every key in keys is present.
func New(keys []string, opts ...Option) *Initializer {
	i := &Initializer{
		keys:   keys,
		lookup: os.LookupEnv,
	}
	for _, opt := range opts {
		opt(i)
	}
	return i
}

// Init writes <root>/.env. Entries from the starter's .env.example and .env
// (later wins) keep their values; configured keys missing or empty there are
// taken from the process environment. Keys declared in the starter's
// starter.yaml follow the configured ones. Extra starter keys are preserved.
//
// Starter env files that are symlinks are neither read nor written through;
// the link is replaced by a regular file.
func (i *Initializer) Init(ctx context.Context, root string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	logger := ctxlog.FromContext(ctx)

	existing, order, err := readExisting(logger, root)
	if err != nil {
		return err
	}

	keys := i.keys
	m, err := manifest.Load(root)
	if err != nil {
		return err
	}
	if m != nil && len(m.Env) > 0 {
		logger.Debug("starter manifest declares env keys", "starter", m.Name, "keys", m.Env)
		keys = append(slices.Clip(keys), m.Env...)
	}

	var b strings.Builder
	b.WriteString("# Environment for this project. Keep this file out of version control.\n")

	written := make(map[string]bool)
	for _, key := range keys {
		if written[key] {
			continue
		}
		written[key] = true

		value := existing[key]
		if value == "" {
			if v, ok := i.lookup(key); ok {
				value = v
			}
		}
		if c, ok := keyComments[key]; ok {
			fmt.Fprintf(&b, "\n# %s\n", c)
		} else {
			b.WriteString("\n")
		}
		fmt.Fprintf(&b, "%s=%s\n", key, quote(value))
		logger.Debug("env key", "key", key, "value", RedactValue(key, value))
	}

	extra := false
	for _, key := range order {
		if written[key] {
			continue
		}
		if !extra {
			b.WriteString("\n")
			extra = true
		}
		written[key] = true
		fmt.Fprintf(&b, "%s=%s\n", key, quote(existing[key]))
	}

	return writeFile(filepath.Join(root, FileName), b.String())
}

// writeFile writes content to a fresh file next to path and renames it into
// place, so an existing symlink at path is replaced rather than followed.
func writeFile(path, content string) error {
	tmp, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+"-*")
	if err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	defer os.Remove(tmp.Name())

	if err := tmp.Chmod(filePerm); err != nil {
		tmp.Close()
		return fmt.Errorf("securing %s: %w", path, err)
	}
	if _, err := tmp.WriteString(content); err != nil {
		tmp.Close()
		return fmt.Errorf("writing %s: %w", path, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return nil
}

// readExisting merges the starter's env files into a map and returns the
// keys in first-seen order. Only regular files are read.
func readExisting(logger *slog.Logger, root string) (map[string]string, []string, error) {
	values := make(map[string]string)
	var order []string
	for _, name := range []string{ExampleFileName, FileName} {
		path := filepath.Join(root, name)
		info, err := os.Lstat(path)
		if os.IsNotExist(err) {
			continue
		}
		if err != nil {
			return nil, nil, fmt.Errorf("reading %s: %w", path, err)
		}
		if !info.Mode().IsRegular() {
			logger.Warn("ignoring starter env file that is not a regular file", "path", path, "mode", info.Mode().Type().String())
			continue
		}
		entries, err := ParseFile(path)
		if err != nil {
			return nil, nil, err
		}
		for _, e := range entries {
			if _, seen := values[e.Key]; !seen {
				order = append(order, e.Key)
			}
			if e.Value != "" || values[e.Key] == "" {
				values[e.Key] = e.Value
			}
		}
	}
	return values, order, nil
}
