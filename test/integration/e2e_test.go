//go:build integration

package integration_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/starterkit/starterkit/internal/bootstrap"
	"github.com/starterkit/starterkit/internal/config"
	"github.com/starterkit/starterkit/internal/envfile"
	"github.com/starterkit/starterkit/internal/fetch"
	"github.com/starterkit/starterkit/internal/install"
	"github.com/starterkit/starterkit/internal/projectdir"
	"github.com/starterkit/starterkit/internal/runner"
	"github.com/starterkit/starterkit/internal/starter"
)

func newBootstrapper(workDir string) *bootstrap.Bootstrapper {
	r := runner.New()
	return bootstrap.New(
		fetch.New(r),
		envfile.New(config.DefaultEnvKeys),
		install.New(r),
		bootstrap.WithWorkDir(workDir),
		bootstrap.WithVersion("0.0.0-dev"),
	)
}

// TestFullFlowLocalStarter runs the complete flow against a local starter:
// validate -> prepare -> copy -> .env -> (install skipped).
func TestFullFlowLocalStarter(t *testing.T) {
	env := setupTestEnv(t)
	src := setupStarter(t, filepath.Join(env.WorkDir, "starters", "theme"))
	t.Setenv("THEME_PASSWORD", "s3cret")

	res, err := newBootstrapper(env.WorkDir).Run(context.Background(), "my-theme", src, bootstrap.Options{SkipInstall: true})
	if err != nil {
		t.Fatalf("Run: %v", err)
	}

	root := filepath.Join(env.WorkDir, "my-theme")
	if res.Root != root {
		t.Errorf("Root = %q, want %q", res.Root, root)
	}
	assertFileExists(t, filepath.Join(root, "package.json"))
	assertFileExists(t, filepath.Join(root, "layout", "theme.liquid"))
	assertFileExists(t, filepath.Join(root, "src", "config", "settings_schema.json"))
	assertNotExists(t, filepath.Join(root, "node_modules"))
	assertNotExists(t, filepath.Join(root, ".hg"))

	data, err := os.ReadFile(filepath.Join(root, envfile.FileName))
	if err != nil {
		t.Fatalf("reading .env: %v", err)
	}
	for _, want := range []string{"THEME_STORE=example.myshopify.com", "THEME_PASSWORD=s3cret", "THEME_ID=", "THEME_IGNORE_FILES="} {
		if !strings.Contains(string(data), want) {
			t.Errorf(".env missing %q:\n%s", want, data)
		}
	}
}

// TestFullFlowGitStarter clones a tagged starter from a local repository with
// the real git binary.
func TestFullFlowGitStarter(t *testing.T) {
	env := setupTestEnv(t)
	src := setupStarter(t, filepath.Join(t.TempDir(), "starter-theme"))
	initGitRepo(t, src, "v2")

	root := filepath.Join(env.WorkDir, "shop")
	if err := os.MkdirAll(filepath.Join(root, ".idea"), 0755); err != nil {
		t.Fatal(err)
	}
	if err := projectdir.Prepare(root); err != nil {
		t.Fatalf("Prepare: %v", err)
	}

	ref := starter.Ref{Raw: src, Kind: starter.KindRemote, CloneURL: "file://" + filepath.ToSlash(src), Committish: "v2"}
	if err := fetch.New(runner.New()).Fetch(context.Background(), ref, root, false); err != nil {
		t.Fatalf("Fetch: %v", err)
	}

	assertFileExists(t, filepath.Join(root, "layout", "theme.liquid"))
	assertFileExists(t, filepath.Join(root, ".idea"))
	assertNotExists(t, filepath.Join(root, ".git"))
}

func TestFullFlowCloneFailure(t *testing.T) {
	env := setupTestEnv(t)
	requireGit(t)

	ref := starter.Ref{Raw: "missing", Kind: starter.KindRemote, CloneURL: "file://" + filepath.ToSlash(filepath.Join(env.WorkDir, "missing.git"))}
	err := fetch.New(runner.New()).Fetch(context.Background(), ref, filepath.Join(env.WorkDir, "shop"), false)

	var cloneErr *fetch.CloneError
	if !errors.As(err, &cloneErr) {
		t.Fatalf("expected *fetch.CloneError, got %v", err)
	}
	if cloneErr.Output == "" {
		t.Error("expected captured git output")
	}
}

func TestFullFlowConflict(t *testing.T) {
	env := setupTestEnv(t)
	src := setupStarter(t, filepath.Join(env.WorkDir, "starter"))
	writeFile(t, filepath.Join(env.WorkDir, "shop", "README.md"), "# mine\n")

	_, err := newBootstrapper(env.WorkDir).Run(context.Background(), "shop", src, bootstrap.Options{SkipInstall: true})

	var conflict *projectdir.ConflictError
	if !errors.As(err, &conflict) {
		t.Fatalf("expected *projectdir.ConflictError, got %v", err)
	}
	assertNotExists(t, filepath.Join(env.WorkDir, "shop", "package.json"))
}
