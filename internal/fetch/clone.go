package fetch

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/starterkit/starterkit/internal/ctxlog"
	"github.com/starterkit/starterkit/internal/runner"
	"github.com/starterkit/starterkit/internal/starter"
)

// cloneArgs builds a shallow single-branch clone of url into dir.
func cloneArgs(url, committish, dir string) []string {
	args := []string{"clone", "--depth", "1", "--single-branch"}
	if committish != "" {
		args = append(args, "--branch", committish)
	}
	return append(args, url, dir)
}

// Clone shallow-clones a remote starter and moves its tree into dst without
// the repository's .git directory.
//
// git refuses to clone into a non-empty directory, and dst may already hold
// allow-listed files, so the clone lands in a scratch directory next to dst
// first. The scratch directory is removed whether or not the clone succeeds.
// Only the starter's own .git is dropped: a .git that already existed in dst
// is left in place.
//
// git runs with GIT_TERMINAL_PROMPT=0 so a private or missing repository
// fails instead of waiting for credentials.
func (f *Fetcher) Clone(ctx context.Context, ref starter.Ref, dst string, verbose bool) error {
	if ref.Kind != starter.KindRemote {
		return fmt.Errorf("starter %q is not a remote repository", ref.Raw)
	}
	if _, err := f.runner.LookPath("git"); err != nil {
		return ErrGitNotFound
	}

	absDst, err := filepath.Abs(dst)
	if err != nil {
		return fmt.Errorf("resolving %s: %w", dst, err)
	}

	scratch, err := os.MkdirTemp(filepath.Dir(absDst), "."+filepath.Base(absDst)+".clone-")
	if err != nil {
		return fmt.Errorf("creating clone directory: %w", err)
	}
	defer os.RemoveAll(scratch)

	checkout := filepath.Join(scratch, "src")
	var captured bytes.Buffer
	cmd := runner.Cmd{
		Name: "git",
		Args: cloneArgs(ref.CloneURL, ref.Committish, checkout),
		Dir:  filepath.Dir(absDst),
		Env:  []string{"GIT_TERMINAL_PROMPT=0"},
	}
	if verbose {
		cmd.Stdout = f.stdout
		cmd.Stderr = f.stderr
	} else {
		cmd.Stdout = io.Discard
		cmd.Stderr = &captured
	}

	ctxlog.FromContext(ctx).Debug("cloning starter", "url", ref.CloneURL, "committish", ref.Committish, "dir", absDst)
	if err := f.runner.Run(ctx, cmd); err != nil {
		return &CloneError{URL: ref.CloneURL, Committish: ref.Committish, Output: captured.String(), Err: err}
	}

	if err := os.RemoveAll(filepath.Join(checkout, ".git")); err != nil {
		return fmt.Errorf("removing starter git metadata: %w", err)
	}
	if err := moveContents(checkout, absDst); err != nil {
		return fmt.Errorf("moving cloned starter into %s: %w", absDst, err)
	}
	return nil
}

// moveContents renames every entry of src into dst, replacing entries of
// the same name.
func moveContents(src, dst string) error {
	entries, err := os.ReadDir(src)
	if err != nil {
		return err
	}
	for _, e := range entries {
		from := filepath.Join(src, e.Name())
		to := filepath.Join(dst, e.Name())
		if err := os.RemoveAll(to); err != nil {
			return err
		}
		if err := os.Rename(from, to); err != nil {
			return err
		}
	}
	return nil
}
