//go:build integration

package integration_test

import (
	"os"
	"os/exec"
	"path/filepath"
	"testing"
)

// testEnv holds paths to isolated test directories.
type testEnv struct {
	HomeDir string // STARTERKIT_HOME: config, telemetry id and version cache
	WorkDir string // where new projects are created
}

// setupTestEnv creates isolated temp directories and sets environment variables
// so no operation touches the real home directory or the network.
func setupTestEnv(t *testing.T) *testEnv {
	t.Helper()

	env := &testEnv{
		HomeDir: t.TempDir(),
		WorkDir: t.TempDir(),
	}

	t.Setenv("STARTERKIT_HOME", env.HomeDir)
	t.Setenv("STARTERKIT_TELEMETRY", "false")
	t.Setenv("STARTERKIT_UPDATE_CHECK", "false")
	t.Setenv("DO_NOT_TRACK", "1")

	return env
}

// setupStarter writes a small theme starter under dir, including entries that
// must not reach a new project.
func setupStarter(t *testing.T, dir string) string {
	t.Helper()

	writeFile(t, filepath.Join(dir, "package.json"), `{"name":"starter-theme","version":"1.0.0"}`)
	writeFile(t, filepath.Join(dir, "layout", "theme.liquid"), "{{ content_for_layout }}\n")
	writeFile(t, filepath.Join(dir, "src", "config", "settings_schema.json"), "[]\n")
	writeFile(t, filepath.Join(dir, ".env.example"), "THEME_STORE=example.myshopify.com\n")
	writeFile(t, filepath.Join(dir, "node_modules", "left-pad", "index.js"), "module.exports = {}\n")
	writeFile(t, filepath.Join(dir, ".hg", "store", "data"), "")
	return dir
}

// initGitRepo turns dir into a git repository with a single commit and a tag.
func initGitRepo(t *testing.T, dir, tag string) {
	t.Helper()
	requireGit(t)

	for _, args := range [][]string{
		{"init", "-q", "-b", "main"},
		{"add", "."},
		{"-c", "user.email=test@example.com", "-c", "user.name=test", "commit", "-q", "-m", "starter"},
		{"tag", tag},
	} {
		cmd := exec.Command("git", args...)
		cmd.Dir = dir
		if out, err := cmd.CombinedOutput(); err != nil {
			t.Fatalf("git %v: %v\n%s", args, err, out)
		}
	}
}

func requireGit(t *testing.T) {
	t.Helper()
	if _, err := exec.LookPath("git"); err != nil {
		t.Skip("git not available")
	}
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		t.Fatalf("creating dir for %s: %v", path, err)
	}
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("writing %s: %v", path, err)
	}
}

func assertFileExists(t *testing.T, path string) {
	t.Helper()
	if _, err := os.Stat(path); err != nil {
		t.Errorf("expected %s to exist: %v", path, err)
	}
}

func assertNotExists(t *testing.T, path string) {
	t.Helper()
	if _, err := os.Lstat(path); err == nil {
		t.Errorf("expected %s not to exist", path)
	}
}
