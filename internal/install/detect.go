package install

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"

	"github.com/Masterminds/semver/v3"

	"github.com/starterkit/starterkit/internal/runner"
)

// Manager identifies a package manager.
type Manager string

const (
	Yarn Manager = "yarn"
	NPM  Manager = "npm"
)

// minYarn is the oldest yarn accepted by the availability probe.
var minYarn = mustConstraint(">= 1.0.0")

func mustConstraint(s string) *semver.Constraints {
	c, err := semver.NewConstraint(s)
	if err != nil {
		panic(err)
	}
	return c
}

// Detection is the outcome of package-manager selection.
type Detection struct {
	Manager Manager
	Reason  string
	Version string // set when detected through the yarn probe
}

// Command returns the executable and arguments that install dependencies.
func (d Detection) Command() (string, []string) {
	if d.Manager == Yarn {
		return "yarnpkg", []string{"install"}
	}
	return "npm", []string{"install"}
}

// Detect picks the package manager for root: yarn.lock selects yarn,
// package-lock.json selects npm, otherwise yarn is used when `yarnpkg
// --version` reports a supported release, and npm is the fallback.
func Detect(ctx context.Context, r runner.Runner, root string) Detection {
	if fileExists(filepath.Join(root, "yarn.lock")) {
		return Detection{Manager: Yarn, Reason: "yarn.lock present"}
	}
	if fileExists(filepath.Join(root, "package-lock.json")) {
		return Detection{Manager: NPM, Reason: "package-lock.json present"}
	}

	if version, ok := probeYarn(ctx, r, root); ok {
		return Detection{Manager: Yarn, Reason: "yarn available", Version: version}
	}
	return Detection{Manager: NPM, Reason: "yarn not available"}
}

// probeYarn runs `yarnpkg --version` and checks the reported version.
func probeYarn(ctx context.Context, r runner.Runner, dir string) (string, bool) {
	if _, err := r.LookPath("yarnpkg"); err != nil {
		return "", false
	}
	var out bytes.Buffer
	if err := r.Run(ctx, runner.Cmd{Name: "yarnpkg", Args: []string{"--version"}, Dir: dir, Stdout: &out}); err != nil {
		return "", false
	}
	raw := strings.TrimSpace(out.String())
	v, err := semver.NewVersion(raw)
	if err != nil || !minYarn.Check(v) {
		return raw, false
	}
	return v.String(), true
}

func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}
