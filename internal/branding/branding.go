// Package branding provides compile-time identity values for the CLI.
//
// Forkers edit branding.yaml in this package before building; Go's
// //go:embed bakes it into the binary.
package branding

import (
	_ "embed"
	"strings"
	"sync"

	"go.yaml.in/yaml/v3"
)

//go:embed branding.yaml
var rawBranding []byte

var (
	once     sync.Once
	defaults brand
)

type brand struct {
	CLIName      string `yaml:"cli_name"`
	DisplayName  string `yaml:"display_name"`
	Description  string `yaml:"description"`
	HomeDir      string `yaml:"home_dir"`
	EnvPrefix    string `yaml:"env_prefix"`
	GoModule     string `yaml:"go_module"`
	GitHubRepo   string `yaml:"github_repo"`
	TelemetryURL string `yaml:"telemetry_url"`
}

func load() {
	once.Do(func() {
		// Hard defaults in case the embedded file is missing or empty.
		defaults = brand{
			CLIName:      "starterkit",
			DisplayName:  "Starterkit",
			Description:  "Scaffold a new project from a starter template",
			HomeDir:      ".starterkit",
			EnvPrefix:    "STARTERKIT",
			GoModule:     "github.com/starterkit/starterkit",
			GitHubRepo:   "starterkit/starterkit",
			TelemetryURL: "https://telemetry.starterkit.dev/v1/events",
		}
		_ = yaml.Unmarshal(rawBranding, &defaults)
	})
}

// CLIName returns the root command name (e.g., "starterkit").
func CLIName() string { load(); return defaults.CLIName }

// DisplayName returns the human-readable product name.
func DisplayName() string { load(); return defaults.DisplayName }

// Description returns the short product description.
func Description() string { load(); return defaults.Description }

// HomeDir returns the dot-directory name under $HOME (e.g., ".starterkit").
func HomeDir() string { load(); return defaults.HomeDir }

// EnvPrefix returns the environment variable prefix (e.g., "STARTERKIT").
func EnvPrefix() string { load(); return defaults.EnvPrefix }

// GoModule returns the Go module path. Not consumed at runtime.
func GoModule() string { load(); return defaults.GoModule }

// GitHubRepo returns the "owner/repo" string used for release checks.
func GitHubRepo() string { load(); return defaults.GitHubRepo }

// TelemetryURL returns the default endpoint for usage events.
func TelemetryURL() string { load(); return defaults.TelemetryURL }

// EnvVar returns a fully qualified env var name, e.g., EnvVar("verbose") → "STARTERKIT_VERBOSE".
func EnvVar(suffix string) string {
	load()
	return defaults.EnvPrefix + "_" + strings.ToUpper(suffix)
}
