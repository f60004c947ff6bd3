package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/starterkit/starterkit/internal/branding"
)

const (
	fileName = "config"
	fileType = "yaml"
)

// Recognized configuration keys.
const (
	KeySkipInstall   = "skip_install"
	KeyVerbose       = "verbose"
	KeyCloneProtocol = "clone_protocol"
	KeyTelemetry     = "telemetry"
	KeyTelemetryURL  = "telemetry_url"
	KeyEnvKeys       = "env.keys"
	KeyUpdateCheck   = "update_check"
)

// DefaultEnvKeys are written to a new project's .env when env.keys is unset.
var DefaultEnvKeys = []string{"THEME_STORE", "THEME_PASSWORD", "THEME_ID", "THEME_IGNORE_FILES"}

// Dir returns the path to the config directory. STARTERKIT_HOME overrides
// the default of ~/.starterkit.
func Dir() string {
	if v := os.Getenv(branding.EnvVar("HOME")); v != "" {
		return v
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".", branding.HomeDir())
	}
	return filepath.Join(home, branding.HomeDir())
}

// FilePath returns the full path to the config file (~/.starterkit/config.yaml).
func FilePath() string {
	return filepath.Join(Dir(), fileName+"."+fileType)
}

// EnsureDir creates the config directory if it does not exist.
func EnsureDir() error {
	dir := Dir()
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("creating config directory %s: %w", dir, err)
	}
	return nil
}

// Load initializes Viper with defaults, the config file and environment.
func Load() {
	viper.SetDefault(KeySkipInstall, false)
	viper.SetDefault(KeyVerbose, false)
	viper.SetDefault(KeyCloneProtocol, "ssh")
	viper.SetDefault(KeyTelemetry, true)
	viper.SetDefault(KeyTelemetryURL, branding.TelemetryURL())
	viper.SetDefault(KeyEnvKeys, DefaultEnvKeys)
	viper.SetDefault(KeyUpdateCheck, true)

	viper.SetConfigFile(FilePath())
	viper.SetConfigType(fileType)
	viper.SetEnvPrefix(branding.EnvPrefix())
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	// Ignore error if config file doesn't exist yet.
	_ = viper.ReadInConfig()
}

// BindFlags lets the named flags override config and environment values.
// Flag names use dashes; the matching config key uses underscores.
func BindFlags(flags *pflag.FlagSet, names ...string) error {
	for _, name := range names {
		f := flags.Lookup(name)
		if f == nil {
			return fmt.Errorf("unknown flag %q", name)
		}
		if err := viper.BindPFlag(strings.ReplaceAll(name, "-", "_"), f); err != nil {
			return fmt.Errorf("binding flag %q: %w", name, err)
		}
	}
	return nil
}

// Get returns a config value by key. Returns empty string if not set.
func Get(key string) string {
	return viper.GetString(key)
}

// Bool returns a boolean config value.
func Bool(key string) bool {
	return viper.GetBool(key)
}

// StringSlice returns a list config value. A comma-separated string (as set
// through the environment) is split into its parts.
func StringSlice(key string) []string {
	values := viper.GetStringSlice(key)
	var out []string
	for _, v := range values {
		for _, part := range strings.Split(v, ",") {
			if part = strings.TrimSpace(part); part != "" {
				out = append(out, part)
			}
		}
	}
	return out
}

// Set writes a config key-value pair and saves the config file.
func Set(key, value string) error {
	if err := EnsureDir(); err != nil {
		return err
	}

	viper.Set(key, value)

	configFile := FilePath()

	// Create the file if it doesn't exist.
	if _, err := os.Stat(configFile); os.IsNotExist(err) {
		f, err := os.Create(configFile)
		if err != nil {
			return fmt.Errorf("creating config file %s: %w", configFile, err)
		}
		f.Close()
	}

	if err := viper.WriteConfigAs(configFile); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}

	return nil
}
