// Package config manages user-level settings stored at ~/.starterkit/config.yaml.
// It registers defaults for every recognized key, overlays the config file and
// STARTERKIT_* environment variables through Viper, and lets commands bind
// their flags on top so that flags win.
package config
