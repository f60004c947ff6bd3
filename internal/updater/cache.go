package updater

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"
)

const (
	cacheFileName = "version-check.json"
	// CacheTTL is how long a release check is trusted before it is refreshed.
	CacheTTL = 24 * time.Hour
)

// VersionCache is the last release check, stored in the config directory.
type VersionCache struct {
	LatestVersion   string    `json:"latest_version"`
	CurrentVersion  string    `json:"current_version"`
	ReleaseURL      string    `json:"release_url,omitempty"`
	CheckedAt       time.Time `json:"checked_at"`
	UpdateAvailable bool      `json:"update_available"`
}

// LoadCache reads the cached check from configDir. A missing file yields
// nil, nil.
func LoadCache(configDir string) (*VersionCache, error) {
	data, err := os.ReadFile(filepath.Join(configDir, cacheFileName))
	switch {
	case os.IsNotExist(err):
		return nil, nil
	case err != nil:
		return nil, fmt.Errorf("reading version cache: %w", err)
	}

	c := new(VersionCache)
	if err := json.Unmarshal(data, c); err != nil {
		return nil, fmt.Errorf("parsing version cache: %w", err)
	}
	return c, nil
}

// Save writes c into configDir, creating the directory if needed. The file
// is replaced in one rename so a concurrent reader never sees half of it.
func (c *VersionCache) Save(configDir string) error {
	if err := os.MkdirAll(configDir, 0755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}
	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding version cache: %w", err)
	}

	tmp, err := os.CreateTemp(configDir, cacheFileName+".*")
	if err != nil {
		return fmt.Errorf("writing version cache: %w", err)
	}
	defer os.Remove(tmp.Name())
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("writing version cache: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("writing version cache: %w", err)
	}
	if err := os.Rename(tmp.Name(), filepath.Join(configDir, cacheFileName)); err != nil {
		return fmt.Errorf("writing version cache: %w", err)
	}
	return nil
}

// Stale reports whether the check is missing or older than CacheTTL at now.
func (c *VersionCache) Stale(now time.Time) bool {
	return c == nil || now.Sub(c.CheckedAt) > CacheTTL
}

// Announces reports whether the cached check says running version current
// is outdated. A check made by another version says nothing about this one.
func (c *VersionCache) Announces(current string) bool {
	return c != nil && c.UpdateAvailable && c.CurrentVersion == current
}
