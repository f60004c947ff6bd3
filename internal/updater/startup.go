package updater

import (
	"context"
	"fmt"
	"io"
	"time"
)

// CheckAndPrintBanner prints an update banner from the cached check and, if
// the cache is stale, refreshes it in a background goroutine for the next
// invocation. It never blocks on the network; cache errors are ignored.
func (u *Updater) CheckAndPrintBanner(w io.Writer, cliName, configDir string) {
	cache, err := LoadCache(configDir)
	if err != nil {
		return
	}

	if cache.Announces(u.currentVersion) {
		PrintUpdateBanner(w, cliName, cache.CurrentVersion, cache.LatestVersion, cache.ReleaseURL)
	}

	if cache.Stale(time.Now()) {
		go func() { _, _ = u.RefreshCache(context.Background(), configDir) }()
	}
}

// PrintUpdateBanner prints the update notification to w.
func PrintUpdateBanner(w io.Writer, cliName, current, latest, url string) {
	fmt.Fprintf(w, "\nUpdate available for %s: %s -> %s\n", cliName, current, latest)
	if url != "" {
		fmt.Fprintf(w, "    %s\n", url)
	}
	fmt.Fprintln(w)
}

// RefreshCache fetches the latest release, stores the result in configDir
// and returns it.
func (u *Updater) RefreshCache(ctx context.Context, configDir string) (*VersionCache, error) {
	release, err := u.CheckLatestVersion(ctx)
	if err != nil {
		return nil, err
	}

	available, err := Newer(u.currentVersion, release.Version)
	if err != nil {
		return nil, err
	}

	cache := &VersionCache{
		LatestVersion:   release.Version,
		CurrentVersion:  u.currentVersion,
		ReleaseURL:      release.HTMLURL,
		CheckedAt:       time.Now(),
		UpdateAvailable: available,
	}
	if err := cache.Save(configDir); err != nil {
		return nil, err
	}
	return cache, nil
}
