package updater

import (
	"net/http"
	"time"
)

const defaultAPIBase = "https://api.github.com"

// Release represents a GitHub release.
type Release struct {
	Version   string    `json:"tag_name"`
	Published time.Time `json:"published_at"`
	HTMLURL   string    `json:"html_url"`
}

// Updater checks for newer releases of the running binary.
type Updater struct {
	currentVersion string
	repo           string
	apiBase        string
	httpClient     *http.Client
}

// Option configures an Updater.
type Option func(*Updater)

// WithHTTPClient sets a custom HTTP client (useful for testing).
func WithHTTPClient(c *http.Client) Option {
	return func(u *Updater) {
		u.httpClient = c
	}
}

// WithAPIBase points release lookups at another GitHub API root.
func WithAPIBase(base string) Option {
	return func(u *Updater) {
		u.apiBase = base
	}
}

// New creates an Updater for the given version and "owner/repo".
func New(currentVersion, repo string, opts ...Option) *Updater {
	u := &Updater{
		currentVersion: currentVersion,
		repo:           repo,
		apiBase:        defaultAPIBase,
		httpClient:     &http.Client{Timeout: 10 * time.Second},
	}
	for _, opt := range opts {
		opt(u)
	}
	return u
}

// CurrentVersion returns the version this updater was created with.
func (u *Updater) CurrentVersion() string {
	return u.currentVersion
}
