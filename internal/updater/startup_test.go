package updater

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func releaseServer(t *testing.T, status int, body string) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/repos/starterkit/starterkit/releases/latest", r.URL.Path)
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestCheckLatestVersion(t *testing.T) {
	srv := releaseServer(t, http.StatusOK, `{"tag_name":"v1.2.0","html_url":"https://example.test/r/v1.2.0"}`)
	u := New("1.0.0", "starterkit/starterkit", WithAPIBase(srv.URL), WithHTTPClient(srv.Client()))

	rel, err := u.CheckLatestVersion(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "v1.2.0", rel.Version)
	assert.Equal(t, "https://example.test/r/v1.2.0", rel.HTMLURL)
}

func TestCheckLatestVersion_Statuses(t *testing.T) {
	for _, status := range []int{http.StatusNotFound, http.StatusForbidden, http.StatusInternalServerError} {
		srv := releaseServer(t, status, "")
		u := New("1.0.0", "starterkit/starterkit", WithAPIBase(srv.URL))

		_, err := u.CheckLatestVersion(context.Background())
		assert.Error(t, err, "status %d", status)
	}
}

func TestRefreshCache(t *testing.T) {
	srv := releaseServer(t, http.StatusOK, `{"tag_name":"v1.2.0","html_url":"https://example.test/r/v1.2.0"}`)
	dir := t.TempDir()
	u := New("1.0.0", "starterkit/starterkit", WithAPIBase(srv.URL))

	cache, err := u.RefreshCache(context.Background(), dir)
	require.NoError(t, err)
	assert.True(t, cache.UpdateAvailable)

	cache, err = LoadCache(dir)
	require.NoError(t, err)
	require.NotNil(t, cache)
	assert.True(t, cache.UpdateAvailable)
	assert.Equal(t, "1.0.0", cache.CurrentVersion)
	assert.Equal(t, "https://example.test/r/v1.2.0", cache.ReleaseURL)
}

func TestCheckAndPrintBanner_FromCache(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, (&VersionCache{
		LatestVersion:   "v1.2.0",
		CurrentVersion:  "1.0.0",
		ReleaseURL:      "https://example.test/r/v1.2.0",
		CheckedAt:       time.Now(),
		UpdateAvailable: true,
	}).Save(dir))

	var buf bytes.Buffer
	New("1.0.0", "starterkit/starterkit").CheckAndPrintBanner(&buf, "starterkit", dir)

	assert.Contains(t, buf.String(), "Update available for starterkit: 1.0.0 -> v1.2.0")
	assert.Contains(t, buf.String(), "https://example.test/r/v1.2.0")
}

func TestCheckAndPrintBanner_OtherVersionSilent(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, (&VersionCache{
		LatestVersion:   "v1.2.0",
		CurrentVersion:  "0.9.0",
		CheckedAt:       time.Now(),
		UpdateAvailable: true,
	}).Save(dir))

	var buf bytes.Buffer
	New("1.2.0", "starterkit/starterkit").CheckAndPrintBanner(&buf, "starterkit", dir)
	assert.Empty(t, buf.String())
}

func TestRefreshCache_DevBuild(t *testing.T) {
	srv := releaseServer(t, http.StatusOK, `{"tag_name":"v1.2.0"}`)
	dir := t.TempDir()
	u := New("dev", "starterkit/starterkit", WithAPIBase(srv.URL))

	cache, err := u.RefreshCache(context.Background(), dir)
	require.NoError(t, err)
	assert.False(t, cache.UpdateAvailable)
}
