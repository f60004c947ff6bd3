package telemetry

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type collector struct {
	mu     sync.Mutex
	events []payload
}

func (c *collector) handler(status int) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var p payload
		if err := json.NewDecoder(r.Body).Decode(&p); err == nil {
			c.mu.Lock()
			c.events = append(c.events, p)
			c.mu.Unlock()
		}
		w.WriteHeader(status)
	}
}

func (c *collector) received() []payload {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]payload(nil), c.events...)
}

func TestInitCreatesAndReusesClientID(t *testing.T) {
	dir := t.TempDir()

	first := New(true, "http://127.0.0.1:1", dir)
	require.NoError(t, first.Init(context.Background()))
	require.NotEmpty(t, first.ClientID())

	_, err := os.Stat(filepath.Join(dir, stateFileName))
	require.NoError(t, err)

	second := New(true, "http://127.0.0.1:1", dir)
	require.NoError(t, second.Init(context.Background()))
	assert.Equal(t, first.ClientID(), second.ClientID())
}

func TestInitReplacesCorruptState(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, stateFileName), []byte("{not json"), 0644))

	c := New(true, "http://127.0.0.1:1", dir)
	require.NoError(t, c.Init(context.Background()))
	assert.NotEmpty(t, c.ClientID())
}

func TestDisabledClientDoesNothing(t *testing.T) {
	dir := t.TempDir()
	col := &collector{}
	srv := httptest.NewServer(col.handler(http.StatusOK))
	defer srv.Close()

	c := New(false, srv.URL, dir)
	require.NoError(t, c.Init(context.Background()))
	c.Event(EventStart, nil)
	assert.True(t, c.Flush(time.Second))

	assert.False(t, c.Enabled())
	assert.Empty(t, col.received())
	_, err := os.Stat(filepath.Join(dir, stateFileName))
	assert.True(t, os.IsNotExist(err))
}

func TestEventDelivered(t *testing.T) {
	col := &collector{}
	srv := httptest.NewServer(col.handler(http.StatusAccepted))
	defer srv.Close()

	fixed := time.Date(2026, 10, 19, 12, 0, 0, 0, time.UTC)
	c := New(true, srv.URL, t.TempDir(), WithHTTPClient(srv.Client()), WithClock(func() time.Time { return fixed }))
	require.NoError(t, c.Init(context.Background()))

	c.Event(EventStart, map[string]any{"version": "1.2.0", "starter": "org/repo", "skipInstall": true, "verbose": false})
	require.True(t, c.Flush(5*time.Second))

	events := col.received()
	require.Len(t, events, 1)
	assert.Equal(t, EventStart, events[0].Event)
	assert.Equal(t, c.ClientID(), events[0].ClientID)
	assert.True(t, fixed.Equal(events[0].Timestamp))
	assert.Equal(t, "org/repo", events[0].Properties["starter"])
	assert.Equal(t, true, events[0].Properties["skipInstall"])
}

func TestEventFailureIsSilent(t *testing.T) {
	col := &collector{}
	srv := httptest.NewServer(col.handler(http.StatusInternalServerError))
	defer srv.Close()

	c := New(true, srv.URL, t.TempDir())
	require.NoError(t, c.Init(context.Background()))

	c.Event(EventSuccess, map[string]any{"version": "1.2.0"})
	assert.True(t, c.Flush(5*time.Second))
	assert.Len(t, col.received(), 1)
}

func TestEventDoesNotBlock(t *testing.T) {
	release := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-release
	}))
	defer srv.Close()
	defer close(release)

	c := New(true, srv.URL, t.TempDir())
	require.NoError(t, c.Init(context.Background()))

	start := time.Now()
	c.Event(EventStart, nil)
	assert.Less(t, time.Since(start), time.Second)
	assert.False(t, c.Flush(50*time.Millisecond))
}

func TestDisabledByEnv(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
		want bool
	}{
		{"unset", map[string]string{}, false},
		{"do not track", map[string]string{"DO_NOT_TRACK": "1"}, true},
		{"do not track false", map[string]string{"DO_NOT_TRACK": "false"}, false},
		{"tool var", map[string]string{"STARTERKIT_TELEMETRY_DISABLED": "true"}, true},
		{"tool var zero", map[string]string{"STARTERKIT_TELEMETRY_DISABLED": "0"}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			lookup := func(k string) (string, bool) {
				v, ok := tt.env[k]
				return v, ok
			}
			assert.Equal(t, tt.want, DisabledByEnv(lookup, "STARTERKIT_TELEMETRY_DISABLED"))
		})
	}
}

func TestNormalizeVersion(t *testing.T) {
	assert.Equal(t, "1.2.3", NormalizeVersion("v1.2.3"))
	assert.Equal(t, "2.0.0", NormalizeVersion("2"))
	assert.Equal(t, "1.0.0-rc.1", NormalizeVersion("1.0.0-rc.1"))
	assert.Equal(t, "0.0.0-dev", NormalizeVersion("dev"))
}
