package telemetry

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"sync"
	"time"

	"github.com/Masterminds/semver/v3"
	"github.com/google/uuid"

	"github.com/starterkit/starterkit/internal/ctxlog"
)

const (
	stateFileName = "telemetry.json"
	postTimeout   = 5 * time.Second
	devVersion    = "0.0.0-dev"
)

// Event names.
const (
	EventStart   = "starterkit:new:start"
	EventSuccess = "starterkit:new:success"
)

type state struct {
	ClientID  string    `json:"client_id"`
	CreatedAt time.Time `json:"created_at"`
}

type payload struct {
	Event      string         `json:"event"`
	ClientID   string         `json:"client_id"`
	Timestamp  time.Time      `json:"timestamp"`
	OS         string         `json:"os"`
	Arch       string         `json:"arch"`
	Properties map[string]any `json:"properties,omitempty"`
}

// Client emits usage events.
type Client struct {
	enabled    bool
	endpoint   string
	configDir  string
	httpClient *http.Client
	logger     *slog.Logger
	now        func() time.Time

	clientID string
	wg       sync.WaitGroup
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient sets a custom HTTP client (useful for testing).
func WithHTTPClient(h *http.Client) Option {
	return func(c *Client) {
		c.httpClient = h
	}
}

// WithLogger sets the logger delivery failures are reported to at debug level.
func WithLogger(l *slog.Logger) Option {
	return func(c *Client) {
		c.logger = l
	}
}

// WithClock replaces time.Now.
func WithClock(now func() time.Time) Option {
	return func(c *Client) {
		c.now = now
	}
}

// New creates a Client posting to endpoint and keeping its state in
// configDir. A disabled client does nothing.
func New(enabled bool, endpoint, configDir string, opts ...Option) *Client {
	c := &Client{
		enabled:    enabled && endpoint != "",
		endpoint:   endpoint,
		configDir:  configDir,
		httpClient: &http.Client{Timeout: postTimeout},
		logger:     ctxlog.Discard(),
		now:        time.Now,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// DisabledByEnv reports whether the environment opts out of telemetry via
// DO_NOT_TRACK or the tool's own <PREFIX>_TELEMETRY_DISABLED variable.
func DisabledByEnv(lookup func(string) (string, bool), toolVar string) bool {
	for _, key := range []string{"DO_NOT_TRACK", toolVar} {
		v, ok := lookup(key)
		if !ok {
			continue
		}
		v = strings.ToLower(strings.TrimSpace(v))
		if v != "" && v != "0" && v != "false" {
			return true
		}
	}
	return false
}

// Enabled reports whether events will be sent.
func (c *Client) Enabled() bool {
	return c.enabled
}

// ClientID returns the anonymous id loaded by Init.
func (c *Client) ClientID() string {
	return c.clientID
}

// Init loads the anonymous client id, creating and persisting a new one on
// first use.
func (c *Client) Init(ctx context.Context) error {
	if !c.enabled {
		return nil
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	path := filepath.Join(c.configDir, stateFileName)
	data, err := os.ReadFile(path)
	if err == nil {
		var s state
		if jsonErr := json.Unmarshal(data, &s); jsonErr == nil && s.ClientID != "" {
			c.clientID = s.ClientID
			return nil
		}
	} else if !os.IsNotExist(err) {
		return fmt.Errorf("reading telemetry state: %w", err)
	}

	s := state{ClientID: uuid.NewString(), CreatedAt: c.now().UTC()}
	out, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling telemetry state: %w", err)
	}
	if err := os.MkdirAll(c.configDir, 0755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}
	if err := os.WriteFile(path, out, 0644); err != nil {
		return fmt.Errorf("writing telemetry state: %w", err)
	}
	c.clientID = s.ClientID
	return nil
}

// Event posts an event in the background. Delivery errors are only logged.
func (c *Client) Event(name string, props map[string]any) {
	if !c.enabled {
		return
	}

	body, err := json.Marshal(payload{
		Event:      name,
		ClientID:   c.clientID,
		Timestamp:  c.now().UTC(),
		OS:         runtime.GOOS,
		Arch:       runtime.GOARCH,
		Properties: props,
	})
	if err != nil {
		c.logger.Debug("telemetry event dropped", "event", name, "error", err)
		return
	}

	c.wg.Add(1)
	go func() {
		defer c.wg.Done()
		if err := c.post(body); err != nil {
			c.logger.Debug("telemetry event dropped", "event", name, "error", err)
		}
	}()
}

func (c *Client) post(body []byte) error {
	ctx, cancel := context.WithTimeout(context.Background(), postTimeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("User-Agent", "starterkit-telemetry")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("posting event: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		return fmt.Errorf("telemetry endpoint returned status %d", resp.StatusCode)
	}
	return nil
}

// Flush waits up to timeout for in-flight events. It returns false if some
// were still pending when the timeout elapsed.
func (c *Client) Flush(timeout time.Duration) bool {
	done := make(chan struct{})
	go func() {
		c.wg.Wait()
		close(done)
	}()
	select {
	case <-done:
		return true
	case <-time.After(timeout):
		return false
	}
}

// NormalizeVersion returns version as canonical semver, or 0.0.0-dev for
// builds without a release version.
func NormalizeVersion(version string) string {
	v, err := semver.NewVersion(strings.TrimPrefix(version, "v"))
	if err != nil {
		return devVersion
	}
	return v.String()
}
