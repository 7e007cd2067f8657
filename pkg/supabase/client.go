package supabase

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"ott-admin/pkg/logger"
)

// Client handles all interactions with the Supabase project backing the
// platform. The admin service talks to Postgres directly for table access;
// this client covers the HTTP and realtime surfaces.
type Client struct {
	baseURL    string
	serviceKey string
	httpClient *http.Client
	logger     *logger.Logger
}

// NewClient creates a new Supabase client
func NewClient(baseURL, serviceKey string, logger *logger.Logger) *Client {
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		serviceKey: serviceKey,
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
		logger: logger,
	}
}

// Health calls the Supabase auth health endpoint
func (c *Client) Health(ctx context.Context) error {
	endpoint := fmt.Sprintf("%s/auth/v1/health", c.baseURL)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("apikey", c.serviceKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to call Supabase health endpoint: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response body: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("Supabase health endpoint returned status %d: %s", resp.StatusCode, string(body))
	}

	return nil
}

// realtimeURL builds the websocket endpoint for the realtime service
func (c *Client) realtimeURL() (string, error) {
	u, err := url.Parse(c.baseURL)
	if err != nil {
		return "", fmt.Errorf("failed to parse Supabase URL: %w", err)
	}

	switch u.Scheme {
	case "https":
		u.Scheme = "wss"
	case "http":
		u.Scheme = "ws"
	default:
		return "", fmt.Errorf("unsupported Supabase URL scheme %q", u.Scheme)
	}

	u.Path = "/realtime/v1/websocket"
	q := u.Query()
	q.Set("apikey", c.serviceKey)
	q.Set("vsn", "1.0.0")
	u.RawQuery = q.Encode()

	return u.String(), nil
}
