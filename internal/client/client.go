// ABOUTME: HTTP client for the SkillGenome API
// ABOUTME: Wraps API calls with proper error handling for CLI usage

package client

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"strings"
	"time"

	"golang.org/x/sync/singleflight"
)

// DefaultTimeout bounds every API request unless overridden
const DefaultTimeout = 30 * time.Second

// Client is the API client for the SkillGenome backend
type Client struct {
	baseURL    string
	httpClient *http.Client
	inflight   singleflight.Group
}

// Option configures a Client
type Option func(*Client) error

// WithTimeout sets the per-request timeout
func WithTimeout(d time.Duration) Option {
	return func(c *Client) error {
		if d > 0 {
			c.httpClient.Timeout = d
		}
		return nil
	}
}

// WithHTTPClient replaces the underlying http.Client
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) error {
		if hc == nil {
			return errors.New("http client must not be nil")
		}
		c.httpClient = hc
		return nil
	}
}

// WithAllProxy routes requests through an SSH+SOCKS5 jumpbox.
// Format: ssh+socks5://user@host:port?private-key=/path/to/key
func WithAllProxy(allProxy string) Option {
	return func(c *Client) error {
		if allProxy == "" {
			return nil
		}
		dial, err := socks5DialContext(allProxy)
		if err != nil {
			return err
		}
		transport := http.DefaultTransport.(*http.Transport).Clone()
		transport.DialContext = dial
		c.httpClient.Transport = transport
		return nil
	}
}

// New creates a new API client with the given base URL
func New(baseURL string, opts ...Option) (*Client, error) {
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: DefaultTimeout,
		},
	}
	for _, opt := range opts {
		if err := opt(c); err != nil {
			return nil, fmt.Errorf("invalid client option: %w", err)
		}
	}
	return c, nil
}

// BaseURL returns the API root the client talks to
func (c *Client) BaseURL() string {
	return c.baseURL
}

// ErrorResponse represents an API error body
type ErrorResponse struct {
	Error string `json:"error"`
}

// Health calls GET /health; any 2xx counts as reachable
func (c *Client) Health(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/health", nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return c.handleRequestError(ctx, err)
	}
	defer resp.Body.Close()

	if !isSuccess(resp.StatusCode) {
		return c.handleErrorResponse(resp)
	}
	return nil
}

// handleRequestError converts context errors to user-friendly messages
func (c *Client) handleRequestError(ctx context.Context, err error) error {
	if errors.Is(ctx.Err(), context.Canceled) {
		return fmt.Errorf("request canceled")
	}
	if errors.Is(ctx.Err(), context.DeadlineExceeded) {
		return fmt.Errorf("request timed out")
	}
	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return fmt.Errorf("request timed out")
	}
	return fmt.Errorf("cannot connect to backend at %s: %w", c.baseURL, err)
}

// handleErrorResponse parses API error responses
func (c *Client) handleErrorResponse(resp *http.Response) error {
	var errResp ErrorResponse
	if err := json.NewDecoder(resp.Body).Decode(&errResp); err != nil || errResp.Error == "" {
		return fmt.Errorf("backend returned status %d", resp.StatusCode)
	}
	return fmt.Errorf("backend error: %s", errResp.Error)
}

func isSuccess(status int) bool {
	return status >= 200 && status < 300
}

func logRequest(method, url, requestID string, status int, start time.Time) {
	slog.Debug("API request",
		"method", method,
		"url", url,
		"request_id", requestID,
		"status", status,
		"duration", time.Since(start))
}
