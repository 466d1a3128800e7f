package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/cookiejar"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"golang.org/x/time/rate"
)

// Client makes authenticated requests to the Spolify backend.
type Client struct {
	baseURL        string
	httpClient     *http.Client
	limiter        *rate.Limiter
	logger         *log.Logger
	onUnauthorized func()
}

// ClientOpts contains configuration options for creating a Client.
type ClientOpts struct {
	BaseURL        string
	HTTPClient     *http.Client
	Timeout        time.Duration
	RequestsPerSec float64
	Logger         *log.Logger
}

// NewClient creates a new Client for the given backend.
//
// When no HTTP client is supplied, one with a cookie jar is constructed so the
// backend's session cookie survives across calls. A supplied client is used
// as is; Timeout only applies to the constructed one.
func NewClient(opts ClientOpts) (*Client, error) {
	if opts.BaseURL == "" {
		return nil, fmt.Errorf("missing backend base URL")
	}

	httpClient := opts.HTTPClient
	if httpClient == nil {
		jar, err := cookiejar.New(nil)
		if err != nil {
			return nil, fmt.Errorf("failed to create cookie jar: %w", err)
		}
		httpClient = &http.Client{Jar: jar, Timeout: opts.Timeout}
	}

	rps := opts.RequestsPerSec
	if rps <= 0 {
		rps = 10
	}

	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}

	return &Client{
		baseURL:    strings.TrimRight(opts.BaseURL, "/"),
		httpClient: httpClient,
		limiter:    rate.NewLimiter(rate.Limit(rps), int(rps)),
		logger:     logger,
	}, nil
}

// OnUnauthorized registers a hook fired whenever the backend answers 401,
// letting the session store drop its marker.
func (c *Client) OnUnauthorized(fn func()) {
	c.onUnauthorized = fn
}

// do performs a request and decodes the JSON response into result when non-nil.
func (c *Client) do(ctx context.Context, method, path string, body any, result any) error {
	var reqBody io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to encode request body: %w", err)
		}
		reqBody = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reqBody)
	if err != nil {
		return transportError(err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	return c.send(req, result)
}

// send executes a prepared request, mapping failures onto [*Error].
func (c *Client) send(req *http.Request, result any) error {
	if err := c.limiter.Wait(req.Context()); err != nil {
		return transportError(err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Debug("request failed before a response arrived", "method", req.Method, "url", req.URL.String(), "err", err)
		return transportError(err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return transportError(err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return c.responseError(resp, raw)
	}

	if result == nil || resp.StatusCode == http.StatusNoContent {
		return nil
	}

	contentType := resp.Header.Get("Content-Type")
	if !strings.Contains(contentType, "application/json") {
		return &Error{
			Status:  resp.StatusCode,
			Message: fmt.Sprintf("expected JSON response, got %q", contentType),
			Details: map[string]any{"body": string(raw)},
		}
	}

	if err := json.Unmarshal(raw, result); err != nil {
		return &Error{
			Status:  resp.StatusCode,
			Message: fmt.Sprintf("failed to decode response: %v", err),
			Details: map[string]any{"body": string(raw)},
			cause:   err,
		}
	}

	return nil
}

// responseError turns a non-2xx response into a [*Error], preferring the
// server's JSON "error" field for the message.
func (c *Client) responseError(resp *http.Response, raw []byte) error {
	details := map[string]any{}
	message := resp.Status

	if err := json.Unmarshal(raw, &details); err == nil {
		if msg, ok := details["error"].(string); ok && msg != "" {
			message = msg
		}
	} else if len(raw) > 0 {
		details["body"] = string(raw)
	}

	apiErr := &Error{Status: resp.StatusCode, Message: message, Details: details}

	if apiErr.IsAuth() && c.onUnauthorized != nil {
		c.onUnauthorized()
	}

	return apiErr
}

// ParseSongID converts a song ID from its string form (route params, CLI
// arguments) into the canonical int64 used module-wide.
func ParseSongID(s string) (int64, error) {
	id, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid song ID %q: %w", s, err)
	}
	return id, nil
}

// ParsePlaylistID converts a playlist ID from its string form into int64.
func ParsePlaylistID(s string) (int64, error) {
	id, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid playlist ID %q: %w", s, err)
	}
	return id, nil
}
