// ABOUTME: HTTP client adapter for the BookHaven backend API
// ABOUTME: Attaches the bearer token, intercepts 401s, and maps failures to typed errors

package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/rs/zerolog"
)

// TokenStore provides the persisted bearer token. Only the session manager
// and this adapter's 401 handler ever write the token.
type TokenStore interface {
	Token() (string, bool)
	Clear() error
}

// Client is the API client for the BookHaven backend.
type Client struct {
	baseURL        string
	httpClient     *http.Client
	tokens         TokenStore
	log            zerolog.Logger
	onUnauthorized func()
}

// New creates a new API client with the given base URL. The base URL should
// include the API prefix, e.g. http://localhost:5000/api.
func New(baseURL string, tokens TokenStore, log zerolog.Logger) *Client {
	return &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
		tokens: tokens,
		log:    log,
	}
}

// SetTimeout overrides the default request timeout.
func (c *Client) SetTimeout(d time.Duration) {
	if d > 0 {
		c.httpClient.Timeout = d
	}
}

// SetUnauthorizedHandler registers the hook invoked whenever any request is
// rejected with 401. The handler owns the Anonymous transition and must be
// idempotent under concurrent failing requests.
func (c *Client) SetUnauthorizedHandler(fn func()) {
	c.onUnauthorized = fn
}

// errorResponse is the backend's error body. Some endpoints use "message",
// older ones use "error".
type errorResponse struct {
	Message string `json:"message"`
	ErrMsg  string `json:"error"`
}

func (e errorResponse) text() string {
	if e.Message != "" {
		return e.Message
	}
	return e.ErrMsg
}

// do performs one REST call: builds the request, attaches the bearer token,
// sends it, and decodes the response into out (which may be nil).
func (c *Client) do(ctx context.Context, method, path string, query url.Values, body, out any) error {
	u := c.baseURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}

	var reqBody *bytes.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to marshal request body: %w", err)
		}
		reqBody = bytes.NewReader(data)
	} else {
		reqBody = bytes.NewReader(nil)
	}

	req, err := http.NewRequestWithContext(ctx, method, u, reqBody)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.tokens != nil {
		if token, ok := c.tokens.Token(); ok {
			req.Header.Set("Authorization", "Bearer "+token)
		}
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return c.handleRequestError(ctx, u, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusUnauthorized {
		return c.handleUnauthorized(resp, u)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return c.handleErrorResponse(resp, u)
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("invalid response from backend: %w", err)
	}
	return nil
}

// handleRequestError maps transport failures (no response received) to a
// network-kind error, with friendlier messages for context errors.
func (c *Client) handleRequestError(ctx context.Context, u string, err error) error {
	c.log.Error().Str("url", u).Err(err).Msg("network error")

	msg := fmt.Sprintf("cannot reach backend at %s", c.baseURL)
	if ctx.Err() == context.Canceled {
		msg = "request canceled"
	} else if ctx.Err() == context.DeadlineExceeded {
		msg = "request timed out"
	}
	return &Error{Kind: KindNetwork, Message: msg, Err: err}
}

// handleUnauthorized is the central 401 path: the stored token is cleared
// synchronously and the unauthorized hook fires before the caller sees the
// rejection. Clearing an already-cleared token is a no-op.
func (c *Client) handleUnauthorized(resp *http.Response, u string) error {
	var errResp errorResponse
	_ = json.NewDecoder(resp.Body).Decode(&errResp)

	msg := errResp.text()
	if msg == "" {
		msg = "authentication required"
	}

	c.log.Error().Int("status", resp.StatusCode).Str("url", u).Str("message", msg).Msg("api response error")

	if c.tokens != nil {
		if err := c.tokens.Clear(); err != nil {
			c.log.Error().Err(err).Msg("failed to clear stored token")
		}
	}
	if c.onUnauthorized != nil {
		c.onUnauthorized()
	}

	return &Error{Kind: KindAuth, Status: resp.StatusCode, Message: msg}
}

// handleErrorResponse maps non-2xx, non-401 responses to typed errors.
func (c *Client) handleErrorResponse(resp *http.Response, u string) error {
	var errResp errorResponse
	if err := json.NewDecoder(resp.Body).Decode(&errResp); err != nil {
		errResp = errorResponse{}
	}

	msg := errResp.text()
	if msg == "" {
		msg = fmt.Sprintf("backend returned status %d", resp.StatusCode)
	}

	c.log.Error().Int("status", resp.StatusCode).Str("url", u).Str("message", msg).Msg("api response error")

	kind := KindServer
	if resp.StatusCode == http.StatusNotFound {
		kind = KindNotFound
	}
	return &Error{Kind: kind, Status: resp.StatusCode, Message: msg}
}
