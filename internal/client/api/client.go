// Package api is the sole egress point for calls to the BookLog REST API.
//
// Client wraps every outbound request with bearer-credential injection and
// the refresh-and-replay protocol: a 401 response triggers exactly one
// silent token refresh and one replay of the original request; if the
// refresh fails, the session is cleared and the caller receives the
// original authorization failure.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/ameleshko/booklog-cli/internal/client/session"
	"github.com/ameleshko/booklog-cli/internal/common"
	"github.com/ameleshko/booklog-cli/internal/logging"
)

const defaultTimeout = 15 * time.Second

// refreshPath is the token-refresh endpoint. Request body {"refresh": ...},
// response body {"access": ...}; refresh tokens are not rotated.
const refreshPath = "auth/token/refresh/"

// Client executes requests against the API on behalf of a Session.
type Client struct {
	baseURL *url.URL
	hc      *http.Client
	session *session.Session
	log     logging.Logger
}

type Option func(*Client)

// WithHTTPClient substitutes the underlying transport.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.hc = hc }
}

// WithLogger attaches a logger; the default discards everything.
func WithLogger(l logging.Logger) Option {
	return func(c *Client) { c.log = l.With("component", "api") }
}

// New builds a Client for the given API base URL (e.g.
// "http://localhost:8000/api/"). The session is read for credentials on
// every call and mutated only by the refresh protocol.
func New(baseURL string, sess *session.Session, opts ...Option) (*Client, error) {
	if !strings.HasSuffix(baseURL, "/") {
		baseURL += "/"
	}
	u, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("parse base url: %w", err)
	}

	c := &Client{
		baseURL: u,
		hc:      &http.Client{Timeout: defaultTimeout},
		session: sess,
		log:     logging.Nop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// Do executes one request. On 2xx the response body, if any, is decoded
// into out (which may be nil). Non-2xx responses come back as *APIError;
// transport failures wrap common.ErrUnavailable. A 401 engages the refresh
// protocol; every other outcome is returned verbatim with no retry.
func (c *Client) Do(ctx context.Context, r Request, out any) error {
	resp, err := c.send(ctx, r)
	if err != nil {
		return err
	}
	if resp.StatusCode != http.StatusUnauthorized {
		return c.finish(resp, out)
	}

	// Keep the original failure: it is what the caller sees if recovery
	// does not pan out.
	orig := c.apiError(resp)

	refreshToken, ok := c.session.RefreshToken()
	if !ok {
		c.session.Clear()
		return orig
	}

	access, err := c.refreshAccess(ctx, refreshToken)
	if err != nil || access == "" {
		c.log.Warn(ctx, "token refresh failed, clearing session", "err", err)
		c.session.Clear()
		return orig
	}

	c.session.SetCredentials(access, refreshToken)
	c.log.Debug(ctx, "access token refreshed, replaying request",
		"method", r.Method, "path", r.Path)

	resp, err = c.send(ctx, r)
	if err != nil {
		return err
	}
	return c.finish(resp, out)
}

// refreshAccess exchanges the refresh token for a new access token. It goes
// through send directly so a failing refresh can never trigger another
// refresh.
func (c *Client) refreshAccess(ctx context.Context, refreshToken string) (string, error) {
	r := Request{
		Method: http.MethodPost,
		Path:   refreshPath,
		Body:   map[string]string{"refresh": refreshToken},
	}
	resp, err := c.send(ctx, r)
	if err != nil {
		return "", err
	}

	var out struct {
		Access string `json:"access"`
	}
	if err := c.finish(resp, &out); err != nil {
		return "", err
	}
	return out.Access, nil
}

// send builds and dispatches the HTTP request. The body is re-encoded on
// every call, which is what makes replays safe.
func (c *Client) send(ctx context.Context, r Request) (*http.Response, error) {
	u, err := c.baseURL.Parse(strings.TrimPrefix(r.Path, "/"))
	if err != nil {
		return nil, fmt.Errorf("resolve %q: %w", r.Path, err)
	}
	if len(r.Params) > 0 {
		u.RawQuery = r.Params.Encode()
	}

	var body io.Reader
	contentType := ""
	switch {
	case r.Form != nil:
		b, ct, err := r.Form.encode()
		if err != nil {
			return nil, fmt.Errorf("encode form: %w", err)
		}
		body, contentType = bytes.NewReader(b), ct
	case r.Body != nil:
		b, err := json.Marshal(r.Body)
		if err != nil {
			return nil, fmt.Errorf("encode body: %w", err)
		}
		body, contentType = bytes.NewReader(b), "application/json"
	}

	req, err := http.NewRequestWithContext(ctx, r.Method, u.String(), body)
	if err != nil {
		return nil, err
	}
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Request-ID", uuid.NewString())
	if access, ok := c.session.AccessToken(); ok {
		req.Header.Set("Authorization", "Bearer "+access)
	}

	resp, err := c.hc.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%s %s: %w: %v", r.Method, r.Path, common.ErrUnavailable, err)
	}
	return resp, nil
}

// finish consumes the response: decode into out on success, structured
// error otherwise. The body is always drained and closed.
func (c *Client) finish(resp *http.Response, out any) error {
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return c.apiError(resp)
	}

	defer resp.Body.Close()
	if out == nil || resp.StatusCode == http.StatusNoContent {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

func (c *Client) apiError(resp *http.Response) *APIError {
	defer resp.Body.Close()
	body, _ := io.ReadAll(resp.Body)
	return newAPIError(resp.StatusCode, body)
}
