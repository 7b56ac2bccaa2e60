// Package api is the single HTTP client for the account-pool backend. It
// attaches the bearer credential to every outgoing request, unwraps the
// backend's {status, message, ...} envelope so callers only see typed
// payloads, and handles authorization failures globally: on HTTP 401 the
// stored token is purged and the registered hook fires, independent of
// which call triggered it.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/zoowayss/cursorpool/internal/common"
	"github.com/zoowayss/cursorpool/internal/logging"
)

// apiPrefix is the fixed path prefix in front of every backend route.
const apiPrefix = "/api"

// DefaultTimeout tolerates slow account-provisioning calls on the backend.
const DefaultTimeout = 5 * time.Minute

// TokenSource supplies the bearer credential for outgoing requests and is
// asked to purge it when the backend rejects it.
type TokenSource interface {
	Load(ctx context.Context) (string, error)
	Clear(ctx context.Context) error
}

type Client struct {
	base   string
	http   *http.Client
	tokens TokenSource
	log    logging.Logger

	mu             sync.Mutex
	onUnauthorized func()
}

// New builds the shared client. baseURL is scheme://host[:port] without the
// /api prefix. A zero timeout falls back to DefaultTimeout.
func New(baseURL string, timeout time.Duration, tokens TokenSource, log logging.Logger) *Client {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Client{
		base:   baseURL,
		http:   &http.Client{Timeout: timeout},
		tokens: tokens,
		log:    log.With("component", "api"),
	}
}

// SetUnauthorizedHook registers the callback fired after a 401 purges the
// token. The CLI uses it to bounce the user back to the login screen.
func (c *Client) SetUnauthorizedHook(fn func()) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.onUnauthorized = fn
}

func (c *Client) fireUnauthorized() {
	c.mu.Lock()
	fn := c.onUnauthorized
	c.mu.Unlock()
	if fn != nil {
		fn()
	}
}

// do performs one request/response cycle. out must embed respMeta so the
// envelope can be checked after decoding.
func (c *Client) do(ctx context.Context, method, path string, query url.Values, body any, out envelope) error {
	u := c.base + apiPrefix + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}

	var reqBody io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request body: %w", err)
		}
		reqBody = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, u, reqBody)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Request-Id", uuid.NewString())

	if tok, err := c.tokens.Load(ctx); err == nil && tok != "" {
		req.Header.Set(common.AuthorizationHeader, "Bearer "+tok)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusUnauthorized {
		c.log.Warn(ctx, "credential rejected, purging token", "method", method, "path", path)
		_ = c.tokens.Clear(ctx)
		c.fireUnauthorized()
		return common.ErrUnauthorized
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("%s %s: read response: %w", method, path, err)
	}

	if err := json.Unmarshal(data, out); err != nil {
		if resp.StatusCode >= 400 {
			return fmt.Errorf("%s %s: unexpected status %d", method, path, resp.StatusCode)
		}
		return fmt.Errorf("%s %s: decode response: %w", method, path, err)
	}

	if out.status() != statusSuccess {
		return &Error{Status: out.status(), Message: out.message(), HTTPStatus: resp.StatusCode}
	}
	return nil
}
