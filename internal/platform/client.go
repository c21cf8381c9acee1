// Package platform implements the REST client for the back-office backend.
//
// All endpoints are JSON over HTTP. Authorized calls carry a short-lived
// bearer token; the long-lived refresh credential lives in an HTTP-only
// cookie which the client never inspects directly (it is held by the
// cookie jar and sent automatically on /auth/refresh).
package platform

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
)

const (
	headerAuthorization = "Authorization"
	headerContentType   = "Content-Type"
	headerUserAgent     = "User-Agent"
	headerRequestID     = "X-Request-ID"
	contentTypeJSON     = "application/json"
	clientUserAgent     = "merchdesk-go/1.0.0"

	defaultTimeout = 30 * time.Second
)

// TokenSource supplies a bearer token for outgoing requests.
//
// The session manager implements this; returning "" means no usable token
// is available and the request goes out unauthenticated.
type TokenSource interface {
	Token(ctx context.Context) string
}

// Client is the back-office API client.
type Client struct {
	baseURL    string
	httpClient *http.Client

	mu     sync.RWMutex
	token  string
	source TokenSource
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient overrides the underlying HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.httpClient = hc
	}
}

// WithTimeout sets the request timeout.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		c.httpClient.Timeout = d
	}
}

// NewClient creates a new API client for the given base URL.
//
// The client carries a cookie jar so the refresh credential set by the
// backend on login is replayed on subsequent /auth/refresh calls.
func NewClient(baseURL string, opts ...Option) *Client {
	jar, _ := cookiejar.New(nil)

	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: defaultTimeout,
			Jar:     jar,
		},
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

// BaseURL returns the configured backend base URL.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// SetToken sets the bearer token attached to authorized requests.
func (c *Client) SetToken(token string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.token = token
}

// SetTokenSource installs a token source consulted before each request.
//
// When set, the source takes precedence over SetToken and enables the
// renew-on-401 convention: a 401 response triggers one re-ask and replay.
func (c *Client) SetTokenSource(source TokenSource) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.source = source
}

func (c *Client) currentToken(ctx context.Context) string {
	c.mu.RLock()
	source := c.source
	token := c.token
	c.mu.RUnlock()

	if source != nil {
		if t := source.Token(ctx); t != "" {
			return t
		}
	}
	return token
}

// doRequest performs an HTTP request and handles common error cases.
func (c *Client) doRequest(ctx context.Context, method, path string, body interface{}, result interface{}) error {
	token := c.currentToken(ctx)

	err := c.doRequestWithToken(ctx, method, path, token, body, result)
	if err == nil {
		return nil
	}

	// Renew-on-401: ask the token source once for a fresh token and replay.
	apiErr, ok := IsAPIError(err)
	if !ok || !apiErr.IsUnauthorized() {
		return err
	}

	c.mu.RLock()
	source := c.source
	c.mu.RUnlock()
	if source == nil {
		return err
	}

	fresh := source.Token(ctx)
	if fresh == "" || fresh == token {
		return err
	}

	return c.doRequestWithToken(ctx, method, path, fresh, body, result)
}

func (c *Client) doRequestWithToken(ctx context.Context, method, path, token string, body interface{}, result interface{}) error {
	reqURL, err := url.JoinPath(c.baseURL, path)
	if err != nil {
		return fmt.Errorf("failed to build URL: %w", err)
	}

	// JoinPath escapes query strings; paths carrying them are appended raw.
	if strings.Contains(path, "?") {
		reqURL = c.baseURL + path
	}

	var bodyReader io.Reader
	if body != nil {
		bodyBytes, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to marshal request body: %w", err)
		}
		bodyReader = bytes.NewReader(bodyBytes)
	}

	req, err := http.NewRequestWithContext(ctx, method, reqURL, bodyReader)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set(headerUserAgent, clientUserAgent)
	req.Header.Set(headerRequestID, uuid.NewString())
	if token != "" {
		req.Header.Set(headerAuthorization, "Bearer "+token)
	}
	if body != nil {
		req.Header.Set(headerContentType, contentTypeJSON)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrNetwork, err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrNetwork, err)
	}

	if resp.StatusCode >= 400 {
		return parseError(resp.StatusCode, respBody)
	}

	if result != nil && len(respBody) > 0 {
		if err := json.Unmarshal(respBody, result); err != nil {
			return fmt.Errorf("%w: %v", ErrMalformedResponse, err)
		}
	}

	return nil
}

// get performs a GET request.
func (c *Client) get(ctx context.Context, path string, result interface{}) error {
	return c.doRequest(ctx, http.MethodGet, path, nil, result)
}

// post performs a POST request.
func (c *Client) post(ctx context.Context, path string, body interface{}, result interface{}) error {
	return c.doRequest(ctx, http.MethodPost, path, body, result)
}

// put performs a PUT request.
func (c *Client) put(ctx context.Context, path string, body interface{}, result interface{}) error {
	return c.doRequest(ctx, http.MethodPut, path, body, result)
}

// delete performs a DELETE request.
func (c *Client) delete(ctx context.Context, path string) error {
	return c.doRequest(ctx, http.MethodDelete, path, nil, nil)
}
