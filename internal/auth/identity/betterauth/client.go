// Package betterauth implements identity.Provider against a Better-Auth
// compatible REST API (email & password plugin).
package betterauth

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"signalist/internal/auth/identity"
	"signalist/pkg/requestcontext"
)

const (
	pathSignUpEmail = "/sign-up/email"
	pathSignInEmail = "/sign-in/email"
	pathSignOut     = "/sign-out"

	requestIDHeader = "X-Request-ID"
	maxBodyBytes    = 1 << 20
)

// headers owned by the client or meaningful only for a single hop.
var droppedHeaders = []string{
	"Connection",
	"Keep-Alive",
	"Proxy-Authenticate",
	"Proxy-Authorization",
	"Proxy-Connection",
	"Te",
	"Trailer",
	"Transfer-Encoding",
	"Upgrade",
	"Content-Length",
	"Content-Type",
	"Accept-Encoding",
}

// Config holds the provider location.
type Config struct {
	// BaseURL is the auth API root, e.g. http://localhost:3000/api/auth.
	BaseURL string
	Timeout time.Duration
}

// Client calls the provider over HTTP.
type Client struct {
	httpClient *http.Client
	baseURL    string
	logger     *slog.Logger
}

// Option configures a Client.
type Option func(*Client)

// WithLogger sets the logger for tolerated decode failures.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Client) {
		c.logger = logger
	}
}

var _ identity.Provider = (*Client)(nil)

// New creates a client. If httpClient is nil, an otelhttp-instrumented client
// with cfg.Timeout is used.
func New(cfg Config, httpClient *http.Client, opts ...Option) *Client {
	if httpClient == nil {
		httpClient = &http.Client{
			Timeout:   cfg.Timeout,
			Transport: otelhttp.NewTransport(http.DefaultTransport),
		}
	}
	c := &Client{
		httpClient: httpClient,
		baseURL:    strings.TrimRight(cfg.BaseURL, "/"),
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.logger == nil {
		c.logger = slog.Default()
	}
	return c
}

// SignUpEmail implements identity.Provider. Any non-2xx answer is an error.
// A 2xx body that does not decode still means the account exists, so the
// response keeps the session cookies and drops the payload.
func (c *Client) SignUpEmail(ctx context.Context, in identity.SignUpEmailInput, headers http.Header) (*identity.Response, error) {
	res, err := c.post(ctx, pathSignUpEmail, in, headers)
	if err != nil {
		return nil, fmt.Errorf("sign up: %w", err)
	}
	if !res.ok() {
		return nil, fmt.Errorf("sign up: %w", res.statusError())
	}
	resp, err := res.response()
	if err != nil {
		c.logger.WarnContext(ctx, "undecodable sign up response", "status", res.status, "error", err)
		return &identity.Response{Cookies: res.cookies}, nil
	}
	return resp, nil
}

// SignInEmail implements identity.Provider.
func (c *Client) SignInEmail(ctx context.Context, in identity.SignInEmailInput, headers http.Header) (identity.SignInOutcome, error) {
	res, err := c.post(ctx, pathSignInEmail, in, headers)
	if err != nil {
		return nil, fmt.Errorf("sign in: %w", err)
	}

	var probe struct {
		Error   json.RawMessage `json:"error"`
		Message json.RawMessage `json:"message"`
	}
	// Non-object bodies simply carry no error field.
	_ = json.Unmarshal(res.body, &probe)

	if truthy(probe.Error) {
		return identity.Failure{Message: jsonString(probe.Error)}, nil
	}
	if res.status >= http.StatusInternalServerError {
		return nil, fmt.Errorf("sign in: %w", res.statusError())
	}
	if !res.ok() {
		return identity.Failure{Message: jsonString(probe.Message)}, nil
	}

	resp, err := res.response()
	if err != nil {
		return nil, fmt.Errorf("sign in: %w", err)
	}
	if resp == nil {
		return nil, nil
	}
	return identity.Success{Response: resp}, nil
}

// SignOut implements identity.Provider. The returned cookies expire the session.
func (c *Client) SignOut(ctx context.Context, headers http.Header) (*identity.Response, error) {
	res, err := c.post(ctx, pathSignOut, nil, headers)
	if err != nil {
		return nil, fmt.Errorf("sign out: %w", err)
	}
	if !res.ok() {
		return nil, fmt.Errorf("sign out: %w", res.statusError())
	}
	return res.response()
}

type result struct {
	status  int
	body    []byte
	cookies []*http.Cookie
}

func (r *result) ok() bool {
	return r.status >= 200 && r.status < 300
}

func (r *result) statusError() error {
	if r.status >= http.StatusInternalServerError {
		return fmt.Errorf("status %d: %w", r.status, identity.ErrProviderUnavailable)
	}
	return fmt.Errorf("status %d: %w", r.status, identity.ErrProviderRejected)
}

// response decodes a 2xx body. An empty or null body without cookies is nil.
func (r *result) response() (*identity.Response, error) {
	body := bytes.TrimSpace(r.body)
	if len(body) == 0 || bytes.Equal(body, []byte("null")) {
		if len(r.cookies) == 0 {
			return nil, nil
		}
		return &identity.Response{Cookies: r.cookies}, nil
	}

	var resp identity.Response
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("decode provider response: %w", err)
	}
	resp.Cookies = r.cookies
	return &resp, nil
}

func (c *Client) post(ctx context.Context, path string, payload any, headers http.Header) (*result, error) {
	var body io.Reader
	if payload != nil {
		b, err := json.Marshal(payload)
		if err != nil {
			return nil, fmt.Errorf("marshal request: %w", err)
		}
		body = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, body)
	if err != nil {
		return nil, fmt.Errorf("new request: %w", err)
	}
	req.Header = ForwardHeaders(headers)
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if requestID := requestcontext.RequestID(ctx); requestID != "" {
		req.Header.Set(requestIDHeader, requestID)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("post %s: %w: %v", path, identity.ErrProviderUnavailable, err)
	}
	defer resp.Body.Close()

	b, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return nil, fmt.Errorf("read %s response: %w: %v", path, identity.ErrProviderUnavailable, err)
	}

	return &result{
		status:  resp.StatusCode,
		body:    b,
		cookies: resp.Cookies(),
	}, nil
}

// ForwardHeaders copies the ambient request headers for the provider call,
// minus hop-by-hop and body framing headers.
func ForwardHeaders(src http.Header) http.Header {
	dst := src.Clone()
	if dst == nil {
		dst = make(http.Header)
	}
	for _, h := range droppedHeaders {
		dst.Del(h)
	}
	return dst
}

// truthy follows JavaScript truthiness for a raw JSON value.
func truthy(raw json.RawMessage) bool {
	v := strings.TrimSpace(string(raw))
	switch v {
	case "", "null", "false", `""`:
		return false
	}
	var n float64
	if err := json.Unmarshal(raw, &n); err == nil {
		return n != 0
	}
	return true
}

// jsonString returns raw as a Go string if it is a JSON string, else "".
func jsonString(raw json.RawMessage) string {
	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return ""
	}
	return s
}
