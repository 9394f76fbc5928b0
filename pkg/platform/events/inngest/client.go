// Package inngest sends events to an Inngest-compatible event API.
package inngest

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"signalist/pkg/platform/events"
	"signalist/pkg/platform/sentinel"
	"signalist/pkg/requestcontext"
)

const requestIDHeader = "X-Request-ID"

// Config holds the event API location and credentials.
type Config struct {
	BaseURL  string
	EventKey string
	Timeout  time.Duration
}

// Client implements events.Bus over HTTP.
type Client struct {
	httpClient *http.Client
	endpoint   string
}

var _ events.Bus = (*Client)(nil)

// New creates a client. If httpClient is nil, an otelhttp-instrumented client
// with cfg.Timeout is used.
func New(cfg Config, httpClient *http.Client) (*Client, error) {
	if cfg.EventKey == "" {
		return nil, errors.New("inngest: event key is required")
	}
	if cfg.BaseURL == "" {
		cfg.BaseURL = "https://inn.gs"
	}
	if httpClient == nil {
		httpClient = &http.Client{
			Timeout:   cfg.Timeout,
			Transport: otelhttp.NewTransport(http.DefaultTransport),
		}
	}
	return &Client{
		httpClient: httpClient,
		endpoint:   strings.TrimRight(cfg.BaseURL, "/") + "/e/" + cfg.EventKey,
	}, nil
}

// Send posts the event as a single-element batch.
func (c *Client) Send(ctx context.Context, event events.Event) error {
	body, err := json.Marshal([]events.Envelope{event.Envelope()})
	if err != nil {
		return fmt.Errorf("marshal event: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("new request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if requestID := requestcontext.RequestID(ctx); requestID != "" {
		req.Header.Set(requestIDHeader, requestID)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("post event %s: %w: %v", event.Name, sentinel.ErrUnavailable, err)
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 64<<10))

	switch {
	case resp.StatusCode >= 200 && resp.StatusCode < 300:
		return nil
	case resp.StatusCode >= 500:
		return fmt.Errorf("post event %s: status %d: %w", event.Name, resp.StatusCode, sentinel.ErrUnavailable)
	default:
		return fmt.Errorf("post event %s: status %d: %w", event.Name, resp.StatusCode, sentinel.ErrRejected)
	}
}
