// Package redisstream appends events to a Redis stream.
package redisstream

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"

	"github.com/redis/go-redis/v9"

	"signalist/pkg/platform/events"
	"signalist/pkg/platform/sentinel"
)

// StreamAdder is the subset of the go-redis client used by Bus.
type StreamAdder interface {
	XAdd(ctx context.Context, a *redis.XAddArgs) *redis.StringCmd
}

// Bus implements events.Bus with XADD.
type Bus struct {
	client StreamAdder
	stream string
	maxLen int64
}

var _ events.Bus = (*Bus)(nil)

// Option configures a Bus.
type Option func(*Bus)

// WithMaxLen enables approximate stream trimming (MAXLEN ~ n).
func WithMaxLen(n int64) Option {
	return func(b *Bus) {
		b.maxLen = n
	}
}

// NewBus creates a stream-backed bus. The client lifecycle is managed externally.
func NewBus(client StreamAdder, stream string, opts ...Option) (*Bus, error) {
	if client == nil {
		return nil, errors.New("redisstream: client is required")
	}
	if stream == "" {
		return nil, errors.New("redisstream: stream name is required")
	}
	b := &Bus{client: client, stream: stream}
	for _, opt := range opts {
		if opt != nil {
			opt(b)
		}
	}
	return b, nil
}

// Send appends the event and returns once Redis acknowledged the entry.
func (b *Bus) Send(ctx context.Context, event events.Event) error {
	data, err := json.Marshal(event.Data)
	if err != nil {
		return fmt.Errorf("marshal event data: %w", err)
	}

	args := &redis.XAddArgs{
		Stream: b.stream,
		Values: map[string]any{
			"id":   event.ID,
			"name": event.Name,
			"data": string(data),
			"ts":   strconv.FormatInt(event.Timestamp.UnixMilli(), 10),
		},
	}
	if b.maxLen > 0 {
		args.MaxLen = b.maxLen
		args.Approx = true
	}

	if err := b.client.XAdd(ctx, args).Err(); err != nil {
		return fmt.Errorf("xadd %s: %w: %v", b.stream, sentinel.ErrUnavailable, err)
	}
	return nil
}
