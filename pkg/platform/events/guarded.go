package events

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"signalist/pkg/platform/circuit"
	"signalist/pkg/platform/sentinel"
)

// GuardedBus decorates a Bus with a circuit breaker, metrics and breaker
// transition logging. While the breaker is open, Send fails fast with
// sentinel.ErrCircuitOpen instead of waiting on an unhealthy backend.
type GuardedBus struct {
	next    Bus
	breaker *circuit.Breaker
	metrics *Metrics
	logger  *slog.Logger
}

// GuardOption configures a GuardedBus.
type GuardOption func(*GuardedBus)

// WithBreaker sets the circuit breaker. Without one every send goes through.
func WithBreaker(b *circuit.Breaker) GuardOption {
	return func(g *GuardedBus) {
		g.breaker = b
	}
}

// WithMetrics sets the metrics collector.
func WithMetrics(m *Metrics) GuardOption {
	return func(g *GuardedBus) {
		g.metrics = m
	}
}

// WithLogger sets a logger for breaker transitions.
func WithLogger(logger *slog.Logger) GuardOption {
	return func(g *GuardedBus) {
		g.logger = logger
	}
}

// Guard wraps next.
func Guard(next Bus, opts ...GuardOption) *GuardedBus {
	g := &GuardedBus{next: next}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Send forwards the event unless the breaker is open.
func (g *GuardedBus) Send(ctx context.Context, event Event) error {
	if g.breaker != nil && !g.breaker.Allow() {
		g.metrics.incDropped(event.Name)
		return fmt.Errorf("send %s: %w", event.Name, sentinel.ErrCircuitOpen)
	}

	start := time.Now()
	err := g.next.Send(ctx, event)
	g.metrics.observe(time.Since(start).Seconds())

	if err != nil {
		g.metrics.incFailed(event.Name)
		// A caller's own cancellation or deadline says nothing about the backend.
		if g.breaker != nil && ctx.Err() == nil {
			if _, change := g.breaker.RecordFailure(); change.Opened {
				g.metrics.setBreakerState(true)
				g.log(ctx, slog.LevelWarn, "event bus circuit opened", "breaker", g.breaker.Name(), "error", err)
			}
		}
		return err
	}

	g.metrics.incSent(event.Name)
	if g.breaker != nil {
		if _, change := g.breaker.RecordSuccess(); change.Closed {
			g.metrics.setBreakerState(false)
			g.log(ctx, slog.LevelInfo, "event bus circuit closed", "breaker", g.breaker.Name())
		}
	}
	return nil
}

func (g *GuardedBus) log(ctx context.Context, level slog.Level, msg string, args ...any) {
	if g.logger != nil {
		g.logger.Log(ctx, level, msg, args...)
	}
}
