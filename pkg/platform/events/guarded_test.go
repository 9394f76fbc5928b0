package events

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"signalist/pkg/platform/circuit"
	"signalist/pkg/platform/sentinel"
	"signalist/pkg/requestcontext"
)

func TestNew_StampsRequestTime(t *testing.T) {
	fixed := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	ctx := requestcontext.WithTime(context.Background(), fixed)

	event := New(ctx, EventUserCreated, map[string]string{"email": "a@example.com"})

	assert.NotEmpty(t, event.ID)
	assert.Equal(t, EventUserCreated, event.Name)
	assert.Equal(t, fixed, event.Timestamp)
	assert.Equal(t, fixed.UnixMilli(), event.Envelope().TS)
}

func TestGuardedBus_OpensAfterFailuresAndFailsFast(t *testing.T) {
	ctx := context.Background()
	calls := 0
	failing := BusFunc(func(context.Context, Event) error {
		calls++
		return errors.New("broker down")
	})
	metrics := NewMetrics(prometheus.NewRegistry())
	bus := Guard(failing,
		WithBreaker(circuit.New("test-bus", circuit.WithFailureThreshold(2), circuit.WithCooldown(time.Hour))),
		WithMetrics(metrics),
	)

	event := New(ctx, EventUserCreated, nil)
	require.Error(t, bus.Send(ctx, event))
	require.Error(t, bus.Send(ctx, event))

	err := bus.Send(ctx, event)
	require.Error(t, err)
	assert.ErrorIs(t, err, sentinel.ErrCircuitOpen)
	assert.Equal(t, 2, calls, "open breaker must not reach the backend")

	assert.Equal(t, float64(2), testutil.ToFloat64(metrics.Failed.WithLabelValues(EventUserCreated)))
	assert.Equal(t, float64(1), testutil.ToFloat64(metrics.CircuitBreakerDropped.WithLabelValues(EventUserCreated)))
	assert.Equal(t, float64(1), testutil.ToFloat64(metrics.CircuitBreakerState))
}

func TestGuardedBus_CallerCancellationLeavesBreakerClosed(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	breaker := circuit.New("test-bus", circuit.WithFailureThreshold(1), circuit.WithCooldown(time.Hour))
	metrics := NewMetrics(prometheus.NewRegistry())
	bus := Guard(BusFunc(func(ctx context.Context, _ Event) error {
		return ctx.Err()
	}), WithBreaker(breaker), WithMetrics(metrics))

	err := bus.Send(ctx, New(ctx, EventUserCreated, nil))

	require.ErrorIs(t, err, context.Canceled)
	assert.False(t, breaker.IsOpen())
	assert.Equal(t, float64(1), testutil.ToFloat64(metrics.Failed.WithLabelValues(EventUserCreated)))
	assert.NoError(t, bus.Send(context.Background(), New(context.Background(), EventUserCreated, nil)))
}

func TestGuardedBus_SuccessCountsAndPassesThrough(t *testing.T) {
	ctx := context.Background()
	var got Event
	metrics := NewMetrics(prometheus.NewRegistry())
	bus := Guard(BusFunc(func(_ context.Context, e Event) error {
		got = e
		return nil
	}), WithMetrics(metrics))

	event := New(ctx, EventUserCreated, map[string]string{"email": "a@example.com"})
	require.NoError(t, bus.Send(ctx, event))

	assert.Equal(t, event.ID, got.ID)
	assert.Equal(t, float64(1), testutil.ToFloat64(metrics.Sent.WithLabelValues(EventUserCreated)))
}

func TestDiscard(t *testing.T) {
	assert.NoError(t, Discard.Send(context.Background(), Event{Name: EventUserCreated}))
}
