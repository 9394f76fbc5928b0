package memory

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"signalist/pkg/platform/events"
)

func TestInMemoryBus_ListByName(t *testing.T) {
	ctx := context.Background()
	bus := NewInMemoryBus()

	require.NoError(t, bus.Send(ctx, events.New(ctx, events.EventUserCreated, map[string]string{"email": "a@example.com"})))
	require.NoError(t, bus.Send(ctx, events.New(ctx, "app/other", nil)))
	require.NoError(t, bus.Send(ctx, events.New(ctx, events.EventUserCreated, map[string]string{"email": "b@example.com"})))

	created, err := bus.ListByName(ctx, events.EventUserCreated)
	require.NoError(t, err)
	require.Len(t, created, 2)
	assert.Equal(t, map[string]string{"email": "a@example.com"}, created[0].Data)

	recent, err := bus.ListRecent(ctx, 2)
	require.NoError(t, err)
	require.Len(t, recent, 2)
	assert.Equal(t, "app/other", recent[0].Name)
}

func TestInMemoryBus_ConcurrentSends(t *testing.T) {
	ctx := context.Background()
	bus := NewInMemoryBus()

	var wg sync.WaitGroup
	for range 50 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_ = bus.Send(ctx, events.New(ctx, events.EventUserCreated, nil))
		}()
	}
	wg.Wait()

	all, err := bus.ListByName(ctx, events.EventUserCreated)
	require.NoError(t, err)
	assert.Len(t, all, 50)

	bus.Clear()
	all, err = bus.ListByName(ctx, events.EventUserCreated)
	require.NoError(t, err)
	assert.Empty(t, all)
}
