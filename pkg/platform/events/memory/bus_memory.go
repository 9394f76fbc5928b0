package memory

import (
	"context"
	"sync"

	"signalist/pkg/platform/events"
)

// InMemoryBus records events in process. Used by the development driver and tests.
type InMemoryBus struct {
	mu     sync.RWMutex
	events map[string][]events.Event
	order  []events.Event
}

func NewInMemoryBus() *InMemoryBus {
	return &InMemoryBus{events: make(map[string][]events.Event)}
}

func (b *InMemoryBus) Send(_ context.Context, event events.Event) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.events[event.Name] = append(b.events[event.Name], event)
	b.order = append(b.order, event)
	return nil
}

// ListByName returns the events sent under name, oldest first.
func (b *InMemoryBus) ListByName(_ context.Context, name string) ([]events.Event, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return append([]events.Event{}, b.events[name]...), nil
}

// ListRecent returns the most recent limit events across all names, oldest first.
func (b *InMemoryBus) ListRecent(_ context.Context, limit int) ([]events.Event, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	start := len(b.order) - limit
	if start < 0 {
		start = 0
	}
	return append([]events.Event{}, b.order[start:]...), nil
}

func (b *InMemoryBus) Clear() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.events = make(map[string][]events.Event)
	b.order = nil
}
