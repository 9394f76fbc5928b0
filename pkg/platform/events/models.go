// Package events defines domain events and the bus they are sent on.
//
// A Bus delivers events to downstream workflows (welcome emails, profile
// enrichment, ...). Callers treat Send as fire-and-forget: the bus owns
// delivery guarantees, and a failed Send never changes the outcome of the
// operation that produced the event.
package events

import (
	"context"
	"time"

	"github.com/google/uuid"

	"signalist/pkg/requestcontext"
)

// Event names.
const (
	EventUserCreated = "app/user.created"
)

// Event is a named payload. Data must be JSON serialisable.
type Event struct {
	ID        string
	Name      string
	Data      any
	Timestamp time.Time
}

// New builds an event with a fresh ID, stamped with the request time.
func New(ctx context.Context, name string, data any) Event {
	return Event{
		ID:        uuid.NewString(),
		Name:      name,
		Data:      data,
		Timestamp: requestcontext.Now(ctx),
	}
}

// Envelope is the wire shape shared by every driver.
type Envelope struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Data any    `json:"data"`
	TS   int64  `json:"ts"`
}

// Envelope converts the event to its wire shape. TS is unix milliseconds.
func (e Event) Envelope() Envelope {
	return Envelope{
		ID:   e.ID,
		Name: e.Name,
		Data: e.Data,
		TS:   e.Timestamp.UnixMilli(),
	}
}

//go:generate mockgen -source=models.go -destination=mocks/mocks.go -package=mocks Bus

// Bus sends events to an external delivery system.
type Bus interface {
	Send(ctx context.Context, event Event) error
}

// BusFunc adapts a function to Bus.
type BusFunc func(ctx context.Context, event Event) error

func (f BusFunc) Send(ctx context.Context, event Event) error { return f(ctx, event) }

// Discard is a Bus that drops every event.
var Discard Bus = BusFunc(func(context.Context, Event) error { return nil })
