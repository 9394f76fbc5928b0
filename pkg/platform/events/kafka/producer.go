// Package kafka publishes events to a Kafka topic with franz-go.
package kafka

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/twmb/franz-go/pkg/kgo"

	"signalist/pkg/platform/events"
	"signalist/pkg/platform/sentinel"
	"signalist/pkg/requestcontext"
)

const (
	HeaderEventName = "event-name"
	HeaderEventID   = "event-id"
	HeaderRequestID = "request-id"
)

// Producer is the subset of *kgo.Client used by Bus.
type Producer interface {
	ProduceSync(ctx context.Context, rs ...*kgo.Record) kgo.ProduceResults
}

// Bus implements events.Bus on a single topic.
type Bus struct {
	client Producer
	topic  string
}

var _ events.Bus = (*Bus)(nil)

// NewBus creates a Kafka-backed bus. The client lifecycle is managed by the caller.
func NewBus(client Producer, topic string) (*Bus, error) {
	if client == nil {
		return nil, errors.New("kafka: producer is required")
	}
	if topic == "" {
		return nil, errors.New("kafka: topic is required")
	}
	return &Bus{client: client, topic: topic}, nil
}

// Send produces the event synchronously and returns the broker's verdict.
func (b *Bus) Send(ctx context.Context, event events.Event) error {
	record, err := b.record(ctx, event)
	if err != nil {
		return err
	}
	if err := b.client.ProduceSync(ctx, record).FirstErr(); err != nil {
		return fmt.Errorf("produce %s to %s: %w: %v", event.Name, b.topic, sentinel.ErrUnavailable, err)
	}
	return nil
}

func (b *Bus) record(ctx context.Context, event events.Event) (*kgo.Record, error) {
	value, err := json.Marshal(event.Envelope())
	if err != nil {
		return nil, fmt.Errorf("marshal event: %w", err)
	}

	headers := []kgo.RecordHeader{
		{Key: HeaderEventName, Value: []byte(event.Name)},
		{Key: HeaderEventID, Value: []byte(event.ID)},
	}
	if requestID := requestcontext.RequestID(ctx); requestID != "" {
		headers = append(headers, kgo.RecordHeader{Key: HeaderRequestID, Value: []byte(requestID)})
	}

	return &kgo.Record{
		Topic:     b.topic,
		Key:       []byte(event.Name),
		Value:     value,
		Headers:   headers,
		Timestamp: event.Timestamp,
	}, nil
}
