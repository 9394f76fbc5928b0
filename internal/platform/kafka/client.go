package kafka

import (
	"context"
	"errors"
	"fmt"

	"github.com/twmb/franz-go/pkg/kadm"
	"github.com/twmb/franz-go/pkg/kerr"
	"github.com/twmb/franz-go/pkg/kgo"

	"signalist/internal/platform/config"
)

// Client wraps the franz-go client with health checking and topic bootstrap.
type Client struct {
	*kgo.Client
}

// New creates a Kafka client. Returns nil if no brokers are configured.
func New(ctx context.Context, cfg config.Kafka, opts ...kgo.Opt) (*Client, error) {
	if len(cfg.Brokers) == 0 {
		return nil, nil
	}

	base := []kgo.Opt{
		kgo.SeedBrokers(cfg.Brokers...),
		kgo.ClientID("signalist"),
		kgo.DefaultProduceTopic(cfg.Topic),
	}
	cl, err := kgo.NewClient(append(base, opts...)...)
	if err != nil {
		return nil, fmt.Errorf("create kafka client: %w", err)
	}
	if err := cl.Ping(ctx); err != nil {
		cl.Close()
		return nil, fmt.Errorf("kafka ping failed: %w", err)
	}

	c := &Client{Client: cl}
	if cfg.CreateTopic {
		if err := c.EnsureTopic(ctx, cfg.Topic, cfg.Partitions, cfg.Replication); err != nil {
			cl.Close()
			return nil, err
		}
	}
	return c, nil
}

// EnsureTopic creates topic if it does not exist yet.
func (c *Client) EnsureTopic(ctx context.Context, topic string, partitions int32, replication int16) error {
	adm := kadm.NewClient(c.Client)
	resps, err := adm.CreateTopics(ctx, partitions, replication, nil, topic)
	if err != nil {
		return fmt.Errorf("create topic %s: %w", topic, err)
	}
	for _, r := range resps {
		if r.Err != nil && !errors.Is(r.Err, kerr.TopicAlreadyExists) {
			return fmt.Errorf("create topic %s: %w", r.Topic, r.Err)
		}
	}
	return nil
}

// Health checks that at least one broker answers.
func (c *Client) Health(ctx context.Context) error {
	return c.Ping(ctx)
}
