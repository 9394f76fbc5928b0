package main

import (
	"errors"
	"fmt"
	"strings"

	"signalist/internal/platform/config"
	platformkafka "signalist/internal/platform/kafka"
	platformredis "signalist/internal/platform/redis"
	"signalist/pkg/platform/events"
	"signalist/pkg/platform/events/inngest"
	kafkabus "signalist/pkg/platform/events/kafka"
	"signalist/pkg/platform/events/memory"
	"signalist/pkg/platform/events/redisstream"
)

// buildBus selects the event bus driver named in cfg. The redis and kafka
// clients are nil unless configured.
func buildBus(cfg config.Config, rdb *platformredis.Client, kc *platformkafka.Client) (events.Bus, error) {
	switch strings.ToLower(cfg.EventBus.Driver) {
	case config.BusDriverInngest:
		return inngest.New(inngest.Config{
			BaseURL:  cfg.Inngest.BaseURL,
			EventKey: cfg.Inngest.EventKey,
			Timeout:  cfg.Inngest.Timeout,
		}, nil)
	case config.BusDriverKafka:
		if kc == nil {
			return nil, errors.New("kafka event bus requires KAFKA_BROKERS")
		}
		return kafkabus.NewBus(kc, cfg.Kafka.Topic)
	case config.BusDriverRedis:
		if rdb == nil {
			return nil, errors.New("redis event bus requires REDIS_URL")
		}
		return redisstream.NewBus(rdb, cfg.Redis.EventStream, redisstream.WithMaxLen(cfg.Redis.StreamMaxLen))
	case config.BusDriverMemory:
		return memory.NewInMemoryBus(), nil
	case config.BusDriverNoop:
		return events.Discard, nil
	default:
		return nil, fmt.Errorf("unknown event bus driver %q", cfg.EventBus.Driver)
	}
}
