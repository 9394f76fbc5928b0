package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// Event bus drivers.
const (
	BusDriverInngest = "inngest"
	BusDriverKafka   = "kafka"
	BusDriverRedis   = "redis"
	BusDriverMemory  = "memory"
	BusDriverNoop    = "noop"
)

// Config is the full service configuration, read from the environment.
type Config struct {
	Server   Server
	Log      Log
	Auth     Auth
	EventBus EventBus
	Inngest  Inngest
	Kafka    Kafka
	Redis    RedisConfig
	Otel     Otel
}

// Server captures HTTP server level configuration.
type Server struct {
	Addr            string        `env:"SIGNALIST_ADDR" envDefault:":8080"`
	ShutdownTimeout time.Duration `env:"SHUTDOWN_TIMEOUT" envDefault:"15s"`
	RequestTimeout  time.Duration `env:"REQUEST_TIMEOUT" envDefault:"30s"`
}

type Log struct {
	Level  string `env:"LOG_LEVEL" envDefault:"info"`
	Format string `env:"LOG_FORMAT" envDefault:"json"`
}

// Auth points at the identity provider.
type Auth struct {
	BaseURL string        `env:"AUTH_BASE_URL" envDefault:"http://localhost:3000/api/auth"`
	Timeout time.Duration `env:"AUTH_TIMEOUT" envDefault:"10s"`
}

// EventBus selects the bus driver and guards it with a circuit breaker.
type EventBus struct {
	Driver           string        `env:"EVENT_BUS_DRIVER" envDefault:"inngest"`
	BreakerThreshold int           `env:"EVENT_BUS_BREAKER_THRESHOLD" envDefault:"5"`
	BreakerCooldown  time.Duration `env:"EVENT_BUS_BREAKER_COOLDOWN" envDefault:"30s"`
	PublishTimeout   time.Duration `env:"EVENT_BUS_PUBLISH_TIMEOUT" envDefault:"5s"`
}

type Inngest struct {
	BaseURL  string        `env:"INNGEST_BASE_URL" envDefault:"https://inn.gs"`
	EventKey string        `env:"INNGEST_EVENT_KEY"`
	Timeout  time.Duration `env:"INNGEST_TIMEOUT" envDefault:"5s"`
}

type Kafka struct {
	Brokers     []string `env:"KAFKA_BROKERS" envSeparator:","`
	Topic       string   `env:"KAFKA_TOPIC" envDefault:"app.user-events"`
	CreateTopic bool     `env:"KAFKA_CREATE_TOPIC" envDefault:"false"`
	Partitions  int32    `env:"KAFKA_TOPIC_PARTITIONS" envDefault:"1"`
	Replication int16    `env:"KAFKA_TOPIC_REPLICATION" envDefault:"1"`
}

// RedisConfig configures the shared redis client. An empty URL disables redis.
type RedisConfig struct {
	URL          string        `env:"REDIS_URL"`
	PoolSize     int           `env:"REDIS_POOL_SIZE" envDefault:"10"`
	MinIdleConns int           `env:"REDIS_MIN_IDLE_CONNS" envDefault:"2"`
	DialTimeout  time.Duration `env:"REDIS_DIAL_TIMEOUT" envDefault:"5s"`
	ReadTimeout  time.Duration `env:"REDIS_READ_TIMEOUT" envDefault:"3s"`
	WriteTimeout time.Duration `env:"REDIS_WRITE_TIMEOUT" envDefault:"3s"`
	EventStream  string        `env:"REDIS_EVENT_STREAM" envDefault:"app:user-events"`
	StreamMaxLen int64         `env:"REDIS_EVENT_STREAM_MAXLEN" envDefault:"0"`
}

// Otel enables tracing export when Endpoint is set.
type Otel struct {
	Endpoint    string `env:"OTEL_ENDPOINT"`
	Insecure    bool   `env:"OTEL_INSECURE" envDefault:"false"`
	ServiceName string `env:"OTEL_SERVICE_NAME" envDefault:"signalist"`
}

// FromEnv loads optional .env files and parses the environment. Variables
// already set in the process win over .env values.
func FromEnv(files ...string) (Config, error) {
	if len(files) == 0 {
		files = []string{".env"}
	}
	for _, f := range files {
		if err := godotenv.Load(f); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return Config{}, fmt.Errorf("load %s: %w", f, err)
		}
	}

	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks the cross-field rules env tags cannot express.
func (c Config) Validate() error {
	var errs []error
	if c.Auth.BaseURL == "" {
		errs = append(errs, errors.New("AUTH_BASE_URL is required"))
	}
	if c.EventBus.BreakerThreshold < 1 {
		errs = append(errs, errors.New("EVENT_BUS_BREAKER_THRESHOLD must be at least 1"))
	}
	switch strings.ToLower(c.EventBus.Driver) {
	case BusDriverInngest:
		if c.Inngest.EventKey == "" {
			errs = append(errs, errors.New("INNGEST_EVENT_KEY is required for the inngest driver"))
		}
	case BusDriverKafka:
		if len(c.Kafka.Brokers) == 0 {
			errs = append(errs, errors.New("KAFKA_BROKERS is required for the kafka driver"))
		}
		if c.Kafka.Topic == "" {
			errs = append(errs, errors.New("KAFKA_TOPIC is required for the kafka driver"))
		}
	case BusDriverRedis:
		if c.Redis.URL == "" {
			errs = append(errs, errors.New("REDIS_URL is required for the redis driver"))
		}
	case BusDriverMemory, BusDriverNoop:
	default:
		errs = append(errs, fmt.Errorf("unknown EVENT_BUS_DRIVER %q", c.EventBus.Driver))
	}
	return errors.Join(errs...)
}
