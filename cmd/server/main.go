package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"golang.org/x/sync/errgroup"

	"signalist/internal/auth/handler"
	"signalist/internal/auth/identity/betterauth"
	authmetrics "signalist/internal/auth/metrics"
	"signalist/internal/auth/service"
	"signalist/internal/platform/config"
	"signalist/internal/platform/health"
	"signalist/internal/platform/httpserver"
	platformkafka "signalist/internal/platform/kafka"
	"signalist/internal/platform/logger"
	"signalist/internal/platform/metrics"
	platformotel "signalist/internal/platform/otel"
	platformredis "signalist/internal/platform/redis"
	"signalist/pkg/platform/circuit"
	"signalist/pkg/platform/events"
)

// main wires configuration, the identity provider, the event bus and the
// HTTP router. Business logic lives in internal/auth.
func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "signalist: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.FromEnv()
	if err != nil {
		return err
	}
	log := logger.New(cfg.Log)
	slog.SetDefault(log)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	shutdownTracing, err := platformotel.Setup(ctx, cfg.Otel)
	if err != nil {
		return fmt.Errorf("setup tracing: %w", err)
	}

	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	var (
		rdb *platformredis.Client
		kc  *platformkafka.Client
	)
	connect, connectCtx := errgroup.WithContext(ctx)
	connect.Go(func() (err error) {
		rdb, err = platformredis.New(connectCtx, cfg.Redis)
		return err
	})
	connect.Go(func() (err error) {
		kc, err = platformkafka.New(connectCtx, cfg.Kafka)
		return err
	})
	if err := connect.Wait(); err != nil {
		_ = closeClients(rdb, kc)
		return err
	}

	bus, err := buildBus(cfg, rdb, kc)
	if err != nil {
		_ = closeClients(rdb, kc)
		return fmt.Errorf("build event bus: %w", err)
	}
	guarded := events.Guard(bus,
		events.WithBreaker(circuit.New("event-bus",
			circuit.WithFailureThreshold(cfg.EventBus.BreakerThreshold),
			circuit.WithCooldown(cfg.EventBus.BreakerCooldown),
		)),
		events.WithMetrics(events.NewMetrics(reg)),
		events.WithLogger(log),
	)

	provider := betterauth.New(betterauth.Config{
		BaseURL: cfg.Auth.BaseURL,
		Timeout: cfg.Auth.Timeout,
	}, nil, betterauth.WithLogger(log))
	authService := service.New(provider, guarded,
		service.WithLogger(log),
		service.WithMetrics(authmetrics.New(reg)),
		service.WithPublishTimeout(cfg.EventBus.PublishTimeout),
	)

	healthHandler := health.NewHandler()
	if rdb != nil {
		healthHandler.Register("redis", rdb)
	}
	if kc != nil {
		healthHandler.Register("kafka", kc)
	}

	r := chi.NewRouter()
	handler.New(authService, log, metrics.New(reg), cfg.Server.RequestTimeout).Register(r)
	r.Method(http.MethodGet, "/health", healthHandler)
	r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{Registry: reg}))

	srv := httpserver.New(cfg.Server.Addr, otelhttp.NewHandler(r, "signalist"))

	log.InfoContext(ctx, "starting signalist",
		"addr", cfg.Server.Addr,
		"event_bus", cfg.EventBus.Driver,
		"auth_base_url", cfg.Auth.BaseURL,
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return httpserver.Run(gctx, srv, cfg.Server.ShutdownTimeout, log)
	})
	runErr := g.Wait()

	cleanupCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	var closeErrs []error
	if err := shutdownTracing(cleanupCtx); err != nil {
		closeErrs = append(closeErrs, fmt.Errorf("shutdown tracing: %w", err))
	}
	if err := closeClients(rdb, kc); err != nil {
		closeErrs = append(closeErrs, err)
	}
	log.Info("signalist stopped")

	return errors.Join(append([]error{runErr}, closeErrs...)...)
}

func closeClients(rdb *platformredis.Client, kc *platformkafka.Client) error {
	if kc != nil {
		kc.Close()
	}
	if rdb != nil {
		if err := rdb.Close(); err != nil {
			return fmt.Errorf("close redis: %w", err)
		}
	}
	return nil
}
