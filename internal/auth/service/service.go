// Package service orchestrates sign-up, sign-in and sign-out against the
// identity provider and announces new registrations on the event bus.
package service

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"signalist/internal/auth/identity"
	"signalist/internal/auth/metrics"
	"signalist/internal/auth/models"
	"signalist/pkg/platform/events"
)

const (
	tracerName = "signalist/internal/auth/service"

	defaultPublishTimeout = 5 * time.Second
)

// Service is the auth orchestration facade. Every operation returns a Result
// and never an error: provider failures collapse into generic messages while
// the detail goes to the log.
type Service struct {
	provider identity.Provider
	bus      events.Bus
	logger   *slog.Logger
	metrics  *metrics.Metrics
	tracer   trace.Tracer

	publishTimeout time.Duration
}

type Option func(*Service)

func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) {
		s.logger = logger
	}
}

func WithMetrics(m *metrics.Metrics) Option {
	return func(s *Service) {
		s.metrics = m
	}
}

func WithTracer(t trace.Tracer) Option {
	return func(s *Service) {
		s.tracer = t
	}
}

// WithPublishTimeout bounds a single event publication.
func WithPublishTimeout(d time.Duration) Option {
	return func(s *Service) {
		if d > 0 {
			s.publishTimeout = d
		}
	}
}

// New builds a Service. A nil bus disables event publication.
func New(provider identity.Provider, bus events.Bus, opts ...Option) *Service {
	s := &Service{
		provider:       provider,
		bus:            bus,
		publishTimeout: defaultPublishTimeout,
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.bus == nil {
		s.bus = events.Discard
	}
	if s.logger == nil {
		s.logger = slog.Default()
	}
	if s.tracer == nil {
		s.tracer = otel.Tracer(tracerName)
	}
	return s
}

// SignUp registers the user with the provider, then publishes app/user.created.
// Publication is best effort: a bus failure is logged and the result stays
// successful.
func (s *Service) SignUp(ctx context.Context, req models.SignUpRequest, headers http.Header) *models.Result {
	ctx, span := s.tracer.Start(ctx, "auth.SignUp")
	defer span.End()

	start := time.Now()
	resp, err := s.provider.SignUpEmail(ctx, identity.SignUpEmailInput{
		Email:    req.Email,
		Password: req.Password,
		Name:     req.FullName,
	}, headers)
	s.metrics.ObserveProvider(metrics.OpSignUp, start)
	if err != nil {
		s.logger.ErrorContext(ctx, "sign up failed", "error", err)
		return s.fail(span, metrics.OpSignUp, models.ErrMsgSignUpFailed, err)
	}

	if resp != nil {
		s.metrics.IncrementUsersCreated()
		s.publishUserCreated(ctx, req)
	}

	s.logger.InfoContext(ctx, "user signed up", "user_id", userID(resp))
	return s.succeed(span, metrics.OpSignUp, resp)
}

// publishUserCreated runs detached from the request's cancellation: the user
// already exists at the provider, so a caller going away must not drop the event.
func (s *Service) publishUserCreated(ctx context.Context, req models.SignUpRequest) {
	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), s.publishTimeout)
	defer cancel()

	event := events.New(ctx, events.EventUserCreated, models.UserCreatedFrom(req))
	span := trace.SpanFromContext(ctx)
	span.SetAttributes(attribute.String("event.id", event.ID))

	defer func() {
		if r := recover(); r != nil {
			span.AddEvent("event publish panicked")
			s.logger.WarnContext(ctx, "failed to publish event",
				"event", event.Name,
				"event_id", event.ID,
				"panic", r,
			)
		}
	}()

	if err := s.bus.Send(ctx, event); err != nil {
		span.AddEvent("event publish failed", trace.WithAttributes(
			attribute.String("event.name", event.Name),
		))
		s.logger.WarnContext(ctx, "failed to publish event",
			"event", event.Name,
			"event_id", event.ID,
			"error", err,
		)
	}
}

// SignIn verifies credentials with the provider. A provider-reported failure
// surfaces its own message when it gave one.
func (s *Service) SignIn(ctx context.Context, req models.SignInRequest, headers http.Header) *models.Result {
	ctx, span := s.tracer.Start(ctx, "auth.SignIn")
	defer span.End()

	start := time.Now()
	outcome, err := s.provider.SignInEmail(ctx, identity.SignInEmailInput{
		Email:    req.Email,
		Password: req.Password,
	}, headers)
	s.metrics.ObserveProvider(metrics.OpSignIn, start)
	if err != nil {
		s.logger.ErrorContext(ctx, "sign in failed", "error", err)
		return s.fail(span, metrics.OpSignIn, models.ErrMsgSignInFailed, err)
	}

	switch o := outcome.(type) {
	case identity.Success:
		if o.Response == nil {
			break
		}
		s.logger.InfoContext(ctx, "user signed in", "user_id", userID(o.Response))
		return s.succeed(span, metrics.OpSignIn, o.Response)
	case identity.Failure:
		msg := o.Message
		if msg == "" {
			msg = models.ErrMsgSignInFailed
		}
		s.logger.InfoContext(ctx, "sign in rejected", "reason", o.Message)
		return s.fail(span, metrics.OpSignIn, msg, nil)
	}

	s.logger.WarnContext(ctx, "sign in returned no response")
	return s.fail(span, metrics.OpSignIn, models.ErrMsgSignInFailed, nil)
}

// SignOut ends the caller's session at the provider.
func (s *Service) SignOut(ctx context.Context, headers http.Header) *models.Result {
	ctx, span := s.tracer.Start(ctx, "auth.SignOut")
	defer span.End()

	start := time.Now()
	resp, err := s.provider.SignOut(ctx, headers)
	s.metrics.ObserveProvider(metrics.OpSignOut, start)
	if err != nil {
		s.logger.ErrorContext(ctx, "sign out failed", "error", err)
		return s.fail(span, metrics.OpSignOut, models.ErrMsgSignOutFailed, err)
	}

	s.logger.InfoContext(ctx, "user signed out")
	return s.succeed(span, metrics.OpSignOut, resp)
}

func (s *Service) succeed(span trace.Span, op string, data *identity.Response) *models.Result {
	s.metrics.RecordOutcome(op, true)
	span.SetStatus(codes.Ok, "")
	return models.Succeeded(data)
}

func (s *Service) fail(span trace.Span, op, msg string, err error) *models.Result {
	s.metrics.RecordOutcome(op, false)
	if err != nil {
		span.RecordError(err)
	}
	span.SetStatus(codes.Error, msg)
	return models.Failed(msg)
}

func userID(resp *identity.Response) string {
	if resp == nil || resp.User == nil {
		return ""
	}
	return resp.User.ID
}
