// Package handler exposes the auth facade over HTTP.
package handler

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"signalist/internal/auth/models"
	"signalist/internal/platform/metrics"
	"signalist/internal/platform/middleware"
	"signalist/pkg/platform/httputil"
	"signalist/pkg/platform/middleware/metadata"
	"signalist/pkg/platform/middleware/requesttime"
	"signalist/pkg/requestcontext"
)

// MsgInvalidBody is returned when the request body is not a JSON object.
const MsgInvalidBody = "invalid request body"

const maxBodyBytes = 1 << 20

//go:generate mockgen -source=handler.go -destination=mocks/mocks.go -package=mocks Service

// Service defines the auth operations the handler calls.
type Service interface {
	SignUp(ctx context.Context, req models.SignUpRequest, headers http.Header) *models.Result
	SignIn(ctx context.Context, req models.SignInRequest, headers http.Header) *models.Result
	SignOut(ctx context.Context, headers http.Header) *models.Result
}

// Handler handles the /api/auth endpoints.
type Handler struct {
	auth           Service
	logger         *slog.Logger
	metrics        *metrics.Metrics
	requestTimeout time.Duration
}

// New creates a new auth Handler. A zero requestTimeout disables the
// per-request deadline.
func New(auth Service, logger *slog.Logger, metrics *metrics.Metrics, requestTimeout time.Duration) *Handler {
	return &Handler{
		auth:           auth,
		logger:         logger,
		metrics:        metrics,
		requestTimeout: requestTimeout,
	}
}

// Register mounts the auth routes under /api/auth.
func (h *Handler) Register(r chi.Router) {
	authRouter := chi.NewRouter()
	authRouter.Use(middleware.Recovery(h.logger))
	authRouter.Use(middleware.RequestID)
	authRouter.Use(metadata.ClientMetadata)
	authRouter.Use(requesttime.Middleware)
	authRouter.Use(middleware.Logger(h.logger))
	authRouter.Use(middleware.Timeout(h.requestTimeout))
	authRouter.Use(middleware.ContentTypeJSON)
	authRouter.Use(middleware.LatencyMiddleware(h.metrics))
	authRouter.Post("/sign-up", h.handleSignUp)
	authRouter.Post("/sign-in", h.handleSignIn)
	authRouter.Post("/sign-out", h.handleSignOut)

	r.Mount("/api/auth", authRouter)
}

func (h *Handler) handleSignUp(w http.ResponseWriter, r *http.Request) {
	var req models.SignUpRequest
	if !h.decode(w, r, &req) {
		return
	}
	result := h.auth.SignUp(r.Context(), req, r.Header)
	h.writeResult(w, result, http.StatusBadRequest)
}

func (h *Handler) handleSignIn(w http.ResponseWriter, r *http.Request) {
	var req models.SignInRequest
	if !h.decode(w, r, &req) {
		return
	}
	result := h.auth.SignIn(r.Context(), req, r.Header)
	h.writeResult(w, result, http.StatusUnauthorized)
}

func (h *Handler) handleSignOut(w http.ResponseWriter, r *http.Request) {
	result := h.auth.SignOut(r.Context(), r.Header)
	h.writeResult(w, result, http.StatusBadGateway)
}

func (h *Handler) decode(w http.ResponseWriter, r *http.Request, dst any) bool {
	ctx := r.Context()
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		var maxErr *http.MaxBytesError
		status := http.StatusBadRequest
		if errors.As(err, &maxErr) {
			status = http.StatusRequestEntityTooLarge
		}
		h.logger.WarnContext(ctx, "invalid auth request",
			"request_id", requestcontext.RequestID(ctx),
			"path", r.URL.Path,
			"error", err.Error(),
		)
		httputil.WriteJSON(w, status, models.Failed(MsgInvalidBody))
		return false
	}
	return true
}

// writeResult applies the provider's cookies before the body so the browser
// session follows the provider's decision.
func (h *Handler) writeResult(w http.ResponseWriter, result *models.Result, failureStatus int) {
	if result == nil {
		result = models.Failed(http.StatusText(http.StatusInternalServerError))
		failureStatus = http.StatusInternalServerError
	}
	if result.Data != nil {
		for _, c := range result.Data.Cookies {
			if c != nil {
				http.SetCookie(w, c)
			}
		}
	}
	status := http.StatusOK
	if !result.Success {
		status = failureStatus
	}
	httputil.WriteJSON(w, status, result)
}
