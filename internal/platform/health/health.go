package health

import (
	"context"
	"net/http"
	"sort"
	"sync"
	"time"

	"signalist/pkg/platform/httputil"
)

const checkTimeout = 2 * time.Second

// Checker reports whether a dependency is reachable.
type Checker interface {
	Health(ctx context.Context) error
}

// CheckerFunc adapts a function to Checker.
type CheckerFunc func(ctx context.Context) error

func (f CheckerFunc) Health(ctx context.Context) error { return f(ctx) }

type Response struct {
	Status string            `json:"status"`
	Checks map[string]string `json:"checks,omitempty"`
}

// Handler serves the aggregate health of the registered checks. Any failing
// check turns the response into a 503.
type Handler struct {
	mu     sync.RWMutex
	checks map[string]Checker
}

func NewHandler() *Handler {
	return &Handler{checks: make(map[string]Checker)}
}

// Register adds a named check. Nil checkers are ignored.
func (h *Handler) Register(name string, c Checker) {
	if c == nil {
		return
	}
	h.mu.Lock()
	defer h.mu.Unlock()
	h.checks[name] = c
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	h.mu.RLock()
	names := make([]string, 0, len(h.checks))
	for name := range h.checks {
		names = append(names, name)
	}
	h.mu.RUnlock()
	sort.Strings(names)

	ctx, cancel := context.WithTimeout(r.Context(), checkTimeout)
	defer cancel()

	resp := Response{Status: "ok"}
	status := http.StatusOK
	for _, name := range names {
		h.mu.RLock()
		c := h.checks[name]
		h.mu.RUnlock()

		if resp.Checks == nil {
			resp.Checks = make(map[string]string, len(names))
		}
		if err := c.Health(ctx); err != nil {
			resp.Checks[name] = err.Error()
			resp.Status = "degraded"
			status = http.StatusServiceUnavailable
			continue
		}
		resp.Checks[name] = "ok"
	}
	httputil.WriteJSON(w, status, resp)
}
