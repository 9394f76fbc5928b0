package health

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"signalist/pkg/testutil"
)

func TestHandler_NoChecks(t *testing.T) {
	rr := testutil.DoRequest(NewHandler(), httptest.NewRequest(http.MethodGet, "/health", nil))

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.JSONEq(t, `{"status":"ok"}`, rr.Body.String())
}

func TestHandler_AllHealthy(t *testing.T) {
	h := NewHandler()
	h.Register("redis", CheckerFunc(func(context.Context) error { return nil }))
	h.Register("kafka", CheckerFunc(func(context.Context) error { return nil }))
	h.Register("ignored", nil)

	rr := testutil.DoRequest(h, httptest.NewRequest(http.MethodGet, "/health", nil))

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.JSONEq(t, `{"status":"ok","checks":{"kafka":"ok","redis":"ok"}}`, rr.Body.String())
}

func TestHandler_FailingCheck(t *testing.T) {
	h := NewHandler()
	h.Register("redis", CheckerFunc(func(context.Context) error { return errors.New("connection refused") }))

	rr := testutil.DoRequest(h, httptest.NewRequest(http.MethodGet, "/health", nil))

	assert.Equal(t, http.StatusServiceUnavailable, rr.Code)
	assert.JSONEq(t, `{"status":"degraded","checks":{"redis":"connection refused"}}`, rr.Body.String())
}
