package testutil

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUnmarshalResponse_DoesNotDrainBody(t *testing.T) {
	h := http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.SetCookie(w, &http.Cookie{Name: "sid", Value: "1"})
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"success":true}`))
	})

	rr := DoRequest(h, NewRequest(t, http.MethodGet, "/"))

	got := UnmarshalResponse[struct{ Success bool }](t, rr)
	require.True(t, got.Success)
	AssertJSONContains(t, rr, "success", true)
	require.NotNil(t, ResponseCookie(rr, "sid"))
	assert.Nil(t, ResponseCookie(rr, "missing"))
}

func TestWithCookie(t *testing.T) {
	req := WithCookie(NewRequest(t, http.MethodPost, "/"), "sid", "abc")

	c, err := req.Cookie("sid")
	require.NoError(t, err)
	assert.Equal(t, "abc", c.Value)
}
