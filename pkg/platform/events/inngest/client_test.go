package inngest

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"signalist/pkg/platform/events"
	"signalist/pkg/platform/sentinel"
	"signalist/pkg/requestcontext"
)

func TestClient_SendPostsEnvelope(t *testing.T) {
	var (
		gotPath      string
		gotRequestID string
		gotBody      []map[string]any
	)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotRequestID = r.Header.Get("X-Request-ID")
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"ids":["01H"],"status":200}`))
	}))
	defer srv.Close()

	client, err := New(Config{BaseURL: srv.URL + "/", EventKey: "test-key"}, srv.Client())
	require.NoError(t, err)

	fixed := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	ctx := requestcontext.WithRequestID(requestcontext.WithTime(context.Background(), fixed), "req-42")
	event := events.New(ctx, events.EventUserCreated, map[string]string{"email": "a@example.com"})

	require.NoError(t, client.Send(ctx, event))

	assert.Equal(t, "/e/test-key", gotPath)
	assert.Equal(t, "req-42", gotRequestID)
	require.Len(t, gotBody, 1)
	assert.Equal(t, events.EventUserCreated, gotBody[0]["name"])
	assert.Equal(t, event.ID, gotBody[0]["id"])
	assert.Equal(t, float64(fixed.UnixMilli()), gotBody[0]["ts"])
	assert.Equal(t, map[string]any{"email": "a@example.com"}, gotBody[0]["data"])
}

func TestClient_SendMapsStatusToSentinels(t *testing.T) {
	tests := []struct {
		status int
		want   error
	}{
		{status: http.StatusBadRequest, want: sentinel.ErrRejected},
		{status: http.StatusUnauthorized, want: sentinel.ErrRejected},
		{status: http.StatusServiceUnavailable, want: sentinel.ErrUnavailable},
	}
	for _, tt := range tests {
		t.Run(http.StatusText(tt.status), func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
			}))
			defer srv.Close()

			client, err := New(Config{BaseURL: srv.URL, EventKey: "k"}, srv.Client())
			require.NoError(t, err)

			err = client.Send(context.Background(), events.New(context.Background(), events.EventUserCreated, nil))
			require.Error(t, err)
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

func TestClient_SendUnreachable(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	client, err := New(Config{BaseURL: url, EventKey: "k", Timeout: time.Second}, nil)
	require.NoError(t, err)

	err = client.Send(context.Background(), events.New(context.Background(), events.EventUserCreated, nil))
	require.Error(t, err)
	assert.ErrorIs(t, err, sentinel.ErrUnavailable)
}

func TestNew_RequiresEventKey(t *testing.T) {
	_, err := New(Config{BaseURL: "http://localhost"}, nil)
	require.Error(t, err)
}
