package upstream

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJSONForwardsBearerToken(t *testing.T) {
	var gotAuth string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		w.Write([]byte(`{"ok":true}`))
	}))
	defer srv.Close()

	var out map[string]bool
	err := NewClient(srv.URL).JSON(context.Background(), http.MethodGet, "/api/v1/menus", "tok-123", nil, &out)
	require.NoError(t, err)
	assert.Equal(t, "Bearer tok-123", gotAuth)
	assert.True(t, out["ok"])
}

func TestJSONTranslatesUpstreamError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
		w.Write([]byte(`{"detail":"permission denied"}`))
	}))
	defer srv.Close()

	err := NewClient(srv.URL).JSON(context.Background(), http.MethodGet, "/api/v1/menus", "tok", nil, nil)
	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusForbidden, apiErr.Status)
	assert.Equal(t, "permission denied", apiErr.Detail)
}

func TestJSONErrorWithoutDetailBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusBadGateway)
	}))
	defer srv.Close()

	err := NewClient(srv.URL).JSON(context.Background(), http.MethodGet, "/x", "", nil, nil)
	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, "boom", apiErr.Detail, "falls back to the raw body")
}

func TestJSONNetworkFailure(t *testing.T) {
	// Nothing listens here.
	err := NewClient("http://127.0.0.1:1").JSON(context.Background(), http.MethodGet, "/x", "", nil, nil)
	require.Error(t, err)
	var apiErr *APIError
	assert.False(t, errors.As(err, &apiErr), "transport failures are not APIErrors")
}

func TestRelayCopiesStatusAndBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		w.Write([]byte(`{"id":5}`))
	}))
	defer srv.Close()

	resp, err := NewClient(srv.URL).Do(context.Background(), http.MethodPost, "/api/v1/things", "", nil)
	require.NoError(t, err)
	defer resp.Body.Close()

	rec := httptest.NewRecorder()
	Relay(rec, resp)
	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.JSONEq(t, `{"id":5}`, rec.Body.String())
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
}
