package client

import (
	"context"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRequestSuccessEnvelope(t *testing.T) {
	var gotAuth, gotRequestID string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		gotRequestID = r.Header.Get("X-Request-ID")
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"success":true,"data":{"store_id":42,"store_name":"Corner Shop"}}`))
	}))
	defer server.Close()

	c := New(server.URL, StaticToken("tok-123"))

	var out struct {
		StoreID   int64  `json:"store_id"`
		StoreName string `json:"store_name"`
	}
	err := c.Get(context.Background(), "/api/v1/super-admin/stores/42", &out)
	require.NoError(t, err)
	assert.Equal(t, int64(42), out.StoreID)
	assert.Equal(t, "Corner Shop", out.StoreName)
	assert.Equal(t, "Bearer tok-123", gotAuth)
	assert.NotEmpty(t, gotRequestID)
}

func TestRequestApplicationFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"success":false,"message":"billing locked","code":"BILLING_LOCKED","data":null}`))
	}))
	defer server.Close()

	c := New(server.URL, StaticToken(""))

	_, err := c.Request(context.Background(), http.MethodPut, "/api/v1/super-admin/stores/1/features", map[string]any{})
	require.Error(t, err)

	apiErr, ok := AsAPIError(err)
	require.True(t, ok)
	assert.Equal(t, "billing locked", apiErr.Message)
	assert.Equal(t, "BILLING_LOCKED", apiErr.Code)
	assert.Equal(t, "billing locked", err.Error())
}

func TestRequestNon2xxStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		w.Write([]byte(`{"success":false,"message":"store not found","data":null}`))
	}))
	defer server.Close()

	c := New(server.URL, StaticToken(""))

	err := c.Get(context.Background(), "/api/v1/super-admin/stores/999", nil)
	apiErr, ok := AsAPIError(err)
	require.True(t, ok)
	assert.Equal(t, http.StatusNotFound, apiErr.StatusCode)
	assert.Equal(t, "store not found", apiErr.Message)
}

func TestRequestNon2xxWithoutEnvelope(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		w.Write([]byte("upstream exploded"))
	}))
	defer server.Close()

	c := New(server.URL, StaticToken(""))

	err := c.Get(context.Background(), "/api/v1/super-admin/dashboard", nil)
	apiErr, ok := AsAPIError(err)
	require.True(t, ok)
	assert.Equal(t, http.StatusBadGateway, apiErr.StatusCode)
	assert.Equal(t, "request failed", apiErr.Error())
}

func TestRequestTransportFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	server.Close() // connection refused from here on

	c := New(server.URL, StaticToken(""))

	err := c.Get(context.Background(), "/api/v1/super-admin/stores", nil)
	require.Error(t, err)
	_, ok := AsAPIError(err)
	assert.False(t, ok, "transport failures are not APIErrors")
}

func TestRequestUnauthenticatedOmitsHeader(t *testing.T) {
	var gotAuth string
	sawHeader := true
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		_, sawHeader = r.Header["Authorization"]
		w.Write([]byte(`{"success":true,"data":null}`))
	}))
	defer server.Close()

	c := New(server.URL, StaticToken(""))
	require.NoError(t, c.Get(context.Background(), "/", nil))
	assert.Empty(t, gotAuth)
	assert.False(t, sawHeader)
}

func TestFileTokenStore(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "token")
	store := NewFileTokenStore(path)

	// Missing file means unauthenticated, not an error.
	token, err := store.Token()
	require.NoError(t, err)
	assert.Empty(t, token)

	require.NoError(t, store.Save("tok-456"))
	token, err = store.Token()
	require.NoError(t, err)
	assert.Equal(t, "tok-456", token)

	require.NoError(t, store.Clear())
	token, err = store.Token()
	require.NoError(t, err)
	assert.Empty(t, token)

	// Clearing twice is fine.
	require.NoError(t, store.Clear())
}

func TestRateLimiterWindow(t *testing.T) {
	rl := NewRateLimiter(2, time.Minute)
	assert.True(t, rl.Allow("api"))
	assert.True(t, rl.Allow("api"))
	assert.False(t, rl.Allow("api"))
	assert.Equal(t, 0, rl.Remaining("api"))
	assert.True(t, rl.Allow("other"), "keys have independent windows")
}

func TestClientRateLimit(t *testing.T) {
	hits := 0
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits++
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"success":true,"data":null}`))
	}))
	defer server.Close()

	c := New(server.URL, StaticToken("t"), WithRateLimit(2, time.Minute))
	require.NoError(t, c.Get(context.Background(), "/ping", nil))
	require.NoError(t, c.Get(context.Background(), "/ping", nil))

	err := c.Get(context.Background(), "/ping", nil)
	require.Error(t, err)
	_, isAPIError := AsAPIError(err)
	assert.False(t, isAPIError, "throttling happens before the request goes out")
	assert.Equal(t, 2, hits)
}
