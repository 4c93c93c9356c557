package backend

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBearerTokenAttached(t *testing.T) {
	var gotAuth string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{}`))
	}))
	defer srv.Close()

	client := NewClient(Config{BaseURL: srv.URL})

	resp, err := client.Get(context.Background(), "/products")
	require.NoError(t, err)
	require.NoError(t, DecodeResponse(resp, nil))
	assert.Empty(t, gotAuth, "no token should be attached before login")

	client.SetToken("abc123")
	resp, err = client.Get(context.Background(), "/products")
	require.NoError(t, err)
	require.NoError(t, DecodeResponse(resp, nil))
	assert.Equal(t, "Bearer abc123", gotAuth)

	client.ClearToken()
	resp, err = client.Get(context.Background(), "/products")
	require.NoError(t, err)
	require.NoError(t, DecodeResponse(resp, nil))
	assert.Empty(t, gotAuth, "token should be gone after clear")
}

func TestDecodeResponseErrorStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"error":"invalid credentials"}`))
	}))
	defer srv.Close()

	client := NewClient(Config{BaseURL: srv.URL})
	resp, err := client.Post(context.Background(), "/auth/login", map[string]string{"email": "x"})
	require.NoError(t, err)

	err = DecodeResponse(resp, nil)
	require.Error(t, err)

	var statusErr *StatusError
	require.ErrorAs(t, err, &statusErr)
	assert.Equal(t, http.StatusUnauthorized, statusErr.Status)
	assert.Contains(t, statusErr.Body, "invalid credentials")
}

func TestDecodeResponseTarget(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var payload map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&payload))
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]string{"echo": payload["msg"]})
	}))
	defer srv.Close()

	client := NewClient(Config{BaseURL: srv.URL})
	resp, err := client.Post(context.Background(), "/echo", map[string]string{"msg": "hola"})
	require.NoError(t, err)

	var out map[string]string
	require.NoError(t, DecodeResponse(resp, &out))
	assert.Equal(t, "hola", out["echo"])
}
