package platform

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type staticTokenSource struct {
	tokens []string
	calls  atomic.Int32
}

func (s *staticTokenSource) Token(ctx context.Context) string {
	n := int(s.calls.Add(1)) - 1
	if n >= len(s.tokens) {
		return s.tokens[len(s.tokens)-1]
	}
	return s.tokens[n]
}

func TestClient_BearerAndRequestID(t *testing.T) {
	var gotAuth, gotRequestID string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		gotRequestID = r.Header.Get("X-Request-ID")
		_ = json.NewEncoder(w).Encode([]Product{})
	}))
	defer server.Close()

	client := NewClient(server.URL)
	client.SetToken("token-abc")

	_, err := client.ListProducts(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "Bearer token-abc", gotAuth)
	assert.NotEmpty(t, gotRequestID)
}

func TestClient_ErrorTaxonomy(t *testing.T) {
	tests := []struct {
		name       string
		status     int
		body       string
		check      func(t *testing.T, apiErr *APIError)
	}{
		{
			name:   "unauthorized envelope",
			status: http.StatusUnauthorized,
			body:   `{"error":{"code":"unauthorized","message":"invalid credentials"}}`,
			check: func(t *testing.T, apiErr *APIError) {
				assert.True(t, apiErr.IsUnauthorized())
				assert.Equal(t, "invalid credentials", apiErr.Message)
			},
		},
		{
			name:   "forbidden flat",
			status: http.StatusForbidden,
			body:   `{"code":"forbidden","message":"no access"}`,
			check: func(t *testing.T, apiErr *APIError) {
				assert.True(t, apiErr.IsForbidden())
			},
		},
		{
			name:   "not found plain body",
			status: http.StatusNotFound,
			body:   `missing`,
			check: func(t *testing.T, apiErr *APIError) {
				assert.True(t, apiErr.IsNotFound())
				assert.Equal(t, "not_found", apiErr.Code)
			},
		},
		{
			name:   "server error",
			status: http.StatusInternalServerError,
			body:   `boom`,
			check: func(t *testing.T, apiErr *APIError) {
				assert.True(t, apiErr.IsServerError())
				assert.Equal(t, "server_error", apiErr.Code)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.body))
			}))
			defer server.Close()

			client := NewClient(server.URL)
			_, err := client.ListProducts(context.Background())
			require.Error(t, err)

			apiErr, ok := IsAPIError(err)
			require.True(t, ok)
			assert.Equal(t, tt.status, apiErr.StatusCode)
			tt.check(t, apiErr)
		})
	}
}

func TestClient_NetworkError(t *testing.T) {
	// Point at a closed port.
	client := NewClient("http://127.0.0.1:1")

	_, err := client.ListProducts(context.Background())
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrNetwork))
}

func TestClient_MalformedResponse(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("{not json"))
	}))
	defer server.Close()

	client := NewClient(server.URL)
	_, err := client.ListProducts(context.Background())
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrMalformedResponse))
}

func TestClient_RenewOn401(t *testing.T) {
	var requests atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests.Add(1)
		if r.Header.Get("Authorization") != "Bearer fresh" {
			w.WriteHeader(http.StatusUnauthorized)
			_, _ = w.Write([]byte(`{"code":"unauthorized","message":"expired"}`))
			return
		}
		_ = json.NewEncoder(w).Encode([]Product{{ID: "p1", Name: "Widget"}})
	}))
	defer server.Close()

	client := NewClient(server.URL)
	client.SetTokenSource(&staticTokenSource{tokens: []string{"stale", "fresh"}})

	products, err := client.ListProducts(context.Background())
	require.NoError(t, err)
	require.Len(t, products, 1)
	assert.Equal(t, "Widget", products[0].Name)
	assert.Equal(t, int32(2), requests.Load())
}

func TestClient_RenewOn401_SameTokenPropagates(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"code":"unauthorized","message":"expired"}`))
	}))
	defer server.Close()

	client := NewClient(server.URL)
	client.SetTokenSource(&staticTokenSource{tokens: []string{"stale"}})

	_, err := client.ListProducts(context.Background())
	require.Error(t, err)
	apiErr, ok := IsAPIError(err)
	require.True(t, ok)
	assert.True(t, apiErr.IsUnauthorized())
}
