package platform

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClient_Login(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/auth/login", r.URL.Path)

		var req LoginRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))

		if req.Password != "correct-password" {
			w.WriteHeader(http.StatusUnauthorized)
			_, _ = w.Write([]byte(`{"code":"unauthorized","message":"invalid credentials"}`))
			return
		}

		assert.Equal(t, "dashboard", req.NetworkType)

		// The refresh credential rides an HTTP-only cookie.
		http.SetCookie(w, &http.Cookie{Name: "refresh_token", Value: "long-lived", HttpOnly: true})
		_ = json.NewEncoder(w).Encode(LoginResponse{
			AccessToken: "access-1",
			User:        User{ID: "u1", Email: req.Email, Role: RoleUser},
		})
	}))
	defer server.Close()

	client := NewClient(server.URL)

	resp, err := client.Login(context.Background(), "user@example.com", "correct-password", "dashboard")
	require.NoError(t, err)
	assert.Equal(t, "access-1", resp.AccessToken)
	assert.Equal(t, "user@example.com", resp.User.Email)
	assert.Equal(t, RoleUser, resp.User.Role)

	_, err = client.Login(context.Background(), "user@example.com", "wrong", "dashboard")
	require.Error(t, err)
	apiErr, ok := IsAPIError(err)
	require.True(t, ok)
	assert.Equal(t, http.StatusUnauthorized, apiErr.StatusCode)
}

func TestClient_RefreshUsesCookie(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/auth/login":
			http.SetCookie(w, &http.Cookie{Name: "refresh_token", Value: "long-lived", HttpOnly: true})
			_ = json.NewEncoder(w).Encode(LoginResponse{AccessToken: "access-1", User: User{ID: "u1"}})
		case "/auth/refresh":
			cookie, err := r.Cookie("refresh_token")
			if err != nil || cookie.Value != "long-lived" {
				w.WriteHeader(http.StatusUnauthorized)
				_, _ = w.Write([]byte(`{"code":"unauthorized","message":"no refresh credential"}`))
				return
			}
			// Refresh must not carry a bearer token.
			assert.Empty(t, r.Header.Get("Authorization"))
			_ = json.NewEncoder(w).Encode(RefreshResponse{AccessToken: "access-2"})
		default:
			t.Fatalf("unexpected path %s", r.URL.Path)
		}
	}))
	defer server.Close()

	client := NewClient(server.URL)

	_, err := client.Login(context.Background(), "user@example.com", "pw", "dashboard")
	require.NoError(t, err)

	resp, err := client.Refresh(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "access-2", resp.AccessToken)
}

func TestClient_Profile(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/auth/profile", r.URL.Path)
		require.Equal(t, "Bearer access-1", r.Header.Get("Authorization"))
		_ = json.NewEncoder(w).Encode(ProfileResponse{User: User{
			ID:    "u1",
			Email: "user@example.com",
			BrandGrants: []GrantRecord{
				{EntityID: "brand-1", Active: true},
			},
		}})
	}))
	defer server.Close()

	client := NewClient(server.URL)

	user, err := client.Profile(context.Background(), "access-1")
	require.NoError(t, err)
	assert.Equal(t, "u1", user.ID)
	require.Len(t, user.BrandGrants, 1)
	assert.True(t, user.BrandGrants[0].Active)
}

func TestClient_GrantRevokePaths(t *testing.T) {
	var paths []string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		paths = append(paths, r.Method+" "+r.URL.Path)
		w.WriteHeader(http.StatusNoContent)
	}))
	defer server.Close()

	client := NewClient(server.URL)
	client.SetToken("t")

	ctx := context.Background()
	require.NoError(t, client.GrantAccess(ctx, "u1", GrantBrand, "b1"))
	require.NoError(t, client.RevokeAccess(ctx, "u1", GrantShipping, "s9"))

	assert.Equal(t, []string{
		"POST /users/u1/brands/b1",
		"DELETE /users/u1/shipping/s9",
	}, paths)
}
