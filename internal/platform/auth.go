package platform

import (
	"context"
	"net/http"
)

// LoginRequest represents a login request.
type LoginRequest struct {
	Email       string `json:"email"`
	Password    string `json:"password"`
	NetworkType string `json:"networkType"`
}

// LoginResponse represents a login response.
//
// The backend also sets the HTTP-only refresh cookie on this response;
// the cookie jar captures it, the client never reads it.
type LoginResponse struct {
	AccessToken string `json:"accessToken"`
	User        User   `json:"user"`
}

// RefreshResponse represents a token renewal response.
type RefreshResponse struct {
	AccessToken string `json:"accessToken"`
}

// RegisterRequest represents a registration request.
type RegisterRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Role     Role   `json:"role"`
}

// ProfileResponse wraps the authenticated user's profile.
type ProfileResponse struct {
	User User `json:"user"`
}

// Login authenticates with email and password.
//
// On success the returned access token is set on the client for
// subsequent requests. Auth endpoints deliberately bypass the token
// source: renewing in order to log in would be circular.
func (c *Client) Login(ctx context.Context, email, password, networkType string) (*LoginResponse, error) {
	req := LoginRequest{
		Email:       email,
		Password:    password,
		NetworkType: networkType,
	}

	var resp LoginResponse
	if err := c.doRequestWithToken(ctx, http.MethodPost, "/auth/login", "", req, &resp); err != nil {
		return nil, err
	}

	c.SetToken(resp.AccessToken)

	return &resp, nil
}

// Register creates a new user account.
//
// adminToken is optional; creating privileged accounts requires it.
func (c *Client) Register(ctx context.Context, req RegisterRequest, adminToken string) (*User, error) {
	var user User
	if err := c.doRequestWithToken(ctx, http.MethodPost, "/auth/register", adminToken, req, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

// Refresh exchanges the refresh cookie for a new access token.
//
// No body, no bearer token: the jar-held cookie is the credential.
func (c *Client) Refresh(ctx context.Context) (*RefreshResponse, error) {
	var resp RefreshResponse
	if err := c.doRequestWithToken(ctx, http.MethodPost, "/auth/refresh", "", nil, &resp); err != nil {
		return nil, err
	}

	c.SetToken(resp.AccessToken)

	return &resp, nil
}

// Logout invalidates the session server-side.
func (c *Client) Logout(ctx context.Context, token string) error {
	return c.doRequestWithToken(ctx, http.MethodPost, "/auth/logout", token, nil, nil)
}

// Profile retrieves the profile for the given bearer token.
//
// The token is explicit rather than sourced so the session manager can
// fetch the profile mid-login, before the session is promoted.
func (c *Client) Profile(ctx context.Context, token string) (*User, error) {
	var resp ProfileResponse
	if err := c.doRequestWithToken(ctx, http.MethodGet, "/auth/profile", token, nil, &resp); err != nil {
		return nil, err
	}
	return &resp.User, nil
}
