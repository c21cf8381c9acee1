package platform

import (
	"context"
	"fmt"
)

// GrantKind selects which grant collection an access operation targets.
// Values double as the endpoint path segment.
type GrantKind string

const (
	GrantBrand       GrantKind = "brands"
	GrantMarketplace GrantKind = "marketplaces"
	GrantShipping    GrantKind = "shipping"
)

// ListUsers retrieves all users. Requires an admin session.
func (c *Client) ListUsers(ctx context.Context) ([]User, error) {
	var users []User
	if err := c.get(ctx, "/users", &users); err != nil {
		return nil, err
	}
	return users, nil
}

// GetUser retrieves a user by ID, including grant collections.
func (c *Client) GetUser(ctx context.Context, id string) (*User, error) {
	var user User
	if err := c.get(ctx, "/users/"+id, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

// DeleteUser removes a user account.
func (c *Client) DeleteUser(ctx context.Context, id string) error {
	return c.delete(ctx, "/users/"+id)
}

// GrantAccess grants a user access to a brand, marketplace or shipping
// platform.
func (c *Client) GrantAccess(ctx context.Context, userID string, kind GrantKind, entityID string) error {
	return c.post(ctx, fmt.Sprintf("/users/%s/%s/%s", userID, kind, entityID), nil, nil)
}

// RevokeAccess revokes a user's access to a brand, marketplace or
// shipping platform.
func (c *Client) RevokeAccess(ctx context.Context, userID string, kind GrantKind, entityID string) error {
	return c.delete(ctx, fmt.Sprintf("/users/%s/%s/%s", userID, kind, entityID))
}
