package platform

import "time"

// Role enumerates the two back-office user roles.
type Role string

const (
	RoleAdmin Role = "ADMIN"
	RoleUser  Role = "USER"
)

// User represents a back-office user.
type User struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
	Role     Role   `json:"role"`

	// Access-grant collections, mirrored from the backend as-is.
	BrandGrants       []GrantRecord `json:"brands,omitempty"`
	MarketplaceGrants []GrantRecord `json:"marketplaces,omitempty"`
	ShippingGrants    []GrantRecord `json:"shippingPlatforms,omitempty"`
}

// GrantRecord is a single permission grant as reported by the backend.
type GrantRecord struct {
	EntityID  string    `json:"entityId"`
	Active    bool      `json:"active"`
	GrantedAt time.Time `json:"grantedAt"`
}

// Product is a catalog product.
type Product struct {
	ID        string    `json:"id"`
	SKU       string    `json:"sku"`
	Name      string    `json:"name"`
	BrandID   string    `json:"brandId"`
	Price     float64   `json:"price"`
	Stock     int       `json:"stock"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// Brand is a product brand the tenant sells under.
type Brand struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Code string `json:"code"`
}

// Marketplace is an external sales channel.
type Marketplace struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	Country string `json:"country"`
}

// ShippingPlatform is an external shipping integration.
type ShippingPlatform struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	Carrier string `json:"carrier"`
}
