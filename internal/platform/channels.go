package platform

import "context"

// Sales-channel entities: brands, marketplaces and shipping platforms are
// simple list/get resources; grants against them are managed per user.

// ListBrands retrieves all brands.
func (c *Client) ListBrands(ctx context.Context) ([]Brand, error) {
	var brands []Brand
	if err := c.get(ctx, "/brands", &brands); err != nil {
		return nil, err
	}
	return brands, nil
}

// GetBrand retrieves a brand by ID.
func (c *Client) GetBrand(ctx context.Context, id string) (*Brand, error) {
	var brand Brand
	if err := c.get(ctx, "/brands/"+id, &brand); err != nil {
		return nil, err
	}
	return &brand, nil
}

// ListMarketplaces retrieves all marketplaces.
func (c *Client) ListMarketplaces(ctx context.Context) ([]Marketplace, error) {
	var marketplaces []Marketplace
	if err := c.get(ctx, "/marketplaces", &marketplaces); err != nil {
		return nil, err
	}
	return marketplaces, nil
}

// GetMarketplace retrieves a marketplace by ID.
func (c *Client) GetMarketplace(ctx context.Context, id string) (*Marketplace, error) {
	var marketplace Marketplace
	if err := c.get(ctx, "/marketplaces/"+id, &marketplace); err != nil {
		return nil, err
	}
	return &marketplace, nil
}

// ListShippingPlatforms retrieves all shipping platforms.
func (c *Client) ListShippingPlatforms(ctx context.Context) ([]ShippingPlatform, error) {
	var platforms []ShippingPlatform
	if err := c.get(ctx, "/shipping", &platforms); err != nil {
		return nil, err
	}
	return platforms, nil
}

// GetShippingPlatform retrieves a shipping platform by ID.
func (c *Client) GetShippingPlatform(ctx context.Context, id string) (*ShippingPlatform, error) {
	var platform ShippingPlatform
	if err := c.get(ctx, "/shipping/"+id, &platform); err != nil {
		return nil, err
	}
	return &platform, nil
}
