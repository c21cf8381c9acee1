package platform

import "context"

// ProductInput carries the writable product fields.
type ProductInput struct {
	SKU     string  `json:"sku"`
	Name    string  `json:"name"`
	BrandID string  `json:"brandId"`
	Price   float64 `json:"price"`
	Stock   int     `json:"stock"`
}

// ListProducts retrieves all products visible to the caller.
func (c *Client) ListProducts(ctx context.Context) ([]Product, error) {
	var products []Product
	if err := c.get(ctx, "/products", &products); err != nil {
		return nil, err
	}
	return products, nil
}

// GetProduct retrieves a product by ID.
func (c *Client) GetProduct(ctx context.Context, id string) (*Product, error) {
	var product Product
	if err := c.get(ctx, "/products/"+id, &product); err != nil {
		return nil, err
	}
	return &product, nil
}

// CreateProduct creates a new product.
func (c *Client) CreateProduct(ctx context.Context, input ProductInput) (*Product, error) {
	var product Product
	if err := c.post(ctx, "/products", input, &product); err != nil {
		return nil, err
	}
	return &product, nil
}

// UpdateProduct replaces a product's writable fields.
func (c *Client) UpdateProduct(ctx context.Context, id string, input ProductInput) (*Product, error) {
	var product Product
	if err := c.put(ctx, "/products/"+id, input, &product); err != nil {
		return nil, err
	}
	return &product, nil
}

// DeleteProduct removes a product.
func (c *Client) DeleteProduct(ctx context.Context, id string) error {
	return c.delete(ctx, "/products/"+id)
}
