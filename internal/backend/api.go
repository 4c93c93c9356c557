package backend

import (
	"context"
	"fmt"
	"net/url"

	"github.com/nance-store/storefront/internal/app/domain/product"
	"github.com/nance-store/storefront/internal/app/domain/user"
)

// LoginResponse is the payload returned by POST /auth/login: an opaque
// session token plus the profile fields.
type LoginResponse struct {
	Token string `json:"token"`
	Email string `json:"email"`
	Name  string `json:"name"`
	Role  string `json:"role"`
}

// User extracts the profile portion of a login response.
func (r LoginResponse) User() user.User {
	return user.User{Email: r.Email, Name: r.Name, Role: r.Role}
}

// Login exchanges credentials for a session token.
func (c *Client) Login(ctx context.Context, email, password string) (LoginResponse, error) {
	resp, err := c.Post(ctx, "/auth/login", map[string]string{
		"email":    email,
		"password": password,
	})
	if err != nil {
		return LoginResponse{}, err
	}

	var out LoginResponse
	if err := DecodeResponse(resp, &out); err != nil {
		return LoginResponse{}, err
	}
	if out.Token == "" {
		return LoginResponse{}, fmt.Errorf("login response missing token")
	}
	return out, nil
}

// Register creates a new account with the fixed default CLIENT role. It
// does not establish a session.
func (c *Client) Register(ctx context.Context, email, password, name string) error {
	resp, err := c.Post(ctx, "/auth/register", map[string]string{
		"email":    email,
		"password": password,
		"name":     name,
		"role":     user.RoleClient,
	})
	if err != nil {
		return err
	}
	return DecodeResponse(resp, nil)
}

// ListProducts fetches and normalizes the full product catalog.
func (c *Client) ListProducts(ctx context.Context) ([]product.Product, error) {
	resp, err := c.Get(ctx, "/products")
	if err != nil {
		return nil, err
	}

	var wires []product.Wire
	if err := DecodeResponse(resp, &wires); err != nil {
		return nil, err
	}
	products, err := product.NormalizeAll(wires)
	if err != nil {
		return nil, fmt.Errorf("normalize products: %w", err)
	}
	return products, nil
}

// CreateProduct creates a product. The backend assigns the identifier; any
// id on p is dropped before sending.
func (c *Client) CreateProduct(ctx context.Context, p product.Product) (product.Product, error) {
	resp, err := c.Post(ctx, "/products", createPayload(p))
	if err != nil {
		return product.Product{}, err
	}

	var wire product.Wire
	if err := DecodeResponse(resp, &wire); err != nil {
		return product.Product{}, err
	}
	return wire.Normalize()
}

// UpdateProduct updates the product with p.ID.
func (c *Client) UpdateProduct(ctx context.Context, p product.Product) (product.Product, error) {
	if p.ID == "" {
		return product.Product{}, fmt.Errorf("product id is required")
	}
	resp, err := c.Put(ctx, "/products/"+url.PathEscape(p.ID), p)
	if err != nil {
		return product.Product{}, err
	}

	var wire product.Wire
	if err := DecodeResponse(resp, &wire); err != nil {
		return product.Product{}, err
	}
	return wire.Normalize()
}

// DeleteProduct removes the product with the given id.
func (c *Client) DeleteProduct(ctx context.Context, id string) error {
	if id == "" {
		return fmt.Errorf("product id is required")
	}
	resp, err := c.Delete(ctx, "/products/"+url.PathEscape(id))
	if err != nil {
		return err
	}
	return DecodeResponse(resp, nil)
}

func createPayload(p product.Product) map[string]interface{} {
	return map[string]interface{}{
		"name":        p.Name,
		"description": p.Description,
		"price":       p.Price,
		"stock":       p.Stock,
		"image_url":   p.ImageURL,
		"category":    p.Category,
	}
}
