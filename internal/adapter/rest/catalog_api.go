package rest

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"woodshop/internal/domain"
)

var (
	_ domain.CatalogAPI  = (*Client)(nil)
	_ domain.VendorAPI   = (*Client)(nil)
	_ domain.WishlistAPI = (*Client)(nil)
)

// productPayload is the loose shape products arrive in. Field casing varies
// across backend endpoints (Name/name, Material/material, ImageURL); Go's
// case-insensitive JSON field matching absorbs the variants, and normalize
// produces the one canonical Product used everywhere else.
type productPayload struct {
	ID       string  `json:"id"`
	Name     string  `json:"name"`
	Price    float64 `json:"price"`
	Category string  `json:"category"`
	Material string  `json:"material"`
	ImageURL string  `json:"imageUrl"`
	Vendor   string  `json:"vendor"`
	Stock    int     `json:"stock"`
	Rating   float64 `json:"rating"`
	Sales    int     `json:"sales"`
	Owner    *struct {
		BusinessName string `json:"businessName"`
	} `json:"owner"`
}

func (p productPayload) normalize() domain.Product {
	vendor := strings.TrimSpace(p.Vendor)
	if vendor == "" && p.Owner != nil {
		vendor = strings.TrimSpace(p.Owner.BusinessName)
	}
	return domain.Product{
		ID:       strings.TrimSpace(p.ID),
		Name:     strings.TrimSpace(p.Name),
		Price:    p.Price,
		Category: strings.TrimSpace(p.Category),
		Material: strings.TrimSpace(p.Material),
		ImageURL: strings.TrimSpace(p.ImageURL),
		Vendor:   vendor,
		Stock:    p.Stock,
		Rating:   p.Rating,
		Sales:    p.Sales,
	}
}

// productDraftPayload is the writable product shape sent on uploads and edits.
type productDraftPayload struct {
	Name     string  `json:"Name"`
	Price    float64 `json:"Price"`
	Category string  `json:"category"`
	Material string  `json:"Material"`
	ImageURL string  `json:"ImageURL"`
	Stock    int     `json:"stock"`
}

func draftPayload(draft domain.ProductDraft) productDraftPayload {
	return productDraftPayload{
		Name:     draft.Name,
		Price:    draft.Price,
		Category: draft.Category,
		Material: draft.Material,
		ImageURL: draft.ImageURL,
		Stock:    draft.Stock,
	}
}

// decodeProducts accepts either a bare JSON array or the `{"data": [...]}`
// envelope some endpoints use, and normalises every record.
func decodeProducts(raw json.RawMessage) ([]domain.Product, error) {
	trimmed := strings.TrimSpace(string(raw))
	if strings.HasPrefix(trimmed, "{") {
		var envelope struct {
			Data []productPayload `json:"data"`
		}
		if err := json.Unmarshal(raw, &envelope); err != nil {
			return nil, fmt.Errorf("decode product envelope: %w", err)
		}
		return normalizeAll(envelope.Data), nil
	}

	var payloads []productPayload
	if err := json.Unmarshal(raw, &payloads); err != nil {
		return nil, fmt.Errorf("decode product list: %w", err)
	}
	return normalizeAll(payloads), nil
}

func normalizeAll(payloads []productPayload) []domain.Product {
	products := make([]domain.Product, len(payloads))
	for i, p := range payloads {
		products[i] = p.normalize()
	}
	return products
}

// Storefront fetches the full catalog for the listing page.
func (c *Client) Storefront(ctx context.Context) ([]domain.Product, error) {
	tok, err := c.bearer()
	if err != nil {
		return nil, err
	}
	var raw json.RawMessage
	if err := c.do(ctx, http.MethodGet, "/user/furniture", nil, tok, nil, &raw); err != nil {
		return nil, err
	}
	return decodeProducts(raw)
}

// Product fetches a single product by ID.
func (c *Client) Product(ctx context.Context, id string) (*domain.Product, error) {
	var payload productPayload
	if err := c.do(ctx, http.MethodGet, "/products/"+url.PathEscape(id), nil, nil, nil, &payload); err != nil {
		return nil, err
	}
	p := payload.normalize()
	return &p, nil
}

// MyProducts fetches the signed-in vendor's products.
func (c *Client) MyProducts(ctx context.Context) ([]domain.Product, error) {
	tok, err := c.bearer()
	if err != nil {
		return nil, err
	}
	var raw json.RawMessage
	if err := c.do(ctx, http.MethodGet, "/vendor/my-products", nil, tok, nil, &raw); err != nil {
		return nil, err
	}
	return decodeProducts(raw)
}

// Upload creates a product for the signed-in vendor.
func (c *Client) Upload(ctx context.Context, draft domain.ProductDraft) (*domain.Product, error) {
	tok, err := c.bearer()
	if err != nil {
		return nil, err
	}
	var payload productPayload
	if err := c.do(ctx, http.MethodPost, "/vendor/upload", nil, tok, draftPayload(draft), &payload); err != nil {
		return nil, err
	}
	p := payload.normalize()
	return &p, nil
}

// Edit replaces a product's writable fields.
func (c *Client) Edit(ctx context.Context, id string, draft domain.ProductDraft) (*domain.Product, error) {
	tok, err := c.bearer()
	if err != nil {
		return nil, err
	}
	var payload productPayload
	if err := c.do(ctx, http.MethodPut, "/vendor/edit-product/"+url.PathEscape(id), nil, tok, draftPayload(draft), &payload); err != nil {
		return nil, err
	}
	p := payload.normalize()
	return &p, nil
}

// Remove deletes a product.
func (c *Client) Remove(ctx context.Context, id string) error {
	tok, err := c.bearer()
	if err != nil {
		return err
	}
	return c.do(ctx, http.MethodDelete, "/vendor/remove-product/"+url.PathEscape(id), nil, tok, nil, nil)
}

// Wishlist fetches the signed-in user's wishlist.
func (c *Client) Wishlist(ctx context.Context) ([]domain.Product, error) {
	tok, err := c.bearer()
	if err != nil {
		return nil, err
	}
	var raw json.RawMessage
	if err := c.do(ctx, http.MethodGet, "/wishlist", nil, tok, nil, &raw); err != nil {
		return nil, err
	}
	return decodeProducts(raw)
}

// AddToWishlist puts a product on the wishlist.
func (c *Client) AddToWishlist(ctx context.Context, productID string) error {
	tok, err := c.bearer()
	if err != nil {
		return err
	}
	body := struct {
		ProductID string `json:"productId"`
	}{ProductID: productID}
	return c.do(ctx, http.MethodPost, "/wishlist", nil, tok, body, nil)
}

// RemoveFromWishlist takes a product off the wishlist.
func (c *Client) RemoveFromWishlist(ctx context.Context, productID string) error {
	tok, err := c.bearer()
	if err != nil {
		return err
	}
	return c.do(ctx, http.MethodDelete, "/wishlist/"+url.PathEscape(productID), nil, tok, nil, nil)
}
