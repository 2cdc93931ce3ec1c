package rest

import (
	"context"
	"net/http"
	"net/url"
	"strings"

	"woodshop/internal/domain"
)

var _ domain.CartAPI = (*Client)(nil)

type cartItemPayload struct {
	ID        string  `json:"id"`
	ProductID string  `json:"productId"`
	Name      string  `json:"name"`
	Price     float64 `json:"price"`
	Quantity  int     `json:"quantity"`
	ImageURL  string  `json:"imageUrl"`
}

func (p cartItemPayload) normalize() domain.CartItem {
	return domain.CartItem{
		ID:        strings.TrimSpace(p.ID),
		ProductID: strings.TrimSpace(p.ProductID),
		Name:      strings.TrimSpace(p.Name),
		Price:     p.Price,
		Quantity:  p.Quantity,
		ImageURL:  strings.TrimSpace(p.ImageURL),
	}
}

// Cart fetches the signed-in user's cart.
func (c *Client) Cart(ctx context.Context) ([]domain.CartItem, error) {
	tok, err := c.bearer()
	if err != nil {
		return nil, err
	}
	var payloads []cartItemPayload
	if err := c.do(ctx, http.MethodGet, "/cart", nil, tok, nil, &payloads); err != nil {
		return nil, err
	}
	items := make([]domain.CartItem, len(payloads))
	for i, p := range payloads {
		items[i] = p.normalize()
	}
	return items, nil
}

// UpdateCartItem sets the quantity of a cart entry.
func (c *Client) UpdateCartItem(ctx context.Context, id string, quantity int) error {
	tok, err := c.bearer()
	if err != nil {
		return err
	}
	body := struct {
		Quantity int `json:"quantity"`
	}{Quantity: quantity}
	return c.do(ctx, http.MethodPatch, "/cart/"+url.PathEscape(id), nil, tok, body, nil)
}

// RemoveFromCart deletes a cart entry.
func (c *Client) RemoveFromCart(ctx context.Context, id string) error {
	tok, err := c.bearer()
	if err != nil {
		return err
	}
	return c.do(ctx, http.MethodDelete, "/cart/"+url.PathEscape(id), nil, tok, nil, nil)
}
