package app

import (
	"context"
	"errors"
	"fmt"

	"woodshop/internal/domain"
)

// ErrQuantityTooSmall rejects cart quantities below one; removing a line is a
// separate operation.
var ErrQuantityTooSmall = errors.New("quantity must be at least 1")

// Flat shipping rate applied to any non-empty cart.
const shippingFlatRate = 10.0

// CartSummary is the checkout-panel breakdown of a cart.
type CartSummary struct {
	Subtotal float64 `json:"subtotal"`
	Shipping float64 `json:"shipping"`
	Total    float64 `json:"total"`
}

// CartService encapsulates the shopping-cart use cases.
type CartService struct {
	api domain.CartAPI
}

// NewCartService creates a CartService backed by the given cart port.
func NewCartService(api domain.CartAPI) *CartService {
	return &CartService{api: api}
}

// Items returns the signed-in user's cart.
func (s *CartService) Items(ctx context.Context) ([]domain.CartItem, error) {
	items, err := s.api.Cart(ctx)
	if err != nil {
		return nil, fmt.Errorf("load cart: %w", err)
	}
	return items, nil
}

// UpdateQuantity sets the quantity of a cart entry. Quantities below one are
// rejected before any network call.
func (s *CartService) UpdateQuantity(ctx context.Context, id string, quantity int) error {
	if id == "" {
		return errors.New("cart item id is required")
	}
	if quantity < 1 {
		return ErrQuantityTooSmall
	}
	if err := s.api.UpdateCartItem(ctx, id, quantity); err != nil {
		return fmt.Errorf("update cart item %s: %w", id, err)
	}
	return nil
}

// Remove deletes a cart entry.
func (s *CartService) Remove(ctx context.Context, id string) error {
	if id == "" {
		return errors.New("cart item id is required")
	}
	if err := s.api.RemoveFromCart(ctx, id); err != nil {
		return fmt.Errorf("remove cart item %s: %w", id, err)
	}
	return nil
}

// SummarizeCart computes the checkout totals. An empty cart ships free;
// otherwise the flat shipping rate applies.
func SummarizeCart(items []domain.CartItem) CartSummary {
	var summary CartSummary
	for _, item := range items {
		summary.Subtotal += item.Price * float64(item.Quantity)
	}
	if summary.Subtotal > 0 {
		summary.Shipping = shippingFlatRate
	}
	summary.Total = summary.Subtotal + summary.Shipping
	return summary
}
