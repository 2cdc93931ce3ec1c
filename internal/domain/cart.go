package domain

import "context"

// CartItem is one line of the shopper's cart as reported by the backend. The
// backend assembles it from the cart entry and the referenced product; ID is
// the cart entry's own identifier, not the product's.
type CartItem struct {
	ID        string
	ProductID string
	Name      string
	Price     float64
	Quantity  int
	ImageURL  string
}

// CartAPI defines the port for the signed-in user's shopping cart. Items are
// placed in the cart by the backend's order flow; the client reads, adjusts
// quantities and removes.
type CartAPI interface {
	Cart(ctx context.Context) ([]CartItem, error)
	UpdateCartItem(ctx context.Context, id string, quantity int) error
	RemoveFromCart(ctx context.Context, id string) error
}
