package domain

import "context"

// Product is the canonical catalog record. Backend payloads arrive with
// inconsistent field casing and optional fields; the REST adapter normalises
// them into this shape once, at the boundary. Products are treated as
// immutable values after fetch.
type Product struct {
	ID       string
	Name     string
	Price    float64
	Category string
	Material string
	ImageURL string
	Vendor   string
	Stock    int
	Rating   float64
	Sales    int
}

// ProductDraft carries the writable fields for vendor product uploads and
// edits. The backend assigns IDs and ownership.
type ProductDraft struct {
	Name     string
	Price    float64
	Category string
	Material string
	ImageURL string
	Stock    int
}

// CatalogAPI defines the port for storefront catalog reads.
type CatalogAPI interface {
	Storefront(ctx context.Context) ([]Product, error)
	Product(ctx context.Context, id string) (*Product, error)
}

// VendorAPI defines the port for vendor product management.
type VendorAPI interface {
	MyProducts(ctx context.Context) ([]Product, error)
	Upload(ctx context.Context, draft ProductDraft) (*Product, error)
	Edit(ctx context.Context, id string, draft ProductDraft) (*Product, error)
	Remove(ctx context.Context, id string) error
}

// WishlistAPI defines the port for the signed-in user's wishlist.
type WishlistAPI interface {
	Wishlist(ctx context.Context) ([]Product, error)
	AddToWishlist(ctx context.Context, productID string) error
	RemoveFromWishlist(ctx context.Context, productID string) error
}
