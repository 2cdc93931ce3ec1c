package app

import (
	"context"
	"fmt"

	"woodshop/internal/domain"
)

// CatalogService loads the storefront catalog and answers queries over the
// resident collection. Once Load has run, View is a pure in-memory transform
// with no network calls.
type CatalogService struct {
	api      domain.CatalogAPI
	products []domain.Product
}

// NewCatalogService creates a CatalogService backed by the given catalog port.
func NewCatalogService(api domain.CatalogAPI) *CatalogService {
	return &CatalogService{api: api}
}

// Load fetches the storefront collection from the backend, replacing any
// previously resident products.
func (s *CatalogService) Load(ctx context.Context) error {
	products, err := s.api.Storefront(ctx)
	if err != nil {
		return fmt.Errorf("load catalog: %w", err)
	}
	s.products = products
	return nil
}

// Products returns the resident collection in fetch order. Callers must not
// modify the returned slice; use View for filtered or reordered copies.
func (s *CatalogService) Products() []domain.Product {
	return s.products
}

// View applies the query to the resident collection and returns the filtered,
// ordered result. The resident collection is never modified.
func (s *CatalogService) View(q domain.Query) []domain.Product {
	return q.Apply(s.products)
}

// Count returns the number of resident products matching the query.
func (s *CatalogService) Count(q domain.Query) int {
	n := 0
	for _, p := range s.products {
		if q.Match(p) {
			n++
		}
	}
	return n
}

// Product fetches a single product by ID straight from the backend.
func (s *CatalogService) Product(ctx context.Context, id string) (*domain.Product, error) {
	p, err := s.api.Product(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get product %s: %w", id, err)
	}
	return p, nil
}
