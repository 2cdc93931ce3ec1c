package app

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"woodshop/internal/domain"
)

// Draft validation errors.
var (
	ErrDraftNameRequired  = errors.New("product name is required")
	ErrDraftNegativePrice = errors.New("price must not be negative")
	ErrDraftNegativeStock = errors.New("stock must not be negative")
)

// VendorService encapsulates vendor product management use cases.
type VendorService struct {
	api domain.VendorAPI
}

// NewVendorService creates a VendorService backed by the given vendor port.
func NewVendorService(api domain.VendorAPI) *VendorService {
	return &VendorService{api: api}
}

// MyProducts returns the signed-in vendor's products.
func (s *VendorService) MyProducts(ctx context.Context) ([]domain.Product, error) {
	products, err := s.api.MyProducts(ctx)
	if err != nil {
		return nil, fmt.Errorf("list vendor products: %w", err)
	}
	return products, nil
}

// Upload validates a draft and creates the product.
func (s *VendorService) Upload(ctx context.Context, draft domain.ProductDraft) (*domain.Product, error) {
	if err := validateDraft(draft); err != nil {
		return nil, err
	}
	p, err := s.api.Upload(ctx, draft)
	if err != nil {
		return nil, fmt.Errorf("upload product: %w", err)
	}
	return p, nil
}

// Edit validates a draft and replaces the product's writable fields.
func (s *VendorService) Edit(ctx context.Context, id string, draft domain.ProductDraft) (*domain.Product, error) {
	if id == "" {
		return nil, errors.New("product id is required")
	}
	if err := validateDraft(draft); err != nil {
		return nil, err
	}
	p, err := s.api.Edit(ctx, id, draft)
	if err != nil {
		return nil, fmt.Errorf("edit product %s: %w", id, err)
	}
	return p, nil
}

// Remove deletes the product.
func (s *VendorService) Remove(ctx context.Context, id string) error {
	if id == "" {
		return errors.New("product id is required")
	}
	if err := s.api.Remove(ctx, id); err != nil {
		return fmt.Errorf("remove product %s: %w", id, err)
	}
	return nil
}

func validateDraft(draft domain.ProductDraft) error {
	if strings.TrimSpace(draft.Name) == "" {
		return ErrDraftNameRequired
	}
	if draft.Price < 0 {
		return ErrDraftNegativePrice
	}
	if draft.Stock < 0 {
		return ErrDraftNegativeStock
	}
	return nil
}
