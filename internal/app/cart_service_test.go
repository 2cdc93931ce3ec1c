package app

import (
	"context"
	"errors"
	"testing"

	"woodshop/internal/domain"
)

type mockCartAPI struct {
	cartFn   func(ctx context.Context) ([]domain.CartItem, error)
	updateFn func(ctx context.Context, id string, quantity int) error
	removeFn func(ctx context.Context, id string) error
}

func (m *mockCartAPI) Cart(ctx context.Context) ([]domain.CartItem, error) {
	if m.cartFn != nil {
		return m.cartFn(ctx)
	}
	return nil, errors.New("unexpected call")
}

func (m *mockCartAPI) UpdateCartItem(ctx context.Context, id string, quantity int) error {
	if m.updateFn != nil {
		return m.updateFn(ctx, id, quantity)
	}
	return errors.New("unexpected call")
}

func (m *mockCartAPI) RemoveFromCart(ctx context.Context, id string) error {
	if m.removeFn != nil {
		return m.removeFn(ctx, id)
	}
	return errors.New("unexpected call")
}

func TestCartService_UpdateQuantity(t *testing.T) {
	var gotID string
	var gotQty int
	api := &mockCartAPI{
		updateFn: func(ctx context.Context, id string, quantity int) error {
			gotID, gotQty = id, quantity
			return nil
		},
	}
	svc := NewCartService(api)

	if err := svc.UpdateQuantity(context.Background(), "c-1", 3); err != nil {
		t.Fatalf("update: %v", err)
	}
	if gotID != "c-1" || gotQty != 3 {
		t.Errorf("unexpected call %q %d", gotID, gotQty)
	}
}

func TestCartService_UpdateQuantity_RejectsBelowOne(t *testing.T) {
	api := &mockCartAPI{
		updateFn: func(ctx context.Context, id string, quantity int) error {
			t.Error("backend must not be called for invalid quantities")
			return nil
		},
	}
	svc := NewCartService(api)

	for _, qty := range []int{0, -1} {
		if err := svc.UpdateQuantity(context.Background(), "c-1", qty); !errors.Is(err, ErrQuantityTooSmall) {
			t.Errorf("quantity %d: expected ErrQuantityTooSmall, got %v", qty, err)
		}
	}
}

func TestCartService_Remove_RequiresID(t *testing.T) {
	svc := NewCartService(&mockCartAPI{})
	if err := svc.Remove(context.Background(), ""); err == nil {
		t.Fatal("expected error for empty id")
	}
}

func TestSummarizeCart(t *testing.T) {
	items := []domain.CartItem{
		{ID: "1", Price: 500, Quantity: 1},
		{ID: "2", Price: 90, Quantity: 2},
	}

	summary := SummarizeCart(items)
	if summary.Subtotal != 680 {
		t.Errorf("subtotal = %v", summary.Subtotal)
	}
	if summary.Shipping != 10 {
		t.Errorf("shipping = %v", summary.Shipping)
	}
	if summary.Total != 690 {
		t.Errorf("total = %v", summary.Total)
	}
}

func TestSummarizeCart_EmptyShipsFree(t *testing.T) {
	if summary := SummarizeCart(nil); summary != (CartSummary{}) {
		t.Errorf("expected zero summary, got %+v", summary)
	}
}
