package app

import (
	"context"
	"errors"
	"testing"

	"woodshop/internal/domain"
)

type mockReviewAPI struct {
	reviewsFn func(ctx context.Context, productID string) ([]domain.Review, error)
	submitFn  func(ctx context.Context, productID string, draft domain.ReviewDraft) error
	likeFn    func(ctx context.Context, reviewID string) error
}

func (m *mockReviewAPI) Reviews(ctx context.Context, productID string) ([]domain.Review, error) {
	if m.reviewsFn != nil {
		return m.reviewsFn(ctx, productID)
	}
	return nil, errors.New("unexpected call")
}

func (m *mockReviewAPI) SubmitReview(ctx context.Context, productID string, draft domain.ReviewDraft) error {
	if m.submitFn != nil {
		return m.submitFn(ctx, productID, draft)
	}
	return errors.New("unexpected call")
}

func (m *mockReviewAPI) LikeReview(ctx context.Context, reviewID string) error {
	if m.likeFn != nil {
		return m.likeFn(ctx, reviewID)
	}
	return errors.New("unexpected call")
}

func TestReviewService_Submit_Valid(t *testing.T) {
	var got domain.ReviewDraft
	api := &mockReviewAPI{
		submitFn: func(ctx context.Context, productID string, draft domain.ReviewDraft) error {
			got = draft
			return nil
		},
	}
	svc := NewReviewService(api)

	draft := domain.ReviewDraft{Rating: 5, Comment: "Solid joinery."}
	if err := svc.Submit(context.Background(), "1", draft); err != nil {
		t.Fatalf("submit: %v", err)
	}
	if got != draft {
		t.Errorf("unexpected draft %+v", got)
	}
}

func TestReviewService_Submit_Validation(t *testing.T) {
	api := &mockReviewAPI{
		submitFn: func(ctx context.Context, productID string, draft domain.ReviewDraft) error {
			t.Error("backend must not be called for invalid drafts")
			return nil
		},
	}
	svc := NewReviewService(api)
	ctx := context.Background()

	for _, rating := range []int{0, 6, -1} {
		err := svc.Submit(ctx, "1", domain.ReviewDraft{Rating: rating, Comment: "x"})
		if !errors.Is(err, ErrRatingOutOfRange) {
			t.Errorf("rating %d: expected ErrRatingOutOfRange, got %v", rating, err)
		}
	}

	err := svc.Submit(ctx, "1", domain.ReviewDraft{Rating: 4, Comment: "   "})
	if !errors.Is(err, ErrCommentRequired) {
		t.Errorf("expected ErrCommentRequired, got %v", err)
	}
}

func TestReviewService_Like(t *testing.T) {
	var got string
	api := &mockReviewAPI{
		likeFn: func(ctx context.Context, reviewID string) error {
			got = reviewID
			return nil
		},
	}
	svc := NewReviewService(api)

	if err := svc.Like(context.Background(), "r-1"); err != nil {
		t.Fatalf("like: %v", err)
	}
	if got != "r-1" {
		t.Errorf("unexpected review id %q", got)
	}
	if err := svc.Like(context.Background(), ""); err == nil {
		t.Error("expected error for empty id")
	}
}
