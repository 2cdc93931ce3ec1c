package app

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"woodshop/internal/domain"
)

// Review draft validation errors.
var (
	ErrRatingOutOfRange = errors.New("rating must be between 1 and 5")
	ErrCommentRequired  = errors.New("review comment is required")
)

// ReviewService encapsulates the product-review use cases.
type ReviewService struct {
	api domain.ReviewAPI
}

// NewReviewService creates a ReviewService backed by the given review port.
func NewReviewService(api domain.ReviewAPI) *ReviewService {
	return &ReviewService{api: api}
}

// Reviews returns a product's reviews.
func (s *ReviewService) Reviews(ctx context.Context, productID string) ([]domain.Review, error) {
	if productID == "" {
		return nil, errors.New("product id is required")
	}
	reviews, err := s.api.Reviews(ctx, productID)
	if err != nil {
		return nil, fmt.Errorf("list reviews for %s: %w", productID, err)
	}
	return reviews, nil
}

// Submit validates a draft and posts the review.
func (s *ReviewService) Submit(ctx context.Context, productID string, draft domain.ReviewDraft) error {
	if productID == "" {
		return errors.New("product id is required")
	}
	if draft.Rating < 1 || draft.Rating > 5 {
		return ErrRatingOutOfRange
	}
	if strings.TrimSpace(draft.Comment) == "" {
		return ErrCommentRequired
	}
	if err := s.api.SubmitReview(ctx, productID, draft); err != nil {
		return fmt.Errorf("submit review for %s: %w", productID, err)
	}
	return nil
}

// Like records a like on a review.
func (s *ReviewService) Like(ctx context.Context, reviewID string) error {
	if reviewID == "" {
		return errors.New("review id is required")
	}
	if err := s.api.LikeReview(ctx, reviewID); err != nil {
		return fmt.Errorf("like review %s: %w", reviewID, err)
	}
	return nil
}
