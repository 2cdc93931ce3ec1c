package domain

import "context"

// Review is a customer review on a product. Date is the backend's display
// string, passed through untouched.
type Review struct {
	ID       string
	UserID   string
	UserName string
	Rating   int
	Comment  string
	Date     string
	Likes    int
	Replies  []Reply
}

// Reply is a response to a review.
type Reply struct {
	ID       string
	UserID   string
	UserName string
	Comment  string
	Date     string
}

// ReviewDraft carries the writable fields for submitting a review.
type ReviewDraft struct {
	Rating  int
	Comment string
}

// ReviewAPI defines the port for product reviews.
type ReviewAPI interface {
	Reviews(ctx context.Context, productID string) ([]Review, error)
	SubmitReview(ctx context.Context, productID string, draft ReviewDraft) error
	LikeReview(ctx context.Context, reviewID string) error
}
