package rest

import (
	"context"
	"net/http"
	"net/url"

	"woodshop/internal/domain"
)

var (
	_ domain.ReviewAPI       = (*Client)(nil)
	_ domain.NotificationAPI = (*Client)(nil)
)

type reviewPayload struct {
	ID       string `json:"id"`
	UserID   string `json:"userId"`
	UserName string `json:"userName"`
	Rating   int    `json:"rating"`
	Comment  string `json:"comment"`
	Date     string `json:"date"`
	Likes    int    `json:"likes"`
	Replies  []struct {
		ID       string `json:"id"`
		UserID   string `json:"userId"`
		UserName string `json:"userName"`
		Comment  string `json:"comment"`
		Date     string `json:"date"`
	} `json:"replies"`
}

func (p reviewPayload) normalize() domain.Review {
	r := domain.Review{
		ID:       p.ID,
		UserID:   p.UserID,
		UserName: p.UserName,
		Rating:   p.Rating,
		Comment:  p.Comment,
		Date:     p.Date,
		Likes:    p.Likes,
	}
	for _, reply := range p.Replies {
		r.Replies = append(r.Replies, domain.Reply{
			ID:       reply.ID,
			UserID:   reply.UserID,
			UserName: reply.UserName,
			Comment:  reply.Comment,
			Date:     reply.Date,
		})
	}
	return r
}

// Reviews fetches a product's reviews.
func (c *Client) Reviews(ctx context.Context, productID string) ([]domain.Review, error) {
	tok, err := c.bearer()
	if err != nil {
		return nil, err
	}
	var payloads []reviewPayload
	path := "/products/" + url.PathEscape(productID) + "/reviews"
	if err := c.do(ctx, http.MethodGet, path, nil, tok, nil, &payloads); err != nil {
		return nil, err
	}
	reviews := make([]domain.Review, len(payloads))
	for i, p := range payloads {
		reviews[i] = p.normalize()
	}
	return reviews, nil
}

// SubmitReview posts a new review on a product.
func (c *Client) SubmitReview(ctx context.Context, productID string, draft domain.ReviewDraft) error {
	tok, err := c.bearer()
	if err != nil {
		return err
	}
	body := struct {
		Rating  int    `json:"rating"`
		Comment string `json:"comment"`
	}{Rating: draft.Rating, Comment: draft.Comment}
	path := "/products/" + url.PathEscape(productID) + "/reviews"
	return c.do(ctx, http.MethodPost, path, nil, tok, body, nil)
}

// LikeReview records a like on a review.
func (c *Client) LikeReview(ctx context.Context, reviewID string) error {
	tok, err := c.bearer()
	if err != nil {
		return err
	}
	return c.do(ctx, http.MethodPost, "/reviews/"+url.PathEscape(reviewID)+"/like", nil, tok, nil, nil)
}

type notificationPayload struct {
	ID          string `json:"id"`
	Type        string `json:"type"`
	ProductID   string `json:"productId"`
	ProductName string `json:"productName"`
	Message     string `json:"message"`
	Timestamp   string `json:"timestamp"`
	Read        bool   `json:"read"`
}

// Notifications fetches the signed-in user's product alerts.
func (c *Client) Notifications(ctx context.Context) ([]domain.Notification, error) {
	tok, err := c.bearer()
	if err != nil {
		return nil, err
	}
	var payloads []notificationPayload
	if err := c.do(ctx, http.MethodGet, "/notifications", nil, tok, nil, &payloads); err != nil {
		return nil, err
	}
	notifications := make([]domain.Notification, len(payloads))
	for i, p := range payloads {
		notifications[i] = domain.Notification{
			ID:          p.ID,
			Type:        domain.NotificationType(p.Type),
			ProductID:   p.ProductID,
			ProductName: p.ProductName,
			Message:     p.Message,
			Timestamp:   p.Timestamp,
			Read:        p.Read,
		}
	}
	return notifications, nil
}

// MarkNotificationRead marks a single notification as read.
func (c *Client) MarkNotificationRead(ctx context.Context, id string) error {
	tok, err := c.bearer()
	if err != nil {
		return err
	}
	return c.do(ctx, http.MethodPost, "/notifications/"+url.PathEscape(id)+"/read", nil, tok, nil, nil)
}

// MarkAllNotificationsRead marks every notification as read.
func (c *Client) MarkAllNotificationsRead(ctx context.Context) error {
	tok, err := c.bearer()
	if err != nil {
		return err
	}
	return c.do(ctx, http.MethodPost, "/notifications/read-all", nil, tok, nil, nil)
}
