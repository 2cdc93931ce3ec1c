package app

import (
	"context"
	"errors"
	"fmt"

	"woodshop/internal/domain"
)

// NotificationService encapsulates the product-alert use cases.
type NotificationService struct {
	api domain.NotificationAPI
}

// NewNotificationService creates a NotificationService backed by the given
// notification port.
func NewNotificationService(api domain.NotificationAPI) *NotificationService {
	return &NotificationService{api: api}
}

// List returns the signed-in user's notifications.
func (s *NotificationService) List(ctx context.Context) ([]domain.Notification, error) {
	notifications, err := s.api.Notifications(ctx)
	if err != nil {
		return nil, fmt.Errorf("load notifications: %w", err)
	}
	return notifications, nil
}

// MarkRead marks a single notification as read.
func (s *NotificationService) MarkRead(ctx context.Context, id string) error {
	if id == "" {
		return errors.New("notification id is required")
	}
	if err := s.api.MarkNotificationRead(ctx, id); err != nil {
		return fmt.Errorf("mark notification %s read: %w", id, err)
	}
	return nil
}

// MarkAllRead marks every notification as read.
func (s *NotificationService) MarkAllRead(ctx context.Context) error {
	if err := s.api.MarkAllNotificationsRead(ctx); err != nil {
		return fmt.Errorf("mark all notifications read: %w", err)
	}
	return nil
}

// UnreadCount counts the notifications not yet read, for the bell badge.
func UnreadCount(notifications []domain.Notification) int {
	n := 0
	for _, notification := range notifications {
		if !notification.Read {
			n++
		}
	}
	return n
}
