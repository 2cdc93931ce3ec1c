package domain

import "context"

// NotificationType classifies a product notification.
type NotificationType string

// Notification types emitted by the backend.
const (
	NotificationBackInStock NotificationType = "back_in_stock"
	NotificationPriceDrop   NotificationType = "price_drop"
	NotificationNewProduct  NotificationType = "new_product"
)

// Notification is a product alert for the signed-in user. Timestamp is the
// backend's display string, passed through untouched.
type Notification struct {
	ID          string
	Type        NotificationType
	ProductID   string
	ProductName string
	Message     string
	Timestamp   string
	Read        bool
}

// NotificationAPI defines the port for the signed-in user's notifications.
type NotificationAPI interface {
	Notifications(ctx context.Context) ([]Notification, error)
	MarkNotificationRead(ctx context.Context, id string) error
	MarkAllNotificationsRead(ctx context.Context) error
}
