package repositories

import (
	"context"

	"github.com/salescore/order_ledger_app/internal/core/domain"
)

// UserReader defines read operations for user data
type UserReader interface {
	// FindUserByID retrieves a user by ID.
	FindUserByID(ctx context.Context, userID string) (*domain.User, error)

	// ListAdminUserIDs retrieves the IDs of all users holding the admin role.
	ListAdminUserIDs(ctx context.Context) ([]string, error)
}

// NotificationWriter defines write operations for admin notifications
type NotificationWriter interface {
	// SaveNotifications persists a batch of notifications.
	SaveNotifications(ctx context.Context, notifications []domain.Notification) error
}

// NotificationReader defines read operations for admin notifications
type NotificationReader interface {
	// ListNotificationsByUser retrieves a user's notifications, newest first.
	ListNotificationsByUser(ctx context.Context, userID string, limit int) ([]domain.Notification, error)
}

// NotificationRepositoryFacade combines the notification interfaces
type NotificationRepositoryFacade interface {
	NotificationReader
	NotificationWriter
}
