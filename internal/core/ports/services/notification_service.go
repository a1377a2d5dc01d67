package services

import (
	"context"

	"github.com/salescore/order_ledger_app/internal/core/domain"
)

// NotificationSvcFacade fans alerts out to admin users.
type NotificationSvcFacade interface {
	// NotifyLowStock records a low-stock alert for every admin user and
	// emits an analytics event. Failures are logged, never propagated;
	// alerting must not fail the write that triggered it.
	NotifyLowStock(ctx context.Context, stocks []domain.BranchStock, actorID string)

	ListNotifications(ctx context.Context, userID string, limit int) ([]domain.Notification, error)
}
