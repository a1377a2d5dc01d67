package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/salescore/order_ledger_app/internal/core/domain"
	portsrepo "github.com/salescore/order_ledger_app/internal/core/ports/repositories"
	"github.com/salescore/order_ledger_app/internal/middleware"
	"github.com/salescore/order_ledger_app/internal/utils/analytics"
)

// NotificationService fans alerts out to admin users and mirrors them to
// the analytics sink.
type NotificationService struct {
	userRepo      portsrepo.UserReader
	notifRepo     portsrepo.NotificationRepositoryFacade
	posthogClient *analytics.PosthogClientWrapper
}

// NewNotificationService creates a new NotificationService.
func NewNotificationService(userRepo portsrepo.UserReader, notifRepo portsrepo.NotificationRepositoryFacade, posthogClient *analytics.PosthogClientWrapper) *NotificationService {
	return &NotificationService{
		userRepo:      userRepo,
		notifRepo:     notifRepo,
		posthogClient: posthogClient,
	}
}

// NotifyLowStock records a low-stock alert for every admin user. Failures
// are logged, never propagated; the write that detected the condition has
// already committed.
func (s *NotificationService) NotifyLowStock(ctx context.Context, stocks []domain.BranchStock, actorID string) {
	if len(stocks) == 0 {
		return
	}
	logger := middleware.GetLoggerFromCtx(ctx)

	adminIDs, err := s.userRepo.ListAdminUserIDs(ctx)
	if err != nil {
		logger.Error("Failed to list admin users for low-stock alert", slog.String("error", err.Error()))
		return
	}

	now := time.Now()
	notifications := make([]domain.Notification, 0, len(stocks)*len(adminIDs))
	for _, stock := range stocks {
		productID := stock.ProductID
		branchID := stock.BranchID
		message := fmt.Sprintf("product %s is down to %d units at branch %s", productID, stock.Stock, branchID)
		for _, adminID := range adminIDs {
			notifications = append(notifications, domain.Notification{
				NotificationID: uuid.NewString(),
				UserID:         adminID,
				Kind:           domain.NotifyLowStock,
				Message:        message,
				ProductID:      &productID,
				BranchID:       &branchID,
				AuditFields: domain.AuditFields{
					CreatedAt:     now,
					CreatedBy:     actorID,
					LastUpdatedAt: now,
					LastUpdatedBy: actorID,
				},
			})
		}

		s.posthogClient.Enqueue(actorID, "low_stock_alert", map[string]any{
			"product_id": stock.ProductID,
			"branch_id":  stock.BranchID,
			"stock":      stock.Stock,
			"threshold":  stock.AlertThreshold,
		})
	}

	if len(notifications) == 0 {
		return
	}
	if err := s.notifRepo.SaveNotifications(ctx, notifications); err != nil {
		logger.Error("Failed to save low-stock notifications", slog.String("error", err.Error()))
	}
}

// ListNotifications returns a user's notifications, newest first.
func (s *NotificationService) ListNotifications(ctx context.Context, userID string, limit int) ([]domain.Notification, error) {
	notifications, err := s.notifRepo.ListNotificationsByUser(ctx, userID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list notifications in service: %w", err)
	}
	return notifications, nil
}
