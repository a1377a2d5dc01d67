package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/salescore/order_ledger_app/internal/core/domain"
	portsrepo "github.com/salescore/order_ledger_app/internal/core/ports/repositories"
	portssvc "github.com/salescore/order_ledger_app/internal/core/ports/services"
	"github.com/salescore/order_ledger_app/internal/middleware"
)

// InventoryService manages per-branch stock levels outside the order flow,
// e.g. goods received or manual corrections.
type InventoryService struct {
	txManager       portsrepo.TransactionManager
	stockRepo       portsrepo.StockRepositoryWithTx
	notificationSvc portssvc.NotificationSvcFacade
}

// NewInventoryService creates a new InventoryService.
func NewInventoryService(txManager portsrepo.TransactionManager, stockRepo portsrepo.StockRepositoryWithTx, notificationSvc portssvc.NotificationSvcFacade) *InventoryService {
	return &InventoryService{
		txManager:       txManager,
		stockRepo:       stockRepo,
		notificationSvc: notificationSvc,
	}
}

// AdjustStock applies a signed delta to a product's stock at a branch.
// Stock never goes below zero; an over-decrement clamps at zero and the
// discarded remainder is logged.
func (s *InventoryService) AdjustStock(ctx context.Context, productID, branchID string, delta int64, actorID string) (*domain.BranchStock, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	tx, err := s.txManager.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to begin stock adjustment transaction: %w", err)
	}
	defer s.txManager.Rollback(ctx, tx)

	stock, previousStock, err := s.stockRepo.AdjustStockInTx(ctx, tx, productID, branchID, delta, actorID, time.Now())
	if err != nil {
		return nil, err
	}

	if err := s.txManager.Commit(ctx, tx); err != nil {
		return nil, fmt.Errorf("failed to commit stock adjustment: %w", err)
	}

	// previousStock was read under the row lock, so the clamp decision
	// cannot race with a concurrent adjustment.
	if delta < 0 && previousStock+delta < 0 {
		logger.Warn("Stock decrement clamped at zero",
			slog.String("product_id", productID),
			slog.String("branch_id", branchID),
			slog.Int64("previous_stock", previousStock),
			slog.Int64("requested_delta", delta),
		)
	}

	if stock.AlertThreshold > 0 && stock.Stock <= stock.AlertThreshold {
		s.notificationSvc.NotifyLowStock(ctx, []domain.BranchStock{*stock}, actorID)
	}

	return stock, nil
}

// GetStock returns the stock row for a product at a branch.
func (s *InventoryService) GetStock(ctx context.Context, productID, branchID string) (*domain.BranchStock, error) {
	stock, err := s.stockRepo.FindBranchStock(ctx, productID, branchID)
	if err != nil {
		return nil, fmt.Errorf("failed to get branch stock in service: %w", err)
	}
	return stock, nil
}
