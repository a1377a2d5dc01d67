package services

import (
	"context"

	"github.com/salescore/order_ledger_app/internal/core/domain"
)

// InventorySvcFacade manages per-branch stock levels.
type InventorySvcFacade interface {
	// AdjustStock applies a signed delta to a product's stock at a branch.
	// Stock never goes below zero; an over-decrement clamps at zero.
	AdjustStock(ctx context.Context, productID, branchID string, delta int64, actorID string) (*domain.BranchStock, error)

	GetStock(ctx context.Context, productID, branchID string) (*domain.BranchStock, error)
}
