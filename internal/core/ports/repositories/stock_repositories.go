package repositories

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/salescore/order_ledger_app/internal/core/domain"
)

// StockReader defines read operations for branch stock rows
type StockReader interface {
	// FindBranchStock retrieves the stock row for a (product, branch) pair.
	FindBranchStock(ctx context.Context, productID, branchID string) (*domain.BranchStock, error)

	// FindBranchStocksByProducts retrieves stock rows for several products in
	// one branch, keyed by product ID. Products without a row are absent.
	FindBranchStocksByProducts(ctx context.Context, productIDs []string, branchID string) (map[string]domain.BranchStock, error)
}

// StockWriter defines write operations for branch stock rows
type StockWriter interface {
	// UpsertBranchStock creates or replaces a stock row (catalog maintenance).
	UpsertBranchStock(ctx context.Context, stock domain.BranchStock) error

	// AdjustStockInTx locks the (product, branch) row FOR UPDATE inside the
	// caller's transaction, applies delta clamped at zero and returns the row
	// after the write together with the stock level read under the lock,
	// before the delta. A missing row is created on the fly with zero stock.
	// Lock acquisition failures surface apperrors.ErrStockLockTimeout.
	AdjustStockInTx(ctx context.Context, tx pgx.Tx, productID, branchID string, delta int64, userID string, now time.Time) (*domain.BranchStock, int64, error)
}

// StockRepositoryFacade combines all stock repository interfaces
type StockRepositoryFacade interface {
	StockReader
	StockWriter
}

// StockRepositoryWithTx extends StockRepositoryFacade with transaction capabilities
type StockRepositoryWithTx interface {
	StockRepositoryFacade
	TransactionManager
}
