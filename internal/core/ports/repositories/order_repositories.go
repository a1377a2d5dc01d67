package repositories

import (
	"context"

	"github.com/salescore/order_ledger_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// OrderReader defines read operations for order data
type OrderReader interface {
	// FindOrderByID retrieves an order header by ID.
	FindOrderByID(ctx context.Context, orderID string) (*domain.Order, error)

	// FindOrderWithLines retrieves an order with its line items, ordered by
	// position.
	FindOrderWithLines(ctx context.Context, orderID string) (*domain.Order, error)

	// ListOrders retrieves a paginated list of orders, newest first.
	ListOrders(ctx context.Context, limit int, nextToken *string) ([]domain.Order, *string, error)

	// FindWalletTransactionsByOrder retrieves the wallet entries linked to an
	// order.
	FindWalletTransactionsByOrder(ctx context.Context, orderID string) ([]domain.WalletTransaction, error)
}

// OrderWriter defines the atomic write operations of the order lifecycle.
// Each method runs a single database transaction covering the order rows,
// the stock adjustments and the wallet entries it is given; on error nothing
// is visible. Stock deltas are keyed by product ID and applied against the
// order's branch. The returned BranchStock slice holds the rows whose stock
// fell to or below their alert threshold during the write.
type OrderWriter interface {
	// SaveOrder persists a new order with its lines and side effects.
	SaveOrder(ctx context.Context, order domain.Order, lines []domain.OrderLine, stockDeltas map[string]int64, walletTxns []domain.WalletTransaction, balanceChanges map[string]decimal.Decimal) ([]domain.BranchStock, error)

	// UpdateOrder replaces an order's lines and header fields, applying net
	// stock deltas and appended wallet entries. expectedVersion guards
	// against concurrent edits: a mismatch yields
	// apperrors.ErrConcurrentModification.
	UpdateOrder(ctx context.Context, order domain.Order, lines []domain.OrderLine, stockDeltas map[string]int64, walletTxns []domain.WalletTransaction, balanceChanges map[string]decimal.Decimal, expectedVersion int64) ([]domain.BranchStock, error)

	// UpdateOrderPayment updates the payment fields of an order and appends
	// the wallet entry recording the payment, atomically.
	UpdateOrderPayment(ctx context.Context, order domain.Order, txn domain.WalletTransaction, balanceChanges map[string]decimal.Decimal, expectedVersion int64) error
}

// OrderRepositoryFacade combines all order repository interfaces
type OrderRepositoryFacade interface {
	OrderReader
	OrderWriter
}

// OrderRepositoryWithTx extends OrderRepositoryFacade with transaction capabilities
type OrderRepositoryWithTx interface {
	OrderRepositoryFacade
	TransactionManager
}
