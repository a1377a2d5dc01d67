package repositories

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/salescore/order_ledger_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// WalletReader defines read operations for wallet transaction data
type WalletReader interface {
	// FindWalletTransactionByID retrieves a wallet transaction by ID.
	FindWalletTransactionByID(ctx context.Context, transactionID string) (*domain.WalletTransaction, error)

	// ListWalletTransactionsByCustomer retrieves a paginated list of a
	// customer's wallet transactions, newest first, using token pagination.
	ListWalletTransactionsByCustomer(ctx context.Context, customerID string, limit int, nextToken *string) ([]domain.WalletTransaction, *string, error)

	// SumSignedAmounts returns the signed sum of all of a customer's wallet
	// transactions, computed from the transaction history itself.
	SumSignedAmounts(ctx context.Context, customerID string) (decimal.Decimal, error)
}

// WalletWriter defines write operations for wallet transaction data.
// Every write is atomic with the balance delta it implies: the customer rows
// named in balanceChanges are locked and adjusted in the same database
// transaction as the transaction-row write.
type WalletWriter interface {
	// SaveWalletTransaction inserts a transaction and applies balanceChanges.
	SaveWalletTransaction(ctx context.Context, txn domain.WalletTransaction, balanceChanges map[string]decimal.Decimal) error

	// UpdateWalletTransaction rewrites a transaction and applies balanceChanges
	// (which may span two customers when the transaction moved).
	UpdateWalletTransaction(ctx context.Context, txn domain.WalletTransaction, balanceChanges map[string]decimal.Decimal) error

	// DeleteWalletTransaction removes a transaction and applies balanceChanges.
	DeleteWalletTransaction(ctx context.Context, transactionID string, balanceChanges map[string]decimal.Decimal, userID string, now time.Time) error

	// SaveWalletTransactionsInTx inserts transaction rows within the caller's
	// transaction. Balance deltas are the caller's responsibility.
	SaveWalletTransactionsInTx(ctx context.Context, tx pgx.Tx, txns []domain.WalletTransaction) error
}

// WalletRepositoryFacade combines all wallet repository interfaces
type WalletRepositoryFacade interface {
	WalletReader
	WalletWriter
}

// WalletRepositoryWithTx extends WalletRepositoryFacade with transaction capabilities
type WalletRepositoryWithTx interface {
	WalletRepositoryFacade
	TransactionManager
}
