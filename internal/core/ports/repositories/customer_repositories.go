package repositories

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/salescore/order_ledger_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CustomerReader defines read operations for customer data
type CustomerReader interface {
	// FindCustomerByID retrieves a customer by ID.
	FindCustomerByID(ctx context.Context, customerID string) (*domain.Customer, error)
}

// CustomerWriter defines write operations for customer data
type CustomerWriter interface {
	// SaveCustomer persists a new customer.
	SaveCustomer(ctx context.Context, customer domain.Customer) error

	// FindCustomersByIDsForUpdate locks the customer rows FOR UPDATE within
	// the caller's transaction. All requested IDs must exist.
	FindCustomersByIDsForUpdate(ctx context.Context, tx pgx.Tx, customerIDs []string) (map[string]domain.Customer, error)

	// ApplyWalletDeltasInTx applies signed balance deltas to the locked
	// customer rows within the caller's transaction.
	ApplyWalletDeltasInTx(ctx context.Context, tx pgx.Tx, balanceChanges map[string]decimal.Decimal, userID string, now time.Time) error
}

// CustomerRepositoryFacade combines all customer repository interfaces
type CustomerRepositoryFacade interface {
	CustomerReader
	CustomerWriter
}
