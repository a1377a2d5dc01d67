package pgsql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/salescore/order_ledger_app/internal/apperrors"
	"github.com/salescore/order_ledger_app/internal/core/domain"
	portsrepo "github.com/salescore/order_ledger_app/internal/core/ports/repositories"
	"github.com/salescore/order_ledger_app/internal/models"
	"github.com/salescore/order_ledger_app/internal/utils/mapping"
	"github.com/shopspring/decimal"
)

type PgxCustomerRepository struct {
	pool *pgxpool.Pool
}

// newPgxCustomerRepository creates a new repository for customer data.
func newPgxCustomerRepository(pool *pgxpool.Pool) portsrepo.CustomerRepositoryFacade {
	return &PgxCustomerRepository{pool: pool}
}

var _ portsrepo.CustomerRepositoryFacade = (*PgxCustomerRepository)(nil)

const customerColumns = `customer_id, name, phone, wallet_balance, created_at, created_by, last_updated_at, last_updated_by`

func scanCustomer(row pgx.Row) (*models.Customer, error) {
	var m models.Customer
	err := row.Scan(
		&m.CustomerID,
		&m.Name,
		&m.Phone,
		&m.WalletBalance,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	if err != nil {
		return nil, err
	}
	return &m, nil
}

// SaveCustomer inserts a new customer.
func (r *PgxCustomerRepository) SaveCustomer(ctx context.Context, customer domain.Customer) error {
	query := `
		INSERT INTO customers (` + customerColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8);
	`
	_, err := r.pool.Exec(ctx, query,
		customer.CustomerID,
		customer.Name,
		customer.Phone,
		customer.WalletBalance,
		customer.CreatedAt,
		customer.CreatedBy,
		customer.LastUpdatedAt,
		customer.LastUpdatedBy,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return fmt.Errorf("%w: customer with ID %s already exists", apperrors.ErrDuplicate, customer.CustomerID)
		}
		return fmt.Errorf("failed to save customer %s: %w", customer.CustomerID, err)
	}
	return nil
}

// FindCustomerByID retrieves a customer by ID.
func (r *PgxCustomerRepository) FindCustomerByID(ctx context.Context, customerID string) (*domain.Customer, error) {
	query := `SELECT ` + customerColumns + ` FROM customers WHERE customer_id = $1;`

	m, err := scanCustomer(r.pool.QueryRow(ctx, query, customerID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to find customer by ID "+customerID, err)
	}

	customer := mapping.ToDomainCustomer(*m)
	return &customer, nil
}

// FindCustomersByIDsForUpdate locks the customer rows FOR UPDATE within the
// caller's transaction. All requested IDs must exist.
func (r *PgxCustomerRepository) FindCustomersByIDsForUpdate(ctx context.Context, tx pgx.Tx, customerIDs []string) (map[string]domain.Customer, error) {
	if len(customerIDs) == 0 {
		return map[string]domain.Customer{}, nil
	}

	query := `SELECT ` + customerColumns + ` FROM customers WHERE customer_id = ANY($1) ORDER BY customer_id FOR UPDATE;`
	rows, err := tx.Query(ctx, query, customerIDs)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to lock customer rows", err)
	}
	defer rows.Close()

	customers := make(map[string]domain.Customer, len(customerIDs))
	for rows.Next() {
		m, err := scanCustomer(rows)
		if err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan locked customer row", err)
		}
		customers[m.CustomerID] = mapping.ToDomainCustomer(*m)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "failed reading locked customer rows", err)
	}

	for _, id := range customerIDs {
		if _, ok := customers[id]; !ok {
			return nil, fmt.Errorf("%w: customer %s", apperrors.ErrNotFound, id)
		}
	}
	return customers, nil
}

// ApplyWalletDeltasInTx applies signed balance deltas to the locked customer
// rows within the caller's transaction.
func (r *PgxCustomerRepository) ApplyWalletDeltasInTx(ctx context.Context, tx pgx.Tx, balanceChanges map[string]decimal.Decimal, userID string, now time.Time) error {
	if len(balanceChanges) == 0 {
		return nil
	}

	batch := &pgx.Batch{}
	query := `
		UPDATE customers
		SET wallet_balance = wallet_balance + $2, last_updated_at = $3, last_updated_by = $4
		WHERE customer_id = $1;
	`
	for customerID, delta := range balanceChanges {
		if delta.IsZero() {
			continue
		}
		batch.Queue(query, customerID, delta, now, userID)
	}
	if batch.Len() == 0 {
		return nil
	}

	br := tx.SendBatch(ctx, batch)
	if err := br.Close(); err != nil {
		return apperrors.NewAppError(500, "failed to apply wallet balance deltas", err)
	}
	return nil
}
