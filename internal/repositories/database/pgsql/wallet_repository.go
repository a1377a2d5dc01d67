package pgsql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/salescore/order_ledger_app/internal/apperrors"
	"github.com/salescore/order_ledger_app/internal/core/domain"
	portsrepo "github.com/salescore/order_ledger_app/internal/core/ports/repositories"
	"github.com/salescore/order_ledger_app/internal/models"
	"github.com/salescore/order_ledger_app/internal/utils/mapping"
	"github.com/salescore/order_ledger_app/internal/utils/pagination"
	"github.com/shopspring/decimal"
)

type PgxWalletRepository struct {
	BaseRepository
	customerRepo portsrepo.CustomerRepositoryFacade
}

// newPgxWalletRepository creates a new repository for wallet transactions.
func newPgxWalletRepository(pool *pgxpool.Pool, customerRepo portsrepo.CustomerRepositoryFacade) portsrepo.WalletRepositoryWithTx {
	return &PgxWalletRepository{
		BaseRepository: BaseRepository{Pool: pool},
		customerRepo:   customerRepo,
	}
}

var _ portsrepo.WalletRepositoryWithTx = (*PgxWalletRepository)(nil)

const walletColumns = `transaction_id, customer_id, order_id, direction, amount, note, created_at, created_by, last_updated_at, last_updated_by`

func scanWalletTransaction(row pgx.Row) (*models.WalletTransaction, error) {
	var m models.WalletTransaction
	err := row.Scan(
		&m.TransactionID,
		&m.CustomerID,
		&m.OrderID,
		&m.Direction,
		&m.Amount,
		&m.Note,
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

// SaveWalletTransaction inserts a transaction and applies balanceChanges to
// the affected customers in one database transaction.
func (r *PgxWalletRepository) SaveWalletTransaction(ctx context.Context, txn domain.WalletTransaction, balanceChanges map[string]decimal.Decimal) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	if err := r.lockAndApplyBalances(ctx, tx, balanceChanges, txn.CreatedBy, txn.CreatedAt); err != nil {
		return err
	}
	if err := r.SaveWalletTransactionsInTx(ctx, tx, []domain.WalletTransaction{txn}); err != nil {
		return err
	}

	return r.Commit(ctx, tx)
}

// UpdateWalletTransaction rewrites a transaction and applies balanceChanges,
// which may span two customers when the transaction moved.
func (r *PgxWalletRepository) UpdateWalletTransaction(ctx context.Context, txn domain.WalletTransaction, balanceChanges map[string]decimal.Decimal) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	if err := r.lockAndApplyBalances(ctx, tx, balanceChanges, txn.LastUpdatedBy, txn.LastUpdatedAt); err != nil {
		return err
	}

	m := mapping.ToModelWalletTransaction(txn)
	query := `
		UPDATE wallet_transactions
		SET customer_id = $2, order_id = $3, direction = $4, amount = $5, note = $6,
		    last_updated_at = $7, last_updated_by = $8
		WHERE transaction_id = $1;
	`
	tag, err := tx.Exec(ctx, query,
		m.TransactionID,
		m.CustomerID,
		m.OrderID,
		m.Direction,
		m.Amount,
		m.Note,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		return apperrors.NewAppError(500, "failed to update wallet transaction "+m.TransactionID, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: wallet transaction %s", apperrors.ErrNotFound, m.TransactionID)
	}

	return r.Commit(ctx, tx)
}

// DeleteWalletTransaction removes a transaction and applies balanceChanges.
func (r *PgxWalletRepository) DeleteWalletTransaction(ctx context.Context, transactionID string, balanceChanges map[string]decimal.Decimal, userID string, now time.Time) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	if err := r.lockAndApplyBalances(ctx, tx, balanceChanges, userID, now); err != nil {
		return err
	}

	tag, err := tx.Exec(ctx, `DELETE FROM wallet_transactions WHERE transaction_id = $1;`, transactionID)
	if err != nil {
		return apperrors.NewAppError(500, "failed to delete wallet transaction "+transactionID, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: wallet transaction %s", apperrors.ErrNotFound, transactionID)
	}

	return r.Commit(ctx, tx)
}

// SaveWalletTransactionsInTx inserts transaction rows within the caller's
// transaction. Balance deltas are the caller's responsibility.
func (r *PgxWalletRepository) SaveWalletTransactionsInTx(ctx context.Context, tx pgx.Tx, txns []domain.WalletTransaction) error {
	if len(txns) == 0 {
		return nil
	}

	batch := &pgx.Batch{}
	query := `
		INSERT INTO wallet_transactions (` + walletColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10);
	`
	for _, txn := range txns {
		m := mapping.ToModelWalletTransaction(txn)
		batch.Queue(query,
			m.TransactionID,
			m.CustomerID,
			m.OrderID,
			m.Direction,
			m.Amount,
			m.Note,
			m.CreatedAt,
			m.CreatedBy,
			m.LastUpdatedAt,
			m.LastUpdatedBy,
		)
	}

	br := tx.SendBatch(ctx, batch)
	if err := br.Close(); err != nil {
		return apperrors.NewAppError(500, "failed to insert wallet transactions", err)
	}
	return nil
}

// FindWalletTransactionByID retrieves a wallet transaction by ID.
func (r *PgxWalletRepository) FindWalletTransactionByID(ctx context.Context, transactionID string) (*domain.WalletTransaction, error) {
	query := `SELECT ` + walletColumns + ` FROM wallet_transactions WHERE transaction_id = $1;`

	m, err := scanWalletTransaction(r.Pool.QueryRow(ctx, query, transactionID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to find wallet transaction "+transactionID, err)
	}

	txn := mapping.ToDomainWalletTransaction(*m)
	return &txn, nil
}

// ListWalletTransactionsByCustomer retrieves a page of a customer's wallet
// transactions, newest first, using keyset pagination.
func (r *PgxWalletRepository) ListWalletTransactionsByCustomer(ctx context.Context, customerID string, limit int, nextToken *string) ([]domain.WalletTransaction, *string, error) {
	if limit <= 0 {
		limit = 20
	}

	query := `SELECT ` + walletColumns + ` FROM wallet_transactions WHERE customer_id = $1`
	args := []any{customerID}
	if nextToken != nil && *nextToken != "" {
		createdAt, id, err := pagination.DecodeToken(*nextToken)
		if err != nil {
			return nil, nil, fmt.Errorf("%w: %s", apperrors.ErrValidation, err.Error())
		}
		query += ` AND (created_at, transaction_id) < ($2, $3)`
		args = append(args, createdAt, id)
	}
	query += fmt.Sprintf(` ORDER BY created_at DESC, transaction_id DESC LIMIT %d;`, limit+1)

	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, nil, apperrors.NewAppError(500, "failed to query wallet transactions for customer "+customerID, err)
	}
	defer rows.Close()

	modelTxns := make([]models.WalletTransaction, 0, limit+1)
	for rows.Next() {
		m, err := scanWalletTransaction(rows)
		if err != nil {
			return nil, nil, apperrors.NewAppError(500, "failed to scan wallet transaction row", err)
		}
		modelTxns = append(modelTxns, *m)
	}
	if err := rows.Err(); err != nil {
		return nil, nil, apperrors.NewAppError(500, "failed reading wallet transaction rows", err)
	}

	var token *string
	if len(modelTxns) > limit {
		modelTxns = modelTxns[:limit]
		last := modelTxns[limit-1]
		t := pagination.EncodeToken(last.CreatedAt, last.TransactionID)
		token = &t
	}

	return mapping.ToDomainWalletTransactionSlice(modelTxns), token, nil
}

// SumSignedAmounts returns the signed sum of a customer's wallet history,
// computed from the transaction rows themselves.
func (r *PgxWalletRepository) SumSignedAmounts(ctx context.Context, customerID string) (decimal.Decimal, error) {
	query := `
		SELECT COALESCE(SUM(CASE WHEN direction = 'DEBIT' THEN -amount ELSE amount END), 0)
		FROM wallet_transactions
		WHERE customer_id = $1;
	`
	var sum decimal.Decimal
	if err := r.Pool.QueryRow(ctx, query, customerID).Scan(&sum); err != nil {
		return decimal.Decimal{}, apperrors.NewAppError(500, "failed to sum wallet transactions for customer "+customerID, err)
	}
	return sum, nil
}

// lockAndApplyBalances locks the affected customer rows and applies the
// signed deltas within tx. Locking first keeps the balance invariant under
// concurrent writers.
func (r *PgxWalletRepository) lockAndApplyBalances(ctx context.Context, tx pgx.Tx, balanceChanges map[string]decimal.Decimal, userID string, now time.Time) error {
	if len(balanceChanges) == 0 {
		return nil
	}
	customerIDs := make([]string, 0, len(balanceChanges))
	for customerID := range balanceChanges {
		customerIDs = append(customerIDs, customerID)
	}
	if _, err := r.customerRepo.FindCustomersByIDsForUpdate(ctx, tx, customerIDs); err != nil {
		return apperrors.NewAppError(500, "failed to lock customers for wallet write", err)
	}
	if err := r.customerRepo.ApplyWalletDeltasInTx(ctx, tx, balanceChanges, userID, now); err != nil {
		return apperrors.NewAppError(500, "failed to apply wallet balance changes", err)
	}
	return nil
}
