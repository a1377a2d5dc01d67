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
)

// pgLockNotAvailable is the SQLSTATE raised when lock_timeout expires.
const pgLockNotAvailable = "55P03"

type PgxStockRepository struct {
	BaseRepository
	lockTimeout time.Duration
}

// newPgxStockRepository creates a new repository for branch stock rows.
func newPgxStockRepository(pool *pgxpool.Pool, lockTimeout time.Duration) portsrepo.StockRepositoryWithTx {
	return &PgxStockRepository{
		BaseRepository: BaseRepository{Pool: pool},
		lockTimeout:    lockTimeout,
	}
}

var _ portsrepo.StockRepositoryWithTx = (*PgxStockRepository)(nil)

const stockColumns = `product_id, branch_id, stock, alert_threshold, created_at, created_by, last_updated_at, last_updated_by`

func scanBranchStock(row pgx.Row) (*models.BranchStock, error) {
	var m models.BranchStock
	err := row.Scan(
		&m.ProductID,
		&m.BranchID,
		&m.Stock,
		&m.AlertThreshold,
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

// FindBranchStock retrieves the stock row for a (product, branch) pair.
func (r *PgxStockRepository) FindBranchStock(ctx context.Context, productID, branchID string) (*domain.BranchStock, error) {
	query := `SELECT ` + stockColumns + ` FROM branch_stocks WHERE product_id = $1 AND branch_id = $2;`

	m, err := scanBranchStock(r.Pool.QueryRow(ctx, query, productID, branchID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to find branch stock", err)
	}

	stock := mapping.ToDomainBranchStock(*m)
	return &stock, nil
}

// FindBranchStocksByProducts retrieves stock rows for several products in
// one branch, keyed by product ID.
func (r *PgxStockRepository) FindBranchStocksByProducts(ctx context.Context, productIDs []string, branchID string) (map[string]domain.BranchStock, error) {
	if len(productIDs) == 0 {
		return map[string]domain.BranchStock{}, nil
	}

	query := `SELECT ` + stockColumns + ` FROM branch_stocks WHERE product_id = ANY($1) AND branch_id = $2;`
	rows, err := r.Pool.Query(ctx, query, productIDs, branchID)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query branch stocks", err)
	}
	defer rows.Close()

	stocks := make(map[string]domain.BranchStock, len(productIDs))
	for rows.Next() {
		m, err := scanBranchStock(rows)
		if err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan branch stock row", err)
		}
		stocks[m.ProductID] = mapping.ToDomainBranchStock(*m)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "failed reading branch stock rows", err)
	}
	return stocks, nil
}

// UpsertBranchStock creates or replaces a stock row (catalog maintenance).
func (r *PgxStockRepository) UpsertBranchStock(ctx context.Context, stock domain.BranchStock) error {
	query := `
		INSERT INTO branch_stocks (` + stockColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		ON CONFLICT (product_id, branch_id) DO UPDATE
		SET stock = EXCLUDED.stock,
		    alert_threshold = EXCLUDED.alert_threshold,
		    last_updated_at = EXCLUDED.last_updated_at,
		    last_updated_by = EXCLUDED.last_updated_by;
	`
	_, err := r.Pool.Exec(ctx, query,
		stock.ProductID,
		stock.BranchID,
		stock.Stock,
		stock.AlertThreshold,
		stock.CreatedAt,
		stock.CreatedBy,
		stock.LastUpdatedAt,
		stock.LastUpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to upsert branch stock for product %s: %w", stock.ProductID, err)
	}
	return nil
}

// AdjustStockInTx locks the (product, branch) row FOR UPDATE inside the
// caller's transaction, applies delta clamped at zero and returns the row
// after the write together with the locked pre-adjustment stock level. A
// missing row is created on the fly with zero stock; the insert tolerates a
// concurrent creator, the subsequent lock settles who goes first.
func (r *PgxStockRepository) AdjustStockInTx(ctx context.Context, tx pgx.Tx, productID, branchID string, delta int64, userID string, now time.Time) (*domain.BranchStock, int64, error) {
	// lock_timeout is transaction-local; setting it again in the same tx is
	// harmless.
	if _, err := tx.Exec(ctx, fmt.Sprintf("SET LOCAL lock_timeout = '%dms'", r.lockTimeout.Milliseconds())); err != nil {
		return nil, 0, apperrors.NewAppError(500, "failed to set lock timeout", err)
	}

	lockQuery := `SELECT ` + stockColumns + ` FROM branch_stocks WHERE product_id = $1 AND branch_id = $2 FOR UPDATE;`
	m, err := scanBranchStock(tx.QueryRow(ctx, lockQuery, productID, branchID))
	if err != nil {
		if !errors.Is(err, pgx.ErrNoRows) {
			var pgErr *pgconn.PgError
			if errors.As(err, &pgErr) && pgErr.Code == pgLockNotAvailable {
				return nil, 0, fmt.Errorf("%w: stock row for product %s at branch %s", apperrors.ErrStockLockTimeout, productID, branchID)
			}
			return nil, 0, apperrors.NewAppError(500, "failed to lock branch stock for product "+productID, err)
		}

		insertQuery := `
			INSERT INTO branch_stocks (` + stockColumns + `)
			VALUES ($1, $2, 0, 0, $3, $4, $3, $4)
			ON CONFLICT (product_id, branch_id) DO NOTHING;
		`
		if _, err := tx.Exec(ctx, insertQuery, productID, branchID, now, userID); err != nil {
			return nil, 0, apperrors.NewAppError(500, "failed to create branch stock row for product "+productID, err)
		}

		m, err = scanBranchStock(tx.QueryRow(ctx, lockQuery, productID, branchID))
		if err != nil {
			var pgErr *pgconn.PgError
			if errors.As(err, &pgErr) && pgErr.Code == pgLockNotAvailable {
				return nil, 0, fmt.Errorf("%w: stock row for product %s at branch %s", apperrors.ErrStockLockTimeout, productID, branchID)
			}
			return nil, 0, apperrors.NewAppError(500, "failed to lock branch stock for product "+productID, err)
		}
	}

	previousStock := m.Stock
	newStock := previousStock + delta
	if newStock < 0 {
		newStock = 0
	}

	updateQuery := `
		UPDATE branch_stocks
		SET stock = $3, last_updated_at = $4, last_updated_by = $5
		WHERE product_id = $1 AND branch_id = $2;
	`
	if _, err := tx.Exec(ctx, updateQuery, productID, branchID, newStock, now, userID); err != nil {
		return nil, 0, apperrors.NewAppError(500, "failed to update branch stock for product "+productID, err)
	}

	m.Stock = newStock
	m.LastUpdatedAt = now
	m.LastUpdatedBy = userID
	stock := mapping.ToDomainBranchStock(*m)
	return &stock, previousStock, nil
}
