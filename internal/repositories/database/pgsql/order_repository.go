package pgsql

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/salescore/order_ledger_app/internal/apperrors"
	"github.com/salescore/order_ledger_app/internal/core/domain"
	portsrepo "github.com/salescore/order_ledger_app/internal/core/ports/repositories"
	"github.com/salescore/order_ledger_app/internal/models"
	"github.com/salescore/order_ledger_app/internal/utils/mapping"
	"github.com/salescore/order_ledger_app/internal/utils/pagination"
	"github.com/shopspring/decimal"
)

type PgxOrderRepository struct {
	BaseRepository
	stockRepo    portsrepo.StockRepositoryWithTx
	customerRepo portsrepo.CustomerRepositoryFacade
	walletRepo   portsrepo.WalletRepositoryWithTx
}

// newPgxOrderRepository creates a new repository for orders. It composes the
// stock, customer and wallet repositories so a single database transaction
// can cover every side effect of an order write.
func newPgxOrderRepository(pool *pgxpool.Pool, stockRepo portsrepo.StockRepositoryWithTx, customerRepo portsrepo.CustomerRepositoryFacade, walletRepo portsrepo.WalletRepositoryWithTx) portsrepo.OrderRepositoryWithTx {
	return &PgxOrderRepository{
		BaseRepository: BaseRepository{Pool: pool},
		stockRepo:      stockRepo,
		customerRepo:   customerRepo,
		walletRepo:     walletRepo,
	}
}

var _ portsrepo.OrderRepositoryWithTx = (*PgxOrderRepository)(nil)

const orderColumns = `order_id, code, branch_id, customer_id, seller_id, order_type, status, payment_status, currency_code, exchange_rate, subtotal, discount, shipping, extra_fees, total, paid_amount, version, created_at, created_by, last_updated_at, last_updated_by`

const orderLineColumns = `line_id, order_id, product_id, description, quantity, unit_price, line_total, position, created_at, created_by, last_updated_at, last_updated_by`

func scanOrder(row pgx.Row) (*models.Order, error) {
	var m models.Order
	err := row.Scan(
		&m.OrderID,
		&m.Code,
		&m.BranchID,
		&m.CustomerID,
		&m.SellerID,
		&m.OrderType,
		&m.Status,
		&m.PaymentStatus,
		&m.CurrencyCode,
		&m.ExchangeRate,
		&m.Subtotal,
		&m.Discount,
		&m.Shipping,
		&m.ExtraFees,
		&m.Total,
		&m.PaidAmount,
		&m.Version,
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

func scanOrderLine(row pgx.Row) (*models.OrderLine, error) {
	var m models.OrderLine
	err := row.Scan(
		&m.LineID,
		&m.OrderID,
		&m.ProductID,
		&m.Description,
		&m.Quantity,
		&m.UnitPrice,
		&m.LineTotal,
		&m.Position,
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

// SaveOrder persists a new order with its lines, applies the stock deltas
// against the order's branch, appends the wallet entries and adjusts the
// affected customer balances, all in one database transaction.
func (r *PgxOrderRepository) SaveOrder(ctx context.Context, order domain.Order, lines []domain.OrderLine, stockDeltas map[string]int64, walletTxns []domain.WalletTransaction, balanceChanges map[string]decimal.Decimal) ([]domain.BranchStock, error) {
	tx, err := r.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer r.Rollback(ctx, tx)

	m := mapping.ToModelOrder(order)
	query := `
		INSERT INTO orders (` + orderColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19, $20, $21);
	`
	_, err = tx.Exec(ctx, query,
		m.OrderID, m.Code, m.BranchID, m.CustomerID, m.SellerID,
		m.OrderType, m.Status, m.PaymentStatus, m.CurrencyCode, m.ExchangeRate,
		m.Subtotal, m.Discount, m.Shipping, m.ExtraFees, m.Total, m.PaidAmount,
		m.Version, m.CreatedAt, m.CreatedBy, m.LastUpdatedAt, m.LastUpdatedBy,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return nil, fmt.Errorf("%w: order code %s already exists", apperrors.ErrDuplicate, m.Code)
		}
		return nil, apperrors.NewAppError(500, "failed to insert order "+m.OrderID, err)
	}

	if err := r.insertLinesInTx(ctx, tx, lines); err != nil {
		return nil, err
	}

	lowStocks, err := r.applyStockDeltasInTx(ctx, tx, order.BranchID, stockDeltas, order.CreatedBy, order.CreatedAt)
	if err != nil {
		return nil, err
	}

	if err := r.applyWalletWritesInTx(ctx, tx, walletTxns, balanceChanges, order.CreatedBy, order.CreatedAt); err != nil {
		return nil, err
	}

	if err := r.Commit(ctx, tx); err != nil {
		return nil, err
	}
	return lowStocks, nil
}

// UpdateOrder replaces an order's header and lines. The version guard in
// the UPDATE makes concurrent edits lose cleanly.
func (r *PgxOrderRepository) UpdateOrder(ctx context.Context, order domain.Order, lines []domain.OrderLine, stockDeltas map[string]int64, walletTxns []domain.WalletTransaction, balanceChanges map[string]decimal.Decimal, expectedVersion int64) ([]domain.BranchStock, error) {
	tx, err := r.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer r.Rollback(ctx, tx)

	if err := r.updateOrderHeaderInTx(ctx, tx, order, expectedVersion); err != nil {
		return nil, err
	}

	if _, err := tx.Exec(ctx, `DELETE FROM order_lines WHERE order_id = $1;`, order.OrderID); err != nil {
		return nil, apperrors.NewAppError(500, "failed to delete order lines for order "+order.OrderID, err)
	}
	if err := r.insertLinesInTx(ctx, tx, lines); err != nil {
		return nil, err
	}

	lowStocks, err := r.applyStockDeltasInTx(ctx, tx, order.BranchID, stockDeltas, order.LastUpdatedBy, order.LastUpdatedAt)
	if err != nil {
		return nil, err
	}

	if err := r.applyWalletWritesInTx(ctx, tx, walletTxns, balanceChanges, order.LastUpdatedBy, order.LastUpdatedAt); err != nil {
		return nil, err
	}

	if err := r.Commit(ctx, tx); err != nil {
		return nil, err
	}
	return lowStocks, nil
}

// UpdateOrderPayment updates the payment fields of an order and appends the
// wallet entry recording the payment, atomically.
func (r *PgxOrderRepository) UpdateOrderPayment(ctx context.Context, order domain.Order, txn domain.WalletTransaction, balanceChanges map[string]decimal.Decimal, expectedVersion int64) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	if err := r.updateOrderHeaderInTx(ctx, tx, order, expectedVersion); err != nil {
		return err
	}

	if err := r.applyWalletWritesInTx(ctx, tx, []domain.WalletTransaction{txn}, balanceChanges, order.LastUpdatedBy, order.LastUpdatedAt); err != nil {
		return err
	}

	return r.Commit(ctx, tx)
}

// FindOrderByID retrieves an order header by ID.
func (r *PgxOrderRepository) FindOrderByID(ctx context.Context, orderID string) (*domain.Order, error) {
	query := `SELECT ` + orderColumns + ` FROM orders WHERE order_id = $1;`

	m, err := scanOrder(r.Pool.QueryRow(ctx, query, orderID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to find order by ID "+orderID, err)
	}

	order := mapping.ToDomainOrder(*m)
	return &order, nil
}

// FindOrderWithLines retrieves an order with its line items in position
// order.
func (r *PgxOrderRepository) FindOrderWithLines(ctx context.Context, orderID string) (*domain.Order, error) {
	order, err := r.FindOrderByID(ctx, orderID)
	if err != nil {
		return nil, err
	}

	query := `SELECT ` + orderLineColumns + ` FROM order_lines WHERE order_id = $1 ORDER BY position;`
	rows, err := r.Pool.Query(ctx, query, orderID)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query order lines for order "+orderID, err)
	}
	defer rows.Close()

	modelLines := []models.OrderLine{}
	for rows.Next() {
		m, err := scanOrderLine(rows)
		if err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan order line row", err)
		}
		modelLines = append(modelLines, *m)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "failed reading order line rows", err)
	}

	order.Lines = mapping.ToDomainOrderLineSlice(modelLines)
	return order, nil
}

// ListOrders retrieves a page of order headers, newest first, using keyset
// pagination.
func (r *PgxOrderRepository) ListOrders(ctx context.Context, limit int, nextToken *string) ([]domain.Order, *string, error) {
	if limit <= 0 {
		limit = 20
	}

	query := `SELECT ` + orderColumns + ` FROM orders`
	args := []any{}
	if nextToken != nil && *nextToken != "" {
		createdAt, id, err := pagination.DecodeToken(*nextToken)
		if err != nil {
			return nil, nil, fmt.Errorf("%w: %s", apperrors.ErrValidation, err.Error())
		}
		query += ` WHERE (created_at, order_id) < ($1, $2)`
		args = append(args, createdAt, id)
	}
	query += fmt.Sprintf(` ORDER BY created_at DESC, order_id DESC LIMIT %d;`, limit+1)

	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, nil, apperrors.NewAppError(500, "failed to query orders", err)
	}
	defer rows.Close()

	modelOrders := make([]models.Order, 0, limit+1)
	for rows.Next() {
		m, err := scanOrder(rows)
		if err != nil {
			return nil, nil, apperrors.NewAppError(500, "failed to scan order row", err)
		}
		modelOrders = append(modelOrders, *m)
	}
	if err := rows.Err(); err != nil {
		return nil, nil, apperrors.NewAppError(500, "failed reading order rows", err)
	}

	var token *string
	if len(modelOrders) > limit {
		modelOrders = modelOrders[:limit]
		last := modelOrders[limit-1]
		t := pagination.EncodeToken(last.CreatedAt, last.OrderID)
		token = &t
	}

	orders := make([]domain.Order, len(modelOrders))
	for i, m := range modelOrders {
		orders[i] = mapping.ToDomainOrder(m)
	}
	return orders, token, nil
}

// FindWalletTransactionsByOrder retrieves the wallet entries linked to an
// order, oldest first.
func (r *PgxOrderRepository) FindWalletTransactionsByOrder(ctx context.Context, orderID string) ([]domain.WalletTransaction, error) {
	query := `SELECT ` + walletColumns + ` FROM wallet_transactions WHERE order_id = $1 ORDER BY created_at, transaction_id;`
	rows, err := r.Pool.Query(ctx, query, orderID)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query wallet transactions for order "+orderID, err)
	}
	defer rows.Close()

	modelTxns := []models.WalletTransaction{}
	for rows.Next() {
		m, err := scanWalletTransaction(rows)
		if err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan wallet transaction row", err)
		}
		modelTxns = append(modelTxns, *m)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "failed reading wallet transaction rows", err)
	}
	return mapping.ToDomainWalletTransactionSlice(modelTxns), nil
}

func (r *PgxOrderRepository) updateOrderHeaderInTx(ctx context.Context, tx pgx.Tx, order domain.Order, expectedVersion int64) error {
	m := mapping.ToModelOrder(order)
	query := `
		UPDATE orders
		SET customer_id = $3, order_type = $4, status = $5, payment_status = $6,
		    subtotal = $7, discount = $8, shipping = $9, extra_fees = $10,
		    total = $11, paid_amount = $12, version = $13,
		    last_updated_at = $14, last_updated_by = $15
		WHERE order_id = $1 AND version = $2;
	`
	tag, err := tx.Exec(ctx, query,
		m.OrderID, expectedVersion,
		m.CustomerID, m.OrderType, m.Status, m.PaymentStatus,
		m.Subtotal, m.Discount, m.Shipping, m.ExtraFees,
		m.Total, m.PaidAmount, m.Version,
		m.LastUpdatedAt, m.LastUpdatedBy,
	)
	if err != nil {
		return apperrors.NewAppError(500, "failed to update order "+m.OrderID, err)
	}
	if tag.RowsAffected() == 0 {
		var exists bool
		if err := tx.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM orders WHERE order_id = $1);`, m.OrderID).Scan(&exists); err != nil {
			return apperrors.NewAppError(500, "failed to check order existence for "+m.OrderID, err)
		}
		if !exists {
			return fmt.Errorf("%w: order %s", apperrors.ErrNotFound, m.OrderID)
		}
		return fmt.Errorf("%w: order %s was modified by someone else, expected version %d", apperrors.ErrConcurrentModification, m.OrderID, expectedVersion)
	}
	return nil
}

func (r *PgxOrderRepository) insertLinesInTx(ctx context.Context, tx pgx.Tx, lines []domain.OrderLine) error {
	if len(lines) == 0 {
		return nil
	}

	batch := &pgx.Batch{}
	query := `
		INSERT INTO order_lines (` + orderLineColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12);
	`
	for _, line := range lines {
		m := mapping.ToModelOrderLine(line)
		batch.Queue(query,
			m.LineID, m.OrderID, m.ProductID, m.Description,
			m.Quantity, m.UnitPrice, m.LineTotal, m.Position,
			m.CreatedAt, m.CreatedBy, m.LastUpdatedAt, m.LastUpdatedBy,
		)
	}

	br := tx.SendBatch(ctx, batch)
	if err := br.Close(); err != nil {
		return apperrors.NewAppError(500, "failed to insert order lines", err)
	}
	return nil
}

// applyStockDeltasInTx adjusts stock per product in a deterministic order
// to avoid lock cycles between concurrent order writes, and collects the
// rows that landed at or below their alert threshold.
func (r *PgxOrderRepository) applyStockDeltasInTx(ctx context.Context, tx pgx.Tx, branchID string, stockDeltas map[string]int64, userID string, now time.Time) ([]domain.BranchStock, error) {
	if len(stockDeltas) == 0 {
		return nil, nil
	}

	productIDs := make([]string, 0, len(stockDeltas))
	for productID := range stockDeltas {
		productIDs = append(productIDs, productID)
	}
	sort.Strings(productIDs)

	var lowStocks []domain.BranchStock
	for _, productID := range productIDs {
		stock, _, err := r.stockRepo.AdjustStockInTx(ctx, tx, productID, branchID, stockDeltas[productID], userID, now)
		if err != nil {
			return nil, err
		}
		if stock.AlertThreshold > 0 && stock.Stock <= stock.AlertThreshold {
			lowStocks = append(lowStocks, *stock)
		}
	}
	return lowStocks, nil
}

func (r *PgxOrderRepository) applyWalletWritesInTx(ctx context.Context, tx pgx.Tx, walletTxns []domain.WalletTransaction, balanceChanges map[string]decimal.Decimal, userID string, now time.Time) error {
	if len(balanceChanges) > 0 {
		customerIDs := make([]string, 0, len(balanceChanges))
		for customerID := range balanceChanges {
			customerIDs = append(customerIDs, customerID)
		}
		if _, err := r.customerRepo.FindCustomersByIDsForUpdate(ctx, tx, customerIDs); err != nil {
			return apperrors.NewAppError(500, "failed to lock customers for order write", err)
		}
		if err := r.customerRepo.ApplyWalletDeltasInTx(ctx, tx, balanceChanges, userID, now); err != nil {
			return apperrors.NewAppError(500, "failed to apply wallet balance changes", err)
		}
	}
	if err := r.walletRepo.SaveWalletTransactionsInTx(ctx, tx, walletTxns); err != nil {
		return err
	}
	return nil
}
