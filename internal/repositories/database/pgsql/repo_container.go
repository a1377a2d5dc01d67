package pgsql

import (
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	portsrepo "github.com/salescore/order_ledger_app/internal/core/ports/repositories"
)

// NewRepositoryProvider wires every pgsql repository against the shared
// connection pool. The order repository composes the stock, customer and
// wallet repositories so its writes stay single-transaction.
func NewRepositoryProvider(pool *pgxpool.Pool, stockLockTimeout time.Duration) portsrepo.RepositoryProvider {
	stockRepo := newPgxStockRepository(pool, stockLockTimeout)
	customerRepo := newPgxCustomerRepository(pool)
	walletRepo := newPgxWalletRepository(pool, customerRepo)

	return portsrepo.RepositoryProvider{
		ProductRepo:      newPgxProductRepository(pool),
		StockRepo:        stockRepo,
		CustomerRepo:     customerRepo,
		WalletRepo:       walletRepo,
		OrderRepo:        newPgxOrderRepository(pool, stockRepo, customerRepo, walletRepo),
		CurrencyRepo:     newPgxCurrencyRepository(pool),
		ExchangeRateRepo: newPgxExchangeRateRepository(pool),
		UserRepo:         newPgxUserRepository(pool),
		NotificationRepo: newPgxNotificationRepository(pool),
	}
}
