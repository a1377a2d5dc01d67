package services_test

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/salescore/order_ledger_app/internal/core/domain"
	portsrepo "github.com/salescore/order_ledger_app/internal/core/ports/repositories"
	portssvc "github.com/salescore/order_ledger_app/internal/core/ports/services"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
)

// dec builds a decimal from a literal; panics on malformed input.
func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func strPtr(s string) *string {
	return &s
}

func decPtr(s string) *decimal.Decimal {
	d := dec(s)
	return &d
}

// --- Mock ProductRepository ---
type MockProductRepository struct {
	mock.Mock
}

var _ portsrepo.ProductRepositoryFacade = (*MockProductRepository)(nil)

func (m *MockProductRepository) SaveProduct(ctx context.Context, product domain.Product) error {
	args := m.Called(ctx, product)
	return args.Error(0)
}

func (m *MockProductRepository) FindProductByID(ctx context.Context, productID string) (*domain.Product, error) {
	args := m.Called(ctx, productID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Product), args.Error(1)
}

func (m *MockProductRepository) FindProductsByIDs(ctx context.Context, productIDs []string) (map[string]domain.Product, error) {
	args := m.Called(ctx, productIDs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string]domain.Product), args.Error(1)
}

// --- Mock StockRepository ---
type MockStockRepository struct {
	mock.Mock
}

var _ portsrepo.StockRepositoryWithTx = (*MockStockRepository)(nil)

func (m *MockStockRepository) FindBranchStock(ctx context.Context, productID, branchID string) (*domain.BranchStock, error) {
	args := m.Called(ctx, productID, branchID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.BranchStock), args.Error(1)
}

func (m *MockStockRepository) FindBranchStocksByProducts(ctx context.Context, productIDs []string, branchID string) (map[string]domain.BranchStock, error) {
	args := m.Called(ctx, productIDs, branchID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string]domain.BranchStock), args.Error(1)
}

func (m *MockStockRepository) UpsertBranchStock(ctx context.Context, stock domain.BranchStock) error {
	args := m.Called(ctx, stock)
	return args.Error(0)
}

func (m *MockStockRepository) AdjustStockInTx(ctx context.Context, tx pgx.Tx, productID, branchID string, delta int64, userID string, now time.Time) (*domain.BranchStock, int64, error) {
	args := m.Called(ctx, tx, productID, branchID, delta, userID, now)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).(*domain.BranchStock), args.Get(1).(int64), args.Error(2)
}

func (m *MockStockRepository) Begin(ctx context.Context) (pgx.Tx, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(pgx.Tx), args.Error(1)
}

func (m *MockStockRepository) Commit(ctx context.Context, tx pgx.Tx) error {
	args := m.Called(ctx, tx)
	return args.Error(0)
}

func (m *MockStockRepository) Rollback(ctx context.Context, tx pgx.Tx) error {
	args := m.Called(ctx, tx)
	return args.Error(0)
}

// --- Mock CurrencyRepository ---
type MockCurrencyRepository struct {
	mock.Mock
}

var _ portsrepo.CurrencyRepository = (*MockCurrencyRepository)(nil)

func (m *MockCurrencyRepository) SaveCurrency(ctx context.Context, currency domain.Currency) error {
	args := m.Called(ctx, currency)
	return args.Error(0)
}

func (m *MockCurrencyRepository) FindCurrencyByCode(ctx context.Context, code string) (*domain.Currency, error) {
	args := m.Called(ctx, code)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Currency), args.Error(1)
}

func (m *MockCurrencyRepository) ListCurrencies(ctx context.Context) ([]domain.Currency, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Currency), args.Error(1)
}

// --- Mock ExchangeRateRepository ---
type MockExchangeRateRepository struct {
	mock.Mock
}

var _ portsrepo.ExchangeRateRepository = (*MockExchangeRateRepository)(nil)

func (m *MockExchangeRateRepository) SaveExchangeRate(ctx context.Context, rate domain.ExchangeRate) error {
	args := m.Called(ctx, rate)
	return args.Error(0)
}

func (m *MockExchangeRateRepository) FindLatestRate(ctx context.Context, currencyCode string) (*domain.ExchangeRate, error) {
	args := m.Called(ctx, currencyCode)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ExchangeRate), args.Error(1)
}

// --- Mock CustomerRepository ---
type MockCustomerRepository struct {
	mock.Mock
}

var _ portsrepo.CustomerRepositoryFacade = (*MockCustomerRepository)(nil)

func (m *MockCustomerRepository) FindCustomerByID(ctx context.Context, customerID string) (*domain.Customer, error) {
	args := m.Called(ctx, customerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Customer), args.Error(1)
}

func (m *MockCustomerRepository) SaveCustomer(ctx context.Context, customer domain.Customer) error {
	args := m.Called(ctx, customer)
	return args.Error(0)
}

func (m *MockCustomerRepository) FindCustomersByIDsForUpdate(ctx context.Context, tx pgx.Tx, customerIDs []string) (map[string]domain.Customer, error) {
	args := m.Called(ctx, tx, customerIDs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string]domain.Customer), args.Error(1)
}

func (m *MockCustomerRepository) ApplyWalletDeltasInTx(ctx context.Context, tx pgx.Tx, balanceChanges map[string]decimal.Decimal, userID string, now time.Time) error {
	args := m.Called(ctx, tx, balanceChanges, userID, now)
	return args.Error(0)
}

// --- Mock WalletRepository ---
type MockWalletRepository struct {
	mock.Mock
}

var _ portsrepo.WalletRepositoryFacade = (*MockWalletRepository)(nil)

func (m *MockWalletRepository) FindWalletTransactionByID(ctx context.Context, transactionID string) (*domain.WalletTransaction, error) {
	args := m.Called(ctx, transactionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.WalletTransaction), args.Error(1)
}

func (m *MockWalletRepository) ListWalletTransactionsByCustomer(ctx context.Context, customerID string, limit int, nextToken *string) ([]domain.WalletTransaction, *string, error) {
	args := m.Called(ctx, customerID, limit, nextToken)
	if args.Get(0) == nil {
		return nil, nil, args.Error(2)
	}
	var returnedNextToken *string
	if args.Get(1) != nil {
		tokenVal := args.Get(1).(string)
		returnedNextToken = &tokenVal
	}
	return args.Get(0).([]domain.WalletTransaction), returnedNextToken, args.Error(2)
}

func (m *MockWalletRepository) SumSignedAmounts(ctx context.Context, customerID string) (decimal.Decimal, error) {
	args := m.Called(ctx, customerID)
	if args.Get(0) == nil {
		return decimal.Zero, args.Error(1)
	}
	return args.Get(0).(decimal.Decimal), args.Error(1)
}

func (m *MockWalletRepository) SaveWalletTransaction(ctx context.Context, txn domain.WalletTransaction, balanceChanges map[string]decimal.Decimal) error {
	args := m.Called(ctx, txn, balanceChanges)
	return args.Error(0)
}

func (m *MockWalletRepository) UpdateWalletTransaction(ctx context.Context, txn domain.WalletTransaction, balanceChanges map[string]decimal.Decimal) error {
	args := m.Called(ctx, txn, balanceChanges)
	return args.Error(0)
}

func (m *MockWalletRepository) DeleteWalletTransaction(ctx context.Context, transactionID string, balanceChanges map[string]decimal.Decimal, userID string, now time.Time) error {
	args := m.Called(ctx, transactionID, balanceChanges, userID, now)
	return args.Error(0)
}

func (m *MockWalletRepository) SaveWalletTransactionsInTx(ctx context.Context, tx pgx.Tx, txns []domain.WalletTransaction) error {
	args := m.Called(ctx, tx, txns)
	return args.Error(0)
}

// --- Mock OrderRepository ---
type MockOrderRepository struct {
	mock.Mock
}

var _ portsrepo.OrderRepositoryFacade = (*MockOrderRepository)(nil)

func (m *MockOrderRepository) FindOrderByID(ctx context.Context, orderID string) (*domain.Order, error) {
	args := m.Called(ctx, orderID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Order), args.Error(1)
}

func (m *MockOrderRepository) FindOrderWithLines(ctx context.Context, orderID string) (*domain.Order, error) {
	args := m.Called(ctx, orderID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Order), args.Error(1)
}

func (m *MockOrderRepository) ListOrders(ctx context.Context, limit int, nextToken *string) ([]domain.Order, *string, error) {
	args := m.Called(ctx, limit, nextToken)
	if args.Get(0) == nil {
		return nil, nil, args.Error(2)
	}
	var returnedNextToken *string
	if args.Get(1) != nil {
		tokenVal := args.Get(1).(string)
		returnedNextToken = &tokenVal
	}
	return args.Get(0).([]domain.Order), returnedNextToken, args.Error(2)
}

func (m *MockOrderRepository) FindWalletTransactionsByOrder(ctx context.Context, orderID string) ([]domain.WalletTransaction, error) {
	args := m.Called(ctx, orderID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.WalletTransaction), args.Error(1)
}

func (m *MockOrderRepository) SaveOrder(ctx context.Context, order domain.Order, lines []domain.OrderLine, stockDeltas map[string]int64, walletTxns []domain.WalletTransaction, balanceChanges map[string]decimal.Decimal) ([]domain.BranchStock, error) {
	args := m.Called(ctx, order, lines, stockDeltas, walletTxns, balanceChanges)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.BranchStock), args.Error(1)
}

func (m *MockOrderRepository) UpdateOrder(ctx context.Context, order domain.Order, lines []domain.OrderLine, stockDeltas map[string]int64, walletTxns []domain.WalletTransaction, balanceChanges map[string]decimal.Decimal, expectedVersion int64) ([]domain.BranchStock, error) {
	args := m.Called(ctx, order, lines, stockDeltas, walletTxns, balanceChanges, expectedVersion)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.BranchStock), args.Error(1)
}

func (m *MockOrderRepository) UpdateOrderPayment(ctx context.Context, order domain.Order, txn domain.WalletTransaction, balanceChanges map[string]decimal.Decimal, expectedVersion int64) error {
	args := m.Called(ctx, order, txn, balanceChanges, expectedVersion)
	return args.Error(0)
}

// --- Mock UserRepository ---
type MockUserRepository struct {
	mock.Mock
}

var _ portsrepo.UserReader = (*MockUserRepository)(nil)

func (m *MockUserRepository) FindUserByID(ctx context.Context, userID string) (*domain.User, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserRepository) ListAdminUserIDs(ctx context.Context) ([]string, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}

// --- Mock NotificationRepository ---
type MockNotificationRepository struct {
	mock.Mock
}

var _ portsrepo.NotificationRepositoryFacade = (*MockNotificationRepository)(nil)

func (m *MockNotificationRepository) SaveNotifications(ctx context.Context, notifications []domain.Notification) error {
	args := m.Called(ctx, notifications)
	return args.Error(0)
}

func (m *MockNotificationRepository) ListNotificationsByUser(ctx context.Context, userID string, limit int) ([]domain.Notification, error) {
	args := m.Called(ctx, userID, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Notification), args.Error(1)
}

// --- Mock NotificationService ---
type MockNotificationService struct {
	mock.Mock
}

var _ portssvc.NotificationSvcFacade = (*MockNotificationService)(nil)

func (m *MockNotificationService) NotifyLowStock(ctx context.Context, stocks []domain.BranchStock, actorID string) {
	m.Called(ctx, stocks, actorID)
}

func (m *MockNotificationService) ListNotifications(ctx context.Context, userID string, limit int) ([]domain.Notification, error) {
	args := m.Called(ctx, userID, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Notification), args.Error(1)
}
