package repositories

import (
	"context"

	"github.com/salescore/order_ledger_app/internal/core/domain"
)

// CurrencyRepository defines persistence operations for currencies.
type CurrencyRepository interface {
	// SaveCurrency persists a new currency.
	SaveCurrency(ctx context.Context, currency domain.Currency) error

	// FindCurrencyByCode retrieves a currency by its 3-letter code.
	FindCurrencyByCode(ctx context.Context, code string) (*domain.Currency, error)

	// ListCurrencies retrieves all currencies.
	ListCurrencies(ctx context.Context) ([]domain.Currency, error)
}

// ExchangeRateRepository defines persistence operations for exchange rates.
type ExchangeRateRepository interface {
	// SaveExchangeRate persists a new exchange rate.
	SaveExchangeRate(ctx context.Context, rate domain.ExchangeRate) error

	// FindLatestRate retrieves the most recently created rate for a currency.
	FindLatestRate(ctx context.Context, currencyCode string) (*domain.ExchangeRate, error)
}
