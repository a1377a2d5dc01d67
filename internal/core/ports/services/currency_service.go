package services

import (
	"context"

	"github.com/salescore/order_ledger_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CurrencySvcFacade handles display currencies and their exchange rates.
// All stored amounts are in the base currency; rates express how many
// display units one base unit buys.
type CurrencySvcFacade interface {
	CreateCurrency(ctx context.Context, currency domain.Currency, actorID string) (*domain.Currency, error)
	GetCurrency(ctx context.Context, code string) (*domain.Currency, error)
	ListCurrencies(ctx context.Context) ([]domain.Currency, error)

	PostExchangeRate(ctx context.Context, code string, rate decimal.Decimal, actorID string) (*domain.ExchangeRate, error)

	// RateFor returns the latest rate for the code. The base currency is
	// always rate 1. An unregistered code yields ErrUnknownCurrency.
	RateFor(ctx context.Context, code string) (decimal.Decimal, error)

	// RateForOrFallback behaves like RateFor but degrades to rate 1 with a
	// warning instead of failing, so pricing flows never hard-stop on a
	// missing rate.
	RateForOrFallback(ctx context.Context, code string) (decimal.Decimal, []domain.Warning)

	// ToDisplay converts a base amount to the display currency at the given
	// rate, rounded to 2 decimal places.
	ToDisplay(amount, rate decimal.Decimal) decimal.Decimal

	// ToCanonical converts a display amount back to the base currency.
	// A non-positive rate yields ErrInvalidRate.
	ToCanonical(amount, rate decimal.Decimal) (decimal.Decimal, error)
}
