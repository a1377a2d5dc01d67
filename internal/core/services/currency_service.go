package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/salescore/order_ledger_app/internal/apperrors"
	"github.com/salescore/order_ledger_app/internal/core/domain"
	portsrepo "github.com/salescore/order_ledger_app/internal/core/ports/repositories"
	"github.com/salescore/order_ledger_app/internal/utils/money"
	"github.com/shopspring/decimal"
)

// CurrencyService provides business logic for display currencies and
// exchange rates. Stored amounts never leave the base currency; a rate is
// the number of display units one base unit buys.
type CurrencyService struct {
	currencyRepo portsrepo.CurrencyRepository
	rateRepo     portsrepo.ExchangeRateRepository
	baseCurrency string
}

// NewCurrencyService creates a new CurrencyService.
func NewCurrencyService(currencyRepo portsrepo.CurrencyRepository, rateRepo portsrepo.ExchangeRateRepository, baseCurrency string) *CurrencyService {
	return &CurrencyService{
		currencyRepo: currencyRepo,
		rateRepo:     rateRepo,
		baseCurrency: strings.ToUpper(baseCurrency),
	}
}

// CreateCurrency registers a display currency.
func (s *CurrencyService) CreateCurrency(ctx context.Context, currency domain.Currency, actorID string) (*domain.Currency, error) {
	currency.CurrencyCode = strings.ToUpper(currency.CurrencyCode)
	if len(currency.CurrencyCode) != 3 {
		return nil, fmt.Errorf("%w: currency code must be 3 letters", apperrors.ErrValidation)
	}
	if currency.Precision < 0 || int32(currency.Precision) > money.ScaleUnitPrice {
		return nil, fmt.Errorf("%w: currency precision must be between 0 and %d", apperrors.ErrValidation, money.ScaleUnitPrice)
	}

	now := time.Now()
	currency.AuditFields = domain.AuditFields{
		CreatedAt:     now,
		CreatedBy:     actorID,
		LastUpdatedAt: now,
		LastUpdatedBy: actorID,
	}

	if err := s.currencyRepo.SaveCurrency(ctx, currency); err != nil {
		return nil, fmt.Errorf("failed to create currency in service: %w", err)
	}
	return &currency, nil
}

// GetCurrency retrieves a currency by its code.
func (s *CurrencyService) GetCurrency(ctx context.Context, code string) (*domain.Currency, error) {
	code = strings.ToUpper(code)
	currency, err := s.currencyRepo.FindCurrencyByCode(ctx, code)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, fmt.Errorf("%w: currency %q is not registered", apperrors.ErrUnknownCurrency, code)
		}
		return nil, fmt.Errorf("failed to get currency in service: %w", err)
	}
	return currency, nil
}

// ListCurrencies returns all registered currencies.
func (s *CurrencyService) ListCurrencies(ctx context.Context) ([]domain.Currency, error) {
	currencies, err := s.currencyRepo.ListCurrencies(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list currencies in service: %w", err)
	}
	return currencies, nil
}

// PostExchangeRate records a new rate for a display currency. Later rates
// supersede earlier ones; orders keep the rate they were created with.
func (s *CurrencyService) PostExchangeRate(ctx context.Context, code string, rate decimal.Decimal, actorID string) (*domain.ExchangeRate, error) {
	code = strings.ToUpper(code)
	if rate.LessThanOrEqual(decimal.Zero) {
		return nil, fmt.Errorf("%w: exchange rate must be positive, got %s", apperrors.ErrInvalidRate, rate)
	}
	if code == s.baseCurrency {
		return nil, fmt.Errorf("%w: the base currency %s is always rate 1", apperrors.ErrValidation, s.baseCurrency)
	}
	if _, err := s.GetCurrency(ctx, code); err != nil {
		return nil, err
	}

	now := time.Now()
	exchangeRate := domain.ExchangeRate{
		ExchangeRateID: uuid.NewString(),
		CurrencyCode:   code,
		Rate:           money.Round(rate, money.ScaleRate),
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     actorID,
			LastUpdatedAt: now,
			LastUpdatedBy: actorID,
		},
	}

	if err := s.rateRepo.SaveExchangeRate(ctx, exchangeRate); err != nil {
		return nil, fmt.Errorf("failed to save exchange rate in service: %w", err)
	}
	return &exchangeRate, nil
}

// RateFor returns the latest rate for the given code. The base currency is
// always rate 1.
func (s *CurrencyService) RateFor(ctx context.Context, code string) (decimal.Decimal, error) {
	code = strings.ToUpper(code)
	if code == s.baseCurrency {
		return decimal.NewFromInt(1), nil
	}

	rate, err := s.rateRepo.FindLatestRate(ctx, code)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return decimal.Decimal{}, fmt.Errorf("%w: no exchange rate for currency %q", apperrors.ErrUnknownCurrency, code)
		}
		return decimal.Decimal{}, fmt.Errorf("failed to resolve exchange rate in service: %w", err)
	}
	if rate.Rate.LessThanOrEqual(decimal.Zero) {
		return decimal.Decimal{}, fmt.Errorf("%w: stored rate for %q is %s", apperrors.ErrInvalidRate, code, rate.Rate)
	}
	return rate.Rate, nil
}

// RateForOrFallback resolves a rate but degrades to 1 with a warning when
// the currency has no usable rate, so pricing flows keep working.
func (s *CurrencyService) RateForOrFallback(ctx context.Context, code string) (decimal.Decimal, []domain.Warning) {
	rate, err := s.RateFor(ctx, code)
	if err != nil {
		return decimal.NewFromInt(1), []domain.Warning{{
			Code:    domain.WarnRateFallback,
			Message: fmt.Sprintf("no usable exchange rate for %s, displaying base currency amounts", strings.ToUpper(code)),
		}}
	}
	return rate, nil
}

// ToDisplay converts a base amount into the display currency.
func (s *CurrencyService) ToDisplay(amount, rate decimal.Decimal) decimal.Decimal {
	return money.Mul(amount, rate, money.ScaleAmount)
}

// ToCanonical converts a display amount back into the base currency.
func (s *CurrencyService) ToCanonical(amount, rate decimal.Decimal) (decimal.Decimal, error) {
	return money.Div(amount, rate, money.ScaleAmount)
}

// BaseCurrency returns the configured base currency code.
func (s *CurrencyService) BaseCurrency() string {
	return s.baseCurrency
}
