package dto

import (
	"time"

	"github.com/salescore/order_ledger_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreateCurrencyRequest is the payload for registering a display currency.
type CreateCurrencyRequest struct {
	CurrencyCode string `json:"currencyCode" binding:"required,len=3"`
	Symbol       string `json:"symbol" binding:"required"`
	Name         string `json:"name" binding:"required"`
	Precision    int    `json:"precision" binding:"min=0,max=4"`
}

// CurrencyResponse is the API representation of a currency.
type CurrencyResponse struct {
	CurrencyCode string `json:"currencyCode"`
	Symbol       string `json:"symbol"`
	Name         string `json:"name"`
	Precision    int    `json:"precision"`
}

// ToCurrencyResponse converts a domain Currency.
func ToCurrencyResponse(c *domain.Currency) CurrencyResponse {
	return CurrencyResponse{
		CurrencyCode: c.CurrencyCode,
		Symbol:       c.Symbol,
		Name:         c.Name,
		Precision:    c.Precision,
	}
}

// CreateExchangeRateRequest is the payload for posting a new rate.
type CreateExchangeRateRequest struct {
	CurrencyCode string          `json:"currencyCode" binding:"required,len=3"`
	Rate         decimal.Decimal `json:"rate" binding:"required"`
}

// ExchangeRateResponse is the API representation of an exchange rate.
type ExchangeRateResponse struct {
	ExchangeRateID string          `json:"exchangeRateID"`
	CurrencyCode   string          `json:"currencyCode"`
	Rate           decimal.Decimal `json:"rate"`
	CreatedAt      time.Time       `json:"createdAt"`
}

// ToExchangeRateResponse converts a domain ExchangeRate.
func ToExchangeRateResponse(r *domain.ExchangeRate) ExchangeRateResponse {
	return ExchangeRateResponse{
		ExchangeRateID: r.ExchangeRateID,
		CurrencyCode:   r.CurrencyCode,
		Rate:           r.Rate,
		CreatedAt:      r.CreatedAt,
	}
}
