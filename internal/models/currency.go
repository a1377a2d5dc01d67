package models

import "github.com/shopspring/decimal"

// Currency mirrors the currencies table.
type Currency struct {
	CurrencyCode string `json:"currencyCode"`
	Symbol       string `json:"symbol"`
	Name         string `json:"name"`
	Precision    int    `json:"precision"`
	AuditFields
}

// ExchangeRate mirrors the exchange_rates table. rate is NUMERIC(20,8) with
// a CHECK (rate > 0).
type ExchangeRate struct {
	ExchangeRateID string          `json:"exchangeRateID"`
	CurrencyCode   string          `json:"currencyCode"`
	Rate           decimal.Decimal `json:"rate"`
	AuditFields
}
