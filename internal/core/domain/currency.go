package domain

import "github.com/shopspring/decimal"

// Currency represents a display currency known to the system.
type Currency struct {
	CurrencyCode string `json:"currencyCode"` // Primary Key, ISO 4217 (3 letters)
	Symbol       string `json:"symbol"`
	Name         string `json:"name"`
	Precision    int    `json:"precision"`
	AuditFields
}

// ExchangeRate maps a display currency to the base accounting currency:
// 1 base unit = Rate display units. Rates are looked up when an order's
// currency is chosen and snapshotted onto the order; orders are immune to
// later rate changes.
type ExchangeRate struct {
	ExchangeRateID string          `json:"exchangeRateID"` // Primary Key (UUID)
	CurrencyCode   string          `json:"currencyCode"`   // FK -> currencies
	Rate           decimal.Decimal `json:"rate"`           // Must be > 0; 8 dp
	AuditFields
}
