package models

import "github.com/shopspring/decimal"

// WalletDirection mirrors the direction column.
type WalletDirection string

// WalletTransaction mirrors the wallet_transactions table. amount is
// NUMERIC(14,2) with a CHECK (amount >= 0); the direction column carries the
// sign.
type WalletTransaction struct {
	TransactionID string          `json:"transactionID"`
	CustomerID    string          `json:"customerID"`
	OrderID       *string         `json:"orderID"`
	Direction     WalletDirection `json:"direction"`
	Amount        decimal.Decimal `json:"amount"`
	Note          string          `json:"note"`
	AuditFields
}
