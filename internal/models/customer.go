package models

import "github.com/shopspring/decimal"

// Customer mirrors the customers table. wallet_balance is NUMERIC(14,2) and
// must equal the signed sum of the customer's wallet transactions.
type Customer struct {
	CustomerID    string          `json:"customerID"`
	Name          string          `json:"name"`
	Phone         string          `json:"phone"`
	WalletBalance decimal.Decimal `json:"walletBalance"`
	AuditFields
}
