package domain

import "github.com/shopspring/decimal"

// Customer holds the wallet balance in the base currency. The balance must
// equal the signed sum of the customer's wallet transaction history at all
// times.
type Customer struct {
	CustomerID    string          `json:"customerID"` // Primary Key (UUID)
	Name          string          `json:"name"`
	Phone         string          `json:"phone"`
	WalletBalance decimal.Decimal `json:"walletBalance"`
	AuditFields
}
