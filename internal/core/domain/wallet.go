package domain

import "github.com/shopspring/decimal"

// WalletDirection indicates whether a wallet transaction adds to or removes
// from the customer's balance.
type WalletDirection string

const (
	WalletCredit WalletDirection = "CREDIT"
	WalletDebit  WalletDirection = "DEBIT"
)

// WalletTransaction is a single entry in a customer's wallet ledger.
// Amount is stored as a positive magnitude; the direction carries the sign.
type WalletTransaction struct {
	TransactionID string          `json:"transactionID"` // Primary Key (UUID)
	CustomerID    string          `json:"customerID"`    // FK -> customers (Not Null)
	OrderID       *string         `json:"orderID,omitempty"`
	Direction     WalletDirection `json:"direction"`
	Amount        decimal.Decimal `json:"amount"` // Positive magnitude, base currency
	Note          string          `json:"note"`
	AuditFields
}

// SignedAmount returns the transaction's effect on the customer balance:
// positive for credits, negative for debits.
func (t WalletTransaction) SignedAmount() decimal.Decimal {
	if t.Direction == WalletDebit {
		return t.Amount.Neg()
	}
	return t.Amount
}
