package dto

import (
	"time"

	"github.com/salescore/order_ledger_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreateWalletTransactionRequest is the payload for a manual wallet entry.
type CreateWalletTransactionRequest struct {
	CustomerID string          `json:"customerID" binding:"required"`
	Direction  string          `json:"direction" binding:"required,oneof=CREDIT DEBIT"`
	Amount     decimal.Decimal `json:"amount" binding:"required"`
	OrderID    *string         `json:"orderID,omitempty"`
	Note       string          `json:"note"`
}

// UpdateWalletTransactionRequest is the payload for an admin edit of a
// wallet entry. Nil fields are left unchanged.
type UpdateWalletTransactionRequest struct {
	CustomerID *string          `json:"customerID,omitempty"`
	Direction  *string          `json:"direction,omitempty" binding:"omitempty,oneof=CREDIT DEBIT"`
	Amount     *decimal.Decimal `json:"amount,omitempty"`
	Note       *string          `json:"note,omitempty"`
}

// WalletTransactionResponse is the API representation of a wallet entry.
type WalletTransactionResponse struct {
	TransactionID string                 `json:"transactionID"`
	CustomerID    string                 `json:"customerID"`
	OrderID       *string                `json:"orderID,omitempty"`
	Direction     domain.WalletDirection `json:"direction"`
	Amount        decimal.Decimal        `json:"amount"`
	SignedAmount  decimal.Decimal        `json:"signedAmount"`
	Note          string                 `json:"note"`
	CreatedAt     time.Time              `json:"createdAt"`
}

// ToWalletTransactionResponse converts a domain WalletTransaction.
func ToWalletTransactionResponse(t *domain.WalletTransaction) WalletTransactionResponse {
	return WalletTransactionResponse{
		TransactionID: t.TransactionID,
		CustomerID:    t.CustomerID,
		OrderID:       t.OrderID,
		Direction:     t.Direction,
		Amount:        t.Amount,
		SignedAmount:  t.SignedAmount(),
		Note:          t.Note,
		CreatedAt:     t.CreatedAt,
	}
}

// ToWalletTransactionResponses converts a slice of wallet transactions.
func ToWalletTransactionResponses(ts []domain.WalletTransaction) []WalletTransactionResponse {
	out := make([]WalletTransactionResponse, len(ts))
	for i := range ts {
		out[i] = ToWalletTransactionResponse(&ts[i])
	}
	return out
}

// ListWalletTransactionsParams holds pagination parameters.
type ListWalletTransactionsParams struct {
	Limit     int
	NextToken *string
}

// WalletSummaryResponse is a page of a customer's wallet history plus the
// stored balance.
type WalletSummaryResponse struct {
	CustomerID   string                      `json:"customerID"`
	Balance      decimal.Decimal             `json:"balance"`
	Transactions []WalletTransactionResponse `json:"transactions"`
	NextToken    *string                     `json:"nextToken,omitempty"`
}

// WalletReconciliation reports whether a customer's stored balance matches
// the signed sum of their transaction history.
type WalletReconciliation struct {
	CustomerID      string          `json:"customerID"`
	StoredBalance   decimal.Decimal `json:"storedBalance"`
	ComputedBalance decimal.Decimal `json:"computedBalance"`
	Consistent      bool            `json:"consistent"`
}
