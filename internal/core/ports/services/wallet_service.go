package services

import (
	"context"

	"github.com/salescore/order_ledger_app/internal/core/domain"
	"github.com/salescore/order_ledger_app/internal/dto"
)

// WalletSvcFacade manages customer wallet ledgers. Every mutation keeps the
// stored balance equal to the signed sum of the customer's history.
type WalletSvcFacade interface {
	CreateTransaction(ctx context.Context, req dto.CreateWalletTransactionRequest, actorID string) (*domain.WalletTransaction, error)
	UpdateTransaction(ctx context.Context, transactionID string, req dto.UpdateWalletTransactionRequest, actorID string) (*domain.WalletTransaction, error)
	DeleteTransaction(ctx context.Context, transactionID string, actorID string) error

	GetTransaction(ctx context.Context, transactionID string) (*domain.WalletTransaction, error)
	ListTransactions(ctx context.Context, customerID string, params dto.ListWalletTransactionsParams) (*dto.WalletSummaryResponse, error)

	// Reconcile recomputes a customer's balance from their history and
	// reports whether it matches the stored balance.
	Reconcile(ctx context.Context, customerID string) (*dto.WalletReconciliation, error)
}
