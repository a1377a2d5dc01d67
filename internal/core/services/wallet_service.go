package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/salescore/order_ledger_app/internal/apperrors"
	"github.com/salescore/order_ledger_app/internal/core/domain"
	portsrepo "github.com/salescore/order_ledger_app/internal/core/ports/repositories"
	"github.com/salescore/order_ledger_app/internal/dto"
	"github.com/salescore/order_ledger_app/internal/utils/money"
	"github.com/shopspring/decimal"
)

// WalletService manages customer wallet ledgers. Every mutation goes through
// an atomic repository write that keeps the stored balance equal to the
// signed sum of the customer's history.
type WalletService struct {
	walletRepo   portsrepo.WalletRepositoryFacade
	customerRepo portsrepo.CustomerRepositoryFacade
}

// NewWalletService creates a new WalletService.
func NewWalletService(walletRepo portsrepo.WalletRepositoryFacade, customerRepo portsrepo.CustomerRepositoryFacade) *WalletService {
	return &WalletService{
		walletRepo:   walletRepo,
		customerRepo: customerRepo,
	}
}

// CreateTransaction records a manual wallet entry. The customer must exist;
// a transaction can never be left without an owner.
func (s *WalletService) CreateTransaction(ctx context.Context, req dto.CreateWalletTransactionRequest, actorID string) (*domain.WalletTransaction, error) {
	if req.Amount.LessThanOrEqual(decimal.Zero) {
		return nil, fmt.Errorf("%w: amount must be positive, got %s", apperrors.ErrValidation, req.Amount)
	}
	if err := s.requireCustomer(ctx, req.CustomerID); err != nil {
		return nil, err
	}

	now := time.Now()
	txn := domain.WalletTransaction{
		TransactionID: uuid.NewString(),
		CustomerID:    req.CustomerID,
		OrderID:       req.OrderID,
		Direction:     domain.WalletDirection(req.Direction),
		Amount:        money.Round(req.Amount, money.ScaleAmount),
		Note:          req.Note,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     actorID,
			LastUpdatedAt: now,
			LastUpdatedBy: actorID,
		},
	}

	balanceChanges := map[string]decimal.Decimal{
		txn.CustomerID: txn.SignedAmount(),
	}
	if err := s.walletRepo.SaveWalletTransaction(ctx, txn, balanceChanges); err != nil {
		return nil, fmt.Errorf("failed to save wallet transaction in service: %w", err)
	}
	return &txn, nil
}

// UpdateTransaction rewrites a wallet entry. Balances of the affected
// customers are rebalanced in the same write: the old signed amount is
// reversed and the new one applied, even when the entry moves between
// customers.
func (s *WalletService) UpdateTransaction(ctx context.Context, transactionID string, req dto.UpdateWalletTransactionRequest, actorID string) (*domain.WalletTransaction, error) {
	existing, err := s.walletRepo.FindWalletTransactionByID(ctx, transactionID)
	if err != nil {
		return nil, fmt.Errorf("failed to load wallet transaction in service: %w", err)
	}

	updated := *existing
	if req.CustomerID != nil {
		updated.CustomerID = *req.CustomerID
	}
	if req.Direction != nil {
		updated.Direction = domain.WalletDirection(*req.Direction)
	}
	if req.Amount != nil {
		if req.Amount.LessThanOrEqual(decimal.Zero) {
			return nil, fmt.Errorf("%w: amount must be positive, got %s", apperrors.ErrValidation, req.Amount)
		}
		updated.Amount = money.Round(*req.Amount, money.ScaleAmount)
	}
	if req.Note != nil {
		updated.Note = *req.Note
	}

	if updated.CustomerID != existing.CustomerID {
		if err := s.requireCustomer(ctx, updated.CustomerID); err != nil {
			return nil, err
		}
	}

	now := time.Now()
	updated.LastUpdatedAt = now
	updated.LastUpdatedBy = actorID

	balanceChanges := map[string]decimal.Decimal{}
	balanceChanges[existing.CustomerID] = existing.SignedAmount().Neg()
	balanceChanges[updated.CustomerID] = balanceChanges[updated.CustomerID].Add(updated.SignedAmount())

	if err := s.walletRepo.UpdateWalletTransaction(ctx, updated, balanceChanges); err != nil {
		return nil, fmt.Errorf("failed to update wallet transaction in service: %w", err)
	}
	return &updated, nil
}

// DeleteTransaction removes a wallet entry and reverses its effect on the
// owning customer's balance.
func (s *WalletService) DeleteTransaction(ctx context.Context, transactionID string, actorID string) error {
	existing, err := s.walletRepo.FindWalletTransactionByID(ctx, transactionID)
	if err != nil {
		return fmt.Errorf("failed to load wallet transaction in service: %w", err)
	}

	balanceChanges := map[string]decimal.Decimal{
		existing.CustomerID: existing.SignedAmount().Neg(),
	}
	if err := s.walletRepo.DeleteWalletTransaction(ctx, transactionID, balanceChanges, actorID, time.Now()); err != nil {
		return fmt.Errorf("failed to delete wallet transaction in service: %w", err)
	}
	return nil
}

// GetTransaction retrieves a wallet entry by ID.
func (s *WalletService) GetTransaction(ctx context.Context, transactionID string) (*domain.WalletTransaction, error) {
	txn, err := s.walletRepo.FindWalletTransactionByID(ctx, transactionID)
	if err != nil {
		return nil, fmt.Errorf("failed to get wallet transaction in service: %w", err)
	}
	return txn, nil
}

// ListTransactions returns a page of a customer's wallet history together
// with the stored balance.
func (s *WalletService) ListTransactions(ctx context.Context, customerID string, params dto.ListWalletTransactionsParams) (*dto.WalletSummaryResponse, error) {
	customer, err := s.customerRepo.FindCustomerByID(ctx, customerID)
	if err != nil {
		return nil, fmt.Errorf("failed to load customer in wallet service: %w", err)
	}

	txns, nextToken, err := s.walletRepo.ListWalletTransactionsByCustomer(ctx, customerID, params.Limit, params.NextToken)
	if err != nil {
		return nil, fmt.Errorf("failed to list wallet transactions in service: %w", err)
	}

	return &dto.WalletSummaryResponse{
		CustomerID:   customerID,
		Balance:      customer.WalletBalance,
		Transactions: dto.ToWalletTransactionResponses(txns),
		NextToken:    nextToken,
	}, nil
}

// Reconcile recomputes a customer's balance from their transaction history
// and reports whether it matches the stored balance.
func (s *WalletService) Reconcile(ctx context.Context, customerID string) (*dto.WalletReconciliation, error) {
	customer, err := s.customerRepo.FindCustomerByID(ctx, customerID)
	if err != nil {
		return nil, fmt.Errorf("failed to load customer in wallet service: %w", err)
	}

	computed, err := s.walletRepo.SumSignedAmounts(ctx, customerID)
	if err != nil {
		return nil, fmt.Errorf("failed to sum wallet history in service: %w", err)
	}

	return &dto.WalletReconciliation{
		CustomerID:      customerID,
		StoredBalance:   customer.WalletBalance,
		ComputedBalance: computed,
		Consistent:      customer.WalletBalance.Equal(computed),
	}, nil
}

func (s *WalletService) requireCustomer(ctx context.Context, customerID string) error {
	_, err := s.customerRepo.FindCustomerByID(ctx, customerID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return fmt.Errorf("%w: customer %q does not exist", apperrors.ErrOrphanTransaction, customerID)
		}
		return fmt.Errorf("failed to validate customer in wallet service: %w", err)
	}
	return nil
}
