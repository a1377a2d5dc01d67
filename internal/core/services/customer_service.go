package services

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/salescore/order_ledger_app/internal/apperrors"
	"github.com/salescore/order_ledger_app/internal/core/domain"
	portsrepo "github.com/salescore/order_ledger_app/internal/core/ports/repositories"
	"github.com/shopspring/decimal"
)

// CustomerService manages customer records.
type CustomerService struct {
	customerRepo portsrepo.CustomerRepositoryFacade
}

// NewCustomerService creates a new CustomerService.
func NewCustomerService(customerRepo portsrepo.CustomerRepositoryFacade) *CustomerService {
	return &CustomerService{customerRepo: customerRepo}
}

// CreateCustomer registers a customer with an empty wallet.
func (s *CustomerService) CreateCustomer(ctx context.Context, name, phone string, actorID string) (*domain.Customer, error) {
	if name == "" {
		return nil, fmt.Errorf("%w: customer name is required", apperrors.ErrValidation)
	}

	now := time.Now()
	customer := domain.Customer{
		CustomerID:    uuid.NewString(),
		Name:          name,
		Phone:         phone,
		WalletBalance: decimal.Zero,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     actorID,
			LastUpdatedAt: now,
			LastUpdatedBy: actorID,
		},
	}

	if err := s.customerRepo.SaveCustomer(ctx, customer); err != nil {
		return nil, fmt.Errorf("failed to create customer in service: %w", err)
	}
	return &customer, nil
}

// GetCustomer retrieves a customer by ID.
func (s *CustomerService) GetCustomer(ctx context.Context, customerID string) (*domain.Customer, error) {
	customer, err := s.customerRepo.FindCustomerByID(ctx, customerID)
	if err != nil {
		return nil, fmt.Errorf("failed to get customer in service: %w", err)
	}
	return customer, nil
}
