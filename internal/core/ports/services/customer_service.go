package services

import (
	"context"

	"github.com/salescore/order_ledger_app/internal/core/domain"
)

// CustomerSvcFacade manages customer records.
type CustomerSvcFacade interface {
	CreateCustomer(ctx context.Context, name, phone string, actorID string) (*domain.Customer, error)
	GetCustomer(ctx context.Context, customerID string) (*domain.Customer, error)
}
