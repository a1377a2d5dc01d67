package dto

import (
	"github.com/salescore/order_ledger_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreateCustomerRequest is the payload for registering a customer.
type CreateCustomerRequest struct {
	Name  string `json:"name" binding:"required"`
	Phone string `json:"phone"`
}

// CustomerResponse is the API representation of a customer.
type CustomerResponse struct {
	CustomerID    string          `json:"customerID"`
	Name          string          `json:"name"`
	Phone         string          `json:"phone"`
	WalletBalance decimal.Decimal `json:"walletBalance"`
}

// ToCustomerResponse converts a domain Customer.
func ToCustomerResponse(c *domain.Customer) CustomerResponse {
	return CustomerResponse{
		CustomerID:    c.CustomerID,
		Name:          c.Name,
		Phone:         c.Phone,
		WalletBalance: c.WalletBalance,
	}
}
