package mapping

import (
	"github.com/salescore/order_ledger_app/internal/core/domain"
	"github.com/salescore/order_ledger_app/internal/models"
)

// ToModelWalletTransaction converts a domain WalletTransaction to its model.
func ToModelWalletTransaction(d domain.WalletTransaction) models.WalletTransaction {
	return models.WalletTransaction{
		TransactionID: d.TransactionID,
		CustomerID:    d.CustomerID,
		OrderID:       d.OrderID,
		Direction:     models.WalletDirection(d.Direction),
		Amount:        d.Amount,
		Note:          d.Note,
		AuditFields:   ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainWalletTransaction converts a model WalletTransaction to its domain form.
func ToDomainWalletTransaction(m models.WalletTransaction) domain.WalletTransaction {
	return domain.WalletTransaction{
		TransactionID: m.TransactionID,
		CustomerID:    m.CustomerID,
		OrderID:       m.OrderID,
		Direction:     domain.WalletDirection(m.Direction),
		Amount:        m.Amount,
		Note:          m.Note,
		AuditFields:   ToDomainAuditFields(m.AuditFields),
	}
}

// ToDomainWalletTransactionSlice converts a slice of model wallet transactions.
func ToDomainWalletTransactionSlice(ms []models.WalletTransaction) []domain.WalletTransaction {
	ds := make([]domain.WalletTransaction, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainWalletTransaction(m)
	}
	return ds
}

// ToDomainCustomer converts a model Customer to a domain Customer.
func ToDomainCustomer(m models.Customer) domain.Customer {
	return domain.Customer{
		CustomerID:    m.CustomerID,
		Name:          m.Name,
		Phone:         m.Phone,
		WalletBalance: m.WalletBalance,
		AuditFields:   ToDomainAuditFields(m.AuditFields),
	}
}
