package mapping

import (
	"github.com/salescore/order_ledger_app/internal/core/domain"
	"github.com/salescore/order_ledger_app/internal/models"
)

// ToModelProduct converts a domain Product to a model Product.
func ToModelProduct(d domain.Product) models.Product {
	return models.Product{
		ProductID:   d.ProductID,
		SKU:         d.SKU,
		Title:       d.Title,
		ListPrice:   d.ListPrice,
		SalePrice:   d.SalePrice,
		CostPrice:   d.CostPrice,
		IsActive:    d.IsActive,
		AuditFields: ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainProduct converts a model Product to a domain Product.
func ToDomainProduct(m models.Product) domain.Product {
	return domain.Product{
		ProductID:   m.ProductID,
		SKU:         m.SKU,
		Title:       m.Title,
		ListPrice:   m.ListPrice,
		SalePrice:   m.SalePrice,
		CostPrice:   m.CostPrice,
		IsActive:    m.IsActive,
		AuditFields: ToDomainAuditFields(m.AuditFields),
	}
}

// ToDomainBranchStock converts a model BranchStock to a domain BranchStock.
func ToDomainBranchStock(m models.BranchStock) domain.BranchStock {
	return domain.BranchStock{
		ProductID:      m.ProductID,
		BranchID:       m.BranchID,
		Stock:          m.Stock,
		AlertThreshold: m.AlertThreshold,
		AuditFields:    ToDomainAuditFields(m.AuditFields),
	}
}
