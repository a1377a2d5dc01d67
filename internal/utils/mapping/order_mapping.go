package mapping

import (
	"github.com/salescore/order_ledger_app/internal/core/domain"
	"github.com/salescore/order_ledger_app/internal/models"
)

// ToModelOrder converts a domain Order to a model Order.
func ToModelOrder(d domain.Order) models.Order {
	return models.Order{
		OrderID:       d.OrderID,
		Code:          d.Code,
		BranchID:      d.BranchID,
		CustomerID:    d.CustomerID,
		SellerID:      d.SellerID,
		OrderType:     models.OrderType(d.OrderType),
		Status:        models.OrderStatus(d.Status),
		PaymentStatus: models.PaymentStatus(d.PaymentState),
		CurrencyCode:  d.CurrencyCode,
		ExchangeRate:  d.ExchangeRate,
		Subtotal:      d.Subtotal,
		Discount:      d.Discount,
		Shipping:      d.Shipping,
		ExtraFees:     d.ExtraFees,
		Total:         d.Total,
		PaidAmount:    d.PaidAmount,
		Version:       d.Version,
		AuditFields:   ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainOrder converts a model Order to a domain Order.
func ToDomainOrder(m models.Order) domain.Order {
	return domain.Order{
		OrderID:      m.OrderID,
		Code:         m.Code,
		BranchID:     m.BranchID,
		CustomerID:   m.CustomerID,
		SellerID:     m.SellerID,
		OrderType:    domain.OrderType(m.OrderType),
		Status:       domain.OrderStatus(m.Status),
		PaymentState: domain.PaymentStatus(m.PaymentStatus),
		CurrencyCode: m.CurrencyCode,
		ExchangeRate: m.ExchangeRate,
		Subtotal:     m.Subtotal,
		Discount:     m.Discount,
		Shipping:     m.Shipping,
		ExtraFees:    m.ExtraFees,
		Total:        m.Total,
		PaidAmount:   m.PaidAmount,
		Version:      m.Version,
		AuditFields:  ToDomainAuditFields(m.AuditFields),
	}
}

// ToModelOrderLine converts a domain OrderLine to a model OrderLine.
func ToModelOrderLine(d domain.OrderLine) models.OrderLine {
	return models.OrderLine{
		LineID:      d.LineID,
		OrderID:     d.OrderID,
		ProductID:   d.ProductID,
		Description: d.Description,
		Quantity:    d.Quantity,
		UnitPrice:   d.UnitPrice,
		LineTotal:   d.LineTotal,
		Position:    d.Position,
		AuditFields: ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainOrderLine converts a model OrderLine to a domain OrderLine.
func ToDomainOrderLine(m models.OrderLine) domain.OrderLine {
	return domain.OrderLine{
		LineID:      m.LineID,
		OrderID:     m.OrderID,
		ProductID:   m.ProductID,
		Description: m.Description,
		Quantity:    m.Quantity,
		UnitPrice:   m.UnitPrice,
		LineTotal:   m.LineTotal,
		Position:    m.Position,
		AuditFields: ToDomainAuditFields(m.AuditFields),
	}
}

// ToDomainOrderLineSlice converts a slice of model OrderLines.
func ToDomainOrderLineSlice(ms []models.OrderLine) []domain.OrderLine {
	ds := make([]domain.OrderLine, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainOrderLine(m)
	}
	return ds
}
