package domain

import "github.com/shopspring/decimal"

// Product represents a catalog item. All monetary fields are in the base
// accounting currency.
type Product struct {
	ProductID string           `json:"productID"` // Primary Key (UUID)
	SKU       string           `json:"sku"`
	Title     string           `json:"title"`
	ListPrice decimal.Decimal  `json:"listPrice"`           // Catalog price, base currency
	SalePrice *decimal.Decimal `json:"salePrice,omitempty"` // Optional promotional price; takes priority when set
	CostPrice decimal.Decimal  `json:"costPrice"`           // Purchase cost, base currency; zero means unknown
	IsActive  bool             `json:"isActive"`
	AuditFields
}

// BasePrice returns the sale price when one is set, else the list price.
func (p Product) BasePrice() decimal.Decimal {
	if p.SalePrice != nil {
		return *p.SalePrice
	}
	return p.ListPrice
}

// BranchStock is the per-(product, branch) inventory counter.
// Stock is a non-negative integer, clamped at zero on decrement.
type BranchStock struct {
	ProductID      string `json:"productID"`
	BranchID       string `json:"branchID"`
	Stock          int64  `json:"stock"`
	AlertThreshold int64  `json:"alertThreshold"` // <= 0 disables low-stock alerts
	AuditFields
}
