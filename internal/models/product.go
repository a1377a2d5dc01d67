package models

import "github.com/shopspring/decimal"

// Product mirrors the products table. Prices are NUMERIC in the base
// currency: list/sale at 4 dp, cost at 4 dp.
type Product struct {
	ProductID string           `json:"productID"`
	SKU       string           `json:"sku"`
	Title     string           `json:"title"`
	ListPrice decimal.Decimal  `json:"listPrice"`
	SalePrice *decimal.Decimal `json:"salePrice"`
	CostPrice decimal.Decimal  `json:"costPrice"`
	IsActive  bool             `json:"isActive"`
	AuditFields
}

// BranchStock mirrors the branch_stocks table: integer stock counter plus
// integer alert threshold per (product, branch).
type BranchStock struct {
	ProductID      string `json:"productID"`
	BranchID       string `json:"branchID"`
	Stock          int64  `json:"stock"`
	AlertThreshold int64  `json:"alertThreshold"`
	AuditFields
}
