package models

import "github.com/shopspring/decimal"

// OrderType mirrors the order_type column.
type OrderType string

// OrderStatus mirrors the status column.
type OrderStatus string

// PaymentStatus mirrors the payment_status column.
type PaymentStatus string

// Order mirrors the orders table. Monetary columns are NUMERIC(14,2) in the
// base currency; exchange_rate is NUMERIC(20,8).
type Order struct {
	OrderID       string          `json:"orderID"`
	Code          string          `json:"code"`
	BranchID      string          `json:"branchID"`
	CustomerID    *string         `json:"customerID"`
	SellerID      string          `json:"sellerID"`
	OrderType     OrderType       `json:"orderType"`
	Status        OrderStatus     `json:"status"`
	PaymentStatus PaymentStatus   `json:"paymentStatus"`
	CurrencyCode  string          `json:"currencyCode"`
	ExchangeRate  decimal.Decimal `json:"exchangeRate"`
	Subtotal      decimal.Decimal `json:"subtotal"`
	Discount      decimal.Decimal `json:"discount"`
	Shipping      decimal.Decimal `json:"shipping"`
	ExtraFees     decimal.Decimal `json:"extraFees"`
	Total         decimal.Decimal `json:"total"`
	PaidAmount    decimal.Decimal `json:"paidAmount"`
	Version       int64           `json:"version"`
	AuditFields
}

// OrderLine mirrors the order_lines table: qty NUMERIC(12,3), unit_price
// NUMERIC(14,4), line_total NUMERIC(14,2).
type OrderLine struct {
	LineID      string          `json:"lineID"`
	OrderID     string          `json:"orderID"`
	ProductID   *string         `json:"productID"`
	Description string          `json:"description"`
	Quantity    decimal.Decimal `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"unitPrice"`
	LineTotal   decimal.Decimal `json:"lineTotal"`
	Position    int             `json:"position"`
	AuditFields
}
