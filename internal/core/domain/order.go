package domain

import "github.com/shopspring/decimal"

// OrderType distinguishes firm orders from proforma quotes.
type OrderType string

const (
	TypeQuote OrderType = "QUOTE"
	TypeOrder OrderType = "ORDER"
)

// OrderStatus is the coarse lifecycle state of an order.
type OrderStatus string

const (
	OrderPending   OrderStatus = "PENDING"
	OrderCompleted OrderStatus = "COMPLETED"
	OrderCancelled OrderStatus = "CANCELLED"
)

// PaymentStatus is derived from paid amount vs total; never set directly.
type PaymentStatus string

const (
	PaymentUnpaid  PaymentStatus = "UNPAID"
	PaymentPartial PaymentStatus = "PARTIAL"
	PaymentPaid    PaymentStatus = "PAID"
)

// Order is the aggregate root for a sale. All monetary fields except
// ExchangeRate are in the base accounting currency; display amounts are
// derived from the snapshotted rate, never stored.
type Order struct {
	OrderID      string          `json:"orderID"` // Primary Key (UUID)
	Code         string          `json:"code"`    // Human-readable unique code
	BranchID     string          `json:"branchID"`
	CustomerID   *string         `json:"customerID,omitempty"` // Nullable for quotes
	SellerID     string          `json:"sellerID"`
	OrderType    OrderType       `json:"orderType"`
	Status       OrderStatus     `json:"status"`
	PaymentState PaymentStatus   `json:"paymentStatus"`
	CurrencyCode string          `json:"currencyCode"` // Display currency
	ExchangeRate decimal.Decimal `json:"exchangeRate"` // Snapshot: 1 base unit = rate display units
	Subtotal     decimal.Decimal `json:"subtotal"`     // Base currency, 2 dp
	Discount     decimal.Decimal `json:"discount"`
	Shipping     decimal.Decimal `json:"shipping"`
	ExtraFees    decimal.Decimal `json:"extraFees"`
	Total        decimal.Decimal `json:"total"`
	PaidAmount   decimal.Decimal `json:"paidAmount"`
	Version      int64           `json:"version"` // Optimistic concurrency token
	AuditFields
	Lines []OrderLine `json:"lines,omitempty"`
}

// OrderLine is a single line item of an order. LineTotal is always derived
// from quantity and unit price; it is never independently editable.
type OrderLine struct {
	LineID      string          `json:"lineID"`  // Primary Key (UUID)
	OrderID     string          `json:"orderID"` // FK -> orders
	ProductID   *string         `json:"productID,omitempty"` // Nullable: free-text line for removed products
	Description string          `json:"description"`
	Quantity    decimal.Decimal `json:"quantity"`  // 3 dp, fractional allowed
	UnitPrice   decimal.Decimal `json:"unitPrice"` // Base currency, 4 dp
	LineTotal   decimal.Decimal `json:"lineTotal"` // Base currency, 2 dp = round(qty * unitPrice, 2)
	Position    int             `json:"position"`  // Ordering index within the order
	AuditFields
}
