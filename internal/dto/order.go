package dto

import (
	"github.com/salescore/order_ledger_app/internal/core/domain"
	"github.com/salescore/order_ledger_app/internal/utils/money"
	"github.com/shopspring/decimal"
)

// OrderLineInput is one line of an order draft being persisted.
type OrderLineInput struct {
	ProductID     *string          `json:"productID,omitempty"`
	Description   string           `json:"description"`
	Quantity      decimal.Decimal  `json:"quantity" binding:"required"`
	UnitPrice     *decimal.Decimal `json:"unitPrice,omitempty"` // Base currency; omitted = use pricing policy
	MarginPercent *decimal.Decimal `json:"marginPercent,omitempty"`
}

// CreateOrderRequest is the payload for creating an order or quote.
type CreateOrderRequest struct {
	BranchID     string           `json:"branchID" binding:"required"`
	CustomerID   *string          `json:"customerID,omitempty"`
	OrderType    string           `json:"orderType" binding:"required,oneof=QUOTE ORDER"`
	CurrencyCode string           `json:"currencyCode" binding:"required,len=3"`
	Discount     decimal.Decimal  `json:"discount"`
	Shipping     decimal.Decimal  `json:"shipping"`
	ExtraFees    decimal.Decimal  `json:"extraFees"`
	PaidAmount   decimal.Decimal  `json:"paidAmount"`
	Lines        []OrderLineInput `json:"lines" binding:"required,min=1,dive"`
}

// UpdateOrderRequest is the payload for editing an order. Version must match
// the stored order or the edit is rejected as a concurrent modification.
type UpdateOrderRequest struct {
	CustomerID *string          `json:"customerID,omitempty"`
	Discount   decimal.Decimal  `json:"discount"`
	Shipping   decimal.Decimal  `json:"shipping"`
	ExtraFees  decimal.Decimal  `json:"extraFees"`
	PaidAmount decimal.Decimal  `json:"paidAmount"`
	Lines      []OrderLineInput `json:"lines" binding:"required,min=1,dive"`
	Version    int64            `json:"version" binding:"required"`
}

// RecordPaymentRequest records a payment against an order.
type RecordPaymentRequest struct {
	Amount decimal.Decimal `json:"amount" binding:"required"`
	Note   string          `json:"note"`
}

// OrderLineResponse is the API representation of an order line.
type OrderLineResponse struct {
	LineID      string          `json:"lineID"`
	ProductID   *string         `json:"productID,omitempty"`
	Description string          `json:"description"`
	Quantity    decimal.Decimal `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"unitPrice"`
	LineTotal   decimal.Decimal `json:"lineTotal"`
	Position    int             `json:"position"`
}

// OrderResponse is the API representation of an order. Display amounts are
// derived from the snapshotted exchange rate; base amounts stay
// authoritative.
type OrderResponse struct {
	OrderID         string               `json:"orderID"`
	Code            string               `json:"code"`
	BranchID        string               `json:"branchID"`
	CustomerID      *string              `json:"customerID,omitempty"`
	SellerID        string               `json:"sellerID"`
	OrderType       domain.OrderType     `json:"orderType"`
	Status          domain.OrderStatus   `json:"status"`
	PaymentStatus   domain.PaymentStatus `json:"paymentStatus"`
	CurrencyCode    string               `json:"currencyCode"`
	ExchangeRate    decimal.Decimal      `json:"exchangeRate"`
	Subtotal        decimal.Decimal      `json:"subtotal"`
	Discount        decimal.Decimal      `json:"discount"`
	Shipping        decimal.Decimal      `json:"shipping"`
	ExtraFees       decimal.Decimal      `json:"extraFees"`
	Total           decimal.Decimal      `json:"total"`
	PaidAmount      decimal.Decimal      `json:"paidAmount"`
	SubtotalDisplay decimal.Decimal      `json:"subtotalDisplay"`
	TotalDisplay    decimal.Decimal      `json:"totalDisplay"`
	Version         int64                `json:"version"`
	Lines           []OrderLineResponse  `json:"lines,omitempty"`
	Warnings        []domain.Warning     `json:"warnings,omitempty"`
}

// ToOrderResponse converts a domain Order to its API representation.
func ToOrderResponse(o *domain.Order, warnings []domain.Warning) OrderResponse {
	lines := make([]OrderLineResponse, len(o.Lines))
	for i, l := range o.Lines {
		lines[i] = OrderLineResponse{
			LineID:      l.LineID,
			ProductID:   l.ProductID,
			Description: l.Description,
			Quantity:    l.Quantity,
			UnitPrice:   l.UnitPrice,
			LineTotal:   l.LineTotal,
			Position:    l.Position,
		}
	}
	return OrderResponse{
		OrderID:         o.OrderID,
		Code:            o.Code,
		BranchID:        o.BranchID,
		CustomerID:      o.CustomerID,
		SellerID:        o.SellerID,
		OrderType:       o.OrderType,
		Status:          o.Status,
		PaymentStatus:   o.PaymentState,
		CurrencyCode:    o.CurrencyCode,
		ExchangeRate:    o.ExchangeRate,
		Subtotal:        o.Subtotal,
		Discount:        o.Discount,
		Shipping:        o.Shipping,
		ExtraFees:       o.ExtraFees,
		Total:           o.Total,
		PaidAmount:      o.PaidAmount,
		SubtotalDisplay: money.Mul(o.Subtotal, o.ExchangeRate, money.ScaleAmount),
		TotalDisplay:    money.Mul(o.Total, o.ExchangeRate, money.ScaleAmount),
		Version:         o.Version,
		Lines:           lines,
		Warnings:        warnings,
	}
}

// ListOrdersParams holds pagination parameters for listing orders.
type ListOrdersParams struct {
	Limit     int
	NextToken *string
}

// ListOrdersResponse is a paginated page of orders.
type ListOrdersResponse struct {
	Orders    []OrderResponse `json:"orders"`
	NextToken *string         `json:"nextToken,omitempty"`
}
