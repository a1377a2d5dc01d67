package dto

import (
	"github.com/salescore/order_ledger_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// PriceLineRequest asks the pricing policy for a unit price.
type PriceLineRequest struct {
	ProductID     string           `json:"productID" binding:"required"`
	Quantity      decimal.Decimal  `json:"quantity" binding:"required"`
	MarginPercent *decimal.Decimal `json:"marginPercent,omitempty"`
}

// PriceLineResponse carries the computed unit price plus non-fatal warnings.
type PriceLineResponse struct {
	UnitPrice decimal.Decimal  `json:"unitPrice"`
	LineTotal decimal.Decimal  `json:"lineTotal"`
	Warnings  []domain.Warning `json:"warnings,omitempty"`
}

// TotalsLineInput is one line of a totals computation: quantities and unit
// prices are in the base currency.
type TotalsLineInput struct {
	Quantity  decimal.Decimal `json:"quantity" binding:"required"`
	UnitPrice decimal.Decimal `json:"unitPrice" binding:"required"`
}

// ComputeTotalsRequest aggregates line items into order totals. The display
// variants use the given currency's latest rate unless an explicit snapshot
// rate is supplied.
type ComputeTotalsRequest struct {
	Lines        []TotalsLineInput `json:"lines" binding:"required,dive"`
	Discount     decimal.Decimal   `json:"discount"`
	Shipping     decimal.Decimal   `json:"shipping"`
	ExtraFees    decimal.Decimal   `json:"extraFees"`
	CurrencyCode string            `json:"currencyCode" binding:"required,len=3"`
	ExchangeRate *decimal.Decimal  `json:"exchangeRate,omitempty"`
}

// TotalsResponse carries order totals in both the base currency and the
// requested display currency. Each display figure is converted
// independently from its base counterpart.
type TotalsResponse struct {
	SubtotalCanonical decimal.Decimal  `json:"subtotalCanonical"`
	TotalCanonical    decimal.Decimal  `json:"totalCanonical"`
	SubtotalDisplay   decimal.Decimal  `json:"subtotalDisplay"`
	TotalDisplay      decimal.Decimal  `json:"totalDisplay"`
	ExchangeRate      decimal.Decimal  `json:"exchangeRate"`
	Warnings          []domain.Warning `json:"warnings,omitempty"`
}

// DraftLineInput is one line of an interactive order draft.
type DraftLineInput struct {
	ProductID     *string          `json:"productID,omitempty"`
	Description   string           `json:"description"`
	Quantity      decimal.Decimal  `json:"quantity" binding:"required"`
	UnitPrice     *decimal.Decimal `json:"unitPrice,omitempty"` // Base currency; omitted = use pricing policy
	MarginPercent *decimal.Decimal `json:"marginPercent,omitempty"`
}

// DeriveDraftRequest asks for the derived fields of an order draft without
// writing anything. The UI layer calls this after each field change.
type DeriveDraftRequest struct {
	BranchID     string           `json:"branchID" binding:"required"`
	CurrencyCode string           `json:"currencyCode" binding:"required,len=3"`
	Discount     decimal.Decimal  `json:"discount"`
	Shipping     decimal.Decimal  `json:"shipping"`
	ExtraFees    decimal.Decimal  `json:"extraFees"`
	Lines        []DraftLineInput `json:"lines" binding:"dive"`
}

// DraftLineResult carries the derived fields for one draft line.
type DraftLineResult struct {
	UnitPrice        decimal.Decimal  `json:"unitPrice"`
	LineTotal        decimal.Decimal  `json:"lineTotal"`
	UnitPriceDisplay decimal.Decimal  `json:"unitPriceDisplay"`
	LineTotalDisplay decimal.Decimal  `json:"lineTotalDisplay"`
	AvailableStock   *int64           `json:"availableStock,omitempty"`
	Warnings         []domain.Warning `json:"warnings,omitempty"`
}

// DeriveDraftResponse carries all derived draft fields.
type DeriveDraftResponse struct {
	Lines        []DraftLineResult `json:"lines"`
	Totals       TotalsResponse    `json:"totals"`
	ExchangeRate decimal.Decimal   `json:"exchangeRate"`
	Warnings     []domain.Warning  `json:"warnings,omitempty"`
}
