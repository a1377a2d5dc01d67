package services

import (
	"context"

	"github.com/salescore/order_ledger_app/internal/core/domain"
	"github.com/salescore/order_ledger_app/internal/dto"
	"github.com/shopspring/decimal"
)

// PricedLine is the result of pricing a single line.
type PricedLine struct {
	UnitPrice decimal.Decimal
	LineTotal decimal.Decimal
	Warnings  []domain.Warning
}

// PricingSvcFacade computes unit prices under the cost-floor policy and
// aggregates lines into order totals.
type PricingSvcFacade interface {
	// PriceLine resolves the unit price for a product line. The price starts
	// from the product's sale price (or list price), an optional margin
	// override recomputes it from cost, and the cost floor clamps the result
	// unless perms allow selling below cost.
	PriceLine(ctx context.Context, productID string, quantity decimal.Decimal, marginPercent *decimal.Decimal, perms domain.Permissions) (*PricedLine, error)

	// PriceManualLine validates a seller-entered unit price for a product
	// line. The cost floor still applies unless perms allow selling below
	// cost.
	PriceManualLine(ctx context.Context, productID string, quantity, unitPrice decimal.Decimal, perms domain.Permissions) (*PricedLine, error)

	// ComputeTotals aggregates already-priced lines into totals with display
	// currency variants.
	ComputeTotals(ctx context.Context, req dto.ComputeTotalsRequest) (*dto.TotalsResponse, error)

	// DeriveDraft computes every derived field of an in-progress order draft
	// without persisting anything.
	DeriveDraft(ctx context.Context, req dto.DeriveDraftRequest, perms domain.Permissions) (*dto.DeriveDraftResponse, error)
}
