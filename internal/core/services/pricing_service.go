package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/salescore/order_ledger_app/internal/apperrors"
	"github.com/salescore/order_ledger_app/internal/core/domain"
	portsrepo "github.com/salescore/order_ledger_app/internal/core/ports/repositories"
	portssvc "github.com/salescore/order_ledger_app/internal/core/ports/services"
	"github.com/salescore/order_ledger_app/internal/dto"
	"github.com/salescore/order_ledger_app/internal/utils/money"
	"github.com/salescore/order_ledger_app/internal/utils/ordermath"
	"github.com/shopspring/decimal"
)

// PricingService computes unit prices under the cost-floor policy and
// aggregates priced lines into order totals.
type PricingService struct {
	productRepo portsrepo.ProductReader
	stockRepo   portsrepo.StockReader
	currencySvc portssvc.CurrencySvcFacade
}

// NewPricingService creates a new PricingService.
func NewPricingService(productRepo portsrepo.ProductReader, stockRepo portsrepo.StockReader, currencySvc portssvc.CurrencySvcFacade) *PricingService {
	return &PricingService{
		productRepo: productRepo,
		stockRepo:   stockRepo,
		currencySvc: currencySvc,
	}
}

// PriceLine resolves the unit price for a product line. The price starts
// from the product's sale price (or list price), an optional margin
// override recomputes it from cost, and the cost floor clamps the result
// unless perms allow selling below cost.
func (s *PricingService) PriceLine(ctx context.Context, productID string, quantity decimal.Decimal, marginPercent *decimal.Decimal, perms domain.Permissions) (*portssvc.PricedLine, error) {
	if quantity.LessThanOrEqual(decimal.Zero) {
		return nil, fmt.Errorf("%w: quantity must be positive, got %s", apperrors.ErrInvalidQuantity, quantity)
	}

	product, err := s.findProduct(ctx, productID)
	if err != nil {
		return nil, err
	}

	unitPrice := money.Round(product.BasePrice(), money.ScaleUnitPrice)
	if marginPercent != nil {
		if marginPercent.IsNegative() {
			return nil, fmt.Errorf("%w: margin percent cannot be negative", apperrors.ErrValidation)
		}
		// A zero margin or an unknown (zero) cost leaves the base price
		// in place.
		if marginPercent.IsPositive() && product.CostPrice.IsPositive() {
			hundred := decimal.NewFromInt(100)
			factor := hundred.Add(*marginPercent).Div(hundred)
			unitPrice = money.Mul(product.CostPrice, factor, money.ScaleUnitPrice)
		}
	}

	unitPrice, warnings := applyCostFloor(unitPrice, product.CostPrice, perms)

	return &portssvc.PricedLine{
		UnitPrice: unitPrice,
		LineTotal: ordermath.LineTotal(quantity, unitPrice),
		Warnings:  warnings,
	}, nil
}

// PriceManualLine validates a seller-entered unit price against the cost
// floor.
func (s *PricingService) PriceManualLine(ctx context.Context, productID string, quantity, unitPrice decimal.Decimal, perms domain.Permissions) (*portssvc.PricedLine, error) {
	if quantity.LessThanOrEqual(decimal.Zero) {
		return nil, fmt.Errorf("%w: quantity must be positive, got %s", apperrors.ErrInvalidQuantity, quantity)
	}
	if unitPrice.IsNegative() {
		return nil, fmt.Errorf("%w: unit price cannot be negative", apperrors.ErrValidation)
	}

	product, err := s.findProduct(ctx, productID)
	if err != nil {
		return nil, err
	}

	priced := money.Round(unitPrice, money.ScaleUnitPrice)
	priced, warnings := applyCostFloor(priced, product.CostPrice, perms)

	return &portssvc.PricedLine{
		UnitPrice: priced,
		LineTotal: ordermath.LineTotal(quantity, priced),
		Warnings:  warnings,
	}, nil
}

// ComputeTotals aggregates already-priced lines into order totals with
// display currency variants.
func (s *PricingService) ComputeTotals(ctx context.Context, req dto.ComputeTotalsRequest) (*dto.TotalsResponse, error) {
	lines := make([]domain.OrderLine, len(req.Lines))
	for i, l := range req.Lines {
		if l.Quantity.LessThanOrEqual(decimal.Zero) {
			return nil, fmt.Errorf("%w: quantity must be positive on line %d", apperrors.ErrInvalidQuantity, i+1)
		}
		lines[i] = domain.OrderLine{Quantity: l.Quantity, UnitPrice: l.UnitPrice}
	}

	var (
		rate     decimal.Decimal
		warnings []domain.Warning
	)
	if req.ExchangeRate != nil {
		if req.ExchangeRate.LessThanOrEqual(decimal.Zero) {
			return nil, fmt.Errorf("%w: exchange rate must be positive, got %s", apperrors.ErrInvalidRate, req.ExchangeRate)
		}
		rate = *req.ExchangeRate
	} else {
		rate, warnings = s.currencySvc.RateForOrFallback(ctx, req.CurrencyCode)
	}

	totals := ordermath.ComputeTotals(lines, req.Discount, req.Shipping, req.ExtraFees)
	return &dto.TotalsResponse{
		SubtotalCanonical: totals.Subtotal,
		TotalCanonical:    totals.Total,
		SubtotalDisplay:   s.currencySvc.ToDisplay(totals.Subtotal, rate),
		TotalDisplay:      s.currencySvc.ToDisplay(totals.Total, rate),
		ExchangeRate:      rate,
		Warnings:          warnings,
	}, nil
}

// DeriveDraft computes every derived field of an in-progress order draft
// without persisting anything.
func (s *PricingService) DeriveDraft(ctx context.Context, req dto.DeriveDraftRequest, perms domain.Permissions) (*dto.DeriveDraftResponse, error) {
	rate, warnings := s.currencySvc.RateForOrFallback(ctx, req.CurrencyCode)

	productIDs := make([]string, 0, len(req.Lines))
	for _, l := range req.Lines {
		if l.ProductID != nil {
			productIDs = append(productIDs, *l.ProductID)
		}
	}
	stocks := map[string]domain.BranchStock{}
	if len(productIDs) > 0 {
		var err error
		stocks, err = s.stockRepo.FindBranchStocksByProducts(ctx, productIDs, req.BranchID)
		if err != nil {
			return nil, fmt.Errorf("failed to load branch stock for draft: %w", err)
		}
	}

	lineResults := make([]dto.DraftLineResult, len(req.Lines))
	domainLines := make([]domain.OrderLine, len(req.Lines))
	for i, l := range req.Lines {
		priced, err := s.priceDraftLine(ctx, l, perms)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", i+1, err)
		}

		result := dto.DraftLineResult{
			UnitPrice:        priced.UnitPrice,
			LineTotal:        priced.LineTotal,
			UnitPriceDisplay: money.Mul(priced.UnitPrice, rate, money.ScaleUnitPrice),
			LineTotalDisplay: s.currencySvc.ToDisplay(priced.LineTotal, rate),
			Warnings:         priced.Warnings,
		}
		if l.ProductID != nil {
			if stock, ok := stocks[*l.ProductID]; ok {
				available := stock.Stock
				result.AvailableStock = &available
			}
		}
		lineResults[i] = result
		domainLines[i] = domain.OrderLine{Quantity: l.Quantity, UnitPrice: priced.UnitPrice}
	}

	totals := ordermath.ComputeTotals(domainLines, req.Discount, req.Shipping, req.ExtraFees)
	return &dto.DeriveDraftResponse{
		Lines: lineResults,
		Totals: dto.TotalsResponse{
			SubtotalCanonical: totals.Subtotal,
			TotalCanonical:    totals.Total,
			SubtotalDisplay:   s.currencySvc.ToDisplay(totals.Subtotal, rate),
			TotalDisplay:      s.currencySvc.ToDisplay(totals.Total, rate),
			ExchangeRate:      rate,
		},
		ExchangeRate: rate,
		Warnings:     warnings,
	}, nil
}

func (s *PricingService) priceDraftLine(ctx context.Context, l dto.DraftLineInput, perms domain.Permissions) (*portssvc.PricedLine, error) {
	if l.ProductID == nil {
		// Free-text line: the seller's price stands, there is no cost floor.
		if l.Quantity.LessThanOrEqual(decimal.Zero) {
			return nil, fmt.Errorf("%w: quantity must be positive, got %s", apperrors.ErrInvalidQuantity, l.Quantity)
		}
		unitPrice := decimal.Zero
		if l.UnitPrice != nil {
			if l.UnitPrice.IsNegative() {
				return nil, fmt.Errorf("%w: unit price cannot be negative", apperrors.ErrValidation)
			}
			unitPrice = money.Round(*l.UnitPrice, money.ScaleUnitPrice)
		}
		return &portssvc.PricedLine{
			UnitPrice: unitPrice,
			LineTotal: ordermath.LineTotal(l.Quantity, unitPrice),
		}, nil
	}
	if l.UnitPrice != nil {
		return s.PriceManualLine(ctx, *l.ProductID, l.Quantity, *l.UnitPrice, perms)
	}
	return s.PriceLine(ctx, *l.ProductID, l.Quantity, l.MarginPercent, perms)
}

func (s *PricingService) findProduct(ctx context.Context, productID string) (*domain.Product, error) {
	product, err := s.productRepo.FindProductByID(ctx, productID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, fmt.Errorf("%w: product %q", apperrors.ErrProductNotFound, productID)
		}
		return nil, fmt.Errorf("failed to load product in pricing service: %w", err)
	}
	if !product.IsActive {
		return nil, fmt.Errorf("%w: product %q is inactive", apperrors.ErrProductNotFound, productID)
	}
	return product, nil
}

// applyCostFloor clamps a unit price to the product's cost. The warning
// mentions the cost figure only to users allowed to see it.
func applyCostFloor(unitPrice, costPrice decimal.Decimal, perms domain.Permissions) (decimal.Decimal, []domain.Warning) {
	if perms.CanSellBelowCost || unitPrice.GreaterThanOrEqual(costPrice) {
		return unitPrice, nil
	}
	clamped := money.Round(costPrice, money.ScaleUnitPrice)
	message := "unit price raised to the cost floor"
	if perms.CanSeeCost {
		message = fmt.Sprintf("unit price raised to the cost floor of %s", clamped)
	}
	return clamped, []domain.Warning{{Code: domain.WarnPriceFloorApplied, Message: message}}
}
