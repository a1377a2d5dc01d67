// Package ordermath holds the pure monetary calculations shared by the
// pricing, totals and lifecycle services. Everything here is side-effect
// free so the same functions back both the transactional write path and the
// draft-derivation endpoint used by interactive editing.
package ordermath

import (
	"github.com/salescore/order_ledger_app/internal/core/domain"
	"github.com/salescore/order_ledger_app/internal/utils/money"
	"github.com/shopspring/decimal"
)

// LineTotal derives a line total from quantity and unit price. Line totals
// are never edited directly; this is the only way one comes into existence.
func LineTotal(qty, unitPrice decimal.Decimal) decimal.Decimal {
	return money.Mul(qty, unitPrice, money.ScaleAmount)
}

// Totals holds the aggregate monetary fields of an order in the base
// currency.
type Totals struct {
	Subtotal decimal.Decimal
	Total    decimal.Decimal
}

// ComputeTotals aggregates line items into subtotal and total. The subtotal
// is the sum of per-line rounded totals (round-then-sum, matching what a
// human reconciling a printed invoice line by line would compute). The total
// is clamped at zero.
func ComputeTotals(lines []domain.OrderLine, discount, shipping, extraFees decimal.Decimal) Totals {
	subtotal := decimal.Zero
	for _, line := range lines {
		subtotal = subtotal.Add(LineTotal(line.Quantity, line.UnitPrice))
	}
	subtotal = money.Round(subtotal, money.ScaleAmount)

	total := subtotal.Sub(discount).Add(shipping).Add(extraFees)
	if total.IsNegative() {
		total = decimal.Zero
	}
	return Totals{
		Subtotal: subtotal,
		Total:    money.Round(total, money.ScaleAmount),
	}
}

// PaymentStatusFor derives the payment status from paid amount vs total.
func PaymentStatusFor(paid, total decimal.Decimal) domain.PaymentStatus {
	switch {
	case paid.LessThanOrEqual(decimal.Zero):
		return domain.PaymentUnpaid
	case paid.LessThan(total):
		return domain.PaymentPartial
	default:
		return domain.PaymentPaid
	}
}

// QuantityByProduct groups line quantities by product ID. Lines without a
// product reference (free-text lines) carry no stock and are skipped.
// Grouping makes the stock diff robust to line reordering.
func QuantityByProduct(lines []domain.OrderLine) map[string]decimal.Decimal {
	qtys := make(map[string]decimal.Decimal)
	for _, line := range lines {
		if line.ProductID == nil {
			continue
		}
		qtys[*line.ProductID] = qtys[*line.ProductID].Add(line.Quantity)
	}
	return qtys
}

// StockDeltas computes the net stock adjustment per product when moving from
// the old line set to the new one. A product appearing only in old yields a
// positive delta (stock returned); only in new, a negative delta (stock
// consumed). Quantities are rounded half-up to whole units because stock is
// an integer counter.
func StockDeltas(oldLines, newLines []domain.OrderLine) map[string]int64 {
	oldQty := QuantityByProduct(oldLines)
	newQty := QuantityByProduct(newLines)

	deltas := make(map[string]int64)
	for productID, qty := range newQty {
		net := oldQty[productID].Sub(qty)
		if units := money.Round(net, 0).IntPart(); units != 0 {
			deltas[productID] = units
		}
	}
	for productID, qty := range oldQty {
		if _, seen := newQty[productID]; seen {
			continue
		}
		if units := money.Round(qty, 0).IntPart(); units != 0 {
			deltas[productID] = units
		}
	}
	return deltas
}
