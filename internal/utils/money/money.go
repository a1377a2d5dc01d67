package money

import (
	"fmt"

	"github.com/salescore/order_ledger_app/internal/apperrors"
	"github.com/shopspring/decimal"
)

// Persisted scales. Monetary amounts (subtotal, discount, totals, wallet
// amounts) round to ScaleAmount; unit prices carry two extra digits so that
// per-line rounding stays stable across repeated edits.
const (
	ScaleAmount    int32 = 2
	ScaleQuantity  int32 = 3
	ScaleUnitPrice int32 = 4
	ScaleRate      int32 = 8
)

// Round rounds half-up away from zero, symmetric with sign, to the given
// number of fractional digits.
func Round(d decimal.Decimal, scale int32) decimal.Decimal {
	return d.Round(scale)
}

// Add returns a+b rounded to scale.
func Add(a, b decimal.Decimal, scale int32) decimal.Decimal {
	return a.Add(b).Round(scale)
}

// Sub returns a-b rounded to scale.
func Sub(a, b decimal.Decimal, scale int32) decimal.Decimal {
	return a.Sub(b).Round(scale)
}

// Mul returns a*b rounded to scale.
func Mul(a, b decimal.Decimal, scale int32) decimal.Decimal {
	return a.Mul(b).Round(scale)
}

// Div returns a/b rounded to scale. A zero or negative divisor yields
// ErrInvalidRate; callers substitute a rate of 1.
func Div(a, b decimal.Decimal, scale int32) (decimal.Decimal, error) {
	if b.LessThanOrEqual(decimal.Zero) {
		return decimal.Zero, fmt.Errorf("%w: divisor %s", apperrors.ErrInvalidRate, b.String())
	}
	return a.DivRound(b, scale), nil
}
