package ordermath_test

import (
	"testing"

	"github.com/salescore/order_ledger_app/internal/core/domain"
	"github.com/salescore/order_ledger_app/internal/utils/ordermath"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func dec(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return d
}

func strptr(s string) *string { return &s }

func line(productID string, qty, unitPrice string) domain.OrderLine {
	var pid *string
	if productID != "" {
		pid = strptr(productID)
	}
	return domain.OrderLine{
		ProductID: pid,
		Quantity:  dec(qty),
		UnitPrice: dec(unitPrice),
	}
}

func TestLineTotal_RoundsToTwoPlaces(t *testing.T) {
	assert.True(t, ordermath.LineTotal(dec("2"), dec("10.0000")).Equal(dec("20")))
	assert.True(t, ordermath.LineTotal(dec("1.333"), dec("9.9999")).Equal(dec("13.33")))
	assert.True(t, ordermath.LineTotal(dec("0.5"), dec("0.0100")).Equal(dec("0.01")))
}

func TestComputeTotals_RoundPerLineThenSum(t *testing.T) {
	// Each line rounds to 0.33; summed-then-rounded would give 1.00.
	lines := []domain.OrderLine{
		line("p1", "1", "0.3333"),
		line("p2", "1", "0.3333"),
		line("p3", "1", "0.3333"),
	}
	got := ordermath.ComputeTotals(lines, decimal.Zero, decimal.Zero, decimal.Zero)
	assert.True(t, got.Subtotal.Equal(dec("0.99")), "subtotal %s", got.Subtotal)
	assert.True(t, got.Total.Equal(dec("0.99")))
}

func TestComputeTotals_Formula(t *testing.T) {
	lines := []domain.OrderLine{
		line("p1", "2", "10.0000"), // 20.00
		line("p2", "3", "5.5000"),  // 16.50
	}
	got := ordermath.ComputeTotals(lines, dec("6.50"), dec("4.00"), dec("1.00"))
	assert.True(t, got.Subtotal.Equal(dec("36.50")))
	// 36.50 - 6.50 + 4.00 + 1.00
	assert.True(t, got.Total.Equal(dec("35.00")))
}

func TestComputeTotals_ClampsAtZero(t *testing.T) {
	lines := []domain.OrderLine{line("p1", "1", "10.0000")}
	got := ordermath.ComputeTotals(lines, dec("50"), decimal.Zero, decimal.Zero)
	assert.True(t, got.Total.IsZero(), "total %s", got.Total)
	assert.True(t, got.Subtotal.Equal(dec("10")))
}

func TestPaymentStatusFor(t *testing.T) {
	assert.Equal(t, domain.PaymentUnpaid, ordermath.PaymentStatusFor(decimal.Zero, dec("10")))
	assert.Equal(t, domain.PaymentPartial, ordermath.PaymentStatusFor(dec("5"), dec("10")))
	assert.Equal(t, domain.PaymentPaid, ordermath.PaymentStatusFor(dec("10"), dec("10")))
	assert.Equal(t, domain.PaymentPaid, ordermath.PaymentStatusFor(dec("15"), dec("10")))
}

func TestQuantityByProduct_GroupsAndSkipsFreeText(t *testing.T) {
	lines := []domain.OrderLine{
		line("p1", "2", "1"),
		line("", "4", "1"), // free-text line, no product
		line("p1", "3", "1"),
	}
	got := ordermath.QuantityByProduct(lines)
	assert.Len(t, got, 1)
	assert.True(t, got["p1"].Equal(dec("5")))
}

func TestStockDeltas_NetPerProduct(t *testing.T) {
	oldLines := []domain.OrderLine{line("p1", "2", "1")}
	newLines := []domain.OrderLine{line("p1", "5", "1")}
	got := ordermath.StockDeltas(oldLines, newLines)
	// 2 -> 5 applies a single net delta of -3, not -2 and -5 separately.
	assert.Equal(t, map[string]int64{"p1": -3}, got)
}

func TestStockDeltas_AddedAndRemovedProducts(t *testing.T) {
	oldLines := []domain.OrderLine{line("p1", "2", "1"), line("p2", "1", "1")}
	newLines := []domain.OrderLine{line("p2", "1", "1"), line("p3", "4", "1")}
	got := ordermath.StockDeltas(oldLines, newLines)
	assert.Equal(t, map[string]int64{"p1": 2, "p3": -4}, got)
}

func TestStockDeltas_RobustToReordering(t *testing.T) {
	oldLines := []domain.OrderLine{line("p1", "2", "1"), line("p2", "3", "1")}
	newLines := []domain.OrderLine{line("p2", "3", "1"), line("p1", "2", "1")}
	assert.Empty(t, ordermath.StockDeltas(oldLines, newLines))
}

func TestStockDeltas_CreateIsDiffAgainstEmpty(t *testing.T) {
	newLines := []domain.OrderLine{line("p1", "2", "1")}
	got := ordermath.StockDeltas(nil, newLines)
	assert.Equal(t, map[string]int64{"p1": -2}, got)
}
