package domain

// WarningCode identifies a non-fatal condition surfaced alongside a result.
type WarningCode string

const (
	// WarnPriceFloorApplied is emitted when a unit price was raised to the
	// cost floor.
	WarnPriceFloorApplied WarningCode = "PRICE_FLOOR_APPLIED"
	// WarnRateFallback is emitted when an unknown currency or invalid rate
	// was replaced by a rate of 1.
	WarnRateFallback WarningCode = "RATE_FALLBACK"
	// WarnLowStock is emitted when a stock adjustment left the counter at or
	// below its alert threshold.
	WarnLowStock WarningCode = "LOW_STOCK"
)

// Warning is a non-fatal advisory returned to the caller. It never blocks
// the operation that produced it.
type Warning struct {
	Code    WarningCode `json:"code"`
	Message string      `json:"message"`
}
