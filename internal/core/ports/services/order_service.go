package services

import (
	"context"

	"github.com/salescore/order_ledger_app/internal/dto"
)

// OrderSvcFacade coordinates the order lifecycle. Each mutation prices
// lines, recomputes totals, adjusts stock by net deltas, and syncs the
// customer wallet in a single transaction.
type OrderSvcFacade interface {
	CreateOrder(ctx context.Context, req dto.CreateOrderRequest, actorID string) (*dto.OrderResponse, error)
	UpdateOrder(ctx context.Context, orderID string, req dto.UpdateOrderRequest, actorID string) (*dto.OrderResponse, error)

	// ConvertToFirmOrder promotes a quote to a firm order. The reverse
	// direction is not allowed.
	ConvertToFirmOrder(ctx context.Context, orderID string, actorID string) (*dto.OrderResponse, error)

	// RecordPayment credits the order's customer wallet and advances the
	// order's payment status.
	RecordPayment(ctx context.Context, orderID string, req dto.RecordPaymentRequest, actorID string) (*dto.OrderResponse, error)

	GetOrder(ctx context.Context, orderID string) (*dto.OrderResponse, error)
	ListOrders(ctx context.Context, params dto.ListOrdersParams) (*dto.ListOrdersResponse, error)
}
