package services

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/salescore/order_ledger_app/internal/apperrors"
	"github.com/salescore/order_ledger_app/internal/core/domain"
	portsrepo "github.com/salescore/order_ledger_app/internal/core/ports/repositories"
	portssvc "github.com/salescore/order_ledger_app/internal/core/ports/services"
	"github.com/salescore/order_ledger_app/internal/dto"
	"github.com/salescore/order_ledger_app/internal/utils/money"
	"github.com/salescore/order_ledger_app/internal/utils/ordercode"
	"github.com/salescore/order_ledger_app/internal/utils/ordermath"
	"github.com/shopspring/decimal"
)

const (
	quoteCodePrefix = "QT"
	orderCodePrefix = "SO"
)

// OrderService coordinates the order lifecycle. Each mutation prices the
// lines, recomputes totals, nets stock deltas against the previous state
// and syncs the customer wallet, then hands all of it to a single atomic
// repository write.
type OrderService struct {
	orderRepo       portsrepo.OrderRepositoryFacade
	productRepo     portsrepo.ProductReader
	customerRepo    portsrepo.CustomerReader
	pricingSvc      portssvc.PricingSvcFacade
	currencySvc     portssvc.CurrencySvcFacade
	userSvc         portssvc.UserSvcFacade
	notificationSvc portssvc.NotificationSvcFacade
}

// NewOrderService creates a new OrderService.
func NewOrderService(
	orderRepo portsrepo.OrderRepositoryFacade,
	productRepo portsrepo.ProductReader,
	customerRepo portsrepo.CustomerReader,
	pricingSvc portssvc.PricingSvcFacade,
	currencySvc portssvc.CurrencySvcFacade,
	userSvc portssvc.UserSvcFacade,
	notificationSvc portssvc.NotificationSvcFacade,
) *OrderService {
	return &OrderService{
		orderRepo:       orderRepo,
		productRepo:     productRepo,
		customerRepo:    customerRepo,
		pricingSvc:      pricingSvc,
		currencySvc:     currencySvc,
		userSvc:         userSvc,
		notificationSvc: notificationSvc,
	}
}

// CreateOrder creates a quote or a firm order. Firm orders decrement stock
// and, when an initial payment is given, credit the customer's wallet in
// the same transaction.
func (s *OrderService) CreateOrder(ctx context.Context, req dto.CreateOrderRequest, actorID string) (*dto.OrderResponse, error) {
	perms, err := s.userSvc.GetPermissions(ctx, actorID)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve acting user: %w", err)
	}
	if err := validateCharges(req.Discount, req.Shipping, req.ExtraFees, req.PaidAmount); err != nil {
		return nil, err
	}
	if req.CustomerID != nil {
		if _, err := s.customerRepo.FindCustomerByID(ctx, *req.CustomerID); err != nil {
			return nil, fmt.Errorf("failed to validate order customer: %w", err)
		}
	}

	orderType := domain.OrderType(req.OrderType)
	if orderType == domain.TypeQuote && req.PaidAmount.IsPositive() {
		return nil, fmt.Errorf("%w: quotes cannot carry payments", apperrors.ErrValidation)
	}

	rate, warnings := s.currencySvc.RateForOrFallback(ctx, req.CurrencyCode)

	now := time.Now()
	orderID := uuid.NewString()
	lines, lineWarnings, err := s.buildLines(ctx, orderID, req.Lines, perms, actorID, now)
	if err != nil {
		return nil, err
	}
	warnings = append(warnings, lineWarnings...)

	totals := ordermath.ComputeTotals(lines, req.Discount, req.Shipping, req.ExtraFees)

	codePrefix := orderCodePrefix
	if orderType == domain.TypeQuote {
		codePrefix = quoteCodePrefix
	}
	code, err := ordercode.Generate(codePrefix, now)
	if err != nil {
		return nil, fmt.Errorf("failed to generate order code: %w", err)
	}

	order := domain.Order{
		OrderID:      orderID,
		Code:         code,
		BranchID:     req.BranchID,
		CustomerID:   req.CustomerID,
		SellerID:     actorID,
		OrderType:    orderType,
		Status:       domain.OrderPending,
		PaymentState: domain.PaymentUnpaid,
		CurrencyCode: req.CurrencyCode,
		ExchangeRate: money.Round(rate, money.ScaleRate),
		Subtotal:     totals.Subtotal,
		Discount:     money.Round(req.Discount, money.ScaleAmount),
		Shipping:     money.Round(req.Shipping, money.ScaleAmount),
		ExtraFees:    money.Round(req.ExtraFees, money.ScaleAmount),
		Total:        totals.Total,
		PaidAmount:   money.Round(req.PaidAmount, money.ScaleAmount),
		Version:      1,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     actorID,
			LastUpdatedAt: now,
			LastUpdatedBy: actorID,
		},
	}

	var stockDeltas map[string]int64
	var walletTxns []domain.WalletTransaction
	var balanceChanges map[string]decimal.Decimal

	if orderType == domain.TypeOrder {
		order.PaymentState = ordermath.PaymentStatusFor(order.PaidAmount, order.Total)
		stockDeltas = ordermath.StockDeltas(nil, lines)

		if order.PaidAmount.IsPositive() {
			if order.CustomerID == nil {
				return nil, fmt.Errorf("%w: a payment needs a customer wallet to land in", apperrors.ErrOrphanTransaction)
			}
			txn := s.paymentTransaction(order.OrderID, *order.CustomerID, order.PaidAmount, "initial payment on "+order.Code, actorID, now)
			walletTxns = []domain.WalletTransaction{txn}
			balanceChanges = map[string]decimal.Decimal{*order.CustomerID: order.PaidAmount}
		}
	}

	lowStocks, err := s.orderRepo.SaveOrder(ctx, order, lines, stockDeltas, walletTxns, balanceChanges)
	if err != nil {
		return nil, fmt.Errorf("failed to save order: %w", err)
	}
	s.notificationSvc.NotifyLowStock(ctx, lowStocks, actorID)

	order.Lines = lines
	resp := dto.ToOrderResponse(&order, warnings)
	return &resp, nil
}

// UpdateOrder replaces an order's lines and charges. Stock moves by the net
// difference per product against the previous lines, and a change in the
// paid amount appends an adjusting wallet entry. The request's version must
// match the stored order.
func (s *OrderService) UpdateOrder(ctx context.Context, orderID string, req dto.UpdateOrderRequest, actorID string) (*dto.OrderResponse, error) {
	perms, err := s.userSvc.GetPermissions(ctx, actorID)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve acting user: %w", err)
	}
	existing, err := s.orderRepo.FindOrderWithLines(ctx, orderID)
	if err != nil {
		return nil, fmt.Errorf("failed to load order for update: %w", err)
	}
	if existing.Status == domain.OrderCancelled {
		return nil, fmt.Errorf("%w: order %s is cancelled", apperrors.ErrConflict, existing.Code)
	}
	if err := validateCharges(req.Discount, req.Shipping, req.ExtraFees, req.PaidAmount); err != nil {
		return nil, err
	}

	customerID := existing.CustomerID
	if req.CustomerID != nil {
		if existing.CustomerID != nil && *req.CustomerID != *existing.CustomerID && existing.PaidAmount.IsPositive() {
			return nil, fmt.Errorf("%w: cannot reassign a paid order to another customer", apperrors.ErrConflict)
		}
		if _, err := s.customerRepo.FindCustomerByID(ctx, *req.CustomerID); err != nil {
			return nil, fmt.Errorf("failed to validate order customer: %w", err)
		}
		customerID = req.CustomerID
	}

	now := time.Now()
	lines, warnings, err := s.buildLines(ctx, existing.OrderID, req.Lines, perms, actorID, now)
	if err != nil {
		return nil, err
	}

	totals := ordermath.ComputeTotals(lines, req.Discount, req.Shipping, req.ExtraFees)

	updated := *existing
	updated.CustomerID = customerID
	updated.Subtotal = totals.Subtotal
	updated.Discount = money.Round(req.Discount, money.ScaleAmount)
	updated.Shipping = money.Round(req.Shipping, money.ScaleAmount)
	updated.ExtraFees = money.Round(req.ExtraFees, money.ScaleAmount)
	updated.Total = totals.Total
	updated.PaidAmount = money.Round(req.PaidAmount, money.ScaleAmount)
	updated.Version = existing.Version + 1
	updated.LastUpdatedAt = now
	updated.LastUpdatedBy = actorID

	var stockDeltas map[string]int64
	if existing.OrderType == domain.TypeOrder {
		updated.PaymentState = ordermath.PaymentStatusFor(updated.PaidAmount, updated.Total)
		stockDeltas = ordermath.StockDeltas(existing.Lines, lines)
	} else if updated.PaidAmount.IsPositive() {
		return nil, fmt.Errorf("%w: quotes cannot carry payments", apperrors.ErrValidation)
	}

	var walletTxns []domain.WalletTransaction
	var balanceChanges map[string]decimal.Decimal
	paidDiff := updated.PaidAmount.Sub(existing.PaidAmount)
	if !paidDiff.IsZero() {
		if updated.CustomerID == nil {
			return nil, fmt.Errorf("%w: a payment needs a customer wallet to land in", apperrors.ErrOrphanTransaction)
		}
		direction := domain.WalletCredit
		note := "payment adjustment on " + updated.Code
		if paidDiff.IsNegative() {
			direction = domain.WalletDebit
		}
		txn := domain.WalletTransaction{
			TransactionID: uuid.NewString(),
			CustomerID:    *updated.CustomerID,
			OrderID:       &updated.OrderID,
			Direction:     direction,
			Amount:        paidDiff.Abs(),
			Note:          note,
			AuditFields: domain.AuditFields{
				CreatedAt:     now,
				CreatedBy:     actorID,
				LastUpdatedAt: now,
				LastUpdatedBy: actorID,
			},
		}
		walletTxns = []domain.WalletTransaction{txn}
		balanceChanges = map[string]decimal.Decimal{*updated.CustomerID: paidDiff}
	}

	lowStocks, err := s.orderRepo.UpdateOrder(ctx, updated, lines, stockDeltas, walletTxns, balanceChanges, req.Version)
	if err != nil {
		return nil, fmt.Errorf("failed to update order: %w", err)
	}
	s.notificationSvc.NotifyLowStock(ctx, lowStocks, actorID)

	updated.Lines = lines
	resp := dto.ToOrderResponse(&updated, warnings)
	return &resp, nil
}

// ConvertToFirmOrder promotes a quote to a firm order, decrementing stock
// for its lines. The reverse direction does not exist.
func (s *OrderService) ConvertToFirmOrder(ctx context.Context, orderID string, actorID string) (*dto.OrderResponse, error) {
	existing, err := s.orderRepo.FindOrderWithLines(ctx, orderID)
	if err != nil {
		return nil, fmt.Errorf("failed to load order for conversion: %w", err)
	}
	if existing.OrderType != domain.TypeQuote {
		return nil, fmt.Errorf("%w: %s is already a firm order", apperrors.ErrConflict, existing.Code)
	}
	if existing.Status == domain.OrderCancelled {
		return nil, fmt.Errorf("%w: order %s is cancelled", apperrors.ErrConflict, existing.Code)
	}

	now := time.Now()
	updated := *existing
	updated.OrderType = domain.TypeOrder
	updated.PaymentState = ordermath.PaymentStatusFor(updated.PaidAmount, updated.Total)
	updated.Version = existing.Version + 1
	updated.LastUpdatedAt = now
	updated.LastUpdatedBy = actorID

	stockDeltas := ordermath.StockDeltas(nil, existing.Lines)

	lowStocks, err := s.orderRepo.UpdateOrder(ctx, updated, existing.Lines, stockDeltas, nil, nil, existing.Version)
	if err != nil {
		return nil, fmt.Errorf("failed to convert quote: %w", err)
	}
	s.notificationSvc.NotifyLowStock(ctx, lowStocks, actorID)

	updated.Lines = existing.Lines
	resp := dto.ToOrderResponse(&updated, nil)
	return &resp, nil
}

// RecordPayment credits the order's customer wallet and advances the
// order's payment status in one transaction.
func (s *OrderService) RecordPayment(ctx context.Context, orderID string, req dto.RecordPaymentRequest, actorID string) (*dto.OrderResponse, error) {
	if req.Amount.LessThanOrEqual(decimal.Zero) {
		return nil, fmt.Errorf("%w: payment amount must be positive, got %s", apperrors.ErrValidation, req.Amount)
	}

	existing, err := s.orderRepo.FindOrderWithLines(ctx, orderID)
	if err != nil {
		return nil, fmt.Errorf("failed to load order for payment: %w", err)
	}
	if existing.OrderType != domain.TypeOrder {
		return nil, fmt.Errorf("%w: payments can only be recorded on firm orders", apperrors.ErrConflict)
	}
	if existing.Status == domain.OrderCancelled {
		return nil, fmt.Errorf("%w: order %s is cancelled", apperrors.ErrConflict, existing.Code)
	}
	if existing.CustomerID == nil {
		return nil, fmt.Errorf("%w: a payment needs a customer wallet to land in", apperrors.ErrOrphanTransaction)
	}

	now := time.Now()
	amount := money.Round(req.Amount, money.ScaleAmount)

	updated := *existing
	updated.PaidAmount = existing.PaidAmount.Add(amount)
	updated.PaymentState = ordermath.PaymentStatusFor(updated.PaidAmount, updated.Total)
	updated.Version = existing.Version + 1
	updated.LastUpdatedAt = now
	updated.LastUpdatedBy = actorID

	note := req.Note
	if note == "" {
		note = "payment on " + updated.Code
	}
	txn := s.paymentTransaction(updated.OrderID, *existing.CustomerID, amount, note, actorID, now)
	balanceChanges := map[string]decimal.Decimal{*existing.CustomerID: amount}

	if err := s.orderRepo.UpdateOrderPayment(ctx, updated, txn, balanceChanges, existing.Version); err != nil {
		return nil, fmt.Errorf("failed to record payment: %w", err)
	}

	updated.Lines = existing.Lines
	resp := dto.ToOrderResponse(&updated, nil)
	return &resp, nil
}

// GetOrder retrieves an order with its lines.
func (s *OrderService) GetOrder(ctx context.Context, orderID string) (*dto.OrderResponse, error) {
	order, err := s.orderRepo.FindOrderWithLines(ctx, orderID)
	if err != nil {
		return nil, fmt.Errorf("failed to get order in service: %w", err)
	}
	resp := dto.ToOrderResponse(order, nil)
	return &resp, nil
}

// ListOrders returns a page of order headers, newest first.
func (s *OrderService) ListOrders(ctx context.Context, params dto.ListOrdersParams) (*dto.ListOrdersResponse, error) {
	orders, nextToken, err := s.orderRepo.ListOrders(ctx, params.Limit, params.NextToken)
	if err != nil {
		return nil, fmt.Errorf("failed to list orders in service: %w", err)
	}
	responses := make([]dto.OrderResponse, len(orders))
	for i := range orders {
		responses[i] = dto.ToOrderResponse(&orders[i], nil)
	}
	return &dto.ListOrdersResponse{Orders: responses, NextToken: nextToken}, nil
}

// buildLines prices every requested line and materializes the order lines
// in request order.
func (s *OrderService) buildLines(ctx context.Context, orderID string, inputs []dto.OrderLineInput, perms domain.Permissions, actorID string, now time.Time) ([]domain.OrderLine, []domain.Warning, error) {
	productIDs := make([]string, 0, len(inputs))
	for _, in := range inputs {
		if in.ProductID != nil {
			productIDs = append(productIDs, *in.ProductID)
		}
	}
	products := map[string]domain.Product{}
	if len(productIDs) > 0 {
		var err error
		products, err = s.productRepo.FindProductsByIDs(ctx, productIDs)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to load products for order lines: %w", err)
		}
	}

	lines := make([]domain.OrderLine, len(inputs))
	var warnings []domain.Warning
	for i, in := range inputs {
		if in.Quantity.LessThanOrEqual(decimal.Zero) {
			return nil, nil, fmt.Errorf("%w: quantity must be positive on line %d", apperrors.ErrInvalidQuantity, i+1)
		}

		line := domain.OrderLine{
			LineID:      uuid.NewString(),
			OrderID:     orderID,
			ProductID:   in.ProductID,
			Description: in.Description,
			Quantity:    money.Round(in.Quantity, money.ScaleQuantity),
			Position:    i,
			AuditFields: domain.AuditFields{
				CreatedAt:     now,
				CreatedBy:     actorID,
				LastUpdatedAt: now,
				LastUpdatedBy: actorID,
			},
		}

		switch {
		case in.ProductID == nil:
			// Free-text line: seller's price stands, no cost floor.
			unitPrice := decimal.Zero
			if in.UnitPrice != nil {
				if in.UnitPrice.IsNegative() {
					return nil, nil, fmt.Errorf("%w: unit price cannot be negative on line %d", apperrors.ErrValidation, i+1)
				}
				unitPrice = money.Round(*in.UnitPrice, money.ScaleUnitPrice)
			}
			line.UnitPrice = unitPrice
			line.LineTotal = ordermath.LineTotal(line.Quantity, unitPrice)

		case in.UnitPrice != nil:
			priced, err := s.pricingSvc.PriceManualLine(ctx, *in.ProductID, line.Quantity, *in.UnitPrice, perms)
			if err != nil {
				return nil, nil, fmt.Errorf("line %d: %w", i+1, err)
			}
			line.UnitPrice = priced.UnitPrice
			line.LineTotal = priced.LineTotal
			warnings = append(warnings, priced.Warnings...)

		default:
			priced, err := s.pricingSvc.PriceLine(ctx, *in.ProductID, line.Quantity, in.MarginPercent, perms)
			if err != nil {
				return nil, nil, fmt.Errorf("line %d: %w", i+1, err)
			}
			line.UnitPrice = priced.UnitPrice
			line.LineTotal = priced.LineTotal
			warnings = append(warnings, priced.Warnings...)
		}

		if line.Description == "" && in.ProductID != nil {
			if product, ok := products[*in.ProductID]; ok {
				line.Description = product.Title
			}
		}
		lines[i] = line
	}
	return lines, warnings, nil
}

func (s *OrderService) paymentTransaction(orderID, customerID string, amount decimal.Decimal, note, actorID string, now time.Time) domain.WalletTransaction {
	return domain.WalletTransaction{
		TransactionID: uuid.NewString(),
		CustomerID:    customerID,
		OrderID:       &orderID,
		Direction:     domain.WalletCredit,
		Amount:        amount,
		Note:          note,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     actorID,
			LastUpdatedAt: now,
			LastUpdatedBy: actorID,
		},
	}
}

func validateCharges(discount, shipping, extraFees, paidAmount decimal.Decimal) error {
	for _, pair := range []struct {
		name  string
		value decimal.Decimal
	}{
		{"discount", discount},
		{"shipping", shipping},
		{"extraFees", extraFees},
		{"paidAmount", paidAmount},
	} {
		if pair.value.IsNegative() {
			return fmt.Errorf("%w: %s cannot be negative", apperrors.ErrValidation, pair.name)
		}
	}
	return nil
}
