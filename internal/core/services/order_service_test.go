package services_test

import (
	"context"
	"strings"
	"testing"

	"github.com/salescore/order_ledger_app/internal/apperrors"
	"github.com/salescore/order_ledger_app/internal/core/domain"
	"github.com/salescore/order_ledger_app/internal/core/services"
	"github.com/salescore/order_ledger_app/internal/dto"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

type OrderServiceTestSuite struct {
	suite.Suite
	mockOrderRepo    *MockOrderRepository
	mockProductRepo  *MockProductRepository
	mockStockRepo    *MockStockRepository
	mockCustomerRepo *MockCustomerRepository
	mockUserRepo     *MockUserRepository
	mockNotifSvc     *MockNotificationService
	service          *services.OrderService

	actorID string
}

func (suite *OrderServiceTestSuite) SetupTest() {
	suite.mockOrderRepo = new(MockOrderRepository)
	suite.mockProductRepo = new(MockProductRepository)
	suite.mockStockRepo = new(MockStockRepository)
	suite.mockCustomerRepo = new(MockCustomerRepository)
	suite.mockUserRepo = new(MockUserRepository)
	suite.mockNotifSvc = new(MockNotificationService)

	currencySvc := services.NewCurrencyService(new(MockCurrencyRepository), new(MockExchangeRateRepository), "USD")
	pricingSvc := services.NewPricingService(suite.mockProductRepo, suite.mockStockRepo, currencySvc)
	userSvc := services.NewUserService(suite.mockUserRepo)

	suite.service = services.NewOrderService(
		suite.mockOrderRepo,
		suite.mockProductRepo,
		suite.mockCustomerRepo,
		pricingSvc,
		currencySvc,
		userSvc,
		suite.mockNotifSvc,
	)

	suite.actorID = "seller-1"
	suite.mockNotifSvc.On("NotifyLowStock", mock.Anything, mock.Anything, mock.Anything).Maybe()
}

func (suite *OrderServiceTestSuite) expectActor() {
	suite.mockUserRepo.On("FindUserByID", mock.Anything, suite.actorID).
		Return(&domain.User{UserID: suite.actorID}, nil).Once()
}

func (suite *OrderServiceTestSuite) expectWidget() {
	product := domain.Product{
		ProductID: "P1",
		SKU:       "WID-001",
		Title:     "Widget",
		ListPrice: dec("10.00"),
		CostPrice: dec("8.00"),
		IsActive:  true,
	}
	suite.mockProductRepo.On("FindProductsByIDs", mock.Anything, []string{"P1"}).
		Return(map[string]domain.Product{"P1": product}, nil).Once()
	suite.mockProductRepo.On("FindProductByID", mock.Anything, "P1").
		Return(&product, nil).Once()
}

func (suite *OrderServiceTestSuite) TestCreateOrder_FirmOrderConsumesStock() {
	ctx := context.Background()
	suite.expectActor()
	suite.expectWidget()

	suite.mockOrderRepo.On("SaveOrder", ctx,
		mock.MatchedBy(func(o domain.Order) bool {
			return strings.HasPrefix(o.Code, "SO-") &&
				o.OrderType == domain.TypeOrder &&
				o.PaymentState == domain.PaymentUnpaid &&
				o.Version == 1 &&
				o.Subtotal.Equal(dec("20.00")) &&
				o.Total.Equal(dec("20.00"))
		}),
		mock.MatchedBy(func(lines []domain.OrderLine) bool {
			return len(lines) == 1 &&
				lines[0].UnitPrice.Equal(dec("10.00")) &&
				lines[0].LineTotal.Equal(dec("20.00")) &&
				lines[0].Description == "Widget"
		}),
		mock.MatchedBy(func(deltas map[string]int64) bool {
			return len(deltas) == 1 && deltas["P1"] == -2
		}),
		mock.Anything, mock.Anything,
	).Return(nil, nil).Once()

	resp, err := suite.service.CreateOrder(ctx, dto.CreateOrderRequest{
		BranchID:     "B1",
		OrderType:    "ORDER",
		CurrencyCode: "USD",
		Lines:        []dto.OrderLineInput{{ProductID: strPtr("P1"), Quantity: dec("2")}},
	}, suite.actorID)

	suite.Require().NoError(err)
	suite.Require().NotNil(resp)
	suite.True(resp.Subtotal.Equal(dec("20.00")))
	suite.EqualValues(1, resp.Version)
	suite.mockOrderRepo.AssertExpectations(suite.T())
}

func (suite *OrderServiceTestSuite) TestCreateOrder_QuoteLeavesStockAlone() {
	ctx := context.Background()
	suite.expectActor()
	suite.expectWidget()

	suite.mockOrderRepo.On("SaveOrder", ctx,
		mock.MatchedBy(func(o domain.Order) bool {
			return strings.HasPrefix(o.Code, "QT-") && o.OrderType == domain.TypeQuote
		}),
		mock.Anything,
		mock.MatchedBy(func(deltas map[string]int64) bool {
			return deltas == nil
		}),
		mock.Anything, mock.Anything,
	).Return(nil, nil).Once()

	resp, err := suite.service.CreateOrder(ctx, dto.CreateOrderRequest{
		BranchID:     "B1",
		OrderType:    "QUOTE",
		CurrencyCode: "USD",
		Lines:        []dto.OrderLineInput{{ProductID: strPtr("P1"), Quantity: dec("2")}},
	}, suite.actorID)

	suite.Require().NoError(err)
	suite.Equal(domain.TypeQuote, resp.OrderType)
	suite.mockOrderRepo.AssertExpectations(suite.T())
}

func (suite *OrderServiceTestSuite) TestCreateOrder_QuoteWithPaymentRejected() {
	ctx := context.Background()
	suite.expectActor()

	resp, err := suite.service.CreateOrder(ctx, dto.CreateOrderRequest{
		BranchID:     "B1",
		OrderType:    "QUOTE",
		CurrencyCode: "USD",
		PaidAmount:   dec("5"),
		Lines:        []dto.OrderLineInput{{ProductID: strPtr("P1"), Quantity: dec("1")}},
	}, suite.actorID)

	suite.Require().Error(err)
	suite.Nil(resp)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockOrderRepo.AssertNotCalled(suite.T(), "SaveOrder")
}

func (suite *OrderServiceTestSuite) TestCreateOrder_InitialPaymentCreditsWallet() {
	ctx := context.Background()
	suite.expectActor()
	suite.expectWidget()

	suite.mockCustomerRepo.On("FindCustomerByID", ctx, "C1").Return(&domain.Customer{CustomerID: "C1"}, nil).Once()
	suite.mockOrderRepo.On("SaveOrder", ctx,
		mock.MatchedBy(func(o domain.Order) bool {
			return o.PaymentState == domain.PaymentPaid && o.PaidAmount.Equal(dec("20.00"))
		}),
		mock.Anything, mock.Anything,
		mock.MatchedBy(func(txns []domain.WalletTransaction) bool {
			return len(txns) == 1 &&
				txns[0].Direction == domain.WalletCredit &&
				txns[0].Amount.Equal(dec("20.00")) &&
				txns[0].CustomerID == "C1" &&
				txns[0].OrderID != nil
		}),
		mock.MatchedBy(func(changes map[string]decimal.Decimal) bool {
			return changes["C1"].Equal(dec("20.00"))
		}),
	).Return(nil, nil).Once()

	resp, err := suite.service.CreateOrder(ctx, dto.CreateOrderRequest{
		BranchID:     "B1",
		CustomerID:   strPtr("C1"),
		OrderType:    "ORDER",
		CurrencyCode: "USD",
		PaidAmount:   dec("20"),
		Lines:        []dto.OrderLineInput{{ProductID: strPtr("P1"), Quantity: dec("2")}},
	}, suite.actorID)

	suite.Require().NoError(err)
	suite.Equal(domain.PaymentPaid, resp.PaymentStatus)
	suite.mockOrderRepo.AssertExpectations(suite.T())
}

func (suite *OrderServiceTestSuite) TestCreateOrder_PaymentWithoutCustomer() {
	ctx := context.Background()
	suite.expectActor()
	suite.expectWidget()

	resp, err := suite.service.CreateOrder(ctx, dto.CreateOrderRequest{
		BranchID:     "B1",
		OrderType:    "ORDER",
		CurrencyCode: "USD",
		PaidAmount:   dec("10"),
		Lines:        []dto.OrderLineInput{{ProductID: strPtr("P1"), Quantity: dec("2")}},
	}, suite.actorID)

	suite.Require().Error(err)
	suite.Nil(resp)
	suite.ErrorIs(err, apperrors.ErrOrphanTransaction)
	suite.mockOrderRepo.AssertNotCalled(suite.T(), "SaveOrder")
}

func (suite *OrderServiceTestSuite) existingFirmOrder() *domain.Order {
	return &domain.Order{
		OrderID:      "O1",
		Code:         "SO-260801-ABCDE",
		BranchID:     "B1",
		SellerID:     suite.actorID,
		OrderType:    domain.TypeOrder,
		Status:       domain.OrderPending,
		PaymentState: domain.PaymentUnpaid,
		CurrencyCode: "USD",
		ExchangeRate: dec("1"),
		Subtotal:     dec("20.00"),
		Total:        dec("20.00"),
		PaidAmount:   dec("0"),
		Version:      3,
		Lines: []domain.OrderLine{{
			LineID:    "L1",
			OrderID:   "O1",
			ProductID: strPtr("P1"),
			Quantity:  dec("2"),
			UnitPrice: dec("10.00"),
			LineTotal: dec("20.00"),
		}},
	}
}

func (suite *OrderServiceTestSuite) TestUpdateOrder_NetStockDelta() {
	ctx := context.Background()
	suite.expectActor()
	suite.expectWidget()

	suite.mockOrderRepo.On("FindOrderWithLines", ctx, "O1").Return(suite.existingFirmOrder(), nil).Once()
	suite.mockOrderRepo.On("UpdateOrder", ctx,
		mock.MatchedBy(func(o domain.Order) bool {
			return o.Version == 4 && o.Subtotal.Equal(dec("50.00"))
		}),
		mock.Anything,
		mock.MatchedBy(func(deltas map[string]int64) bool {
			// 2 units already consumed, 5 now needed: one net -3.
			return len(deltas) == 1 && deltas["P1"] == -3
		}),
		mock.Anything, mock.Anything,
		int64(3),
	).Return(nil, nil).Once()

	resp, err := suite.service.UpdateOrder(ctx, "O1", dto.UpdateOrderRequest{
		Lines:   []dto.OrderLineInput{{ProductID: strPtr("P1"), Quantity: dec("5")}},
		Version: 3,
	}, suite.actorID)

	suite.Require().NoError(err)
	suite.True(resp.Subtotal.Equal(dec("50.00")))
	suite.EqualValues(4, resp.Version)
	suite.mockOrderRepo.AssertExpectations(suite.T())
}

func (suite *OrderServiceTestSuite) TestUpdateOrder_VersionConflict() {
	ctx := context.Background()
	suite.expectActor()
	suite.expectWidget()

	suite.mockOrderRepo.On("FindOrderWithLines", ctx, "O1").Return(suite.existingFirmOrder(), nil).Once()
	suite.mockOrderRepo.On("UpdateOrder", ctx, mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything, int64(2)).
		Return(nil, apperrors.ErrConcurrentModification).Once()

	resp, err := suite.service.UpdateOrder(ctx, "O1", dto.UpdateOrderRequest{
		Lines:   []dto.OrderLineInput{{ProductID: strPtr("P1"), Quantity: dec("5")}},
		Version: 2,
	}, suite.actorID)

	suite.Require().Error(err)
	suite.Nil(resp)
	suite.ErrorIs(err, apperrors.ErrConcurrentModification)
}

func (suite *OrderServiceTestSuite) TestUpdateOrder_CancelledRejected() {
	ctx := context.Background()
	suite.expectActor()

	existing := suite.existingFirmOrder()
	existing.Status = domain.OrderCancelled
	suite.mockOrderRepo.On("FindOrderWithLines", ctx, "O1").Return(existing, nil).Once()

	resp, err := suite.service.UpdateOrder(ctx, "O1", dto.UpdateOrderRequest{
		Lines:   []dto.OrderLineInput{{ProductID: strPtr("P1"), Quantity: dec("1")}},
		Version: 3,
	}, suite.actorID)

	suite.Require().Error(err)
	suite.Nil(resp)
	suite.ErrorIs(err, apperrors.ErrConflict)
}

func (suite *OrderServiceTestSuite) TestUpdateOrder_ReassignPaidOrderRejected() {
	ctx := context.Background()
	suite.expectActor()

	existing := suite.existingFirmOrder()
	existing.CustomerID = strPtr("C1")
	existing.PaidAmount = dec("10.00")
	existing.PaymentState = domain.PaymentPartial
	suite.mockOrderRepo.On("FindOrderWithLines", ctx, "O1").Return(existing, nil).Once()

	resp, err := suite.service.UpdateOrder(ctx, "O1", dto.UpdateOrderRequest{
		CustomerID: strPtr("C2"),
		PaidAmount: dec("10.00"),
		Lines:      []dto.OrderLineInput{{ProductID: strPtr("P1"), Quantity: dec("2")}},
		Version:    3,
	}, suite.actorID)

	suite.Require().Error(err)
	suite.Nil(resp)
	suite.ErrorIs(err, apperrors.ErrConflict)
}

func (suite *OrderServiceTestSuite) TestUpdateOrder_PaidDiffAppendsAdjustment() {
	ctx := context.Background()
	suite.expectActor()
	suite.expectWidget()

	existing := suite.existingFirmOrder()
	existing.CustomerID = strPtr("C1")
	existing.PaidAmount = dec("20.00")
	existing.PaymentState = domain.PaymentPaid
	suite.mockOrderRepo.On("FindOrderWithLines", ctx, "O1").Return(existing, nil).Once()
	suite.mockOrderRepo.On("UpdateOrder", ctx, mock.Anything, mock.Anything, mock.Anything,
		mock.MatchedBy(func(txns []domain.WalletTransaction) bool {
			// Lowering the paid amount from 20 to 15 debits the wallet 5.
			return len(txns) == 1 &&
				txns[0].Direction == domain.WalletDebit &&
				txns[0].Amount.Equal(dec("5.00"))
		}),
		mock.MatchedBy(func(changes map[string]decimal.Decimal) bool {
			return changes["C1"].Equal(dec("-5.00"))
		}),
		int64(3),
	).Return(nil, nil).Once()

	resp, err := suite.service.UpdateOrder(ctx, "O1", dto.UpdateOrderRequest{
		PaidAmount: dec("15.00"),
		Lines:      []dto.OrderLineInput{{ProductID: strPtr("P1"), Quantity: dec("2")}},
		Version:    3,
	}, suite.actorID)

	suite.Require().NoError(err)
	suite.Equal(domain.PaymentPartial, resp.PaymentStatus)
	suite.mockOrderRepo.AssertExpectations(suite.T())
}

func (suite *OrderServiceTestSuite) TestConvertToFirmOrder_ConsumesStock() {
	ctx := context.Background()

	existing := suite.existingFirmOrder()
	existing.OrderType = domain.TypeQuote
	existing.Code = "QT-260801-ABCDE"
	suite.mockOrderRepo.On("FindOrderWithLines", ctx, "O1").Return(existing, nil).Once()
	suite.mockOrderRepo.On("UpdateOrder", ctx,
		mock.MatchedBy(func(o domain.Order) bool {
			return o.OrderType == domain.TypeOrder && o.Version == 4 && o.Code == "QT-260801-ABCDE"
		}),
		mock.Anything,
		mock.MatchedBy(func(deltas map[string]int64) bool {
			return deltas["P1"] == -2
		}),
		mock.Anything, mock.Anything,
		int64(3),
	).Return(nil, nil).Once()

	resp, err := suite.service.ConvertToFirmOrder(ctx, "O1", suite.actorID)

	suite.Require().NoError(err)
	suite.Equal(domain.TypeOrder, resp.OrderType)
	suite.mockOrderRepo.AssertExpectations(suite.T())
}

func (suite *OrderServiceTestSuite) TestConvertToFirmOrder_AlreadyFirm() {
	ctx := context.Background()

	suite.mockOrderRepo.On("FindOrderWithLines", ctx, "O1").Return(suite.existingFirmOrder(), nil).Once()

	resp, err := suite.service.ConvertToFirmOrder(ctx, "O1", suite.actorID)

	suite.Require().Error(err)
	suite.Nil(resp)
	suite.ErrorIs(err, apperrors.ErrConflict)
	suite.mockOrderRepo.AssertNotCalled(suite.T(), "UpdateOrder")
}

func (suite *OrderServiceTestSuite) TestRecordPayment_PartialThenStatusAdvances() {
	ctx := context.Background()

	existing := suite.existingFirmOrder()
	existing.CustomerID = strPtr("C1")
	existing.Total = dec("50.00")
	suite.mockOrderRepo.On("FindOrderWithLines", ctx, "O1").Return(existing, nil).Once()
	suite.mockOrderRepo.On("UpdateOrderPayment", ctx,
		mock.MatchedBy(func(o domain.Order) bool {
			return o.PaidAmount.Equal(dec("20.00")) && o.PaymentState == domain.PaymentPartial && o.Version == 4
		}),
		mock.MatchedBy(func(txn domain.WalletTransaction) bool {
			return txn.Direction == domain.WalletCredit && txn.Amount.Equal(dec("20.00")) && txn.CustomerID == "C1"
		}),
		mock.MatchedBy(func(changes map[string]decimal.Decimal) bool {
			return changes["C1"].Equal(dec("20.00"))
		}),
		int64(3),
	).Return(nil).Once()

	resp, err := suite.service.RecordPayment(ctx, "O1", dto.RecordPaymentRequest{Amount: dec("20")}, suite.actorID)

	suite.Require().NoError(err)
	suite.Equal(domain.PaymentPartial, resp.PaymentStatus)
	suite.mockOrderRepo.AssertExpectations(suite.T())
}

func (suite *OrderServiceTestSuite) TestRecordPayment_FullyPaid() {
	ctx := context.Background()

	existing := suite.existingFirmOrder()
	existing.CustomerID = strPtr("C1")
	suite.mockOrderRepo.On("FindOrderWithLines", ctx, "O1").Return(existing, nil).Once()
	suite.mockOrderRepo.On("UpdateOrderPayment", ctx,
		mock.MatchedBy(func(o domain.Order) bool {
			return o.PaymentState == domain.PaymentPaid
		}),
		mock.Anything, mock.Anything, int64(3),
	).Return(nil).Once()

	resp, err := suite.service.RecordPayment(ctx, "O1", dto.RecordPaymentRequest{Amount: dec("20")}, suite.actorID)

	suite.Require().NoError(err)
	suite.Equal(domain.PaymentPaid, resp.PaymentStatus)
}

func (suite *OrderServiceTestSuite) TestRecordPayment_OnQuoteRejected() {
	ctx := context.Background()

	existing := suite.existingFirmOrder()
	existing.OrderType = domain.TypeQuote
	suite.mockOrderRepo.On("FindOrderWithLines", ctx, "O1").Return(existing, nil).Once()

	resp, err := suite.service.RecordPayment(ctx, "O1", dto.RecordPaymentRequest{Amount: dec("10")}, suite.actorID)

	suite.Require().Error(err)
	suite.Nil(resp)
	suite.ErrorIs(err, apperrors.ErrConflict)
}

func (suite *OrderServiceTestSuite) TestRecordPayment_NoCustomer() {
	ctx := context.Background()

	suite.mockOrderRepo.On("FindOrderWithLines", ctx, "O1").Return(suite.existingFirmOrder(), nil).Once()

	resp, err := suite.service.RecordPayment(ctx, "O1", dto.RecordPaymentRequest{Amount: dec("10")}, suite.actorID)

	suite.Require().Error(err)
	suite.Nil(resp)
	suite.ErrorIs(err, apperrors.ErrOrphanTransaction)
	suite.mockOrderRepo.AssertNotCalled(suite.T(), "UpdateOrderPayment")
}

func (suite *OrderServiceTestSuite) TestRecordPayment_NonPositiveAmount() {
	ctx := context.Background()

	resp, err := suite.service.RecordPayment(ctx, "O1", dto.RecordPaymentRequest{Amount: dec("0")}, suite.actorID)

	suite.Require().Error(err)
	suite.Nil(resp)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockOrderRepo.AssertNotCalled(suite.T(), "FindOrderWithLines")
}

func TestOrderService(t *testing.T) {
	suite.Run(t, new(OrderServiceTestSuite))
}
