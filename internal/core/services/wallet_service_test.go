package services_test

import (
	"context"
	"testing"

	"github.com/salescore/order_ledger_app/internal/apperrors"
	"github.com/salescore/order_ledger_app/internal/core/domain"
	"github.com/salescore/order_ledger_app/internal/core/services"
	"github.com/salescore/order_ledger_app/internal/dto"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

type WalletServiceTestSuite struct {
	suite.Suite
	mockWalletRepo   *MockWalletRepository
	mockCustomerRepo *MockCustomerRepository
	service          *services.WalletService
}

func (suite *WalletServiceTestSuite) SetupTest() {
	suite.mockWalletRepo = new(MockWalletRepository)
	suite.mockCustomerRepo = new(MockCustomerRepository)
	suite.service = services.NewWalletService(suite.mockWalletRepo, suite.mockCustomerRepo)
}

func (suite *WalletServiceTestSuite) TestCreateTransaction_CreditAppliesBalance() {
	ctx := context.Background()
	actorID := uuid.NewString()

	suite.mockCustomerRepo.On("FindCustomerByID", ctx, "C1").Return(&domain.Customer{CustomerID: "C1"}, nil).Once()
	suite.mockWalletRepo.On("SaveWalletTransaction", ctx,
		mock.MatchedBy(func(t domain.WalletTransaction) bool {
			return t.CustomerID == "C1" && t.Direction == domain.WalletCredit && t.Amount.Equal(dec("15.00"))
		}),
		mock.MatchedBy(func(changes map[string]decimal.Decimal) bool {
			return len(changes) == 1 && changes["C1"].Equal(dec("15.00"))
		}),
	).Return(nil).Once()

	txn, err := suite.service.CreateTransaction(ctx, dto.CreateWalletTransactionRequest{
		CustomerID: "C1",
		Direction:  "CREDIT",
		Amount:     dec("15"),
	}, actorID)

	suite.Require().NoError(err)
	suite.Require().NotNil(txn)
	suite.True(txn.SignedAmount().Equal(dec("15.00")))
	suite.mockWalletRepo.AssertExpectations(suite.T())
}

func (suite *WalletServiceTestSuite) TestCreateTransaction_DebitNegatesBalance() {
	ctx := context.Background()

	suite.mockCustomerRepo.On("FindCustomerByID", ctx, "C1").Return(&domain.Customer{CustomerID: "C1"}, nil).Once()
	suite.mockWalletRepo.On("SaveWalletTransaction", ctx, mock.Anything,
		mock.MatchedBy(func(changes map[string]decimal.Decimal) bool {
			return changes["C1"].Equal(dec("-5.00"))
		}),
	).Return(nil).Once()

	txn, err := suite.service.CreateTransaction(ctx, dto.CreateWalletTransactionRequest{
		CustomerID: "C1",
		Direction:  "DEBIT",
		Amount:     dec("5"),
	}, uuid.NewString())

	suite.Require().NoError(err)
	suite.True(txn.SignedAmount().Equal(dec("-5.00")))
	suite.mockWalletRepo.AssertExpectations(suite.T())
}

func (suite *WalletServiceTestSuite) TestCreateTransaction_MissingCustomerIsOrphan() {
	ctx := context.Background()

	suite.mockCustomerRepo.On("FindCustomerByID", ctx, "GHOST").Return(nil, apperrors.ErrNotFound).Once()

	txn, err := suite.service.CreateTransaction(ctx, dto.CreateWalletTransactionRequest{
		CustomerID: "GHOST",
		Direction:  "CREDIT",
		Amount:     dec("10"),
	}, uuid.NewString())

	suite.Require().Error(err)
	suite.Nil(txn)
	suite.ErrorIs(err, apperrors.ErrOrphanTransaction)
	suite.mockWalletRepo.AssertNotCalled(suite.T(), "SaveWalletTransaction")
}

func (suite *WalletServiceTestSuite) TestCreateTransaction_NonPositiveAmount() {
	ctx := context.Background()

	txn, err := suite.service.CreateTransaction(ctx, dto.CreateWalletTransactionRequest{
		CustomerID: "C1",
		Direction:  "CREDIT",
		Amount:     dec("0"),
	}, uuid.NewString())

	suite.Require().Error(err)
	suite.Nil(txn)
	suite.ErrorIs(err, apperrors.ErrValidation)
}

func (suite *WalletServiceTestSuite) TestUpdateTransaction_AmountChangeRebalances() {
	ctx := context.Background()
	existing := &domain.WalletTransaction{
		TransactionID: "T1",
		CustomerID:    "C1",
		Direction:     domain.WalletCredit,
		Amount:        dec("15.00"),
	}

	suite.mockWalletRepo.On("FindWalletTransactionByID", ctx, "T1").Return(existing, nil).Once()
	suite.mockWalletRepo.On("UpdateWalletTransaction", ctx,
		mock.MatchedBy(func(t domain.WalletTransaction) bool {
			return t.TransactionID == "T1" && t.Amount.Equal(dec("20.00"))
		}),
		mock.MatchedBy(func(changes map[string]decimal.Decimal) bool {
			// -15 to reverse the old entry, +20 for the new one.
			return len(changes) == 1 && changes["C1"].Equal(dec("5.00"))
		}),
	).Return(nil).Once()

	txn, err := suite.service.UpdateTransaction(ctx, "T1", dto.UpdateWalletTransactionRequest{
		Amount: decPtr("20"),
	}, uuid.NewString())

	suite.Require().NoError(err)
	suite.True(txn.Amount.Equal(dec("20.00")))
	suite.mockWalletRepo.AssertExpectations(suite.T())
}

func (suite *WalletServiceTestSuite) TestUpdateTransaction_MoveBetweenCustomers() {
	ctx := context.Background()
	existing := &domain.WalletTransaction{
		TransactionID: "T1",
		CustomerID:    "C1",
		Direction:     domain.WalletCredit,
		Amount:        dec("15.00"),
	}

	suite.mockWalletRepo.On("FindWalletTransactionByID", ctx, "T1").Return(existing, nil).Once()
	suite.mockCustomerRepo.On("FindCustomerByID", ctx, "C2").Return(&domain.Customer{CustomerID: "C2"}, nil).Once()
	suite.mockWalletRepo.On("UpdateWalletTransaction", ctx, mock.Anything,
		mock.MatchedBy(func(changes map[string]decimal.Decimal) bool {
			return len(changes) == 2 && changes["C1"].Equal(dec("-15.00")) && changes["C2"].Equal(dec("15.00"))
		}),
	).Return(nil).Once()

	txn, err := suite.service.UpdateTransaction(ctx, "T1", dto.UpdateWalletTransactionRequest{
		CustomerID: strPtr("C2"),
	}, uuid.NewString())

	suite.Require().NoError(err)
	suite.Equal("C2", txn.CustomerID)
	suite.mockWalletRepo.AssertExpectations(suite.T())
	suite.mockCustomerRepo.AssertExpectations(suite.T())
}

func (suite *WalletServiceTestSuite) TestUpdateTransaction_MoveToMissingCustomer() {
	ctx := context.Background()
	existing := &domain.WalletTransaction{
		TransactionID: "T1",
		CustomerID:    "C1",
		Direction:     domain.WalletCredit,
		Amount:        dec("15.00"),
	}

	suite.mockWalletRepo.On("FindWalletTransactionByID", ctx, "T1").Return(existing, nil).Once()
	suite.mockCustomerRepo.On("FindCustomerByID", ctx, "GHOST").Return(nil, apperrors.ErrNotFound).Once()

	txn, err := suite.service.UpdateTransaction(ctx, "T1", dto.UpdateWalletTransactionRequest{
		CustomerID: strPtr("GHOST"),
	}, uuid.NewString())

	suite.Require().Error(err)
	suite.Nil(txn)
	suite.ErrorIs(err, apperrors.ErrOrphanTransaction)
	suite.mockWalletRepo.AssertNotCalled(suite.T(), "UpdateWalletTransaction")
}

func (suite *WalletServiceTestSuite) TestDeleteTransaction_ReversesBalance() {
	ctx := context.Background()
	existing := &domain.WalletTransaction{
		TransactionID: "T1",
		CustomerID:    "C1",
		Direction:     domain.WalletDebit,
		Amount:        dec("5.00"),
	}

	suite.mockWalletRepo.On("FindWalletTransactionByID", ctx, "T1").Return(existing, nil).Once()
	suite.mockWalletRepo.On("DeleteWalletTransaction", ctx, "T1",
		mock.MatchedBy(func(changes map[string]decimal.Decimal) bool {
			// Deleting a 5.00 debit gives the 5.00 back.
			return changes["C1"].Equal(dec("5.00"))
		}),
		mock.Anything, mock.Anything,
	).Return(nil).Once()

	err := suite.service.DeleteTransaction(ctx, "T1", uuid.NewString())

	suite.Require().NoError(err)
	suite.mockWalletRepo.AssertExpectations(suite.T())
}

func (suite *WalletServiceTestSuite) TestListTransactions_ReturnsBalanceAndPage() {
	ctx := context.Background()
	token := "next-page"

	suite.mockCustomerRepo.On("FindCustomerByID", ctx, "C1").Return(&domain.Customer{CustomerID: "C1", WalletBalance: dec("10.00")}, nil).Once()
	suite.mockWalletRepo.On("ListWalletTransactionsByCustomer", ctx, "C1", 20, (*string)(nil)).
		Return([]domain.WalletTransaction{
			{TransactionID: "T2", CustomerID: "C1", Direction: domain.WalletDebit, Amount: dec("5.00")},
			{TransactionID: "T1", CustomerID: "C1", Direction: domain.WalletCredit, Amount: dec("15.00")},
		}, token, nil).Once()

	summary, err := suite.service.ListTransactions(ctx, "C1", dto.ListWalletTransactionsParams{Limit: 20})

	suite.Require().NoError(err)
	suite.True(summary.Balance.Equal(dec("10.00")))
	suite.Require().Len(summary.Transactions, 2)
	suite.True(summary.Transactions[0].SignedAmount.Equal(dec("-5.00")))
	suite.Require().NotNil(summary.NextToken)
	suite.Equal(token, *summary.NextToken)
}

func (suite *WalletServiceTestSuite) TestReconcile_Consistent() {
	ctx := context.Background()

	suite.mockCustomerRepo.On("FindCustomerByID", ctx, "C1").Return(&domain.Customer{CustomerID: "C1", WalletBalance: dec("10.00")}, nil).Once()
	suite.mockWalletRepo.On("SumSignedAmounts", ctx, "C1").Return(dec("10.00"), nil).Once()

	result, err := suite.service.Reconcile(ctx, "C1")

	suite.Require().NoError(err)
	suite.True(result.Consistent)
	suite.True(result.StoredBalance.Equal(result.ComputedBalance))
}

func (suite *WalletServiceTestSuite) TestReconcile_Drifted() {
	ctx := context.Background()

	suite.mockCustomerRepo.On("FindCustomerByID", ctx, "C1").Return(&domain.Customer{CustomerID: "C1", WalletBalance: dec("10.00")}, nil).Once()
	suite.mockWalletRepo.On("SumSignedAmounts", ctx, "C1").Return(dec("12.00"), nil).Once()

	result, err := suite.service.Reconcile(ctx, "C1")

	suite.Require().NoError(err)
	suite.False(result.Consistent)
	suite.True(result.ComputedBalance.Equal(dec("12.00")))
}

func TestWalletService(t *testing.T) {
	suite.Run(t, new(WalletServiceTestSuite))
}
