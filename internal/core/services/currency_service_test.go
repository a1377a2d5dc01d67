package services_test

import (
	"context"
	"testing"

	"github.com/salescore/order_ledger_app/internal/apperrors"
	"github.com/salescore/order_ledger_app/internal/core/domain"
	"github.com/salescore/order_ledger_app/internal/core/services"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

type CurrencyServiceTestSuite struct {
	suite.Suite
	mockCurrencyRepo *MockCurrencyRepository
	mockRateRepo     *MockExchangeRateRepository
	service          *services.CurrencyService
}

func (suite *CurrencyServiceTestSuite) SetupTest() {
	suite.mockCurrencyRepo = new(MockCurrencyRepository)
	suite.mockRateRepo = new(MockExchangeRateRepository)
	suite.service = services.NewCurrencyService(suite.mockCurrencyRepo, suite.mockRateRepo, "USD")
}

func (suite *CurrencyServiceTestSuite) TestCreateCurrency_Success() {
	ctx := context.Background()
	actorID := uuid.NewString()
	input := domain.Currency{CurrencyCode: "try", Symbol: "₺", Name: "Turkish Lira", Precision: 2}

	suite.mockCurrencyRepo.On("SaveCurrency", ctx, mock.MatchedBy(func(c domain.Currency) bool {
		return c.CurrencyCode == "TRY" && c.Symbol == "₺" && c.CreatedBy == actorID
	})).Return(nil).Once()

	currency, err := suite.service.CreateCurrency(ctx, input, actorID)

	suite.Require().NoError(err)
	suite.Require().NotNil(currency)
	suite.Equal("TRY", currency.CurrencyCode)
	suite.mockCurrencyRepo.AssertExpectations(suite.T())
}

func (suite *CurrencyServiceTestSuite) TestCreateCurrency_BadCode() {
	ctx := context.Background()
	input := domain.Currency{CurrencyCode: "EURO", Symbol: "€", Name: "Euro"}

	currency, err := suite.service.CreateCurrency(ctx, input, uuid.NewString())

	suite.Require().Error(err)
	suite.Nil(currency)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockCurrencyRepo.AssertNotCalled(suite.T(), "SaveCurrency")
}

func (suite *CurrencyServiceTestSuite) TestCreateCurrency_BadPrecision() {
	ctx := context.Background()
	input := domain.Currency{CurrencyCode: "EUR", Symbol: "€", Name: "Euro", Precision: 9}

	currency, err := suite.service.CreateCurrency(ctx, input, uuid.NewString())

	suite.Require().Error(err)
	suite.Nil(currency)
	suite.ErrorIs(err, apperrors.ErrValidation)
}

func (suite *CurrencyServiceTestSuite) TestGetCurrency_NotRegistered() {
	ctx := context.Background()

	suite.mockCurrencyRepo.On("FindCurrencyByCode", ctx, "XXX").Return(nil, apperrors.ErrNotFound).Once()

	currency, err := suite.service.GetCurrency(ctx, "xxx")

	suite.Require().Error(err)
	suite.Nil(currency)
	suite.ErrorIs(err, apperrors.ErrUnknownCurrency)
	suite.mockCurrencyRepo.AssertExpectations(suite.T())
}

func (suite *CurrencyServiceTestSuite) TestPostExchangeRate_Success() {
	ctx := context.Background()
	actorID := uuid.NewString()

	suite.mockCurrencyRepo.On("FindCurrencyByCode", ctx, "EUR").Return(&domain.Currency{CurrencyCode: "EUR"}, nil).Once()
	suite.mockRateRepo.On("SaveExchangeRate", ctx, mock.MatchedBy(func(r domain.ExchangeRate) bool {
		return r.CurrencyCode == "EUR" && r.Rate.Equal(dec("0.92345678")) && r.ExchangeRateID != ""
	})).Return(nil).Once()

	rate, err := suite.service.PostExchangeRate(ctx, "eur", dec("0.923456784"), actorID)

	suite.Require().NoError(err)
	suite.Require().NotNil(rate)
	suite.True(rate.Rate.Equal(dec("0.92345678")), "rate should be rounded to 8 decimal places")
	suite.mockRateRepo.AssertExpectations(suite.T())
}

func (suite *CurrencyServiceTestSuite) TestPostExchangeRate_NonPositive() {
	ctx := context.Background()

	rate, err := suite.service.PostExchangeRate(ctx, "EUR", dec("0"), uuid.NewString())

	suite.Require().Error(err)
	suite.Nil(rate)
	suite.ErrorIs(err, apperrors.ErrInvalidRate)
	suite.mockRateRepo.AssertNotCalled(suite.T(), "SaveExchangeRate")
}

func (suite *CurrencyServiceTestSuite) TestPostExchangeRate_BaseCurrencyRejected() {
	ctx := context.Background()

	rate, err := suite.service.PostExchangeRate(ctx, "USD", dec("1.1"), uuid.NewString())

	suite.Require().Error(err)
	suite.Nil(rate)
	suite.ErrorIs(err, apperrors.ErrValidation)
}

func (suite *CurrencyServiceTestSuite) TestPostExchangeRate_UnknownCurrency() {
	ctx := context.Background()

	suite.mockCurrencyRepo.On("FindCurrencyByCode", ctx, "ZZZ").Return(nil, apperrors.ErrNotFound).Once()

	rate, err := suite.service.PostExchangeRate(ctx, "ZZZ", dec("2"), uuid.NewString())

	suite.Require().Error(err)
	suite.Nil(rate)
	suite.ErrorIs(err, apperrors.ErrUnknownCurrency)
}

func (suite *CurrencyServiceTestSuite) TestRateFor_BaseCurrencyIsOne() {
	ctx := context.Background()

	rate, err := suite.service.RateFor(ctx, "usd")

	suite.Require().NoError(err)
	suite.True(rate.Equal(dec("1")))
	suite.mockRateRepo.AssertNotCalled(suite.T(), "FindLatestRate")
}

func (suite *CurrencyServiceTestSuite) TestRateFor_LatestRate() {
	ctx := context.Background()

	suite.mockRateRepo.On("FindLatestRate", ctx, "EUR").Return(&domain.ExchangeRate{CurrencyCode: "EUR", Rate: dec("0.92")}, nil).Once()

	rate, err := suite.service.RateFor(ctx, "EUR")

	suite.Require().NoError(err)
	suite.True(rate.Equal(dec("0.92")))
	suite.mockRateRepo.AssertExpectations(suite.T())
}

func (suite *CurrencyServiceTestSuite) TestRateFor_NoRateRecorded() {
	ctx := context.Background()

	suite.mockRateRepo.On("FindLatestRate", ctx, "EUR").Return(nil, apperrors.ErrNotFound).Once()

	_, err := suite.service.RateFor(ctx, "EUR")

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrUnknownCurrency)
}

func (suite *CurrencyServiceTestSuite) TestRateFor_StoredRateInvalid() {
	ctx := context.Background()

	suite.mockRateRepo.On("FindLatestRate", ctx, "EUR").Return(&domain.ExchangeRate{CurrencyCode: "EUR", Rate: dec("0")}, nil).Once()

	_, err := suite.service.RateFor(ctx, "EUR")

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrInvalidRate)
}

func (suite *CurrencyServiceTestSuite) TestRateForOrFallback_DegradesToOne() {
	ctx := context.Background()

	suite.mockRateRepo.On("FindLatestRate", ctx, "EUR").Return(nil, apperrors.ErrNotFound).Once()

	rate, warnings := suite.service.RateForOrFallback(ctx, "EUR")

	suite.True(rate.Equal(dec("1")))
	suite.Require().Len(warnings, 1)
	suite.Equal(domain.WarnRateFallback, warnings[0].Code)
}

func (suite *CurrencyServiceTestSuite) TestRateForOrFallback_KnownRateNoWarning() {
	ctx := context.Background()

	suite.mockRateRepo.On("FindLatestRate", ctx, "EUR").Return(&domain.ExchangeRate{CurrencyCode: "EUR", Rate: dec("0.92")}, nil).Once()

	rate, warnings := suite.service.RateForOrFallback(ctx, "EUR")

	suite.True(rate.Equal(dec("0.92")))
	suite.Empty(warnings)
}

func (suite *CurrencyServiceTestSuite) TestToDisplay_RoundsHalfUp() {
	result := suite.service.ToDisplay(dec("10.005"), dec("1"))
	suite.True(result.Equal(dec("10.01")), "got %s", result)
}

func (suite *CurrencyServiceTestSuite) TestToCanonical_ZeroRateRejected() {
	_, err := suite.service.ToCanonical(dec("10"), dec("0"))

	suite.Require().Error(err)
	assert.ErrorIs(suite.T(), err, apperrors.ErrInvalidRate)
}

func (suite *CurrencyServiceTestSuite) TestToCanonical_RoundTrip() {
	display := suite.service.ToDisplay(dec("100"), dec("0.5"))
	suite.True(display.Equal(dec("50")))

	canonical, err := suite.service.ToCanonical(display, dec("0.5"))
	suite.Require().NoError(err)
	suite.True(canonical.Equal(dec("100")))
}

func TestCurrencyService(t *testing.T) {
	suite.Run(t, new(CurrencyServiceTestSuite))
}
