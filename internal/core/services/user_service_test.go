package services_test

import (
	"context"
	"testing"

	"github.com/salescore/order_ledger_app/internal/apperrors"
	"github.com/salescore/order_ledger_app/internal/core/domain"
	"github.com/salescore/order_ledger_app/internal/core/services"
	"github.com/stretchr/testify/suite"
)

type UserServiceTestSuite struct {
	suite.Suite
	mockUserRepo *MockUserRepository
	service      *services.UserService
}

func (suite *UserServiceTestSuite) SetupTest() {
	suite.mockUserRepo = new(MockUserRepository)
	suite.service = services.NewUserService(suite.mockUserRepo)
}

func (suite *UserServiceTestSuite) TestGetPermissions_AdminHoldsEverything() {
	ctx := context.Background()

	suite.mockUserRepo.On("FindUserByID", ctx, "U1").Return(&domain.User{UserID: "U1", IsAdmin: true}, nil).Once()

	perms, err := suite.service.GetPermissions(ctx, "U1")

	suite.Require().NoError(err)
	suite.True(perms.CanSeeCost)
	suite.True(perms.CanSellBelowCost)
}

func (suite *UserServiceTestSuite) TestGetPermissions_PlainSeller() {
	ctx := context.Background()

	suite.mockUserRepo.On("FindUserByID", ctx, "U2").Return(&domain.User{UserID: "U2"}, nil).Once()

	perms, err := suite.service.GetPermissions(ctx, "U2")

	suite.Require().NoError(err)
	suite.False(perms.CanSeeCost)
	suite.False(perms.CanSellBelowCost)
}

func (suite *UserServiceTestSuite) TestGetPermissions_ExplicitFlags() {
	ctx := context.Background()

	suite.mockUserRepo.On("FindUserByID", ctx, "U3").Return(&domain.User{UserID: "U3", CanSeeCost: true}, nil).Once()

	perms, err := suite.service.GetPermissions(ctx, "U3")

	suite.Require().NoError(err)
	suite.True(perms.CanSeeCost)
	suite.False(perms.CanSellBelowCost)
}

func (suite *UserServiceTestSuite) TestGetUser_NotFound() {
	ctx := context.Background()

	suite.mockUserRepo.On("FindUserByID", ctx, "GHOST").Return(nil, apperrors.ErrNotFound).Once()

	user, err := suite.service.GetUser(ctx, "GHOST")

	suite.Require().Error(err)
	suite.Nil(user)
	suite.ErrorIs(err, apperrors.ErrNotFound)
}

func TestUserService(t *testing.T) {
	suite.Run(t, new(UserServiceTestSuite))
}
