package services

import (
	"context"
	"fmt"

	"github.com/salescore/order_ledger_app/internal/core/domain"
	portsrepo "github.com/salescore/order_ledger_app/internal/core/ports/repositories"
)

// UserService resolves acting users and their permission flags.
type UserService struct {
	userRepo portsrepo.UserReader
}

// NewUserService creates a new UserService.
func NewUserService(userRepo portsrepo.UserReader) *UserService {
	return &UserService{userRepo: userRepo}
}

// GetUser retrieves a user by ID.
func (s *UserService) GetUser(ctx context.Context, userID string) (*domain.User, error) {
	user, err := s.userRepo.FindUserByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to get user in service: %w", err)
	}
	return user, nil
}

// GetPermissions resolves the permission flags of a user. Admins implicitly
// hold every flag.
func (s *UserService) GetPermissions(ctx context.Context, userID string) (domain.Permissions, error) {
	user, err := s.GetUser(ctx, userID)
	if err != nil {
		return domain.Permissions{}, err
	}
	return user.Permissions(), nil
}
