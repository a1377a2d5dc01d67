package services

import (
	"context"

	"github.com/salescore/order_ledger_app/internal/core/domain"
)

// UserSvcFacade resolves acting users and their permission flags.
type UserSvcFacade interface {
	GetUser(ctx context.Context, userID string) (*domain.User, error)
	GetPermissions(ctx context.Context, userID string) (domain.Permissions, error)
}
