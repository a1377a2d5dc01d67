package pgsql

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/salescore/order_ledger_app/internal/apperrors"
	"github.com/salescore/order_ledger_app/internal/core/domain"
	portsrepo "github.com/salescore/order_ledger_app/internal/core/ports/repositories"
	"github.com/salescore/order_ledger_app/internal/models"
	"github.com/salescore/order_ledger_app/internal/utils/mapping"
)

type PgxUserRepository struct {
	pool *pgxpool.Pool
}

// newPgxUserRepository creates a new repository for user data.
func newPgxUserRepository(pool *pgxpool.Pool) portsrepo.UserReader {
	return &PgxUserRepository{pool: pool}
}

var _ portsrepo.UserReader = (*PgxUserRepository)(nil)

const userColumns = `user_id, name, is_admin, can_see_cost, can_sell_below_cost, created_at, created_by, last_updated_at, last_updated_by`

// FindUserByID retrieves a user by ID.
func (r *PgxUserRepository) FindUserByID(ctx context.Context, userID string) (*domain.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE user_id = $1;`

	var m models.User
	err := r.pool.QueryRow(ctx, query, userID).Scan(
		&m.UserID,
		&m.Name,
		&m.IsAdmin,
		&m.CanSeeCost,
		&m.CanSellBelowCost,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to find user by ID "+userID, err)
	}

	user := mapping.ToDomainUser(m)
	return &user, nil
}

// ListAdminUserIDs retrieves the IDs of all admin users.
func (r *PgxUserRepository) ListAdminUserIDs(ctx context.Context) ([]string, error) {
	rows, err := r.pool.Query(ctx, `SELECT user_id FROM users WHERE is_admin;`)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query admin users", err)
	}
	defer rows.Close()

	ids := []string{}
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan admin user row", err)
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "failed reading admin user rows", err)
	}
	return ids, nil
}

type PgxNotificationRepository struct {
	pool *pgxpool.Pool
}

// newPgxNotificationRepository creates a new repository for notifications.
func newPgxNotificationRepository(pool *pgxpool.Pool) portsrepo.NotificationRepositoryFacade {
	return &PgxNotificationRepository{pool: pool}
}

var _ portsrepo.NotificationRepositoryFacade = (*PgxNotificationRepository)(nil)

const notificationColumns = `notification_id, user_id, kind, message, product_id, branch_id, is_read, created_at, created_by, last_updated_at, last_updated_by`

// SaveNotifications persists a batch of notifications.
func (r *PgxNotificationRepository) SaveNotifications(ctx context.Context, notifications []domain.Notification) error {
	if len(notifications) == 0 {
		return nil
	}

	batch := &pgx.Batch{}
	query := `
		INSERT INTO notifications (` + notificationColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11);
	`
	for _, n := range notifications {
		m := mapping.ToModelNotification(n)
		batch.Queue(query,
			m.NotificationID, m.UserID, m.Kind, m.Message,
			m.ProductID, m.BranchID, m.IsRead,
			m.CreatedAt, m.CreatedBy, m.LastUpdatedAt, m.LastUpdatedBy,
		)
	}

	br := r.pool.SendBatch(ctx, batch)
	if err := br.Close(); err != nil {
		return apperrors.NewAppError(500, "failed to insert notifications", err)
	}
	return nil
}

// ListNotificationsByUser retrieves a user's notifications, newest first.
func (r *PgxNotificationRepository) ListNotificationsByUser(ctx context.Context, userID string, limit int) ([]domain.Notification, error) {
	if limit <= 0 {
		limit = 50
	}

	query := `
		SELECT ` + notificationColumns + `
		FROM notifications
		WHERE user_id = $1
		ORDER BY created_at DESC, notification_id DESC
		LIMIT $2;
	`
	rows, err := r.pool.Query(ctx, query, userID, limit)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query notifications for user "+userID, err)
	}
	defer rows.Close()

	notifications := []domain.Notification{}
	for rows.Next() {
		var m models.Notification
		err := rows.Scan(
			&m.NotificationID,
			&m.UserID,
			&m.Kind,
			&m.Message,
			&m.ProductID,
			&m.BranchID,
			&m.IsRead,
			&m.CreatedAt,
			&m.CreatedBy,
			&m.LastUpdatedAt,
			&m.LastUpdatedBy,
		)
		if err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan notification row", err)
		}
		notifications = append(notifications, mapping.ToDomainNotification(m))
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "failed reading notification rows", err)
	}
	return notifications, nil
}
