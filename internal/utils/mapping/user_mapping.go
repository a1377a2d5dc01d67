package mapping

import (
	"github.com/salescore/order_ledger_app/internal/core/domain"
	"github.com/salescore/order_ledger_app/internal/models"
)

// ToDomainUser converts a model User to a domain User.
func ToDomainUser(m models.User) domain.User {
	return domain.User{
		UserID:           m.UserID,
		Name:             m.Name,
		IsAdmin:          m.IsAdmin,
		CanSeeCost:       m.CanSeeCost,
		CanSellBelowCost: m.CanSellBelowCost,
		AuditFields:      ToDomainAuditFields(m.AuditFields),
	}
}

// ToModelNotification converts a domain Notification to a model Notification.
func ToModelNotification(d domain.Notification) models.Notification {
	return models.Notification{
		NotificationID: d.NotificationID,
		UserID:         d.UserID,
		Kind:           string(d.Kind),
		Message:        d.Message,
		ProductID:      d.ProductID,
		BranchID:       d.BranchID,
		IsRead:         d.IsRead,
		AuditFields:    ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainNotification converts a model Notification to a domain Notification.
func ToDomainNotification(m models.Notification) domain.Notification {
	return domain.Notification{
		NotificationID: m.NotificationID,
		UserID:         m.UserID,
		Kind:           domain.NotificationKind(m.Kind),
		Message:        m.Message,
		ProductID:      m.ProductID,
		BranchID:       m.BranchID,
		IsRead:         m.IsRead,
		AuditFields:    ToDomainAuditFields(m.AuditFields),
	}
}
