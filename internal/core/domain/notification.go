package domain

// NotificationKind classifies admin notifications emitted by the core.
type NotificationKind string

const (
	NotifyLowStock NotificationKind = "LOW_STOCK"
)

// Notification is a persisted alert addressed to one admin user.
type Notification struct {
	NotificationID string           `json:"notificationID"` // Primary Key (UUID)
	UserID         string           `json:"userID"`         // FK -> users (admin recipient)
	Kind           NotificationKind `json:"kind"`
	Message        string           `json:"message"`
	ProductID      *string          `json:"productID,omitempty"`
	BranchID       *string          `json:"branchID,omitempty"`
	IsRead         bool             `json:"isRead"`
	AuditFields
}
