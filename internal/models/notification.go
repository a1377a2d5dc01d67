package models

// Notification mirrors the notifications table.
type Notification struct {
	NotificationID string  `json:"notificationID"`
	UserID         string  `json:"userID"`
	Kind           string  `json:"kind"`
	Message        string  `json:"message"`
	ProductID      *string `json:"productID"`
	BranchID       *string `json:"branchID"`
	IsRead         bool    `json:"isRead"`
	AuditFields
}
