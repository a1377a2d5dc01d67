package models

// User mirrors the users table. Only pricing-relevant flags live here; the
// surrounding system owns authentication.
type User struct {
	UserID           string `json:"userID"`
	Name             string `json:"name"`
	IsAdmin          bool   `json:"isAdmin"`
	CanSeeCost       bool   `json:"canSeeCost"`
	CanSellBelowCost bool   `json:"canSellBelowCost"`
	AuditFields
}
