package domain

// User is an operator of the surrounding system (seller or admin).
// Authentication happens outside this core; only the permission flags that
// affect pricing and alerting live here.
type User struct {
	UserID           string `json:"userID"` // Primary Key (UUID)
	Name             string `json:"name"`
	IsAdmin          bool   `json:"isAdmin"`
	CanSeeCost       bool   `json:"canSeeCost"`
	CanSellBelowCost bool   `json:"canSellBelowCost"`
	AuditFields
}

// Permissions are the flags the pricing policy consults.
type Permissions struct {
	CanSeeCost       bool `json:"canSeeCost"`
	CanSellBelowCost bool `json:"canSellBelowCost"`
}

// Permissions extracts the pricing-relevant flags. Admins implicitly hold
// both.
func (u User) Permissions() Permissions {
	return Permissions{
		CanSeeCost:       u.IsAdmin || u.CanSeeCost,
		CanSellBelowCost: u.IsAdmin || u.CanSellBelowCost,
	}
}
