package domain

import "time"

// User represents an authenticated account within the platform. Admin access
// is a plan tier, not a separate role.
type User struct {
	ID        string
	Email     string
	Name      string
	Locale    string
	Plan      PlanTier
	CreatedAt time.Time
	UpdatedAt time.Time
}
