package domain

import "time"

// Role determines which operations an actor may trigger
type Role string

const (
	RoleManager   Role = "manager"
	RoleOrganizer Role = "organizer"
)

// IsValid returns true for known roles
func (r Role) IsValid() bool {
	return r == RoleManager || r == RoleOrganizer
}

// Actor is an authenticated user as supplied by the identity provider
type Actor struct {
	ID       int64
	Role     Role
	Email    string
	TaxID    string
	FullName string

	CreatedAt time.Time
}

// IsManager returns true if the actor manages venues
func (a Actor) IsManager() bool {
	return a.Role == RoleManager
}

// IsOrganizer returns true if the actor books slots
func (a Actor) IsOrganizer() bool {
	return a.Role == RoleOrganizer
}
