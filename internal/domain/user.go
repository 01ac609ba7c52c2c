package domain

import "time"

// UserRole grants access levels across the API.
type UserRole string

const (
	RoleAdmin UserRole = "admin"
	RoleAgent UserRole = "agent"
	RoleUser  UserRole = "user"
)

// User is the domain model for everyone who signs in: requesters, support
// agents and administrators.
type User struct {
	ID           string
	Name         string
	Email        string
	PasswordHash string
	Role         UserRole
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// IsStaff reports whether the user may act on tickets they did not create.
func (u *User) IsStaff() bool {
	return u.Role == RoleAdmin || u.Role == RoleAgent
}
