package domain

import "time"

// UserRole enumerates account roles.
type UserRole string

const (
	UserRoleAdmin  UserRole = "ADMIN"
	UserRoleBroker UserRole = "BROKER"
	UserRoleClient UserRole = "CLIENT"
)

// Valid reports whether r is a known role.
func (r UserRole) Valid() bool {
	switch r {
	case UserRoleAdmin, UserRoleBroker, UserRoleClient:
		return true
	}
	return false
}

// CanOwnListings reports whether the role may own property listings.
func (r UserRole) CanOwnListings() bool {
	return r == UserRoleBroker || r == UserRoleAdmin
}

// User is an account: a broker, a client or an administrator.
type User struct {
	ID           int64
	Name         string
	Email        string
	PasswordHash string
	Role         UserRole
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// Equal compares users by identity. Unsaved users are never equal.
func (u *User) Equal(other *User) bool {
	if u == nil || other == nil || u.ID == 0 || other.ID == 0 {
		return false
	}
	return u.ID == other.ID
}
