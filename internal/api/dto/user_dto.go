package dto

import (
	"time"

	"github.com/spec-kit/realty-service/internal/domain"
)

// RegisterRequest payload for self-service signup.
type RegisterRequest struct {
	Name     string `json:"name" validate:"required,min=3,max=100"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
}

// LoginRequest payload for login.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// UserCreateRequest payload for administrative account creation.
type UserCreateRequest struct {
	Name     string `json:"name" validate:"required,min=3,max=100"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
	Role     string `json:"role" validate:"required,oneof=ADMIN BROKER CLIENT"`
}

// UserUpdateRequest payload for administrative partial updates.
type UserUpdateRequest struct {
	Name     *string `json:"name" validate:"omitempty,min=3,max=100"`
	Email    *string `json:"email" validate:"omitempty,email"`
	Password *string `json:"password" validate:"omitempty,min=6"`
	Role     *string `json:"role" validate:"omitempty,oneof=ADMIN BROKER CLIENT"`
}

// SelfUpdateRequest payload for a user editing their own profile. Role is not accepted.
type SelfUpdateRequest struct {
	Name     *string `json:"name" validate:"omitempty,min=3,max=100"`
	Email    *string `json:"email" validate:"omitempty,email"`
	Password *string `json:"password" validate:"omitempty,min=6"`
}

// AuthResponse standard response for auth endpoints.
type AuthResponse struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expires_at"`
}

// LoginResponse wraps the caller's profile and token.
type LoginResponse struct {
	User domain.UserView `json:"user"`
	Auth AuthResponse    `json:"auth"`
}

// RoleOrNil converts an optional role string.
func RoleOrNil(role *string) *domain.UserRole {
	if role == nil {
		return nil
	}
	r := domain.UserRole(*role)
	return &r
}
