package dto

import "github.com/spec-kit/realty-service/internal/domain"

// PropertyCreateRequest payload for a new listing.
type PropertyCreateRequest struct {
	Name        string  `json:"name" validate:"required,min=10,max=100"`
	Description string  `json:"description" validate:"required"`
	Type        string  `json:"type" validate:"required,oneof=HOUSE APARTMENT"`
	Value       float64 `json:"value" validate:"required,gt=0"`
	Area        int     `json:"area" validate:"required,gt=0"`
	Bedrooms    int     `json:"bedrooms" validate:"required,gt=0"`
	Address     string  `json:"address" validate:"required"`
	City        string  `json:"city" validate:"required"`
	State       string  `json:"state" validate:"required"`
}

// PropertyUpdateRequest payload for partial listing updates.
type PropertyUpdateRequest struct {
	Name        *string  `json:"name" validate:"omitempty,min=10,max=100"`
	Description *string  `json:"description" validate:"omitempty,min=1"`
	Type        *string  `json:"type" validate:"omitempty,oneof=HOUSE APARTMENT"`
	Value       *float64 `json:"value" validate:"omitempty,gt=0"`
	Area        *int     `json:"area" validate:"omitempty,gt=0"`
	Bedrooms    *int     `json:"bedrooms" validate:"omitempty,gt=0"`
	Address     *string  `json:"address" validate:"omitempty,min=1"`
	City        *string  `json:"city" validate:"omitempty,min=1"`
	State       *string  `json:"state" validate:"omitempty,min=1"`
}

// PropertyTypeOrNil converts an optional type string.
func PropertyTypeOrNil(t *string) *domain.PropertyType {
	if t == nil {
		return nil
	}
	pt := domain.PropertyType(*t)
	return &pt
}
