package domain

import (
	"strings"
	"time"
)

// PropertyType enumerates listing kinds.
type PropertyType string

const (
	PropertyTypeHouse     PropertyType = "HOUSE"
	PropertyTypeApartment PropertyType = "APARTMENT"
)

// Valid reports whether t is a known property type.
func (t PropertyType) Valid() bool {
	return t == PropertyTypeHouse || t == PropertyTypeApartment
}

// BrokerRef is the resolved owner of a listing.
type BrokerRef struct {
	ID   int64
	Name string
}

// Property is a listing owned by exactly one broker.
type Property struct {
	ID          int64
	Name        string
	Description string
	Type        PropertyType
	Active      bool
	Value       float64
	Area        int
	Bedrooms    int
	Address     string
	City        string
	State       string
	Broker      BrokerRef
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// Equal compares listings by identity. Unsaved listings are never equal.
func (p *Property) Equal(other *Property) bool {
	if p == nil || other == nil || p.ID == 0 || other.ID == 0 {
		return false
	}
	return p.ID == other.ID
}

// OwnedBy reports whether the user is the listing's broker.
func (p *Property) OwnedBy(user *User) bool {
	return user != nil && user.ID != 0 && p.Broker.ID == user.ID
}

// Validate checks listing invariants and returns field -> message for each violation.
func (p *Property) Validate() map[string]any {
	problems := map[string]any{}
	blank := func(field, value string) {
		if strings.TrimSpace(value) == "" {
			problems[field] = "must not be blank"
		}
	}
	blank("name", p.Name)
	blank("description", p.Description)
	blank("address", p.Address)
	blank("city", p.City)
	blank("state", p.State)
	if !p.Type.Valid() {
		problems["type"] = "must be HOUSE or APARTMENT"
	}
	if p.Value <= 0 {
		problems["value"] = "must be positive"
	}
	if p.Area <= 0 {
		problems["area"] = "must be positive"
	}
	if p.Bedrooms <= 0 {
		problems["bedrooms"] = "must be positive"
	}
	if len(problems) == 0 {
		return nil
	}
	return problems
}
