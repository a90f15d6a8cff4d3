package domain

// UserView is the outward projection of a User. It never carries the password hash.
type UserView struct {
	ID    int64    `json:"id"`
	Name  string   `json:"name"`
	Email string   `json:"email"`
	Role  UserRole `json:"role"`
}

// PropertyView is the outward projection of a Property with its broker denormalized.
// Active and Area are not part of the view.
type PropertyView struct {
	ID          int64        `json:"id"`
	Name        string       `json:"name"`
	Description string       `json:"description"`
	Type        PropertyType `json:"type"`
	Value       float64      `json:"value"`
	Bedrooms    int          `json:"bedrooms"`
	Address     string       `json:"address"`
	City        string       `json:"city"`
	State       string       `json:"state"`
	BrokerID    int64        `json:"brokerId"`
	BrokerName  string       `json:"brokerName"`
}

// NewUserView projects a user.
func NewUserView(u *User) UserView {
	return UserView{ID: u.ID, Name: u.Name, Email: u.Email, Role: u.Role}
}

// NewUserViews projects a slice of users, never returning nil.
func NewUserViews(users []User) []UserView {
	views := make([]UserView, 0, len(users))
	for i := range users {
		views = append(views, NewUserView(&users[i]))
	}
	return views
}

// NewPropertyView projects a listing; the broker reference must already be resolved.
func NewPropertyView(p *Property) PropertyView {
	return PropertyView{
		ID:          p.ID,
		Name:        p.Name,
		Description: p.Description,
		Type:        p.Type,
		Value:       p.Value,
		Bedrooms:    p.Bedrooms,
		Address:     p.Address,
		City:        p.City,
		State:       p.State,
		BrokerID:    p.Broker.ID,
		BrokerName:  p.Broker.Name,
	}
}

// NewPropertyViews projects a slice of listings, never returning nil.
func NewPropertyViews(properties []Property) []PropertyView {
	views := make([]PropertyView, 0, len(properties))
	for i := range properties {
		views = append(views, NewPropertyView(&properties[i]))
	}
	return views
}
