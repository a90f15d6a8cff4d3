package events

import "time"

// EventType enumerates supported event identifiers.
type EventType string

const (
	EventUserRegistered        EventType = "user.registered"
	EventUserCreated           EventType = "user.created"
	EventUserUpdated           EventType = "user.updated"
	EventPropertyCreated       EventType = "property.created"
	EventPropertyUpdated       EventType = "property.updated"
	EventPropertyStatusChanged EventType = "property.status_changed"
	EventPropertyDeleted       EventType = "property.deleted"
	EventFavoriteAdded         EventType = "favorite.added"
	EventFavoriteRemoved       EventType = "favorite.removed"
)

// AllEventTypes lists every event type, for subscribers that want everything.
var AllEventTypes = []EventType{
	EventUserRegistered,
	EventUserCreated,
	EventUserUpdated,
	EventPropertyCreated,
	EventPropertyUpdated,
	EventPropertyStatusChanged,
	EventPropertyDeleted,
	EventFavoriteAdded,
	EventFavoriteRemoved,
}

// Event represents a domain event emitted by services.
type Event struct {
	ID        string    `json:"id"`
	Type      EventType `json:"type"`
	ActorID   int64     `json:"actor_id,omitempty"`
	Timestamp time.Time `json:"timestamp"`
	Payload   any       `json:"payload"`
}

// UserPayload is attached to user events. It never carries credentials.
type UserPayload struct {
	UserID int64  `json:"user_id"`
	Email  string `json:"email"`
	Name   string `json:"name"`
	Role   string `json:"role"`
}

// PropertyPayload is attached to listing events.
type PropertyPayload struct {
	PropertyID int64  `json:"property_id"`
	BrokerID   int64  `json:"broker_id"`
	Name       string `json:"name"`
	Active     bool   `json:"active"`
}

// FavoritePayload is attached to favorite events.
type FavoritePayload struct {
	UserID     int64 `json:"user_id"`
	PropertyID int64 `json:"property_id"`
}
