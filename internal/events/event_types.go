package events

import "time"

// EventType enumerates supported event identifiers.
type EventType string

const (
	EventUserRegistered    EventType = "user_registered"
	EventUserUpdated       EventType = "user_updated"
	EventUserAuthenticated EventType = "user_authenticated"
)

// Event represents a domain event emitted by services.
type Event struct {
	ID        string      `json:"id"`
	Type      EventType   `json:"type"`
	UserID    int64       `json:"user_id"`
	Email     string      `json:"email"`
	Timestamp time.Time   `json:"timestamp"`
	Payload   interface{} `json:"payload,omitempty"`
}

// UserRegisteredPayload payload.
type UserRegisteredPayload struct {
	ProfileID *int64 `json:"profile_id,omitempty"`
	StatusID  *int64 `json:"status_id,omitempty"`
}

// UserUpdatedPayload payload.
type UserUpdatedPayload struct {
	PasswordChanged bool `json:"password_changed"`
}
