package notifications

import "time"

// Type categorises a notification for styling.
type Type string

const (
	TypeSale      Type = "sale"
	TypeAffiliate Type = "affiliate"
	TypeInfo      Type = "info"
)

// Valid reports whether t is a known type.
func (t Type) Valid() bool {
	switch t {
	case TypeSale, TypeAffiliate, TypeInfo:
		return true
	}
	return false
}

// Notification is a single ephemeral toast.
type Notification struct {
	ID        string    `json:"id"`
	Type      Type      `json:"type"`
	Message   string    `json:"message"`
	CreatedAt time.Time `json:"createdAt"`
}

// EventKind says what happened to a notification.
type EventKind string

const (
	EventAdded   EventKind = "added"
	EventExpired EventKind = "expired"
)

// Event is delivered to feed subscribers.
type Event struct {
	Kind         EventKind    `json:"type"`
	Notification Notification `json:"notification"`
}
