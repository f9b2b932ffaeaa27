// Package events defines the roster change event payloads shared with downstream consumers.
package events

import "time"

// Event types carried in the event_type message header.
const (
	TypeParticipantSignedUp     = "roster.signed_up"
	TypeParticipantUnregistered = "roster.unregistered"
)

// ParticipantSignedUp is emitted when a student joins an activity roster.
type ParticipantSignedUp struct {
	EventID    string    `json:"event_id"`
	Activity   string    `json:"activity"`
	Email      string    `json:"email"`
	RosterSize int       `json:"roster_size"`
	OccurredAt time.Time `json:"occurred_at"`
}

// ParticipantUnregistered is emitted when a student leaves an activity roster.
type ParticipantUnregistered struct {
	EventID    string    `json:"event_id"`
	Activity   string    `json:"activity"`
	Email      string    `json:"email"`
	RosterSize int       `json:"roster_size"`
	OccurredAt time.Time `json:"occurred_at"`
}
