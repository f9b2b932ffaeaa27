// Package announce delivers roster change events to downstream sinks.
package announce

import "context"

// Event is one roster change queued for delivery.
type Event struct {
	Type    string
	Key     string
	Payload any
}

// Announcer accepts events for asynchronous delivery. Implementations must not
// block the caller; delivery failures stay inside the announcer.
type Announcer interface {
	Announce(ctx context.Context, event Event)
}

// Noop is a no-op implementation.
type Noop struct{}

// Announce performs no action.
func (Noop) Announce(context.Context, Event) {}
