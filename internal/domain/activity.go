package domain

import "context"

// Activity is one extracurricular offering together with its current roster.
// The catalog entry (name, description, schedule, max participants) is fixed
// at startup; only Participants changes afterwards.
type Activity struct {
	Name            string
	Description     string
	Schedule        string
	MaxParticipants int
	Participants    []string
}

// Registry captures roster storage operations. Implementations must apply each
// mutation atomically with respect to concurrent calls.
type Registry interface {
	Snapshot(ctx context.Context) (map[string]Activity, error)
	AddParticipant(ctx context.Context, activity, email string) (Activity, error)
	RemoveParticipant(ctx context.Context, activity, email string) (Activity, error)
}
