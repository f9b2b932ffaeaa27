// Package domain defines the business logic for the extracurricular signup service.
package domain

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"example.com/extracurricular/internal/announce"
	"example.com/extracurricular/internal/events"
	"example.com/extracurricular/internal/observability"
)

var (
	// ErrActivityNotFound is returned when the named activity does not exist.
	ErrActivityNotFound = errors.New("activity not found")
	// ErrAlreadySignedUp is returned when the student is already on the roster.
	ErrAlreadySignedUp = errors.New("student is already signed up for this activity")
	// ErrNotSignedUp is returned when the student is not on the roster.
	ErrNotSignedUp = errors.New("student is not signed up for this activity")
)

// Service contains business logic.
type Service struct {
	registry  Registry
	announcer announce.Announcer
}

// NewService constructs a new Service.
func NewService(registry Registry, announcer announce.Announcer) *Service {
	if announcer == nil {
		announcer = announce.Noop{}
	}
	return &Service{registry: registry, announcer: announcer}
}

// ListActivities returns every activity keyed by name.
func (s *Service) ListActivities(ctx context.Context) (map[string]Activity, error) {
	activities, err := s.registry.Snapshot(ctx)
	if err != nil {
		return nil, err
	}
	observability.RecordCatalogRead()
	return activities, nil
}

// Signup adds the student to the activity roster and announces the change.
func (s *Service) Signup(ctx context.Context, activity, email string) (Activity, error) {
	updated, err := s.registry.AddParticipant(ctx, activity, email)
	if err != nil {
		recordRejection(err)
		return Activity{}, err
	}

	observability.RecordSignup(updated.Name, len(updated.Participants))
	s.announcer.Announce(ctx, announce.Event{
		Type: events.TypeParticipantSignedUp,
		Key:  updated.Name,
		Payload: events.ParticipantSignedUp{
			EventID:    uuid.NewString(),
			Activity:   updated.Name,
			Email:      email,
			RosterSize: len(updated.Participants),
			OccurredAt: time.Now().UTC(),
		},
	})
	return updated, nil
}

// Unregister removes the student from the activity roster and announces the change.
func (s *Service) Unregister(ctx context.Context, activity, email string) (Activity, error) {
	updated, err := s.registry.RemoveParticipant(ctx, activity, email)
	if err != nil {
		recordRejection(err)
		return Activity{}, err
	}

	observability.RecordUnregistration(updated.Name, len(updated.Participants))
	s.announcer.Announce(ctx, announce.Event{
		Type: events.TypeParticipantUnregistered,
		Key:  updated.Name,
		Payload: events.ParticipantUnregistered{
			EventID:    uuid.NewString(),
			Activity:   updated.Name,
			Email:      email,
			RosterSize: len(updated.Participants),
			OccurredAt: time.Now().UTC(),
		},
	})
	return updated, nil
}

func recordRejection(err error) {
	switch {
	case errors.Is(err, ErrActivityNotFound):
		observability.RecordRejection("unknown_activity")
	case errors.Is(err, ErrAlreadySignedUp):
		observability.RecordRejection("already_signed_up")
	case errors.Is(err, ErrNotSignedUp):
		observability.RecordRejection("not_signed_up")
	}
}
