// Package catalog stores the fixed activity offerings and their rosters in memory.
package catalog

import (
	"context"
	"slices"
	"sync"

	"example.com/extracurricular/internal/domain"
)

// InMemoryRegistry keeps all rosters in process memory, guarded by a single
// lock. State does not survive restarts.
type InMemoryRegistry struct {
	mu         sync.RWMutex
	activities map[string]domain.Activity
}

// NewInMemoryRegistry constructs a registry populated with the school catalog.
func NewInMemoryRegistry() *InMemoryRegistry {
	return NewInMemoryRegistryWith(defaultCatalog())
}

// NewInMemoryRegistryWith constructs a registry from the given activities.
// Rosters are copied so callers cannot alias internal state.
func NewInMemoryRegistryWith(activities []domain.Activity) *InMemoryRegistry {
	reg := &InMemoryRegistry{
		activities: make(map[string]domain.Activity, len(activities)),
	}
	for _, activity := range activities {
		activity.Participants = slices.Clone(activity.Participants)
		if activity.Participants == nil {
			activity.Participants = []string{}
		}
		reg.activities[activity.Name] = activity
	}
	return reg
}

// Snapshot implements domain.Registry. The returned map and rosters are deep
// copies of the live state.
func (r *InMemoryRegistry) Snapshot(ctx context.Context) (map[string]domain.Activity, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make(map[string]domain.Activity, len(r.activities))
	for name, activity := range r.activities {
		activity.Participants = slices.Clone(activity.Participants)
		out[name] = activity
	}
	return out, nil
}

// AddParticipant appends the email to the activity roster. It fails with
// domain.ErrAlreadySignedUp when the email is already present.
func (r *InMemoryRegistry) AddParticipant(ctx context.Context, name, email string) (domain.Activity, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	activity, ok := r.activities[name]
	if !ok {
		return domain.Activity{}, domain.ErrActivityNotFound
	}
	if slices.Contains(activity.Participants, email) {
		return domain.Activity{}, domain.ErrAlreadySignedUp
	}

	activity.Participants = append(slices.Clone(activity.Participants), email)
	r.activities[name] = activity

	activity.Participants = slices.Clone(activity.Participants)
	return activity, nil
}

// RemoveParticipant deletes the email from the activity roster. It fails with
// domain.ErrNotSignedUp when the email is absent.
func (r *InMemoryRegistry) RemoveParticipant(ctx context.Context, name, email string) (domain.Activity, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	activity, ok := r.activities[name]
	if !ok {
		return domain.Activity{}, domain.ErrActivityNotFound
	}
	idx := slices.Index(activity.Participants, email)
	if idx < 0 {
		return domain.Activity{}, domain.ErrNotSignedUp
	}

	roster := slices.Clone(activity.Participants)
	activity.Participants = slices.Delete(roster, idx, idx+1)
	r.activities[name] = activity

	activity.Participants = slices.Clone(activity.Participants)
	return activity, nil
}
