package catalog

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"

	"example.com/extracurricular/internal/domain"
)

func testCatalog() []domain.Activity {
	return []domain.Activity{
		{
			Name:            "Chess Club",
			Description:     "Learn strategies and compete in chess tournaments",
			Schedule:        "Fridays, 3:30 PM - 5:00 PM",
			MaxParticipants: 12,
			Participants:    []string{"michael@mergington.edu"},
		},
		{
			Name:            "Art Club",
			Description:     "Explore painting, drawing, and other visual arts",
			Schedule:        "Thursdays, 3:30 PM - 5:00 PM",
			MaxParticipants: 15,
		},
	}
}

func TestSeedCatalogInvariants(t *testing.T) {
	registry := NewInMemoryRegistry()

	snapshot, err := registry.Snapshot(context.Background())
	require.NoError(t, err)
	require.NotEmpty(t, snapshot)

	for name, activity := range snapshot {
		require.Equal(t, name, activity.Name)
		require.NotEmpty(t, activity.Description, "activity %s", name)
		require.NotEmpty(t, activity.Schedule, "activity %s", name)
		require.Positive(t, activity.MaxParticipants, "activity %s", name)
		require.NotNil(t, activity.Participants, "activity %s", name)
		require.LessOrEqual(t, len(activity.Participants), activity.MaxParticipants, "activity %s", name)

		seen := make(map[string]struct{}, len(activity.Participants))
		for _, email := range activity.Participants {
			_, dup := seen[email]
			require.False(t, dup, "duplicate %s in %s", email, name)
			seen[email] = struct{}{}
		}
	}

	require.Contains(t, snapshot, "Chess Club")
	require.Equal(t, 12, snapshot["Chess Club"].MaxParticipants)
}

func TestAddParticipant(t *testing.T) {
	registry := NewInMemoryRegistryWith(testCatalog())

	updated, err := registry.AddParticipant(context.Background(), "Chess Club", "daniel@mergington.edu")
	require.NoError(t, err)
	require.Equal(t, []string{"michael@mergington.edu", "daniel@mergington.edu"}, updated.Participants)

	_, err = registry.AddParticipant(context.Background(), "Chess Club", "daniel@mergington.edu")
	require.ErrorIs(t, err, domain.ErrAlreadySignedUp)

	_, err = registry.AddParticipant(context.Background(), "Robotics Club", "daniel@mergington.edu")
	require.ErrorIs(t, err, domain.ErrActivityNotFound)

	snapshot, err := registry.Snapshot(context.Background())
	require.NoError(t, err)
	require.Len(t, snapshot["Chess Club"].Participants, 2)
}

func TestRemoveParticipant(t *testing.T) {
	registry := NewInMemoryRegistryWith(testCatalog())

	updated, err := registry.RemoveParticipant(context.Background(), "Chess Club", "michael@mergington.edu")
	require.NoError(t, err)
	require.Empty(t, updated.Participants)

	_, err = registry.RemoveParticipant(context.Background(), "Chess Club", "michael@mergington.edu")
	require.ErrorIs(t, err, domain.ErrNotSignedUp)

	_, err = registry.RemoveParticipant(context.Background(), "Robotics Club", "michael@mergington.edu")
	require.ErrorIs(t, err, domain.ErrActivityNotFound)
}

func TestRemovePreservesOrder(t *testing.T) {
	registry := NewInMemoryRegistryWith([]domain.Activity{{
		Name:            "Debate Team",
		Description:     "Debate",
		Schedule:        "Fridays",
		MaxParticipants: 12,
		Participants:    []string{"a@mergington.edu", "b@mergington.edu", "c@mergington.edu"},
	}})

	updated, err := registry.RemoveParticipant(context.Background(), "Debate Team", "b@mergington.edu")
	require.NoError(t, err)
	require.Equal(t, []string{"a@mergington.edu", "c@mergington.edu"}, updated.Participants)
}

func TestSnapshotIsolation(t *testing.T) {
	registry := NewInMemoryRegistryWith(testCatalog())

	snapshot, err := registry.Snapshot(context.Background())
	require.NoError(t, err)

	// Mutating the snapshot must not leak into the registry.
	chess := snapshot["Chess Club"]
	chess.Participants[0] = "tampered@mergington.edu"

	fresh, err := registry.Snapshot(context.Background())
	require.NoError(t, err)
	require.Equal(t, []string{"michael@mergington.edu"}, fresh["Chess Club"].Participants)

	// Later mutations must not show up in snapshots taken earlier.
	_, err = registry.AddParticipant(context.Background(), "Art Club", "amelia@mergington.edu")
	require.NoError(t, err)
	require.Empty(t, fresh["Art Club"].Participants)
}

func TestSeedRostersAreCopied(t *testing.T) {
	seed := []domain.Activity{{
		Name:            "Chess Club",
		Description:     "Chess",
		Schedule:        "Fridays",
		MaxParticipants: 12,
		Participants:    []string{"michael@mergington.edu"},
	}}
	registry := NewInMemoryRegistryWith(seed)

	seed[0].Participants[0] = "tampered@mergington.edu"

	snapshot, err := registry.Snapshot(context.Background())
	require.NoError(t, err)
	require.Equal(t, []string{"michael@mergington.edu"}, snapshot["Chess Club"].Participants)
}

func TestConcurrentSignups(t *testing.T) {
	registry := NewInMemoryRegistryWith(testCatalog())

	const workers = 32
	results := make(chan error, workers)
	var wg sync.WaitGroup
	wg.Add(workers)
	for i := 0; i < workers; i++ {
		go func(n int) {
			defer wg.Done()
			email := fmt.Sprintf("student%d@mergington.edu", n)
			_, err := registry.AddParticipant(context.Background(), "Art Club", email)
			results <- err
		}(i)
	}
	wg.Wait()
	close(results)
	for err := range results {
		require.NoError(t, err)
	}

	snapshot, err := registry.Snapshot(context.Background())
	require.NoError(t, err)
	roster := snapshot["Art Club"].Participants
	require.Len(t, roster, workers)

	seen := make(map[string]struct{}, len(roster))
	for _, email := range roster {
		_, dup := seen[email]
		require.False(t, dup, "duplicate %s", email)
		seen[email] = struct{}{}
	}
}

func TestConcurrentDuplicateSignups(t *testing.T) {
	registry := NewInMemoryRegistryWith(testCatalog())

	const workers = 16
	results := make(chan error, workers)
	var wg sync.WaitGroup
	wg.Add(workers)
	for i := 0; i < workers; i++ {
		go func() {
			defer wg.Done()
			_, err := registry.AddParticipant(context.Background(), "Art Club", "same@mergington.edu")
			results <- err
		}()
	}
	wg.Wait()
	close(results)

	accepted := 0
	for err := range results {
		if err == nil {
			accepted++
		} else {
			require.ErrorIs(t, err, domain.ErrAlreadySignedUp)
		}
	}
	require.Equal(t, 1, accepted)

	snapshot, err := registry.Snapshot(context.Background())
	require.NoError(t, err)
	require.Equal(t, []string{"same@mergington.edu"}, snapshot["Art Club"].Participants)
}

func TestRosterOperationsMatchModel(t *testing.T) {
	rapid.Check(t, func(r *rapid.T) {
		registry := NewInMemoryRegistryWith([]domain.Activity{
			{Name: "Chess Club", Description: "Chess", Schedule: "Fridays", MaxParticipants: 12},
			{Name: "Art Club", Description: "Art", Schedule: "Thursdays", MaxParticipants: 15},
		})
		model := map[string]map[string]bool{
			"Chess Club": {},
			"Art Club":   {},
		}
		activities := []string{"Chess Club", "Art Club"}
		emails := []string{
			"a@mergington.edu",
			"b@mergington.edu",
			"c@mergington.edu",
			"d@mergington.edu",
		}

		// Apply a random sequence of mutations, tracking expected membership.
		numOps := rapid.IntRange(1, 100).Draw(r, "numOps")
		for i := 0; i < numOps; i++ {
			activity := rapid.SampledFrom(activities).Draw(r, "activity")
			email := rapid.SampledFrom(emails).Draw(r, "email")

			if rapid.Bool().Draw(r, "signup") {
				_, err := registry.AddParticipant(context.Background(), activity, email)
				if model[activity][email] {
					if !errors.Is(err, domain.ErrAlreadySignedUp) {
						r.Fatalf("duplicate signup %s/%s: got %v, want ErrAlreadySignedUp", activity, email, err)
					}
				} else if err != nil {
					r.Fatalf("signup %s/%s failed: %v", activity, email, err)
				}
				model[activity][email] = true
			} else {
				_, err := registry.RemoveParticipant(context.Background(), activity, email)
				if model[activity][email] {
					if err != nil {
						r.Fatalf("unregister %s/%s failed: %v", activity, email, err)
					}
				} else if !errors.Is(err, domain.ErrNotSignedUp) {
					r.Fatalf("absent unregister %s/%s: got %v, want ErrNotSignedUp", activity, email, err)
				}
				delete(model[activity], email)
			}
		}

		// The registry must agree with the model exactly.
		snapshot, err := registry.Snapshot(context.Background())
		if err != nil {
			r.Fatalf("snapshot failed: %v", err)
		}
		for name, members := range model {
			roster := snapshot[name].Participants
			if len(roster) != len(members) {
				r.Fatalf("activity %s: roster size %d, model size %d", name, len(roster), len(members))
			}
			for _, email := range roster {
				if !members[email] {
					r.Fatalf("activity %s: unexpected roster entry %s", name, email)
				}
			}
		}
	})
}
