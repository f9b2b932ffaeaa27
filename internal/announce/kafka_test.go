package announce

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/require"

	"example.com/extracurricular/internal/events"
)

type stubWriter struct {
	msgs []kafka.Message
	err  error
}

var _ messageWriter = (*stubWriter)(nil)

func (w *stubWriter) WriteMessages(_ context.Context, msgs ...kafka.Message) error {
	if w.err != nil {
		return w.err
	}
	w.msgs = append(w.msgs, msgs...)
	return nil
}

func TestKafkaPublisherWritesRosterMessage(t *testing.T) {
	writer := &stubWriter{}
	publisher := NewKafkaPublisher(writer)

	err := publisher.Publish(context.Background(), Event{
		Type: events.TypeParticipantSignedUp,
		Key:  "Chess Club",
		Payload: events.ParticipantSignedUp{
			EventID:    "event-1",
			Activity:   "Chess Club",
			Email:      "new@mergington.edu",
			RosterSize: 3,
			OccurredAt: time.Date(2024, 9, 2, 15, 30, 0, 0, time.UTC),
		},
	})
	require.NoError(t, err)
	require.Len(t, writer.msgs, 1)

	msg := writer.msgs[0]
	require.Equal(t, "Chess Club", string(msg.Key))
	require.False(t, msg.Time.IsZero())

	headers := make(map[string]string, len(msg.Headers))
	for _, header := range msg.Headers {
		headers[header.Key] = string(header.Value)
	}
	require.Equal(t, events.TypeParticipantSignedUp, headers["event_type"])

	var payload events.ParticipantSignedUp
	require.NoError(t, json.Unmarshal(msg.Value, &payload))
	require.Equal(t, "new@mergington.edu", payload.Email)
	require.Equal(t, 3, payload.RosterSize)
}

func TestKafkaPublisherPropagatesWriterErrors(t *testing.T) {
	writer := &stubWriter{err: kafka.UnknownTopicOrPartition}
	publisher := NewKafkaPublisher(writer)

	err := publisher.Publish(context.Background(), Event{
		Type:    events.TypeParticipantUnregistered,
		Key:     "Chess Club",
		Payload: events.ParticipantUnregistered{EventID: "event-2"},
	})
	require.ErrorIs(t, err, kafka.UnknownTopicOrPartition)
}
