package events

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestNewEvent(t *testing.T) {
	event := NewEvent(QuestionCreated, 10, 1, map[string]any{"extra": "x"})

	if event.ID == "" {
		t.Error("expected a generated event id")
	}
	if event.Type != QuestionCreated {
		t.Errorf("expected type %s, got %s", QuestionCreated, event.Type)
	}
	if event.EntityID != 10 || event.ActorID != 1 {
		t.Errorf("unexpected ids %d/%d", event.EntityID, event.ActorID)
	}
	if event.OccurredAt.IsZero() {
		t.Error("expected a timestamp")
	}
}

func TestGoChannelPublisherDelivers(t *testing.T) {
	logger := testLogger()
	pubsub := gochannel.NewGoChannel(gochannel.Config{}, watermill.NewSlogLogger(logger))
	publisher := &watermillPublisher{publisher: pubsub, logger: logger}
	defer publisher.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	messages, err := pubsub.Subscribe(ctx, Topic)
	if err != nil {
		t.Fatalf("subscribe failed: %v", err)
	}

	sent := NewEvent(AnswerCreated, 100, 2, map[string]any{"question_id": 10})
	if err := publisher.Publish(ctx, sent); err != nil {
		t.Fatalf("publish failed: %v", err)
	}

	select {
	case msg := <-messages:
		msg.Ack()
		if msg.Metadata.Get("event_type") != AnswerCreated {
			t.Errorf("expected event_type metadata, got %q", msg.Metadata.Get("event_type"))
		}
		var got Event
		if err := json.Unmarshal(msg.Payload, &got); err != nil {
			t.Fatalf("decode payload: %v", err)
		}
		if got.ID != sent.ID || got.Type != AnswerCreated || got.EntityID != 100 {
			t.Errorf("unexpected event %+v", got)
		}
	case <-ctx.Done():
		t.Fatal("timed out waiting for the event")
	}
}

func TestMockPublisherRecords(t *testing.T) {
	mock := NewMockEventPublisher(testLogger())
	ctx := context.Background()

	for _, eventType := range []string{UserCreated, QuestionUpdated} {
		if err := mock.Publish(ctx, NewEvent(eventType, 1, 1, nil)); err != nil {
			t.Fatalf("publish failed: %v", err)
		}
	}

	published := mock.GetPublishedEvents()
	if len(published) != 2 {
		t.Fatalf("expected 2 events, got %d", len(published))
	}
	if published[0].Type != UserCreated || published[1].Type != QuestionUpdated {
		t.Errorf("events out of order: %+v", published)
	}
}
