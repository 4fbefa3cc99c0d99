package events

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill-kafka/v2/pkg/kafka"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
)

// Topic carries all entity lifecycle events.
const Topic = "qa.entity-events"

// Event types published by the services.
const (
	UserCreated     = "user.created"
	QuestionCreated = "question.created"
	QuestionUpdated = "question.updated"
	QuestionDeleted = "question.deleted"
	AnswerCreated   = "answer.created"
	AnswerUpdated   = "answer.updated"
	AnswerDeleted   = "answer.deleted"
)

// Event describes one entity lifecycle change. Publishing is best-effort:
// services log publish failures and never fail the originating request.
type Event struct {
	ID         string         `json:"id"`
	Type       string         `json:"type"`
	EntityID   uint           `json:"entity_id"`
	ActorID    uint           `json:"actor_id,omitempty"`
	OccurredAt time.Time      `json:"occurred_at"`
	Data       map[string]any `json:"data,omitempty"`
}

// NewEvent stamps an event with an id and timestamp.
func NewEvent(eventType string, entityID, actorID uint, data map[string]any) *Event {
	return &Event{
		ID:         watermill.NewUUID(),
		Type:       eventType,
		EntityID:   entityID,
		ActorID:    actorID,
		OccurredAt: time.Now().UTC(),
		Data:       data,
	}
}

// EventPublisher publishes entity lifecycle events.
type EventPublisher interface {
	Publish(ctx context.Context, event *Event) error
	Close() error
}

type watermillPublisher struct {
	publisher message.Publisher
	logger    *slog.Logger
}

// NewGoChannelPublisher returns an in-process publisher. Used when no broker
// is configured; events are observable by in-process subscribers only.
func NewGoChannelPublisher(logger *slog.Logger) EventPublisher {
	pubsub := gochannel.NewGoChannel(gochannel.Config{}, watermill.NewSlogLogger(logger))
	return &watermillPublisher{publisher: pubsub, logger: logger}
}

// NewKafkaPublisher returns a publisher backed by the configured brokers.
func NewKafkaPublisher(brokers []string, logger *slog.Logger) (EventPublisher, error) {
	publisher, err := kafka.NewPublisher(
		kafka.PublisherConfig{
			Brokers:   brokers,
			Marshaler: kafka.DefaultMarshaler{},
		},
		watermill.NewSlogLogger(logger),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create kafka publisher: %w", err)
	}
	return &watermillPublisher{publisher: publisher, logger: logger}, nil
}

func (p *watermillPublisher) Publish(ctx context.Context, event *Event) error {
	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal event: %w", err)
	}

	msg := message.NewMessage(event.ID, payload)
	msg.SetContext(ctx)
	msg.Metadata.Set("event_type", event.Type)

	if err := p.publisher.Publish(Topic, msg); err != nil {
		return fmt.Errorf("failed to publish event %s: %w", event.Type, err)
	}
	return nil
}

func (p *watermillPublisher) Close() error {
	return p.publisher.Close()
}
