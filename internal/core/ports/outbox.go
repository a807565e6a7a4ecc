package ports

import (
	"context"
	"time"

	"marketplace/internal/core/domain/model/kernel"
)

// OutboxMessage is an integration event recorded in the same transaction as the change it
// describes.
type OutboxMessage struct {
	ID          kernel.UUID
	AggregateID kernel.UUID
	Type        string
	Payload     []byte
	OccurredAt  time.Time
}

// OutboxRepository is the relay's access to recorded messages.
type OutboxRepository interface {
	// GetUnpublished returns up to limit messages in the order they were recorded.
	GetUnpublished(ctx context.Context, limit int) ([]OutboxMessage, error)

	// MarkPublished stamps the messages as delivered to the broker.
	MarkPublished(ctx context.Context, ids []kernel.UUID, at time.Time) error
}

// EventPublisher delivers outbox messages to the message broker.
type EventPublisher interface {
	Publish(ctx context.Context, messages ...OutboxMessage) error
}
