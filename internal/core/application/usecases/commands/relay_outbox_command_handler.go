package commands

import (
	"context"
	"time"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/ports"
)

// RelayOutboxCommandHandler moves committed outbox messages to the event bus.
// Delivery is at least once: a crash between Publish and MarkPublished re-sends the batch.
type RelayOutboxCommandHandler struct {
	outbox    ports.OutboxRepository
	publisher ports.EventPublisher
}

func NewRelayOutboxCommandHandler(outbox ports.OutboxRepository, publisher ports.EventPublisher) RelayOutboxCommandHandler {
	return RelayOutboxCommandHandler{outbox: outbox, publisher: publisher}
}

// Handle returns how many messages were published.
func (h RelayOutboxCommandHandler) Handle(ctx context.Context, cmd RelayOutboxCommand) (int, error) {
	if err := cmd.Validate(); err != nil {
		return 0, err
	}

	messages, err := h.outbox.GetUnpublished(ctx, cmd.BatchSize())
	if err != nil {
		return 0, err
	}
	if len(messages) == 0 {
		return 0, nil
	}

	if err = h.publisher.Publish(ctx, messages...); err != nil {
		return 0, err
	}

	ids := make([]kernel.UUID, 0, len(messages))
	for _, m := range messages {
		ids = append(ids, m.ID)
	}
	if err = h.outbox.MarkPublished(ctx, ids, time.Now()); err != nil {
		return 0, err
	}

	return len(messages), nil
}
