// Package kafka relays outbox messages to the broker.
package kafka

import (
	"context"
	"fmt"
	"strings"
	"time"

	"marketplace/internal/core/ports"

	kafkago "github.com/segmentio/kafka-go"
)

const (
	headerMessageID = "message-id"
	headerType      = "message-type"
)

type messageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafkago.Message) error
}

// Publisher implements ports.EventPublisher. Messages are keyed by aggregate id so every
// change of one order lands on the same partition in commit order.
type Publisher struct {
	writer messageWriter
}

func NewPublisher(writer messageWriter) *Publisher {
	return &Publisher{writer: writer}
}

// NewWriter builds the kafka-go writer the publisher runs on. The relay waits for every
// in-sync replica so a message marked published is not lost with a broker.
func NewWriter(brokers, topic string) *kafkago.Writer {
	return &kafkago.Writer{
		Addr:                   kafkago.TCP(strings.Split(brokers, ",")...),
		Topic:                  topic,
		Balancer:               &kafkago.Hash{},
		RequiredAcks:           kafkago.RequireAll,
		AllowAutoTopicCreation: true,
		BatchTimeout:           50 * time.Millisecond,
	}
}

func (p *Publisher) Publish(ctx context.Context, messages ...ports.OutboxMessage) error {
	if len(messages) == 0 {
		return nil
	}

	batch := make([]kafkago.Message, 0, len(messages))
	for _, m := range messages {
		batch = append(batch, kafkago.Message{
			Key:   []byte(m.AggregateID.String()),
			Value: m.Payload,
			Time:  m.OccurredAt,
			Headers: []kafkago.Header{
				{Key: headerMessageID, Value: []byte(m.ID.String())},
				{Key: headerType, Value: []byte(m.Type)},
			},
		})
	}

	if err := p.writer.WriteMessages(ctx, batch...); err != nil {
		return fmt.Errorf("publish %d messages: %w", len(batch), err)
	}
	return nil
}
