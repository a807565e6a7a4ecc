package kafka

import (
	"context"
	"errors"
	"testing"
	"time"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/ports"

	kafkago "github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockWriter struct {
	mock.Mock
}

func (m *MockWriter) WriteMessages(ctx context.Context, msgs ...kafkago.Message) error {
	args := m.Called(ctx, msgs)
	return args.Error(0)
}

func TestPublisher_Publish_KeysByAggregate(t *testing.T) {
	writer := new(MockWriter)
	publisher := NewPublisher(writer)
	orderID := kernel.NewUUID()
	at := time.Date(2026, time.March, 14, 12, 0, 0, 0, time.UTC)
	messages := []ports.OutboxMessage{
		{ID: kernel.NewUUID(), AggregateID: orderID, Type: "order.changed", Payload: []byte(`{"version":1}`), OccurredAt: at},
		{ID: kernel.NewUUID(), AggregateID: orderID, Type: "order.changed", Payload: []byte(`{"version":2}`), OccurredAt: at},
	}

	var sent []kafkago.Message
	writer.On("WriteMessages", mock.Anything, mock.Anything).
		Run(func(args mock.Arguments) { sent = args.Get(1).([]kafkago.Message) }).
		Return(nil).Once()

	require.NoError(t, publisher.Publish(t.Context(), messages...))

	require.Len(t, sent, 2)
	for i, m := range sent {
		assert.Equal(t, []byte(orderID.String()), m.Key)
		assert.Equal(t, messages[i].Payload, m.Value)
		assert.Equal(t, at, m.Time)
		assert.Equal(t, []kafkago.Header{
			{Key: headerMessageID, Value: []byte(messages[i].ID.String())},
			{Key: headerType, Value: []byte("order.changed")},
		}, m.Headers)
	}
	writer.AssertExpectations(t)
}

func TestPublisher_Publish_NothingToSend(t *testing.T) {
	writer := new(MockWriter)

	require.NoError(t, NewPublisher(writer).Publish(t.Context()))
	writer.AssertNotCalled(t, "WriteMessages", mock.Anything, mock.Anything)
}

func TestPublisher_Publish_WriterFails(t *testing.T) {
	writer := new(MockWriter)
	brokerDown := errors.New("broker unreachable")
	writer.On("WriteMessages", mock.Anything, mock.Anything).Return(brokerDown).Once()

	err := NewPublisher(writer).Publish(t.Context(), ports.OutboxMessage{ID: kernel.NewUUID(), AggregateID: kernel.NewUUID()})
	assert.ErrorIs(t, err, brokerDown)
}

func TestNewWriter_SplitsBrokers(t *testing.T) {
	w := NewWriter("kafka-1:9092,kafka-2:9092", "order.changed")

	assert.Equal(t, "order.changed", w.Topic)
	assert.Equal(t, kafkago.RequireAll, w.RequiredAcks)
}
