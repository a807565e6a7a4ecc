// Package outboxrepo stores integration events next to the changes they describe and hands
// them to the relay.
package outboxrepo

import (
	"encoding/json"
	"time"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/order"
	"marketplace/internal/core/ports"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// OrderChangedType is the message type of every order write.
const OrderChangedType = "order.changed"

type MessageDTO struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey"`
	AggregateID uuid.UUID `gorm:"type:uuid;not null"`
	Type        string    `gorm:"type:varchar(64);not null"`
	Payload     []byte    `gorm:"type:jsonb;not null"`
	OccurredAt  time.Time `gorm:"not null"`
	PublishedAt *time.Time
}

func (MessageDTO) TableName() string {
	return "outbox_messages"
}

// OrderChangedPayload is the body of an order.changed message.
type OrderChangedPayload struct {
	OrderID       kernel.UUID     `json:"orderId"`
	CustomerID    kernel.UUID     `json:"customerId"`
	RestaurantID  kernel.UUID     `json:"restaurantId"`
	AgentID       *kernel.UUID    `json:"deliveryAgentId,omitempty"`
	Status        string          `json:"status"`
	PaymentStatus string          `json:"paymentStatus"`
	TotalAmount   decimal.Decimal `json:"totalAmount"`
	Version       int64           `json:"version"`
}

// NewOrderChanged builds the message recording o's current state.
func NewOrderChanged(o *order.Order, at time.Time) (ports.OutboxMessage, error) {
	p := OrderChangedPayload{
		OrderID:       o.ID(),
		CustomerID:    o.CustomerID(),
		RestaurantID:  o.RestaurantID(),
		Status:        o.Status().String(),
		PaymentStatus: string(o.PaymentStatus()),
		TotalAmount:   o.TotalAmount(),
		Version:       o.Version(),
	}
	if a := o.Assignment(); a != nil {
		id := a.AgentID()
		p.AgentID = &id
	}

	payload, err := json.Marshal(p)
	if err != nil {
		return ports.OutboxMessage{}, err
	}
	return ports.OutboxMessage{
		ID:          kernel.NewUUID(),
		AggregateID: o.ID(),
		Type:        OrderChangedType,
		Payload:     payload,
		OccurredAt:  at.UTC(),
	}, nil
}

func fromMessage(m ports.OutboxMessage) MessageDTO {
	return MessageDTO{
		ID:          m.ID.Bytes(),
		AggregateID: m.AggregateID.Bytes(),
		Type:        m.Type,
		Payload:     m.Payload,
		OccurredAt:  m.OccurredAt,
	}
}

func toMessage(dto MessageDTO) (ports.OutboxMessage, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return ports.OutboxMessage{}, err
	}
	aggregateID, err := kernel.UUIDFromBytes(dto.AggregateID[:])
	if err != nil {
		return ports.OutboxMessage{}, err
	}
	return ports.OutboxMessage{
		ID:          id,
		AggregateID: aggregateID,
		Type:        dto.Type,
		Payload:     dto.Payload,
		OccurredAt:  dto.OccurredAt,
	}, nil
}
