// Package agentrepo persists the delivery agent directory.
package agentrepo

import (
	"marketplace/internal/core/domain/model/agent"
	"marketplace/internal/core/domain/model/kernel"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// AgentDTO is the row of the delivery_agents table.
type AgentDTO struct {
	ID              uuid.UUID       `gorm:"type:uuid;primaryKey"`
	Name            string          `gorm:"type:varchar(255);not null"`
	Phone           string          `gorm:"type:varchar(32);not null"`
	Available       bool            `gorm:"not null;default:false"`
	Rating          decimal.Decimal `gorm:"type:numeric(3,2);not null;default:0"`
	TotalDeliveries int             `gorm:"not null;default:0"`
}

func (AgentDTO) TableName() string {
	return "delivery_agents"
}

func fromDomain(a *agent.DeliveryAgent) AgentDTO {
	return AgentDTO{
		ID:              a.ID().Bytes(),
		Name:            a.Name(),
		Phone:           a.Phone(),
		Available:       a.Available(),
		Rating:          a.Rating(),
		TotalDeliveries: a.TotalDeliveries(),
	}
}

func toDomain(dto AgentDTO) (*agent.DeliveryAgent, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}
	return agent.RestoreDeliveryAgent(id, dto.Name, dto.Phone, dto.Available, dto.Rating, dto.TotalDeliveries)
}
