package ports

import (
	"context"

	"marketplace/internal/core/domain/model/agent"
	"marketplace/internal/core/domain/model/kernel"
)

// AgentRepository is the core's view of the agent directory.
type AgentRepository interface {
	// Get retrieves an agent by its identifier.
	// Fails with errs.ErrObjectNotFound if it does not exist.
	Get(ctx context.Context, id kernel.UUID) (*agent.DeliveryAgent, error)

	// GetAllAvailable returns the agents currently accepting deliveries.
	GetAllAvailable(ctx context.Context) ([]*agent.DeliveryAgent, error)

	// SetAvailability stores the agent's availability flag.
	SetAvailability(ctx context.Context, id kernel.UUID, available bool) error

	// IncrementDeliveries adds one to the agent's delivery counter in storage, without
	// reading it first.
	IncrementDeliveries(ctx context.Context, id kernel.UUID) error
}
