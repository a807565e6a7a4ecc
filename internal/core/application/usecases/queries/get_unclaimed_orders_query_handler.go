package queries

import (
	"context"

	"marketplace/internal/core/domain/model/actor"
	"marketplace/internal/core/domain/services"
	"marketplace/internal/core/ports"
	"marketplace/internal/pkg/errs"
)

// GetUnclaimedOrdersQueryHandler lists ready orders waiting for a delivery agent, oldest first.
// Delivery agents must be marked available to see the list.
type GetUnclaimedOrdersQueryHandler struct {
	orders ports.OrderReader
	agents ports.AgentRepository
	policy services.OrderPolicy
}

func NewGetUnclaimedOrdersQueryHandler(orders ports.OrderReader, agents ports.AgentRepository) GetUnclaimedOrdersQueryHandler {
	return GetUnclaimedOrdersQueryHandler{orders: orders, agents: agents, policy: services.NewOrderPolicy()}
}

func (h GetUnclaimedOrdersQueryHandler) Handle(ctx context.Context, query GetUnclaimedOrdersQuery) ([]OrderView, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}
	a := query.Actor()
	if err := h.policy.AuthorizeListUnclaimed(a); err != nil {
		return nil, err
	}

	if a.Role() == actor.RoleDeliveryAgent {
		ag, err := h.agents.Get(ctx, a.ID())
		if err != nil {
			return nil, err
		}
		if !ag.Available() {
			return nil, errs.NewPermissionError(a.String(), "list unclaimed orders while unavailable")
		}
	}

	orders, err := h.orders.FindUnclaimed(ctx)
	if err != nil {
		return nil, err
	}

	views := make([]OrderView, 0, len(orders))
	for _, o := range orders {
		views = append(views, NewOrderView(o))
	}
	return views, nil
}
