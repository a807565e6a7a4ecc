package commands

import (
	"context"
	"time"

	"marketplace/internal/core/domain/model/order"
	"marketplace/internal/core/domain/services"
)

// DeliverOrderCommandHandler completes an order. In one transaction it stamps the delivery
// time, completes payment for cash orders, and adds one to the agent's delivery counter.
type DeliverOrderCommandHandler struct {
	uowFactory UoWFactory
	policy     services.OrderPolicy
}

func NewDeliverOrderCommandHandler(uowFactory UoWFactory) DeliverOrderCommandHandler {
	return DeliverOrderCommandHandler{uowFactory: uowFactory, policy: services.NewOrderPolicy()}
}

func (h DeliverOrderCommandHandler) Handle(ctx context.Context, cmd DeliverOrderCommand) (*order.Order, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	orderRepo := uow.OrderRepository()
	agentRepo := uow.AgentRepository()

	o, err := orderRepo.Get(ctx, cmd.OrderID())
	if err != nil {
		return nil, err
	}
	if err = h.policy.Authorize(cmd.Actor(), services.EventAction(order.EventDeliver), o); err != nil {
		return nil, err
	}
	if err = o.CheckTransition(order.EventDeliver); err != nil {
		return nil, err
	}

	if err = o.Deliver(time.Now()); err != nil {
		return nil, err
	}

	if err = orderRepo.Update(ctx, o); err != nil {
		return nil, err
	}

	if err = agentRepo.IncrementDeliveries(ctx, o.Assignment().AgentID()); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	return o, nil
}
