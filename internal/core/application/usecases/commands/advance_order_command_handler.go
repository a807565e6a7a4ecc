package commands

import (
	"context"

	"marketplace/internal/core/domain/model/order"
	"marketplace/internal/core/domain/services"
)

// AdvanceOrderCommandHandler moves an order one step through its lifecycle on behalf of the
// restaurant or an admin. The write is conditional on the version the order was read at, so
// two concurrent status changes cannot both apply.
type AdvanceOrderCommandHandler struct {
	uowFactory OrderUoWFactory
	policy     services.OrderPolicy
}

func NewAdvanceOrderCommandHandler(uowFactory OrderUoWFactory) AdvanceOrderCommandHandler {
	return AdvanceOrderCommandHandler{uowFactory: uowFactory, policy: services.NewOrderPolicy()}
}

func (h AdvanceOrderCommandHandler) Handle(ctx context.Context, cmd AdvanceOrderCommand) (*order.Order, error) {
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
	o, err := orderRepo.Get(ctx, cmd.OrderID())
	if err != nil {
		return nil, err
	}

	if err = h.policy.Authorize(cmd.Actor(), services.EventAction(cmd.Event()), o); err != nil {
		return nil, err
	}

	if err = o.CheckTransition(cmd.Event()); err != nil {
		return nil, err
	}

	if err = o.Advance(cmd.Event()); err != nil {
		return nil, err
	}

	if err = orderRepo.Update(ctx, o); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	return o, nil
}
