package commands

import (
	"errors"
	"fmt"

	"marketplace/internal/core/domain/model/actor"
	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/order"
	"marketplace/internal/pkg/errs"
	"marketplace/internal/pkg/guard"
)

var ErrAdvanceOrderCommandIsNotConstructed = errors.New(
	"AdvanceOrderCommand must be created via NewAdvanceOrderCommand constructor",
)

// AdvanceOrderCommand applies confirm, start_preparing, mark_ready or cancel to an order.
// Assignment and delivery have their own commands.
type AdvanceOrderCommand struct {
	actor   actor.Actor
	orderID kernel.UUID
	event   order.Event
	guard   guard.ConstructorGuard
}

func NewAdvanceOrderCommand(a actor.Actor, orderID kernel.UUID, event order.Event) (AdvanceOrderCommand, error) {
	if err := errors.Join(a.Validate(), orderID.Validate(), event.Validate()); err != nil {
		return AdvanceOrderCommand{}, err
	}
	if event == order.EventAssign {
		return AdvanceOrderCommand{}, fmt.Errorf("%s only happens through a claim: %w", event, order.ErrInvalidTransition)
	}
	if event == order.EventDeliver {
		return AdvanceOrderCommand{}, errs.NewValueIsInvalidErrorWithCause("event",
			fmt.Errorf("%s is not a plain status change", event))
	}
	return AdvanceOrderCommand{actor: a, orderID: orderID, event: event, guard: guard.NewConstructorGuard()}, nil
}

func (c AdvanceOrderCommand) Validate() error {
	return c.guard.Validate(ErrAdvanceOrderCommandIsNotConstructed)
}

func (c AdvanceOrderCommand) Actor() actor.Actor { return c.actor }

func (c AdvanceOrderCommand) OrderID() kernel.UUID { return c.orderID }

func (c AdvanceOrderCommand) Event() order.Event { return c.event }
