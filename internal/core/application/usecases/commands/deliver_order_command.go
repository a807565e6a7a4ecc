package commands

import (
	"errors"

	"marketplace/internal/core/domain/model/actor"
	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/pkg/guard"
)

var ErrDeliverOrderCommandIsNotConstructed = errors.New(
	"DeliverOrderCommand must be created via NewDeliverOrderCommand constructor",
)

// DeliverOrderCommand records that the assigned agent handed the order over.
type DeliverOrderCommand struct {
	actor   actor.Actor
	orderID kernel.UUID
	guard   guard.ConstructorGuard
}

func NewDeliverOrderCommand(a actor.Actor, orderID kernel.UUID) (DeliverOrderCommand, error) {
	if err := errors.Join(a.Validate(), orderID.Validate()); err != nil {
		return DeliverOrderCommand{}, err
	}
	return DeliverOrderCommand{actor: a, orderID: orderID, guard: guard.NewConstructorGuard()}, nil
}

func (c DeliverOrderCommand) Validate() error {
	return c.guard.Validate(ErrDeliverOrderCommandIsNotConstructed)
}

func (c DeliverOrderCommand) Actor() actor.Actor { return c.actor }

func (c DeliverOrderCommand) OrderID() kernel.UUID { return c.orderID }
