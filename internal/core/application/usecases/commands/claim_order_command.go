package commands

import (
	"errors"

	"marketplace/internal/core/domain/model/actor"
	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/pkg/guard"
)

var ErrClaimOrderCommandIsNotConstructed = errors.New(
	"ClaimOrderCommand must be created via NewClaimOrderCommand constructor",
)

// ClaimOrderCommand assigns a ready order to a delivery agent: a self-claim when the actor is
// that agent, a push-assign when it is the restaurant operator or an admin.
type ClaimOrderCommand struct {
	actor   actor.Actor
	orderID kernel.UUID
	agentID kernel.UUID
	guard   guard.ConstructorGuard
}

func NewClaimOrderCommand(a actor.Actor, orderID, agentID kernel.UUID) (ClaimOrderCommand, error) {
	if err := errors.Join(a.Validate(), orderID.Validate(), agentID.Validate()); err != nil {
		return ClaimOrderCommand{}, err
	}
	return ClaimOrderCommand{actor: a, orderID: orderID, agentID: agentID, guard: guard.NewConstructorGuard()}, nil
}

// NewSelfClaimCommand is a claim by the acting agent for itself.
func NewSelfClaimCommand(a actor.Actor, orderID kernel.UUID) (ClaimOrderCommand, error) {
	return NewClaimOrderCommand(a, orderID, a.ID())
}

func (c ClaimOrderCommand) Validate() error {
	return c.guard.Validate(ErrClaimOrderCommandIsNotConstructed)
}

func (c ClaimOrderCommand) Actor() actor.Actor { return c.actor }

func (c ClaimOrderCommand) OrderID() kernel.UUID { return c.orderID }

func (c ClaimOrderCommand) AgentID() kernel.UUID { return c.agentID }
