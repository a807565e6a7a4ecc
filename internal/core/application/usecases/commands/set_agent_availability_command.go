package commands

import (
	"errors"

	"marketplace/internal/core/domain/model/actor"
	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/pkg/guard"
)

var ErrSetAgentAvailabilityCommandIsNotConstructed = errors.New(
	"SetAgentAvailabilityCommand must be created via NewSetAgentAvailabilityCommand constructor",
)

// SetAgentAvailabilityCommand puts an agent on or off shift.
type SetAgentAvailabilityCommand struct {
	actor     actor.Actor
	agentID   kernel.UUID
	available bool
	guard     guard.ConstructorGuard
}

func NewSetAgentAvailabilityCommand(a actor.Actor, agentID kernel.UUID, available bool) (SetAgentAvailabilityCommand, error) {
	if err := errors.Join(a.Validate(), agentID.Validate()); err != nil {
		return SetAgentAvailabilityCommand{}, err
	}
	return SetAgentAvailabilityCommand{
		actor:     a,
		agentID:   agentID,
		available: available,
		guard:     guard.NewConstructorGuard(),
	}, nil
}

func (c SetAgentAvailabilityCommand) Validate() error {
	return c.guard.Validate(ErrSetAgentAvailabilityCommandIsNotConstructed)
}

func (c SetAgentAvailabilityCommand) Actor() actor.Actor { return c.actor }

func (c SetAgentAvailabilityCommand) AgentID() kernel.UUID { return c.agentID }

func (c SetAgentAvailabilityCommand) Available() bool { return c.available }
