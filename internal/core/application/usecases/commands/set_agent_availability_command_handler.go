package commands

import (
	"context"

	"marketplace/internal/core/domain/services"
)

// SetAgentAvailabilityCommandHandler lets an agent toggle its own availability, and an admin
// anyone's.
type SetAgentAvailabilityCommandHandler struct {
	uowFactory AgentUoWFactory
	policy     services.OrderPolicy
}

func NewSetAgentAvailabilityCommandHandler(uowFactory AgentUoWFactory) SetAgentAvailabilityCommandHandler {
	return SetAgentAvailabilityCommandHandler{uowFactory: uowFactory, policy: services.NewOrderPolicy()}
}

func (h SetAgentAvailabilityCommandHandler) Handle(ctx context.Context, cmd SetAgentAvailabilityCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}
	if err := h.policy.AuthorizeSetAvailability(cmd.Actor(), cmd.AgentID()); err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	agentRepo := uow.AgentRepository()
	agent, err := agentRepo.Get(ctx, cmd.AgentID())
	if err != nil {
		return err
	}
	if agent.Available() == cmd.Available() {
		return nil
	}

	agent.SetAvailability(cmd.Available())
	if err = agentRepo.SetAvailability(ctx, agent.ID(), agent.Available()); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
