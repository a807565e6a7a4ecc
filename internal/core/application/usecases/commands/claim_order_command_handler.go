package commands

import (
	"context"
	"errors"
	"time"

	"marketplace/internal/core/domain/model/order"
	"marketplace/internal/core/domain/services"
)

// ErrAgentUnavailable is returned when the target agent is not accepting deliveries.
var ErrAgentUnavailable = errors.New("delivery agent is not available")

// ClaimOrderCommandHandler hands a ready order to exactly one delivery agent.
//
// The order is read only to check who may assign it and to fail early on orders that are
// plainly not claimable. Exclusivity comes from the repository's Claim, a single conditional
// write on status and agent; of any number of concurrent claims exactly one succeeds and the
// others get order.ErrAlreadyClaimed. Callers should refresh the unclaimed list on that error
// rather than retry.
type ClaimOrderCommandHandler struct {
	uowFactory UoWFactory
	policy     services.OrderPolicy
}

func NewClaimOrderCommandHandler(uowFactory UoWFactory) ClaimOrderCommandHandler {
	return ClaimOrderCommandHandler{uowFactory: uowFactory, policy: services.NewOrderPolicy()}
}

func (h ClaimOrderCommandHandler) Handle(ctx context.Context, cmd ClaimOrderCommand) (*order.Order, error) {
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
	if err = h.policy.AuthorizeClaim(cmd.Actor(), o, cmd.AgentID()); err != nil {
		return nil, err
	}
	if err = o.CheckTransition(order.EventAssign); err != nil {
		return nil, err
	}

	agent, err := agentRepo.Get(ctx, cmd.AgentID())
	if err != nil {
		return nil, err
	}
	if !agent.Available() {
		return nil, ErrAgentUnavailable
	}

	assignment, err := agent.AssignmentAt(time.Now())
	if err != nil {
		return nil, err
	}

	claimed, err := orderRepo.Claim(ctx, o.ID(), assignment)
	if err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	return claimed, nil
}
