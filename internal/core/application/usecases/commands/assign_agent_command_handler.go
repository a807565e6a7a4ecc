package commands

import (
	"context"
	"errors"
	"time"

	"marketplace/internal/core/domain/model/agent"
	"marketplace/internal/core/domain/model/order"
	"marketplace/internal/core/domain/services"
	"marketplace/internal/core/ports"
	"marketplace/internal/pkg/errs"
)

// dispatchBatch bounds how many stale orders one run looks at.
const dispatchBatch = 10

var (
	ErrNoAvailableAgentsFound = errors.New("no available delivery agents found")
	ErrNoOrderFound           = errors.New("no order found")
)

// AssignAgentCommandHandler orchestrates automatic agent assignment.
// Walks the oldest stale ready orders, lets OrderDispatcher choose the agent and commits the
// first successful claim made through the repository's atomic claim, so it competes with
// manual claims on equal terms. An order that cannot be claimed is skipped; a storage failure
// ends the run.
//
// Example:
//
//	o, err := handler.Handle(ctx, cmd)
//	switch {
//	case errors.Is(err, ErrNoOrderFound):
//	    log.Println("Nothing waiting")
//	case errors.Is(err, ErrNoAvailableAgentsFound):
//	    log.Println("All agents are off shift")
//	case errors.Is(err, order.ErrAlreadyClaimed):
//	    log.Println("Someone claimed it first")
//	case err != nil:
//	    log.Printf("Assignment failed: %v", err)
//	}
type AssignAgentCommandHandler struct {
	uowFactory UoWFactory
	dispatcher services.OrderDispatcher
}

func NewAssignAgentCommandHandler(uowFactory UoWFactory) AssignAgentCommandHandler {
	return AssignAgentCommandHandler{
		uowFactory: uowFactory,
		dispatcher: services.NewOrderDispatcher(),
	}
}

// Handle returns the claimed order.
func (h AssignAgentCommandHandler) Handle(ctx context.Context, command AssignAgentCommand) (*order.Order, error) {
	if err := command.Validate(); err != nil {
		return nil, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	agentRepo := uow.AgentRepository()
	orderRepo := uow.OrderRepository()

	now := time.Now()
	stale, err := orderRepo.FindStaleReady(ctx, now.Add(-command.Delay()), dispatchBatch)
	if err != nil {
		return nil, err
	}
	if len(stale) == 0 {
		return nil, ErrNoOrderFound
	}

	agents, err := agentRepo.GetAllAvailable(ctx)
	if err != nil {
		return nil, err
	}
	if len(agents) == 0 {
		return nil, ErrNoAvailableAgentsFound
	}

	var skipped []error
	for _, o := range stale {
		claimed, claimErr := h.claim(ctx, orderRepo, o, agents, now)
		switch {
		case claimErr == nil:
			if err = uow.Commit(ctx); err != nil {
				return nil, err
			}
			return claimed, nil
		case errors.Is(claimErr, services.ErrAgentNotFound):
			return nil, ErrNoAvailableAgentsFound
		case errors.Is(claimErr, errs.ErrPersistence):
			return nil, claimErr
		default:
			skipped = append(skipped, claimErr)
		}
	}

	return nil, errors.Join(skipped...)
}

func (h AssignAgentCommandHandler) claim(
	ctx context.Context,
	orderRepo ports.OrderRepository,
	o *order.Order,
	agents []*agent.DeliveryAgent,
	now time.Time,
) (*order.Order, error) {
	_, assignment, err := h.dispatcher.Dispatch(o, agents, now)
	if err != nil {
		return nil, err
	}
	return orderRepo.Claim(ctx, o.ID(), assignment)
}
