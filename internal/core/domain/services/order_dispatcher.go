package services

import (
	"errors"
	"time"

	"marketplace/internal/core/domain/model/agent"
	"marketplace/internal/core/domain/model/order"
)

// ErrAgentNotFound is returned when no available agent can take the order.
var ErrAgentNotFound = errors.New("delivery agent not found")

// OrderDispatcher is a domain service that chooses the delivery agent a ready, unclaimed order
// is pushed to.
//
// Business rules:
//   - The order must be ready and unclaimed
//   - Only available agents are considered
//   - Highest rating wins; ties go to the agent with fewer deliveries, then to the first listed
//
// Example usage:
//
//	dispatcher := services.NewOrderDispatcher()
//	chosen, assignment, err := dispatcher.Dispatch(o, agents, time.Now())
//	if errors.Is(err, services.ErrAgentNotFound) {
//	    // nobody is on shift
//	}
//
// Dispatch only decides and updates the in-memory order. The caller persists the decision
// through the atomic claim, which may still lose to a concurrent claim.
type OrderDispatcher struct{}

func NewOrderDispatcher() OrderDispatcher {
	return OrderDispatcher{}
}

// Dispatch picks the best agent for o and assigns o to it at the given moment.
//
// Returns:
//   - *agent.DeliveryAgent: the chosen agent
//   - order.Assignment: the contact snapshot stored on the order
//   - error: ErrAgentNotFound, ErrAlreadyClaimed, ErrInvalidTransition or validation errors
func (d OrderDispatcher) Dispatch(
	o *order.Order,
	agents []*agent.DeliveryAgent,
	at time.Time,
) (*agent.DeliveryAgent, order.Assignment, error) {
	if err := o.Validate(); err != nil {
		return nil, order.Assignment{}, err
	}
	if o.Assignment() != nil {
		return nil, order.Assignment{}, order.ErrAlreadyClaimed
	}
	if !o.Status().Allows(order.EventAssign) {
		_, err := o.Status().Apply(order.EventAssign)
		return nil, order.Assignment{}, err
	}

	best, err := d.findBestAgent(agents)
	if err != nil {
		return nil, order.Assignment{}, err
	}

	assignment, err := best.AssignmentAt(at)
	if err != nil {
		return nil, order.Assignment{}, err
	}
	if err = o.Assign(assignment); err != nil {
		return nil, order.Assignment{}, err
	}

	return best, assignment, nil
}

func (d OrderDispatcher) findBestAgent(agents []*agent.DeliveryAgent) (*agent.DeliveryAgent, error) {
	var best *agent.DeliveryAgent

	for _, a := range agents {
		if err := a.Validate(); err != nil {
			return nil, err
		}
		if !a.Available() {
			continue
		}
		if best == nil || better(a, best) {
			best = a
		}
	}

	if best == nil {
		return nil, ErrAgentNotFound
	}
	return best, nil
}

func better(a, b *agent.DeliveryAgent) bool {
	if c := a.Rating().Cmp(b.Rating()); c != 0 {
		return c > 0
	}
	return a.TotalDeliveries() < b.TotalDeliveries()
}
