package ports

import (
	"context"
	"time"

	"marketplace/internal/core/domain/model/actor"
	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/order"
)

// OrderFilter selects orders for list reads and the change feed. Set fields are ANDed, except
// that IncludeClaimable ORs in ready orders without an agent.
// The zero filter matches every order.
type OrderFilter struct {
	CustomerID       *kernel.UUID
	RestaurantID     *kernel.UUID
	AgentID          *kernel.UUID
	IncludeClaimable bool
	Limit            int
}

// VisibleTo returns the filter of orders an actor watches: customers their own, operators their
// restaurant's, agents the claimable ones plus their own, admins everything.
func VisibleTo(a actor.Actor) OrderFilter {
	switch a.Role() {
	case actor.RoleCustomer:
		id := a.ID()
		return OrderFilter{CustomerID: &id}
	case actor.RoleRestaurantOperator:
		return OrderFilter{RestaurantID: a.RestaurantID()}
	case actor.RoleDeliveryAgent:
		id := a.ID()
		return OrderFilter{AgentID: &id, IncludeClaimable: true}
	case actor.RoleAdmin, actor.RoleSystem:
	}
	return OrderFilter{}
}

// OrderReader is the read side of the order store.
type OrderReader interface {
	// Get retrieves an order by its identifier.
	// Fails with errs.ErrObjectNotFound if it does not exist.
	Get(ctx context.Context, id kernel.UUID) (*order.Order, error)

	// Find returns orders matching filter. With sorted set they come newest first by order
	// date; otherwise in storage order.
	Find(ctx context.Context, filter OrderFilter, sorted bool) ([]*order.Order, error)

	// FindUnclaimed returns ready orders that have no delivery agent, oldest first.
	FindUnclaimed(ctx context.Context) ([]*order.Order, error)

	// FindStaleReady returns up to limit unclaimed ready orders that have not changed since
	// before, oldest first.
	FindStaleReady(ctx context.Context, before time.Time, limit int) ([]*order.Order, error)
}

// OrderRepository defines the persistence contract for order aggregates.
type OrderRepository interface {
	OrderReader

	// Add persists a new order aggregate with its line items.
	Add(ctx context.Context, aggregate *order.Order) error

	// Update writes the aggregate only if storage still holds PersistedVersion.
	// A stale write fails with errs.ErrConcurrentModification and changes nothing.
	Update(ctx context.Context, aggregate *order.Order) error

	// Claim assigns a ready, unclaimed order to an agent in one conditional write and returns
	// the updated order.
	//
	// Failures:
	//   - errs.ErrObjectNotFound if the order does not exist
	//   - order.ErrAlreadyClaimed if another agent holds it
	//   - order.ErrInvalidTransition if it is not ready
	Claim(ctx context.Context, orderID kernel.UUID, assignment order.Assignment) (*order.Order, error)
}
