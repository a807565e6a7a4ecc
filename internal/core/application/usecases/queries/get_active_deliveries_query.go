package queries

import (
	"errors"
	"time"

	"marketplace/internal/core/domain/model/actor"
	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/pkg/errs"
	"marketplace/internal/pkg/guard"
)

var ErrGetActiveDeliveriesQueryIsNotConstructed = errors.New(
	"GetActiveDeliveriesQuery must be created via NewGetActiveDeliveriesQuery constructor",
)

// GetActiveDeliveriesQuery retrieves orders that are out for delivery. Restaurant operators see
// their restaurant's, admins see all of them.
type GetActiveDeliveriesQuery struct {
	restaurantID *kernel.UUID
	guard        guard.ConstructorGuard
}

func NewGetActiveDeliveriesQuery(a actor.Actor) (GetActiveDeliveriesQuery, error) {
	if err := a.Validate(); err != nil {
		return GetActiveDeliveriesQuery{}, err
	}
	switch a.Role() {
	case actor.RoleAdmin:
		return GetActiveDeliveriesQuery{guard: guard.NewConstructorGuard()}, nil
	case actor.RoleRestaurantOperator:
		return GetActiveDeliveriesQuery{restaurantID: a.RestaurantID(), guard: guard.NewConstructorGuard()}, nil
	case actor.RoleCustomer, actor.RoleDeliveryAgent, actor.RoleSystem:
	}
	return GetActiveDeliveriesQuery{}, errs.NewPermissionError(a.String(), "list active deliveries")
}

// Validate ensures the query was created through the constructor.
func (q GetActiveDeliveriesQuery) Validate() error {
	return q.guard.Validate(ErrGetActiveDeliveriesQueryIsNotConstructed)
}

// RestaurantID narrows the result to one restaurant; nil means every restaurant.
func (q GetActiveDeliveriesQuery) RestaurantID() *kernel.UUID {
	return q.restaurantID
}

// GetActiveDeliveriesQueryResponse is one order on its way to a customer.
type GetActiveDeliveriesQueryResponse struct {
	OrderID               kernel.UUID
	RestaurantID          kernel.UUID
	AgentID               kernel.UUID
	AgentName             string
	PickupTime            time.Time
	EstimatedDeliveryTime time.Time
}
