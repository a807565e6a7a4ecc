package queries

import (
	"errors"

	"marketplace/internal/core/domain/model/actor"
	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/pkg/errs"
	"marketplace/internal/pkg/guard"

	"github.com/shopspring/decimal"
)

var ErrGetAvailableAgentsQueryIsNotConstructed = errors.New(
	"GetAvailableAgentsQuery must be created via NewGetAvailableAgentsQuery constructor",
)

// GetAvailableAgentsQuery lists the agents a restaurant operator can push an order to.
//
// Example:
//
//	query, err := NewGetAvailableAgentsQuery(operator)
//	if err != nil {
//	    return err
//	}
//	agents, err := handler.Handle(ctx, query)
type GetAvailableAgentsQuery struct {
	actor actor.Actor
	guard guard.ConstructorGuard
}

// NewGetAvailableAgentsQuery accepts restaurant operators and admins only.
func NewGetAvailableAgentsQuery(a actor.Actor) (GetAvailableAgentsQuery, error) {
	if err := a.Validate(); err != nil {
		return GetAvailableAgentsQuery{}, err
	}
	if a.Role() != actor.RoleRestaurantOperator && a.Role() != actor.RoleAdmin {
		return GetAvailableAgentsQuery{}, errs.NewPermissionError(a.String(), "list available agents")
	}
	return GetAvailableAgentsQuery{actor: a, guard: guard.NewConstructorGuard()}, nil
}

func (q GetAvailableAgentsQuery) Validate() error {
	return q.guard.Validate(ErrGetAvailableAgentsQueryIsNotConstructed)
}

// GetAvailableAgentsQueryResponse is one available agent, best candidates first.
type GetAvailableAgentsQueryResponse struct {
	ID              kernel.UUID
	Name            string
	Phone           string
	Rating          decimal.Decimal
	TotalDeliveries int
}
