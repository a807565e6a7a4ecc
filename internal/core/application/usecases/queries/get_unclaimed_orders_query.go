package queries

import (
	"errors"

	"marketplace/internal/core/domain/model/actor"
	"marketplace/internal/pkg/guard"
)

var ErrGetUnclaimedOrdersQueryIsNotConstructed = errors.New(
	"GetUnclaimedOrdersQuery must be created via NewGetUnclaimedOrdersQuery constructor",
)

// GetUnclaimedOrdersQuery retrieves ready orders that no delivery agent holds yet.
//
// Example:
//
//	query, _ := NewGetUnclaimedOrdersQuery(agentActor)
//	orders, err := handler.Handle(ctx, query)
//	if err != nil {
//	    return fmt.Errorf("failed to list unclaimed orders: %w", err)
//	}
type GetUnclaimedOrdersQuery struct {
	actor actor.Actor
	guard guard.ConstructorGuard
}

func NewGetUnclaimedOrdersQuery(a actor.Actor) (GetUnclaimedOrdersQuery, error) {
	if err := a.Validate(); err != nil {
		return GetUnclaimedOrdersQuery{}, err
	}
	return GetUnclaimedOrdersQuery{actor: a, guard: guard.NewConstructorGuard()}, nil
}

// Validate ensures the query was created through the constructor.
func (q GetUnclaimedOrdersQuery) Validate() error {
	return q.guard.Validate(ErrGetUnclaimedOrdersQueryIsNotConstructed)
}

func (q GetUnclaimedOrdersQuery) Actor() actor.Actor { return q.actor }
