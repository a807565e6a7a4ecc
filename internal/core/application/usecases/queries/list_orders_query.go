package queries

import (
	"errors"

	"marketplace/internal/core/domain/model/actor"
	"marketplace/internal/pkg/guard"
)

var ErrListOrdersQueryIsNotConstructed = errors.New(
	"ListOrdersQuery must be created via NewListOrdersQuery constructor",
)

// ListOrdersQuery lists the orders an actor watches, newest first.
type ListOrdersQuery struct {
	actor actor.Actor
	guard guard.ConstructorGuard
}

func NewListOrdersQuery(a actor.Actor) (ListOrdersQuery, error) {
	if err := a.Validate(); err != nil {
		return ListOrdersQuery{}, err
	}
	return ListOrdersQuery{actor: a, guard: guard.NewConstructorGuard()}, nil
}

func (q ListOrdersQuery) Validate() error {
	return q.guard.Validate(ErrListOrdersQueryIsNotConstructed)
}

func (q ListOrdersQuery) Actor() actor.Actor { return q.actor }
