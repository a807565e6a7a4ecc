package queries

import (
	"errors"

	"marketplace/internal/core/domain/model/actor"
	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/pkg/guard"
)

var ErrGetOrderQueryIsNotConstructed = errors.New(
	"GetOrderQuery must be created via NewGetOrderQuery constructor",
)

// GetOrderQuery reads one order on behalf of an actor.
type GetOrderQuery struct {
	actor   actor.Actor
	orderID kernel.UUID
	guard   guard.ConstructorGuard
}

func NewGetOrderQuery(a actor.Actor, orderID kernel.UUID) (GetOrderQuery, error) {
	if err := errors.Join(a.Validate(), orderID.Validate()); err != nil {
		return GetOrderQuery{}, err
	}
	return GetOrderQuery{actor: a, orderID: orderID, guard: guard.NewConstructorGuard()}, nil
}

func (q GetOrderQuery) Validate() error {
	return q.guard.Validate(ErrGetOrderQueryIsNotConstructed)
}

func (q GetOrderQuery) Actor() actor.Actor { return q.actor }

func (q GetOrderQuery) OrderID() kernel.UUID { return q.orderID }
