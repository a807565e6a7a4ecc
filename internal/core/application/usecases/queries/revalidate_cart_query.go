package queries

import (
	"errors"

	"marketplace/internal/core/domain/model/cart"
	"marketplace/internal/pkg/guard"
)

var ErrRevalidateCartQueryIsNotConstructed = errors.New(
	"RevalidateCartQuery must be created via NewRevalidateCartQuery constructor",
)

// RevalidateCartQuery asks whether a client cart can be checked out as submitted.
type RevalidateCartQuery struct {
	cart  cart.ClientCart
	guard guard.ConstructorGuard
}

// NewRevalidateCartQuery accepts any cart. A cart without a restaurant is not malformed input:
// revalidation reports it as a restaurant that no longer exists.
func NewRevalidateCartQuery(c cart.ClientCart) (RevalidateCartQuery, error) {
	return RevalidateCartQuery{cart: c, guard: guard.NewConstructorGuard()}, nil
}

func (q RevalidateCartQuery) Validate() error {
	return q.guard.Validate(ErrRevalidateCartQueryIsNotConstructed)
}

func (q RevalidateCartQuery) Cart() cart.ClientCart {
	return q.cart
}
