package commands

import (
	"errors"

	"marketplace/internal/core/domain/model/actor"
	"marketplace/internal/core/domain/model/cart"
	"marketplace/internal/pkg/errs"
	"marketplace/internal/pkg/guard"
)

var ErrHandOffCartCommandIsNotConstructed = errors.New(
	"HandOffCartCommand must be created via NewHandOffCartCommand constructor",
)

// HandOffCartCommand revalidates a customer's cart and parks it for checkout.
type HandOffCartCommand struct {
	actor actor.Actor
	cart  cart.ClientCart
	guard guard.ConstructorGuard
}

// NewHandOffCartCommand accepts customers only.
func NewHandOffCartCommand(a actor.Actor, c cart.ClientCart) (HandOffCartCommand, error) {
	if err := a.Validate(); err != nil {
		return HandOffCartCommand{}, err
	}
	if a.Role() != actor.RoleCustomer {
		return HandOffCartCommand{}, errs.NewPermissionError(a.String(), "check out a cart")
	}
	return HandOffCartCommand{actor: a, cart: c, guard: guard.NewConstructorGuard()}, nil
}

func (c HandOffCartCommand) Validate() error {
	return c.guard.Validate(ErrHandOffCartCommandIsNotConstructed)
}

func (c HandOffCartCommand) Actor() actor.Actor { return c.actor }

func (c HandOffCartCommand) Cart() cart.ClientCart { return c.cart }
