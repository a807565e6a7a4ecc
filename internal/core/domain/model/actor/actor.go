// Package actor describes who is acting on an order. Identities are issued by the external
// identity provider; the core only consumes the id, the role and, for restaurant operators,
// the restaurant they operate.
package actor

import (
	"errors"
	"fmt"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/pkg/errs"
	"marketplace/internal/pkg/guard"
)

type Role string

const (
	RoleCustomer           Role = "customer"
	RoleRestaurantOperator Role = "restaurant_operator"
	RoleDeliveryAgent      Role = "delivery_agent"
	RoleAdmin              Role = "admin"
	// RoleSystem is used by background jobs.
	RoleSystem Role = "system"
)

var ErrActorIsNotConstructed = errors.New("Actor must be created via NewActor constructor")

// ParseRole accepts the four human roles; RoleSystem is never accepted from outside.
func ParseRole(s string) (Role, error) {
	switch r := Role(s); r {
	case RoleCustomer, RoleRestaurantOperator, RoleDeliveryAgent, RoleAdmin:
		return r, nil
	default:
		return "", errs.NewValueIsInvalidErrorWithCause("role", fmt.Errorf("%q is not a role", s))
	}
}

type Actor struct {
	id           kernel.UUID
	role         Role
	restaurantID *kernel.UUID
	guard        guard.ConstructorGuard
}

// NewActor builds an actor. Restaurant operators must name their restaurant.
func NewActor(id kernel.UUID, role Role, restaurantID *kernel.UUID) (Actor, error) {
	if err := id.Validate(); err != nil {
		return Actor{}, err
	}
	if role == RoleRestaurantOperator {
		if restaurantID == nil {
			return Actor{}, errs.NewValueIsRequiredError("restaurantId")
		}
		if err := restaurantID.Validate(); err != nil {
			return Actor{}, err
		}
	}
	a := Actor{id: id, role: role, guard: guard.NewConstructorGuard()}
	if role == RoleRestaurantOperator {
		rid := *restaurantID
		a.restaurantID = &rid
	}
	return a, nil
}

// System is the actor background jobs act as.
func System() Actor {
	return Actor{id: systemID, role: RoleSystem, guard: guard.NewConstructorGuard()}
}

var systemID = kernel.MustParseUUID("00000000-0000-4000-8000-000000000001")

func (a Actor) Validate() error {
	return a.guard.Validate(ErrActorIsNotConstructed)
}

func (a Actor) ID() kernel.UUID { return a.id }

func (a Actor) Role() Role { return a.role }

// RestaurantID is set for restaurant operators only.
func (a Actor) RestaurantID() *kernel.UUID { return a.restaurantID }

// Operates reports whether a is the operator of restaurantID.
func (a Actor) Operates(restaurantID kernel.UUID) bool {
	return a.role == RoleRestaurantOperator && a.restaurantID != nil && a.restaurantID.IsEqual(restaurantID)
}

func (a Actor) String() string {
	return fmt.Sprintf("%s %s", a.role, a.id)
}
