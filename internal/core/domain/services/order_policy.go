package services

import (
	"marketplace/internal/core/domain/model/actor"
	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/order"
	"marketplace/internal/pkg/errs"
)

// Action is anything an actor may do to an order: the lifecycle events plus create and view.
type Action string

const (
	ActionCreate Action = "create"
	ActionView   Action = "view"
)

// EventAction is the Action for a lifecycle event.
func EventAction(e order.Event) Action {
	return Action(e)
}

// relation decides whether an actor stands in the required relation to an order.
type relation func(a actor.Actor, o *order.Order) bool

var (
	anyone = func(actor.Actor, *order.Order) bool { return true }

	owningCustomer = func(a actor.Actor, o *order.Order) bool {
		return a.ID().IsEqual(o.CustomerID())
	}
	owningOperator = func(a actor.Actor, o *order.Order) bool {
		return a.Operates(o.RestaurantID())
	}
	assignedAgent = func(a actor.Actor, o *order.Order) bool {
		return o.IsAssignedTo(a.ID())
	}
)

// permissions is the one table every order read and transition is checked against. A role that
// is missing from an action's row may never perform it.
var permissions = map[Action]map[actor.Role]relation{
	ActionCreate: {
		actor.RoleCustomer: owningCustomer,
		actor.RoleSystem:   anyone,
	},
	ActionView: {
		actor.RoleCustomer:           owningCustomer,
		actor.RoleRestaurantOperator: owningOperator,
		actor.RoleDeliveryAgent:      assignedAgent,
		actor.RoleAdmin:              anyone,
	},
	EventAction(order.EventConfirm): {
		actor.RoleRestaurantOperator: owningOperator,
	},
	EventAction(order.EventStartPreparing): {
		actor.RoleRestaurantOperator: owningOperator,
	},
	EventAction(order.EventMarkReady): {
		actor.RoleRestaurantOperator: owningOperator,
	},
	EventAction(order.EventAssign): {
		actor.RoleDeliveryAgent:      anyone,
		actor.RoleRestaurantOperator: owningOperator,
		actor.RoleAdmin:              anyone,
		actor.RoleSystem:             anyone,
	},
	EventAction(order.EventDeliver): {
		actor.RoleDeliveryAgent: assignedAgent,
	},
	EventAction(order.EventCancel): {
		actor.RoleRestaurantOperator: owningOperator,
		actor.RoleAdmin:              anyone,
	},
}

// OrderPolicy answers permission questions from the permissions table.
type OrderPolicy struct{}

func NewOrderPolicy() OrderPolicy {
	return OrderPolicy{}
}

// Authorize returns a PermissionError unless a may perform action on o.
func (p OrderPolicy) Authorize(a actor.Actor, action Action, o *order.Order) error {
	if err := a.Validate(); err != nil {
		return err
	}
	if rel, ok := permissions[action][a.Role()]; ok && rel(a, o) {
		return nil
	}
	return errs.NewPermissionError(a.String(), string(action)+" order "+o.ID().String())
}

// AuthorizeClaim checks an assign request for agentID. Delivery agents may only claim for
// themselves.
func (p OrderPolicy) AuthorizeClaim(a actor.Actor, o *order.Order, agentID kernel.UUID) error {
	if err := p.Authorize(a, EventAction(order.EventAssign), o); err != nil {
		return err
	}
	if a.Role() == actor.RoleDeliveryAgent && !a.ID().IsEqual(agentID) {
		return errs.NewPermissionError(a.String(), "assign order "+o.ID().String()+" to another agent")
	}
	return nil
}

// AuthorizeListUnclaimed lets agents, operators and admins read the unclaimed list. Agents
// must additionally be available, which the caller checks against the directory.
func (p OrderPolicy) AuthorizeListUnclaimed(a actor.Actor) error {
	if err := a.Validate(); err != nil {
		return err
	}
	switch a.Role() {
	case actor.RoleDeliveryAgent, actor.RoleRestaurantOperator, actor.RoleAdmin, actor.RoleSystem:
		return nil
	case actor.RoleCustomer:
	}
	return errs.NewPermissionError(a.String(), "list unclaimed orders")
}

// AuthorizeSetAvailability lets an agent toggle itself and an admin toggle anyone.
func (p OrderPolicy) AuthorizeSetAvailability(a actor.Actor, agentID kernel.UUID) error {
	if err := a.Validate(); err != nil {
		return err
	}
	if a.Role() == actor.RoleAdmin || (a.Role() == actor.RoleDeliveryAgent && a.ID().IsEqual(agentID)) {
		return nil
	}
	return errs.NewPermissionError(a.String(), "set availability of agent "+agentID.String())
}

// Sees reports whether o belongs in a's live feed: customers see their orders, operators
// their restaurant's, agents the ready unclaimed orders and their own, admins everything.
func (p OrderPolicy) Sees(a actor.Actor, o *order.Order) bool {
	switch a.Role() {
	case actor.RoleDeliveryAgent:
		return o.IsClaimable() || o.IsAssignedTo(a.ID())
	case actor.RoleCustomer, actor.RoleRestaurantOperator, actor.RoleAdmin:
		return p.Authorize(a, ActionView, o) == nil
	case actor.RoleSystem:
	}
	return false
}
