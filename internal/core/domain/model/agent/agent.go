package agent

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/order"
	"marketplace/internal/pkg/errs"
	"marketplace/internal/pkg/guard"

	"github.com/shopspring/decimal"
)

const MaxRating = 5

var (
	// ErrNameIsRequired is returned when attempting to create an agent without a name.
	ErrNameIsRequired = errs.NewValueIsRequiredError("name")
	// ErrAgentIsNotConstructed is returned when using an improperly initialized DeliveryAgent.
	ErrAgentIsNotConstructed = errors.New("DeliveryAgent must be created via NewDeliveryAgent constructor")
)

// DeliveryAgent represents a delivery agent in the agent directory.
//
// Business rules:
//   - Must have a valid UUID and a non-empty name
//   - New agents start unavailable, unrated and with no deliveries
//   - Availability is toggled by the agent; ratings come from the review collaborator
type DeliveryAgent struct {
	id              kernel.UUID
	name            string
	phone           string
	available       bool
	rating          decimal.Decimal
	totalDeliveries int
	guard           guard.ConstructorGuard
}

// NewDeliveryAgent registers an agent. Agents are created unavailable.
func NewDeliveryAgent(id kernel.UUID, name, phone string) (*DeliveryAgent, error) {
	a := &DeliveryAgent{
		phone:  phone,
		rating: decimal.Zero,
		guard:  guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		a.setID(id),
		a.setName(name),
	); err != nil {
		return nil, err
	}

	return a, nil
}

// RestoreDeliveryAgent rebuilds an agent read from the directory.
func RestoreDeliveryAgent(
	id kernel.UUID,
	name, phone string,
	available bool,
	rating decimal.Decimal,
	totalDeliveries int,
) (*DeliveryAgent, error) {
	a := &DeliveryAgent{
		phone:     phone,
		available: available,
		guard:     guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		a.setID(id),
		a.setName(name),
		a.setRating(rating),
		a.setTotalDeliveries(totalDeliveries),
	); err != nil {
		return nil, err
	}

	return a, nil
}

func (a *DeliveryAgent) IsEqual(other *DeliveryAgent) bool {
	if other == nil {
		return false
	}
	return a.id.IsEqual(other.id)
}

func (a *DeliveryAgent) Validate() error {
	if a == nil {
		return ErrAgentIsNotConstructed
	}
	return a.guard.Validate(ErrAgentIsNotConstructed)
}

func (a *DeliveryAgent) ID() kernel.UUID {
	return a.id
}

func (a *DeliveryAgent) Name() string {
	return a.name
}

func (a *DeliveryAgent) Phone() string {
	return a.phone
}

func (a *DeliveryAgent) Available() bool {
	return a.available
}

func (a *DeliveryAgent) Rating() decimal.Decimal {
	return a.rating
}

func (a *DeliveryAgent) TotalDeliveries() int {
	return a.totalDeliveries
}

func (a *DeliveryAgent) SetAvailability(available bool) {
	a.available = available
}

// AssignmentAt snapshots the agent's contact details for an order claimed at the given moment.
func (a *DeliveryAgent) AssignmentAt(at time.Time) (order.Assignment, error) {
	if err := a.Validate(); err != nil {
		return order.Assignment{}, err
	}
	return order.NewAssignment(a.id, a.name, a.phone, at)
}

func (a *DeliveryAgent) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	a.id = id
	return nil
}

func (a *DeliveryAgent) setName(name string) error {
	if strings.TrimSpace(name) == "" {
		return ErrNameIsRequired
	}
	a.name = name
	return nil
}

func (a *DeliveryAgent) setRating(rating decimal.Decimal) error {
	if rating.IsNegative() || rating.GreaterThan(decimal.NewFromInt(MaxRating)) {
		return errs.NewValueIsOutOfRangeError("rating", rating.String(), 0, MaxRating)
	}
	a.rating = rating
	return nil
}

func (a *DeliveryAgent) setTotalDeliveries(n int) error {
	if n < 0 {
		return errs.NewValueIsInvalidErrorWithCause("totalDeliveries", fmt.Errorf("%d is negative", n))
	}
	a.totalDeliveries = n
	return nil
}
