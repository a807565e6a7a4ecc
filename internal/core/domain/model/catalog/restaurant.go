package catalog

import (
	"errors"
	"fmt"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/pkg/errs"
	"marketplace/internal/pkg/guard"

	"github.com/shopspring/decimal"
)

var ErrRestaurantIsNotConstructed = errors.New("Restaurant must be created via RestoreRestaurant constructor")

// Restaurant is the catalog record checkout depends on: whether it takes orders and its money
// rules.
type Restaurant struct {
	id           kernel.UUID
	ownerID      kernel.UUID
	name         string
	approved     bool
	active       bool
	minimumOrder decimal.Decimal
	deliveryFee  decimal.Decimal
	guard        guard.ConstructorGuard
}

// RestoreRestaurant rebuilds a restaurant read from the catalog store.
func RestoreRestaurant(
	id, ownerID kernel.UUID,
	name string,
	approved, active bool,
	minimumOrder, deliveryFee decimal.Decimal,
) (*Restaurant, error) {
	r := &Restaurant{
		ownerID:  ownerID,
		name:     name,
		approved: approved,
		active:   active,
		guard:    guard.NewConstructorGuard(),
	}
	if err := errors.Join(
		r.setID(id),
		r.setMinimumOrder(minimumOrder),
		r.setDeliveryFee(deliveryFee),
	); err != nil {
		return nil, err
	}
	return r, nil
}

func (r *Restaurant) Validate() error {
	if r == nil {
		return ErrRestaurantIsNotConstructed
	}
	return r.guard.Validate(ErrRestaurantIsNotConstructed)
}

func (r *Restaurant) ID() kernel.UUID { return r.id }
func (r *Restaurant) OwnerID() kernel.UUID { return r.ownerID }
func (r *Restaurant) Name() string { return r.name }
func (r *Restaurant) Approved() bool { return r.approved }
func (r *Restaurant) Active() bool { return r.active }
func (r *Restaurant) MinimumOrder() decimal.Decimal { return r.minimumOrder }
func (r *Restaurant) DeliveryFee() decimal.Decimal { return r.deliveryFee }

// AcceptsOrders is true only for approved, active restaurants.
func (r *Restaurant) AcceptsOrders() bool {
	return r.approved && r.active
}

func (r *Restaurant) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	r.id = id
	return nil
}

func (r *Restaurant) setMinimumOrder(v decimal.Decimal) error {
	if v.IsNegative() {
		return errs.NewValueIsInvalidErrorWithCause("minimumOrder", fmt.Errorf("%s is negative", v))
	}
	r.minimumOrder = kernel.RoundMoney(v)
	return nil
}

func (r *Restaurant) setDeliveryFee(v decimal.Decimal) error {
	if v.IsNegative() {
		return errs.NewValueIsInvalidErrorWithCause("deliveryFee", fmt.Errorf("%s is negative", v))
	}
	r.deliveryFee = kernel.RoundMoney(v)
	return nil
}
