package catalog

import (
	"errors"
	"fmt"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/pkg/errs"
	"marketplace/internal/pkg/guard"

	"github.com/shopspring/decimal"
)

var ErrMenuItemIsNotConstructed = errors.New("MenuItem must be created via RestoreMenuItem constructor")

// MenuItem carries the only price the system trusts.
type MenuItem struct {
	id           kernel.UUID
	restaurantID kernel.UUID
	name         string
	price        decimal.Decimal
	available    bool
	guard        guard.ConstructorGuard
}

func RestoreMenuItem(
	id, restaurantID kernel.UUID,
	name string,
	price decimal.Decimal,
	available bool,
) (*MenuItem, error) {
	if err := errors.Join(id.Validate(), restaurantID.Validate()); err != nil {
		return nil, err
	}
	if price.IsNegative() {
		return nil, errs.NewValueIsInvalidErrorWithCause("price", fmt.Errorf("%s is negative", price))
	}
	return &MenuItem{
		id:           id,
		restaurantID: restaurantID,
		name:         name,
		price:        kernel.RoundMoney(price),
		available:    available,
		guard:        guard.NewConstructorGuard(),
	}, nil
}

func (m *MenuItem) Validate() error {
	if m == nil {
		return ErrMenuItemIsNotConstructed
	}
	return m.guard.Validate(ErrMenuItemIsNotConstructed)
}

func (m *MenuItem) ID() kernel.UUID { return m.id }
func (m *MenuItem) RestaurantID() kernel.UUID { return m.restaurantID }
func (m *MenuItem) Name() string { return m.name }
func (m *MenuItem) Price() decimal.Decimal { return m.price }
func (m *MenuItem) Available() bool { return m.available }
