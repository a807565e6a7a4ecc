package services

import (
	"fmt"

	"marketplace/internal/core/domain/model/cart"
	"marketplace/internal/core/domain/model/catalog"
	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/order"

	"github.com/shopspring/decimal"
)

// CartRevalidator recomputes a client cart from authoritative catalog records.
//
// Client money figures are never used: every surviving line is priced from the menu item.
// Problems are collected for the whole cart before returning, so a user sees everything
// wrong with it at once. The result is either a validated cart or a *cart.ValidationError,
// never both.
//
// Line rules, checked in order:
//   - the menu item must exist and belong to the restaurant, otherwise the line is dropped
//   - the menu item must be available, otherwise the line is dropped
//   - the quantity must lie in [1, 10], otherwise the line is dropped
//   - a claimed price that differs from the stored one is reported, and the line is kept
//     at the stored price
//
// A claimed total, when the client sent one, is compared with the recomputed total only if
// nothing else was found; it catches drift no line shows, such as a changed delivery fee.
type CartRevalidator struct{}

func NewCartRevalidator() CartRevalidator {
	return CartRevalidator{}
}

// Revalidate checks c against restaurant and its menu. A nil restaurant means it no longer
// exists.
func (r CartRevalidator) Revalidate(
	c cart.ClientCart,
	restaurant *catalog.Restaurant,
	menu []*catalog.MenuItem,
) (*cart.ValidatedCart, error) {
	if restaurant == nil {
		return nil, &cart.ValidationError{
			Problems: []cart.Problem{{
				Code:    cart.ProblemRestaurantMissing,
				Message: "restaurant no longer exists",
				Fatal:   true,
			}},
			Subtotal: decimal.Zero,
		}
	}
	if !restaurant.AcceptsOrders() {
		return nil, &cart.ValidationError{
			Problems: []cart.Problem{{
				Code:    cart.ProblemRestaurantClosed,
				Message: "restaurant not accepting orders",
				Fatal:   true,
			}},
			Subtotal: decimal.Zero,
		}
	}
	if len(c.Lines) == 0 {
		return nil, &cart.ValidationError{
			Problems: []cart.Problem{{
				Code:    cart.ProblemCartEmpty,
				Message: "cart is empty",
				Fatal:   true,
			}},
			Subtotal: decimal.Zero,
		}
	}

	byID := make(map[kernel.UUID]*catalog.MenuItem, len(menu))
	for _, m := range menu {
		if m.RestaurantID().IsEqual(restaurant.ID()) {
			byID[m.ID()] = m
		}
	}

	var (
		problems []cart.Problem
		items    = make([]order.Item, 0, len(c.Lines))
	)
	for _, line := range c.Lines {
		id := line.MenuItemID
		m, ok := byID[id]
		switch {
		case !ok:
			problems = append(problems, cart.Problem{
				Code: cart.ProblemItemMissing, Message: "item no longer available", MenuItemID: &id,
			})
			continue
		case !m.Available():
			problems = append(problems, cart.Problem{
				Code: cart.ProblemItemUnavailable, Message: "item currently unavailable", MenuItemID: &id,
			})
			continue
		case line.Quantity < order.MinItemQuantity || line.Quantity > order.MaxItemQuantity:
			problems = append(problems, cart.Problem{
				Code: cart.ProblemInvalidQuantity, Message: "invalid quantity", MenuItemID: &id,
			})
			continue
		}

		item, err := order.NewItem(m.ID(), m.Name(), line.Quantity, m.Price())
		if err != nil {
			return nil, err
		}
		if claimed := kernel.RoundMoney(line.ClaimedPrice); !claimed.Equal(m.Price()) {
			problems = append(problems, cart.Problem{
				Code: cart.ProblemPriceChanged,
				Message: fmt.Sprintf("price changed from %s to %s",
					claimed.StringFixed(kernel.MoneyScale), m.Price().StringFixed(kernel.MoneyScale)),
				MenuItemID: &id,
			})
		}
		items = append(items, item)
	}

	subtotal := order.Subtotal(items)
	if subtotal.LessThan(restaurant.MinimumOrder()) {
		short := restaurant.MinimumOrder().Sub(subtotal)
		problems = append(problems, cart.Problem{
			Code:    cart.ProblemMinimumNotMet,
			Message: fmt.Sprintf("minimum order not met, short by %s", short.StringFixed(kernel.MoneyScale)),
		})
	}

	validated := cart.NewValidatedCart(restaurant.ID(), restaurant.MinimumOrder(), restaurant.DeliveryFee(), items)
	if len(problems) == 0 && !c.ClaimedTotal.IsZero() {
		if claimed := kernel.RoundMoney(c.ClaimedTotal); !claimed.Equal(validated.Total()) {
			problems = append(problems, cart.Problem{
				Code: cart.ProblemTotalChanged,
				Message: fmt.Sprintf("total changed from %s to %s",
					claimed.StringFixed(kernel.MoneyScale), validated.Total().StringFixed(kernel.MoneyScale)),
			})
		}
	}
	if len(problems) == 0 {
		return validated, nil
	}

	verr := &cart.ValidationError{Problems: problems, Subtotal: subtotal}
	if onlyDrift(problems) {
		corrected := validated.ClientCart()
		verr.Corrected = &corrected
	}
	return nil, verr
}

func onlyDrift(problems []cart.Problem) bool {
	for _, p := range problems {
		if p.Code != cart.ProblemPriceChanged && p.Code != cart.ProblemTotalChanged {
			return false
		}
	}
	return true
}
