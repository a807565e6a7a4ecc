// Package cart models what a client submits at checkout and what the revalidator hands back.
// A ClientCart is never trusted: prices and availability are re-read from the catalog.
package cart

import (
	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/order"

	"github.com/shopspring/decimal"
)

// Line is one client-side cart entry. ClaimedPrice is what the client displayed.
type Line struct {
	MenuItemID   kernel.UUID     `json:"menuItemId"`
	Quantity     int             `json:"quantity"`
	ClaimedPrice decimal.Decimal `json:"claimedPrice"`
}

// ClientCart is the cart as submitted, and also the payload of a checkout handoff. A zero
// ClaimedTotal means the client did not send one.
type ClientCart struct {
	RestaurantID kernel.UUID     `json:"restaurantId"`
	Lines        []Line          `json:"lines"`
	ClaimedTotal decimal.Decimal `json:"claimedTotal"`
}

// ValidatedCart is a cart whose every line was priced from the catalog and whose restaurant
// accepts orders and minimum is met. Only the revalidator builds one.
type ValidatedCart struct {
	restaurantID kernel.UUID
	minimumOrder decimal.Decimal
	items        []order.Item
	subtotal     decimal.Decimal
	deliveryFee  decimal.Decimal
}

func NewValidatedCart(restaurantID kernel.UUID, minimumOrder, deliveryFee decimal.Decimal, items []order.Item) *ValidatedCart {
	cp := make([]order.Item, len(items))
	copy(cp, items)
	return &ValidatedCart{
		restaurantID: restaurantID,
		minimumOrder: minimumOrder,
		items:        cp,
		subtotal:     order.Subtotal(cp),
		deliveryFee:  kernel.RoundMoney(deliveryFee),
	}
}

func (c *ValidatedCart) RestaurantID() kernel.UUID { return c.restaurantID }
func (c *ValidatedCart) MinimumOrder() decimal.Decimal { return c.minimumOrder }
func (c *ValidatedCart) Subtotal() decimal.Decimal { return c.subtotal }
func (c *ValidatedCart) DeliveryFee() decimal.Decimal { return c.deliveryFee }

func (c *ValidatedCart) Items() []order.Item {
	out := make([]order.Item, len(c.items))
	copy(out, c.items)
	return out
}

// Total is subtotal plus delivery fee.
func (c *ValidatedCart) Total() decimal.Decimal {
	return kernel.RoundMoney(c.subtotal.Add(c.deliveryFee))
}

// ClientCart turns the validated cart back into a submission carrying the current prices. This
// is what checkout hands off and later re-validates.
func (c *ValidatedCart) ClientCart() ClientCart {
	lines := make([]Line, 0, len(c.items))
	for _, it := range c.items {
		lines = append(lines, Line{
			MenuItemID:   it.MenuItemID(),
			Quantity:     it.Quantity(),
			ClaimedPrice: it.Price(),
		})
	}
	return ClientCart{
		RestaurantID: c.restaurantID,
		Lines:        lines,
		ClaimedTotal: c.Total(),
	}
}

// Handoff is a revalidated cart waiting for its customer to check out.
type Handoff struct {
	CustomerID kernel.UUID `json:"customerId"`
	Cart       ClientCart  `json:"cart"`
}
