package order

import (
	"strings"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/pkg/errs"

	"github.com/shopspring/decimal"
)

const (
	MinItemQuantity = 1
	MaxItemQuantity = 10
)

// Item is a line item priced from the catalog at checkout. It never changes afterwards.
type Item struct {
	menuItemID kernel.UUID
	name       string
	quantity   int
	price      decimal.Decimal
}

// NewItem validates a line item. price is the authoritative unit price.
func NewItem(menuItemID kernel.UUID, name string, quantity int, price decimal.Decimal) (Item, error) {
	if err := menuItemID.Validate(); err != nil {
		return Item{}, err
	}
	if strings.TrimSpace(name) == "" {
		return Item{}, errs.NewValueIsRequiredError("name")
	}
	if quantity < MinItemQuantity || quantity > MaxItemQuantity {
		return Item{}, errs.NewValueIsOutOfRangeError("quantity", quantity, MinItemQuantity, MaxItemQuantity)
	}
	if price.IsNegative() {
		return Item{}, errs.NewValueIsOutOfRangeError("price", price.String(), "0.00", "∞")
	}
	return Item{
		menuItemID: menuItemID,
		name:       name,
		quantity:   quantity,
		price:      kernel.RoundMoney(price),
	}, nil
}

func (i Item) MenuItemID() kernel.UUID { return i.menuItemID }
func (i Item) Name() string { return i.name }
func (i Item) Quantity() int { return i.quantity }
func (i Item) Price() decimal.Decimal { return i.price }

// Total is price × quantity.
func (i Item) Total() decimal.Decimal {
	return kernel.LineTotal(i.price, i.quantity)
}

// Subtotal sums the line totals of items.
func Subtotal(items []Item) decimal.Decimal {
	sum := decimal.Zero
	for _, it := range items {
		sum = sum.Add(it.Total())
	}
	return kernel.RoundMoney(sum)
}
