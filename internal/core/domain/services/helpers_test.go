package services_test

import (
	"testing"
	"time"

	"marketplace/internal/core/domain/model/actor"
	"marketplace/internal/core/domain/model/agent"
	"marketplace/internal/core/domain/model/catalog"
	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/order"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

var now = time.Date(2026, 3, 14, 12, 0, 0, 0, time.UTC)

func money(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func newRestaurant(t *testing.T, minimum, fee string) *catalog.Restaurant {
	t.Helper()
	r, err := catalog.RestoreRestaurant(kernel.NewUUID(), kernel.NewUUID(), "Tandoor", true, true, money(minimum), money(fee))
	require.NoError(t, err)
	return r
}

func newMenuItem(t *testing.T, r *catalog.Restaurant, name, price string, available bool) *catalog.MenuItem {
	t.Helper()
	m, err := catalog.RestoreMenuItem(kernel.NewUUID(), r.ID(), name, money(price), available)
	require.NoError(t, err)
	return m
}

func newOrderIn(t *testing.T, customerID, restaurantID kernel.UUID, status order.Status) *order.Order {
	t.Helper()
	item, err := order.NewItem(kernel.NewUUID(), "Paneer tikka", 2, money("120"))
	require.NoError(t, err)
	o, err := order.NewOrder(order.Draft{
		ID:                    kernel.NewUUID(),
		CustomerID:            customerID,
		RestaurantID:          restaurantID,
		Items:                 []order.Item{item},
		DeliveryFee:           money("30"),
		TotalAmount:           money("270"),
		PaymentMethod:         order.PaymentCash,
		Delivery:              order.Delivery{Address: "12 Park Street", CustomerPhone: "+91 98000 00000", CustomerName: "Asha"},
		OrderDate:             now,
		EstimatedDeliveryTime: now.Add(45 * time.Minute),
	})
	require.NoError(t, err)

	steps := map[order.Status][]order.Event{
		order.Pending:   nil,
		order.Confirmed: {order.EventConfirm},
		order.Preparing: {order.EventConfirm, order.EventStartPreparing},
		order.Ready:     {order.EventConfirm, order.EventStartPreparing, order.EventMarkReady},
		order.Cancelled: {order.EventCancel},
	}
	events, ok := steps[status]
	require.True(t, ok, "unsupported status %s", status)
	for _, e := range events {
		require.NoError(t, o.Advance(e))
	}
	return o
}

func newAgent(t *testing.T, name string, available bool, rating string, deliveries int) *agent.DeliveryAgent {
	t.Helper()
	a, err := agent.RestoreDeliveryAgent(kernel.NewUUID(), name, "+91 90000 00000", available, money(rating), deliveries)
	require.NoError(t, err)
	return a
}

func newActor(t *testing.T, id kernel.UUID, role actor.Role, restaurantID *kernel.UUID) actor.Actor {
	t.Helper()
	a, err := actor.NewActor(id, role, restaurantID)
	require.NoError(t, err)
	return a
}
