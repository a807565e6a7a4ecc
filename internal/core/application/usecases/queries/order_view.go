// Package queries contains read operations that return data without modifying system state.
// Every handler checks the acting role against the order policy before returning anything.
package queries

import (
	"time"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/order"

	"github.com/shopspring/decimal"
)

// OrderView is the read model of an order shared by the HTTP API and the change feed.
type OrderView struct {
	ID                    kernel.UUID
	CustomerID            kernel.UUID
	RestaurantID          kernel.UUID
	Items                 []ItemView
	Subtotal              decimal.Decimal
	DeliveryFee           decimal.Decimal
	TotalAmount           decimal.Decimal
	Status                string
	PaymentMethod         string
	PaymentStatus         string
	Agent                 *AgentView
	OrderDate             time.Time
	EstimatedDeliveryTime time.Time
	PickupTime            *time.Time
	ActualDeliveryTime    *time.Time
	DeliveryAddress       string
	CustomerPhone         string
	CustomerName          string
	Notes                 string
	Version               int64
}

type ItemView struct {
	MenuItemID kernel.UUID
	Name       string
	Quantity   int
	Price      decimal.Decimal
	Total      decimal.Decimal
}

type AgentView struct {
	ID    kernel.UUID
	Name  string
	Phone string
}

// NewOrderView flattens an order aggregate.
func NewOrderView(o *order.Order) OrderView {
	items := make([]ItemView, 0, len(o.Items()))
	for _, it := range o.Items() {
		items = append(items, ItemView{
			MenuItemID: it.MenuItemID(),
			Name:       it.Name(),
			Quantity:   it.Quantity(),
			Price:      it.Price(),
			Total:      it.Total(),
		})
	}

	v := OrderView{
		ID:                    o.ID(),
		CustomerID:            o.CustomerID(),
		RestaurantID:          o.RestaurantID(),
		Items:                 items,
		Subtotal:              o.Subtotal(),
		DeliveryFee:           o.DeliveryFee(),
		TotalAmount:           o.TotalAmount(),
		Status:                o.Status().String(),
		PaymentMethod:         string(o.PaymentMethod()),
		PaymentStatus:         string(o.PaymentStatus()),
		OrderDate:             o.OrderDate(),
		EstimatedDeliveryTime: o.EstimatedDeliveryTime(),
		PickupTime:            o.PickupTime(),
		ActualDeliveryTime:    o.ActualDeliveryTime(),
		DeliveryAddress:       o.Delivery().Address,
		CustomerPhone:         o.Delivery().CustomerPhone,
		CustomerName:          o.Delivery().CustomerName,
		Notes:                 o.Delivery().Notes,
		Version:               o.Version(),
	}
	if a := o.Assignment(); a != nil {
		v.Agent = &AgentView{ID: a.AgentID(), Name: a.AgentName(), Phone: a.AgentPhone()}
	}
	return v
}
