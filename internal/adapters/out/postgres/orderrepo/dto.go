// Package orderrepo persists the order ledger: one row per order in "orders" and its priced
// line items in "order_items".
package orderrepo

import (
	"fmt"
	"time"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/order"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// OrderDTO is the row of the orders table. The delivery agent columns are either all set or
// all NULL.
type OrderDTO struct {
	ID                    uuid.UUID       `gorm:"type:uuid;primaryKey"`
	CustomerID            uuid.UUID       `gorm:"type:uuid;not null;index"`
	RestaurantID          uuid.UUID       `gorm:"type:uuid;not null;index"`
	TotalAmount           decimal.Decimal `gorm:"type:numeric(12,2);not null"`
	DeliveryFee           decimal.Decimal `gorm:"type:numeric(12,2);not null"`
	Status                string          `gorm:"type:varchar(32);not null"`
	PaymentMethod         string          `gorm:"type:varchar(16);not null"`
	PaymentStatus         string          `gorm:"type:varchar(16);not null"`
	DeliveryAgentID       *uuid.UUID      `gorm:"type:uuid;index"`
	DeliveryAgentName     *string         `gorm:"type:varchar(255)"`
	DeliveryAgentPhone    *string         `gorm:"type:varchar(32)"`
	OrderDate             time.Time       `gorm:"not null"`
	EstimatedDeliveryTime time.Time       `gorm:"not null"`
	PickupTime            *time.Time
	ActualDeliveryTime    *time.Time
	DeliveryAddress       string `gorm:"not null"`
	CustomerPhone         string `gorm:"type:varchar(32);not null"`
	CustomerName          string `gorm:"type:varchar(255);not null"`
	Notes                 string `gorm:"not null;default:''"`
	Version               int64  `gorm:"not null"`
	UpdatedAt             time.Time
	Items                 []OrderItemDTO `gorm:"foreignKey:OrderID;references:ID;constraint:OnDelete:CASCADE"`
}

func (OrderDTO) TableName() string {
	return "orders"
}

// OrderItemDTO is one line item. Position keeps the checkout order of the items.
type OrderItemDTO struct {
	OrderID    uuid.UUID       `gorm:"type:uuid;primaryKey"`
	Position   int             `gorm:"primaryKey"`
	MenuItemID uuid.UUID       `gorm:"type:uuid;not null"`
	Name       string          `gorm:"type:varchar(255);not null"`
	Quantity   int             `gorm:"not null"`
	Price      decimal.Decimal `gorm:"type:numeric(12,2);not null"`
}

func (OrderItemDTO) TableName() string {
	return "order_items"
}

func fromDomain(o *order.Order) OrderDTO {
	d := o.Delivery()
	dto := OrderDTO{
		ID:                    o.ID().Bytes(),
		CustomerID:            o.CustomerID().Bytes(),
		RestaurantID:          o.RestaurantID().Bytes(),
		TotalAmount:           o.TotalAmount(),
		DeliveryFee:           o.DeliveryFee(),
		Status:                o.Status().String(),
		PaymentMethod:         string(o.PaymentMethod()),
		PaymentStatus:         string(o.PaymentStatus()),
		OrderDate:             o.OrderDate(),
		EstimatedDeliveryTime: o.EstimatedDeliveryTime(),
		PickupTime:            o.PickupTime(),
		ActualDeliveryTime:    o.ActualDeliveryTime(),
		DeliveryAddress:       d.Address,
		CustomerPhone:         d.CustomerPhone,
		CustomerName:          d.CustomerName,
		Notes:                 d.Notes,
		Version:               o.Version(),
	}

	if a := o.Assignment(); a != nil {
		agentID := a.AgentID().Bytes()
		name, phone := a.AgentName(), a.AgentPhone()
		dto.DeliveryAgentID = &agentID
		dto.DeliveryAgentName = &name
		dto.DeliveryAgentPhone = &phone
	}

	for i, it := range o.Items() {
		dto.Items = append(dto.Items, OrderItemDTO{
			OrderID:    dto.ID,
			Position:   i,
			MenuItemID: it.MenuItemID().Bytes(),
			Name:       it.Name(),
			Quantity:   it.Quantity(),
			Price:      it.Price(),
		})
	}

	return dto
}

// mutableColumns are the columns an order write may change after creation. Line items, money
// and the customer's details are fixed at checkout.
func mutableColumns(dto OrderDTO, updatedAt time.Time) map[string]any {
	return map[string]any{
		"status":               dto.Status,
		"payment_status":       dto.PaymentStatus,
		"delivery_agent_id":    dto.DeliveryAgentID,
		"delivery_agent_name":  dto.DeliveryAgentName,
		"delivery_agent_phone": dto.DeliveryAgentPhone,
		"pickup_time":          dto.PickupTime,
		"actual_delivery_time": dto.ActualDeliveryTime,
		"version":              dto.Version,
		"updated_at":           updatedAt,
	}
}

func toDomain(dto OrderDTO) (*order.Order, error) {
	ids, err := parseIDs(dto.ID, dto.CustomerID, dto.RestaurantID)
	if err != nil {
		return nil, err
	}

	status, err := order.ParseStatus(dto.Status)
	if err != nil {
		return nil, err
	}
	method, err := order.ParsePaymentMethod(dto.PaymentMethod)
	if err != nil {
		return nil, err
	}
	payment, err := order.ParsePaymentStatus(dto.PaymentStatus)
	if err != nil {
		return nil, err
	}

	items := make([]order.Item, 0, len(dto.Items))
	for _, it := range dto.Items {
		menuItemID, idErr := kernel.UUIDFromBytes(it.MenuItemID[:])
		if idErr != nil {
			return nil, idErr
		}
		item, itemErr := order.NewItem(menuItemID, it.Name, it.Quantity, it.Price)
		if itemErr != nil {
			return nil, fmt.Errorf("order %s item %d: %w", dto.ID, it.Position, itemErr)
		}
		items = append(items, item)
	}

	var assignment *order.Assignment
	if dto.DeliveryAgentID != nil {
		agentID, idErr := kernel.UUIDFromBytes((*dto.DeliveryAgentID)[:])
		if idErr != nil {
			return nil, idErr
		}
		var assignedAt time.Time
		if dto.PickupTime != nil {
			assignedAt = *dto.PickupTime
		}
		a, aErr := order.NewAssignment(agentID, deref(dto.DeliveryAgentName), deref(dto.DeliveryAgentPhone), assignedAt)
		if aErr != nil {
			return nil, aErr
		}
		assignment = &a
	}

	return order.RestoreOrder(order.Snapshot{
		ID:                    ids[0],
		CustomerID:            ids[1],
		RestaurantID:          ids[2],
		Items:                 items,
		TotalAmount:           dto.TotalAmount,
		DeliveryFee:           dto.DeliveryFee,
		Status:                status,
		PaymentMethod:         method,
		PaymentStatus:         payment,
		Assignment:            assignment,
		OrderDate:             dto.OrderDate,
		EstimatedDeliveryTime: dto.EstimatedDeliveryTime,
		PickupTime:            dto.PickupTime,
		ActualDeliveryTime:    dto.ActualDeliveryTime,
		Delivery: order.Delivery{
			Address:       dto.DeliveryAddress,
			CustomerPhone: dto.CustomerPhone,
			CustomerName:  dto.CustomerName,
			Notes:         dto.Notes,
		},
		Version: dto.Version,
	})
}

func toDomainList(dtos []OrderDTO) ([]*order.Order, error) {
	orders := make([]*order.Order, 0, len(dtos))
	for _, dto := range dtos {
		o, err := toDomain(dto)
		if err != nil {
			return nil, err
		}
		orders = append(orders, o)
	}
	return orders, nil
}

func parseIDs(raw ...uuid.UUID) ([]kernel.UUID, error) {
	ids := make([]kernel.UUID, 0, len(raw))
	for _, r := range raw {
		id, err := kernel.UUIDFromBytes(r[:])
		if err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, nil
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
