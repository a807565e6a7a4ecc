// Package api holds the HTTP contract of the marketplace: the embedded OpenAPI document, the
// request and response bodies it describes and the route table that binds path parameters
// before calling a ServerInterface.
package api

import (
	"time"

	openapi_types "github.com/oapi-codegen/runtime/types"
	"github.com/shopspring/decimal"
)

// Error defines model for Error.
type Error struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// CartLine defines model for CartLine.
type CartLine struct {
	MenuItemId   openapi_types.UUID `json:"menuItemId"`
	Quantity     int                `json:"quantity"`
	ClaimedPrice decimal.Decimal    `json:"claimedPrice"`
}

// ClientCart defines model for ClientCart.
type ClientCart struct {
	RestaurantId openapi_types.UUID `json:"restaurantId"`
	Lines        []CartLine         `json:"lines"`
	ClaimedTotal decimal.Decimal    `json:"claimedTotal"`
}

// Item defines model for Item.
type Item struct {
	MenuItemId openapi_types.UUID `json:"menuItemId"`
	Name       string             `json:"name"`
	Quantity   int                `json:"quantity"`
	Price      decimal.Decimal    `json:"price"`
	Total      decimal.Decimal    `json:"total"`
}

// ValidatedCart defines model for ValidatedCart.
type ValidatedCart struct {
	RestaurantId openapi_types.UUID `json:"restaurantId"`
	Items        []Item             `json:"items"`
	Subtotal     decimal.Decimal    `json:"subtotal"`
	DeliveryFee  decimal.Decimal    `json:"deliveryFee"`
	Total        decimal.Decimal    `json:"total"`
}

// Handoff defines model for Handoff.
type Handoff struct {
	HandoffId openapi_types.UUID `json:"handoffId"`
	Cart      ValidatedCart      `json:"cart"`
}

// CartProblem defines model for CartProblem.
type CartProblem struct {
	Code       string              `json:"code"`
	Message    string              `json:"message"`
	MenuItemId *openapi_types.UUID `json:"menuItemId,omitempty"`
	Fatal      bool                `json:"fatal"`
}

// CartProblems defines model for CartProblems.
type CartProblems struct {
	Code      int             `json:"code"`
	Message   string          `json:"message"`
	Problems  []CartProblem   `json:"problems"`
	Subtotal  decimal.Decimal `json:"subtotal"`
	Corrected *ClientCart     `json:"corrected,omitempty"`
}

// Checkout defines model for Checkout.
type Checkout struct {
	HandoffId       openapi_types.UUID `json:"handoffId"`
	PaymentMethod   string             `json:"paymentMethod"`
	DeliveryAddress string             `json:"deliveryAddress"`
	CustomerPhone   string             `json:"customerPhone"`
	CustomerName    string             `json:"customerName"`
	Notes           string             `json:"notes,omitempty"`
}

// Transition defines model for Transition.
type Transition struct {
	Event string `json:"event"`
}

// Claim defines model for Claim. Without AgentId the acting agent claims for itself.
type Claim struct {
	AgentId *openapi_types.UUID `json:"agentId,omitempty"`
}

// Availability defines model for Availability.
type Availability struct {
	Available bool `json:"available"`
}

// DeliveryAgent defines model for DeliveryAgent.
type DeliveryAgent struct {
	Id    openapi_types.UUID `json:"id"`
	Name  string             `json:"name"`
	Phone string             `json:"phone"`
}

// Agent defines model for Agent.
type Agent struct {
	Id              openapi_types.UUID `json:"id"`
	Name            string             `json:"name"`
	Phone           string             `json:"phone"`
	Rating          decimal.Decimal    `json:"rating"`
	TotalDeliveries int                `json:"totalDeliveries"`
}

// ActiveDelivery defines model for ActiveDelivery.
type ActiveDelivery struct {
	OrderId               openapi_types.UUID `json:"orderId"`
	RestaurantId          openapi_types.UUID `json:"restaurantId"`
	AgentId               openapi_types.UUID `json:"agentId"`
	AgentName             string             `json:"agentName"`
	PickupTime            time.Time          `json:"pickupTime"`
	EstimatedDeliveryTime time.Time          `json:"estimatedDeliveryTime"`
}

// Order defines model for Order.
type Order struct {
	Id                    openapi_types.UUID `json:"id"`
	CustomerId            openapi_types.UUID `json:"customerId"`
	RestaurantId          openapi_types.UUID `json:"restaurantId"`
	Items                 []Item             `json:"items"`
	Subtotal              decimal.Decimal    `json:"subtotal"`
	DeliveryFee           decimal.Decimal    `json:"deliveryFee"`
	TotalAmount           decimal.Decimal    `json:"totalAmount"`
	Status                string             `json:"status"`
	PaymentMethod         string             `json:"paymentMethod"`
	PaymentStatus         string             `json:"paymentStatus"`
	DeliveryAgent         *DeliveryAgent     `json:"deliveryAgent,omitempty"`
	OrderDate             time.Time          `json:"orderDate"`
	EstimatedDeliveryTime time.Time          `json:"estimatedDeliveryTime"`
	PickupTime            *time.Time         `json:"pickupTime,omitempty"`
	ActualDeliveryTime    *time.Time         `json:"actualDeliveryTime,omitempty"`
	DeliveryAddress       string             `json:"deliveryAddress"`
	CustomerPhone         string             `json:"customerPhone"`
	CustomerName          string             `json:"customerName"`
	Notes                 string             `json:"notes,omitempty"`
	Version               int64              `json:"version"`
}

// OrderUpdate defines model for OrderUpdate.
type OrderUpdate struct {
	Visible bool  `json:"visible"`
	Order   Order `json:"order"`
}
