package queries

import (
	"context"

	"marketplace/internal/core/domain/services"
	"marketplace/internal/core/ports"
)

// GetOrderQueryHandler returns an order to the customer who placed it, the restaurant that
// cooks it, the agent carrying it and admins. Everyone else gets a permission error.
type GetOrderQueryHandler struct {
	orders ports.OrderReader
	policy services.OrderPolicy
}

func NewGetOrderQueryHandler(orders ports.OrderReader) GetOrderQueryHandler {
	return GetOrderQueryHandler{orders: orders, policy: services.NewOrderPolicy()}
}

func (h GetOrderQueryHandler) Handle(ctx context.Context, query GetOrderQuery) (OrderView, error) {
	if err := query.Validate(); err != nil {
		return OrderView{}, err
	}

	o, err := h.orders.Get(ctx, query.OrderID())
	if err != nil {
		return OrderView{}, err
	}
	if err = h.policy.Authorize(query.Actor(), services.ActionView, o); err != nil {
		return OrderView{}, err
	}

	return NewOrderView(o), nil
}
