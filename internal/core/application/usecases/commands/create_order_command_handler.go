package commands

import (
	"context"
	"time"

	"marketplace/internal/core/application/usecases/queries"
	"marketplace/internal/core/domain/model/order"
	"marketplace/internal/core/domain/services"
	"marketplace/internal/core/ports"
	"marketplace/internal/pkg/errs"
)

// CreateOrderCommandHandler turns a handoff into a pending order.
//
// The handoff is only read while checkout runs and is deleted once the order is committed, so
// any failure before that leaves it in place for a retry. The order takes the handoff's id:
// a second checkout of the same handoff collides with the first order and fails with
// errs.ErrConcurrentModification instead of placing a duplicate. The cart is revalidated
// against the catalog one last time; this pass is authoritative and any problem it finds aborts
// checkout without writing anything. Prices, totals and the delivery fee all come from the
// catalog.
//
// Example:
//
//	handler := NewCreateOrderCommandHandler(uowFactory, handoffs, revalidation, 45*time.Minute)
//	created, err := handler.Handle(ctx, cmd)
//	if errors.Is(err, cart.ErrCartInvalid) {
//	    // the cart changed since it was handed off
//	}
type CreateOrderCommandHandler struct {
	uowFactory   OrderUoWFactory
	handoffs     ports.CartHandoffStore
	revalidation CartRevalidation
	eta          time.Duration
	policy       services.OrderPolicy
}

// NewCreateOrderCommandHandler creates a handler for checkout. eta is added to the order date
// to produce the estimated delivery time.
func NewCreateOrderCommandHandler(
	uowFactory OrderUoWFactory,
	handoffs ports.CartHandoffStore,
	revalidation CartRevalidation,
	eta time.Duration,
) CreateOrderCommandHandler {
	return CreateOrderCommandHandler{
		uowFactory:   uowFactory,
		handoffs:     handoffs,
		revalidation: revalidation,
		eta:          eta,
		policy:       services.NewOrderPolicy(),
	}
}

func (h CreateOrderCommandHandler) Handle(ctx context.Context, cmd CreateOrderCommand) (*order.Order, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	handoff, err := h.handoffs.Get(ctx, cmd.HandoffID())
	if err != nil {
		return nil, err
	}
	if !handoff.CustomerID.IsEqual(cmd.Actor().ID()) {
		return nil, errs.NewPermissionError(cmd.Actor().String(), "check out handoff "+cmd.HandoffID().String())
	}

	query, err := queries.NewRevalidateCartQuery(handoff.Cart)
	if err != nil {
		return nil, err
	}
	validated, err := h.revalidation.Handle(ctx, query)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	created, err := order.NewOrder(order.Draft{
		ID:                    cmd.HandoffID(),
		CustomerID:            cmd.Actor().ID(),
		RestaurantID:          validated.RestaurantID(),
		Items:                 validated.Items(),
		DeliveryFee:           validated.DeliveryFee(),
		TotalAmount:           validated.Total(),
		PaymentMethod:         cmd.PaymentMethod(),
		Delivery:              cmd.Delivery(),
		OrderDate:             now,
		EstimatedDeliveryTime: now.Add(h.eta),
	})
	if err != nil {
		return nil, err
	}
	if err = h.policy.Authorize(cmd.Actor(), services.ActionCreate, created); err != nil {
		return nil, err
	}

	uow := h.uowFactory.Create()
	if err = uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	if err = uow.OrderRepository().Add(ctx, created); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	// The order is placed. A handoff left behind expires on its own and can no longer produce
	// a second order, so a failed delete is not reported.
	_ = h.handoffs.Delete(ctx, cmd.HandoffID())

	return created, nil
}
