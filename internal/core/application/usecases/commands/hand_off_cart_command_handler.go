package commands

import (
	"context"
	"time"

	"marketplace/internal/core/application/usecases/queries"
	"marketplace/internal/core/domain/model/cart"
	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/ports"
)

// HandOffCartResult is the key checkout must present and the cart as priced now.
type HandOffCartResult struct {
	HandoffID kernel.UUID
	Cart      *cart.ValidatedCart
}

// HandOffCartCommandHandler turns a cart that passes revalidation into a handoff that checkout places at most one order from.
// A cart with problems is not stored; the caller gets the *cart.ValidationError instead.
//
// Example:
//
//	handler := NewHandOffCartCommandHandler(revalidation, handoffs, 15*time.Minute)
//	cmd, _ := NewHandOffCartCommand(customer, clientCart)
//	result, err := handler.Handle(ctx, cmd)
//	var verr *cart.ValidationError
//	if errors.As(err, &verr) {
//	    // show the problems, and verr.Corrected for a one-click re-confirmation
//	}
type HandOffCartCommandHandler struct {
	revalidation CartRevalidation
	handoffs     ports.CartHandoffStore
	ttl          time.Duration
}

func NewHandOffCartCommandHandler(
	revalidation CartRevalidation,
	handoffs ports.CartHandoffStore,
	ttl time.Duration,
) HandOffCartCommandHandler {
	return HandOffCartCommandHandler{revalidation: revalidation, handoffs: handoffs, ttl: ttl}
}

func (h HandOffCartCommandHandler) Handle(ctx context.Context, cmd HandOffCartCommand) (HandOffCartResult, error) {
	if err := cmd.Validate(); err != nil {
		return HandOffCartResult{}, err
	}

	query, err := queries.NewRevalidateCartQuery(cmd.Cart())
	if err != nil {
		return HandOffCartResult{}, err
	}
	validated, err := h.revalidation.Handle(ctx, query)
	if err != nil {
		return HandOffCartResult{}, err
	}

	id, err := h.handoffs.Put(ctx, cart.Handoff{
		CustomerID: cmd.Actor().ID(),
		Cart:       validated.ClientCart(),
	}, h.ttl)
	if err != nil {
		return HandOffCartResult{}, err
	}

	return HandOffCartResult{HandoffID: id, Cart: validated}, nil
}
