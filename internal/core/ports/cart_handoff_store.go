package ports

import (
	"context"
	"time"

	"marketplace/internal/core/domain/model/cart"
	"marketplace/internal/core/domain/model/kernel"
)

// CartHandoffStore keeps the short-lived message passed from the cart screen to checkout.
type CartHandoffStore interface {
	// Put stores h for at most ttl and returns its key.
	Put(ctx context.Context, h cart.Handoff, ttl time.Duration) (kernel.UUID, error)

	// Get returns the handoff without consuming it.
	// Fails with errs.ErrObjectNotFound if it expired or was already deleted.
	Get(ctx context.Context, id kernel.UUID) (cart.Handoff, error)

	// Delete removes the handoff once its order is placed. A missing handoff is not an error.
	Delete(ctx context.Context, id kernel.UUID) error
}
