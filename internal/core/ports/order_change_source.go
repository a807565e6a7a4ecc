package ports

import (
	"context"

	"marketplace/internal/core/domain/model/kernel"
)

// OrderChange announces that an order was written. Version is the version after the write.
//
// A change with Resync set carries no order: it marks that the source has just (re)connected,
// and anything committed before it may have been missed.
type OrderChange struct {
	OrderID kernel.UUID
	Version int64
	Resync  bool
}

// OrderChangeSource streams order changes as the store commits them.
type OrderChangeSource interface {
	// Listen sends a Resync change once it is listening and again after every reconnect, then
	// order changes until ctx ends or the connection is lost for good, and returns the reason.
	Listen(ctx context.Context, changes chan<- OrderChange) error
}
