// Package ports defines the contracts between the core and its collaborators: the catalog,
// order and agent stores, the cart handoff, the change source and the event broker.
// These interfaces establish the boundary between the domain layer and infrastructure,
// enabling dependency inversion and testability.
package ports

import (
	"context"

	"marketplace/internal/core/domain/model/catalog"
	"marketplace/internal/core/domain/model/kernel"
)

// CatalogReader is read-only access to the authoritative restaurant and menu records.
type CatalogReader interface {
	// GetRestaurant returns the current restaurant record.
	// Fails with errs.ErrObjectNotFound if the restaurant does not exist.
	GetRestaurant(ctx context.Context, id kernel.UUID) (*catalog.Restaurant, error)

	// GetMenuItems returns every menu item of the restaurant, available or not.
	GetMenuItems(ctx context.Context, restaurantID kernel.UUID) ([]*catalog.MenuItem, error)
}
