package queries

import (
	"context"
	"errors"

	"marketplace/internal/core/domain/model/cart"
	"marketplace/internal/core/domain/model/catalog"
	"marketplace/internal/core/domain/services"
	"marketplace/internal/core/ports"
	"marketplace/internal/pkg/errs"
)

// RevalidateCartQueryHandler prices a client cart against the live catalog.
//
// The result is a *cart.ValidatedCart or an error. Cart problems come back as a
// *cart.ValidationError (errors.Is(err, cart.ErrCartInvalid)); anything else is a store
// failure.
//
// Example:
//
//	handler := NewRevalidateCartQueryHandler(catalogReader)
//	query, _ := NewRevalidateCartQuery(clientCart)
//	validated, err := handler.Handle(ctx, query)
//	var verr *cart.ValidationError
//	if errors.As(err, &verr) {
//	    // show verr.Problems
//	}
type RevalidateCartQueryHandler struct {
	catalog     ports.CatalogReader
	revalidator services.CartRevalidator
}

func NewRevalidateCartQueryHandler(catalog ports.CatalogReader) RevalidateCartQueryHandler {
	return RevalidateCartQueryHandler{
		catalog:     catalog,
		revalidator: services.NewCartRevalidator(),
	}
}

func (h RevalidateCartQueryHandler) Handle(ctx context.Context, query RevalidateCartQuery) (*cart.ValidatedCart, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}
	c := query.Cart()
	if c.RestaurantID.Validate() != nil {
		return h.revalidator.Revalidate(c, nil, nil)
	}

	restaurant, err := h.catalog.GetRestaurant(ctx, c.RestaurantID)
	if errors.Is(err, errs.ErrObjectNotFound) {
		return h.revalidator.Revalidate(c, nil, nil)
	}
	if err != nil {
		return nil, err
	}

	var menu []*catalog.MenuItem
	if restaurant.AcceptsOrders() {
		if menu, err = h.catalog.GetMenuItems(ctx, restaurant.ID()); err != nil {
			return nil, err
		}
	}

	return h.revalidator.Revalidate(c, restaurant, menu)
}
