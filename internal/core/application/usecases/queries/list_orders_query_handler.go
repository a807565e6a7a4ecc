package queries

import (
	"context"
	"errors"
	"log/slog"
	"sort"

	"marketplace/internal/core/domain/model/order"
	"marketplace/internal/core/ports"
)

// ListOrdersQueryHandler lists the orders visible to an actor, newest first.
//
// The sorted read is preferred. When it fails the handler falls back to an unsorted read and
// sorts in process, so a missing index or a slow plan never hides orders from the viewer.
type ListOrdersQueryHandler struct {
	orders ports.OrderReader
	logger *slog.Logger
}

func NewListOrdersQueryHandler(orders ports.OrderReader, logger *slog.Logger) ListOrdersQueryHandler {
	return ListOrdersQueryHandler{
		orders: orders,
		logger: logger.With("component", "ListOrdersQueryHandler"),
	}
}

func (h ListOrdersQueryHandler) Handle(ctx context.Context, query ListOrdersQuery) ([]OrderView, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	orders, err := h.find(ctx, ports.VisibleTo(query.Actor()))
	if err != nil {
		return nil, err
	}

	views := make([]OrderView, 0, len(orders))
	for _, o := range orders {
		views = append(views, NewOrderView(o))
	}
	return views, nil
}

func (h ListOrdersQueryHandler) find(ctx context.Context, filter ports.OrderFilter) ([]*order.Order, error) {
	orders, sortedErr := h.orders.Find(ctx, filter, true)
	if sortedErr == nil {
		return orders, nil
	}
	if ctx.Err() != nil {
		return nil, sortedErr
	}

	h.logger.Warn("sorted order read failed, falling back to unsorted read", "error", sortedErr)
	orders, err := h.orders.Find(ctx, filter, false)
	if err != nil {
		return nil, errors.Join(sortedErr, err)
	}
	SortNewestFirst(orders)
	return orders, nil
}

// SortNewestFirst orders by order date descending, then by id for a stable result.
func SortNewestFirst(orders []*order.Order) {
	sort.SliceStable(orders, func(i, j int) bool {
		a, b := orders[i], orders[j]
		if !a.OrderDate().Equal(b.OrderDate()) {
			return a.OrderDate().After(b.OrderDate())
		}
		return a.ID().String() < b.ID().String()
	})
}
