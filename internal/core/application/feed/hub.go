// Package feed fans order changes out to live subscribers. Each subscriber sees the orders its
// role may watch, in per-order version order, through a coalescing buffer that never blocks the
// hub.
package feed

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"marketplace/internal/core/application/usecases/queries"
	"marketplace/internal/core/domain/model/actor"
	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/services"
	"marketplace/internal/core/ports"

	"github.com/cenkalti/backoff/v4"
)

// DefaultBufferSize is the number of distinct orders a subscription may hold undelivered.
const DefaultBufferSize = 256

var errSourceClosed = errors.New("order change source stopped")

// Update is one order change as seen by one subscriber.
type Update struct {
	Order queries.OrderView
	// Visible is false when the order stopped matching the subscriber's filter. Such an
	// update is sent once so the viewer can drop the order.
	Visible bool
}

// Snapshotter lists the orders an actor watches, newest first.
type Snapshotter interface {
	Handle(ctx context.Context, query queries.ListOrdersQuery) ([]queries.OrderView, error)
}

// Hub owns the subscriptions and the source loop that feeds them.
//
// Example:
//
//	hub := feed.NewHub(orders, listOrders, listener, logger, feed.DefaultBufferSize)
//	go hub.Run(ctx)
//
//	sub, err := hub.Subscribe(r.Context(), viewer)
//	if err != nil {
//	    return err
//	}
//	defer sub.Close()
//	for u := range sub.Updates() {
//	    render(u)
//	}
type Hub struct {
	orders     ports.OrderReader
	snapshots  Snapshotter
	source     ports.OrderChangeSource
	policy     services.OrderPolicy
	logger     *slog.Logger
	bufferSize int

	mu   sync.RWMutex
	subs map[*Subscription]struct{}
}

func NewHub(
	orders ports.OrderReader,
	snapshots Snapshotter,
	source ports.OrderChangeSource,
	logger *slog.Logger,
	bufferSize int,
) *Hub {
	if bufferSize <= 0 {
		bufferSize = DefaultBufferSize
	}
	return &Hub{
		orders:     orders,
		snapshots:  snapshots,
		source:     source,
		policy:     services.NewOrderPolicy(),
		logger:     logger.With("component", "feed.Hub"),
		bufferSize: bufferSize,
		subs:       make(map[*Subscription]struct{}),
	}
}

// Subscribe starts a subscription primed with a snapshot of everything a currently watches.
// The subscription ends on Close or when ctx is done, whichever comes first.
func (h *Hub) Subscribe(ctx context.Context, a actor.Actor) (*Subscription, error) {
	query, err := queries.NewListOrdersQuery(a)
	if err != nil {
		return nil, err
	}

	s := newSubscription(h, a, h.bufferSize)

	// Registered before the snapshot is read, so a change committed meanwhile is not lost.
	h.mu.Lock()
	h.subs[s] = struct{}{}
	h.mu.Unlock()

	views, err := h.snapshots.Handle(ctx, query)
	if err != nil {
		h.remove(s)
		return nil, err
	}
	for _, v := range views {
		s.offerSnapshot(v)
	}

	go s.pump(ctx)

	h.logger.Debug("subscribed", "actor", a.String(), "snapshot", len(views))
	return s, nil
}

// Subscribers returns how many subscriptions are open.
func (h *Hub) Subscribers() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.subs)
}

// Run feeds source changes to subscribers until ctx ends. A lost source is restarted with
// exponential backoff.
func (h *Hub) Run(ctx context.Context) error {
	b := backoff.NewExponentialBackOff()
	b.MaxElapsedTime = 0
	b.MaxInterval = time.Minute

	err := backoff.RetryNotify(func() error {
		received, err := h.listen(ctx)
		if ctx.Err() != nil {
			return backoff.Permanent(ctx.Err())
		}
		if received {
			b.Reset()
		}
		if err == nil {
			return errSourceClosed
		}
		return err
	}, backoff.WithContext(b, ctx), func(err error, wait time.Duration) {
		h.logger.Warn("order change source lost, restarting", "error", err, "retry_in", wait)
	})
	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}

func (h *Hub) listen(ctx context.Context) (bool, error) {
	sessionCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	changes := make(chan ports.OrderChange, h.bufferSize)
	done := make(chan error, 1)
	go func() {
		done <- h.source.Listen(sessionCtx, changes)
	}()

	received := false
	for {
		select {
		case c := <-changes:
			received = true
			if c.Resync {
				h.resyncAll(ctx)
				continue
			}
			h.publish(ctx, c.OrderID)
		case err := <-done:
			return received, err
		}
	}
}

func (h *Hub) publish(ctx context.Context, orderID kernel.UUID) {
	subs := h.subscriptions()
	if len(subs) == 0 {
		return
	}

	o, err := h.orders.Get(ctx, orderID)
	if err != nil {
		h.logger.Warn("changed order could not be read", "order_id", orderID.String(), "error", err)
		return
	}

	view := queries.NewOrderView(o)
	for _, s := range subs {
		s.offerChange(view, h.policy.Sees(s.actor, o))
	}
}

func (h *Hub) resyncAll(ctx context.Context) {
	for _, s := range h.subscriptions() {
		h.resync(ctx, s)
	}
}

// resync re-reads the snapshot of s and tells it about orders it still shows that left its
// filter while changes were not flowing.
func (h *Hub) resync(ctx context.Context, s *Subscription) {
	query, err := queries.NewListOrdersQuery(s.actor)
	if err != nil {
		return
	}
	views, err := h.snapshots.Handle(ctx, query)
	if err != nil {
		h.logger.Warn("resync snapshot failed", "actor", s.actor.String(), "error", err)
		return
	}

	listed := make(map[kernel.UUID]struct{}, len(views))
	for _, v := range views {
		listed[v.ID] = struct{}{}
		s.offerSnapshot(v)
	}

	for _, id := range s.shownExcept(listed) {
		o, err := h.orders.Get(ctx, id)
		if err != nil {
			h.logger.Warn("shown order could not be read", "order_id", id.String(), "error", err)
			continue
		}
		s.offerChange(queries.NewOrderView(o), h.policy.Sees(s.actor, o))
	}
}

func (h *Hub) subscriptions() []*Subscription {
	h.mu.RLock()
	defer h.mu.RUnlock()
	out := make([]*Subscription, 0, len(h.subs))
	for s := range h.subs {
		out = append(out, s)
	}
	return out
}

func (h *Hub) remove(s *Subscription) {
	h.mu.Lock()
	delete(h.subs, s)
	h.mu.Unlock()
}
