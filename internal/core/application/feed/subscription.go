package feed

import (
	"context"
	"sync"

	"marketplace/internal/core/application/usecases/queries"
	"marketplace/internal/core/domain/model/actor"
	"marketplace/internal/core/domain/model/kernel"
)

// Subscription is one viewer's stream of order updates.
//
// Updates wait in a buffer keyed by order id: a newer version replaces an undelivered older
// one, and a version not newer than what was already accepted for that order is dropped. When
// more distinct orders are waiting than the buffer holds, the buffer is discarded and the
// subscription resynchronizes from a fresh snapshot.
type Subscription struct {
	hub     *Hub
	actor   actor.Actor
	updates chan Update
	wake    chan struct{}
	done    chan struct{}
	once    sync.Once

	mu      sync.Mutex
	limit   int
	pending map[kernel.UUID]Update
	queue   []kernel.UUID
	stale   bool

	// accepted/shown describe the stream including pending updates; delivered/deliveredShown
	// only what the consumer has received.
	accepted       map[kernel.UUID]int64
	shown          map[kernel.UUID]struct{}
	delivered      map[kernel.UUID]int64
	deliveredShown map[kernel.UUID]struct{}
}

func newSubscription(h *Hub, a actor.Actor, limit int) *Subscription {
	return &Subscription{
		hub:            h,
		actor:          a,
		updates:        make(chan Update),
		wake:           make(chan struct{}, 1),
		done:           make(chan struct{}),
		limit:          limit,
		pending:        make(map[kernel.UUID]Update),
		accepted:       make(map[kernel.UUID]int64),
		shown:          make(map[kernel.UUID]struct{}),
		delivered:      make(map[kernel.UUID]int64),
		deliveredShown: make(map[kernel.UUID]struct{}),
	}
}

// Updates is closed when the subscription ends.
func (s *Subscription) Updates() <-chan Update {
	return s.updates
}

func (s *Subscription) Actor() actor.Actor {
	return s.actor
}

// Close ends the subscription. It is safe to call more than once.
func (s *Subscription) Close() {
	s.once.Do(func() {
		close(s.done)
		s.hub.remove(s)
	})
}

// offerChange offers a changed order: as visible when the viewer may see it, as a removal when
// it was shown before and may not be seen any more, and not at all otherwise.
func (s *Subscription) offerChange(view queries.OrderView, visible bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, wasShown := s.shown[view.ID]; !visible && !wasShown {
		return
	}
	s.offerLocked(Update{Order: view, Visible: visible}, true)
}

// offerSnapshot offers a snapshot entry. Snapshot entries do not count against the buffer limit.
func (s *Subscription) offerSnapshot(view queries.OrderView) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.offerLocked(Update{Order: view, Visible: true}, false)
}

func (s *Subscription) offerLocked(u Update, bounded bool) {
	id := u.Order.ID
	if v, ok := s.accepted[id]; ok && u.Order.Version <= v {
		return
	}

	if _, queued := s.pending[id]; !queued {
		if bounded && len(s.queue) >= s.limit {
			s.overflow()
			return
		}
		s.queue = append(s.queue, id)
	}

	s.pending[id] = u
	s.accepted[id] = u.Order.Version
	if u.Visible {
		s.shown[id] = struct{}{}
	} else {
		delete(s.shown, id)
	}

	s.signal()
}

// overflow drops everything undelivered and rewinds to what the consumer has seen. Must be
// called with mu held.
func (s *Subscription) overflow() {
	s.pending = make(map[kernel.UUID]Update)
	s.queue = nil
	s.accepted = make(map[kernel.UUID]int64, len(s.delivered))
	for id, v := range s.delivered {
		s.accepted[id] = v
	}
	s.shown = make(map[kernel.UUID]struct{}, len(s.deliveredShown))
	for id := range s.deliveredShown {
		s.shown[id] = struct{}{}
	}
	s.stale = true
	s.signal()
}

func (s *Subscription) signal() {
	select {
	case s.wake <- struct{}{}:
	default:
	}
}

// next pops the oldest waiting update. resync is set when the buffer overflowed since the
// last call.
func (s *Subscription) next() (u Update, ok, resync bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.stale {
		s.stale = false
		return Update{}, false, true
	}
	for len(s.queue) > 0 {
		id := s.queue[0]
		s.queue = s.queue[1:]
		u, ok = s.pending[id]
		delete(s.pending, id)
		if ok && u.Order.Version > s.delivered[id] {
			return u, true, false
		}
	}
	return Update{}, false, false
}

func (s *Subscription) markDelivered(u Update) {
	s.mu.Lock()
	defer s.mu.Unlock()

	id := u.Order.ID
	if u.Order.Version > s.delivered[id] {
		s.delivered[id] = u.Order.Version
	}
	if s.accepted[id] < u.Order.Version {
		s.accepted[id] = u.Order.Version
	}
	if u.Visible {
		s.deliveredShown[id] = struct{}{}
	} else {
		delete(s.deliveredShown, id)
	}
}

// shownExcept lists orders the stream currently shows that are missing from listed.
func (s *Subscription) shownExcept(listed map[kernel.UUID]struct{}) []kernel.UUID {
	s.mu.Lock()
	defer s.mu.Unlock()

	var out []kernel.UUID
	for id := range s.shown {
		if _, ok := listed[id]; !ok {
			out = append(out, id)
		}
	}
	return out
}

// pump is the only writer of updates.
func (s *Subscription) pump(ctx context.Context) {
	defer close(s.updates)
	defer s.Close()

	for {
		u, ok, resync := s.next()
		if resync {
			s.hub.resync(ctx, s)
			continue
		}
		if !ok {
			select {
			case <-s.wake:
				continue
			case <-s.done:
				return
			case <-ctx.Done():
				return
			}
		}

		select {
		case s.updates <- u:
			s.markDelivered(u)
		case <-s.done:
			return
		case <-ctx.Done():
			return
		}
	}
}
