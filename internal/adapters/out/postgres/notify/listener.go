// Package notify turns the orders table trigger's NOTIFY messages into order changes.
package notify

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"marketplace/internal/adapters/out/postgres/migrations"
	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/ports"

	"github.com/lib/pq"
)

const (
	DefaultMinReconnect = 100 * time.Millisecond
	DefaultMaxReconnect = 30 * time.Second
	pingInterval        = 60 * time.Second
)

var errListenerClosed = errors.New("notification listener closed")

// Listener implements ports.OrderChangeSource with a dedicated LISTEN connection.
type Listener struct {
	dsn          string
	minReconnect time.Duration
	maxReconnect time.Duration
	logger       *slog.Logger
}

func NewListener(dsn string, minReconnect, maxReconnect time.Duration, logger *slog.Logger) *Listener {
	if minReconnect <= 0 {
		minReconnect = DefaultMinReconnect
	}
	if maxReconnect < minReconnect {
		maxReconnect = DefaultMaxReconnect
	}
	return &Listener{
		dsn:          dsn,
		minReconnect: minReconnect,
		maxReconnect: maxReconnect,
		logger:       logger.With("component", "notify.Listener"),
	}
}

type payload struct {
	ID      kernel.UUID `json:"id"`
	Version int64       `json:"version"`
}

// Listen subscribes to the order channel. lib/pq reconnects on its own and signals every
// reconnect with a nil notification, which becomes a Resync change.
func (l *Listener) Listen(ctx context.Context, changes chan<- ports.OrderChange) error {
	listener := pq.NewListener(l.dsn, l.minReconnect, l.maxReconnect, l.logEvent)
	defer func() { _ = listener.Close() }()

	if err := listener.Listen(migrations.Channel); err != nil {
		return fmt.Errorf("listen on %s: %w", migrations.Channel, err)
	}
	if err := send(ctx, changes, ports.OrderChange{Resync: true}); err != nil {
		return err
	}

	ping := time.NewTicker(pingInterval)
	defer ping.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case n, ok := <-listener.Notify:
			if !ok {
				return errListenerClosed
			}
			change := ports.OrderChange{Resync: true}
			if n != nil {
				var p payload
				if err := json.Unmarshal([]byte(n.Extra), &p); err != nil {
					l.logger.Warn("skipping malformed notification", "payload", n.Extra, "error", err)
					continue
				}
				change = ports.OrderChange{OrderID: p.ID, Version: p.Version}
			}
			if err := send(ctx, changes, change); err != nil {
				return err
			}
		case <-ping.C:
			go func() {
				if err := listener.Ping(); err != nil {
					l.logger.Debug("listener ping failed", "error", err)
				}
			}()
		}
	}
}

func (l *Listener) logEvent(ev pq.ListenerEventType, err error) {
	switch ev {
	case pq.ListenerEventConnected:
		l.logger.Info("listening for order changes")
	case pq.ListenerEventDisconnected:
		l.logger.Warn("order change connection lost", "error", err)
	case pq.ListenerEventReconnected:
		l.logger.Info("order change connection restored")
	case pq.ListenerEventConnectionAttemptFailed:
		l.logger.Warn("order change connection attempt failed", "error", err)
	}
}

func send(ctx context.Context, changes chan<- ports.OrderChange, c ports.OrderChange) error {
	select {
	case changes <- c:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
