// Package postgres provides the GORM-based Unit of Work the command handlers run in.
//
// Every order an in-transaction repository writes is tracked; Commit records an order.changed
// outbox message for each of them in the same transaction, so a committed change is never
// without its integration event and a rolled back one never has it.
//
// Usage:
//
//	uow := factory.Create()
//	if err := uow.Begin(ctx); err != nil {
//	    return err
//	}
//	defer func() { _ = uow.Rollback(ctx) }()
//
//	if err := uow.OrderRepository().Update(ctx, o); err != nil {
//	    return err
//	}
//	return uow.Commit(ctx)
//
// Each UnitOfWork instance is single-use per request and must not be shared between
// goroutines.
package postgres

import (
	"context"
	"time"

	"marketplace/internal/adapters/out/postgres/agentrepo"
	"marketplace/internal/adapters/out/postgres/orderrepo"
	"marketplace/internal/adapters/out/postgres/outboxrepo"
	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/order"
	"marketplace/internal/core/ports"
	"marketplace/internal/pkg/errs"

	"gorm.io/gorm"
)

// trackedAggregate represents an aggregate modified during the unit of work.
type trackedAggregate struct {
	ID        kernel.UUID
	Aggregate any
}

// GormUnitOfWorkFactory creates UnitOfWork instances using GORM database connections.
type GormUnitOfWorkFactory struct {
	db *gorm.DB
}

// NewGormUnitOfWorkFactory creates a factory for GORM-based unit of work instances.
func NewGormUnitOfWorkFactory(db *gorm.DB) *GormUnitOfWorkFactory {
	return &GormUnitOfWorkFactory{db: db}
}

// Create produces a fresh UnitOfWork with its own transaction state and tracking.
func (f *GormUnitOfWorkFactory) Create() ports.UnitOfWork {
	return &GormUnitOfWork{
		db:                f.db,
		trackedAggregates: make([]trackedAggregate, 0),
	}
}

// GormUnitOfWork coordinates one database transaction and the aggregates written in it.
type GormUnitOfWork struct {
	db                *gorm.DB
	tx                *gorm.DB
	trackedAggregates []trackedAggregate
}

// Begin starts the transaction. Calling it twice is a no-op.
func (uow *GormUnitOfWork) Begin(ctx context.Context) error {
	if uow.tx != nil {
		return nil
	}

	uow.tx = uow.db.WithContext(ctx).Begin()
	if uow.tx.Error != nil {
		err := uow.tx.Error
		uow.tx = nil
		return errs.NewPersistenceError("begin transaction", err)
	}

	return nil
}

// Commit writes the outbox messages for the tracked orders and commits. If recording the
// messages fails the transaction stays open for the caller's Rollback.
func (uow *GormUnitOfWork) Commit(ctx context.Context) error {
	if uow.tx == nil {
		return gorm.ErrInvalidTransaction
	}

	if err := uow.recordOutbox(ctx); err != nil {
		return err
	}

	err := uow.tx.Commit().Error
	uow.tx = nil
	uow.trackedAggregates = uow.trackedAggregates[:0]
	if err != nil {
		return errs.NewPersistenceError("commit transaction", err)
	}
	return nil
}

// Rollback discards the transaction and everything tracked in it.
func (uow *GormUnitOfWork) Rollback(_ context.Context) error {
	if uow.tx == nil {
		return gorm.ErrInvalidTransaction
	}

	err := uow.tx.Rollback().Error
	uow.tx = nil
	uow.trackedAggregates = uow.trackedAggregates[:0]
	return err
}

// OrderRepository returns an order repository bound to the current transaction, or to the
// plain connection when none is active.
func (uow *GormUnitOfWork) OrderRepository() ports.OrderRepository {
	return orderrepo.NewGormOrderRepository(uow.conn(), uow)
}

// AgentRepository returns an agent repository bound to the current transaction, or to the
// plain connection when none is active.
func (uow *GormUnitOfWork) AgentRepository() ports.AgentRepository {
	return agentrepo.NewGormAgentRepository(uow.conn(), uow)
}

// TrackAggregate registers an aggregate as written within this unit of work. Repositories
// call it after every successful write.
func (uow *GormUnitOfWork) TrackAggregate(id kernel.UUID, aggregate any) {
	uow.trackedAggregates = append(uow.trackedAggregates, trackedAggregate{
		ID:        id,
		Aggregate: aggregate,
	})
}

func (uow *GormUnitOfWork) conn() *gorm.DB {
	if uow.tx != nil {
		return uow.tx
	}
	return uow.db
}

// recordOutbox writes one message per tracked order, describing its last tracked state.
func (uow *GormUnitOfWork) recordOutbox(ctx context.Context) error {
	latest := make(map[kernel.UUID]*order.Order)
	seen := make([]kernel.UUID, 0, len(uow.trackedAggregates))
	for _, t := range uow.trackedAggregates {
		o, ok := t.Aggregate.(*order.Order)
		if !ok {
			continue
		}
		if _, dup := latest[t.ID]; !dup {
			seen = append(seen, t.ID)
		}
		latest[t.ID] = o
	}
	if len(seen) == 0 {
		return nil
	}

	now := time.Now()
	messages := make([]ports.OutboxMessage, 0, len(seen))
	for _, id := range seen {
		m, err := outboxrepo.NewOrderChanged(latest[id], now)
		if err != nil {
			return err
		}
		messages = append(messages, m)
	}
	return outboxrepo.NewGormOutboxRepository(uow.tx).Add(ctx, messages...)
}
