package orderrepo

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/order"
	"marketplace/internal/core/ports"
	"marketplace/internal/pkg/errs"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

const uniqueViolation = "23505"

// GormOrderRepository implements ports.OrderRepository using GORM.
type GormOrderRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

// aggregateTracker defines the interface for tracking aggregates.
type aggregateTracker interface {
	TrackAggregate(id kernel.UUID, aggregate any)
}

// NewGormOrderRepository creates a new GORM order repository. tracker may be nil for
// repositories that only read.
func NewGormOrderRepository(db *gorm.DB, tracker aggregateTracker) *GormOrderRepository {
	return &GormOrderRepository{
		db:      db,
		tracker: tracker,
	}
}

// Add saves a new order together with its line items. An order whose id is already taken
// fails with errs.ErrConcurrentModification.
func (r *GormOrderRepository) Add(ctx context.Context, aggregate *order.Order) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	dto.UpdatedAt = time.Now().UTC()
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("order %s already exists: %w", aggregate.ID(), errs.ErrConcurrentModification)
		}
		return errs.NewPersistenceError("add order", err)
	}

	r.track(aggregate)
	return nil
}

// Update writes the mutable columns only while the row still holds the version the aggregate
// was loaded with.
func (r *GormOrderRepository) Update(ctx context.Context, aggregate *order.Order) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	result := r.db.WithContext(ctx).Model(&OrderDTO{}).
		Where("id = ? AND version = ?", dto.ID, aggregate.PersistedVersion()).
		Updates(mutableColumns(dto, time.Now().UTC()))
	if result.Error != nil {
		return errs.NewPersistenceError("update order", result.Error)
	}

	if result.RowsAffected == 0 {
		exists, err := r.exists(ctx, aggregate.ID())
		if err != nil {
			return err
		}
		if !exists {
			return errs.NewObjectNotFoundError("order", aggregate.ID().String())
		}
		return fmt.Errorf("order %s at version %d: %w",
			aggregate.ID(), aggregate.PersistedVersion(), errs.ErrConcurrentModification)
	}

	r.track(aggregate)
	return nil
}

// Get retrieves an order with its line items.
func (r *GormOrderRepository) Get(ctx context.Context, id kernel.UUID) (*order.Order, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto OrderDTO
	if err := r.withItems(ctx).First(&dto, "id = ?", id.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("order", id.String())
		}
		return nil, errs.NewPersistenceError("get order", err)
	}

	return toDomain(dto)
}

// Find returns the orders matching filter.
func (r *GormOrderRepository) Find(ctx context.Context, filter ports.OrderFilter, sorted bool) ([]*order.Order, error) {
	q := r.withItems(ctx)
	if where, args := filterClause(filter); where != "" {
		q = q.Where(where, args...)
	}
	if sorted {
		q = q.Order("order_date DESC").Order("id")
	}
	if filter.Limit > 0 {
		q = q.Limit(filter.Limit)
	}

	var dtos []OrderDTO
	if err := q.Find(&dtos).Error; err != nil {
		return nil, errs.NewPersistenceError("find orders", err)
	}
	return toDomainList(dtos)
}

// FindUnclaimed returns ready orders without an agent, longest waiting first.
func (r *GormOrderRepository) FindUnclaimed(ctx context.Context) ([]*order.Order, error) {
	var dtos []OrderDTO
	err := r.withItems(ctx).
		Where("status = ? AND delivery_agent_id IS NULL", order.Ready.String()).
		Order("updated_at").Order("id").
		Find(&dtos).Error
	if err != nil {
		return nil, errs.NewPersistenceError("find unclaimed orders", err)
	}
	return toDomainList(dtos)
}

// FindStaleReady returns unclaimed ready orders untouched since before.
func (r *GormOrderRepository) FindStaleReady(ctx context.Context, before time.Time, limit int) ([]*order.Order, error) {
	q := r.withItems(ctx).
		Where("status = ? AND delivery_agent_id IS NULL AND updated_at < ?", order.Ready.String(), before.UTC()).
		Order("updated_at").Order("id")
	if limit > 0 {
		q = q.Limit(limit)
	}

	var dtos []OrderDTO
	if err := q.Find(&dtos).Error; err != nil {
		return nil, errs.NewPersistenceError("find stale ready orders", err)
	}
	return toDomainList(dtos)
}

// Claim moves a ready, unclaimed order to out_for_delivery with one conditional UPDATE, so
// of several agents racing for the same order exactly one succeeds. When no row matches, the
// current row decides which error the loser gets.
func (r *GormOrderRepository) Claim(ctx context.Context, orderID kernel.UUID, a order.Assignment) (*order.Order, error) {
	if err := errors.Join(orderID.Validate(), a.AgentID().Validate()); err != nil {
		return nil, err
	}

	pickup := a.AssignedAt().UTC()
	result := r.db.WithContext(ctx).Model(&OrderDTO{}).
		Where("id = ? AND status = ? AND delivery_agent_id IS NULL", orderID.Bytes(), order.Ready.String()).
		Updates(map[string]any{
			"status":               order.OutForDelivery.String(),
			"delivery_agent_id":    a.AgentID().Bytes(),
			"delivery_agent_name":  a.AgentName(),
			"delivery_agent_phone": a.AgentPhone(),
			"pickup_time":          pickup,
			"version":              gorm.Expr("version + 1"),
			"updated_at":           time.Now().UTC(),
		})
	if result.Error != nil {
		return nil, errs.NewPersistenceError("claim order", result.Error)
	}

	current, err := r.Get(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if result.RowsAffected == 0 {
		if err = current.CheckTransition(order.EventAssign); err != nil {
			return nil, err
		}
		return nil, fmt.Errorf("order %s: %w", orderID, errs.ErrConcurrentModification)
	}

	r.track(current)
	return current, nil
}

func (r *GormOrderRepository) withItems(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).Preload("Items", func(db *gorm.DB) *gorm.DB {
		return db.Order("position")
	})
}

func (r *GormOrderRepository) exists(ctx context.Context, id kernel.UUID) (bool, error) {
	var n int64
	if err := r.db.WithContext(ctx).Model(&OrderDTO{}).Where("id = ?", id.Bytes()).Count(&n).Error; err != nil {
		return false, errs.NewPersistenceError("count orders", err)
	}
	return n > 0, nil
}

func (r *GormOrderRepository) track(o *order.Order) {
	if r.tracker != nil {
		r.tracker.TrackAggregate(o.ID(), o)
	}
}

func filterClause(f ports.OrderFilter) (string, []any) {
	var (
		conds []string
		args  []any
	)
	if f.CustomerID != nil {
		conds = append(conds, "customer_id = ?")
		args = append(args, f.CustomerID.Bytes())
	}
	if f.RestaurantID != nil {
		conds = append(conds, "restaurant_id = ?")
		args = append(args, f.RestaurantID.Bytes())
	}
	if f.AgentID != nil {
		conds = append(conds, "delivery_agent_id = ?")
		args = append(args, f.AgentID.Bytes())
	}
	if len(conds) == 0 {
		return "", nil
	}

	where := strings.Join(conds, " AND ")
	if f.IncludeClaimable {
		where = "(" + where + ") OR (status = ? AND delivery_agent_id IS NULL)"
		args = append(args, order.Ready.String())
	}
	return where, args
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == uniqueViolation
}
