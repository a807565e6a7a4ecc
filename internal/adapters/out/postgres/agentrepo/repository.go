package agentrepo

import (
	"context"
	"errors"

	"marketplace/internal/core/domain/model/agent"
	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/pkg/errs"

	"gorm.io/gorm"
)

// GormAgentRepository implements ports.AgentRepository using GORM.
type GormAgentRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

type aggregateTracker interface {
	TrackAggregate(id kernel.UUID, aggregate any)
}

// NewGormAgentRepository creates a new GORM agent repository. tracker may be nil.
func NewGormAgentRepository(db *gorm.DB, tracker aggregateTracker) *GormAgentRepository {
	return &GormAgentRepository{
		db:      db,
		tracker: tracker,
	}
}

// Add registers a new agent. Registration belongs to the onboarding flow; the core uses it to
// seed the directory.
func (r *GormAgentRepository) Add(ctx context.Context, aggregate *agent.DeliveryAgent) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		return errs.NewPersistenceError("add agent", err)
	}

	if r.tracker != nil {
		r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	}
	return nil
}

// Get retrieves an agent by ID.
func (r *GormAgentRepository) Get(ctx context.Context, id kernel.UUID) (*agent.DeliveryAgent, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto AgentDTO
	if err := r.db.WithContext(ctx).First(&dto, "id = ?", id.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("agent", id.String())
		}
		return nil, errs.NewPersistenceError("get agent", err)
	}

	return toDomain(dto)
}

// GetAllAvailable returns available agents, best rated first.
func (r *GormAgentRepository) GetAllAvailable(ctx context.Context) ([]*agent.DeliveryAgent, error) {
	var dtos []AgentDTO
	err := r.db.WithContext(ctx).
		Where("available = ?", true).
		Order("rating DESC").Order("total_deliveries").Order("name").
		Find(&dtos).Error
	if err != nil {
		return nil, errs.NewPersistenceError("get available agents", err)
	}

	agents := make([]*agent.DeliveryAgent, 0, len(dtos))
	for _, dto := range dtos {
		a, convErr := toDomain(dto)
		if convErr != nil {
			return nil, convErr
		}
		agents = append(agents, a)
	}
	return agents, nil
}

// SetAvailability stores the availability flag.
func (r *GormAgentRepository) SetAvailability(ctx context.Context, id kernel.UUID, available bool) error {
	if err := id.Validate(); err != nil {
		return err
	}

	result := r.db.WithContext(ctx).Model(&AgentDTO{}).
		Where("id = ?", id.Bytes()).
		Update("available", available)
	if result.Error != nil {
		return errs.NewPersistenceError("set agent availability", result.Error)
	}
	if result.RowsAffected == 0 {
		return errs.NewObjectNotFoundError("agent", id.String())
	}
	return nil
}

// IncrementDeliveries bumps the counter in place, so concurrent deliveries by the same agent
// never lose an increment.
func (r *GormAgentRepository) IncrementDeliveries(ctx context.Context, id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}

	result := r.db.WithContext(ctx).Model(&AgentDTO{}).
		Where("id = ?", id.Bytes()).
		UpdateColumn("total_deliveries", gorm.Expr("total_deliveries + 1"))
	if result.Error != nil {
		return errs.NewPersistenceError("increment agent deliveries", result.Error)
	}
	if result.RowsAffected == 0 {
		return errs.NewObjectNotFoundError("agent", id.String())
	}
	return nil
}
