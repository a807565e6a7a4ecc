package outboxrepo

import (
	"context"
	"time"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/ports"
	"marketplace/internal/pkg/errs"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormOutboxRepository implements ports.OutboxRepository using GORM.
type GormOutboxRepository struct {
	db *gorm.DB
}

func NewGormOutboxRepository(db *gorm.DB) *GormOutboxRepository {
	return &GormOutboxRepository{db: db}
}

// Add records messages. It runs inside the transaction of the change being described.
func (r *GormOutboxRepository) Add(ctx context.Context, messages ...ports.OutboxMessage) error {
	if len(messages) == 0 {
		return nil
	}

	dtos := make([]MessageDTO, 0, len(messages))
	for _, m := range messages {
		dtos = append(dtos, fromMessage(m))
	}
	if err := r.db.WithContext(ctx).Create(&dtos).Error; err != nil {
		return errs.NewPersistenceError("add outbox messages", err)
	}
	return nil
}

func (r *GormOutboxRepository) GetUnpublished(ctx context.Context, limit int) ([]ports.OutboxMessage, error) {
	q := r.db.WithContext(ctx).
		Where("published_at IS NULL").
		Order("occurred_at").Order("id")
	if limit > 0 {
		q = q.Limit(limit)
	}

	var dtos []MessageDTO
	if err := q.Find(&dtos).Error; err != nil {
		return nil, errs.NewPersistenceError("get unpublished messages", err)
	}

	messages := make([]ports.OutboxMessage, 0, len(dtos))
	for _, dto := range dtos {
		m, err := toMessage(dto)
		if err != nil {
			return nil, err
		}
		messages = append(messages, m)
	}
	return messages, nil
}

func (r *GormOutboxRepository) MarkPublished(ctx context.Context, ids []kernel.UUID, at time.Time) error {
	if len(ids) == 0 {
		return nil
	}

	raw := make([]uuid.UUID, 0, len(ids))
	for _, id := range ids {
		raw = append(raw, id.Bytes())
	}
	err := r.db.WithContext(ctx).Model(&MessageDTO{}).
		Where("id IN ? AND published_at IS NULL", raw).
		Update("published_at", at.UTC()).Error
	if err != nil {
		return errs.NewPersistenceError("mark messages published", err)
	}
	return nil
}
