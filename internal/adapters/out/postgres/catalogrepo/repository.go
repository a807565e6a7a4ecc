package catalogrepo

import (
	"context"
	"errors"

	"marketplace/internal/core/domain/model/catalog"
	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/pkg/errs"

	"gorm.io/gorm"
)

// GormCatalogReader implements ports.CatalogReader using GORM.
type GormCatalogReader struct {
	db *gorm.DB
}

func NewGormCatalogReader(db *gorm.DB) *GormCatalogReader {
	return &GormCatalogReader{db: db}
}

func (r *GormCatalogReader) GetRestaurant(ctx context.Context, id kernel.UUID) (*catalog.Restaurant, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto RestaurantDTO
	if err := r.db.WithContext(ctx).First(&dto, "id = ?", id.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("restaurant", id.String())
		}
		return nil, errs.NewPersistenceError("get restaurant", err)
	}
	return restaurantToDomain(dto)
}

// GetMenuItems returns the whole menu, unavailable items included, in name order.
func (r *GormCatalogReader) GetMenuItems(ctx context.Context, restaurantID kernel.UUID) ([]*catalog.MenuItem, error) {
	if err := restaurantID.Validate(); err != nil {
		return nil, err
	}

	var dtos []MenuItemDTO
	err := r.db.WithContext(ctx).
		Where("restaurant_id = ?", restaurantID.Bytes()).
		Order("name").Order("id").
		Find(&dtos).Error
	if err != nil {
		return nil, errs.NewPersistenceError("get menu items", err)
	}

	items := make([]*catalog.MenuItem, 0, len(dtos))
	for _, dto := range dtos {
		item, convErr := menuItemToDomain(dto)
		if convErr != nil {
			return nil, convErr
		}
		items = append(items, item)
	}
	return items, nil
}
