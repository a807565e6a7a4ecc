// Package catalogrepo reads restaurants and menu items. The catalog is written by the
// restaurant onboarding flow; the order core only reads it.
package catalogrepo

import (
	"marketplace/internal/core/domain/model/catalog"
	"marketplace/internal/core/domain/model/kernel"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type RestaurantDTO struct {
	ID           uuid.UUID       `gorm:"type:uuid;primaryKey"`
	OwnerID      uuid.UUID       `gorm:"type:uuid;not null"`
	Name         string          `gorm:"type:varchar(255);not null"`
	Approved     bool            `gorm:"not null;default:false"`
	Active       bool            `gorm:"not null;default:true"`
	MinimumOrder decimal.Decimal `gorm:"type:numeric(12,2);not null"`
	DeliveryFee  decimal.Decimal `gorm:"type:numeric(12,2);not null"`
}

func (RestaurantDTO) TableName() string {
	return "restaurants"
}

type MenuItemDTO struct {
	ID           uuid.UUID       `gorm:"type:uuid;primaryKey"`
	RestaurantID uuid.UUID       `gorm:"type:uuid;not null;index"`
	Name         string          `gorm:"type:varchar(255);not null"`
	Price        decimal.Decimal `gorm:"type:numeric(12,2);not null"`
	Available    bool            `gorm:"not null;default:true"`
}

func (MenuItemDTO) TableName() string {
	return "menu_items"
}

func restaurantToDomain(dto RestaurantDTO) (*catalog.Restaurant, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}
	ownerID, err := kernel.UUIDFromBytes(dto.OwnerID[:])
	if err != nil {
		return nil, err
	}
	return catalog.RestoreRestaurant(id, ownerID, dto.Name, dto.Approved, dto.Active, dto.MinimumOrder, dto.DeliveryFee)
}

func menuItemToDomain(dto MenuItemDTO) (*catalog.MenuItem, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}
	restaurantID, err := kernel.UUIDFromBytes(dto.RestaurantID[:])
	if err != nil {
		return nil, err
	}
	return catalog.RestoreMenuItem(id, restaurantID, dto.Name, dto.Price, dto.Available)
}
