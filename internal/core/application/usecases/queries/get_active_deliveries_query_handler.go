package queries

import (
	"context"
	"time"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/order"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GetActiveDeliveriesQueryHandler reads out-for-delivery orders from the database, earliest
// pickup first.
type GetActiveDeliveriesQueryHandler struct {
	db *gorm.DB
}

func NewGetActiveDeliveriesQueryHandler(db *gorm.DB) GetActiveDeliveriesQueryHandler {
	return GetActiveDeliveriesQueryHandler{db: db}
}

func (h GetActiveDeliveriesQueryHandler) Handle(
	ctx context.Context,
	query GetActiveDeliveriesQuery,
) ([]GetActiveDeliveriesQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	deliveries := make([]GetActiveDeliveriesQueryResponse, 0)

	stmt := h.db.WithContext(ctx).Table("orders").
		Select("id, restaurant_id, delivery_agent_id, delivery_agent_name, pickup_time, estimated_delivery_time").
		Where("status = ?", order.OutForDelivery.String())
	if rid := query.RestaurantID(); rid != nil {
		stmt = stmt.Where("restaurant_id = ?", rid.Bytes())
	}

	rows, err := stmt.Order("pickup_time, id").Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var delivery GetActiveDeliveriesQueryResponse
		var id, restaurantID, agentID uuid.UUID
		var pickup, eta time.Time

		err = rows.Scan(
			&id,
			&restaurantID,
			&agentID,
			&delivery.AgentName,
			&pickup,
			&eta,
		)
		if err != nil {
			return nil, err
		}

		if delivery.OrderID, err = kernel.UUIDFromBytes(id[:]); err != nil {
			return nil, err
		}
		if delivery.RestaurantID, err = kernel.UUIDFromBytes(restaurantID[:]); err != nil {
			return nil, err
		}
		if delivery.AgentID, err = kernel.UUIDFromBytes(agentID[:]); err != nil {
			return nil, err
		}
		delivery.PickupTime = pickup.UTC()
		delivery.EstimatedDeliveryTime = eta.UTC()
		deliveries = append(deliveries, delivery)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return deliveries, nil
}
