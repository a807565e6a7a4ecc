package queries

import (
	"context"

	"marketplace/internal/core/domain/model/kernel"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// GetAvailableAgentsQueryHandler reads available agents straight from the directory table,
// ordered the way the dispatcher ranks them: rating, then fewest deliveries, then name.
//
// Example:
//
//	handler := NewGetAvailableAgentsQueryHandler(db)
//	query, _ := NewGetAvailableAgentsQuery(operator)
//
//	agents, err := handler.Handle(ctx, query)
//	if err != nil {
//	    return err
//	}
//	fmt.Printf("%d agents on shift\n", len(agents))
type GetAvailableAgentsQueryHandler struct {
	db *gorm.DB
}

func NewGetAvailableAgentsQueryHandler(db *gorm.DB) GetAvailableAgentsQueryHandler {
	return GetAvailableAgentsQueryHandler{db: db}
}

func (h GetAvailableAgentsQueryHandler) Handle(
	ctx context.Context,
	query GetAvailableAgentsQuery,
) ([]GetAvailableAgentsQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	agents := make([]GetAvailableAgentsQueryResponse, 0)

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			id,
			name,
			phone,
			rating,
			total_deliveries
		FROM delivery_agents
		WHERE available
		ORDER BY rating DESC, total_deliveries ASC, name
	`).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var agent GetAvailableAgentsQueryResponse
		var id uuid.UUID
		var rating decimal.Decimal

		err = rows.Scan(
			&id,
			&agent.Name,
			&agent.Phone,
			&rating,
			&agent.TotalDeliveries,
		)
		if err != nil {
			return nil, err
		}

		agentID, idErr := kernel.UUIDFromBytes(id[:])
		if idErr != nil {
			return nil, idErr
		}
		agent.ID = agentID
		agent.Rating = rating
		agents = append(agents, agent)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return agents, nil
}
