package queries_test

import (
	"context"
	"testing"
	"time"

	"marketplace/internal/core/domain/model/actor"
	"marketplace/internal/core/domain/model/agent"
	"marketplace/internal/core/domain/model/catalog"
	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/order"
	"marketplace/internal/core/ports"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockOrderReader struct{ mock.Mock }

func (m *MockOrderReader) Get(ctx context.Context, id kernel.UUID) (*order.Order, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*order.Order), args.Error(1)
}

func (m *MockOrderReader) Find(ctx context.Context, filter ports.OrderFilter, sorted bool) ([]*order.Order, error) {
	args := m.Called(ctx, filter, sorted)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*order.Order), args.Error(1)
}

func (m *MockOrderReader) FindUnclaimed(ctx context.Context) ([]*order.Order, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*order.Order), args.Error(1)
}

func (m *MockOrderReader) FindStaleReady(ctx context.Context, before time.Time, limit int) ([]*order.Order, error) {
	args := m.Called(ctx, before, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*order.Order), args.Error(1)
}

type MockAgentRepository struct{ mock.Mock }

func (m *MockAgentRepository) Get(ctx context.Context, id kernel.UUID) (*agent.DeliveryAgent, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*agent.DeliveryAgent), args.Error(1)
}

func (m *MockAgentRepository) GetAllAvailable(ctx context.Context) ([]*agent.DeliveryAgent, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*agent.DeliveryAgent), args.Error(1)
}

func (m *MockAgentRepository) SetAvailability(ctx context.Context, id kernel.UUID, available bool) error {
	args := m.Called(ctx, id, available)
	return args.Error(0)
}

func (m *MockAgentRepository) IncrementDeliveries(ctx context.Context, id kernel.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

type MockCatalogReader struct{ mock.Mock }

func (m *MockCatalogReader) GetRestaurant(ctx context.Context, id kernel.UUID) (*catalog.Restaurant, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*catalog.Restaurant), args.Error(1)
}

func (m *MockCatalogReader) GetMenuItems(ctx context.Context, restaurantID kernel.UUID) ([]*catalog.MenuItem, error) {
	args := m.Called(ctx, restaurantID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*catalog.MenuItem), args.Error(1)
}

var baseDate = time.Date(2026, 3, 14, 12, 0, 0, 0, time.UTC)

func newOrder(t *testing.T, customerID, restaurantID kernel.UUID, placed time.Time) *order.Order {
	t.Helper()
	item, err := order.NewItem(kernel.NewUUID(), "Paneer tikka", 1, decimal.NewFromInt(200))
	require.NoError(t, err)
	o, err := order.NewOrder(order.Draft{
		ID:                    kernel.NewUUID(),
		CustomerID:            customerID,
		RestaurantID:          restaurantID,
		Items:                 []order.Item{item},
		DeliveryFee:           decimal.NewFromInt(30),
		TotalAmount:           decimal.NewFromInt(230),
		PaymentMethod:         order.PaymentOnline,
		Delivery:              order.Delivery{Address: "12 Park Street", CustomerPhone: "+91 98000 00000", CustomerName: "Asha"},
		OrderDate:             placed,
		EstimatedDeliveryTime: placed.Add(time.Hour),
	})
	require.NoError(t, err)
	return o
}

func newActor(t *testing.T, id kernel.UUID, role actor.Role, restaurantID *kernel.UUID) actor.Actor {
	t.Helper()
	a, err := actor.NewActor(id, role, restaurantID)
	require.NoError(t, err)
	return a
}
