package commands_test

import (
	"context"
	"testing"
	"time"

	"marketplace/internal/core/application/usecases/commands"
	"marketplace/internal/core/application/usecases/queries"
	"marketplace/internal/core/domain/model/actor"
	"marketplace/internal/core/domain/model/agent"
	"marketplace/internal/core/domain/model/cart"
	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/order"
	"marketplace/internal/core/ports"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockOrderRepository struct{ mock.Mock }

func (m *MockOrderRepository) Get(ctx context.Context, id kernel.UUID) (*order.Order, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*order.Order), args.Error(1)
}

func (m *MockOrderRepository) Find(ctx context.Context, filter ports.OrderFilter, sorted bool) ([]*order.Order, error) {
	args := m.Called(ctx, filter, sorted)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*order.Order), args.Error(1)
}

func (m *MockOrderRepository) FindUnclaimed(ctx context.Context) ([]*order.Order, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*order.Order), args.Error(1)
}

func (m *MockOrderRepository) FindStaleReady(ctx context.Context, before time.Time, limit int) ([]*order.Order, error) {
	args := m.Called(ctx, before, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*order.Order), args.Error(1)
}

func (m *MockOrderRepository) Add(ctx context.Context, o *order.Order) error {
	args := m.Called(ctx, o)
	return args.Error(0)
}

func (m *MockOrderRepository) Update(ctx context.Context, o *order.Order) error {
	args := m.Called(ctx, o)
	return args.Error(0)
}

func (m *MockOrderRepository) Claim(ctx context.Context, orderID kernel.UUID, a order.Assignment) (*order.Order, error) {
	args := m.Called(ctx, orderID, a)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*order.Order), args.Error(1)
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

// MockUoW satisfies UoW, OrderUoW and AgentUoW.
type MockUoW struct{ mock.Mock }

func (m *MockUoW) Begin(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockUoW) Commit(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockUoW) Rollback(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockUoW) OrderRepository() ports.OrderRepository {
	args := m.Called()
	return args.Get(0).(ports.OrderRepository)
}

func (m *MockUoW) AgentRepository() ports.AgentRepository {
	args := m.Called()
	return args.Get(0).(ports.AgentRepository)
}

type MockUoWFactory struct{ mock.Mock }

func (m *MockUoWFactory) Create() commands.UoW {
	args := m.Called()
	return args.Get(0).(commands.UoW)
}

type MockOrderUoWFactory struct{ mock.Mock }

func (m *MockOrderUoWFactory) Create() commands.OrderUoW {
	args := m.Called()
	return args.Get(0).(commands.OrderUoW)
}

type MockAgentUoWFactory struct{ mock.Mock }

func (m *MockAgentUoWFactory) Create() commands.AgentUoW {
	args := m.Called()
	return args.Get(0).(commands.AgentUoW)
}

type MockCartHandoffStore struct{ mock.Mock }

func (m *MockCartHandoffStore) Put(ctx context.Context, h cart.Handoff, ttl time.Duration) (kernel.UUID, error) {
	args := m.Called(ctx, h, ttl)
	return args.Get(0).(kernel.UUID), args.Error(1)
}

func (m *MockCartHandoffStore) Get(ctx context.Context, id kernel.UUID) (cart.Handoff, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(cart.Handoff), args.Error(1)
}

func (m *MockCartHandoffStore) Delete(ctx context.Context, id kernel.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

type MockCartRevalidation struct{ mock.Mock }

func (m *MockCartRevalidation) Handle(ctx context.Context, q queries.RevalidateCartQuery) (*cart.ValidatedCart, error) {
	args := m.Called(ctx, q)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*cart.ValidatedCart), args.Error(1)
}

type MockOutboxRepository struct{ mock.Mock }

func (m *MockOutboxRepository) GetUnpublished(ctx context.Context, limit int) ([]ports.OutboxMessage, error) {
	args := m.Called(ctx, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]ports.OutboxMessage), args.Error(1)
}

func (m *MockOutboxRepository) MarkPublished(ctx context.Context, ids []kernel.UUID, at time.Time) error {
	args := m.Called(ctx, ids, at)
	return args.Error(0)
}

type MockEventPublisher struct{ mock.Mock }

func (m *MockEventPublisher) Publish(ctx context.Context, messages ...ports.OutboxMessage) error {
	args := m.Called(ctx, messages)
	return args.Error(0)
}

var baseDate = time.Date(2026, 3, 14, 12, 0, 0, 0, time.UTC)

func money(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func newActor(t *testing.T, id kernel.UUID, role actor.Role, restaurantID *kernel.UUID) actor.Actor {
	t.Helper()
	a, err := actor.NewActor(id, role, restaurantID)
	require.NoError(t, err)
	return a
}

func newAgent(t *testing.T, available bool, rating string) *agent.DeliveryAgent {
	t.Helper()
	a, err := agent.RestoreDeliveryAgent(kernel.NewUUID(), "Ravi", "+91 90000 00000", available, money(rating), 12)
	require.NoError(t, err)
	return a
}

// storedOrder rebuilds an order at version 3 the way a repository would return it.
func storedOrder(t *testing.T, restaurantID kernel.UUID, status order.Status, assignee *agent.DeliveryAgent) *order.Order {
	t.Helper()
	item, err := order.NewItem(kernel.NewUUID(), "Paneer tikka", 2, money("120"))
	require.NoError(t, err)

	s := order.Snapshot{
		ID:                    kernel.NewUUID(),
		CustomerID:            kernel.NewUUID(),
		RestaurantID:          restaurantID,
		Items:                 []order.Item{item},
		TotalAmount:           money("270"),
		DeliveryFee:           money("30"),
		Status:                status,
		PaymentMethod:         order.PaymentCash,
		PaymentStatus:         order.PaymentPending,
		OrderDate:             baseDate,
		EstimatedDeliveryTime: baseDate.Add(45 * time.Minute),
		Delivery:              order.Delivery{Address: "12 Park Street", CustomerPhone: "+91 98000 00000", CustomerName: "Asha"},
		Version:               3,
	}
	if assignee != nil {
		pickup := baseDate.Add(30 * time.Minute)
		a, err := assignee.AssignmentAt(pickup)
		require.NoError(t, err)
		s.Assignment = &a
		s.PickupTime = &pickup
	}

	o, err := order.RestoreOrder(s)
	require.NoError(t, err)
	return o
}
