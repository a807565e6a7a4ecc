package http_test

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	httpadapter "marketplace/internal/adapters/in/http"
	"marketplace/internal/adapters/in/http/api"
	"marketplace/internal/core/application/usecases/commands"
	"marketplace/internal/core/application/usecases/queries"
	"marketplace/internal/core/domain/model/actor"
	"marketplace/internal/core/domain/model/cart"
	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/order"
	"marketplace/internal/pkg/errs"

	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

var baseDate = time.Date(2026, time.March, 14, 12, 0, 0, 0, time.UTC)

type MockOrderGetter struct{ mock.Mock }

func (m *MockOrderGetter) Handle(ctx context.Context, q queries.GetOrderQuery) (queries.OrderView, error) {
	args := m.Called(ctx, q)
	return args.Get(0).(queries.OrderView), args.Error(1)
}

type MockOrderAdvancer struct{ mock.Mock }

func (m *MockOrderAdvancer) Handle(ctx context.Context, cmd commands.AdvanceOrderCommand) (*order.Order, error) {
	args := m.Called(ctx, cmd)
	if o := args.Get(0); o != nil {
		return o.(*order.Order), args.Error(1)
	}
	return nil, args.Error(1)
}

type MockOrderDeliverer struct{ mock.Mock }

func (m *MockOrderDeliverer) Handle(ctx context.Context, cmd commands.DeliverOrderCommand) (*order.Order, error) {
	args := m.Called(ctx, cmd)
	if o := args.Get(0); o != nil {
		return o.(*order.Order), args.Error(1)
	}
	return nil, args.Error(1)
}

type MockOrderClaimer struct{ mock.Mock }

func (m *MockOrderClaimer) Handle(ctx context.Context, cmd commands.ClaimOrderCommand) (*order.Order, error) {
	args := m.Called(ctx, cmd)
	if o := args.Get(0); o != nil {
		return o.(*order.Order), args.Error(1)
	}
	return nil, args.Error(1)
}

type MockCartHandoff struct{ mock.Mock }

func (m *MockCartHandoff) Handle(ctx context.Context, cmd commands.HandOffCartCommand) (commands.HandOffCartResult, error) {
	args := m.Called(ctx, cmd)
	return args.Get(0).(commands.HandOffCartResult), args.Error(1)
}

type MockAvailabilitySetter struct{ mock.Mock }

func (m *MockAvailabilitySetter) Handle(ctx context.Context, cmd commands.SetAgentAvailabilityCommand) error {
	return m.Called(ctx, cmd).Error(0)
}

func newRouter(t *testing.T, h httpadapter.Handlers) *echo.Echo {
	t.Helper()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	e, err := httpadapter.NewRouter(httpadapter.NewServer(h), []string{"https://app.example.com"}, logger)
	require.NoError(t, err)
	return e
}

type identity struct {
	id           kernel.UUID
	role         actor.Role
	restaurantID *kernel.UUID
}

func request(method, target, body string, who *identity) *http.Request {
	var r io.Reader
	if body != "" {
		r = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, target, r)
	if body != "" {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	if who != nil {
		req.Header.Set(httpadapter.HeaderActorID, who.id.String())
		req.Header.Set(httpadapter.HeaderActorRole, string(who.role))
		if who.restaurantID != nil {
			req.Header.Set(httpadapter.HeaderActorRestaurantID, who.restaurantID.String())
		}
	}
	return req
}

func serve(e *echo.Echo, req *http.Request) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func decodeError(t *testing.T, rec *httptest.ResponseRecorder) api.Error {
	t.Helper()
	var body api.Error
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body
}

func storedOrder(t *testing.T, status order.Status, assigned bool) *order.Order {
	t.Helper()
	item, err := order.NewItem(kernel.NewUUID(), "Chole bhature", 2, decimal.NewFromInt(110))
	require.NoError(t, err)

	s := order.Snapshot{
		ID:                    kernel.NewUUID(),
		CustomerID:            kernel.NewUUID(),
		RestaurantID:          kernel.NewUUID(),
		Items:                 []order.Item{item},
		TotalAmount:           decimal.NewFromInt(250),
		DeliveryFee:           decimal.NewFromInt(30),
		Status:                status,
		PaymentMethod:         order.PaymentCash,
		PaymentStatus:         order.PaymentPending,
		OrderDate:             baseDate,
		EstimatedDeliveryTime: baseDate.Add(45 * time.Minute),
		Delivery:              order.Delivery{Address: "7 Brigade Road", CustomerPhone: "+91 98450 00000", CustomerName: "Kiran"},
		Version:               4,
	}
	if assigned {
		pickup := baseDate.Add(30 * time.Minute)
		a, aErr := order.NewAssignment(kernel.NewUUID(), "Ravi", "+91 98100 00001", pickup)
		require.NoError(t, aErr)
		s.Assignment = &a
		s.PickupTime = &pickup
	}
	if status == order.Delivered {
		arrived := baseDate.Add(55 * time.Minute)
		s.ActualDeliveryTime = &arrived
	}
	o, err := order.RestoreOrder(s)
	require.NoError(t, err)
	return o
}

func TestHealth(t *testing.T) {
	e := newRouter(t, httpadapter.Handlers{})

	rec := serve(e, request(http.MethodGet, "/health", "", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Healthy", rec.Body.String())
}

func TestMissingIdentityIsUnauthorized(t *testing.T) {
	e := newRouter(t, httpadapter.Handlers{})

	rec := serve(e, request(http.MethodGet, "/api/v1/orders/"+kernel.NewUUID().String(), "", nil))

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, http.StatusUnauthorized, decodeError(t, rec).Code)
}

func TestOperatorWithoutRestaurantIsUnauthorized(t *testing.T) {
	e := newRouter(t, httpadapter.Handlers{})
	who := &identity{id: kernel.NewUUID(), role: actor.RoleRestaurantOperator}

	rec := serve(e, request(http.MethodGet, "/api/v1/orders", "", who))

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestGetOrder_Success(t *testing.T) {
	o := storedOrder(t, order.Ready, false)
	customer := &identity{id: o.CustomerID(), role: actor.RoleCustomer}

	getter := new(MockOrderGetter)
	getter.On("Handle", mock.Anything, mock.MatchedBy(func(q queries.GetOrderQuery) bool {
		return q.OrderID().IsEqual(o.ID()) && q.Actor().ID().IsEqual(o.CustomerID())
	})).Return(queries.NewOrderView(o), nil).Once()

	e := newRouter(t, httpadapter.Handlers{GetOrder: getter})
	rec := serve(e, request(http.MethodGet, "/api/v1/orders/"+o.ID().String(), "", customer))

	require.Equal(t, http.StatusOK, rec.Code)
	var body api.Order
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, o.ID().String(), body.Id.String())
	assert.Equal(t, "ready", body.Status)
	assert.True(t, decimal.NewFromInt(250).Equal(body.TotalAmount))
	assert.Equal(t, int64(4), body.Version)
	getter.AssertExpectations(t)
}

func TestGetOrder_ErrorMapping(t *testing.T) {
	tests := map[string]struct {
		err    error
		status int
	}{
		"not found":   {errs.NewObjectNotFoundError("order", "x"), http.StatusNotFound},
		"permission":  {errs.NewPermissionError("customer", "view order"), http.StatusForbidden},
		"persistence": {errs.NewPersistenceError("get order", errors.New("connection refused")), http.StatusServiceUnavailable},
		"unexpected":  {errors.New("boom"), http.StatusInternalServerError},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			getter := new(MockOrderGetter)
			getter.On("Handle", mock.Anything, mock.Anything).Return(queries.OrderView{}, tt.err)
			e := newRouter(t, httpadapter.Handlers{GetOrder: getter})

			who := &identity{id: kernel.NewUUID(), role: actor.RoleAdmin}
			rec := serve(e, request(http.MethodGet, "/api/v1/orders/"+kernel.NewUUID().String(), "", who))

			assert.Equal(t, tt.status, rec.Code)
			body := decodeError(t, rec)
			assert.Equal(t, tt.status, body.Code)
			assert.NotContains(t, body.Message, "connection refused")
		})
	}
}

func TestGetOrder_MalformedID(t *testing.T) {
	e := newRouter(t, httpadapter.Handlers{GetOrder: new(MockOrderGetter)})
	who := &identity{id: kernel.NewUUID(), role: actor.RoleAdmin}

	rec := serve(e, request(http.MethodGet, "/api/v1/orders/not-a-uuid", "", who))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestTransitionOrder_RoutesByEvent(t *testing.T) {
	restaurantID := kernel.NewUUID()
	operator := &identity{id: kernel.NewUUID(), role: actor.RoleRestaurantOperator, restaurantID: &restaurantID}
	confirmed := storedOrder(t, order.Confirmed, false)
	delivered := storedOrder(t, order.Delivered, true)

	advancer := new(MockOrderAdvancer)
	advancer.On("Handle", mock.Anything, mock.MatchedBy(func(c commands.AdvanceOrderCommand) bool {
		return c.Event() == order.EventConfirm && c.OrderID().IsEqual(confirmed.ID())
	})).Return(confirmed, nil).Once()
	deliverer := new(MockOrderDeliverer)
	deliverer.On("Handle", mock.Anything, mock.MatchedBy(func(c commands.DeliverOrderCommand) bool {
		return c.OrderID().IsEqual(delivered.ID())
	})).Return(delivered, nil).Once()

	e := newRouter(t, httpadapter.Handlers{AdvanceOrder: advancer, DeliverOrder: deliverer})

	rec := serve(e, request(http.MethodPost, "/api/v1/orders/"+confirmed.ID().String()+"/transitions",
		`{"event":"confirm"}`, operator))
	require.Equal(t, http.StatusOK, rec.Code)

	agentID := delivered.Assignment().AgentID()
	rec = serve(e, request(http.MethodPost, "/api/v1/orders/"+delivered.ID().String()+"/transitions",
		`{"event":"deliver"}`, &identity{id: agentID, role: actor.RoleDeliveryAgent}))
	require.Equal(t, http.StatusOK, rec.Code)

	var body api.Order
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.NotNil(t, body.DeliveryAgent)
	assert.Equal(t, agentID.String(), body.DeliveryAgent.Id.String())

	advancer.AssertExpectations(t)
	deliverer.AssertExpectations(t)
}

func TestTransitionOrder_RejectedInput(t *testing.T) {
	advancer := new(MockOrderAdvancer)
	advancer.On("Handle", mock.Anything, mock.Anything).Return(nil, &order.TransitionError{
		From: order.Delivered, Event: order.EventCancel,
	})
	e := newRouter(t, httpadapter.Handlers{AdvanceOrder: advancer})
	who := &identity{id: kernel.NewUUID(), role: actor.RoleAdmin}
	target := "/api/v1/orders/" + kernel.NewUUID().String() + "/transitions"

	rec := serve(e, request(http.MethodPost, target, `{"event":"teleport"}`, who))
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = serve(e, request(http.MethodPost, target, `{}`, who))
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = serve(e, request(http.MethodPost, target, `{"event":"cancel"}`, who))
	assert.Equal(t, http.StatusConflict, rec.Code)

	rec = serve(e, request(http.MethodPost, target, `{"event":"assign"}`, who))
	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.Contains(t, decodeError(t, rec).Message, "claim")
	advancer.AssertNumberOfCalls(t, "Handle", 1)
}

func TestClaimOrder_SelfClaimAndPushAssign(t *testing.T) {
	claimed := storedOrder(t, order.OutForDelivery, true)
	agentID := claimed.Assignment().AgentID()

	claimer := new(MockOrderClaimer)
	claimer.On("Handle", mock.Anything, mock.MatchedBy(func(c commands.ClaimOrderCommand) bool {
		return c.AgentID().IsEqual(agentID) && c.Actor().ID().IsEqual(agentID)
	})).Return(claimed, nil).Once()

	admin := kernel.NewUUID()
	claimer.On("Handle", mock.Anything, mock.MatchedBy(func(c commands.ClaimOrderCommand) bool {
		return c.AgentID().IsEqual(agentID) && c.Actor().ID().IsEqual(admin)
	})).Return(nil, order.ErrAlreadyClaimed).Once()

	e := newRouter(t, httpadapter.Handlers{ClaimOrder: claimer})
	target := "/api/v1/orders/" + claimed.ID().String() + "/claim"

	rec := serve(e, request(http.MethodPost, target, "", &identity{id: agentID, role: actor.RoleDeliveryAgent}))
	require.Equal(t, http.StatusOK, rec.Code)

	rec = serve(e, request(http.MethodPost, target, `{"agentId":"`+agentID.String()+`"}`,
		&identity{id: admin, role: actor.RoleAdmin}))
	assert.Equal(t, http.StatusConflict, rec.Code)

	claimer.AssertExpectations(t)
}

func TestHandOffCart_ProblemsAreUnprocessable(t *testing.T) {
	customer := &identity{id: kernel.NewUUID(), role: actor.RoleCustomer}
	restaurantID := kernel.NewUUID()
	itemID := kernel.NewUUID()

	corrected := cart.ClientCart{
		RestaurantID: restaurantID,
		Lines:        []cart.Line{{MenuItemID: itemID, Quantity: 2, ClaimedPrice: decimal.NewFromInt(130)}},
		ClaimedTotal: decimal.NewFromInt(290),
	}
	verr := &cart.ValidationError{
		Problems: []cart.Problem{{
			Code:       cart.ProblemPriceChanged,
			Message:    "price changed from 120.00 to 130.00",
			MenuItemID: &itemID,
		}},
		Subtotal:  decimal.NewFromInt(260),
		Corrected: &corrected,
	}

	handoff := new(MockCartHandoff)
	handoff.On("Handle", mock.Anything, mock.AnythingOfType("commands.HandOffCartCommand")).
		Return(commands.HandOffCartResult{}, verr).Once()

	e := newRouter(t, httpadapter.Handlers{HandOffCart: handoff})
	body := `{"restaurantId":"` + restaurantID.String() + `","lines":[{"menuItemId":"` + itemID.String() +
		`","quantity":2,"claimedPrice":120}],"claimedTotal":270}`

	rec := serve(e, request(http.MethodPost, "/api/v1/cart/handoffs", body, customer))

	require.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	var problems api.CartProblems
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &problems))
	require.Len(t, problems.Problems, 1)
	assert.Equal(t, "price_changed", problems.Problems[0].Code)
	require.NotNil(t, problems.Problems[0].MenuItemId)
	assert.Equal(t, itemID.String(), problems.Problems[0].MenuItemId.String())
	require.NotNil(t, problems.Corrected)
	assert.True(t, decimal.NewFromInt(130).Equal(problems.Corrected.Lines[0].ClaimedPrice))
	assert.True(t, decimal.NewFromInt(260).Equal(problems.Subtotal))
	handoff.AssertExpectations(t)
}

func TestCreateOrder_IncompleteCheckoutIsRejected(t *testing.T) {
	e := newRouter(t, httpadapter.Handlers{CreateOrder: nil})
	customer := &identity{id: kernel.NewUUID(), role: actor.RoleCustomer}

	rec := serve(e, request(http.MethodPost, "/api/v1/orders",
		`{"handoffId":"`+kernel.NewUUID().String()+`","paymentMethod":"cash"}`, customer))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestSetAgentAvailability(t *testing.T) {
	agentID := kernel.NewUUID()
	setter := new(MockAvailabilitySetter)
	setter.On("Handle", mock.Anything, mock.MatchedBy(func(c commands.SetAgentAvailabilityCommand) bool {
		return c.AgentID().IsEqual(agentID) && !c.Available()
	})).Return(nil).Once()

	e := newRouter(t, httpadapter.Handlers{SetAvailability: setter})
	rec := serve(e, request(http.MethodPut, "/api/v1/agents/"+agentID.String()+"/availability",
		`{"available":false}`, &identity{id: agentID, role: actor.RoleDeliveryAgent}))

	assert.Equal(t, http.StatusNoContent, rec.Code)
	setter.AssertExpectations(t)
}

func TestCORSPreflight(t *testing.T) {
	e := newRouter(t, httpadapter.Handlers{})

	req := httptest.NewRequest(http.MethodOptions, "/api/v1/orders", nil)
	req.Header.Set("Origin", "https://app.example.com")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)
	req.Header.Set("Access-Control-Request-Headers", httpadapter.HeaderActorID)
	rec := serve(e, req)

	assert.Equal(t, "https://app.example.com", rec.Header().Get("Access-Control-Allow-Origin"))
}

func TestSwaggerDocument(t *testing.T) {
	e := newRouter(t, httpadapter.Handlers{})

	rec := serve(e, request(http.MethodGet, "/swagger/doc.json", "", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "/api/v1/orders/{orderId}/claim")
}
