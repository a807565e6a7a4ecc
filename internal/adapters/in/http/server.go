package http

import (
	"context"
	"net/http"

	"marketplace/internal/adapters/in/http/api"
	"marketplace/internal/core/application/feed"
	"marketplace/internal/core/application/usecases/commands"
	"marketplace/internal/core/application/usecases/queries"
	"marketplace/internal/core/domain/model/actor"
	"marketplace/internal/core/domain/model/cart"
	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/order"

	"github.com/labstack/echo/v4"
	openapi_types "github.com/oapi-codegen/runtime/types"
)

type (
	CartRevalidator interface {
		Handle(ctx context.Context, query queries.RevalidateCartQuery) (*cart.ValidatedCart, error)
	}
	CartHandoff interface {
		Handle(ctx context.Context, cmd commands.HandOffCartCommand) (commands.HandOffCartResult, error)
	}
	Checkout interface {
		Handle(ctx context.Context, cmd commands.CreateOrderCommand) (*order.Order, error)
	}
	OrderAdvancer interface {
		Handle(ctx context.Context, cmd commands.AdvanceOrderCommand) (*order.Order, error)
	}
	OrderDeliverer interface {
		Handle(ctx context.Context, cmd commands.DeliverOrderCommand) (*order.Order, error)
	}
	OrderClaimer interface {
		Handle(ctx context.Context, cmd commands.ClaimOrderCommand) (*order.Order, error)
	}
	AvailabilitySetter interface {
		Handle(ctx context.Context, cmd commands.SetAgentAvailabilityCommand) error
	}
	OrderGetter interface {
		Handle(ctx context.Context, query queries.GetOrderQuery) (queries.OrderView, error)
	}
	OrderLister interface {
		Handle(ctx context.Context, query queries.ListOrdersQuery) ([]queries.OrderView, error)
	}
	UnclaimedLister interface {
		Handle(ctx context.Context, query queries.GetUnclaimedOrdersQuery) ([]queries.OrderView, error)
	}
	AvailableAgentsLister interface {
		Handle(ctx context.Context, query queries.GetAvailableAgentsQuery) ([]queries.GetAvailableAgentsQueryResponse, error)
	}
	ActiveDeliveriesLister interface {
		Handle(ctx context.Context, query queries.GetActiveDeliveriesQuery) ([]queries.GetActiveDeliveriesQueryResponse, error)
	}
	FeedSubscriber interface {
		Subscribe(ctx context.Context, a actor.Actor) (*feed.Subscription, error)
	}
)

// Handlers are the use cases the server exposes.
type Handlers struct {
	// Command handlers
	HandOffCart     CartHandoff
	CreateOrder     Checkout
	AdvanceOrder    OrderAdvancer
	DeliverOrder    OrderDeliverer
	ClaimOrder      OrderClaimer
	SetAvailability AvailabilitySetter

	// Query handlers
	RevalidateCart   CartRevalidator
	GetOrder         OrderGetter
	ListOrders       OrderLister
	GetUnclaimed     UnclaimedLister
	AvailableAgents  AvailableAgentsLister
	ActiveDeliveries ActiveDeliveriesLister

	Feed FeedSubscriber
}

// Server implements api.ServerInterface.
// It coordinates between HTTP handlers and application use cases.
type Server struct {
	h Handlers
}

var _ api.ServerInterface = (*Server)(nil)

// NewServer creates a new HTTP server with the required command and query handlers.
func NewServer(h Handlers) *Server {
	return &Server{h: h}
}

// RevalidateCart handles POST /api/v1/cart/revalidate - prices a cart without storing it.
func (s *Server) RevalidateCart(ctx echo.Context) error {
	if _, err := actorFrom(ctx); err != nil {
		return err
	}
	var body api.ClientCart
	if err := ctx.Bind(&body); err != nil {
		return errorResponse(ctx, http.StatusBadRequest, "Invalid request body")
	}

	query, err := queries.NewRevalidateCartQuery(clientCartFromAPI(body))
	if err != nil {
		return writeError(ctx, err)
	}
	validated, err := s.h.RevalidateCart.Handle(ctx.Request().Context(), query)
	if err != nil {
		return writeError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, validatedCartToAPI(validated))
}

// HandOffCart handles POST /api/v1/cart/handoffs - revalidates a cart and keeps it for
// checkout.
func (s *Server) HandOffCart(ctx echo.Context) error {
	a, err := actorFrom(ctx)
	if err != nil {
		return err
	}
	var body api.ClientCart
	if err = ctx.Bind(&body); err != nil {
		return errorResponse(ctx, http.StatusBadRequest, "Invalid request body")
	}

	cmd, err := commands.NewHandOffCartCommand(a, clientCartFromAPI(body))
	if err != nil {
		return writeError(ctx, err)
	}
	result, err := s.h.HandOffCart.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return writeError(ctx, err)
	}

	return ctx.JSON(http.StatusCreated, api.Handoff{
		HandoffId: result.HandoffID.Bytes(),
		Cart:      validatedCartToAPI(result.Cart),
	})
}

// CreateOrder handles POST /api/v1/orders - checks out a handed-off cart.
func (s *Server) CreateOrder(ctx echo.Context) error {
	a, err := actorFrom(ctx)
	if err != nil {
		return err
	}
	var body api.Checkout
	if err = ctx.Bind(&body); err != nil {
		return errorResponse(ctx, http.StatusBadRequest, "Invalid request body")
	}

	method, err := order.ParsePaymentMethod(body.PaymentMethod)
	if err != nil {
		return writeError(ctx, err)
	}
	handoffID, err := fromAPIUUID(body.HandoffId)
	if err != nil {
		return writeError(ctx, err)
	}
	cmd, err := commands.NewCreateOrderCommand(a, handoffID, method, order.Delivery{
		Address:       body.DeliveryAddress,
		CustomerPhone: body.CustomerPhone,
		CustomerName:  body.CustomerName,
		Notes:         body.Notes,
	})
	if err != nil {
		return writeError(ctx, err)
	}

	created, err := s.h.CreateOrder.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return writeError(ctx, err)
	}

	return ctx.JSON(http.StatusCreated, orderToAPI(queries.NewOrderView(created)))
}

// ListOrders handles GET /api/v1/orders - orders visible to the actor.
func (s *Server) ListOrders(ctx echo.Context) error {
	a, err := actorFrom(ctx)
	if err != nil {
		return err
	}
	query, err := queries.NewListOrdersQuery(a)
	if err != nil {
		return writeError(ctx, err)
	}

	views, err := s.h.ListOrders.Handle(ctx.Request().Context(), query)
	if err != nil {
		return writeError(ctx, err)
	}
	return ctx.JSON(http.StatusOK, ordersToAPI(views))
}

// GetOrder handles GET /api/v1/orders/{orderId}.
func (s *Server) GetOrder(ctx echo.Context, orderId openapi_types.UUID) error {
	a, err := actorFrom(ctx)
	if err != nil {
		return err
	}
	id, err := fromAPIUUID(orderId)
	if err != nil {
		return writeError(ctx, err)
	}
	query, err := queries.NewGetOrderQuery(a, id)
	if err != nil {
		return writeError(ctx, err)
	}

	view, err := s.h.GetOrder.Handle(ctx.Request().Context(), query)
	if err != nil {
		return writeError(ctx, err)
	}
	return ctx.JSON(http.StatusOK, orderToAPI(view))
}

// TransitionOrder handles POST /api/v1/orders/{orderId}/transitions. Delivery goes through
// its own command; assignment is only possible through the claim endpoint.
func (s *Server) TransitionOrder(ctx echo.Context, orderId openapi_types.UUID) error {
	a, err := actorFrom(ctx)
	if err != nil {
		return err
	}
	var body api.Transition
	if err = ctx.Bind(&body); err != nil {
		return errorResponse(ctx, http.StatusBadRequest, "Invalid request body")
	}
	id, err := fromAPIUUID(orderId)
	if err != nil {
		return writeError(ctx, err)
	}
	event, err := order.ParseEvent(body.Event)
	if err != nil {
		return writeError(ctx, err)
	}

	var updated *order.Order
	if event == order.EventDeliver {
		cmd, cmdErr := commands.NewDeliverOrderCommand(a, id)
		if cmdErr != nil {
			return writeError(ctx, cmdErr)
		}
		updated, err = s.h.DeliverOrder.Handle(ctx.Request().Context(), cmd)
	} else {
		cmd, cmdErr := commands.NewAdvanceOrderCommand(a, id, event)
		if cmdErr != nil {
			return writeError(ctx, cmdErr)
		}
		updated, err = s.h.AdvanceOrder.Handle(ctx.Request().Context(), cmd)
	}
	if err != nil {
		return writeError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, orderToAPI(queries.NewOrderView(updated)))
}

// ClaimOrder handles POST /api/v1/orders/{orderId}/claim. An empty body is a self-claim.
func (s *Server) ClaimOrder(ctx echo.Context, orderId openapi_types.UUID) error {
	a, err := actorFrom(ctx)
	if err != nil {
		return err
	}
	var body api.Claim
	if ctx.Request().ContentLength != 0 {
		if err = ctx.Bind(&body); err != nil {
			return errorResponse(ctx, http.StatusBadRequest, "Invalid request body")
		}
	}
	id, err := fromAPIUUID(orderId)
	if err != nil {
		return writeError(ctx, err)
	}

	var cmd commands.ClaimOrderCommand
	if body.AgentId == nil {
		cmd, err = commands.NewSelfClaimCommand(a, id)
	} else {
		agentID, idErr := fromAPIUUID(*body.AgentId)
		if idErr != nil {
			return writeError(ctx, idErr)
		}
		cmd, err = commands.NewClaimOrderCommand(a, id, agentID)
	}
	if err != nil {
		return writeError(ctx, err)
	}

	claimed, err := s.h.ClaimOrder.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return writeError(ctx, err)
	}
	return ctx.JSON(http.StatusOK, orderToAPI(queries.NewOrderView(claimed)))
}

// GetUnclaimedOrders handles GET /api/v1/deliveries/unclaimed.
func (s *Server) GetUnclaimedOrders(ctx echo.Context) error {
	a, err := actorFrom(ctx)
	if err != nil {
		return err
	}
	query, err := queries.NewGetUnclaimedOrdersQuery(a)
	if err != nil {
		return writeError(ctx, err)
	}

	views, err := s.h.GetUnclaimed.Handle(ctx.Request().Context(), query)
	if err != nil {
		return writeError(ctx, err)
	}
	return ctx.JSON(http.StatusOK, ordersToAPI(views))
}

// GetActiveDeliveries handles GET /api/v1/deliveries/active.
func (s *Server) GetActiveDeliveries(ctx echo.Context) error {
	a, err := actorFrom(ctx)
	if err != nil {
		return err
	}
	query, err := queries.NewGetActiveDeliveriesQuery(a)
	if err != nil {
		return writeError(ctx, err)
	}

	deliveries, err := s.h.ActiveDeliveries.Handle(ctx.Request().Context(), query)
	if err != nil {
		return writeError(ctx, err)
	}

	response := make([]api.ActiveDelivery, len(deliveries))
	for i, d := range deliveries {
		response[i] = api.ActiveDelivery{
			OrderId:               d.OrderID.Bytes(),
			RestaurantId:          d.RestaurantID.Bytes(),
			AgentId:               d.AgentID.Bytes(),
			AgentName:             d.AgentName,
			PickupTime:            d.PickupTime,
			EstimatedDeliveryTime: d.EstimatedDeliveryTime,
		}
	}
	return ctx.JSON(http.StatusOK, response)
}

// GetAvailableAgents handles GET /api/v1/agents/available.
func (s *Server) GetAvailableAgents(ctx echo.Context) error {
	a, err := actorFrom(ctx)
	if err != nil {
		return err
	}
	query, err := queries.NewGetAvailableAgentsQuery(a)
	if err != nil {
		return writeError(ctx, err)
	}

	agents, err := s.h.AvailableAgents.Handle(ctx.Request().Context(), query)
	if err != nil {
		return writeError(ctx, err)
	}

	response := make([]api.Agent, len(agents))
	for i, ag := range agents {
		response[i] = api.Agent{
			Id:              ag.ID.Bytes(),
			Name:            ag.Name,
			Phone:           ag.Phone,
			Rating:          ag.Rating,
			TotalDeliveries: ag.TotalDeliveries,
		}
	}
	return ctx.JSON(http.StatusOK, response)
}

// SetAgentAvailability handles PUT /api/v1/agents/{agentId}/availability.
func (s *Server) SetAgentAvailability(ctx echo.Context, agentId openapi_types.UUID) error {
	a, err := actorFrom(ctx)
	if err != nil {
		return err
	}
	var body api.Availability
	if err = ctx.Bind(&body); err != nil {
		return errorResponse(ctx, http.StatusBadRequest, "Invalid request body")
	}
	id, err := fromAPIUUID(agentId)
	if err != nil {
		return writeError(ctx, err)
	}

	cmd, err := commands.NewSetAgentAvailabilityCommand(a, id, body.Available)
	if err != nil {
		return writeError(ctx, err)
	}
	if err = s.h.SetAvailability.Handle(ctx.Request().Context(), cmd); err != nil {
		return writeError(ctx, err)
	}
	return ctx.NoContent(http.StatusNoContent)
}

// Health handles GET /health.
func (s *Server) Health(ctx echo.Context) error {
	return ctx.String(http.StatusOK, "Healthy")
}

func fromAPIUUID(id openapi_types.UUID) (kernel.UUID, error) {
	return kernel.UUIDFromBytes(id[:])
}
