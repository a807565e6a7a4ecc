package api

import (
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/oapi-codegen/runtime"
	openapi_types "github.com/oapi-codegen/runtime/types"
)

// ServerInterface represents all server handlers.
type ServerInterface interface {
	// (POST /api/v1/cart/revalidate)
	RevalidateCart(ctx echo.Context) error
	// (POST /api/v1/cart/handoffs)
	HandOffCart(ctx echo.Context) error
	// (GET /api/v1/orders)
	ListOrders(ctx echo.Context) error
	// (POST /api/v1/orders)
	CreateOrder(ctx echo.Context) error
	// (GET /api/v1/orders/{orderId})
	GetOrder(ctx echo.Context, orderId openapi_types.UUID) error
	// (POST /api/v1/orders/{orderId}/transitions)
	TransitionOrder(ctx echo.Context, orderId openapi_types.UUID) error
	// (POST /api/v1/orders/{orderId}/claim)
	ClaimOrder(ctx echo.Context, orderId openapi_types.UUID) error
	// (GET /api/v1/deliveries/unclaimed)
	GetUnclaimedOrders(ctx echo.Context) error
	// (GET /api/v1/deliveries/active)
	GetActiveDeliveries(ctx echo.Context) error
	// (GET /api/v1/agents/available)
	GetAvailableAgents(ctx echo.Context) error
	// (PUT /api/v1/agents/{agentId}/availability)
	SetAgentAvailability(ctx echo.Context, agentId openapi_types.UUID) error
	// (GET /api/v1/feed)
	StreamOrders(ctx echo.Context) error
	// (GET /health)
	Health(ctx echo.Context) error
}

// ServerInterfaceWrapper converts echo contexts to parameters.
type ServerInterfaceWrapper struct {
	Handler ServerInterface
}

func (w *ServerInterfaceWrapper) RevalidateCart(ctx echo.Context) error {
	return w.Handler.RevalidateCart(ctx)
}

func (w *ServerInterfaceWrapper) HandOffCart(ctx echo.Context) error {
	return w.Handler.HandOffCart(ctx)
}

func (w *ServerInterfaceWrapper) ListOrders(ctx echo.Context) error {
	return w.Handler.ListOrders(ctx)
}

func (w *ServerInterfaceWrapper) CreateOrder(ctx echo.Context) error {
	return w.Handler.CreateOrder(ctx)
}

func (w *ServerInterfaceWrapper) GetOrder(ctx echo.Context) error {
	orderId, err := bindUUID(ctx, "orderId")
	if err != nil {
		return err
	}
	return w.Handler.GetOrder(ctx, orderId)
}

func (w *ServerInterfaceWrapper) TransitionOrder(ctx echo.Context) error {
	orderId, err := bindUUID(ctx, "orderId")
	if err != nil {
		return err
	}
	return w.Handler.TransitionOrder(ctx, orderId)
}

func (w *ServerInterfaceWrapper) ClaimOrder(ctx echo.Context) error {
	orderId, err := bindUUID(ctx, "orderId")
	if err != nil {
		return err
	}
	return w.Handler.ClaimOrder(ctx, orderId)
}

func (w *ServerInterfaceWrapper) GetUnclaimedOrders(ctx echo.Context) error {
	return w.Handler.GetUnclaimedOrders(ctx)
}

func (w *ServerInterfaceWrapper) GetActiveDeliveries(ctx echo.Context) error {
	return w.Handler.GetActiveDeliveries(ctx)
}

func (w *ServerInterfaceWrapper) GetAvailableAgents(ctx echo.Context) error {
	return w.Handler.GetAvailableAgents(ctx)
}

func (w *ServerInterfaceWrapper) SetAgentAvailability(ctx echo.Context) error {
	agentId, err := bindUUID(ctx, "agentId")
	if err != nil {
		return err
	}
	return w.Handler.SetAgentAvailability(ctx, agentId)
}

func (w *ServerInterfaceWrapper) StreamOrders(ctx echo.Context) error {
	return w.Handler.StreamOrders(ctx)
}

func (w *ServerInterfaceWrapper) Health(ctx echo.Context) error {
	return w.Handler.Health(ctx)
}

func bindUUID(ctx echo.Context, name string) (openapi_types.UUID, error) {
	var id openapi_types.UUID
	err := runtime.BindStyledParameterWithOptions("simple", name, ctx.Param(name), &id,
		runtime.BindStyledParameterOptions{ParamLocation: runtime.ParamLocationPath, Explode: false, Required: true})
	if err != nil {
		return id, echo.NewHTTPError(http.StatusBadRequest, fmt.Sprintf("Invalid format for parameter %s: %s", name, err))
	}
	return id, nil
}

// EchoRouter is the subset of *echo.Echo and *echo.Group the routes are registered on.
type EchoRouter interface {
	GET(path string, h echo.HandlerFunc, m ...echo.MiddlewareFunc) *echo.Route
	POST(path string, h echo.HandlerFunc, m ...echo.MiddlewareFunc) *echo.Route
	PUT(path string, h echo.HandlerFunc, m ...echo.MiddlewareFunc) *echo.Route
}

// RegisterHandlers adds each server route to the EchoRouter.
func RegisterHandlers(router EchoRouter, si ServerInterface) {
	RegisterHandlersWithBaseURL(router, si, "")
}

// RegisterHandlersWithBaseURL registers the routes under baseURL.
func RegisterHandlersWithBaseURL(router EchoRouter, si ServerInterface, baseURL string) {
	w := ServerInterfaceWrapper{Handler: si}

	router.POST(baseURL+"/api/v1/cart/revalidate", w.RevalidateCart)
	router.POST(baseURL+"/api/v1/cart/handoffs", w.HandOffCart)
	router.GET(baseURL+"/api/v1/orders", w.ListOrders)
	router.POST(baseURL+"/api/v1/orders", w.CreateOrder)
	router.GET(baseURL+"/api/v1/orders/:orderId", w.GetOrder)
	router.POST(baseURL+"/api/v1/orders/:orderId/transitions", w.TransitionOrder)
	router.POST(baseURL+"/api/v1/orders/:orderId/claim", w.ClaimOrder)
	router.GET(baseURL+"/api/v1/deliveries/unclaimed", w.GetUnclaimedOrders)
	router.GET(baseURL+"/api/v1/deliveries/active", w.GetActiveDeliveries)
	router.GET(baseURL+"/api/v1/agents/available", w.GetAvailableAgents)
	router.PUT(baseURL+"/api/v1/agents/:agentId/availability", w.SetAgentAvailability)
	router.GET(baseURL+"/api/v1/feed", w.StreamOrders)
	router.GET(baseURL+"/health", w.Health)
}
