package http

import (
	"errors"
	"fmt"
	"net/http"

	"marketplace/internal/adapters/in/http/api"
	"marketplace/internal/core/domain/model/actor"
	"marketplace/internal/core/domain/model/cart"
	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/order"
	"marketplace/internal/pkg/errs"

	"github.com/labstack/echo/v4"
)

// Identity headers set by the identity provider in front of the service.
const (
	HeaderActorID           = "X-Actor-Id"
	HeaderActorRole         = "X-Actor-Role"
	HeaderActorRestaurantID = "X-Actor-Restaurant-Id"
)

// actorFrom reads the acting identity. A request without a usable identity fails with 401.
func actorFrom(ctx echo.Context) (actor.Actor, error) {
	h := ctx.Request().Header

	id, err := kernel.ParseUUID(h.Get(HeaderActorID))
	if err != nil {
		return actor.Actor{}, unauthorized("Missing or invalid "+HeaderActorID)
	}
	role, err := actor.ParseRole(h.Get(HeaderActorRole))
	if err != nil {
		return actor.Actor{}, unauthorized("Missing or invalid "+HeaderActorRole)
	}

	var restaurantID *kernel.UUID
	if raw := h.Get(HeaderActorRestaurantID); raw != "" {
		rid, parseErr := kernel.ParseUUID(raw)
		if parseErr != nil {
			return actor.Actor{}, unauthorized("Invalid "+HeaderActorRestaurantID)
		}
		restaurantID = &rid
	}

	a, err := actor.NewActor(id, role, restaurantID)
	if err != nil {
		return actor.Actor{}, unauthorized(err.Error())
	}
	return a, nil
}

func unauthorized(message string) error {
	return echo.NewHTTPError(http.StatusUnauthorized, message)
}

// statusOf maps the core error taxonomy to HTTP.
func statusOf(err error) int {
	switch {
	case errors.Is(err, cart.ErrCartInvalid):
		return http.StatusUnprocessableEntity
	case errors.Is(err, errs.ErrPermissionDenied):
		return http.StatusForbidden
	case errors.Is(err, errs.ErrObjectNotFound):
		return http.StatusNotFound
	case errors.Is(err, order.ErrAlreadyClaimed),
		errors.Is(err, order.ErrInvalidTransition),
		errors.Is(err, errs.ErrConcurrentModification):
		return http.StatusConflict
	case errors.Is(err, errs.ErrValueIsInvalid),
		errors.Is(err, errs.ErrValueIsRequired),
		errors.Is(err, errs.ErrValueIsOutOfRange):
		return http.StatusBadRequest
	case errors.Is(err, errs.ErrPersistence):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

// writeError answers with the status of err. Cart problems carry the whole problem list;
// internal failures hide their cause.
func writeError(ctx echo.Context, err error) error {
	status := statusOf(err)

	var verr *cart.ValidationError
	if errors.As(err, &verr) {
		return ctx.JSON(status, cartProblemsToAPI(status, verr))
	}

	message := err.Error()
	switch status {
	case http.StatusInternalServerError:
		ctx.Logger().Error(err)
		message = "Internal server error"
	case http.StatusServiceUnavailable:
		ctx.Logger().Error(err)
		message = "Storage is unavailable, try again later"
	}
	return errorResponse(ctx, status, message)
}

func errorResponse(ctx echo.Context, status int, message string) error {
	return ctx.JSON(status, api.Error{Code: status, Message: message})
}

// httpErrorHandler renders errors that reach echo, such as failed request validation or a
// missing identity, in the same shape as the handlers' own errors.
func httpErrorHandler(err error, ctx echo.Context) {
	if ctx.Response().Committed {
		return
	}

	status := http.StatusInternalServerError
	message := http.StatusText(status)
	var he *echo.HTTPError
	if errors.As(err, &he) {
		status = he.Code
		message = fmt.Sprint(he.Message)
	} else {
		ctx.Logger().Error(err)
	}

	if ctx.Request().Method == http.MethodHead {
		err = ctx.NoContent(status)
	} else {
		err = errorResponse(ctx, status, message)
	}
	if err != nil {
		ctx.Logger().Error(err)
	}
}
