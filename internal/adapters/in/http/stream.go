package http

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"marketplace/internal/adapters/in/http/api"
	"marketplace/internal/core/application/usecases/queries"

	"github.com/labstack/echo/v4"
)

const keepAliveInterval = 25 * time.Second

// StreamOrders handles GET /api/v1/feed - a server-sent event stream of every change to the
// orders the actor watches. It starts with the current snapshot and ends when the client goes
// away.
func (s *Server) StreamOrders(ctx echo.Context) error {
	a, err := actorFrom(ctx)
	if err != nil {
		return err
	}

	reqCtx := ctx.Request().Context()
	sub, err := s.h.Feed.Subscribe(reqCtx, a)
	if err != nil {
		return writeError(ctx, err)
	}
	defer sub.Close()

	w := ctx.Response()
	w.Header().Set(echo.HeaderContentType, "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.WriteHeader(http.StatusOK)
	w.Flush()

	keepAlive := time.NewTicker(keepAliveInterval)
	defer keepAlive.Stop()

	for {
		select {
		case u, ok := <-sub.Updates():
			if !ok {
				return nil
			}
			if err = writeEvent(w, u.Order, u.Visible); err != nil {
				return nil
			}
		case <-keepAlive.C:
			if _, err = fmt.Fprint(w, ": keep-alive\n\n"); err != nil {
				return nil
			}
			w.Flush()
		case <-reqCtx.Done():
			return nil
		}
	}
}

func writeEvent(w *echo.Response, view queries.OrderView, visible bool) error {
	data, err := json.Marshal(api.OrderUpdate{Visible: visible, Order: orderToAPI(view)})
	if err != nil {
		return err
	}
	if _, err = fmt.Fprintf(w, "id: %s:%d\nevent: order\ndata: %s\n\n", view.ID, view.Version, data); err != nil {
		return err
	}
	w.Flush()
	return nil
}
