package http

import (
	"log/slog"
	"net/http"

	"marketplace/internal/adapters/in/http/api"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/rs/cors"
	echoSwagger "github.com/swaggo/echo-swagger"
)

// NewRouter builds the echo instance serving s: request logging, CORS for the browser apps,
// validation against the OpenAPI document and the Swagger UI under /swagger/.
func NewRouter(s *Server, allowedOrigins []string, logger *slog.Logger) (*echo.Echo, error) {
	doc, err := api.GetSwagger()
	if err != nil {
		return nil, err
	}
	validator, err := api.RequestValidator(doc)
	if err != nil {
		return nil, err
	}
	if err = api.RegisterSwaggerDoc(doc); err != nil {
		return nil, err
	}

	e := echo.New()
	e.HideBanner = true
	e.HTTPErrorHandler = httpErrorHandler

	e.Use(middleware.Recover())
	e.Use(requestLogger(logger.With("component", "http")))
	e.Use(echo.WrapMiddleware(cors.New(cors.Options{
		AllowedOrigins: allowedOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodOptions},
		AllowedHeaders: []string{
			echo.HeaderContentType,
			HeaderActorID,
			HeaderActorRole,
			HeaderActorRestaurantID,
		},
	}).Handler))
	e.Use(validator)

	e.GET("/swagger/*", echoSwagger.WrapHandler)
	api.RegisterHandlers(e, s)

	return e, nil
}

func requestLogger(logger *slog.Logger) echo.MiddlewareFunc {
	return middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogMethod:   true,
		LogURI:      true,
		LogStatus:   true,
		LogLatency:  true,
		LogError:    true,
		HandleError: true,
		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			attrs := []slog.Attr{
				slog.String("method", v.Method),
				slog.String("uri", v.URI),
				slog.Int("status", v.Status),
				slog.Duration("latency", v.Latency),
			}
			level := slog.LevelInfo
			if v.Error != nil {
				level = slog.LevelWarn
				attrs = append(attrs, slog.String("error", v.Error.Error()))
			}
			if v.Status >= http.StatusInternalServerError {
				level = slog.LevelError
			}
			logger.LogAttrs(c.Request().Context(), level, "request", attrs...)
			return nil
		},
	})
}
