package http

import (
	"errors"
	"net/http"
	"time"

	_ "mealdelivery/internal/adapters/in/http/docs" // registers the swagger spec

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	echoSwagger "github.com/swaggo/echo-swagger"
	"go.uber.org/zap"
)

// RequestObserver records one served request.
type RequestObserver interface {
	ObserveHTTP(handler string, status int, elapsed time.Duration)
}

// RouterConfig carries what the router needs besides the server itself.
// MetricsHandler is mounted on /metrics when set.
type RouterConfig struct {
	Observer       RequestObserver
	MetricsHandler http.Handler
	Logger         *zap.Logger
}

// NewRouter builds the echo instance serving the API, health, metrics and
// swagger endpoints.
func NewRouter(server ServerInterface, cfg RouterConfig) *echo.Echo {
	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	e.Use(middleware.Recover())
	e.Use(requestLogger(logger))
	if cfg.Observer != nil {
		e.Use(observeRequests(cfg.Observer))
	}

	e.GET("/health", func(c echo.Context) error {
		return c.String(http.StatusOK, "Healthy")
	})
	if cfg.MetricsHandler != nil {
		e.GET("/metrics", echo.WrapHandler(cfg.MetricsHandler))
	}
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	RegisterHandlers(e, server)
	return e
}

func observeRequests(observer RequestObserver) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			started := time.Now()
			err := next(c)

			// c.Path() is the route template, which keeps label cardinality bounded.
			observer.ObserveHTTP(c.Path(), responseStatus(c, err), time.Since(started))
			return err
		}
	}
}

// responseStatus is the status the client gets once echo's error handler has
// run for err.
func responseStatus(c echo.Context, err error) int {
	if err == nil || c.Response().Committed {
		return c.Response().Status
	}
	var httpErr *echo.HTTPError
	if errors.As(err, &httpErr) {
		return httpErr.Code
	}
	return http.StatusInternalServerError
}

func requestLogger(logger *zap.Logger) echo.MiddlewareFunc {
	return middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogURI:    true,
		LogMethod: true,
		LogStatus: true,
		LogError:  true,
		LogValuesFunc: func(_ echo.Context, v middleware.RequestLoggerValues) error {
			fields := []zap.Field{
				zap.String("method", v.Method),
				zap.String("uri", v.URI),
				zap.Int("status", v.Status),
			}
			if v.Error != nil {
				logger.Warn("Request failed", append(fields, zap.Error(v.Error))...)
				return nil
			}
			logger.Debug("Request served", fields...)
			return nil
		},
	})
}
