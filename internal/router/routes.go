package router

import (
	"github.com/labstack/echo/v4"
	echoMiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/octobees/template-finder/internal/config"
	"github.com/octobees/template-finder/internal/handler"
	middlewarepkg "github.com/octobees/template-finder/internal/middleware"
	"github.com/octobees/template-finder/internal/transport"
)

// Handlers aggregates HTTP handlers used by the router.
type Handlers struct {
	Templates *handler.TemplatesHandler
}

// Register wires all HTTP routes for the API.
func Register(e *echo.Echo, cfg *config.Config, handlers Handlers) {
	e.GET("/healthz", handler.Health)

	if cfg != nil && cfg.MetricsEnabled {
		e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))
	}

	if handlers.Templates != nil {
		e.POST(transport.SearchTemplatesPath, handlers.Templates.Search)
		e.OPTIONS(transport.SearchTemplatesPath, handlers.Templates.Preflight)
	}
}

// NewEcho builds the echo server with the shared middleware chain.
func NewEcho(cfg *config.Config, svc transport.Searcher, logger *zap.Logger) *echo.Echo {
	if logger == nil {
		logger = zap.NewNop()
	}
	policy := transport.NewPolicy(cfg)

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.HTTPErrorHandler = handler.ErrorHandler(logger)

	e.Use(middlewarepkg.RequestID())
	e.Use(middlewarepkg.Logging(logger))
	e.Use(middlewarepkg.Metrics())
	e.Use(middlewarepkg.CORS(policy))
	e.Use(echoMiddleware.Recover())

	Register(e, cfg, Handlers{
		Templates: handler.NewTemplatesHandler(svc, policy, logger),
	})
	return e
}
