package api

import (
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	echoSwagger "github.com/swaggo/echo-swagger"

	_ "github.com/99minutos/auth-gateway/docs"
	"github.com/99minutos/auth-gateway/internal/api/gateway"
	"github.com/99minutos/auth-gateway/internal/api/handler"
	"github.com/99minutos/auth-gateway/internal/api/middleware"
)

// RouterDeps are the collaborators the HTTP surface needs. Redis and Limiter
// are nil when Redis is not configured.
type RouterDeps struct {
	Dispatcher *gateway.Dispatcher
	Redis      *redis.Client
	Limiter    middleware.Limiter
	Log        zerolog.Logger
	// Registry receives the HTTP metrics. Nil means the default registry.
	Registry *prometheus.Registry
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(deps RouterDeps) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HTTPErrorHandler = NewHTTPErrorHandler(deps.Log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(middleware.RequestLogger(deps.Log))
	e.Use(echomiddleware.Logger())
	var (
		registerer prometheus.Registerer = prometheus.DefaultRegisterer
		gatherer   prometheus.Gatherer   = prometheus.DefaultGatherer
	)
	if deps.Registry != nil {
		registerer = deps.Registry
		gatherer = prometheus.Gatherers{prometheus.DefaultGatherer, deps.Registry}
	}
	e.Use(echoprometheus.NewMiddlewareWithConfig(echoprometheus.MiddlewareConfig{
		Namespace:  "authgw",
		Registerer: registerer,
	}))

	// --- Action endpoint ---
	gatewayHandler := handler.NewGatewayHandler(deps.Dispatcher)
	var actionMW []echo.MiddlewareFunc
	if deps.Limiter != nil {
		actionMW = append(actionMW, middleware.RateLimit(deps.Limiter, deps.Log))
	}
	e.POST("/", gatewayHandler.Handle, actionMW...)

	// --- Health probes ---
	healthHandler := handler.NewHealthHandler()
	readinessHandler := handler.NewReadinessHandler(deps.Redis)

	e.GET("/health", healthHandler.Liveness)            // liveness  – is the process alive?
	e.GET("/health/ready", readinessHandler.Readiness) // readiness – are dependencies up?

	// --- Operations ---
	e.GET("/metrics", echoprometheus.NewHandlerWithConfig(echoprometheus.HandlerConfig{Gatherer: gatherer}))
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	return e
}
