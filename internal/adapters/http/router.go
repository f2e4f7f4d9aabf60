package http

import (
	"html/template"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/jsamuelsen/associate-quotes/internal/adapters/http/dto"
	"github.com/jsamuelsen/associate-quotes/internal/adapters/http/handlers"
	"github.com/jsamuelsen/associate-quotes/internal/adapters/http/middleware"
	"github.com/jsamuelsen/associate-quotes/internal/platform/config"
	"github.com/jsamuelsen/associate-quotes/internal/platform/telemetry"
)

// DefaultRequestTimeout is the default timeout for API requests.
const DefaultRequestTimeout = 30 * time.Second

// RouterConfig contains configuration for setting up the router.
type RouterConfig struct {
	// Logger is the structured logger for request logging.
	Logger *slog.Logger

	// AppConfig names the service in traces.
	AppConfig *config.AppConfig

	// SessionConfig locates the partner profile and associate ID on requests.
	SessionConfig *config.SessionConfig

	// ProfileParser verifies the signed partner profile.
	ProfileParser middleware.ProfileParser

	// CORSOrigins lists browser origins allowed to call the API. Empty disables CORS.
	CORSOrigins []string

	// HealthHandler handles health check endpoints.
	HealthHandler *handlers.HealthHandler

	// QuotesHandler serves the quotes list. Nil leaves only the probes.
	QuotesHandler *handlers.QuotesHandler

	// Templates renders HTML pages. Required when QuotesHandler is set.
	Templates *template.Template

	// Timeout is the default request timeout.
	Timeout time.Duration
}

// SetupRouter configures all routes and middleware on the Gin engine.
// Middleware is applied in the following order (first to last):
//  1. Recovery - catch panics first
//  2. Logging - seeds the context logger, logs after the chain returns
//  3. Request ID and Correlation ID
//  4. OpenTelemetry - tracing, then metrics
//  5. CORS - when origins are configured
//  6. Session - partner profile and associate ID
//  7. Timeout - on the quotes routes only
//
// Route groups:
//   - /-/ (internal): probes, no session required
//   - /api/v1/ (public API): JSON and export
//   - / (pages): the HTML list page
func SetupRouter(engine *gin.Engine, cfg RouterConfig) {
	engine.Use(
		middleware.Recovery(nil),
		middleware.Logging(cfg.Logger),
		middleware.RequestID(),
		middleware.CorrelationID(),
		telemetry.TracingMiddleware(cfg.AppConfig.Name),
		telemetry.Middleware(),
	)

	if len(cfg.CORSOrigins) > 0 {
		engine.Use(cors.New(corsConfig(cfg.CORSOrigins, cfg.SessionConfig)))
	}

	if cfg.SessionConfig != nil && cfg.ProfileParser != nil {
		engine.Use(middleware.Session(cfg.SessionConfig, cfg.ProfileParser))
	}

	engine.NoRoute(func(c *gin.Context) {
		handlers.RespondWithErrorCode(c, dto.ErrorCodeNotFound, "route not found")
	})

	if cfg.HealthHandler != nil {
		cfg.HealthHandler.RegisterHealthRoutesOnEngine(engine)
	}

	if cfg.QuotesHandler != nil {
		setupQuoteRoutes(engine, cfg)
	}
}

// setupQuoteRoutes registers the quotes list routes behind the request timeout.
func setupQuoteRoutes(engine *gin.Engine, cfg RouterConfig) {
	if cfg.Templates != nil {
		engine.SetHTMLTemplate(cfg.Templates)
	}

	var scoped []gin.HandlerFunc
	if cfg.Timeout > 0 {
		scoped = append(scoped, middleware.Timeout(cfg.Timeout))
	}

	if cfg.SessionConfig != nil && cfg.SessionConfig.RequireAssociateID {
		scoped = append(scoped, middleware.RequireAssociate())
	}

	apiV1 := engine.Group("/api/v1", scoped...)
	pages := engine.Group("", scoped...)

	cfg.QuotesHandler.RegisterRoutes(apiV1, pages)
}

// corsConfig allows the configured origins to send the session headers.
func corsConfig(origins []string, session *config.SessionConfig) cors.Config {
	c := cors.DefaultConfig()
	c.AllowOrigins = origins
	c.AllowCredentials = true
	c.AllowMethods = []string{http.MethodGet, http.MethodOptions}
	c.AddAllowHeaders(middleware.HeaderRequestID, middleware.HeaderCorrelationID)
	c.AddExposeHeaders(middleware.HeaderRequestID, middleware.HeaderCorrelationID, "X-Trace-ID", "Content-Disposition")

	if session != nil {
		c.AddAllowHeaders(session.ProfileHeader, session.AssociateIDHeader)
	}

	return c
}

// SetupMinimalRouter sets up a minimal router with just health endpoints.
// Useful for testing or lightweight deployments.
func SetupMinimalRouter(engine *gin.Engine, logger *slog.Logger, healthHandler *handlers.HealthHandler) {
	engine.Use(
		middleware.Recovery(nil),
		middleware.Logging(logger),
		middleware.RequestID(),
	)

	if healthHandler != nil {
		healthHandler.RegisterHealthRoutesOnEngine(engine)
	}
}

// NewDefaultRouterConfig creates a RouterConfig from the loaded configuration.
func NewDefaultRouterConfig(
	logger *slog.Logger,
	cfg *config.Config,
	healthHandler *handlers.HealthHandler,
) RouterConfig {
	timeout := cfg.Server.RequestTimeout
	if timeout == 0 {
		timeout = DefaultRequestTimeout
	}

	return RouterConfig{
		Logger:        logger,
		AppConfig:     &cfg.App,
		SessionConfig: &cfg.Session,
		CORSOrigins:   cfg.Server.CORSOrigins,
		HealthHandler: healthHandler,
		Timeout:       timeout,
	}
}
