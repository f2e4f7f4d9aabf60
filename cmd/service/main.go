// Package main is the entry point for the associate quotes service.
package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	nethttp "net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"golang.org/x/sync/errgroup"

	"github.com/jsamuelsen/associate-quotes/internal/adapters/clients"
	"github.com/jsamuelsen/associate-quotes/internal/adapters/clients/acl"
	"github.com/jsamuelsen/associate-quotes/internal/adapters/http"
	"github.com/jsamuelsen/associate-quotes/internal/adapters/http/handlers"
	"github.com/jsamuelsen/associate-quotes/internal/adapters/identity"
	"github.com/jsamuelsen/associate-quotes/internal/app"
	"github.com/jsamuelsen/associate-quotes/internal/platform/config"
	"github.com/jsamuelsen/associate-quotes/internal/platform/logging"
	"github.com/jsamuelsen/associate-quotes/internal/platform/telemetry"
	"github.com/jsamuelsen/associate-quotes/internal/ports"
)

// Build-time variables, injected via ldflags.
// Example: go build -ldflags "-X main.Version=1.0.0 -X main.Commit=$(git rev-parse HEAD) -X main.BuildTime=$(date -u +%Y-%m-%dT%H:%M:%SZ)"
var (
	// Version is the semantic version of the service.
	Version = "dev"

	// Commit is the git commit SHA.
	Commit = "unknown"

	// BuildTime is the timestamp when the binary was built.
	BuildTime = "unknown"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// 1. Determine profile from environment
	profile := os.Getenv("APP_ENVIRONMENT")
	if profile == "" {
		profile = "local"
	}

	// 2. Load and validate configuration (fail fast)
	cfg, err := config.Load(profile)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}

	// 3. Initialize logging
	logger := logging.New(&logging.Config{
		Level:   cfg.Log.Level,
		Format:  cfg.Log.Format,
		Service: cfg.App.Name,
		Version: cfg.App.Version,
		File: logging.FileConfig{
			Enabled:    cfg.Log.File.Enabled,
			Path:       cfg.Log.File.Path,
			MaxSizeMB:  cfg.Log.File.MaxSizeMB,
			MaxBackups: cfg.Log.File.MaxBackups,
			MaxAgeDays: cfg.Log.File.MaxAgeDays,
			Compress:   cfg.Log.File.Compress,
		},
	})
	logging.SetDefault(logger)

	logger.Info("starting service",
		slog.String("version", Version),
		slog.String("commit", Commit),
		slog.String("environment", cfg.App.Environment),
	)

	// 4. Initialize telemetry (noop if disabled)
	telProvider, err := telemetry.New(ctx, &telemetry.Config{
		Enabled:      cfg.Telemetry.Enabled,
		Endpoint:     cfg.Telemetry.Endpoint,
		ServiceName:  cfg.Telemetry.ServiceName,
		Version:      cfg.App.Version,
		Environment:  cfg.App.Environment,
		SamplingRate: cfg.Telemetry.SamplingRate,
	})
	if err != nil {
		return fmt.Errorf("initializing telemetry: %w", err)
	}

	defer func() {
		if shutdownErr := telProvider.Shutdown(context.WithoutCancel(ctx)); shutdownErr != nil {
			logger.Error("telemetry shutdown error", slog.Any("error", shutdownErr))
		}
	}()

	// 5. Create health registry
	healthRegistry := ports.NewHealthRegistry()

	// 6. Create HTTP client for the quote service
	httpClient, err := clients.New(&clients.Config{
		BaseURL:     cfg.Services.Quotes.BaseURL,
		ServiceName: cfg.Services.Quotes.Name,
		Timeout:     cfg.Client.Timeout,
		Retry:       cfg.Client.Retry,
		Circuit:     cfg.Client.CircuitBreaker,
		Transport:   cfg.Client.Transport,
		AuthFunc:    bearerAuth(cfg.Services.Quotes.AuthToken),
		Logger:      logger,
	})
	if err != nil {
		return fmt.Errorf("creating HTTP client: %w", err)
	}

	if err := healthRegistry.Register(httpClient); err != nil {
		return fmt.Errorf("registering quote service health check: %w", err)
	}

	// 7. Create the latest quotes adapter (ACL pattern)
	lister := acl.NewLatestQuotesClient(acl.LatestQuotesClientConfig{
		Client: httpClient,
		Path:   cfg.Services.Quotes.LatestQuotesPath,
		Logger: logger,
	})

	// 8. Create quote service (application layer)
	quoteService := app.NewQuoteService(app.QuoteServiceConfig{
		Lister:  lister,
		Metrics: app.NewBoardMetrics(prometheus.DefaultRegisterer),
		Logger:  logger,
	})

	// 9. Create handlers
	buildInfo := handlers.NewBuildInfo(cfg.App.Name, Version, Commit, BuildTime)
	healthHandler := handlers.NewHealthHandler(healthRegistry, buildInfo)
	quotesHandler := handlers.NewQuotesHandler(handlers.QuotesHandlerConfig{
		Service:     quoteService,
		PageSize:    cfg.View.PageSize,
		DealsRoute:  cfg.View.DealsRoute,
		ServiceName: cfg.Services.Quotes.Name,
	})

	tmpl, err := handlers.Templates()
	if err != nil {
		return fmt.Errorf("parsing page templates: %w", err)
	}

	// 10. Create HTTP server
	server := http.New(&cfg.Server, logger)

	// 11. Setup router with all middleware and routes
	routerCfg := http.NewDefaultRouterConfig(logger, cfg, healthHandler)
	routerCfg.ProfileParser = identity.NewProfileVerifier(cfg.Session.ProfileSecret, cfg.Session.ProfileIssuer)
	routerCfg.QuotesHandler = quotesHandler
	routerCfg.Templates = tmpl
	http.SetupRouter(server.Engine(), routerCfg)

	// 12. Serve until a signal arrives or the server fails
	return serve(ctx, logger, server, cfg.Server.ShutdownTimeout)
}

// serve runs the server and shuts it down gracefully when ctx is done.
func serve(ctx context.Context, logger *slog.Logger, server *http.Server, shutdownTimeout time.Duration) error {
	g, gctx := errgroup.WithContext(ctx)
	serverErr := server.Start()

	g.Go(func() error {
		if err, ok := <-serverErr; ok && err != nil {
			return fmt.Errorf("server error: %w", err)
		}

		return nil
	})

	g.Go(func() error {
		<-gctx.Done()

		logger.Info("initiating graceful shutdown", slog.Duration("timeout", shutdownTimeout))

		shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), shutdownTimeout)
		defer cancel()

		// Stop accepting new requests, drain in-flight
		if err := server.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("server shutdown: %w", err)
		}

		logger.Info("shutdown complete")

		return nil
	})

	if err := g.Wait(); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}

	return nil
}

// bearerAuth returns an AuthFunc that sends token, or nil when token is empty.
func bearerAuth(token string) func(*nethttp.Request) {
	if token == "" {
		return nil
	}

	return func(req *nethttp.Request) {
		req.Header.Set("Authorization", "Bearer "+token)
	}
}
