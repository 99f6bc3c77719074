package app

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os/signal"
	"syscall"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"

	"cfemdash/internal/config"
	apierrors "cfemdash/internal/errors"
	"cfemdash/internal/infrastructure"
	customMiddleware "cfemdash/internal/middleware"
	"cfemdash/internal/services"
	"cfemdash/internal/session"
	handlers "cfemdash/internal/transport/http"
)

const (
	// Version is reported by the health endpoint.
	Version = "1.0.0"
	AppName = "CFEM Dashboard"
)

// Application is the main application container. It owns the session
// store, the dataset service and the HTTP server, wired once at startup.
type Application struct {
	Config  *config.Config
	Router  *chi.Mux
	Server  *http.Server
	Store   *session.Store
	Service *services.DatasetService
	Metrics *handlers.Metrics
	Logger  *slog.Logger
}

// NewApplication creates the application with dependency injection:
// configuration, logger, session store, dataset service, handlers.
func NewApplication() (*Application, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	logger, err := infrastructure.InitializeLogger(cfg.Logging)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}

	return NewApplicationWithConfig(cfg, logger)
}

// NewApplicationWithConfig builds the container from pre-resolved
// configuration and logger. Tests use it to inject both.
func NewApplicationWithConfig(cfg *config.Config, logger *slog.Logger) (*Application, error) {
	store := session.NewStore()

	app := &Application{
		Config:  cfg,
		Store:   store,
		Service: services.NewDatasetServiceWithLogger(store, logger),
		Metrics: handlers.NewMetrics(),
		Logger:  logger,
	}

	app.setupRouter()
	app.createServer()

	return app, nil
}

// setupRouter configures the HTTP router. RequestID and RealIP run for
// every route; the API group adds logging, recovery, security headers,
// compression and rate limiting. The metrics endpoint stays outside the
// group so scrapes do not count against the API rate limit.
func (a *Application) setupRouter() {
	r := chi.NewRouter()

	r.Use(customMiddleware.RequestID)
	r.Use(customMiddleware.RealIP)

	errorHandler := apierrors.NewErrorHandler(a.Logger, a.Config.Logging.Development)
	datasetHandler := handlers.NewDatasetHandler(
		a.Service, a.Logger, errorHandler, a.Metrics, a.Config.Upload.MaxBytes)
	healthHandler := handlers.NewHealthHandler(a.Service, Version, a.Logger)

	r.Group(func(r chi.Router) {
		r.Use(customMiddleware.StructuredLogger(a.Logger))
		r.Use(customMiddleware.Recoverer(a.Logger))
		r.Use(customMiddleware.SecurityHeaders)
		r.Use(customMiddleware.Compress(5))

		if !a.Config.Server.RateLimit.Disabled {
			r.Use(customMiddleware.NewRateLimiter(
				a.Config.Server.RateLimit.RPS,
				a.Config.Server.RateLimit.Burst,
				a.Logger,
			).Handler)
		}

		r.Route("/api", func(r chi.Router) {
			r.Use(render.SetContentType(render.ContentTypeJSON))
			r.Mount("/dataset", datasetHandler.Routes())
			r.Get("/healthz", healthHandler.HealthCheck)
		})

		r.NotFound(errorHandler.NotFound)
		r.MethodNotAllowed(errorHandler.MethodNotAllowed)
	})

	r.Handle("/metrics", a.Metrics.Handler())

	a.Router = r
}

func (a *Application) createServer() {
	a.Server = &http.Server{
		Addr:         fmt.Sprintf(":%d", a.Config.Server.Port),
		Handler:      a.Router,
		ReadTimeout:  a.Config.Server.ReadTimeout,
		WriteTimeout: a.Config.Server.WriteTimeout,
		IdleTimeout:  a.Config.Server.IdleTimeout,
	}
}

// Run serves until the context is cancelled or SIGINT/SIGTERM arrives,
// then shuts down within the configured timeout.
func (a *Application) Run(ctx context.Context) error {
	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	a.Logger.InfoContext(ctx, "Application starting",
		slog.String("name", AppName),
		slog.String("version", Version),
		slog.Int("port", a.Config.Server.Port),
		slog.String("level", a.Config.Logging.Level))

	errCh := make(chan error, 1)
	go func() {
		if err := a.Server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("server error: %w", err)
	case <-ctx.Done():
	}

	return a.Stop(context.Background())
}

// Stop gracefully stops the HTTP server.
func (a *Application) Stop(ctx context.Context) error {
	a.Logger.InfoContext(ctx, "Shutting down application")

	shutdownCtx, cancel := context.WithTimeout(ctx, a.Config.Server.ShutdownTimeout)
	defer cancel()

	if err := a.Server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown error: %w", err)
	}

	a.Logger.InfoContext(ctx, "Application stopped")
	return nil
}
