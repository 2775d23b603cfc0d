package api

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/roach88/nyx/internal/infrastructure/auth"
	"github.com/roach88/nyx/internal/infrastructure/configs"
	"github.com/roach88/nyx/internal/infrastructure/logging"
	"github.com/roach88/nyx/internal/infrastructure/ratelimiter"
	assistantHandler "github.com/roach88/nyx/internal/presentation/handler/assistant"
	auditHandler "github.com/roach88/nyx/internal/presentation/handler/audit"
	eventsHandler "github.com/roach88/nyx/internal/presentation/handler/events"
	healthHandler "github.com/roach88/nyx/internal/presentation/handler/health"
	syncHandler "github.com/roach88/nyx/internal/presentation/handler/syncer"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

type Application struct {
	config           configs.Config
	assistantHandler *assistantHandler.Handler
	syncHandler      *syncHandler.Handler
	auditHandler     *auditHandler.Handler
	healthHandler    *healthHandler.Handler
	eventsHandler    *eventsHandler.Handler
	verifier         auth.Verifier
	logger           logging.Logger
	ratelimiter      ratelimiter.Limiter
}

func NewApplication(
	config configs.Config,
	assistantHandler *assistantHandler.Handler,
	syncHandler *syncHandler.Handler,
	auditHandler *auditHandler.Handler,
	healthHandler *healthHandler.Handler,
	eventsHandler *eventsHandler.Handler,
	verifier auth.Verifier,
	logger logging.Logger,
	ratelimiter ratelimiter.Limiter,
) *Application {
	return &Application{
		config:           config,
		assistantHandler: assistantHandler,
		syncHandler:      syncHandler,
		auditHandler:     auditHandler,
		healthHandler:    healthHandler,
		eventsHandler:    eventsHandler,
		verifier:         verifier,
		logger:           logger,
		ratelimiter:      ratelimiter,
	}
}

func (app *Application) Mount() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(60 * time.Second))

	r.Use(app.rateLimiterMiddleware)
	r.Use(app.enableCors)
	r.Use(app.loggerMiddleware)
	r.Use(app.metricsMiddleware)

	r.Handle("/metrics", promhttp.Handler())

	r.Route("/api", func(r chi.Router) {
		r.Get("/health", app.healthHandler.GetHealth)
		r.Get("/healthz", app.healthHandler.GetHealth)
		r.Get("/ready", app.healthHandler.GetHealth)
		r.Get("/live", app.healthHandler.GetHealth)

		r.Group(func(r chi.Router) {
			r.Use(app.authMiddleware)

			r.Post("/nyx/think", app.assistantHandler.ThinkHandler)
			r.Post("/sync", app.syncHandler.SyncHandler)
			r.Get("/audit/logs", app.auditHandler.ListHandler)
			r.Get("/events", app.eventsHandler.SubscribeHandler)
		})
	})

	return otelhttp.NewHandler(r, "nyx-http")
}

func (app *Application) Run(mux http.Handler) error {
	srv := &http.Server{
		Addr:         fmt.Sprintf("%s:%d", app.config.HTTP.Host, app.config.HTTP.Port),
		Handler:      mux,
		WriteTimeout: app.config.HTTP.WriteTimeout,
		ReadTimeout:  app.config.HTTP.ReadTimeout,
		IdleTimeout:  time.Minute,
	}

	shutdown := make(chan error)

	go func() {
		quit := make(chan os.Signal, 1)

		signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
		s := <-quit

		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		app.logger.Info(logging.General, logging.Shutdown, "signal caught", map[logging.ExtraKey]any{
			"signal": s.String(),
		})

		shutdown <- srv.Shutdown(ctx)
	}()

	app.logger.Info(logging.General, logging.Startup, "server has started", map[logging.ExtraKey]any{
		"addr": srv.Addr,
	})

	err := srv.ListenAndServe()
	if !errors.Is(err, http.ErrServerClosed) {
		return err
	}

	err = <-shutdown
	if err != nil {
		return err
	}

	app.logger.Info(logging.General, logging.Shutdown, "server has stopped", map[logging.ExtraKey]any{
		"addr": srv.Addr,
	})

	return nil
}
