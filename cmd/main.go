package main

import (
	"context"
	"expvar"
	"log"
	"runtime"

	"github.com/roach88/nyx/internal/assistant"
	"github.com/roach88/nyx/internal/infrastructure/auth"
	"github.com/roach88/nyx/internal/infrastructure/configs"
	"github.com/roach88/nyx/internal/infrastructure/logging"
	"github.com/roach88/nyx/internal/infrastructure/ratelimiter"
	"github.com/roach88/nyx/internal/infrastructure/suggest"
	"github.com/roach88/nyx/internal/infrastructure/tracing"
	"github.com/roach88/nyx/internal/infrastructure/ws"
	"github.com/roach88/nyx/internal/persistence/db"
	"github.com/roach88/nyx/internal/persistence/repository"
	"github.com/roach88/nyx/internal/persistence/store"
	"github.com/roach88/nyx/internal/presentation/api"
	assistantHandler "github.com/roach88/nyx/internal/presentation/handler/assistant"
	auditHandler "github.com/roach88/nyx/internal/presentation/handler/audit"
	eventsHandler "github.com/roach88/nyx/internal/presentation/handler/events"
	healthHandler "github.com/roach88/nyx/internal/presentation/handler/health"
	syncHandler "github.com/roach88/nyx/internal/presentation/handler/syncer"
	"github.com/roach88/nyx/internal/reconcile"
)

const (
	serviceName = "nyx-api"
)

func main() {
	tracerCfg := tracing.NewDefaultConfig(serviceName)

	sh, err := tracing.InitTracer(tracerCfg)
	if err != nil {
		log.Fatalf("Failed to initialize the tracer: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	defer sh(ctx)

	logger := logging.NewLogger(logging.NewDefaultConfig())

	configPath := configs.DetermineConfigPath()
	cfg, err := configs.Load(configPath)
	if err != nil {
		log.Fatal(err)
	}

	mongoClient, err := db.NewMongoClient(ctx, cfg.Mongo)
	if err != nil {
		log.Fatal(err)
	}
	defer db.Disconnect(context.Background(), mongoClient)

	database := mongoClient.Database(cfg.Mongo.Database)

	auditRepository := repository.NewAuditLogRepository(database)
	if err := auditRepository.EnsureIndexes(ctx); err != nil {
		log.Fatalf("Failed to ensure audit indexes: %v", err)
	}
	profileRepository := repository.NewProfileRepository(database)
	recordStore := store.NewMongoStore(database)

	hub := ws.NewHub()
	go hub.Run()

	generator := suggest.NewClient(cfg.Suggest)
	planner := assistant.NewPlanner()
	applier := assistant.NewApplier(recordStore, auditRepository, logger)
	reconciler := reconcile.NewReconciler(recordStore, logger)

	verifier := auth.NewJWTVerifier([]byte(cfg.Auth.JWTSecret))

	rl := ratelimiter.New(ratelimiter.Options{
		MaxRatePerSecond: cfg.RateLimiter.MaxRatePerSecond,
		MaxBurst:         cfg.RateLimiter.MaxBurst,
		CacheTTL:         cfg.RateLimiter.CacheTTL,
		SourceHeaderKey:  cfg.RateLimiter.SourceHeaderKey,
	})

	app := api.NewApplication(
		*cfg,
		assistantHandler.NewHandler(profileRepository, generator, planner, applier, hub, logger),
		syncHandler.NewHandler(reconciler, hub),
		auditHandler.NewHandler(auditRepository),
		healthHandler.NewHandler(),
		eventsHandler.NewHandler(hub, logger),
		verifier,
		logger,
		rl,
	)

	expvar.Publish("goroutines", expvar.Func(func() any {
		return runtime.NumGoroutine()
	}))

	mux := app.Mount()
	if err := app.Run(mux); err != nil {
		logger.Fatalf("server error: %v", err)
	}
}
