// Command server runs the wedding planner HTTP API.
//
// @title                       Wedding Planner API
// @version                     1.0
// @BasePath                    /
// @securityDefinitions.apikey  BearerAuth
// @in                          header
// @name                        Authorization
package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"

	"github.com/weddingplan/planner-api/internal/api"
	"github.com/weddingplan/planner-api/internal/api/handler"
	"github.com/weddingplan/planner-api/internal/api/metrics"
	"github.com/weddingplan/planner-api/internal/core/service"
	"github.com/weddingplan/planner-api/internal/core/store"
	"github.com/weddingplan/planner-api/internal/infrastructure/ai"
	mongodb "github.com/weddingplan/planner-api/internal/infrastructure/db/mongo"
	redisdb "github.com/weddingplan/planner-api/internal/infrastructure/db/redis"
	"github.com/weddingplan/planner-api/internal/infrastructure/http/handlers"
	"github.com/weddingplan/planner-api/internal/infrastructure/queue"
	"github.com/weddingplan/planner-api/internal/pkg/config"
	"github.com/weddingplan/planner-api/pkg/logger"
)

const shutdownTimeout = 15 * time.Second

func main() {
	if err := run(); err != nil {
		logger.Get().Fatal().Err(err).Msg("server stopped")
	}
}

func run() error {
	// A missing .env is fine; the environment may already be set.
	_ = godotenv.Load()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load(ctx)
	if err != nil {
		logger.Init(logger.Options{Level: "info", Service: "planner-api"})
		return err
	}

	log := logger.Init(logger.Options{
		Level:   cfg.LogLevel,
		Pretty:  !cfg.IsProduction(),
		Service: "planner-api",
	})

	mongoClient, db, err := mongodb.Connect(ctx, mongodb.Config{URI: cfg.Mongo.URI, Database: cfg.Mongo.Database})
	if err != nil {
		return err
	}
	rdb, err := redisdb.Connect(ctx, redisdb.Config{Addr: cfg.Redis.Addr, Password: cfg.Redis.Password, DB: cfg.Redis.DB})
	if err != nil {
		return err
	}

	users := mongodb.NewUserRepository(db)
	if err := users.EnsureIndexes(ctx); err != nil {
		return err
	}
	snapshots := mongodb.NewSnapshotRepository(db)
	cache := redisdb.NewSnapshotCache(rdb)

	syncService := service.NewSyncService(snapshots, cfg.Sync.WriteTimeout, logger.Component("sync"))
	dispatcher := queue.NewDispatcher(cfg.Sync.Workers, syncService, logger.Component("dispatcher"))
	dispatcher.Start(context.WithoutCancel(ctx))

	registry := store.NewRegistry(users, snapshots, store.Options{
		Cache:                cache,
		Sink:                 dispatcher,
		QuietPeriod:          cfg.Sync.QuietPeriod,
		NotificationDuration: cfg.NotificationDuration,
		ConflictCheck:        cfg.Sync.ConflictCheck,
		Logger:               logger.Component("store"),
	})
	metrics.ObserveStoresOpen(registry.Open)

	completer, err := ai.NewGemini(ctx, ai.Config{APIKey: cfg.Gemini.APIKey, Model: cfg.Gemini.Model})
	if err != nil {
		return err
	}
	if cfg.Gemini.APIKey == "" {
		log.Warn().Msg("GEMINI_API_KEY not set; advisor only serves requests carrying their own key")
	}

	authService := service.NewAuthService(users, registry, cfg.JWTSecret, cfg.TokenTTL, cfg.AdminEmails, logger.Component("auth"))
	userService := service.NewUserService(users, registry, logger.Component("users"), cache, snapshots)
	advisorService := service.NewAdvisorService(completer, registry, service.UsageLimits{
		Chat:     cfg.Limits.Chat,
		Speech:   cfg.Limits.Speech,
		FengShui: cfg.Limits.FengShui,
	}, logger.Component("advisor"))

	e := api.NewRouter(api.Deps{
		JWTSecret: cfg.JWTSecret,
		Logger:    logger.Component("http"),
		Auth:      handler.NewAuthHandler(authService),
		Planner:   handler.NewPlannerHandler(registry),
		Advisor:   handler.NewAdvisorHandler(advisorService),
		Users:     handler.NewUserHandler(userService),
		Ready: handlers.NewHealthDependenciesHandler(map[string]handlers.Pinger{
			"mongo": mongodb.Pinger{Client: mongoClient},
			"redis": redisdb.Pinger{Client: rdb},
		}),
	})

	errCh := make(chan error, 1)
	go func() {
		log.Info().Str("port", cfg.Port).Str("env", cfg.Env).Msg("listening")
		if err := e.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case <-ctx.Done():
		log.Info().Msg("shutting down")
	case err := <-errCh:
		if err != nil {
			return err
		}
	}

	return shutdown(log, e.Shutdown, registry, dispatcher, func(ctx context.Context) {
		if err := rdb.Close(); err != nil {
			log.Warn().Err(err).Msg("redis close")
		}
		if err := mongoClient.Disconnect(ctx); err != nil {
			log.Warn().Err(err).Msg("mongo disconnect")
		}
	})
}

// shutdown stops intake first, then flushes every pending cloud write before
// the connections go away.
func shutdown(log zerolog.Logger, stopHTTP func(context.Context) error, registry *store.Registry, dispatcher *queue.Dispatcher, disconnect func(context.Context)) error {
	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := stopHTTP(ctx); err != nil {
		log.Warn().Err(err).Msg("http shutdown")
	}
	registry.CloseAll()
	if err := dispatcher.Close(ctx); err != nil {
		log.Warn().Err(err).Msg("sync queue not drained")
	}
	disconnect(ctx)
	log.Info().Msg("bye")
	return nil
}
