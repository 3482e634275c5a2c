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

	"github.com/projectdesk/pm-api/internal/api"
	"github.com/projectdesk/pm-api/internal/api/handler"
	"github.com/projectdesk/pm-api/internal/core/ports"
	"github.com/projectdesk/pm-api/internal/core/service"
	"github.com/projectdesk/pm-api/internal/infrastructure/cache/memory"
	"github.com/projectdesk/pm-api/internal/infrastructure/db/mongo"
	"github.com/projectdesk/pm-api/internal/infrastructure/db/redis"
	"github.com/projectdesk/pm-api/internal/infrastructure/queue"
	"github.com/projectdesk/pm-api/internal/infrastructure/security"
	"github.com/projectdesk/pm-api/internal/pkg/config"
	"github.com/projectdesk/pm-api/pkg/logger"
)

func main() {
	// .env is optional; real environment variables win.
	_ = godotenv.Load()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load(ctx)
	if err != nil {
		bootLog := logger.New(logger.Options{})
		bootLog.Fatal().Err(err).Msg("load config")
	}

	log := logger.Init(logger.ForEnv(cfg.Env, cfg.LogLevel, "pm-api"))

	store, err := mongo.Connect(ctx, mongo.Config{
		URI:      cfg.Mongo.URI,
		Database: cfg.Mongo.Database,
		Timeout:  cfg.Mongo.Timeout,
		Env:      cfg.Env,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("connect to mongo")
	}
	if err := store.EnsureIndexes(ctx); err != nil {
		log.Fatal().Err(err).Msg("ensure indexes")
	}

	readiness := map[string]handler.Pinger{"mongo": store}

	var idem ports.IdempotencyStore
	if cfg.Redis.Addr != "" {
		rdb, err := redis.Connect(ctx, redis.Config{Addr: cfg.Redis.Addr, DB: cfg.Redis.DB})
		if err != nil {
			log.Fatal().Err(err).Msg("connect to redis")
		}
		defer rdb.Close()
		idem = redis.NewIdempotencyStore(rdb, cfg.Redis.IdempotencyTTL)
		readiness["redis"] = redis.NewPinger(rdb)
	} else {
		log.Info().Msg("REDIS_ADDR not set; idempotency keys kept in memory")
		idem = memory.NewIdempotencyStore(cfg.Redis.IdempotencyTTL)
	}

	workerCtx, stopWorkers := context.WithCancel(context.Background())
	dispatcher := queue.NewDispatcher(cfg.Activity.Workers, mongo.NewActivityRepository(store.DB()), logger.Component("activity"))
	dispatcher.Start(workerCtx)

	userSvc := service.NewUserService(
		mongo.NewUserRepository(store.DB()),
		security.NewBcryptCodec(cfg.Auth.BcryptCost),
		dispatcher,
		logger.Component("users"),
	)
	clientRepo := mongo.NewClientRepository(store.DB())
	clientSvc := service.NewClientService(clientRepo, dispatcher, logger.Component("clients"))
	projectSvc := service.NewProjectService(
		mongo.NewProjectRepository(store.DB()),
		clientRepo,
		idem,
		dispatcher,
		logger.Component("projects"),
	)
	authSvc := service.NewAuthService(userSvc, cfg.JWTSecret, cfg.Auth.TokenTTL)

	router := api.NewRouter(api.Deps{
		Users:     userSvc,
		Auth:      authSvc,
		Clients:   clientSvc,
		Projects:  projectSvc,
		Readiness: readiness,
		JWTSecret: cfg.JWTSecret,
		Log:       logger.Component("http"),
	})

	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
	}

	go func() {
		log.Info().Str("port", cfg.Port).Str("env", cfg.Env).Msg("server starting")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("server")
		}
	}()

	<-ctx.Done()
	log.Info().Msg("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("server shutdown")
	}

	// Requests are done; flush queued activity before the store goes away.
	stopWorkers()
	dispatcher.Wait()

	if err := store.Disconnect(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("mongo disconnect")
	}
	log.Info().Msg("server stopped")
}
