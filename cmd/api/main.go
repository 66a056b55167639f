package main

import (
	"context"
	"os/signal"
	"syscall"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/derrickgr2-cpu/familyconnest/internal/cache"
	"github.com/derrickgr2-cpu/familyconnest/internal/config"
	"github.com/derrickgr2-cpu/familyconnest/internal/database"
	"github.com/derrickgr2-cpu/familyconnest/internal/handlers"
	"github.com/derrickgr2-cpu/familyconnest/internal/jobs"
	"github.com/derrickgr2-cpu/familyconnest/internal/log"
	"github.com/derrickgr2-cpu/familyconnest/internal/queue"
	"github.com/derrickgr2-cpu/familyconnest/internal/repository"
	"github.com/derrickgr2-cpu/familyconnest/internal/server"
	"github.com/derrickgr2-cpu/familyconnest/internal/service"
	"github.com/derrickgr2-cpu/familyconnest/internal/storage"
)

const publicMembersTTL = 5 * time.Minute

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}

	logger := log.New(cfg.Environment)

	ctx := context.Background()

	if cfg.Postgres.Migrate {
		if err := database.RunMigrations(cfg.Postgres.DSN, logger); err != nil {
			logger.Fatal().Err(err).Msg("failed to run migrations")
		}
	}

	dbPool, err := database.NewPostgresPool(ctx, cfg.Postgres, "family-api")
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to connect postgres")
	}

	redisClient, err := cache.NewRedisClientFromConfig(ctx, cfg.Redis)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to connect redis")
	}

	objectStore, err := storage.NewObjectStore(cfg.Storage)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to init object store")
	}
	if err := objectStore.EnsureBucket(ctx); err != nil {
		logger.Warn().Err(err).Msg("ensure bucket failed")
	}

	users := repository.NewUserRepository(dbPool)
	photos := repository.NewPhotoRepository(dbPool)
	members := repository.NewMemberRepository(dbPool, photos)
	events := repository.NewEventRepository(dbPool)
	forum := repository.NewForumRepository(dbPool)
	uploads := repository.NewUploadRepository(dbPool)

	publicCache := cache.NewPublicCache(redisClient, publicMembersTTL)
	producer := queue.NewProducer(redisClient, cfg.Redis.Stream)

	services := handlers.Services{
		Auth:    service.NewAuthService(users, cfg.Security, logger),
		Members: service.NewMemberService(members, publicCache, logger),
		Albums:  service.NewAlbumService(photos, members, users, publicCache),
		Events:  service.NewEventService(events),
		Forum:   service.NewForumService(forum),
		Uploads: service.NewUploadService(uploads, objectStore, producer, cfg.Uploads, logger),
	}
	checks := map[string]handlers.PingFunc{
		"database": dbPool.Ping,
		"cache": func(ctx context.Context) error {
			return redisClient.Ping(ctx).Err()
		},
	}

	handlerSet := handlers.NewHandlerSet(logger, cfg, services, publicCache, checks)
	httpServer := server.NewHTTPServer(cfg, logger, handlerSet)

	scheduler := jobs.NewScheduler(producer, cfg.Uploads.CleanupSchedule, logger)
	if err := scheduler.Start(); err != nil {
		logger.Error().Err(err).Msg("scheduler start failed")
	}

	go func() {
		if err := httpServer.Start(); err != nil {
			logger.Fatal().Err(err).Msg("http server failed")
		}
	}()

	waitForShutdown(logger, httpServer, scheduler, dbPool, redisClient)
}

func waitForShutdown(logger zerolog.Logger, srv *server.HTTPServer, scheduler *jobs.Scheduler, db *pgxpool.Pool, redisClient *redis.Client) {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	<-ctx.Done()
	logger.Info().Msg("shutdown signal received")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error().Err(err).Msg("graceful shutdown failed")
	}

	scheduler.Stop()

	db.Close()
	if err := redisClient.Close(); err != nil {
		logger.Error().Err(err).Msg("redis close error")
	}

	logger.Info().Msg("server exited cleanly")
}
