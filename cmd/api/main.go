package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/skillbridge/exchange-system/internal/api"
	"github.com/skillbridge/exchange-system/internal/infrastructure/db/mongo"
	"github.com/skillbridge/exchange-system/internal/infrastructure/db/redis"
	"github.com/skillbridge/exchange-system/internal/infrastructure/notify"
	"github.com/skillbridge/exchange-system/internal/infrastructure/queue"
	"github.com/skillbridge/exchange-system/internal/pkg/config"
	"github.com/skillbridge/exchange-system/pkg/logger"
)

// @title SkillBridge Exchange API
// @version 1.0
// @description Matching and session scheduling for peer skill exchange.
// @BasePath /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	cfg := config.Load()
	log := logger.Init(cfg.LogLevel, cfg.Env)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	mongoClient, database, err := mongo.Connect(ctx, cfg.Mongo.URI, cfg.Mongo.Database)
	if err != nil {
		log.Fatal().Err(err).Msg("mongo connection failed")
	}
	defer func() {
		if err := mongoClient.Disconnect(context.Background()); err != nil {
			log.Warn().Err(err).Msg("mongo disconnect failed")
		}
	}()

	if err := mongo.NewUserRepository(database).EnsureIndexes(ctx); err != nil {
		log.Fatal().Err(err).Msg("user indexes failed")
	}
	if err := mongo.NewSkillRepository(database).EnsureIndexes(ctx); err != nil {
		log.Fatal().Err(err).Msg("skill indexes failed")
	}
	if err := mongo.NewSessionRepository(database).EnsureIndexes(ctx); err != nil {
		log.Fatal().Err(err).Msg("session indexes failed")
	}

	redisClient, err := redis.Connect(ctx, cfg.Redis.Addr, cfg.Redis.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("redis connection failed")
	}
	defer func() {
		if err := redisClient.Close(); err != nil {
			log.Warn().Err(err).Msg("redis close failed")
		}
	}()

	notifier := notify.NewEmailNotifier(cfg.Notifier.APIKey, cfg.Notifier.SenderEmail, cfg.Notifier.SenderName, log)
	dedup := redis.NewNotificationDedup(redisClient)
	dispatcher := queue.NewDispatcher(cfg.Notifier.Workers, notifier, dedup, log)
	dispatcher.Start(ctx)

	e := api.NewRouter(api.Dependencies{
		Logger:      log,
		JWTSecret:   cfg.JWTSecret,
		MongoClient: mongoClient,
		Database:    database,
		Redis:       redisClient,
		Notify:      dispatcher,
	})

	go func() {
		if err := e.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("server stopped")
		}
	}()
	log.Info().Str("port", cfg.Port).Str("env", cfg.Env).Msg("server started")

	<-ctx.Done()
	log.Info().Msg("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("graceful shutdown failed")
	}
}
