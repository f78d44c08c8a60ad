package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/frienemy/social-api/internal/api"
	"github.com/frienemy/social-api/internal/core/ports"
	"github.com/frienemy/social-api/internal/core/service"
	"github.com/frienemy/social-api/internal/infrastructure/config"
	mongodb "github.com/frienemy/social-api/internal/infrastructure/db/mongo"
	redisdb "github.com/frienemy/social-api/internal/infrastructure/db/redis"
	"github.com/frienemy/social-api/internal/infrastructure/queue"
	"github.com/frienemy/social-api/pkg/logger"
)

func main() {
	cfg := config.Load()

	log := logger.Init(logger.Options{
		Level:  cfg.LogLevel,
		Pretty: cfg.Env == "development",
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	client, db, err := mongodb.Connect(ctx, mongodb.Config{
		URI:      cfg.Mongo.URI,
		Database: cfg.Mongo.Database,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("mongodb connection failed")
	}
	defer func() { _ = client.Disconnect(context.Background()) }()

	repo := mongodb.NewUserRepository(db)
	if err := repo.EnsureIndexes(ctx); err != nil {
		log.Fatal().Err(err).Msg("failed to ensure indexes")
	}

	rdb, err := redisdb.Connect(ctx, redisdb.Config{
		Addr: cfg.Redis.Addr,
		DB:   cfg.Redis.DB,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("redis connection failed")
	}
	defer func() { _ = rdb.Close() }()

	journal := redisdb.NewReconcileJournal(rdb)
	reconciler := queue.NewReconciler(cfg.ReconcileWorkers, repo, journal, log)
	reconciler.Start(ctx)

	tokenTTL, err := time.ParseDuration(cfg.TokenTTL)
	if err != nil {
		log.Fatal().Err(err).Str("token_ttl", cfg.TokenTTL).Msg("invalid token ttl")
	}

	var rolePolicy ports.RolePolicy
	switch cfg.RolePolicy {
	case config.RolePolicyFixedAdmin:
		rolePolicy = service.FixedAdminRolePolicy
	default:
		rolePolicy = service.StoredRolePolicy
	}

	tokens := service.NewTokenService(cfg.JWTSecret, tokenTTL, rolePolicy)
	users := service.NewUserService(repo, tokens, reconciler, log)

	e := api.NewRouter(db, rdb, users, tokens, log)

	go func() {
		if err := e.Start(":" + cfg.Port); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("server stopped")
		}
	}()
	log.Info().Str("port", cfg.Port).Str("env", cfg.Env).Msg("server started")

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("graceful shutdown failed")
	}
	log.Info().Msg("server stopped")
}
