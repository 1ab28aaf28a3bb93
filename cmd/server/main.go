package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/mcoot/progressjournal/internal/api"
	"github.com/mcoot/progressjournal/internal/config"
	"github.com/mcoot/progressjournal/internal/factory"
	"github.com/mcoot/progressjournal/internal/services/auth"
	"github.com/mcoot/progressjournal/internal/services/records"
	pgstorage "github.com/mcoot/progressjournal/internal/storage/postgres"
	redisstorage "github.com/mcoot/progressjournal/internal/storage/redis"
)

func main() {
	cfg, err := config.Load(".env")
	if err != nil {
		slog.Error("invalid configuration", slog.String("error", err.Error()))
		os.Exit(1)
	}

	// Set up logging with JSON output
	level, _ := cfg.Log.SlogLevel()
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: level,
	}))
	slog.SetDefault(logger)

	policy, err := records.ParseCorruptPolicy(cfg.Records.CorruptPolicy)
	if err != nil {
		logger.Error("invalid configuration", slog.String("error", err.Error()))
		os.Exit(1)
	}

	// Build factory config from environment
	factoryCfg := factory.Config{
		Logger:      logger,
		StorageType: cfg.Storage.Type,
		DataDir:     cfg.Storage.DataDir,
		AuthConfig: auth.Config{
			SessionDuration: cfg.Session.TTL,
		},
		RecordsConfig: records.Config{
			BcryptCost:    cfg.Records.BcryptCost,
			CorruptPolicy: policy,
		},
	}

	switch cfg.Storage.Type {
	case factory.StorageTypeRedis:
		redisCfg := redisstorage.DefaultConfig()
		redisCfg.URL = cfg.Storage.RedisURL
		factoryCfg.RedisConfig = &redisCfg
	case factory.StorageTypePostgres:
		pgCfg := pgstorage.DefaultConfig()
		pgCfg.DSN = cfg.Storage.PGDSN
		factoryCfg.PostgresConfig = &pgCfg
	}

	// Create application factory
	app, err := factory.New(factoryCfg)
	if err != nil {
		logger.Error("failed to create application", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer func() {
		if err := app.Close(); err != nil {
			logger.Error("failed to close storage", slog.String("error", err.Error()))
		}
	}()

	// Create API router
	router := api.NewRouter(api.RouterConfig{
		Logger:          logger,
		AuthService:     app.AuthService,
		Records:         app.Records,
		ProgressService: app.Progress,
	})

	// Cancel on SIGINT/SIGTERM to shut down gracefully
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go app.AuthService.RunCleanup(ctx, time.Hour)

	server := api.NewServer(router, api.NewServerConfig(cfg.HTTP.Addr()), logger)

	logger.Info("server starting",
		slog.String("addr", cfg.HTTP.Addr()),
		slog.String("storage", cfg.Storage.Type),
	)

	if err := server.Run(ctx); err != nil {
		logger.Error("server error", slog.String("error", err.Error()))
		return
	}

	logger.Info("server stopped")
}
