package main

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/Simplici0/tpp-registry/internal/config"
	"github.com/Simplici0/tpp-registry/internal/db"
	"github.com/Simplici0/tpp-registry/internal/logger"
	"github.com/Simplici0/tpp-registry/internal/registry"
	"github.com/Simplici0/tpp-registry/internal/store"
	"github.com/Simplici0/tpp-registry/internal/users"
)

var version = "dev"

func main() {
	root := &cobra.Command{
		Use:           "registry",
		Short:         "Registry and tariff engine for expert conclusions and certificates of origin",
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.AddCommand(
		newServeCmd(),
		newMigrateCmd(),
		newSeedCmd(),
		newCostCmd(),
		newImportCmd(),
		newExportCmd(),
	)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := root.ExecuteContext(ctx)
	stop()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// app holds the dependencies shared by every command.
type app struct {
	cfg     config.Config
	logger  *zap.Logger
	db      *sql.DB
	redis   *store.Redis
	service *registry.Service
	users   *users.Repository
}

func newApp(ctx context.Context) (*app, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}

	zapLogger, err := logger.New(cfg.LogLevel, cfg.IsDev())
	if err != nil {
		return nil, err
	}
	for _, w := range cfg.Warnings() {
		zapLogger.Warn("configuration incomplete", zap.String("detail", w))
	}

	database, err := db.Open(ctx, db.Options{
		Driver:         cfg.DBDriver,
		DSN:            cfg.DBDSN,
		ConnectTimeout: cfg.DBTimeout,
	}, zapLogger)
	if err != nil {
		_ = zapLogger.Sync()
		return nil, fmt.Errorf("open database: %w", err)
	}

	a := &app{
		cfg:    cfg,
		logger: zapLogger,
		db:     database,
		users:  users.NewRepository(database, cfg.DBDriver),
	}

	var backend registry.Store = store.NewSQL(database, cfg.DBDriver)
	if cfg.RedisAddr != "" {
		a.redis = store.NewRedis(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB, cfg.RedisTTL)
		if err := a.redis.Ping(ctx); err != nil {
			zapLogger.Warn("redis backup unavailable", zap.String("addr", cfg.RedisAddr), zap.Error(err))
		}
		backend = store.NewMirrored(backend, a.redis, zapLogger)
	}
	a.service = registry.NewService(backend, zapLogger)

	return a, nil
}

func (a *app) Close() {
	if a.redis != nil {
		_ = a.redis.Close()
	}
	_ = a.db.Close()
	_ = a.logger.Sync()
}
