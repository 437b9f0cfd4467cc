package main

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/studyhub/progress/internal/domain"
	"github.com/studyhub/progress/internal/infrastructure"
	"github.com/studyhub/progress/internal/repository"
)

type healthCheckFunc func(ctx context.Context) error

// openStore connects the progress store selected by STORE_BACKEND. The
// returned store is already scoped to the configured namespace.
func openStore(ctx context.Context, config *infrastructure.Config, logger *zap.Logger) (domain.ProgressStore, healthCheckFunc, func(), error) {
	storeLogger := infrastructure.ComponentLogger(logger, "store")

	switch config.Store.Backend {
	case infrastructure.StoreBackendMemory:
		storeLogger.Warn("Using in-memory progress store; progress is lost on restart")
		store := repository.NewScopedStore(repository.NewMemoryStore(), config.Store.Namespace)
		return store, func(context.Context) error { return nil }, func() {}, nil

	case infrastructure.StoreBackendPostgres:
		database, err := infrastructure.NewDatabase(&config.Database, storeLogger)
		if err != nil {
			return nil, nil, nil, err
		}
		if err := database.AutoMigrate(); err != nil {
			database.Close()
			return nil, nil, nil, err
		}
		store := repository.NewScopedStore(repository.NewGormStore(database.DB), config.Store.Namespace)
		closeFn := func() {
			if err := database.Close(); err != nil {
				storeLogger.Error("Failed to close database", zap.Error(err))
			}
		}
		return store, database.HealthCheck, closeFn, nil

	case infrastructure.StoreBackendRedis:
		rdb, err := infrastructure.NewRedisClient(ctx, &config.Redis, storeLogger)
		if err != nil {
			return nil, nil, nil, err
		}
		healthCheck := func(ctx context.Context) error { return rdb.Ping(ctx).Err() }
		closeFn := func() {
			if err := rdb.Close(); err != nil {
				storeLogger.Error("Failed to close redis client", zap.Error(err))
			}
		}
		return repository.NewRedisStore(rdb, config.Store.Namespace), healthCheck, closeFn, nil

	case infrastructure.StoreBackendSQLite:
		sqlite, err := repository.NewSQLiteStore(config.SQLite.Path, storeLogger)
		if err != nil {
			return nil, nil, nil, err
		}
		store := repository.NewScopedStore(sqlite, config.Store.Namespace)
		closeFn := func() {
			if err := sqlite.Close(); err != nil {
				storeLogger.Error("Failed to close sqlite store", zap.Error(err))
			}
		}
		return store, sqlite.HealthCheck, closeFn, nil

	default:
		return nil, nil, nil, fmt.Errorf("unknown store backend %q", config.Store.Backend)
	}
}
