package main

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/limaJavier/coursetable/internal/config"
	"github.com/limaJavier/coursetable/pkg/catalog"
	"github.com/limaJavier/coursetable/pkg/model"
)

// newRepository builds the configured section repository. The returned function releases its connections
func newRepository(ctx context.Context, cfg *config.Config, logger *zap.Logger) (model.SectionRepository, func(), error) {
	var (
		repository model.SectionRepository
		closers    []func()
	)
	release := func() {
		for i := len(closers) - 1; i >= 0; i-- {
			closers[i]()
		}
	}

	switch cfg.Catalog.Driver {
	case config.MemoryDriver:
		records, err := catalog.RecordsFromJson(cfg.Catalog.File)
		if err != nil {
			return nil, nil, fmt.Errorf("cannot load catalog %v: %w", cfg.Catalog.File, err)
		}
		logger.Debug("catalog loaded", zap.String("file", cfg.Catalog.File), zap.Int("records", len(records)))
		repository = catalog.NewMemoryRepository(records)
	default:
		db, err := catalog.Open(cfg.Catalog.Driver, cfg.Catalog.DSN, logger)
		if err != nil {
			return nil, nil, err
		}
		if sqlDB, err := db.DB(); err == nil {
			closers = append(closers, func() { sqlDB.Close() })
		}
		repository = catalog.NewGormRepository(db)
	}

	if cfg.Cache.Enabled {
		client, err := catalog.NewRedisClient(ctx, cfg.Cache.Addr, cfg.Cache.Password, cfg.Cache.DB)
		if err != nil {
			// Generation works without the cache
			logger.Warn("section cache disabled", zap.String("addr", cfg.Cache.Addr), zap.Error(err))
		} else {
			closers = append(closers, func() { client.Close() })
			repository = catalog.NewCachedRepository(repository, client, cfg.Cache.TTL, logger)
		}
	}

	return repository, release, nil
}

func newCombinator(cfg config.EngineConfig) model.Combinator {
	if cfg.Strategy == config.ParallelStrategy {
		return model.NewParallelCombinator(cfg.Workers, cfg.MaxCandidates)
	}
	return model.NewSequentialCombinator(cfg.MaxCandidates)
}
