package catalog

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/limaJavier/coursetable/pkg/model"
)

const cachePrefix = "coursetable:sections:"

type cachedRepository struct {
	inner  model.SectionRepository
	client *redis.Client
	ttl    time.Duration
	logger *zap.Logger
}

// NewCachedRepository keeps fetched sections in Redis for ttl. Redis failures degrade to the inner repository
func NewCachedRepository(inner model.SectionRepository, client *redis.Client, ttl time.Duration, logger *zap.Logger) model.SectionRepository {
	return &cachedRepository{
		inner:  inner,
		client: client,
		ttl:    ttl,
		logger: logger,
	}
}

func (repository *cachedRepository) FetchSections(ctx context.Context, code, semester, includeFilter string) ([]model.Section, error) {
	key := cacheKey(code, semester, includeFilter)

	payload, err := repository.client.Get(ctx, key).Bytes()
	switch {
	case err == nil:
		var sections []model.Section
		decodeErr := json.Unmarshal(payload, &sections)
		if decodeErr == nil {
			return sections, nil
		}
		repository.logger.Warn("discarding corrupt cache entry", zap.String("key", key), zap.Error(decodeErr))
	case !errors.Is(err, redis.Nil):
		repository.logger.Warn("section cache unavailable", zap.String("key", key), zap.Error(err))
	}

	sections, err := repository.inner.FetchSections(ctx, code, semester, includeFilter)
	if err != nil {
		return nil, err
	}

	if payload, err := json.Marshal(sections); err != nil {
		repository.logger.Warn("cannot encode sections", zap.String("key", key), zap.Error(err))
	} else if err := repository.client.Set(ctx, key, payload, repository.ttl).Err(); err != nil {
		repository.logger.Warn("cannot cache sections", zap.String("key", key), zap.Error(err))
	}
	return sections, nil
}

func cacheKey(code, semester, includeFilter string) string {
	return cachePrefix + strings.Join([]string{semester, strings.Join(strings.Fields(code), " "), includeFilter}, "|")
}

// NewRedisClient connects and pings the cache server
func NewRedisClient(ctx context.Context, addr, password string, db int) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})

	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, err
	}
	return client, nil
}
