// Package cache implements the feed cache on Redis.
package cache

import (
	"context"
	"log/slog"
	"time"

	"dezapego/config"
	"dezapego/internal/domain/lifecycle"
	"dezapego/internal/domain/service"

	"github.com/pkg/errors"
	"github.com/redis/go-redis/v9"
	"go.uber.org/fx"
)

const feedKeyPrefix = "feed:"

// redisFeedCache implements service.FeedCache on go-redis.
type redisFeedCache struct {
	client *redis.Client
	logger *slog.Logger
}

// Params holds dependencies for the feed cache, injected by Fx
type Params struct {
	fx.In
	fx.Lifecycle

	Config *config.Config
	Logger *slog.Logger
}

// New connects to Redis and returns the cache as a service.FeedCache.
func New(params Params) (service.FeedCache, error) {
	cfg := params.Config.Redis
	if cfg == nil || cfg.Addr == "" {
		return nil, errors.New("redis address must be configured")
	}

	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	params.Append(fx.Hook{
		OnStart: func(startCtx context.Context) error {
			ctx, cancel := context.WithTimeout(startCtx, lifecycle.DefaultTimeout)
			defer cancel()

			if err := client.Ping(ctx).Err(); err != nil {
				return errors.Wrap(err, "failed to ping Redis")
			}

			return nil
		},
		OnStop: func(_ context.Context) error {
			return client.Close()
		},
	})

	return &redisFeedCache{
		client: client,
		logger: params.Logger,
	}, nil
}

// Get returns the cached payload for the key, or service.ErrCacheMiss.
func (c *redisFeedCache) Get(ctx context.Context, key string) ([]byte, error) {
	payload, err := c.client.Get(ctx, feedKeyPrefix+key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, service.ErrCacheMiss
		}

		return nil, errors.Wrap(err, "failed to read feed cache")
	}

	return payload, nil
}

// Set stores the payload under the key with the given TTL.
func (c *redisFeedCache) Set(ctx context.Context, key string, payload []byte, ttl time.Duration) error {
	if err := c.client.Set(ctx, feedKeyPrefix+key, payload, ttl).Err(); err != nil {
		return errors.Wrap(err, "failed to write feed cache")
	}

	return nil
}

// InvalidateFeed drops all cached feed pages. SCAN is used instead of KEYS so
// a large keyspace never blocks Redis.
func (c *redisFeedCache) InvalidateFeed(ctx context.Context) error {
	iter := c.client.Scan(ctx, 0, feedKeyPrefix+"*", 0).Iterator()
	for iter.Next(ctx) {
		if err := c.client.Del(ctx, iter.Val()).Err(); err != nil {
			return errors.Wrap(err, "failed to delete feed cache key")
		}
	}
	if err := iter.Err(); err != nil {
		return errors.Wrap(err, "failed to scan feed cache keys")
	}

	return nil
}
