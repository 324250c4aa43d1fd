package cache

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"strconv"
	"time"

	"travel-kernel/internal/pkg/config"
	"travel-kernel/internal/pkg/errs"
	"travel-kernel/internal/usecase/shared"

	"github.com/redis/go-redis/v9"
)

func Connect(ctx context.Context, cfg config.RedisConfig) (*redis.Client, func(), error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, nil, errs.Wrap(err, "failed to ping redis")
	}
	cleanup := func() {
		if err := client.Close(); err != nil {
			slog.Warn("redis close failed", "error", err.Error())
		}
	}
	return client, cleanup, nil
}

// RedisViewCache keys every entry by its scope's current generation.
// Invalidating a scope bumps the generation, orphaning old entries until
// their TTL runs out.
type RedisViewCache struct {
	client redis.Cmdable
	ttl    time.Duration
	logger *slog.Logger
}

func NewRedisViewCache(client redis.Cmdable, ttl time.Duration, logger *slog.Logger) *RedisViewCache {
	return &RedisViewCache{client: client, ttl: ttl, logger: logger}
}

func generationKey(scope string) string {
	return "gen:" + scope
}

func dataKey(scope string, gen shared.Generation, key string) string {
	return "view:" + scope + ":" + strconv.FormatInt(int64(gen), 10) + ":" + key
}

func (c *RedisViewCache) generation(ctx context.Context, scope string) (shared.Generation, error) {
	gen, err := c.client.Get(ctx, generationKey(scope)).Int64()
	if errors.Is(err, redis.Nil) {
		return 0, nil
	}
	if err != nil {
		return 0, errs.Wrap(err, "read cache generation")
	}
	return shared.Generation(gen), nil
}

// Get reads the scope's generation once and returns it with the lookup
// result. Callers hand it back to Set after a miss.
func (c *RedisViewCache) Get(ctx context.Context, scope, key string, dst any) (shared.Generation, bool, error) {
	gen, err := c.generation(ctx, scope)
	if err != nil {
		return 0, false, err
	}
	raw, err := c.client.Get(ctx, dataKey(scope, gen, key)).Bytes()
	if errors.Is(err, redis.Nil) {
		return gen, false, nil
	}
	if err != nil {
		return gen, false, errs.Wrap(err, "read cached view")
	}
	if err := json.Unmarshal(raw, dst); err != nil {
		return gen, false, errs.Wrap(err, "decode cached view")
	}
	return gen, true, nil
}

// Set stores value under gen without consulting the current generation. A
// bump since the lookup leaves the entry unreachable.
func (c *RedisViewCache) Set(ctx context.Context, scope, key string, gen shared.Generation, value any) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return errs.Wrap(err, "encode view")
	}
	if err := c.client.Set(ctx, dataKey(scope, gen, key), string(raw), c.ttl).Err(); err != nil {
		return errs.Wrap(err, "write cached view")
	}
	return nil
}

func (c *RedisViewCache) Invalidate(ctx context.Context, scopes ...string) error {
	var firstErr error
	for _, scope := range scopes {
		if err := c.client.Incr(ctx, generationKey(scope)).Err(); err != nil {
			c.logger.Warn("cache invalidation failed", "scope", scope, "error", err.Error())
			if firstErr == nil {
				firstErr = errs.Wrap(err, "bump cache generation")
			}
		}
	}
	return firstErr
}

// Noop is used when caching is disabled.
type Noop struct{}

func (Noop) Get(context.Context, string, string, any) (shared.Generation, bool, error) {
	return 0, false, nil
}
func (Noop) Set(context.Context, string, string, shared.Generation, any) error { return nil }
func (Noop) Invalidate(context.Context, ...string) error { return nil }
