package redis

import (
	"context"
	"encoding/json"
	"net"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// RedisProvider caches board reads (post lists, leaderboards). A cache
// miss or a Redis outage is never fatal: callers fall through to
// Postgres and keep serving.
type RedisProvider struct {
	Client *redis.Client
	URL    string
	logger *zap.SugaredLogger
	ttl    time.Duration
}

func NewRedisProvider(redisURL string, logger *zap.Logger, ttl time.Duration) *RedisProvider {
	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		opts = &redis.Options{
			Addr: redisURL,
			DB:   0,
		}
	}

	client := redis.NewClient(opts)

	client.Options().MaxRetries = 3
	client.Options().MinRetryBackoff = 100 * time.Millisecond
	client.Options().MaxRetryBackoff = 500 * time.Millisecond

	provider := &RedisProvider{
		Client: client,
		URL:    redisURL,
		logger: logger.Sugar(),
		ttl:    ttl,
	}

	client.AddHook(&loggerHook{provider: provider})

	go provider.startConnectionMonitor(context.Background())

	if err := client.Ping(context.Background()).Err(); err != nil {
		provider.logger.Errorw("Redis connection failed at startup", "error", err)
	} else {
		provider.logger.Infow("Redis connected",
			"url", redisURL,
			"db", opts.DB,
			"default_ttl", ttl.String(),
		)
	}

	return provider
}

// GetJSON reads a cached JSON document into dest and reports whether
// the key was present and well-formed.
func (r *RedisProvider) GetJSON(ctx context.Context, key string, dest interface{}) bool {
	data, err := r.Client.Get(ctx, key).Result()
	if err != nil || data == "" {
		return false
	}
	return json.Unmarshal([]byte(data), dest) == nil
}

// SetJSON stores a JSON document under the key. A zero or negative ttl
// falls back to the provider default.
func (r *RedisProvider) SetJSON(ctx context.Context, key string, value interface{}, ttl time.Duration) {
	data, err := json.Marshal(value)
	if err != nil {
		r.logger.Warnw("Failed to marshal cache value", "key", key, "error", err)
		return
	}
	if ttl <= 0 {
		ttl = r.ttl
	}
	if err := r.Client.Set(ctx, key, data, ttl).Err(); err != nil {
		r.logger.Warnw("Failed to set cache key", "key", key, "error", err)
	}
}

// Delete removes cache keys. Missing keys are not an error.
func (r *RedisProvider) Delete(ctx context.Context, keys ...string) {
	if len(keys) == 0 {
		return
	}
	if err := r.Client.Del(ctx, keys...).Err(); err != nil {
		r.logger.Warnw("Failed to delete cache keys", "keys", keys, "error", err)
	}
}

// InvalidatePattern deletes every key matching the pattern, scanning in
// batches so large keyspaces never block Redis.
func (r *RedisProvider) InvalidatePattern(ctx context.Context, pattern string) {
	var cursor uint64
	deleted := 0

	for {
		keys, cur, err := r.Client.Scan(ctx, cursor, pattern, 100).Result()
		if err != nil {
			r.logger.Warnw("Redis scan failed during cache invalidation", "pattern", pattern, "error", err)
			return
		}

		if len(keys) > 0 {
			n, err := r.Client.Del(ctx, keys...).Result()
			if err != nil {
				r.logger.Warnw("Failed to delete cache keys", "keys", keys, "error", err)
			} else {
				deleted += int(n)
			}
		}

		if cur == 0 {
			break
		}
		cursor = cur
	}

	if deleted > 0 {
		r.logger.Debugw("Cache invalidated", "pattern", pattern, "deleted_keys", deleted)
	}
}

func (r *RedisProvider) startConnectionMonitor(ctx context.Context) {
	ticker := time.NewTicker(5 * time.Second)
	defer ticker.Stop()

	var wasConnected bool

	if err := r.Client.Ping(ctx).Err(); err == nil {
		wasConnected = true
	} else {
		r.logger.Warnw("Redis unavailable at startup", "error", err)
	}

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			err := r.Client.Ping(ctx).Err()
			if err != nil {
				if wasConnected {
					r.logger.Errorw("Redis disconnected", "error", err)
					wasConnected = false
				}
			} else {
				if !wasConnected {
					r.logger.Infow("Redis reconnected", "url", r.URL)
					wasConnected = true
				}
			}
		}
	}
}

type loggerHook struct {
	provider *RedisProvider
}

func (h *loggerHook) DialHook(next redis.DialHook) redis.DialHook {
	return func(ctx context.Context, network, addr string) (net.Conn, error) {
		conn, err := next(ctx, network, addr)
		if err != nil {
			h.provider.logger.Errorw("Redis dial failed", "network", network, "addr", addr, "error", err)
		}
		return conn, err
	}
}

func (h *loggerHook) ProcessHook(next redis.ProcessHook) redis.ProcessHook {
	return func(ctx context.Context, cmd redis.Cmder) error {
		start := time.Now()
		err := next(ctx, cmd)
		duration := time.Since(start)

		if cmd.Name() == "ping" && err == nil {
			return err
		}

		if err != nil && err != redis.Nil {
			h.provider.logger.Errorw("Redis command failed",
				"command", cmd.Name(),
				"duration_ms", duration.Milliseconds(),
				"error", err,
			)
		} else {
			h.provider.logger.Debugw("Redis command executed",
				"command", cmd.Name(),
				"duration_ms", duration.Milliseconds(),
			)
		}

		return err
	}
}

func (h *loggerHook) ProcessPipelineHook(next redis.ProcessPipelineHook) redis.ProcessPipelineHook {
	return func(ctx context.Context, cmds []redis.Cmder) error {
		return next(ctx, cmds)
	}
}
