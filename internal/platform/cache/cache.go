// Copyright (c) 2026 Foodgram. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package cache implements a read-through JSON cache on top of Redis.

Values are encoded with goccy/go-json under a caller-chosen key. Redis is never
the source of truth: read, decode and write failures are logged and the loader
result is returned as if no cache existed. A nil *Cache is valid and always
loads.
*/
package cache

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/goccy/go-json"
	"github.com/redis/go-redis/v9"

	"github.com/taibuivan/foodgram/internal/platform/metrics"
)

// scanBatch is the COUNT hint used while scanning keys for invalidation.
const scanBatch = 200

// Cache stores JSON values in Redis with a fixed TTL.
type Cache struct {
	client redis.UniversalClient
	ttl    time.Duration
	logger *slog.Logger
}

// New creates a cache over client. A zero ttl stores values without expiry.
func New(client redis.UniversalClient, ttl time.Duration, logger *slog.Logger) *Cache {
	return &Cache{client: client, ttl: ttl, logger: logger}
}

// GetOrLoad returns the cached value at key, or calls load and caches its result.
//
// Loader errors are returned as-is and nothing is cached.
func GetOrLoad[T any](ctx context.Context, cache *Cache, key string, load func(ctx context.Context) (T, error)) (T, error) {
	if cache == nil {
		return load(ctx)
	}

	raw, err := cache.client.Get(ctx, key).Bytes()
	switch {
	case err == nil:
		var value T
		decodeErr := json.Unmarshal(raw, &value)
		if decodeErr == nil {
			metrics.CacheLookups.WithLabelValues("hit").Inc()
			return value, nil
		}
		cache.logger.WarnContext(ctx, "cache_decode_failed", slog.String("key", key), slog.Any("error", decodeErr))
	case errors.Is(err, redis.Nil):
		// plain miss
	default:
		cache.logger.WarnContext(ctx, "cache_read_failed", slog.String("key", key), slog.Any("error", err))
	}

	metrics.CacheLookups.WithLabelValues("miss").Inc()

	value, err := load(ctx)
	if err != nil {
		return value, err
	}

	cache.store(ctx, key, value)
	return value, nil
}

func (cache *Cache) store(ctx context.Context, key string, value any) {
	encoded, err := json.Marshal(value)
	if err != nil {
		cache.logger.WarnContext(ctx, "cache_encode_failed", slog.String("key", key), slog.Any("error", err))
		return
	}

	if err := cache.client.Set(ctx, key, encoded, cache.ttl).Err(); err != nil {
		cache.logger.WarnContext(ctx, "cache_write_failed", slog.String("key", key), slog.Any("error", err))
	}
}

// InvalidatePrefix deletes every key starting with prefix and returns how many
// were removed.
func (cache *Cache) InvalidatePrefix(ctx context.Context, prefix string) (int, error) {
	if cache == nil {
		return 0, nil
	}

	removed := 0
	iterator := cache.client.Scan(ctx, 0, prefix+"*", scanBatch).Iterator()

	keys := make([]string, 0, scanBatch)
	for iterator.Next(ctx) {
		keys = append(keys, iterator.Val())
		if len(keys) == scanBatch {
			count, err := cache.client.Del(ctx, keys...).Result()
			if err != nil {
				return removed, err
			}
			removed += int(count)
			keys = keys[:0]
		}
	}
	if err := iterator.Err(); err != nil {
		return removed, err
	}

	if len(keys) > 0 {
		count, err := cache.client.Del(ctx, keys...).Result()
		if err != nil {
			return removed, err
		}
		removed += int(count)
	}

	cache.logger.InfoContext(ctx, "cache_invalidated", slog.String("prefix", prefix), slog.Int("keys", removed))
	return removed, nil
}
