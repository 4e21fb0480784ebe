// Copyright (c) 2026 Foodgram. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package redis provides the go-redis client behind the catalog cache.

Redis only holds read-through copies of tags and ingredients (see package
cache). A slow or missing Redis must cost a request a few hundred milliseconds
at most before the caller falls back to Postgres, so the client is tuned for
fast failure rather than patience.
*/
package redis

import (
	stdctx "context"
	"fmt"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"
)

// clientName is sent with CLIENT SETNAME so cache connections are visible in CLIENT LIST.
const clientName = "foodgram-cache"

// Cache defaults, applied when the URL does not set them.
const (
	dialTimeout  = time.Second
	readTimeout  = 500 * time.Millisecond
	writeTimeout = 500 * time.Millisecond
	poolTimeout  = time.Second
	maxRetries   = 1
	pingTimeout  = 2 * time.Second
)

/*
Options parses redisURL and fills in the cache defaults.

Description: Settings given as URL query parameters, such as read_timeout or
pool_size, win over the defaults. Context deadlines are always
honoured so a request deadline also bounds its cache round trips.
*/
func Options(redisURL string) (*redis.Options, error) {
	options, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("redis: invalid URL: %w", err)
	}

	options.ContextTimeoutEnabled = true

	if options.ClientName == "" {
		options.ClientName = clientName
	}
	if options.DialTimeout == 0 {
		options.DialTimeout = dialTimeout
	}
	if options.ReadTimeout == 0 {
		options.ReadTimeout = readTimeout
	}
	if options.WriteTimeout == 0 {
		options.WriteTimeout = writeTimeout
	}
	if options.PoolTimeout == 0 {
		options.PoolTimeout = poolTimeout
	}
	if options.MaxRetries == 0 {
		options.MaxRetries = maxRetries
	}

	// The catalog is small and hot; a handful of connections covers it.
	if options.PoolSize == 0 {
		options.PoolSize = 8
	}
	if options.MinIdleConns == 0 {
		options.MinIdleConns = 1
	}

	return options, nil
}

// NewClient builds a client from [Options] and pings it once.
func NewClient(context stdctx.Context, redisURL string, logger *slog.Logger) (*redis.Client, error) {
	options, err := Options(redisURL)
	if err != nil {
		return nil, err
	}

	client := redis.NewClient(options)
	if err := Ping(context, client); err != nil {
		_ = client.Close()
		return nil, err
	}

	logger.Info("redis_client_connected",
		slog.String("addr", options.Addr),
		slog.Int("db", options.DB),
		slog.Duration("read_timeout", options.ReadTimeout),
	)
	return client, nil
}

// Ping verifies that the Redis client is healthy.
func Ping(context stdctx.Context, client *redis.Client) error {
	pingCtx, cancel := stdctx.WithTimeout(context, pingTimeout)
	defer cancel()

	if err := client.Ping(pingCtx).Err(); err != nil {
		return fmt.Errorf("redis: ping failed: %w", err)
	}
	return nil
}
