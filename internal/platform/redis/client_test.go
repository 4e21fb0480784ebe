// Copyright (c) 2026 Foodgram. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package redis_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	redisstore "github.com/taibuivan/foodgram/internal/platform/redis"
)

/*
TestOptions checks the cache defaults and that URL parameters override them.
*/
func TestOptions(t *testing.T) {
	t.Run("defaults", func(t *testing.T) {
		options, err := redisstore.Options("redis://localhost:6379/2")
		require.NoError(t, err)

		assert.Equal(t, "localhost:6379", options.Addr)
		assert.Equal(t, 2, options.DB)
		assert.Equal(t, "foodgram-cache", options.ClientName)
		assert.True(t, options.ContextTimeoutEnabled)
		assert.Equal(t, 500*time.Millisecond, options.ReadTimeout)
		assert.Equal(t, 500*time.Millisecond, options.WriteTimeout)
		assert.Equal(t, time.Second, options.DialTimeout)
		assert.Equal(t, time.Second, options.PoolTimeout)
		assert.Equal(t, 1, options.MaxRetries)
		assert.Equal(t, 8, options.PoolSize)
	})

	t.Run("url_overrides", func(t *testing.T) {
		options, err := redisstore.Options("redis://localhost:6379/0?read_timeout=3s&pool_size=32&max_retries=4")
		require.NoError(t, err)

		assert.Equal(t, 3*time.Second, options.ReadTimeout)
		assert.Equal(t, 32, options.PoolSize)
		assert.Equal(t, 4, options.MaxRetries)
		assert.Equal(t, 500*time.Millisecond, options.WriteTimeout)
	})

	t.Run("invalid_url", func(t *testing.T) {
		_, err := redisstore.Options("postgres://localhost:5432")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "redis: invalid URL")
	})
}
