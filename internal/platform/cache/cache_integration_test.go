// Copyright (c) 2026 Foodgram. All rights reserved.
// Author: tai.buivan.jp@gmail.com

//go:build integration

package cache_test

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/foodgram/internal/platform/cache"
	"github.com/taibuivan/foodgram/internal/platform/testinfra"
)

func TestRedis_ReadThroughAndInvalidate(t *testing.T) {
	ctx := context.Background()
	client := testinfra.StartRedis(t)
	catalog := cache.New(client, time.Minute, testinfra.Logger())

	calls := 0
	load := func(context.Context) ([]string, error) {
		calls++
		return []string{"breakfast", "lunch"}, nil
	}

	for range 3 {
		tags, err := cache.GetOrLoad(ctx, catalog, "catalog:tag:all", load)
		require.NoError(t, err)
		assert.Equal(t, []string{"breakfast", "lunch"}, tags)
	}
	assert.Equal(t, 1, calls)

	ttl, err := client.TTL(ctx, "catalog:tag:all").Result()
	require.NoError(t, err)
	assert.Positive(t, ttl)

	for i := range 250 {
		require.NoError(t, client.Set(ctx, fmt.Sprintf("catalog:tag:id:%d", i), "{}", 0).Err())
	}
	require.NoError(t, client.Set(ctx, "catalog:ingredient:all", "[]", 0).Err())

	removed, err := catalog.InvalidatePrefix(ctx, "catalog:tag:")
	require.NoError(t, err)
	assert.Equal(t, 251, removed)

	exists, err := client.Exists(ctx, "catalog:ingredient:all").Result()
	require.NoError(t, err)
	assert.Equal(t, int64(1), exists)

	_, err = cache.GetOrLoad(ctx, catalog, "catalog:tag:all", load)
	require.NoError(t, err)
	assert.Equal(t, 2, calls)
}
