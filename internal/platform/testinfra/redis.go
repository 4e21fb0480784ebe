// Copyright (c) 2026 Foodgram. All rights reserved.
// Author: tai.buivan.jp@gmail.com

//go:build integration

package testinfra

import (
	"context"
	"testing"

	"github.com/redis/go-redis/v9"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"

	redisstore "github.com/taibuivan/foodgram/internal/platform/redis"
)

const (
	redisImage = "redis:7-alpine"
	redisPort  = "6379/tcp"
)

// StartRedis runs a fresh Redis container and returns a connected client.
func StartRedis(t *testing.T) *redis.Client {
	t.Helper()
	SkipIfNoDocker(t)

	ctx := context.Background()

	container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: testcontainers.ContainerRequest{
			Image:        redisImage,
			ExposedPorts: []string{redisPort},
			WaitingFor: wait.ForAll(
				wait.ForLog("Ready to accept connections"),
				wait.ForListeningPort(redisPort),
			).WithStartupTimeout(startTimeout),
		},
		Started: true,
	})
	if err != nil {
		t.Fatalf("start redis container: %v", err)
	}
	t.Cleanup(func() {
		if err := container.Terminate(context.Background()); err != nil {
			t.Logf("Warning: failed to terminate container: %v", err)
		}
	})

	endpoint, err := container.PortEndpoint(ctx, redisPort, "redis")
	if err != nil {
		t.Fatalf("get redis endpoint: %v", err)
	}

	client, err := redisstore.NewClient(ctx, endpoint, Logger())
	if err != nil {
		t.Fatalf("connect to redis: %v", err)
	}
	t.Cleanup(func() { _ = client.Close() })

	return client
}
