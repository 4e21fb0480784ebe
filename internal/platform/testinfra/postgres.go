// Copyright (c) 2026 Foodgram. All rights reserved.
// Author: tai.buivan.jp@gmail.com

//go:build integration

package testinfra

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os/exec"
	"path/filepath"
	"runtime"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/taibuivan/foodgram/internal/platform/migration"
	pgstore "github.com/taibuivan/foodgram/internal/platform/postgres"
)

const (
	postgresImage = "postgres:16-alpine"
	postgresPort  = "5432/tcp"
	startTimeout  = 90 * time.Second
)

// SkipIfNoDocker skips the test when the Docker daemon is unavailable.
func SkipIfNoDocker(t *testing.T) {
	t.Helper()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if exec.CommandContext(ctx, "docker", "info").Run() != nil {
		t.Skip("Skipping test: Docker not available")
	}
}

// Logger discards output; integration assertions never read logs.
func Logger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// StartPostgres runs a fresh PostgreSQL container, applies every migration and
// returns a pool to it. The container is terminated when the test ends.
func StartPostgres(t *testing.T) *pgxpool.Pool {
	t.Helper()
	SkipIfNoDocker(t)

	ctx := context.Background()

	container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: testcontainers.ContainerRequest{
			Image:        postgresImage,
			ExposedPorts: []string{postgresPort},
			Env: map[string]string{
				"POSTGRES_USER":     "foodgram",
				"POSTGRES_PASSWORD": "foodgram",
				"POSTGRES_DB":       "foodgram",
			},
			// The server restarts once after init scripts; wait for the second banner.
			WaitingFor: wait.ForAll(
				wait.ForLog("database system is ready to accept connections").WithOccurrence(2),
				wait.ForListeningPort(postgresPort),
			).WithStartupTimeout(startTimeout),
		},
		Started: true,
	})
	if err != nil {
		t.Fatalf("start postgres container: %v", err)
	}
	t.Cleanup(func() {
		if err := container.Terminate(context.Background()); err != nil {
			t.Logf("Warning: failed to terminate container: %v", err)
		}
	})

	host, err := container.Host(ctx)
	if err != nil {
		t.Fatalf("get container host: %v", err)
	}
	port, err := container.MappedPort(ctx, postgresPort)
	if err != nil {
		t.Fatalf("get mapped port: %v", err)
	}

	dsn := fmt.Sprintf("postgres://foodgram:foodgram@%s:%s/foodgram?sslmode=disable", host, port.Port())
	logger := Logger()

	if err := migration.RunUp(dsn, migrationsDir(), logger); err != nil {
		t.Fatalf("apply migrations: %v", err)
	}

	pool, err := pgstore.NewPool(ctx, dsn, logger)
	if err != nil {
		t.Fatalf("connect to postgres: %v", err)
	}
	t.Cleanup(pool.Close)

	return pool
}

// migrationsDir resolves data/migrations relative to this source file so that
// tests work from any package directory.
func migrationsDir() string {
	_, file, _, _ := runtime.Caller(0)
	return filepath.Join(filepath.Dir(file), "..", "..", "..", "data", "migrations")
}
