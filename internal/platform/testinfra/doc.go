// Copyright (c) 2026 Foodgram. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package testinfra starts throwaway PostgreSQL containers for integration tests.
//
// Files are guarded by the "integration" build tag:
//
//	go test -tags integration ./...
//
// Tests are skipped when no Docker daemon is reachable.
package testinfra
