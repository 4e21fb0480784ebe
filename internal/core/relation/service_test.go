// Copyright (c) 2026 Foodgram. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package relation_test

import (
	"context"
	"io"
	"log/slog"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/foodgram/internal/core/relation"
	"github.com/taibuivan/foodgram/internal/platform/apperr"
)

const (
	alice  = "0e5f6c8a-8f0e-4f7c-9d55-1d1c1b0a0001"
	bob    = "0e5f6c8a-8f0e-4f7c-9d55-1d1c1b0a0002"
	recipe = "7a1d2c3b-0000-4000-8000-000000000001"
	ghost  = "7a1d2c3b-0000-4000-8000-0000000000ff"
)

// memoryRepository mimics the primary key and foreign keys of the relation tables.
type memoryRepository struct {
	mu      sync.Mutex
	pairs   map[string]map[[2]string]bool
	known   map[string]bool
	inserts int
}

func newMemoryRepository(known ...string) *memoryRepository {
	repository := &memoryRepository{pairs: map[string]map[[2]string]bool{}, known: map[string]bool{}}
	for _, id := range known {
		repository.known[id] = true
	}
	return repository
}

func (repository *memoryRepository) Insert(_ context.Context, kind relation.Kind, userID, targetID string) error {
	repository.mu.Lock()
	defer repository.mu.Unlock()
	repository.inserts++

	if !repository.known[userID] || !repository.known[targetID] {
		return relation.ErrTargetMissing
	}
	set := repository.pairs[kind.Name]
	if set == nil {
		set = map[[2]string]bool{}
		repository.pairs[kind.Name] = set
	}
	key := [2]string{userID, targetID}
	if set[key] {
		return relation.ErrDuplicate
	}
	set[key] = true
	return nil
}

func (repository *memoryRepository) Delete(_ context.Context, kind relation.Kind, userID, targetID string) (bool, error) {
	repository.mu.Lock()
	defer repository.mu.Unlock()

	key := [2]string{userID, targetID}
	existed := repository.pairs[kind.Name][key]
	delete(repository.pairs[kind.Name], key)
	return existed, nil
}

func (repository *memoryRepository) Marked(_ context.Context, kind relation.Kind, userID string, targetIDs []string) (map[string]bool, error) {
	repository.mu.Lock()
	defer repository.mu.Unlock()

	marked := map[string]bool{}
	for _, id := range targetIDs {
		if repository.pairs[kind.Name][[2]string{userID, id}] {
			marked[id] = true
		}
	}
	return marked, nil
}

func newService(repository relation.Repository) *relation.Service {
	return relation.NewService(repository, slog.New(slog.NewTextHandler(io.Discard, nil)))
}

/*
TestService_Toggle walks every relation kind through add, duplicate add,
remove and remove-again.
*/
func TestService_Toggle(t *testing.T) {
	kinds := []struct {
		kind   relation.Kind
		target string
	}{
		{relation.Follow, bob},
		{relation.Favorite, recipe},
		{relation.Cart, recipe},
	}

	for _, tc := range kinds {
		t.Run(tc.kind.Name, func(t *testing.T) {
			ctx := context.Background()
			service := newService(newMemoryRepository(alice, bob, recipe))

			require.NoError(t, service.Add(ctx, tc.kind, alice, tc.target))

			marked, err := service.IsMarked(ctx, tc.kind, alice, tc.target)
			require.NoError(t, err)
			assert.True(t, marked)

			err = service.Add(ctx, tc.kind, alice, tc.target)
			require.Error(t, err)
			assert.True(t, apperr.HasCode(err, apperr.CodeConflict))
			assert.Equal(t, tc.kind.ConflictMessage, err.Error())

			require.NoError(t, service.Remove(ctx, tc.kind, alice, tc.target))

			err = service.Remove(ctx, tc.kind, alice, tc.target)
			require.Error(t, err)
			assert.True(t, apperr.HasCode(err, apperr.CodeNotFound))
			assert.Equal(t, tc.kind.AbsentMessage, err.Error())

			marked, err = service.IsMarked(ctx, tc.kind, alice, tc.target)
			require.NoError(t, err)
			assert.False(t, marked)
		})
	}
}

/*
TestService_SelfFollow verifies that self follows are rejected before storage
is consulted, whatever the prior state.
*/
func TestService_SelfFollow(t *testing.T) {
	ctx := context.Background()
	repository := newMemoryRepository(alice)
	service := newService(repository)

	for _, attempt := range []func() error{
		func() error { return service.Add(ctx, relation.Follow, alice, alice) },
		func() error { return service.Add(ctx, relation.Follow, alice, alice) },
		func() error { return service.Remove(ctx, relation.Follow, alice, alice) },
	} {
		err := attempt()
		require.Error(t, err)
		assert.True(t, apperr.HasCode(err, apperr.CodeValidation))
	}
	assert.Zero(t, repository.inserts)

	// Favorites and cart entries have no self rule.
	assert.False(t, relation.Favorite.ForbidSelf)
	assert.False(t, relation.Cart.ForbidSelf)
}

func TestService_MissingTarget(t *testing.T) {
	service := newService(newMemoryRepository(alice))

	err := service.Add(context.Background(), relation.Favorite, alice, ghost)
	require.Error(t, err)
	assert.True(t, apperr.HasCode(err, apperr.CodeNotFound))
	assert.Equal(t, "Recipe not found", err.Error())
}

/*
TestService_ConcurrentAdd checks that exactly one of many concurrent adds of the
same pair succeeds and the rest see CONFLICT.
*/
func TestService_ConcurrentAdd(t *testing.T) {
	service := newService(newMemoryRepository(alice, recipe))

	const workers = 16
	results := make(chan error, workers)

	var wg sync.WaitGroup
	for range workers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			results <- service.Add(context.Background(), relation.Cart, alice, recipe)
		}()
	}
	wg.Wait()
	close(results)

	succeeded, conflicts := 0, 0
	for err := range results {
		switch {
		case err == nil:
			succeeded++
		case apperr.HasCode(err, apperr.CodeConflict):
			conflicts++
		}
	}
	assert.Equal(t, 1, succeeded)
	assert.Equal(t, workers-1, conflicts)
}

func TestService_MarkedAnonymous(t *testing.T) {
	service := newService(newMemoryRepository(alice, recipe))
	require.NoError(t, service.Add(context.Background(), relation.Favorite, alice, recipe))

	marked, err := service.Marked(context.Background(), relation.Favorite, "", []string{recipe})
	require.NoError(t, err)
	assert.Empty(t, marked)
}
