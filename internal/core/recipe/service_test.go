// Copyright (c) 2026 Foodgram. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package recipe_test

import (
	"context"
	"io"
	"log/slog"
	"slices"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/foodgram/internal/core/recipe"
	"github.com/taibuivan/foodgram/internal/core/relation"
	"github.com/taibuivan/foodgram/internal/platform/apperr"
	"github.com/taibuivan/foodgram/internal/platform/sec"
)

var (
	author = &sec.Principal{UserID: "0e5f6c8a-8f0e-4f7c-9d55-1d1c1b0a0001", Username: "chef", Role: sec.RoleMember}
	reader = &sec.Principal{UserID: "0e5f6c8a-8f0e-4f7c-9d55-1d1c1b0a0002", Username: "reader", Role: sec.RoleMember}
	admin  = &sec.Principal{UserID: "0e5f6c8a-8f0e-4f7c-9d55-1d1c1b0a0003", Username: "root", Role: sec.RoleAdmin}
)

// memoryRecipes stores drafts keyed by recipe id.
type memoryRecipes struct {
	mu      sync.Mutex
	drafts  map[string]recipe.Draft
	authors map[string]string
	order   []string
}

func newMemoryRecipes() *memoryRecipes {
	return &memoryRecipes{drafts: map[string]recipe.Draft{}, authors: map[string]string{}}
}

func (store *memoryRecipes) Create(_ context.Context, id, authorID string, draft *recipe.Draft) error {
	store.mu.Lock()
	defer store.mu.Unlock()
	store.drafts[id] = *draft
	store.authors[id] = authorID
	store.order = append(store.order, id)
	return nil
}

func (store *memoryRecipes) Update(_ context.Context, id string, draft *recipe.Draft) error {
	store.mu.Lock()
	defer store.mu.Unlock()
	previous, ok := store.drafts[id]
	if !ok {
		return apperr.NotFound("Recipe")
	}
	if draft.Image == "" {
		draft.Image = previous.Image
	}
	store.drafts[id] = *draft
	return nil
}

func (store *memoryRecipes) Delete(_ context.Context, id string) error {
	store.mu.Lock()
	defer store.mu.Unlock()
	if _, ok := store.drafts[id]; !ok {
		return apperr.NotFound("Recipe")
	}
	delete(store.drafts, id)
	store.order = slices.DeleteFunc(store.order, func(other string) bool { return other == id })
	return nil
}

func (store *memoryRecipes) AuthorOf(_ context.Context, id string) (string, error) {
	store.mu.Lock()
	defer store.mu.Unlock()
	authorID, ok := store.authors[id]
	if !ok {
		return "", apperr.NotFound("Recipe")
	}
	return authorID, nil
}

func (store *memoryRecipes) FindByID(_ context.Context, id string) (*recipe.Recipe, error) {
	store.mu.Lock()
	defer store.mu.Unlock()
	return store.project(id)
}

func (store *memoryRecipes) project(id string) (*recipe.Recipe, error) {
	draft, ok := store.drafts[id]
	if !ok {
		return nil, apperr.NotFound("Recipe")
	}

	lines := make([]recipe.Line, 0, len(draft.Ingredients))
	for _, line := range draft.Ingredients {
		lines = append(lines, recipe.Line{ID: line.ID, Amount: line.Amount})
	}

	return &recipe.Recipe{
		ID:          id,
		Author:      recipe.Author{ID: store.authors[id]},
		Ingredients: lines,
		Name:        draft.Name,
		Image:       draft.Image,
		Text:        draft.Text,
		CookingTime: draft.CookingTime,
		PubDate:     time.Now(),
	}, nil
}

func (store *memoryRecipes) FindShort(_ context.Context, id string) (*recipe.Short, error) {
	store.mu.Lock()
	defer store.mu.Unlock()
	draft, ok := store.drafts[id]
	if !ok {
		return nil, apperr.NotFound("Recipe")
	}
	return &recipe.Short{ID: id, Name: draft.Name, Image: draft.Image, CookingTime: draft.CookingTime}, nil
}

func (store *memoryRecipes) List(_ context.Context, filter recipe.Filter, limit, offset int) ([]*recipe.Recipe, int, error) {
	store.mu.Lock()
	defer store.mu.Unlock()

	var matched []*recipe.Recipe
	for index := len(store.order) - 1; index >= 0; index-- {
		id := store.order[index]
		if filter.AuthorID != "" && store.authors[id] != filter.AuthorID {
			continue
		}
		projected, _ := store.project(id)
		matched = append(matched, projected)
	}

	total := len(matched)
	if offset >= total {
		return []*recipe.Recipe{}, total, nil
	}
	return matched[offset:min(total, offset+limit)], total, nil
}

// memoryRelations is a minimal relation store without foreign keys.
type memoryRelations struct {
	mu    sync.Mutex
	pairs map[string]bool
}

func key(kind relation.Kind, userID, targetID string) string {
	return kind.Name + "|" + userID + "|" + targetID
}

func (store *memoryRelations) Insert(_ context.Context, kind relation.Kind, userID, targetID string) error {
	store.mu.Lock()
	defer store.mu.Unlock()
	if store.pairs[key(kind, userID, targetID)] {
		return relation.ErrDuplicate
	}
	store.pairs[key(kind, userID, targetID)] = true
	return nil
}

func (store *memoryRelations) Delete(_ context.Context, kind relation.Kind, userID, targetID string) (bool, error) {
	store.mu.Lock()
	defer store.mu.Unlock()
	existed := store.pairs[key(kind, userID, targetID)]
	delete(store.pairs, key(kind, userID, targetID))
	return existed, nil
}

func (store *memoryRelations) Marked(_ context.Context, kind relation.Kind, userID string, targetIDs []string) (map[string]bool, error) {
	store.mu.Lock()
	defer store.mu.Unlock()
	marked := map[string]bool{}
	for _, id := range targetIDs {
		if store.pairs[key(kind, userID, id)] {
			marked[id] = true
		}
	}
	return marked, nil
}

type fixture struct {
	recipes   *memoryRecipes
	relations *relation.Service
	service   *recipe.Service
}

func newFixture() *fixture {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	recipes := newMemoryRecipes()
	relations := relation.NewService(&memoryRelations{pairs: map[string]bool{}}, logger)
	return &fixture{
		recipes:   recipes,
		relations: relations,
		service:   recipe.NewService(recipes, relations, logger),
	}
}

func TestService_CreateRecipe(t *testing.T) {
	ctx := context.Background()
	fx := newFixture()

	created, err := fx.service.CreateRecipe(ctx, author, validDraft())
	require.NoError(t, err)
	assert.NotEmpty(t, created.ID)
	assert.Equal(t, author.UserID, created.Author.ID)
	assert.Len(t, created.Ingredients, 2)
	assert.False(t, created.IsFavorited)

	t.Run("anonymous", func(t *testing.T) {
		_, err := fx.service.CreateRecipe(ctx, nil, validDraft())
		assert.True(t, apperr.HasCode(err, apperr.CodeUnauthorized))
	})

	t.Run("invalid_draft_writes_nothing", func(t *testing.T) {
		before := len(fx.recipes.drafts)
		draft := validDraft()
		draft.Ingredients = nil

		_, err := fx.service.CreateRecipe(ctx, author, draft)
		assert.True(t, apperr.HasCode(err, apperr.CodeValidation))
		assert.Len(t, fx.recipes.drafts, before)
	})
}

/*
TestService_UpdateRecipe verifies ownership rules and full replacement of the
ingredient lines.
*/
func TestService_UpdateRecipe(t *testing.T) {
	ctx := context.Background()
	fx := newFixture()

	draft := validDraft()
	draft.Image = "data:image/png;base64,AAAA"
	created, err := fx.service.CreateRecipe(ctx, author, draft)
	require.NoError(t, err)

	replacement := validDraft()
	replacement.Ingredients = []recipe.DraftLine{{ID: 9, Amount: 3}}

	t.Run("stranger_forbidden", func(t *testing.T) {
		_, err := fx.service.UpdateRecipe(ctx, reader, created.ID, validDraft())
		assert.True(t, apperr.HasCode(err, apperr.CodeForbidden))
	})

	t.Run("missing_recipe", func(t *testing.T) {
		_, err := fx.service.UpdateRecipe(ctx, author, "7a1d2c3b-0000-4000-8000-0000000000ff", validDraft())
		assert.True(t, apperr.HasCode(err, apperr.CodeNotFound))
	})

	t.Run("author_replaces_lines", func(t *testing.T) {
		updated, err := fx.service.UpdateRecipe(ctx, author, created.ID, replacement)
		require.NoError(t, err)
		assert.Equal(t, []recipe.Line{{ID: 9, Amount: 3}}, updated.Ingredients)
		assert.Equal(t, "data:image/png;base64,AAAA", updated.Image)
	})

	t.Run("admin_allowed", func(t *testing.T) {
		_, err := fx.service.UpdateRecipe(ctx, admin, created.ID, validDraft())
		require.NoError(t, err)
	})
}

func TestService_DeleteRecipe(t *testing.T) {
	ctx := context.Background()
	fx := newFixture()

	created, err := fx.service.CreateRecipe(ctx, author, validDraft())
	require.NoError(t, err)

	assert.True(t, apperr.HasCode(fx.service.DeleteRecipe(ctx, reader, created.ID), apperr.CodeForbidden))
	require.NoError(t, fx.service.DeleteRecipe(ctx, author, created.ID))
	assert.True(t, apperr.HasCode(fx.service.DeleteRecipe(ctx, author, created.ID), apperr.CodeNotFound))
}

/*
TestService_Projection checks that flags follow the viewer's relations and stay
false for anonymous viewers.
*/
func TestService_Projection(t *testing.T) {
	ctx := context.Background()
	fx := newFixture()

	created, err := fx.service.CreateRecipe(ctx, author, validDraft())
	require.NoError(t, err)

	_, err = fx.service.Mark(ctx, relation.Favorite, reader, created.ID)
	require.NoError(t, err)
	require.NoError(t, fx.relations.Add(ctx, relation.Follow, reader.UserID, author.UserID))

	viewed, err := fx.service.GetRecipe(ctx, reader, created.ID)
	require.NoError(t, err)
	assert.True(t, viewed.IsFavorited)
	assert.False(t, viewed.IsInShoppingCart)
	assert.True(t, viewed.Author.IsSubscribed)

	anonymous, err := fx.service.GetRecipe(ctx, nil, created.ID)
	require.NoError(t, err)
	assert.False(t, anonymous.IsFavorited)
	assert.False(t, anonymous.IsInShoppingCart)
	assert.False(t, anonymous.Author.IsSubscribed)

	listed, total, err := fx.service.ListRecipes(ctx, reader, recipe.ListQuery{}, 10, 0)
	require.NoError(t, err)
	assert.Equal(t, 1, total)
	assert.True(t, listed[0].IsFavorited)
}

func TestService_MarkToggle(t *testing.T) {
	ctx := context.Background()
	fx := newFixture()

	created, err := fx.service.CreateRecipe(ctx, author, validDraft())
	require.NoError(t, err)

	short, err := fx.service.Mark(ctx, relation.Cart, reader, created.ID)
	require.NoError(t, err)
	assert.Equal(t, created.ID, short.ID)

	_, err = fx.service.Mark(ctx, relation.Cart, reader, created.ID)
	assert.True(t, apperr.HasCode(err, apperr.CodeConflict))

	require.NoError(t, fx.service.Unmark(ctx, relation.Cart, reader, created.ID))
	assert.True(t, apperr.HasCode(fx.service.Unmark(ctx, relation.Cart, reader, created.ID), apperr.CodeNotFound))

	_, err = fx.service.Mark(ctx, relation.Favorite, reader, "7a1d2c3b-0000-4000-8000-0000000000ff")
	assert.True(t, apperr.HasCode(err, apperr.CodeNotFound))
}

func TestService_ListRecipes_MalformedAuthor(t *testing.T) {
	fx := newFixture()
	_, err := fx.service.CreateRecipe(context.Background(), author, validDraft())
	require.NoError(t, err)

	listed, total, err := fx.service.ListRecipes(context.Background(), nil, recipe.ListQuery{AuthorID: "chef"}, 10, 0)
	require.NoError(t, err)
	assert.Empty(t, listed)
	assert.Zero(t, total)
}
