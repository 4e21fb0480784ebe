// Copyright (c) 2026 Foodgram. All rights reserved.
// Author: tai.buivan.jp@gmail.com

//go:build integration

package recipe_test

import (
	"context"
	"sync"
	"testing"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/foodgram/internal/core/ingredient"
	"github.com/taibuivan/foodgram/internal/core/recipe"
	"github.com/taibuivan/foodgram/internal/core/relation"
	"github.com/taibuivan/foodgram/internal/core/shopping"
	"github.com/taibuivan/foodgram/internal/platform/apperr"
	"github.com/taibuivan/foodgram/internal/platform/sec"
	"github.com/taibuivan/foodgram/internal/platform/testinfra"
	"github.com/taibuivan/foodgram/internal/users/account"
	"github.com/taibuivan/foodgram/pkg/uuidv7"
)

type stack struct {
	pool      *pgxpool.Pool
	recipes   *recipe.Service
	relations *relation.Service
	shopping  *shopping.Service
	accounts  *account.Service
}

func newStack(t *testing.T) *stack {
	t.Helper()

	pool := testinfra.StartPostgres(t)
	logger := testinfra.Logger()

	relations := relation.NewService(relation.NewPostgresRepository(pool), logger)
	return &stack{
		pool:      pool,
		relations: relations,
		recipes:   recipe.NewService(recipe.NewPostgresRepository(pool), relations, logger),
		shopping:  shopping.NewService(shopping.NewPostgresRepository(pool), logger),
		accounts:  account.NewService(account.NewPostgresRepository(pool), relations, logger),
	}
}

func (s *stack) user(t *testing.T, username string) *sec.Principal {
	t.Helper()
	principal := &sec.Principal{UserID: uuidv7.New(), Username: username, Email: username + "@example.com", Role: sec.RoleMember}
	require.NoError(t, s.accounts.Provision(context.Background(), principal))
	return principal
}

// seedIngredients loads the catalog; a fresh database numbers rows from 1.
func (s *stack) seedIngredients(t *testing.T, rows ...ingredient.Ingredient) {
	t.Helper()
	_, err := ingredient.NewPostgresRepository(s.pool).BulkInsert(context.Background(), rows)
	require.NoError(t, err)
}

func lineIDs(r *recipe.Recipe) []int64 {
	ids := make([]int64, 0, len(r.Ingredients))
	for _, line := range r.Ingredients {
		ids = append(ids, line.ID)
	}
	return ids
}

func tagSlugs(r *recipe.Recipe) []string {
	slugs := make([]string, 0, len(r.Tags))
	for _, tag := range r.Tags {
		slugs = append(slugs, tag.Slug)
	}
	return slugs
}

func TestPostgres_RecipeLifecycle(t *testing.T) {
	ctx := context.Background()
	s := newStack(t)
	s.seedIngredients(t,
		ingredient.Ingredient{Name: "egg", MeasurementUnit: "pcs"},
		ingredient.Ingredient{Name: "flour", MeasurementUnit: "g"},
		ingredient.Ingredient{Name: "milk", MeasurementUnit: "ml"},
	)
	author := s.user(t, "chef")
	stranger := s.user(t, "stranger")

	created, err := s.recipes.CreateRecipe(ctx, author, &recipe.Draft{
		Name: "Pancakes", Text: "Whisk and fry.", CookingTime: 20,
		Tags:        []int64{1, 2},
		Ingredients: []recipe.DraftLine{{ID: 3, Amount: 200}, {ID: 1, Amount: 2}},
	})
	require.NoError(t, err)
	assert.Equal(t, []int64{3, 1}, lineIDs(created))
	assert.ElementsMatch(t, []string{"breakfast", "lunch"}, tagSlugs(created))
	assert.Equal(t, "chef", created.Author.Username)

	t.Run("update replaces tags and lines", func(t *testing.T) {
		updated, err := s.recipes.UpdateRecipe(ctx, author, created.ID, &recipe.Draft{
			Name: "Crepes", Text: "Thinner.", CookingTime: 15,
			Tags:        []int64{3},
			Ingredients: []recipe.DraftLine{{ID: 2, Amount: 100}},
		})
		require.NoError(t, err)

		assert.Equal(t, "Crepes", updated.Name)
		assert.Equal(t, []int64{2}, lineIDs(updated))
		assert.Equal(t, []string{"dinner"}, tagSlugs(updated))
	})

	t.Run("unknown ingredient rolls back", func(t *testing.T) {
		_, err := s.recipes.UpdateRecipe(ctx, author, created.ID, &recipe.Draft{
			Name: "Broken", Text: "x", CookingTime: 1,
			Tags:        []int64{1},
			Ingredients: []recipe.DraftLine{{ID: 999, Amount: 1}},
		})
		require.Error(t, err)
		assert.Equal(t, apperr.CodeValidation, apperr.As(err).Code)

		current, err := s.recipes.GetRecipe(ctx, author, created.ID)
		require.NoError(t, err)
		assert.Equal(t, "Crepes", current.Name)
		assert.Equal(t, []int64{2}, lineIDs(current))
	})

	t.Run("only the author may change it", func(t *testing.T) {
		err := s.recipes.DeleteRecipe(ctx, stranger, created.ID)
		require.Error(t, err)
		assert.Equal(t, apperr.CodeForbidden, apperr.As(err).Code)
	})

	t.Run("viewer flags and filters", func(t *testing.T) {
		_, err := s.recipes.Mark(ctx, relation.Favorite, stranger, created.ID)
		require.NoError(t, err)

		seen, err := s.recipes.GetRecipe(ctx, stranger, created.ID)
		require.NoError(t, err)
		assert.True(t, seen.IsFavorited)
		assert.False(t, seen.IsInShoppingCart)

		anonymous, err := s.recipes.GetRecipe(ctx, nil, created.ID)
		require.NoError(t, err)
		assert.False(t, anonymous.IsFavorited)

		favorites, total, err := s.recipes.ListRecipes(ctx, stranger, recipe.ListQuery{OnlyFavorited: true}, 10, 0)
		require.NoError(t, err)
		assert.Equal(t, 1, total)
		require.Len(t, favorites, 1)

		byTag, total, err := s.recipes.ListRecipes(ctx, nil, recipe.ListQuery{TagSlugs: []string{"breakfast"}}, 10, 0)
		require.NoError(t, err)
		assert.Zero(t, total)
		assert.Empty(t, byTag)
	})

	t.Run("delete cascades", func(t *testing.T) {
		require.NoError(t, s.recipes.DeleteRecipe(ctx, author, created.ID))

		_, err := s.recipes.GetRecipe(ctx, author, created.ID)
		assert.Equal(t, apperr.CodeNotFound, apperr.As(err).Code)

		marked, err := s.relations.IsMarked(ctx, relation.Favorite, stranger.UserID, created.ID)
		require.NoError(t, err)
		assert.False(t, marked)
	})
}

func TestPostgres_ConcurrentToggleHasOneWinner(t *testing.T) {
	ctx := context.Background()
	s := newStack(t)
	s.seedIngredients(t, ingredient.Ingredient{Name: "salt", MeasurementUnit: "g"})
	author := s.user(t, "chef")
	fan := s.user(t, "fan")

	created, err := s.recipes.CreateRecipe(ctx, author, &recipe.Draft{
		Name: "Brine", Text: "Dissolve.", CookingTime: 1,
		Tags:        []int64{1},
		Ingredients: []recipe.DraftLine{{ID: 1, Amount: 30}},
	})
	require.NoError(t, err)

	const attempts = 8
	errs := make([]error, attempts)

	var wg sync.WaitGroup
	for i := range attempts {
		wg.Add(1)
		go func() {
			defer wg.Done()
			errs[i] = s.relations.Add(ctx, relation.Cart, fan.UserID, created.ID)
		}()
	}
	wg.Wait()

	successes, conflicts := 0, 0
	for _, err := range errs {
		switch {
		case err == nil:
			successes++
		case apperr.As(err) != nil && apperr.As(err).Code == apperr.CodeConflict:
			conflicts++
		default:
			t.Fatalf("unexpected error: %v", err)
		}
	}

	assert.Equal(t, 1, successes)
	assert.Equal(t, attempts-1, conflicts)
}

func TestPostgres_ShoppingListAggregation(t *testing.T) {
	ctx := context.Background()
	s := newStack(t)
	s.seedIngredients(t,
		ingredient.Ingredient{Name: "sugar", MeasurementUnit: "g"},
		ingredient.Ingredient{Name: "egg", MeasurementUnit: "pcs"},
		ingredient.Ingredient{Name: "sugar", MeasurementUnit: "tbsp"},
		// Same (name, unit) under a second id sums with id 1.
		ingredient.Ingredient{Name: "sugar", MeasurementUnit: "g"},
	)
	author := s.user(t, "chef")
	shopper := s.user(t, "shopper")

	empty, err := s.shopping.ShoppingList(ctx, shopper.UserID)
	require.NoError(t, err)
	assert.NotNil(t, empty)
	assert.Empty(t, empty)

	drafts := []*recipe.Draft{
		{Name: "Cake", Text: "Bake.", CookingTime: 40, Tags: []int64{1},
			Ingredients: []recipe.DraftLine{{ID: 1, Amount: 200}, {ID: 2, Amount: 3}}},
		{Name: "Meringue", Text: "Whip.", CookingTime: 60, Tags: []int64{1},
			Ingredients: []recipe.DraftLine{{ID: 4, Amount: 50}, {ID: 3, Amount: 2}, {ID: 2, Amount: 4}}},
	}
	for _, draft := range drafts {
		created, err := s.recipes.CreateRecipe(ctx, author, draft)
		require.NoError(t, err)
		_, err = s.recipes.Mark(ctx, relation.Cart, shopper, created.ID)
		require.NoError(t, err)
	}

	items, err := s.shopping.ShoppingList(ctx, shopper.UserID)
	require.NoError(t, err)
	assert.Equal(t, []shopping.Item{
		{Name: "egg", MeasurementUnit: "pcs", TotalAmount: 7},
		{Name: "sugar", MeasurementUnit: "g", TotalAmount: 250},
		{Name: "sugar", MeasurementUnit: "tbsp", TotalAmount: 2},
	}, items)

	download, err := s.shopping.Export(ctx, shopper.UserID, "csv")
	require.NoError(t, err)
	assert.Equal(t, "\ufeffIngredient,unit,amount\negg,pcs,7\nsugar,g,250\nsugar,tbsp,2\n", string(download.Body))
}

func TestPostgres_Subscriptions(t *testing.T) {
	ctx := context.Background()
	s := newStack(t)
	s.seedIngredients(t, ingredient.Ingredient{Name: "rice", MeasurementUnit: "g"})
	author := s.user(t, "chef")
	reader := s.user(t, "reader")

	for _, name := range []string{"Pilaf", "Risotto", "Congee"} {
		_, err := s.recipes.CreateRecipe(ctx, author, &recipe.Draft{
			Name: name, Text: "Cook.", CookingTime: 30, Tags: []int64{3},
			Ingredients: []recipe.DraftLine{{ID: 1, Amount: 100}},
		})
		require.NoError(t, err)
	}

	subscription, err := s.accounts.Subscribe(ctx, reader, author.UserID, 2)
	require.NoError(t, err)
	assert.Equal(t, 3, subscription.RecipesCount)
	assert.Len(t, subscription.Recipes, 2)
	assert.True(t, subscription.IsSubscribed)

	_, err = s.accounts.Subscribe(ctx, reader, author.UserID, 2)
	assert.Equal(t, apperr.CodeConflict, apperr.As(err).Code)

	_, err = s.accounts.Subscribe(ctx, reader, reader.UserID, 2)
	assert.Equal(t, apperr.CodeValidation, apperr.As(err).Code)

	subscriptions, total, err := s.accounts.Subscriptions(ctx, reader, 0, 10, 0)
	require.NoError(t, err)
	assert.Equal(t, 1, total)
	require.Len(t, subscriptions, 1)
	assert.Empty(t, subscriptions[0].Recipes)
	assert.Equal(t, 3, subscriptions[0].RecipesCount)

	require.NoError(t, s.accounts.Unsubscribe(ctx, reader, author.UserID))
	err = s.accounts.Unsubscribe(ctx, reader, author.UserID)
	assert.Equal(t, apperr.CodeNotFound, apperr.As(err).Code)
}
