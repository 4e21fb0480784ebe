// Copyright (c) 2026 Foodgram. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package recipe

import (
	"context"
	"log/slog"

	"github.com/taibuivan/foodgram/internal/core/relation"
	"github.com/taibuivan/foodgram/internal/platform/apperr"
	"github.com/taibuivan/foodgram/internal/platform/sec"
	"github.com/taibuivan/foodgram/pkg/slice"
	"github.com/taibuivan/foodgram/pkg/uuidv7"
)

// # Service

// Service composes recipes and projects them for a viewer.
type Service struct {
	repo      Repository
	relations *relation.Service
	logger    *slog.Logger
}

// NewService constructs a recipe [Service].
func NewService(repo Repository, relations *relation.Service, logger *slog.Logger) *Service {
	return &Service{repo: repo, relations: relations, logger: logger}
}

// # Composer

/*
CreateRecipe validates the draft and stores it as a new recipe by actor.

Returns:
  - *Recipe: the stored recipe as seen by actor
  - error: VALIDATION_ERROR for an invalid draft or unknown tag/ingredient ids
*/
func (service *Service) CreateRecipe(ctx context.Context, actor *sec.Principal, draft *Draft) (*Recipe, error) {
	if actor.IsAnonymous() {
		return nil, apperr.Unauthorized("Authentication required")
	}
	if err := draft.Validate(); err != nil {
		return nil, err
	}

	id := uuidv7.New()
	if err := service.repo.Create(ctx, id, actor.ID(), draft); err != nil {
		return nil, err
	}

	service.logger.InfoContext(ctx, "recipe_created",
		slog.String("recipe_id", id),
		slog.String("author_id", actor.ID()),
		slog.Int("ingredients", len(draft.Ingredients)),
		slog.Int("tags", len(draft.Tags)),
	)

	return service.GetRecipe(ctx, actor, id)
}

/*
UpdateRecipe replaces the recipe's scalars, tags and ingredient lines.

Description: Only the author or an admin may update. The tag set and the
ingredient lines are replaced as a whole; an empty image keeps the stored one.

Returns:
  - error: NOT_FOUND, FORBIDDEN or VALIDATION_ERROR
*/
func (service *Service) UpdateRecipe(ctx context.Context, actor *sec.Principal, id string, draft *Draft) (*Recipe, error) {
	if err := service.authorize(ctx, actor, id); err != nil {
		return nil, err
	}
	if err := draft.Validate(); err != nil {
		return nil, err
	}

	if err := service.repo.Update(ctx, id, draft); err != nil {
		return nil, err
	}

	service.logger.InfoContext(ctx, "recipe_updated",
		slog.String("recipe_id", id),
		slog.String("actor_id", actor.ID()),
	)

	return service.GetRecipe(ctx, actor, id)
}

// DeleteRecipe removes a recipe owned by actor, or any recipe for an admin.
func (service *Service) DeleteRecipe(ctx context.Context, actor *sec.Principal, id string) error {
	if err := service.authorize(ctx, actor, id); err != nil {
		return err
	}

	if err := service.repo.Delete(ctx, id); err != nil {
		return err
	}

	service.logger.InfoContext(ctx, "recipe_deleted",
		slog.String("recipe_id", id),
		slog.String("actor_id", actor.ID()),
	)
	return nil
}

// authorize resolves the recipe owner before the permission check, so a missing
// recipe is NOT_FOUND rather than FORBIDDEN.
func (service *Service) authorize(ctx context.Context, actor *sec.Principal, id string) error {
	if actor.IsAnonymous() {
		return apperr.Unauthorized("Authentication required")
	}

	authorID, err := service.repo.AuthorOf(ctx, id)
	if err != nil {
		return err
	}

	if !actor.CanManage(authorID) {
		return apperr.Forbidden("Only the author can change this recipe")
	}
	return nil
}

// # Read Projection

// GetRecipe returns one recipe as seen by viewer. A nil viewer is anonymous.
func (service *Service) GetRecipe(ctx context.Context, viewer *sec.Principal, id string) (*Recipe, error) {
	recipe, err := service.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := service.project(ctx, viewer, []*Recipe{recipe}); err != nil {
		return nil, err
	}
	return recipe, nil
}

/*
ListRecipes returns a page of recipes as seen by viewer.

Description: The favorited and cart filters only apply to an authenticated
viewer and are ignored otherwise. A malformed author id matches nothing.
*/
func (service *Service) ListRecipes(ctx context.Context, viewer *sec.Principal, query ListQuery, limit, offset int) ([]*Recipe, int, error) {
	filter := Filter{TagSlugs: query.TagSlugs, AuthorID: query.AuthorID}

	if query.AuthorID != "" && !uuidv7.Valid(query.AuthorID) {
		return []*Recipe{}, 0, nil
	}
	if !viewer.IsAnonymous() {
		if query.OnlyFavorited {
			filter.FavoritedBy = viewer.ID()
		}
		if query.OnlyInCart {
			filter.InCartOf = viewer.ID()
		}
	}

	recipes, total, err := service.repo.List(ctx, filter, limit, offset)
	if err != nil {
		return nil, 0, err
	}

	if err := service.project(ctx, viewer, recipes); err != nil {
		return nil, 0, err
	}
	return recipes, total, nil
}

// ListQuery is the viewer-independent form of a listing request.
type ListQuery struct {
	TagSlugs      []string
	AuthorID      string
	OnlyFavorited bool
	OnlyInCart    bool
}

/*
project fills the viewer-relative flags of recipes.

Description: Favorites, cart entries and follows are each resolved with one
batched lookup for the whole page. An anonymous viewer gets every flag false
without touching storage.
*/
func (service *Service) project(ctx context.Context, viewer *sec.Principal, recipes []*Recipe) error {
	if viewer.IsAnonymous() || len(recipes) == 0 {
		return nil
	}

	recipeIDs := slice.Map(recipes, func(recipe *Recipe) string { return recipe.ID })
	authorIDs := slice.Unique(slice.Map(recipes, func(recipe *Recipe) string { return recipe.Author.ID }))

	favorited, err := service.relations.Marked(ctx, relation.Favorite, viewer.ID(), recipeIDs)
	if err != nil {
		return err
	}
	inCart, err := service.relations.Marked(ctx, relation.Cart, viewer.ID(), recipeIDs)
	if err != nil {
		return err
	}
	followed, err := service.relations.Marked(ctx, relation.Follow, viewer.ID(), authorIDs)
	if err != nil {
		return err
	}

	for _, recipe := range recipes {
		recipe.IsFavorited = favorited[recipe.ID]
		recipe.IsInShoppingCart = inCart[recipe.ID]
		recipe.Author.IsSubscribed = followed[recipe.Author.ID]
	}
	return nil
}

// # Favorites and Cart

/*
Mark adds the recipe to the viewer's favorites or cart, depending on kind.

Returns:
  - *Short: the compact recipe view
  - error: NOT_FOUND for an unknown recipe, CONFLICT when already marked
*/
func (service *Service) Mark(ctx context.Context, kind relation.Kind, viewer *sec.Principal, id string) (*Short, error) {
	if viewer.IsAnonymous() {
		return nil, apperr.Unauthorized("Authentication required")
	}

	short, err := service.repo.FindShort(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := service.relations.Add(ctx, kind, viewer.ID(), id); err != nil {
		return nil, err
	}
	return short, nil
}

// Unmark removes the recipe from the viewer's favorites or cart.
func (service *Service) Unmark(ctx context.Context, kind relation.Kind, viewer *sec.Principal, id string) error {
	if viewer.IsAnonymous() {
		return apperr.Unauthorized("Authentication required")
	}

	if _, err := service.repo.FindShort(ctx, id); err != nil {
		return err
	}
	return service.relations.Remove(ctx, kind, viewer.ID(), id)
}
