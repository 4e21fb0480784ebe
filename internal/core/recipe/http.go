// Copyright (c) 2026 Foodgram. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package recipe

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/taibuivan/foodgram/internal/core/relation"
	"github.com/taibuivan/foodgram/internal/core/shopping"
	"github.com/taibuivan/foodgram/internal/platform/middleware"
	requestutil "github.com/taibuivan/foodgram/internal/platform/request"
	"github.com/taibuivan/foodgram/internal/platform/respond"
	"github.com/taibuivan/foodgram/pkg/pagination"
	"github.com/taibuivan/foodgram/pkg/query"
)

// # Handler Implementation

// Handler implements the HTTP layer for recipes, favorites and the cart.
type Handler struct {
	service  *Service
	shopping *shopping.Handler
}

// NewHandler constructs a recipe [Handler]. The shopping handler serves the
// cart download under the same prefix.
func NewHandler(service *Service, shoppingHandler *shopping.Handler) *Handler {
	return &Handler{service: service, shopping: shoppingHandler}
}

// Routes returns a [chi.Router] for /recipes.
//
// # Routing Strategy
//
//   - Reads are public; flags are computed for the viewer when a token is sent.
//   - Writes, favorites, cart and download require authentication.
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()

	router.Get("/", handler.listRecipes)

	router.Group(func(member chi.Router) {
		member.Use(middleware.RequireAuth)

		member.Get("/download_shopping_cart", handler.shopping.Download)

		member.Post("/", handler.createRecipe)
		member.Patch("/{id}", handler.updateRecipe)
		member.Delete("/{id}", handler.deleteRecipe)

		member.Post("/{id}/favorite", handler.mark(relation.Favorite))
		member.Delete("/{id}/favorite", handler.unmark(relation.Favorite))
		member.Post("/{id}/shopping_cart", handler.mark(relation.Cart))
		member.Delete("/{id}/shopping_cart", handler.unmark(relation.Cart))
	})

	router.Get("/{id}", handler.getRecipe)

	return router
}

// # Recipe Endpoints

/*
GET /api/v1/recipes.

Request:
  - tags: string (tag slug, repeatable or comma separated, any-of)
  - author: string (author UUID)
  - is_favorited: 1 (authenticated only)
  - is_in_shopping_cart: 1 (authenticated only)
  - page, limit: int

Response:
  - 200: []Recipe newest first
*/
func (handler *Handler) listRecipes(writer http.ResponseWriter, request *http.Request) {
	paginationParams := pagination.FromRequest(request)
	queryParams := request.URL.Query()

	listQuery := ListQuery{
		TagSlugs:      query.List(queryParams, "tags"),
		AuthorID:      queryParams.Get("author"),
		OnlyFavorited: requestutil.Flag(request, "is_favorited"),
		OnlyInCart:    requestutil.Flag(request, "is_in_shopping_cart"),
	}

	recipes, total, err := handler.service.ListRecipes(request.Context(), requestutil.Viewer(request), listQuery,
		paginationParams.Limit, paginationParams.Offset())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Paginated(writer, recipes, pagination.NewMeta(paginationParams.Page, paginationParams.Limit, total))
}

/*
GET /api/v1/recipes/{id}.

Response:
  - 200: Recipe
  - 404: ErrNotFound: Recipe not found
*/
func (handler *Handler) getRecipe(writer http.ResponseWriter, request *http.Request) {
	recipeID, err := requestutil.UUIDParam(request, "id", "Recipe")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	recipe, err := handler.service.GetRecipe(request.Context(), requestutil.Viewer(request), recipeID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, recipe)
}

/*
POST /api/v1/recipes.

Request:
  - body: Draft

Response:
  - 201: Recipe
  - 400: ErrValidation: Invalid draft
*/
func (handler *Handler) createRecipe(writer http.ResponseWriter, request *http.Request) {
	var draft Draft
	if err := requestutil.DecodeJSON(writer, request, &draft); err != nil {
		respond.Error(writer, request, err)
		return
	}

	recipe, err := handler.service.CreateRecipe(request.Context(), requestutil.Viewer(request), &draft)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.Created(writer, recipe)
}

/*
PATCH /api/v1/recipes/{id}.

Description: Replaces the recipe with the draft. Tags and ingredients are
replaced as a whole.

Response:
  - 200: Recipe
  - 400: ErrValidation: Invalid draft
  - 403: ErrForbidden: Viewer is neither author nor admin
  - 404: ErrNotFound: Recipe not found
*/
func (handler *Handler) updateRecipe(writer http.ResponseWriter, request *http.Request) {
	recipeID, err := requestutil.UUIDParam(request, "id", "Recipe")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var draft Draft
	if err := requestutil.DecodeJSON(writer, request, &draft); err != nil {
		respond.Error(writer, request, err)
		return
	}

	recipe, err := handler.service.UpdateRecipe(request.Context(), requestutil.Viewer(request), recipeID, &draft)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, recipe)
}

// DELETE /api/v1/recipes/{id}
func (handler *Handler) deleteRecipe(writer http.ResponseWriter, request *http.Request) {
	recipeID, err := requestutil.UUIDParam(request, "id", "Recipe")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.service.DeleteRecipe(request.Context(), requestutil.Viewer(request), recipeID); err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.NoContent(writer)
}

// # Favorite and Cart Endpoints

// mark serves POST /{id}/favorite and POST /{id}/shopping_cart.
func (handler *Handler) mark(kind relation.Kind) http.HandlerFunc {
	return func(writer http.ResponseWriter, request *http.Request) {
		recipeID, err := requestutil.UUIDParam(request, "id", "Recipe")
		if err != nil {
			respond.Error(writer, request, err)
			return
		}

		short, err := handler.service.Mark(request.Context(), kind, requestutil.Viewer(request), recipeID)
		if err != nil {
			respond.Error(writer, request, err)
			return
		}
		respond.Created(writer, short)
	}
}

// unmark serves DELETE /{id}/favorite and DELETE /{id}/shopping_cart.
func (handler *Handler) unmark(kind relation.Kind) http.HandlerFunc {
	return func(writer http.ResponseWriter, request *http.Request) {
		recipeID, err := requestutil.UUIDParam(request, "id", "Recipe")
		if err != nil {
			respond.Error(writer, request, err)
			return
		}

		if err := handler.service.Unmark(request.Context(), kind, requestutil.Viewer(request), recipeID); err != nil {
			respond.Error(writer, request, err)
			return
		}
		respond.NoContent(writer)
	}
}
