// Copyright (c) 2026 Foodgram. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package account

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/taibuivan/foodgram/internal/platform/middleware"
	requestutil "github.com/taibuivan/foodgram/internal/platform/request"
	"github.com/taibuivan/foodgram/internal/platform/respond"
	"github.com/taibuivan/foodgram/internal/platform/validate"
	"github.com/taibuivan/foodgram/pkg/pagination"
)

// Handler implements the HTTP layer for users and subscriptions.
type Handler struct {
	service             *Service
	defaultRecipesLimit int
}

// NewHandler constructs an account [Handler]. defaultRecipesLimit applies when
// a request carries no recipes_limit.
func NewHandler(service *Service, defaultRecipesLimit int) *Handler {
	return &Handler{service: service, defaultRecipesLimit: defaultRecipesLimit}
}

// Routes returns a [chi.Router] for /users.
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()

	router.Get("/", handler.listUsers)

	router.Group(func(member chi.Router) {
		member.Use(middleware.RequireAuth)

		member.Get("/me", handler.getMe)
		member.Get("/subscriptions", handler.listSubscriptions)
		member.Post("/{id}/subscribe", handler.subscribe)
		member.Delete("/{id}/subscribe", handler.unsubscribe)
	})

	router.Get("/{id}", handler.getUser)

	return router
}

// recipesLimit parses recipes_limit, falling back to the configured default.
func (handler *Handler) recipesLimit(request *http.Request) (int, error) {
	raw := request.URL.Query().Get("recipes_limit")
	if raw == "" {
		return handler.defaultRecipesLimit, nil
	}

	limit, err := strconv.Atoi(raw)
	if err != nil {
		return 0, validate.FieldError("recipes_limit", "Must be an integer")
	}
	if err := (&validate.Validator{}).Min("recipes_limit", int64(limit), 0).Err(); err != nil {
		return 0, err
	}
	return limit, nil
}

// # Profile Endpoints

// GET /api/v1/users
func (handler *Handler) listUsers(writer http.ResponseWriter, request *http.Request) {
	paginationParams := pagination.FromRequest(request)

	users, total, err := handler.service.ListUsers(request.Context(), requestutil.Viewer(request),
		paginationParams.Limit, paginationParams.Offset())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.Paginated(writer, users, pagination.NewMeta(paginationParams.Page, paginationParams.Limit, total))
}

/*
GET /api/v1/users/{id}.

Response:
  - 200: User
  - 404: ErrNotFound: User not found
*/
func (handler *Handler) getUser(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.UUIDParam(request, "id", "User")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	user, err := handler.service.GetUser(request.Context(), requestutil.Viewer(request), userID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, user)
}

// GET /api/v1/users/me
func (handler *Handler) getMe(writer http.ResponseWriter, request *http.Request) {
	user, err := handler.service.Me(request.Context(), requestutil.Viewer(request))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, user)
}

// # Subscription Endpoints

/*
GET /api/v1/users/subscriptions.

Request:
  - recipes_limit: int (recipe previews per author)
  - page, limit: int

Response:
  - 200: []Subscription ordered by username
*/
func (handler *Handler) listSubscriptions(writer http.ResponseWriter, request *http.Request) {
	recipesLimit, err := handler.recipesLimit(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	paginationParams := pagination.FromRequest(request)

	subscriptions, total, err := handler.service.Subscriptions(request.Context(), requestutil.Viewer(request),
		recipesLimit, paginationParams.Limit, paginationParams.Offset())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.Paginated(writer, subscriptions, pagination.NewMeta(paginationParams.Page, paginationParams.Limit, total))
}

/*
POST /api/v1/users/{id}/subscribe.

Response:
  - 201: Subscription
  - 400: ErrValidation: Self subscription
  - 404: ErrNotFound: User not found
  - 409: ErrConflict: Already subscribed
*/
func (handler *Handler) subscribe(writer http.ResponseWriter, request *http.Request) {
	authorID, err := requestutil.UUIDParam(request, "id", "User")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	recipesLimit, err := handler.recipesLimit(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	subscription, err := handler.service.Subscribe(request.Context(), requestutil.Viewer(request), authorID, recipesLimit)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.Created(writer, subscription)
}

// DELETE /api/v1/users/{id}/subscribe
func (handler *Handler) unsubscribe(writer http.ResponseWriter, request *http.Request) {
	authorID, err := requestutil.UUIDParam(request, "id", "User")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.service.Unsubscribe(request.Context(), requestutil.Viewer(request), authorID); err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.NoContent(writer)
}
