// Copyright (c) 2026 Foodgram. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package ingredient

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	requestutil "github.com/taibuivan/foodgram/internal/platform/request"
	"github.com/taibuivan/foodgram/internal/platform/respond"
)

// Handler exposes the read-only ingredient catalog.
type Handler struct {
	service *Service
}

// NewHandler constructs an ingredient [Handler].
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Routes returns a [chi.Router] for /ingredients.
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()
	router.Get("/", handler.listIngredients)
	router.Get("/{id}", handler.getIngredient)
	return router
}

/*
GET /api/v1/ingredients.

Request:
  - name: string (case-insensitive name prefix)

Response:
  - 200: []Ingredient ordered by name
*/
func (handler *Handler) listIngredients(writer http.ResponseWriter, request *http.Request) {
	ingredients, err := handler.service.SearchIngredients(request.Context(), request.URL.Query().Get("name"))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, ingredients)
}

// GET /api/v1/ingredients/{id}
func (handler *Handler) getIngredient(writer http.ResponseWriter, request *http.Request) {
	ingredientID, err := requestutil.IntParam(request, "id", "Ingredient")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	ingredient, err := handler.service.GetIngredient(request.Context(), ingredientID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, ingredient)
}
