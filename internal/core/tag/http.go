// Copyright (c) 2026 Foodgram. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package tag

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	requestutil "github.com/taibuivan/foodgram/internal/platform/request"
	"github.com/taibuivan/foodgram/internal/platform/respond"
)

// Handler exposes the read-only tag catalog.
type Handler struct {
	service *Service
}

// NewHandler constructs a tag [Handler].
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Routes returns a [chi.Router] for /tags.
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()
	router.Get("/", handler.listTags)
	router.Get("/{id}", handler.getTag)
	return router
}

// GET /api/v1/tags
func (handler *Handler) listTags(writer http.ResponseWriter, request *http.Request) {
	tags, err := handler.service.ListTags(request.Context())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, tags)
}

// GET /api/v1/tags/{id}
func (handler *Handler) getTag(writer http.ResponseWriter, request *http.Request) {
	tagID, err := requestutil.IntParam(request, "id", "Tag")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	tag, err := handler.service.GetTag(request.Context(), tagID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, tag)
}
