// Copyright (c) 2026 Foodgram. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package shopping

import (
	"net/http"

	requestutil "github.com/taibuivan/foodgram/internal/platform/request"
	"github.com/taibuivan/foodgram/internal/platform/respond"
)

// Handler serves shopping list downloads.
type Handler struct {
	service *Service
}

// NewHandler constructs a shopping [Handler].
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

/*
GET /api/v1/recipes/download_shopping_cart.

Description: Sends the viewer's aggregated cart as an attachment.

Request:
  - format: string (csv, json; default csv)

Response:
  - 200: shopping_list.csv or shopping_list.json
  - 400: ErrValidation: Unknown format
  - 401: ErrUnauthorized: Anonymous viewer
*/
func (handler *Handler) Download(writer http.ResponseWriter, request *http.Request) {
	viewer, err := requestutil.RequiredViewer(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	download, err := handler.service.Export(request.Context(), viewer.ID(), request.URL.Query().Get("format"))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Attachment(writer, download.Filename, download.ContentType, download.Body)
}
