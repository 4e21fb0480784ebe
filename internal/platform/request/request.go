// Copyright (c) 2026 Foodgram. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package requestutil extracts typed data from HTTP requests: JSON bodies, URL
parameters, query flags and the acting principal.
*/
package requestutil

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/goccy/go-json"
	"github.com/google/uuid"

	"github.com/taibuivan/foodgram/internal/platform/apperr"
	"github.com/taibuivan/foodgram/internal/platform/ctxutil"
	"github.com/taibuivan/foodgram/internal/platform/sec"
	"github.com/taibuivan/foodgram/internal/platform/validate"
)

// maxBodyBytes caps JSON request bodies.
const maxBodyBytes = 1 << 20

/*
DecodeJSON reads the request body and decodes it into the target structure.

Unknown fields are rejected so that typos in payloads surface as errors.

Returns:
  - error: validate.ErrInvalidJSON if decoding fails, otherwise nil
*/
func DecodeJSON(writer http.ResponseWriter, request *http.Request, target any) error {
	request.Body = http.MaxBytesReader(writer, request.Body, maxBodyBytes)

	decoder := json.NewDecoder(request.Body)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(target); err != nil {
		return validate.ErrInvalidJSON
	}
	return nil
}

/*
IntParam parses a named URL parameter as a positive integer.

Returns:
  - apperr.NotFound(resource) when the parameter is not a positive integer,
    since no such row can exist.
*/
func IntParam(request *http.Request, name, resource string) (int64, error) {
	value, err := strconv.ParseInt(chi.URLParam(request, name), 10, 64)
	if err != nil || value < 1 {
		return 0, apperr.NotFound(resource)
	}
	return value, nil
}

// UUIDParam parses a named URL parameter as a UUID and returns its canonical
// form. A malformed value is apperr.NotFound(resource).
func UUIDParam(request *http.Request, name, resource string) (string, error) {
	parsed, err := uuid.Parse(chi.URLParam(request, name))
	if err != nil {
		return "", apperr.NotFound(resource)
	}
	return parsed.String(), nil
}

// Flag reports whether a query parameter is set to a truthy value ("1", "true").
func Flag(request *http.Request, name string) bool {
	switch strings.ToLower(request.URL.Query().Get(name)) {
	case "1", "true", "yes":
		return true
	}
	return false
}

// Viewer returns the principal of the request, nil for anonymous viewers.
func Viewer(request *http.Request) *sec.Principal {
	return ctxutil.GetPrincipal(request.Context())
}

/*
RequiredViewer returns the authenticated principal.

Returns:
  - error: apperr.Unauthorized if the request is anonymous
*/
func RequiredViewer(request *http.Request) (*sec.Principal, error) {
	principal := ctxutil.GetPrincipal(request.Context())
	if principal.IsAnonymous() {
		return nil, apperr.Unauthorized("Authentication required")
	}
	return principal, nil
}
