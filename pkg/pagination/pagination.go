// Copyright (c) 2026 Foodgram. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package pagination reads page/limit query parameters and builds the meta
// block of paginated list responses (recipes, users, subscriptions).
package pagination

import (
	"net/http"
	"strconv"
)

const (
	DefaultLimit = 6
	MaxLimit     = 100
	DefaultPage  = 1
)

// Params is a 1-indexed page request.
type Params struct {
	Page  int
	Limit int
}

// Offset returns the SQL OFFSET for the page.
func (p Params) Offset() int {
	if p.Page <= 1 {
		return 0
	}
	return (p.Page - 1) * p.Limit
}

// Meta is the "meta" member of a paginated envelope.
type Meta struct {
	Page       int `json:"page"`
	Limit      int `json:"limit"`
	Total      int `json:"total"`
	TotalPages int `json:"total_pages"`
}

// NewMeta computes TotalPages from total and limit.
func NewMeta(page, limit, total int) Meta {
	totalPages := 0
	if limit > 0 {
		totalPages = (total + limit - 1) / limit
	}

	return Meta{Page: page, Limit: limit, Total: total, TotalPages: totalPages}
}

// FromRequest parses "page" and "limit". Malformed or out of range values
// fall back to the defaults rather than failing the request.
func FromRequest(r *http.Request) Params {
	query := r.URL.Query()

	page := parseInt(query.Get("page"), DefaultPage)
	if page < 1 {
		page = DefaultPage
	}

	limit := parseInt(query.Get("limit"), DefaultLimit)
	if limit < 1 || limit > MaxLimit {
		limit = DefaultLimit
	}

	return Params{Page: page, Limit: limit}
}

func parseInt(raw string, fallback int) int {
	if raw == "" {
		return fallback
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return fallback
	}
	return n
}
