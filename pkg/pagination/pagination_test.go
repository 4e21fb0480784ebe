// Copyright (c) 2026 Foodgram. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package pagination_test

import (
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/taibuivan/foodgram/pkg/pagination"
)

func TestFromRequest(t *testing.T) {
	tests := []struct {
		query      string
		wantPage   int
		wantLimit  int
		wantOffset int
	}{
		{"", 1, pagination.DefaultLimit, 0},
		{"page=3&limit=10", 3, 10, 20},
		{"page=0&limit=0", 1, pagination.DefaultLimit, 0},
		{"page=-2&limit=500", 1, pagination.DefaultLimit, 0},
		{"page=abc&limit=x", 1, pagination.DefaultLimit, 0},
	}

	for _, tt := range tests {
		t.Run(tt.query, func(t *testing.T) {
			params := pagination.FromRequest(httptest.NewRequest("GET", "/recipes?"+tt.query, nil))
			assert.Equal(t, tt.wantPage, params.Page)
			assert.Equal(t, tt.wantLimit, params.Limit)
			assert.Equal(t, tt.wantOffset, params.Offset())
		})
	}
}

func TestNewMeta(t *testing.T) {
	assert.Equal(t, pagination.Meta{Page: 2, Limit: 6, Total: 13, TotalPages: 3}, pagination.NewMeta(2, 6, 13))
	assert.Equal(t, 0, pagination.NewMeta(1, 6, 0).TotalPages)
	assert.Equal(t, 0, pagination.NewMeta(1, 0, 5).TotalPages)
}
