// Copyright (c) 2026 Foodgram. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package query_test

import (
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/foodgram/pkg/query"
)

func TestList(t *testing.T) {
	tests := []struct {
		raw  string
		want []string
	}{
		{"", nil},
		{"tags=breakfast", []string{"breakfast"}},
		{"tags=breakfast&tags=lunch", []string{"breakfast", "lunch"}},
		{"tags=breakfast,%20lunch,&tags=breakfast", []string{"breakfast", "lunch"}},
		{"tags=,,", nil},
		{"other=x", nil},
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			values, err := url.ParseQuery(tt.raw)
			require.NoError(t, err)
			assert.Equal(t, tt.want, query.List(values, "tags"))
		})
	}
}
