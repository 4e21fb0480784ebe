// Copyright (c) 2026 Foodgram. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package slug_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/taibuivan/foodgram/pkg/slug"
)

func TestFrom(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"Breakfast", "breakfast"},
		{"  Late   Night Snack ", "late-night-snack"},
		{"Crème Brûlée", "creme-brulee"},
		{"Vegan & Gluten-free!", "vegan-gluten-free"},
		{"5 minute", "5-minute"},
		{"---", ""},
		{"Завтрак", ""},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.want, slug.From(tt.input))
		})
	}
}
