// Copyright (c) 2026 Foodgram. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package query reads multi-valued URL query parameters.
package query

import (
	"net/url"
	"strings"

	"github.com/taibuivan/foodgram/pkg/slice"
)

// List collects key from values, accepting both repeated parameters
// (?tags=a&tags=b) and comma-separated ones (?tags=a,b). Blank entries are
// dropped and duplicates collapse. A missing key yields nil.
func List(values url.Values, key string) []string {
	var result []string
	for _, raw := range values[key] {
		for _, part := range strings.Split(raw, ",") {
			if clean := strings.TrimSpace(part); clean != "" {
				result = append(result, clean)
			}
		}
	}
	return slice.Unique(result)
}
