// Copyright (c) 2026 Foodgram. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package schema

// CoreRecipeTagTable represents the 'core.recipetag' junction table
type CoreRecipeTagTable struct {
	Table    string
	RecipeID string
	TagID    string
}

// CoreRecipeTag is the schema definition for core.recipetag
var CoreRecipeTag = CoreRecipeTagTable{
	Table:    "core.recipetag",
	RecipeID: "recipeid",
	TagID:    "tagid",
}
