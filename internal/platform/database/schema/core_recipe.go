// Copyright (c) 2026 Foodgram. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package schema

// CoreRecipeTable represents the 'core.recipe' table
type CoreRecipeTable struct {
	Table       string
	ID          string
	AuthorID    string
	Name        string
	Text        string
	Image       string
	CookingTime string
	PubDate     string
	UpdatedAt   string
}

// CoreRecipe is the schema definition for core.recipe
var CoreRecipe = CoreRecipeTable{
	Table:       "core.recipe",
	ID:          "id",
	AuthorID:    "authorid",
	Name:        "name",
	Text:        "text",
	Image:       "image",
	CookingTime: "cookingtime",
	PubDate:     "pubdate",
	UpdatedAt:   "updatedat",
}

// Columns returns all standard column names
func (t CoreRecipeTable) Columns() []string {
	return []string{t.ID, t.AuthorID, t.Name, t.Text, t.Image, t.CookingTime, t.PubDate, t.UpdatedAt}
}
