// Copyright (c) 2026 Foodgram. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package schema

// CoreRecipeIngredientTable represents the 'core.recipeingredient' table
type CoreRecipeIngredientTable struct {
	Table        string
	RecipeID     string
	IngredientID string
	Amount       string
	Position     string

	// UniqueLine is the constraint guarding one line per ingredient per recipe.
	UniqueLine string
}

// CoreRecipeIngredient is the schema definition for core.recipeingredient
var CoreRecipeIngredient = CoreRecipeIngredientTable{
	Table:        "core.recipeingredient",
	RecipeID:     "recipeid",
	IngredientID: "ingredientid",
	Amount:       "amount",
	Position:     "position",
	UniqueLine:   "recipeingredient_recipe_ingredient_key",
}

// Columns returns the columns written by bulk inserts, in CopyFrom order.
func (t CoreRecipeIngredientTable) Columns() []string {
	return []string{t.RecipeID, t.IngredientID, t.Amount, t.Position}
}
