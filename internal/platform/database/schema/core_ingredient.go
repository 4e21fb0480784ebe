// Copyright (c) 2026 Foodgram. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package schema

// CoreIngredientTable represents the 'core.ingredient' table
type CoreIngredientTable struct {
	Table           string
	ID              string
	Name            string
	MeasurementUnit string
}

// CoreIngredient is the schema definition for core.ingredient
var CoreIngredient = CoreIngredientTable{
	Table:           "core.ingredient",
	ID:              "id",
	Name:            "name",
	MeasurementUnit: "measurementunit",
}

// Columns returns all standard column names
func (t CoreIngredientTable) Columns() []string {
	return []string{t.ID, t.Name, t.MeasurementUnit}
}
