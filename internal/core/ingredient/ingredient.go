// Copyright (c) 2026 Foodgram. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package ingredient manages the ingredient catalog.

An ingredient is a name and a measurement unit. Recipes reference ingredients by
id and never change them. The catalog is filled in bulk from a CSV file by the
catalog command; see [Service.Import].
*/
package ingredient

import "context"

// # Domain Entities

// Ingredient is a catalog entry.
type Ingredient struct {
	ID              int64  `json:"id"`
	Name            string `json:"name" validate:"required,max=200"`
	MeasurementUnit string `json:"measurement_unit" validate:"required,max=200"`
}

// ImportMode decides what an import does when the catalog already has rows.
type ImportMode string

const (
	// ImportSkipIfPopulated leaves a non-empty catalog untouched.
	ImportSkipIfPopulated ImportMode = "skip-if-populated"

	// ImportAppend always inserts the rows.
	ImportAppend ImportMode = "append"
)

// ImportResult reports the outcome of [Service.Import].
type ImportResult struct {
	Skipped  bool  `json:"skipped"`
	Existing int64 `json:"existing"`
	Inserted int64 `json:"inserted"`
}

// # Repository Contracts

// Repository defines the persistence contract for the ingredient catalog.
type Repository interface {
	// Search returns ingredients whose name starts with prefix (case-insensitive),
	// ordered by name. An empty prefix returns the whole catalog.
	Search(ctx context.Context, prefix string) ([]Ingredient, error)

	// FindByID returns apperr.NotFound when no ingredient has the id.
	FindByID(ctx context.Context, id int64) (*Ingredient, error)

	// Count returns the number of catalog rows.
	Count(ctx context.Context) (int64, error)

	// BulkInsert writes all rows in a single operation.
	BulkInsert(ctx context.Context, ingredients []Ingredient) (int64, error)
}
