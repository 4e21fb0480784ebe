// Copyright (c) 2026 Foodgram. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package tag manages the tag catalog: immutable labels (name, hex color, unique
slug) attached to recipes and used as list filters.

Tags are reference data. They are seeded by migration or loaded with the catalog
command; the API only reads them.
*/
package tag

import "context"

// # Domain Entities

// Tag is a recipe label.
type Tag struct {
	ID    int64  `json:"id"`
	Name  string `json:"name" validate:"required,max=200"`
	Color string `json:"color" validate:"required,hexcolor,len=7"`
	Slug  string `json:"slug" validate:"required,max=200"`
}

// # Repository Contracts

// Repository defines the persistence contract for tags.
type Repository interface {
	// List returns all tags ordered by name.
	List(ctx context.Context) ([]Tag, error)

	// FindByID returns apperr.NotFound when no tag has the id.
	FindByID(ctx context.Context, id int64) (*Tag, error)

	// Upsert inserts tags, updating name and color of existing slugs.
	// It returns the number of rows written.
	Upsert(ctx context.Context, tags []Tag) (int, error)
}
