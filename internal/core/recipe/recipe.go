// Copyright (c) 2026 Foodgram. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package recipe composes recipes and projects them for readers.

A recipe is an aggregate: the recipe row, its tag set and its ordered
ingredient lines are always written together in one transaction. Updates
replace the tag set and the ingredient lines as a whole.

Reads are viewer-relative. [Service] takes the viewer explicitly and fills
IsFavorited, IsInShoppingCart and the author's IsSubscribed from the viewer's
relations; an anonymous viewer sees every flag as false.
*/
package recipe

import (
	"context"
	"time"

	"github.com/taibuivan/foodgram/internal/core/tag"
)

// # Domain Entities

// Author is the public card of a recipe's author.
type Author struct {
	ID           string `json:"id"`
	Email        string `json:"email"`
	Username     string `json:"username"`
	FirstName    string `json:"first_name"`
	LastName     string `json:"last_name"`
	IsSubscribed bool   `json:"is_subscribed"`
}

// Line is an ingredient line resolved against the ingredient catalog.
type Line struct {
	ID              int64  `json:"id"`
	Name            string `json:"name"`
	MeasurementUnit string `json:"measurement_unit"`
	Amount          int    `json:"amount"`
}

// Recipe is the read projection of a recipe for one viewer.
type Recipe struct {
	ID               string    `json:"id"`
	Tags             []tag.Tag `json:"tags"`
	Author           Author    `json:"author"`
	Ingredients      []Line    `json:"ingredients"`
	IsFavorited      bool      `json:"is_favorited"`
	IsInShoppingCart bool      `json:"is_in_shopping_cart"`
	Name             string    `json:"name"`
	Image            string    `json:"image"`
	Text             string    `json:"text"`
	CookingTime      int       `json:"cooking_time"`
	PubDate          time.Time `json:"pub_date"`
}

// Short is the compact recipe view used by favorites, cart and subscriptions.
type Short struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Image       string `json:"image"`
	CookingTime int    `json:"cooking_time"`
}

// # Filtering

// Filter narrows recipe listings. Zero values disable a criterion.
type Filter struct {
	// TagSlugs keeps recipes carrying any of the slugs.
	TagSlugs []string

	AuthorID string

	// FavoritedBy keeps recipes in the favorites of this user id.
	FavoritedBy string

	// InCartOf keeps recipes in the shopping cart of this user id.
	InCartOf string
}

// # Repository Contracts

// Repository persists recipe aggregates.
type Repository interface {
	// Create inserts the recipe, its tag links and its ingredient lines atomically.
	Create(ctx context.Context, id, authorID string, draft *Draft) error

	// Update replaces scalars, tag links and ingredient lines atomically.
	// An empty draft image keeps the stored image.
	Update(ctx context.Context, id string, draft *Draft) error

	Delete(ctx context.Context, id string) error

	// AuthorOf returns the author id of a recipe, or apperr.NotFound.
	AuthorOf(ctx context.Context, id string) (string, error)

	// FindByID returns the projection without viewer flags.
	FindByID(ctx context.Context, id string) (*Recipe, error)

	// FindShort returns the compact view, or apperr.NotFound.
	FindShort(ctx context.Context, id string) (*Short, error)

	// List returns a page of recipes ordered by pub date, newest first, and the
	// total number of matches.
	List(ctx context.Context, filter Filter, limit, offset int) ([]*Recipe, int, error)
}
