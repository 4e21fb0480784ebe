// Copyright (c) 2026 Foodgram. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package account serves user profiles and subscriptions.

Accounts are not registered here: the identity provider owns credentials, and
each authenticated principal is provisioned into users.account on its first
request so that recipes, follows, favorites and cart entries can reference it.

# Architecture

  - Entities: User (public card), Subscription (card plus recipe previews).
  - Relations: following goes through the generic relation toggle.
*/
package account

import (
	"context"

	"github.com/taibuivan/foodgram/internal/core/recipe"
	"github.com/taibuivan/foodgram/internal/platform/sec"
)

// # Domain Entities

// User is the public card of an account as seen by a viewer.
type User struct {
	Email        string `json:"email"`
	ID           string `json:"id"`
	Username     string `json:"username"`
	FirstName    string `json:"first_name"`
	LastName     string `json:"last_name"`
	IsSubscribed bool   `json:"is_subscribed"`
}

// Subscription is a followed author with a preview of their newest recipes.
type Subscription struct {
	User
	Recipes      []recipe.Short `json:"recipes"`
	RecipesCount int            `json:"recipes_count"`
}

// # Repository Contracts

// Repository defines the persistence contract for accounts.
type Repository interface {
	// FindByID returns apperr.NotFound when no account has the id.
	FindByID(ctx context.Context, id string) (*User, error)

	// List returns a page of accounts ordered by username and the total count.
	List(ctx context.Context, limit, offset int) ([]*User, int, error)

	// Upsert creates or refreshes the account of principal.
	Upsert(ctx context.Context, principal *sec.Principal) error

	/*
		Subscriptions returns the authors followed by userID.

		Parameters:
		  - recipesLimit: maximum recipe previews per author, newest first
		  - limit, offset: page of authors, ordered by username

		Returns:
		  - []*Subscription: cards with recipe previews and recipe counts
		  - int: total number of followed authors
	*/
	Subscriptions(ctx context.Context, userID string, recipesLimit, limit, offset int) ([]*Subscription, int, error)

	// Subscription returns the card of one author.
	Subscription(ctx context.Context, authorID string, recipesLimit int) (*Subscription, error)
}
