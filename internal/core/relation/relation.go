// Copyright (c) 2026 Foodgram. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package relation implements the add/remove toggle shared by follows, favorites
and shopping cart entries.

All three are sets of uniquely keyed (user, target) pairs. A [Kind] value
describes one of them (table, self rule and messages) and a single [Service]
serves every kind:

  - Add fails with CONFLICT when the pair exists.
  - Remove fails with NOT_FOUND when the pair is absent.
  - Kinds with ForbidSelf fail with VALIDATION_ERROR when user == target,
    before storage is consulted.

Uniqueness is enforced by the table's primary key, so concurrent adds of the
same pair have exactly one winner.
*/
package relation

import (
	"context"
	"errors"

	"github.com/taibuivan/foodgram/internal/platform/database/schema"
)

// # Kinds

// Kind describes one relation table and its user-facing messages.
type Kind struct {
	// Name labels logs and metrics.
	Name  string
	Table schema.UserRelationTable

	// ForbidSelf rejects pairs whose user and target are the same id.
	ForbidSelf bool

	// Target names the resource a missing target id refers to.
	Target string

	ConflictMessage string
	AbsentMessage   string
	SelfMessage     string
}

var (
	// Follow is a user subscribing to an author.
	Follow = Kind{
		Name:            "follow",
		Table:           schema.UserFollow,
		ForbidSelf:      true,
		Target:          "Author",
		ConflictMessage: "You are already subscribed to this author",
		AbsentMessage:   "You are not subscribed to this author",
		SelfMessage:     "You cannot subscribe to yourself",
	}

	// Favorite is a user bookmarking a recipe.
	Favorite = Kind{
		Name:            "favorite",
		Table:           schema.UserFavorite,
		Target:          "Recipe",
		ConflictMessage: "Recipe is already in favorites",
		AbsentMessage:   "Recipe is not in favorites",
	}

	// Cart is a user putting a recipe in the shopping cart.
	Cart = Kind{
		Name:            "cart",
		Table:           schema.UserCart,
		Target:          "Recipe",
		ConflictMessage: "Recipe is already in the shopping cart",
		AbsentMessage:   "Recipe is not in the shopping cart",
	}
)

// # Storage Errors

var (
	// ErrDuplicate is returned by [Repository.Insert] when the pair exists.
	ErrDuplicate = errors.New("relation: pair already exists")

	// ErrTargetMissing is returned by [Repository.Insert] when the user or
	// target row does not exist.
	ErrTargetMissing = errors.New("relation: referenced row does not exist")

	// ErrSelf is returned by [Repository.Insert] when storage rejects a self pair.
	ErrSelf = errors.New("relation: self relation")
)

// # Repository Contracts

// Repository persists relation pairs for any [Kind].
type Repository interface {
	// Insert adds the pair or returns ErrDuplicate, ErrTargetMissing or ErrSelf.
	Insert(ctx context.Context, kind Kind, userID, targetID string) error

	// Delete removes the pair and reports whether it existed.
	Delete(ctx context.Context, kind Kind, userID, targetID string) (bool, error)

	// Marked returns the subset of targetIDs paired with userID.
	Marked(ctx context.Context, kind Kind, userID string, targetIDs []string) (map[string]bool, error)
}
