// Copyright (c) 2026 Foodgram. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package schema

// UserRelationTable describes a uniquely keyed (user, target) pair table.
//
// users.follow, users.favorite and users.cart share this shape.
type UserRelationTable struct {
	Table     string
	UserID    string
	TargetID  string
	CreatedAt string

	// PrimaryKey is the unique constraint on (UserID, TargetID).
	PrimaryKey string
}

// UserFollow is the schema definition for users.follow
var UserFollow = UserRelationTable{
	Table:      "users.follow",
	UserID:     "userid",
	TargetID:   "authorid",
	CreatedAt:  "createdat",
	PrimaryKey: "follow_pkey",
}

// UserFavorite is the schema definition for users.favorite
var UserFavorite = UserRelationTable{
	Table:      "users.favorite",
	UserID:     "userid",
	TargetID:   "recipeid",
	CreatedAt:  "createdat",
	PrimaryKey: "favorite_pkey",
}

// UserCart is the schema definition for users.cart
var UserCart = UserRelationTable{
	Table:      "users.cart",
	UserID:     "userid",
	TargetID:   "recipeid",
	CreatedAt:  "createdat",
	PrimaryKey: "cart_pkey",
}

// Columns returns all standard column names
func (t UserRelationTable) Columns() []string {
	return []string{t.UserID, t.TargetID, t.CreatedAt}
}
