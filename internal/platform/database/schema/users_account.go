// Copyright (c) 2026 Foodgram. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package schema

// UserAccountTable represents the 'users.account' table
type UserAccountTable struct {
	Table     string
	ID        string
	Username  string
	Email     string
	FirstName string
	LastName  string
	Role      string
	CreatedAt string
}

// UserAccount is the schema definition for users.account
var UserAccount = UserAccountTable{
	Table:     "users.account",
	ID:        "id",
	Username:  "username",
	Email:     "email",
	FirstName: "firstname",
	LastName:  "lastname",
	Role:      "role",
	CreatedAt: "createdat",
}

// Columns returns all standard column names
func (t UserAccountTable) Columns() []string {
	return []string{t.ID, t.Username, t.Email, t.FirstName, t.LastName, t.Role, t.CreatedAt}
}
