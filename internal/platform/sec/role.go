// Copyright (c) 2026 Foodgram. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package sec

// # User Roles

// UserRole represents the authorization level granted to an account.
type UserRole string

const (
	// Can edit or delete any recipe
	RoleAdmin UserRole = "admin"

	// Default role; owns the recipes it authors
	RoleMember UserRole = "member"
)

// AtLeast checks if the current role meets or exceeds the required target role.
func (r UserRole) AtLeast(target UserRole) bool {
	return r.level() >= target.level()
}

func (r UserRole) level() int {
	switch r {
	case RoleAdmin:
		return 20
	case RoleMember:
		return 10
	default:
		return 0
	}
}

// # Principal

// Principal is the identity a request acts as.
//
// A nil *Principal is the anonymous viewer; all methods are nil-safe.
type Principal struct {
	UserID   string
	Username string
	Email    string
	Role     UserRole
}

// IsAnonymous reports whether no identity is attached.
func (p *Principal) IsAnonymous() bool {
	return p == nil || p.UserID == ""
}

// ID returns the user id, or "" for the anonymous viewer.
func (p *Principal) ID() string {
	if p == nil {
		return ""
	}
	return p.UserID
}

// CanManage reports whether p may modify a resource owned by ownerID.
func (p *Principal) CanManage(ownerID string) bool {
	if p.IsAnonymous() {
		return false
	}
	return p.UserID == ownerID || p.Role.AtLeast(RoleAdmin)
}
