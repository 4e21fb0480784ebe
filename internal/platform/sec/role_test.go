// Copyright (c) 2026 Foodgram. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package sec_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/taibuivan/foodgram/internal/platform/sec"
)

/*
TestPrincipal_CanManage checks ownership and admin override.
*/
func TestPrincipal_CanManage(t *testing.T) {
	var anonymous *sec.Principal
	owner := &sec.Principal{UserID: "u1", Role: sec.RoleMember}
	stranger := &sec.Principal{UserID: "u2", Role: sec.RoleMember}
	admin := &sec.Principal{UserID: "u3", Role: sec.RoleAdmin}

	assert.False(t, anonymous.CanManage("u1"))
	assert.True(t, owner.CanManage("u1"))
	assert.False(t, stranger.CanManage("u1"))
	assert.True(t, admin.CanManage("u1"))
}

/*
TestAuthClaims_Principal defaults an empty role to member.
*/
func TestAuthClaims_Principal(t *testing.T) {
	claims := &sec.AuthClaims{UserID: "u1", Username: "chef", Email: "chef@example.com"}

	principal := claims.Principal()
	assert.Equal(t, "u1", principal.UserID)
	assert.Equal(t, "chef", principal.Username)
	assert.Equal(t, sec.RoleMember, principal.Role)
}
