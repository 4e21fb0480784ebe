// Copyright (c) 2026 Foodgram. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package ctxutil_test

import (
	"context"
	"log/slog"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/taibuivan/foodgram/internal/platform/ctxutil"
	"github.com/taibuivan/foodgram/internal/platform/sec"
)

/*
TestContext_RequestID verifies that Request IDs can be injected and retrieved.
*/
func TestContext_RequestID(t *testing.T) {
	ctx := context.Background()

	assert.Empty(t, ctxutil.GetRequestID(ctx))

	ctx = ctxutil.WithRequestID(ctx, "req-1")
	assert.Equal(t, "req-1", ctxutil.GetRequestID(ctx))
}

/*
TestContext_Logger verifies the default fallback and an injected logger.
*/
func TestContext_Logger(t *testing.T) {
	ctx := context.Background()
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))

	assert.Equal(t, slog.Default(), ctxutil.GetLogger(ctx))

	ctx = ctxutil.WithLogger(ctx, logger)
	assert.Equal(t, logger, ctxutil.GetLogger(ctx))
}

/*
TestContext_Principal verifies that the anonymous viewer is a nil principal.
*/
func TestContext_Principal(t *testing.T) {
	ctx := context.Background()

	anonymous := ctxutil.GetPrincipal(ctx)
	assert.Nil(t, anonymous)
	assert.True(t, anonymous.IsAnonymous())
	assert.Empty(t, anonymous.ID())

	principal := &sec.Principal{UserID: "user-123", Role: sec.RoleMember}
	ctx = ctxutil.WithPrincipal(ctx, principal)

	got := ctxutil.GetPrincipal(ctx)
	assert.Equal(t, principal, got)
	assert.False(t, got.IsAnonymous())
	assert.Equal(t, "user-123", got.ID())
}
