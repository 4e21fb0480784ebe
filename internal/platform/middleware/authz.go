// Copyright (c) 2026 Foodgram. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package middleware

import (
	"context"
	"log/slog"
	"net/http"
	"strings"
	"sync"

	"github.com/taibuivan/foodgram/internal/platform/apperr"
	"github.com/taibuivan/foodgram/internal/platform/constants"
	"github.com/taibuivan/foodgram/internal/platform/ctxutil"
	"github.com/taibuivan/foodgram/internal/platform/respond"
	"github.com/taibuivan/foodgram/internal/platform/sec"
)

// TokenVerifier verifies bearer tokens. Satisfied by [*sec.TokenVerifier].
type TokenVerifier interface {
	VerifyToken(tokenStr string) (*sec.AuthClaims, error)
}

// Provisioner makes sure the principal has a local account row.
type Provisioner interface {
	Provision(ctx context.Context, principal *sec.Principal) error
}

// Authenticate extracts and verifies the JWT from the Authorization header.
//
// # Flow
//  1. No header: the request proceeds as the anonymous viewer.
//  2. Malformed header or invalid token: 401.
//  3. Valid token: the [*sec.Principal] is injected into the context.
func Authenticate(verifier TokenVerifier) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			authHeader := request.Header.Get(constants.HeaderAuthorization)

			// ── 1. Anonymous Access ───────────────────────────────────────────
			if authHeader == "" {
				next.ServeHTTP(writer, request)
				return
			}

			// ── 2. Format Validation ──────────────────────────────────────────
			scheme, token, found := strings.Cut(authHeader, " ")
			if !found || !strings.EqualFold(scheme, "bearer") || strings.TrimSpace(token) == "" {
				respond.Error(writer, request, apperr.Unauthorized("Invalid authorization format"))
				return
			}

			// ── 3. Token Verification ─────────────────────────────────────────
			claims, err := verifier.VerifyToken(strings.TrimSpace(token))
			if err != nil {
				ctxutil.GetLogger(request.Context()).Debug("token_rejected", slog.Any("error", err))
				respond.Error(writer, request, apperr.Unauthorized("Invalid or expired token"))
				return
			}

			// ── 4. Context Injection ──────────────────────────────────────────
			principal := claims.Principal()
			ctx := ctxutil.WithPrincipal(request.Context(), principal)
			ctx = ctxutil.WithLogger(ctx, ctxutil.GetLogger(ctx).With(slog.String("user_id", principal.UserID)))

			next.ServeHTTP(writer, request.WithContext(ctx))
		})
	}
}

// Provision upserts the account of each authenticated principal once per process.
//
// Must be registered AFTER [Authenticate]. Anonymous requests pass through.
func Provision(provisioner Provisioner) func(http.Handler) http.Handler {
	var seen sync.Map

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			principal := ctxutil.GetPrincipal(request.Context())
			if principal.IsAnonymous() {
				next.ServeHTTP(writer, request)
				return
			}

			if _, ok := seen.Load(principal.UserID); !ok {
				if err := provisioner.Provision(request.Context(), principal); err != nil {
					respond.Error(writer, request, err)
					return
				}
				seen.Store(principal.UserID, struct{}{})
			}

			next.ServeHTTP(writer, request)
		})
	}
}

// RequireAuth blocks anonymous requests. Must be registered AFTER [Authenticate].
func RequireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		if ctxutil.GetPrincipal(request.Context()).IsAnonymous() {
			respond.Error(writer, request, apperr.Unauthorized("Authentication required"))
			return
		}
		next.ServeHTTP(writer, request)
	})
}

// RequireRole blocks requests whose principal is below role. Implies [RequireAuth].
func RequireRole(role sec.UserRole) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			principal := ctxutil.GetPrincipal(request.Context())

			if principal.IsAnonymous() {
				respond.Error(writer, request, apperr.Unauthorized("Authentication required"))
				return
			}

			if !principal.Role.AtLeast(role) {
				respond.Error(writer, request, apperr.Forbidden("Insufficient permissions"))
				return
			}

			next.ServeHTTP(writer, request)
		})
	}
}
