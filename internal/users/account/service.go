// Copyright (c) 2026 Foodgram. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package account

import (
	"context"
	"log/slog"

	"github.com/taibuivan/foodgram/internal/core/relation"
	"github.com/taibuivan/foodgram/internal/platform/apperr"
	"github.com/taibuivan/foodgram/internal/platform/sec"
	"github.com/taibuivan/foodgram/internal/platform/validate"
	"github.com/taibuivan/foodgram/pkg/slice"
)

// Column widths of the users table.
const (
	maxUsernameLength = 150
	maxEmailLength    = 254
)

// Service implements profile reads, subscriptions and provisioning.
type Service struct {
	repo      Repository
	relations *relation.Service
	logger    *slog.Logger
}

// NewService constructs an account [Service].
func NewService(repo Repository, relations *relation.Service, logger *slog.Logger) *Service {
	return &Service{repo: repo, relations: relations, logger: logger}
}

// # Profiles

// GetUser returns one account card with IsSubscribed computed for viewer.
func (service *Service) GetUser(ctx context.Context, viewer *sec.Principal, id string) (*User, error) {
	user, err := service.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if viewer.IsAnonymous() {
		return user, nil
	}

	user.IsSubscribed, err = service.relations.IsMarked(ctx, relation.Follow, viewer.ID(), user.ID)
	if err != nil {
		return nil, err
	}
	return user, nil
}

// ListUsers returns a page of account cards for viewer.
func (service *Service) ListUsers(ctx context.Context, viewer *sec.Principal, limit, offset int) ([]*User, int, error) {
	users, total, err := service.repo.List(ctx, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	if err := service.markSubscribed(ctx, viewer, users); err != nil {
		return nil, 0, err
	}
	return users, total, nil
}

// Me returns the card of the viewer itself.
func (service *Service) Me(ctx context.Context, viewer *sec.Principal) (*User, error) {
	if viewer.IsAnonymous() {
		return nil, apperr.Unauthorized("Authentication required")
	}
	return service.repo.FindByID(ctx, viewer.ID())
}

func (service *Service) markSubscribed(ctx context.Context, viewer *sec.Principal, users []*User) error {
	if viewer.IsAnonymous() || len(users) == 0 {
		return nil
	}

	followed, err := service.relations.Marked(ctx, relation.Follow, viewer.ID(),
		slice.Map(users, func(user *User) string { return user.ID }))
	if err != nil {
		return err
	}

	for _, user := range users {
		user.IsSubscribed = followed[user.ID]
	}
	return nil
}

// # Subscriptions

// Subscriptions returns the authors followed by viewer with at most
// recipesLimit recipe previews each.
func (service *Service) Subscriptions(ctx context.Context, viewer *sec.Principal, recipesLimit, limit, offset int) ([]*Subscription, int, error) {
	if viewer.IsAnonymous() {
		return nil, 0, apperr.Unauthorized("Authentication required")
	}

	subscriptions, total, err := service.repo.Subscriptions(ctx, viewer.ID(), recipesLimit, limit, offset)
	if err != nil {
		return nil, 0, err
	}

	for _, subscription := range subscriptions {
		subscription.IsSubscribed = true
	}
	return subscriptions, total, nil
}

/*
Subscribe makes viewer follow authorID.

Returns:
  - *Subscription: the author's card with recipe previews
  - error: NOT_FOUND for an unknown author, VALIDATION_ERROR for a self follow,
    CONFLICT when already subscribed
*/
func (service *Service) Subscribe(ctx context.Context, viewer *sec.Principal, authorID string, recipesLimit int) (*Subscription, error) {
	if viewer.IsAnonymous() {
		return nil, apperr.Unauthorized("Authentication required")
	}

	if _, err := service.repo.FindByID(ctx, authorID); err != nil {
		return nil, err
	}

	if err := service.relations.Add(ctx, relation.Follow, viewer.ID(), authorID); err != nil {
		return nil, err
	}

	subscription, err := service.repo.Subscription(ctx, authorID, recipesLimit)
	if err != nil {
		return nil, err
	}
	subscription.IsSubscribed = true
	return subscription, nil
}

// Unsubscribe makes viewer stop following authorID.
func (service *Service) Unsubscribe(ctx context.Context, viewer *sec.Principal, authorID string) error {
	if viewer.IsAnonymous() {
		return apperr.Unauthorized("Authentication required")
	}

	if _, err := service.repo.FindByID(ctx, authorID); err != nil {
		return err
	}
	return service.relations.Remove(ctx, relation.Follow, viewer.ID(), authorID)
}

// # Provisioning

/*
Provision creates or refreshes the account of an authenticated principal.

Description: Roles other than admin are stored as member, and a missing
username falls back to the user id so the unique constraint still holds.
Claims wider than the users columns are rejected before the upsert.

Returns:
  - error: VALIDATION_ERROR for an oversized username or email
*/
func (service *Service) Provision(ctx context.Context, principal *sec.Principal) error {
	provisioned := *principal
	if provisioned.Role != sec.RoleAdmin {
		provisioned.Role = sec.RoleMember
	}
	if provisioned.Username == "" {
		provisioned.Username = provisioned.UserID
	}

	validator := &validate.Validator{}
	validator.
		Required("id", provisioned.UserID).
		MaxLen("username", provisioned.Username, maxUsernameLength).
		MaxLen("email", provisioned.Email, maxEmailLength)
	if err := validator.Err(); err != nil {
		return err
	}

	if err := service.repo.Upsert(ctx, &provisioned); err != nil {
		return err
	}

	service.logger.InfoContext(ctx, "account_provisioned",
		slog.String("user_id", provisioned.UserID),
		slog.String("role", string(provisioned.Role)),
	)
	return nil
}
