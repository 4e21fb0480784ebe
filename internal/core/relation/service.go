// Copyright (c) 2026 Foodgram. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package relation

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/taibuivan/foodgram/internal/platform/apperr"
	"github.com/taibuivan/foodgram/internal/platform/metrics"
	"github.com/taibuivan/foodgram/internal/platform/validate"
)

// Service toggles relation pairs for every [Kind].
type Service struct {
	repo   Repository
	logger *slog.Logger
}

// NewService constructs a relation [Service].
func NewService(repo Repository, logger *slog.Logger) *Service {
	return &Service{repo: repo, logger: logger}
}

/*
Add creates the (userID, targetID) pair of the given kind.

Returns:
  - VALIDATION_ERROR when the kind forbids self pairs and userID == targetID
  - CONFLICT with the kind's message when the pair already exists
  - NOT_FOUND for the kind's target when the target does not exist
*/
func (service *Service) Add(ctx context.Context, kind Kind, userID, targetID string) error {
	if err := checkSelf(kind, userID, targetID); err != nil {
		observe(kind, "add", err)
		return err
	}

	err := service.repo.Insert(ctx, kind, userID, targetID)
	switch {
	case errors.Is(err, ErrDuplicate):
		err = apperr.Conflict(kind.ConflictMessage)
	case errors.Is(err, ErrTargetMissing):
		err = apperr.NotFound(kind.Target)
	case errors.Is(err, ErrSelf):
		err = validate.FieldError("errors", kind.SelfMessage)
	}
	observe(kind, "add", err)

	if err != nil {
		return err
	}

	service.logger.InfoContext(ctx, "relation_added",
		slog.String("kind", kind.Name),
		slog.String("user_id", userID),
		slog.String("target_id", targetID),
	)
	return nil
}

/*
Remove deletes the (userID, targetID) pair of the given kind.

Returns:
  - VALIDATION_ERROR when the kind forbids self pairs and userID == targetID
  - NOT_FOUND with the kind's message when the pair does not exist
*/
func (service *Service) Remove(ctx context.Context, kind Kind, userID, targetID string) error {
	if err := checkSelf(kind, userID, targetID); err != nil {
		observe(kind, "remove", err)
		return err
	}

	existed, err := service.repo.Delete(ctx, kind, userID, targetID)
	if err == nil && !existed {
		err = &apperr.AppError{
			Code:       apperr.CodeNotFound,
			Message:    kind.AbsentMessage,
			HTTPStatus: http.StatusNotFound,
		}
	}
	observe(kind, "remove", err)

	if err != nil {
		return err
	}

	service.logger.InfoContext(ctx, "relation_removed",
		slog.String("kind", kind.Name),
		slog.String("user_id", userID),
		slog.String("target_id", targetID),
	)
	return nil
}

// Marked returns which of targetIDs are paired with userID. An empty userID is
// the anonymous viewer, for whom nothing is marked.
func (service *Service) Marked(ctx context.Context, kind Kind, userID string, targetIDs []string) (map[string]bool, error) {
	if userID == "" || len(targetIDs) == 0 {
		return map[string]bool{}, nil
	}
	return service.repo.Marked(ctx, kind, userID, targetIDs)
}

// IsMarked is [Service.Marked] for a single target.
func (service *Service) IsMarked(ctx context.Context, kind Kind, userID, targetID string) (bool, error) {
	marked, err := service.Marked(ctx, kind, userID, []string{targetID})
	if err != nil {
		return false, err
	}
	return marked[targetID], nil
}

func checkSelf(kind Kind, userID, targetID string) error {
	if kind.ForbidSelf && userID == targetID {
		return validate.FieldError("errors", kind.SelfMessage)
	}
	return nil
}

func observe(kind Kind, action string, err error) {
	outcome := "ok"
	if err != nil {
		code := ""
		if ae := apperr.As(err); ae != nil {
			code = ae.Code
		}
		switch code {
		case apperr.CodeConflict:
			outcome = "conflict"
		case apperr.CodeNotFound:
			outcome = "not_found"
		case apperr.CodeValidation:
			outcome = "invalid"
		default:
			outcome = "error"
		}
	}
	metrics.RelationToggles.WithLabelValues(kind.Name, action, outcome).Inc()
}
