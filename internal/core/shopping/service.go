// Copyright (c) 2026 Foodgram. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package shopping

import (
	"context"
	"log/slog"

	"github.com/taibuivan/foodgram/internal/platform/apperr"
	"github.com/taibuivan/foodgram/internal/platform/metrics"
)

// Service builds shopping lists.
type Service struct {
	repo   Repository
	logger *slog.Logger
}

// NewService constructs a shopping [Service].
func NewService(repo Repository, logger *slog.Logger) *Service {
	return &Service{repo: repo, logger: logger}
}

// ShoppingList returns the aggregated cart of userID.
func (service *Service) ShoppingList(ctx context.Context, userID string) ([]Item, error) {
	lines, err := service.repo.CartLines(ctx, userID)
	if err != nil {
		return nil, err
	}
	return Aggregate(lines), nil
}

// Download is a rendered export ready to be sent.
type Download struct {
	Filename    string
	ContentType string
	Body        []byte
}

/*
Export aggregates the cart of userID and renders it in format.

Returns:
  - VALIDATION_ERROR for an unknown format
*/
func (service *Service) Export(ctx context.Context, userID, format string) (*Download, error) {
	exporter, err := ExporterFor(format)
	if err != nil {
		return nil, err
	}

	items, err := service.ShoppingList(ctx, userID)
	if err != nil {
		return nil, err
	}

	body, err := Render(exporter, items)
	if err != nil {
		return nil, apperr.Internal(err)
	}

	metrics.ShoppingListDownloads.WithLabelValues(exporter.Format()).Inc()
	metrics.ShoppingListItems.Observe(float64(len(items)))

	service.logger.InfoContext(ctx, "shopping_list_exported",
		slog.String("user_id", userID),
		slog.String("filename", exporter.Filename()),
		slog.Int("items", len(items)),
	)

	return &Download{Filename: exporter.Filename(), ContentType: exporter.ContentType(), Body: body}, nil
}
