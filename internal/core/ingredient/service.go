// Copyright (c) 2026 Foodgram. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package ingredient

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/taibuivan/foodgram/internal/platform/cache"
	"github.com/taibuivan/foodgram/internal/platform/constants"
	"github.com/taibuivan/foodgram/internal/platform/validate"
)

// Service serves catalog reads and bulk imports.
type Service struct {
	repo   Repository
	cache  *cache.Cache
	logger *slog.Logger
}

// NewService constructs an ingredient [Service]. catalogCache may be nil.
func NewService(repo Repository, catalogCache *cache.Cache, logger *slog.Logger) *Service {
	return &Service{repo: repo, cache: catalogCache, logger: logger}
}

// SearchIngredients returns ingredients whose name starts with prefix.
func (service *Service) SearchIngredients(ctx context.Context, prefix string) ([]Ingredient, error) {
	prefix = strings.ToLower(strings.TrimSpace(prefix))
	key := constants.RedisPrefixIngredient + "search:" + prefix

	return cache.GetOrLoad(ctx, service.cache, key, func(ctx context.Context) ([]Ingredient, error) {
		return service.repo.Search(ctx, prefix)
	})
}

// GetIngredient returns one ingredient by id.
func (service *Service) GetIngredient(ctx context.Context, id int64) (*Ingredient, error) {
	key := fmt.Sprintf("%sid:%d", constants.RedisPrefixIngredient, id)
	return cache.GetOrLoad(ctx, service.cache, key, func(ctx context.Context) (*Ingredient, error) {
		return service.repo.FindByID(ctx, id)
	})
}

/*
Import bulk-loads ingredients into the catalog.

Description: With [ImportSkipIfPopulated] the import is a no-op when the catalog
already has rows, so re-running a deployment script does not duplicate data.
[ImportAppend] inserts unconditionally. Every row is validated before anything
is written.

Returns:
  - ImportResult: skipped flag, rows present before, rows inserted
  - error: VALIDATION_ERROR naming the offending row, or storage errors
*/
func (service *Service) Import(ctx context.Context, ingredients []Ingredient, mode ImportMode) (ImportResult, error) {
	if mode != ImportSkipIfPopulated && mode != ImportAppend {
		return ImportResult{}, validate.FieldError("mode", fmt.Sprintf("Unknown import mode %q", mode))
	}

	existing, err := service.repo.Count(ctx)
	if err != nil {
		return ImportResult{}, err
	}

	result := ImportResult{Existing: existing}
	if mode == ImportSkipIfPopulated && existing > 0 {
		result.Skipped = true
		service.logger.InfoContext(ctx, "ingredient_import_skipped", slog.Int64("existing", existing))
		return result, nil
	}

	for index := range ingredients {
		row := &ingredients[index]
		row.Name = strings.TrimSpace(row.Name)
		row.MeasurementUnit = strings.TrimSpace(row.MeasurementUnit)

		if err := validate.Struct(row); err != nil {
			return result, fmt.Errorf("ingredient row %d: %w", index+1, err)
		}
	}

	if len(ingredients) == 0 {
		return result, nil
	}

	inserted, err := service.repo.BulkInsert(ctx, ingredients)
	if err != nil {
		return result, err
	}
	result.Inserted = inserted

	if _, err := service.cache.InvalidatePrefix(ctx, constants.RedisPrefixIngredient); err != nil {
		service.logger.WarnContext(ctx, "ingredient_cache_invalidation_failed", slog.Any("error", err))
	}

	service.logger.InfoContext(ctx, "ingredients_imported",
		slog.String("mode", string(mode)),
		slog.Int64("inserted", inserted),
	)
	return result, nil
}
