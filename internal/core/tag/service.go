// Copyright (c) 2026 Foodgram. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package tag

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/taibuivan/foodgram/internal/platform/cache"
	"github.com/taibuivan/foodgram/internal/platform/constants"
	"github.com/taibuivan/foodgram/internal/platform/validate"
	"github.com/taibuivan/foodgram/pkg/slug"
)

// Service serves tag reads through the catalog cache.
type Service struct {
	repo   Repository
	cache  *cache.Cache
	logger *slog.Logger
}

// NewService constructs a tag [Service]. catalogCache may be nil.
func NewService(repo Repository, catalogCache *cache.Cache, logger *slog.Logger) *Service {
	return &Service{repo: repo, cache: catalogCache, logger: logger}
}

// ListTags returns every tag ordered by name.
func (service *Service) ListTags(ctx context.Context) ([]Tag, error) {
	return cache.GetOrLoad(ctx, service.cache, constants.RedisPrefixTags+"all", service.repo.List)
}

// GetTag returns one tag by id.
func (service *Service) GetTag(ctx context.Context, id int64) (*Tag, error) {
	key := fmt.Sprintf("%sid:%d", constants.RedisPrefixTags, id)
	return cache.GetOrLoad(ctx, service.cache, key, func(ctx context.Context) (*Tag, error) {
		return service.repo.FindByID(ctx, id)
	})
}

/*
ImportTags validates and upserts tags, then drops cached tag listings.

Missing slugs are derived from the name. Colors are normalized to upper case.

Returns:
  - int: rows written
  - error: VALIDATION_ERROR naming the offending row, or storage errors
*/
func (service *Service) ImportTags(ctx context.Context, tags []Tag) (int, error) {
	for index := range tags {
		tag := &tags[index]
		tag.Name = strings.TrimSpace(tag.Name)
		tag.Color = strings.ToUpper(strings.TrimSpace(tag.Color))
		if tag.Slug = strings.TrimSpace(tag.Slug); tag.Slug == "" {
			tag.Slug = slug.From(tag.Name)
		}

		if err := validate.Struct(tag); err != nil {
			return 0, fmt.Errorf("tag row %d: %w", index+1, err)
		}
	}

	written, err := service.repo.Upsert(ctx, tags)
	if err != nil {
		return 0, err
	}

	if _, err := service.cache.InvalidatePrefix(ctx, constants.RedisPrefixTags); err != nil {
		service.logger.WarnContext(ctx, "tag_cache_invalidation_failed", slog.Any("error", err))
	}

	service.logger.InfoContext(ctx, "tags_imported", slog.Int("rows", written))
	return written, nil
}
