// Copyright (c) 2026 Foodgram. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package tag_test

import (
	"context"
	"io"
	"log/slog"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/foodgram/internal/core/tag"
	"github.com/taibuivan/foodgram/internal/platform/apperr"
)

type fakeRepository struct {
	tags     []tag.Tag
	upserted []tag.Tag
}

func (repository *fakeRepository) List(context.Context) ([]tag.Tag, error) {
	return repository.tags, nil
}

func (repository *fakeRepository) FindByID(_ context.Context, id int64) (*tag.Tag, error) {
	for _, item := range repository.tags {
		if item.ID == id {
			return &item, nil
		}
	}
	return nil, apperr.NotFound("Tag")
}

func (repository *fakeRepository) Upsert(_ context.Context, tags []tag.Tag) (int, error) {
	repository.upserted = append(repository.upserted, tags...)
	return len(tags), nil
}

func newService(repository tag.Repository) *tag.Service {
	return tag.NewService(repository, nil, slog.New(slog.NewTextHandler(io.Discard, nil)))
}

/*
TestService_GetTag returns NOT_FOUND for unknown ids.
*/
func TestService_GetTag(t *testing.T) {
	service := newService(&fakeRepository{tags: []tag.Tag{{ID: 1, Name: "Breakfast", Color: "#E26C2D", Slug: "breakfast"}}})

	found, err := service.GetTag(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, "breakfast", found.Slug)

	_, err = service.GetTag(context.Background(), 42)
	assert.True(t, apperr.HasCode(err, apperr.CodeNotFound))
}

/*
TestService_ImportTags derives slugs and rejects malformed colors.
*/
func TestService_ImportTags(t *testing.T) {
	t.Run("derives_slug", func(t *testing.T) {
		repository := &fakeRepository{}
		written, err := newService(repository).ImportTags(context.Background(), []tag.Tag{
			{Name: "Crème Brûlée", Color: "#aabbcc"},
		})

		require.NoError(t, err)
		assert.Equal(t, 1, written)
		assert.Equal(t, "creme-brulee", repository.upserted[0].Slug)
		assert.Equal(t, "#AABBCC", repository.upserted[0].Color)
	})

	t.Run("invalid_color", func(t *testing.T) {
		repository := &fakeRepository{}
		_, err := newService(repository).ImportTags(context.Background(), []tag.Tag{
			{Name: "Lunch", Color: "green"},
		})

		require.Error(t, err)
		assert.True(t, apperr.HasCode(err, apperr.CodeValidation))
		assert.Empty(t, repository.upserted)
	})
}

/*
TestParseCSV handles BOM, header skipping and optional slug.
*/
func TestParseCSV(t *testing.T) {
	input := "\ufeffname,color,slug\nBreakfast,#E26C2D,breakfast\nSnack,#000000\n"

	tags, err := tag.ParseCSV(strings.NewReader(input), true)
	require.NoError(t, err)
	require.Len(t, tags, 2)
	assert.Equal(t, tag.Tag{Name: "Breakfast", Color: "#E26C2D", Slug: "breakfast"}, tags[0])
	assert.Equal(t, "", tags[1].Slug)

	_, err = tag.ParseCSV(strings.NewReader("only-one-field\n"), false)
	assert.Error(t, err)
}
