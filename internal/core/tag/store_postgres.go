// Copyright (c) 2026 Foodgram. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package tag

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/taibuivan/foodgram/internal/platform/apperr"
	"github.com/taibuivan/foodgram/internal/platform/database/schema"
	"github.com/taibuivan/foodgram/internal/platform/dberr"
	"github.com/taibuivan/foodgram/internal/platform/postgres"
)

// PostgresRepository implements [Repository] using pgx.
type PostgresRepository struct {
	pool *pgxpool.Pool
}

// NewPostgresRepository constructs a PostgreSQL backed tag store.
func NewPostgresRepository(pool *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{pool: pool}
}

var selectTags = fmt.Sprintf(`SELECT %s, %s, %s, %s FROM %s`,
	schema.CoreTag.ID, schema.CoreTag.Name, schema.CoreTag.Color, schema.CoreTag.Slug, schema.CoreTag.Table)

// List returns all tags ordered by name.
func (repository *PostgresRepository) List(ctx context.Context) ([]Tag, error) {
	rows, err := repository.pool.Query(ctx, selectTags+fmt.Sprintf(` ORDER BY %s`, schema.CoreTag.Name))
	if err != nil {
		return nil, dberr.Wrap(err, "list_tags")
	}

	tags, err := pgx.CollectRows(rows, scanTag)
	if err != nil {
		return nil, dberr.Wrap(err, "scan_tags")
	}
	return tags, nil
}

// FindByID returns a single tag.
func (repository *PostgresRepository) FindByID(ctx context.Context, id int64) (*Tag, error) {
	rows, err := repository.pool.Query(ctx, selectTags+fmt.Sprintf(` WHERE %s = $1`, schema.CoreTag.ID), id)
	if err != nil {
		return nil, dberr.Wrap(err, "get_tag")
	}

	tag, err := pgx.CollectExactlyOneRow(rows, scanTag)
	if dberr.IsNoRows(err) {
		return nil, apperr.NotFound("Tag")
	}
	if err != nil {
		return nil, dberr.Wrap(err, "get_tag")
	}
	return &tag, nil
}

// Upsert writes tags in one transaction keyed by slug.
func (repository *PostgresRepository) Upsert(ctx context.Context, tags []Tag) (int, error) {
	query := fmt.Sprintf(`
		INSERT INTO %[1]s (%[2]s, %[3]s, %[4]s) VALUES ($1, $2, $3)
		ON CONFLICT (%[4]s) DO UPDATE SET %[2]s = EXCLUDED.%[2]s, %[3]s = EXCLUDED.%[3]s`,
		schema.CoreTag.Table, schema.CoreTag.Name, schema.CoreTag.Color, schema.CoreTag.Slug)

	written := 0
	err := postgres.WithTx(ctx, repository.pool, func(transaction pgx.Tx) error {
		batch := &pgx.Batch{}
		for _, tag := range tags {
			batch.Queue(query, tag.Name, tag.Color, tag.Slug)
		}

		results := transaction.SendBatch(ctx, batch)
		for range tags {
			tag, err := results.Exec()
			if err != nil {
				_ = results.Close()
				return err
			}
			written += int(tag.RowsAffected())
		}
		return results.Close()
	})
	if err != nil {
		return 0, dberr.Wrap(err, "upsert_tags")
	}
	return written, nil
}

func scanTag(row pgx.CollectableRow) (Tag, error) {
	var tag Tag
	err := row.Scan(&tag.ID, &tag.Name, &tag.Color, &tag.Slug)
	return tag, err
}
