// Copyright (c) 2026 Foodgram. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package ingredient

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/taibuivan/foodgram/internal/platform/apperr"
	"github.com/taibuivan/foodgram/internal/platform/database/schema"
	"github.com/taibuivan/foodgram/internal/platform/dberr"
)

// PostgresRepository implements [Repository] using pgx.
type PostgresRepository struct {
	pool *pgxpool.Pool
}

// NewPostgresRepository constructs a PostgreSQL backed ingredient store.
func NewPostgresRepository(pool *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{pool: pool}
}

var selectIngredients = fmt.Sprintf(`SELECT %s, %s, %s FROM %s`,
	schema.CoreIngredient.ID, schema.CoreIngredient.Name, schema.CoreIngredient.MeasurementUnit,
	schema.CoreIngredient.Table)

// Search matches on lower(name) so the prefix index is used.
func (repository *PostgresRepository) Search(ctx context.Context, prefix string) ([]Ingredient, error) {
	query := selectIngredients
	args := []any{}

	if prefix != "" {
		query += fmt.Sprintf(` WHERE lower(%s) LIKE $1`, schema.CoreIngredient.Name)
		args = append(args, escapeLike(strings.ToLower(prefix))+"%")
	}
	query += fmt.Sprintf(` ORDER BY %s, %s`, schema.CoreIngredient.Name, schema.CoreIngredient.ID)

	rows, err := repository.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, dberr.Wrap(err, "search_ingredients")
	}

	ingredients, err := pgx.CollectRows(rows, scanIngredient)
	if err != nil {
		return nil, dberr.Wrap(err, "scan_ingredients")
	}
	return ingredients, nil
}

// FindByID returns one ingredient.
func (repository *PostgresRepository) FindByID(ctx context.Context, id int64) (*Ingredient, error) {
	rows, err := repository.pool.Query(ctx, selectIngredients+fmt.Sprintf(` WHERE %s = $1`, schema.CoreIngredient.ID), id)
	if err != nil {
		return nil, dberr.Wrap(err, "get_ingredient")
	}

	ingredient, err := pgx.CollectExactlyOneRow(rows, scanIngredient)
	if dberr.IsNoRows(err) {
		return nil, apperr.NotFound("Ingredient")
	}
	if err != nil {
		return nil, dberr.Wrap(err, "get_ingredient")
	}
	return &ingredient, nil
}

// Count returns the catalog size.
func (repository *PostgresRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	query := fmt.Sprintf(`SELECT COUNT(*) FROM %s`, schema.CoreIngredient.Table)
	if err := repository.pool.QueryRow(ctx, query).Scan(&count); err != nil {
		return 0, dberr.Wrap(err, "count_ingredients")
	}
	return count, nil
}

// BulkInsert streams rows with the COPY protocol.
func (repository *PostgresRepository) BulkInsert(ctx context.Context, ingredients []Ingredient) (int64, error) {
	copied, err := repository.pool.CopyFrom(ctx,
		pgx.Identifier(schema.Qualified(schema.CoreIngredient.Table)),
		[]string{schema.CoreIngredient.Name, schema.CoreIngredient.MeasurementUnit},
		pgx.CopyFromSlice(len(ingredients), func(index int) ([]any, error) {
			return []any{ingredients[index].Name, ingredients[index].MeasurementUnit}, nil
		}),
	)
	if err != nil {
		return 0, dberr.Wrap(err, "bulk_insert_ingredients")
	}
	return copied, nil
}

func scanIngredient(row pgx.CollectableRow) (Ingredient, error) {
	var ingredient Ingredient
	err := row.Scan(&ingredient.ID, &ingredient.Name, &ingredient.MeasurementUnit)
	return ingredient, err
}

// escapeLike neutralizes LIKE wildcards in user input.
func escapeLike(value string) string {
	return strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`).Replace(value)
}
