// Copyright (c) 2026 Foodgram. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package shopping

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/taibuivan/foodgram/internal/platform/database/schema"
	"github.com/taibuivan/foodgram/internal/platform/dberr"
)

// PostgresRepository implements [Repository] using pgx.
type PostgresRepository struct {
	pool *pgxpool.Pool
}

// NewPostgresRepository constructs a PostgreSQL backed cart reader.
func NewPostgresRepository(pool *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{pool: pool}
}

/*
CartLines joins the user's cart to the ingredient lines of each recipe.

Description: The join resolves cart entry → recipe → recipe ingredient line →
ingredient in one statement. Grouping is left to [Aggregate] so the summing
rules live in one testable place.
*/
func (repository *PostgresRepository) CartLines(ctx context.Context, userID string) ([]Line, error) {
	query := fmt.Sprintf(`
		SELECT i.%s, i.%s, ri.%s
		FROM %s c
		JOIN %s ri ON ri.%s = c.%s
		JOIN %s i ON i.%s = ri.%s
		WHERE c.%s = $1
	`,
		schema.CoreIngredient.Name, schema.CoreIngredient.MeasurementUnit, schema.CoreRecipeIngredient.Amount,
		schema.UserCart.Table,
		schema.CoreRecipeIngredient.Table, schema.CoreRecipeIngredient.RecipeID, schema.UserCart.TargetID,
		schema.CoreIngredient.Table, schema.CoreIngredient.ID, schema.CoreRecipeIngredient.IngredientID,
		schema.UserCart.UserID,
	)

	rows, err := repository.pool.Query(ctx, query, userID)
	if err != nil {
		return nil, dberr.Wrap(err, "query_cart_lines")
	}

	lines, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (Line, error) {
		var line Line
		err := row.Scan(&line.Name, &line.MeasurementUnit, &line.Amount)
		return line, err
	})
	if err != nil {
		return nil, dberr.Wrap(err, "scan_cart_lines")
	}
	return lines, nil
}
