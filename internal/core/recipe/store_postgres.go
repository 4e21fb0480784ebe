// Copyright (c) 2026 Foodgram. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package recipe

import (
	"context"
	"fmt"
	"strings"

	"github.com/goccy/go-json"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/taibuivan/foodgram/internal/platform/apperr"
	"github.com/taibuivan/foodgram/internal/platform/database/schema"
	"github.com/taibuivan/foodgram/internal/platform/dberr"
	"github.com/taibuivan/foodgram/internal/platform/postgres"
	"github.com/taibuivan/foodgram/internal/platform/validate"
)

// PostgresRepository implements [Repository] using pgx.
type PostgresRepository struct {
	pool *pgxpool.Pool
}

// NewPostgresRepository constructs a PostgreSQL backed recipe store.
func NewPostgresRepository(pool *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{pool: pool}
}

// # Projection Query

// projectionColumns selects every column of [Recipe] except the viewer flags.
// Tags and ingredient lines are aggregated into JSON arrays to avoid N+1 lookups.
var projectionColumns = fmt.Sprintf(`
		r.%s, r.%s, r.%s, r.%s, r.%s, r.%s,
		a.%s, a.%s, a.%s, a.%s, a.%s,
		COALESCE((
			SELECT json_agg(json_build_object('id', t.%s, 'name', t.%s, 'color', t.%s, 'slug', t.%s) ORDER BY t.%s)
			FROM %s t
			JOIN %s rt ON rt.%s = t.%s
			WHERE rt.%s = r.%s
		), '[]') AS tags,
		COALESCE((
			SELECT json_agg(json_build_object('id', i.%s, 'name', i.%s, 'measurement_unit', i.%s, 'amount', ri.%s) ORDER BY ri.%s)
			FROM %s ri
			JOIN %s i ON i.%s = ri.%s
			WHERE ri.%s = r.%s
		), '[]') AS ingredients`,
	schema.CoreRecipe.ID, schema.CoreRecipe.Name, schema.CoreRecipe.Text,
	schema.CoreRecipe.Image, schema.CoreRecipe.CookingTime, schema.CoreRecipe.PubDate,
	schema.UserAccount.ID, schema.UserAccount.Email, schema.UserAccount.Username,
	schema.UserAccount.FirstName, schema.UserAccount.LastName,
	schema.CoreTag.ID, schema.CoreTag.Name, schema.CoreTag.Color, schema.CoreTag.Slug, schema.CoreTag.ID,
	schema.CoreTag.Table,
	schema.CoreRecipeTag.Table, schema.CoreRecipeTag.TagID, schema.CoreTag.ID,
	schema.CoreRecipeTag.RecipeID, schema.CoreRecipe.ID,
	schema.CoreIngredient.ID, schema.CoreIngredient.Name, schema.CoreIngredient.MeasurementUnit,
	schema.CoreRecipeIngredient.Amount, schema.CoreRecipeIngredient.Position,
	schema.CoreRecipeIngredient.Table,
	schema.CoreIngredient.Table, schema.CoreIngredient.ID, schema.CoreRecipeIngredient.IngredientID,
	schema.CoreRecipeIngredient.RecipeID, schema.CoreRecipe.ID,
)

// projectionFrom joins a recipe to its author.
var projectionFrom = fmt.Sprintf(`
	FROM %s r
	JOIN %s a ON a.%s = r.%s`,
	schema.CoreRecipe.Table,
	schema.UserAccount.Table, schema.UserAccount.ID, schema.CoreRecipe.AuthorID,
)

// scanRecipe reads one projection row. extra receives columns selected after it.
func scanRecipe(row pgx.Row, extra ...any) (*Recipe, error) {
	recipe := &Recipe{}
	var tagsJSON, ingredientsJSON []byte

	targets := []any{
		&recipe.ID, &recipe.Name, &recipe.Text, &recipe.Image, &recipe.CookingTime, &recipe.PubDate,
		&recipe.Author.ID, &recipe.Author.Email, &recipe.Author.Username,
		&recipe.Author.FirstName, &recipe.Author.LastName,
		&tagsJSON, &ingredientsJSON,
	}
	if err := row.Scan(append(targets, extra...)...); err != nil {
		return nil, err
	}

	if err := json.Unmarshal(tagsJSON, &recipe.Tags); err != nil {
		return nil, fmt.Errorf("postgres: failed to unmarshal recipe tags: %w", err)
	}
	if err := json.Unmarshal(ingredientsJSON, &recipe.Ingredients); err != nil {
		return nil, fmt.Errorf("postgres: failed to unmarshal recipe ingredients: %w", err)
	}
	return recipe, nil
}

// # Reads

// FindByID retrieves the projection of one recipe.
func (repository *PostgresRepository) FindByID(ctx context.Context, id string) (*Recipe, error) {
	query := "SELECT" + projectionColumns + projectionFrom + fmt.Sprintf(" WHERE r.%s = $1", schema.CoreRecipe.ID)

	recipe, err := scanRecipe(repository.pool.QueryRow(ctx, query, id))
	if err != nil {
		if dberr.IsNoRows(err) {
			return nil, apperr.NotFound("Recipe")
		}
		return nil, dberr.Wrap(err, "find_recipe")
	}
	return recipe, nil
}

// FindShort retrieves the compact view of one recipe.
func (repository *PostgresRepository) FindShort(ctx context.Context, id string) (*Short, error) {
	query := fmt.Sprintf(`SELECT %s, %s, %s, %s FROM %s WHERE %s = $1`,
		schema.CoreRecipe.ID, schema.CoreRecipe.Name, schema.CoreRecipe.Image, schema.CoreRecipe.CookingTime,
		schema.CoreRecipe.Table, schema.CoreRecipe.ID)

	short := &Short{}
	err := repository.pool.QueryRow(ctx, query, id).Scan(&short.ID, &short.Name, &short.Image, &short.CookingTime)
	if err != nil {
		if dberr.IsNoRows(err) {
			return nil, apperr.NotFound("Recipe")
		}
		return nil, dberr.Wrap(err, "find_short_recipe")
	}
	return short, nil
}

// AuthorOf returns the author id of a recipe.
func (repository *PostgresRepository) AuthorOf(ctx context.Context, id string) (string, error) {
	query := fmt.Sprintf(`SELECT %s FROM %s WHERE %s = $1`,
		schema.CoreRecipe.AuthorID, schema.CoreRecipe.Table, schema.CoreRecipe.ID)

	var authorID string
	if err := repository.pool.QueryRow(ctx, query, id).Scan(&authorID); err != nil {
		if dberr.IsNoRows(err) {
			return "", apperr.NotFound("Recipe")
		}
		return "", dberr.Wrap(err, "recipe_author")
	}
	return authorID, nil
}

/*
List returns a filtered page of recipes and the total count.

Description: COUNT(*) OVER() carries the total on every row so no second
query is needed. Tag filtering is any-of over slugs; favorite and cart filters
are EXISTS probes against the relation tables of the given user.
*/
func (repository *PostgresRepository) List(ctx context.Context, filter Filter, limit, offset int) ([]*Recipe, int, error) {
	var queryBuilder strings.Builder
	var args []any
	argID := 1

	queryBuilder.WriteString("SELECT" + projectionColumns + ", COUNT(*) OVER() AS total_count" + projectionFrom + " WHERE TRUE")

	if len(filter.TagSlugs) > 0 {
		queryBuilder.WriteString(fmt.Sprintf(` AND EXISTS (SELECT 1 FROM %s rt JOIN %s t ON t.%s = rt.%s WHERE rt.%s = r.%s AND t.%s = ANY($%d))`,
			schema.CoreRecipeTag.Table, schema.CoreTag.Table, schema.CoreTag.ID, schema.CoreRecipeTag.TagID,
			schema.CoreRecipeTag.RecipeID, schema.CoreRecipe.ID, schema.CoreTag.Slug, argID))
		args = append(args, filter.TagSlugs)
		argID++
	}

	if filter.AuthorID != "" {
		queryBuilder.WriteString(fmt.Sprintf(" AND r.%s = $%d", schema.CoreRecipe.AuthorID, argID))
		args = append(args, filter.AuthorID)
		argID++
	}

	if filter.FavoritedBy != "" {
		queryBuilder.WriteString(fmt.Sprintf(` AND EXISTS (SELECT 1 FROM %s f WHERE f.%s = r.%s AND f.%s = $%d)`,
			schema.UserFavorite.Table, schema.UserFavorite.TargetID, schema.CoreRecipe.ID, schema.UserFavorite.UserID, argID))
		args = append(args, filter.FavoritedBy)
		argID++
	}

	if filter.InCartOf != "" {
		queryBuilder.WriteString(fmt.Sprintf(` AND EXISTS (SELECT 1 FROM %s c WHERE c.%s = r.%s AND c.%s = $%d)`,
			schema.UserCart.Table, schema.UserCart.TargetID, schema.CoreRecipe.ID, schema.UserCart.UserID, argID))
		args = append(args, filter.InCartOf)
		argID++
	}

	queryBuilder.WriteString(fmt.Sprintf(" ORDER BY r.%s DESC, r.%s DESC LIMIT $%d OFFSET $%d",
		schema.CoreRecipe.PubDate, schema.CoreRecipe.ID, argID, argID+1))
	args = append(args, limit, offset)

	rows, err := repository.pool.Query(ctx, queryBuilder.String(), args...)
	if err != nil {
		return nil, 0, dberr.Wrap(err, "list_recipes")
	}
	defer rows.Close()

	recipes := make([]*Recipe, 0, limit)
	var totalCount int
	for rows.Next() {
		recipe, err := scanRecipe(rows, &totalCount)
		if err != nil {
			return nil, 0, dberr.Wrap(err, "scan_recipe")
		}
		recipes = append(recipes, recipe)
	}

	if err := rows.Err(); err != nil {
		return nil, 0, dberr.Wrap(err, "list_recipes")
	}
	return recipes, totalCount, nil
}

// # Writes

/*
Create inserts a recipe aggregate in one transaction.

Description: The recipe row goes first, then tag links through a pgx.Batch and
ingredient lines through COPY. Any failure rolls the whole aggregate back.
*/
func (repository *PostgresRepository) Create(ctx context.Context, id, authorID string, draft *Draft) error {
	return postgres.WithTx(ctx, repository.pool, func(tx pgx.Tx) error {
		query := fmt.Sprintf(`INSERT INTO %s (%s, %s, %s, %s, %s, %s) VALUES ($1, $2, $3, $4, $5, $6)`,
			schema.CoreRecipe.Table,
			schema.CoreRecipe.ID, schema.CoreRecipe.AuthorID, schema.CoreRecipe.Name,
			schema.CoreRecipe.Text, schema.CoreRecipe.Image, schema.CoreRecipe.CookingTime)

		if _, err := tx.Exec(ctx, query, id, authorID, draft.Name, draft.Text, draft.Image, draft.CookingTime); err != nil {
			return dberr.Wrap(err, "insert_recipe")
		}

		if err := replaceTags(ctx, tx, id, draft.Tags); err != nil {
			return err
		}
		return replaceLines(ctx, tx, id, draft.Ingredients)
	})
}

// Update replaces a recipe aggregate in one transaction.
func (repository *PostgresRepository) Update(ctx context.Context, id string, draft *Draft) error {
	return postgres.WithTx(ctx, repository.pool, func(tx pgx.Tx) error {
		query := fmt.Sprintf(`
			UPDATE %s
			SET %s = $2, %s = $3, %s = COALESCE(NULLIF($4, ''), %s), %s = $5, %s = NOW()
			WHERE %s = $1
		`,
			schema.CoreRecipe.Table,
			schema.CoreRecipe.Name, schema.CoreRecipe.Text,
			schema.CoreRecipe.Image, schema.CoreRecipe.Image,
			schema.CoreRecipe.CookingTime, schema.CoreRecipe.UpdatedAt,
			schema.CoreRecipe.ID,
		)

		result, err := tx.Exec(ctx, query, id, draft.Name, draft.Text, draft.Image, draft.CookingTime)
		if err != nil {
			return dberr.Wrap(err, "update_recipe")
		}
		if result.RowsAffected() == 0 {
			return apperr.NotFound("Recipe")
		}

		if err := replaceTags(ctx, tx, id, draft.Tags); err != nil {
			return err
		}
		return replaceLines(ctx, tx, id, draft.Ingredients)
	})
}

// Delete removes a recipe. Lines, tag links, favorites and cart entries cascade.
func (repository *PostgresRepository) Delete(ctx context.Context, id string) error {
	query := fmt.Sprintf(`DELETE FROM %s WHERE %s = $1`, schema.CoreRecipe.Table, schema.CoreRecipe.ID)

	result, err := repository.pool.Exec(ctx, query, id)
	if err != nil {
		return dberr.Wrap(err, "delete_recipe")
	}
	if result.RowsAffected() == 0 {
		return apperr.NotFound("Recipe")
	}
	return nil
}

/*
replaceTags synchronizes the recipe's tag links.

Description: Clears every existing link, then queues one INSERT per tag on a
pgx.Batch. An unknown tag id surfaces as a VALIDATION_ERROR on "tags".
*/
func replaceTags(ctx context.Context, tx pgx.Tx, recipeID string, tagIDs []int64) error {
	deleteQuery := fmt.Sprintf(`DELETE FROM %s WHERE %s = $1`, schema.CoreRecipeTag.Table, schema.CoreRecipeTag.RecipeID)
	if _, err := tx.Exec(ctx, deleteQuery, recipeID); err != nil {
		return dberr.Wrap(err, "clear_recipe_tags")
	}

	if len(tagIDs) == 0 {
		return nil
	}

	insert := fmt.Sprintf(`INSERT INTO %s (%s, %s) VALUES ($1, $2)`,
		schema.CoreRecipeTag.Table, schema.CoreRecipeTag.RecipeID, schema.CoreRecipeTag.TagID)

	batch := &pgx.Batch{}
	for _, tagID := range tagIDs {
		batch.Queue(insert, recipeID, tagID)
	}

	if err := tx.SendBatch(ctx, batch).Close(); err != nil {
		if dberr.IsForeignKeyViolation(err) {
			return validate.FieldError("tags", "Unknown tag id")
		}
		return dberr.Wrap(err, "insert_recipe_tags")
	}
	return nil
}

/*
replaceLines synchronizes the recipe's ingredient lines.

Description: Clears every existing line, then writes the new set with a single
COPY. Lines keep the draft order in the position column. An unknown ingredient
id surfaces as a VALIDATION_ERROR on "ingredients".
*/
func replaceLines(ctx context.Context, tx pgx.Tx, recipeID string, lines []DraftLine) error {
	deleteQuery := fmt.Sprintf(`DELETE FROM %s WHERE %s = $1`,
		schema.CoreRecipeIngredient.Table, schema.CoreRecipeIngredient.RecipeID)
	if _, err := tx.Exec(ctx, deleteQuery, recipeID); err != nil {
		return dberr.Wrap(err, "clear_recipe_lines")
	}

	recipeUUID, err := uuid.Parse(recipeID)
	if err != nil {
		return apperr.NotFound("Recipe")
	}

	_, err = tx.CopyFrom(ctx,
		pgx.Identifier(schema.Qualified(schema.CoreRecipeIngredient.Table)),
		schema.CoreRecipeIngredient.Columns(),
		pgx.CopyFromSlice(len(lines), func(index int) ([]any, error) {
			return []any{recipeUUID, lines[index].ID, lines[index].Amount, index}, nil
		}),
	)

	switch {
	case err == nil:
		return nil
	case dberr.IsForeignKeyViolation(err):
		return validate.FieldError("ingredients", "Unknown ingredient id")
	case dberr.IsUniqueViolation(err):
		return validate.FieldError("ingredients", "Ingredient is listed more than once")
	case dberr.IsCheckViolation(err):
		return validate.FieldError("ingredients", "Amount must be at least 1")
	}
	return dberr.Wrap(err, "copy_recipe_lines")
}
