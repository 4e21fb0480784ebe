// Copyright (c) 2026 Foodgram. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package account

import (
	"context"
	"fmt"

	"github.com/goccy/go-json"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/taibuivan/foodgram/internal/platform/apperr"
	"github.com/taibuivan/foodgram/internal/platform/database/schema"
	"github.com/taibuivan/foodgram/internal/platform/dberr"
	"github.com/taibuivan/foodgram/internal/platform/sec"
)

// PostgresRepository implements [Repository] using pgx.
type PostgresRepository struct {
	pool *pgxpool.Pool
}

// NewPostgresRepository creates a PostgreSQL backed account store.
func NewPostgresRepository(pool *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{pool: pool}
}

// userColumns lists the card columns of alias a.
var userColumns = fmt.Sprintf(`a.%s, a.%s, a.%s, a.%s, a.%s`,
	schema.UserAccount.ID, schema.UserAccount.Email, schema.UserAccount.Username,
	schema.UserAccount.FirstName, schema.UserAccount.LastName)

func scanUser(row pgx.Row, extra ...any) (*User, error) {
	user := &User{}
	targets := []any{&user.ID, &user.Email, &user.Username, &user.FirstName, &user.LastName}
	if err := row.Scan(append(targets, extra...)...); err != nil {
		return nil, err
	}
	return user, nil
}

// FindByID retrieves one account card.
func (repository *PostgresRepository) FindByID(ctx context.Context, id string) (*User, error) {
	query := fmt.Sprintf(`SELECT %s FROM %s a WHERE a.%s = $1`,
		userColumns, schema.UserAccount.Table, schema.UserAccount.ID)

	user, err := scanUser(repository.pool.QueryRow(ctx, query, id))
	if err != nil {
		if dberr.IsNoRows(err) {
			return nil, apperr.NotFound("User")
		}
		return nil, dberr.Wrap(err, "find_account")
	}
	return user, nil
}

// List returns a page of accounts ordered by username.
func (repository *PostgresRepository) List(ctx context.Context, limit, offset int) ([]*User, int, error) {
	query := fmt.Sprintf(`
		SELECT %s, COUNT(*) OVER() AS total_count
		FROM %s a
		ORDER BY a.%s
		LIMIT $1 OFFSET $2
	`, userColumns, schema.UserAccount.Table, schema.UserAccount.Username)

	rows, err := repository.pool.Query(ctx, query, limit, offset)
	if err != nil {
		return nil, 0, dberr.Wrap(err, "list_accounts")
	}
	defer rows.Close()

	users := make([]*User, 0, limit)
	var total int
	for rows.Next() {
		user, err := scanUser(rows, &total)
		if err != nil {
			return nil, 0, dberr.Wrap(err, "scan_account")
		}
		users = append(users, user)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, dberr.Wrap(err, "list_accounts")
	}
	return users, total, nil
}

/*
Upsert provisions the account of an authenticated principal.

Description: Identity claims are the source of truth for username, email and
role, so existing rows are refreshed on every call. A username or email
already held by another account surfaces as CONFLICT.
*/
func (repository *PostgresRepository) Upsert(ctx context.Context, principal *sec.Principal) error {
	query := fmt.Sprintf(`
		INSERT INTO %s (%s, %s, %s, %s)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (%s) DO UPDATE
		SET %s = EXCLUDED.%s, %s = EXCLUDED.%s, %s = EXCLUDED.%s
	`,
		schema.UserAccount.Table,
		schema.UserAccount.ID, schema.UserAccount.Username, schema.UserAccount.Email, schema.UserAccount.Role,
		schema.UserAccount.ID,
		schema.UserAccount.Username, schema.UserAccount.Username,
		schema.UserAccount.Email, schema.UserAccount.Email,
		schema.UserAccount.Role, schema.UserAccount.Role,
	)

	_, err := repository.pool.Exec(ctx, query, principal.UserID, principal.Username, principal.Email, string(principal.Role))
	if err != nil {
		if dberr.IsUniqueViolation(err) {
			return apperr.Conflict("Username or email is already taken by another account").WithCause(err)
		}
		return dberr.Wrap(err, "upsert_account")
	}
	return nil
}

// subscriptionColumns selects a card, the recipe count and at most $N newest
// recipes as a JSON array. The placeholder index is filled by the caller.
const subscriptionColumns = `%s,
		(SELECT COUNT(*) FROM %s r WHERE r.%s = a.%s) AS recipes_count,
		COALESCE((
			SELECT json_agg(json_build_object('id', p.%s, 'name', p.%s, 'image', p.%s, 'cooking_time', p.%s) ORDER BY p.%s DESC, p.%s DESC)
			FROM (
				SELECT * FROM %s r WHERE r.%s = a.%s ORDER BY r.%s DESC, r.%s DESC LIMIT $%d
			) p
		), '[]') AS recipes`

func subscriptionSelect(limitArg int) string {
	return fmt.Sprintf(subscriptionColumns,
		userColumns,
		schema.CoreRecipe.Table, schema.CoreRecipe.AuthorID, schema.UserAccount.ID,
		schema.CoreRecipe.ID, schema.CoreRecipe.Name, schema.CoreRecipe.Image, schema.CoreRecipe.CookingTime,
		schema.CoreRecipe.PubDate, schema.CoreRecipe.ID,
		schema.CoreRecipe.Table, schema.CoreRecipe.AuthorID, schema.UserAccount.ID,
		schema.CoreRecipe.PubDate, schema.CoreRecipe.ID, limitArg,
	)
}

func scanSubscription(row pgx.Row, extra ...any) (*Subscription, error) {
	subscription := &Subscription{}
	var recipesJSON []byte

	targets := []any{
		&subscription.ID, &subscription.Email, &subscription.Username,
		&subscription.FirstName, &subscription.LastName,
		&subscription.RecipesCount, &recipesJSON,
	}
	if err := row.Scan(append(targets, extra...)...); err != nil {
		return nil, err
	}

	if err := json.Unmarshal(recipesJSON, &subscription.Recipes); err != nil {
		return nil, fmt.Errorf("postgres: failed to unmarshal recipe previews: %w", err)
	}
	return subscription, nil
}

// Subscriptions returns the authors followed by userID.
func (repository *PostgresRepository) Subscriptions(ctx context.Context, userID string, recipesLimit, limit, offset int) ([]*Subscription, int, error) {
	query := fmt.Sprintf(`
		SELECT %s, COUNT(*) OVER() AS total_count
		FROM %s f
		JOIN %s a ON a.%s = f.%s
		WHERE f.%s = $1
		ORDER BY a.%s
		LIMIT $3 OFFSET $4
	`,
		subscriptionSelect(2),
		schema.UserFollow.Table,
		schema.UserAccount.Table, schema.UserAccount.ID, schema.UserFollow.TargetID,
		schema.UserFollow.UserID,
		schema.UserAccount.Username,
	)

	rows, err := repository.pool.Query(ctx, query, userID, recipesLimit, limit, offset)
	if err != nil {
		return nil, 0, dberr.Wrap(err, "list_subscriptions")
	}
	defer rows.Close()

	subscriptions := make([]*Subscription, 0, limit)
	var total int
	for rows.Next() {
		subscription, err := scanSubscription(rows, &total)
		if err != nil {
			return nil, 0, dberr.Wrap(err, "scan_subscription")
		}
		subscriptions = append(subscriptions, subscription)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, dberr.Wrap(err, "list_subscriptions")
	}
	return subscriptions, total, nil
}

// Subscription returns the card of one author with recipe previews.
func (repository *PostgresRepository) Subscription(ctx context.Context, authorID string, recipesLimit int) (*Subscription, error) {
	query := fmt.Sprintf(`SELECT %s FROM %s a WHERE a.%s = $1`,
		subscriptionSelect(2), schema.UserAccount.Table, schema.UserAccount.ID)

	subscription, err := scanSubscription(repository.pool.QueryRow(ctx, query, authorID, recipesLimit))
	if err != nil {
		if dberr.IsNoRows(err) {
			return nil, apperr.NotFound("User")
		}
		return nil, dberr.Wrap(err, "find_subscription")
	}
	return subscription, nil
}
