// Copyright (c) 2026 Foodgram. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package relation

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/taibuivan/foodgram/internal/platform/dberr"
)

// PostgresRepository implements [Repository] using pgx.
type PostgresRepository struct {
	pool *pgxpool.Pool
}

// NewPostgresRepository constructs a PostgreSQL backed relation store.
func NewPostgresRepository(pool *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{pool: pool}
}

/*
Insert adds a (user, target) pair.

Description: The insert relies on the table's primary key instead of a prior
existence check, so two concurrent inserts cannot both succeed. Constraint
violations are translated into the package's sentinel errors.
*/
func (repository *PostgresRepository) Insert(ctx context.Context, kind Kind, userID, targetID string) error {
	query := fmt.Sprintf(`INSERT INTO %s (%s, %s) VALUES ($1, $2)`,
		kind.Table.Table, kind.Table.UserID, kind.Table.TargetID)

	_, err := repository.pool.Exec(ctx, query, userID, targetID)
	switch {
	case err == nil:
		return nil
	case dberr.IsUniqueViolation(err):
		return ErrDuplicate
	case dberr.IsForeignKeyViolation(err):
		return ErrTargetMissing
	case dberr.IsCheckViolation(err):
		return ErrSelf
	}
	return dberr.Wrap(err, "insert_"+kind.Name)
}

// Delete removes a pair and reports whether a row was affected.
func (repository *PostgresRepository) Delete(ctx context.Context, kind Kind, userID, targetID string) (bool, error) {
	query := fmt.Sprintf(`DELETE FROM %s WHERE %s = $1 AND %s = $2`,
		kind.Table.Table, kind.Table.UserID, kind.Table.TargetID)

	tag, err := repository.pool.Exec(ctx, query, userID, targetID)
	if err != nil {
		return false, dberr.Wrap(err, "delete_"+kind.Name)
	}
	return tag.RowsAffected() > 0, nil
}

// Marked resolves membership for many targets in one round-trip.
func (repository *PostgresRepository) Marked(ctx context.Context, kind Kind, userID string, targetIDs []string) (map[string]bool, error) {
	marked := make(map[string]bool, len(targetIDs))

	ids := make([]uuid.UUID, 0, len(targetIDs))
	for _, raw := range targetIDs {
		if parsed, err := uuid.Parse(raw); err == nil {
			ids = append(ids, parsed)
		}
	}
	if len(ids) == 0 {
		return marked, nil
	}

	query := fmt.Sprintf(`SELECT %s FROM %s WHERE %s = $1 AND %s = ANY($2)`,
		kind.Table.TargetID, kind.Table.Table, kind.Table.UserID, kind.Table.TargetID)

	rows, err := repository.pool.Query(ctx, query, userID, ids)
	if err != nil {
		return nil, dberr.Wrap(err, "marked_"+kind.Name)
	}
	defer rows.Close()

	for rows.Next() {
		var targetID uuid.UUID
		if err := rows.Scan(&targetID); err != nil {
			return nil, dberr.Wrap(err, "scan_marked_"+kind.Name)
		}
		marked[targetID.String()] = true
	}

	if err := rows.Err(); err != nil {
		return nil, dberr.Wrap(err, "marked_"+kind.Name)
	}
	return marked, nil
}
