// Copyright (c) 2026 Foodgram. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package dberr classifies PostgreSQL failures and converts them into
// [apperr.AppError] values.
//
// Classification is done on SQLSTATE codes (see [pgerrcode]) so that stores can
// react to constraint violations without string matching on messages.
package dberr

import (
	"errors"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/taibuivan/foodgram/internal/platform/apperr"
)

// ErrNotFound is returned when a queried row doesn't exist and the caller did
// not name the resource.
var ErrNotFound = apperr.NotFound("Resource")

// # SQLSTATE Classification

// Code returns the SQLSTATE of err, or "" if err is not a [*pgconn.PgError].
func Code(err error) string {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code
	}
	return ""
}

// Constraint returns the violated constraint name, or "".
func Constraint(err error) string {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.ConstraintName
	}
	return ""
}

// IsUniqueViolation reports a 23505 error.
func IsUniqueViolation(err error) bool {
	return Code(err) == pgerrcode.UniqueViolation
}

// IsForeignKeyViolation reports a 23503 error.
func IsForeignKeyViolation(err error) bool {
	return Code(err) == pgerrcode.ForeignKeyViolation
}

// IsCheckViolation reports a 23514 error.
func IsCheckViolation(err error) bool {
	return Code(err) == pgerrcode.CheckViolation
}

// IsNoRows reports whether err is [pgx.ErrNoRows].
func IsNoRows(err error) bool {
	return errors.Is(err, pgx.ErrNoRows)
}

// # Wrapping

// Wrap inspects a database error and converts it into an [apperr.AppError].
//
// Errors that are already an [apperr.AppError] pass through unchanged. The action
// is used as the resource name for not-found mapping and for log context.
func Wrap(err error, action string) error {
	if err == nil {
		return nil
	}

	if apperr.As(err) != nil {
		return err
	}

	switch {
	case IsNoRows(err):
		return ErrNotFound
	case IsUniqueViolation(err):
		return apperr.Conflict("Resource already exists").WithCause(err)
	case IsForeignKeyViolation(err):
		return apperr.NotFound("Referenced resource").WithCause(err)
	case IsCheckViolation(err):
		return apperr.ValidationError("Value violates a constraint: " + Constraint(err)).WithCause(err)
	}

	return apperr.Internal(&actionError{action: action, err: err})
}

// actionError tags an internal failure with the store action that produced it.
type actionError struct {
	action string
	err    error
}

func (e *actionError) Error() string { return e.action + ": " + e.err.Error() }

func (e *actionError) Unwrap() error { return e.err }
