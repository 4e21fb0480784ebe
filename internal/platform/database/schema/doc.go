// Copyright (c) 2026 Foodgram. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package schema describes table and column names of the Foodgram database.
//
// Stores build SQL from these descriptors with fmt.Sprintf so that a column
// rename is a single-line change.
package schema

import "strings"

// Qualified splits a "schema.table" name into its parts, the form expected by
// pgx.Identifier for COPY.
func Qualified(table string) []string {
	return strings.SplitN(table, ".", 2)
}
