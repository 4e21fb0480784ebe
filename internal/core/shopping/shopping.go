// Copyright (c) 2026 Foodgram. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package shopping turns a user's cart into a shopping list.

The store joins every recipe in the cart to its ingredient lines. [Aggregate]
then groups the lines by (ingredient name, measurement unit), sums the amounts
and sorts the result. Units are never converted: "g" and "kg" of the same
ingredient stay separate items.
*/
package shopping

import (
	"cmp"
	"context"
	"slices"
)

// # Domain Entities

// Line is one ingredient line of one recipe in the cart.
type Line struct {
	Name            string
	MeasurementUnit string
	Amount          int64
}

// Item is one aggregated shopping list entry.
type Item struct {
	Name            string `json:"name"`
	MeasurementUnit string `json:"measurement_unit"`
	TotalAmount     int64  `json:"total_amount"`
}

// # Repository Contracts

// Repository reads cart contents.
type Repository interface {
	// CartLines returns the ingredient lines of every recipe in the user's cart.
	// The order is unspecified.
	CartLines(ctx context.Context, userID string) ([]Line, error)
}

// # Aggregation

type itemKey struct {
	name string
	unit string
}

// Aggregate groups lines by (name, unit), sums their amounts and returns the
// items sorted by name, then unit. No lines yields an empty, non-nil slice.
func Aggregate(lines []Line) []Item {
	totals := make(map[itemKey]int64, len(lines))
	for _, line := range lines {
		totals[itemKey{name: line.Name, unit: line.MeasurementUnit}] += line.Amount
	}

	items := make([]Item, 0, len(totals))
	for key, total := range totals {
		items = append(items, Item{Name: key.name, MeasurementUnit: key.unit, TotalAmount: total})
	}

	slices.SortFunc(items, func(a, b Item) int {
		return cmp.Or(
			cmp.Compare(a.Name, b.Name),
			cmp.Compare(a.MeasurementUnit, b.MeasurementUnit),
		)
	})
	return items
}
