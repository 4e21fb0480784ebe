// Copyright (c) 2026 Foodgram. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package schema

// CoreTagTable represents the 'core.tag' table
type CoreTagTable struct {
	Table string
	ID    string
	Name  string
	Color string
	Slug  string
}

// CoreTag is the schema definition for core.tag
var CoreTag = CoreTagTable{
	Table: "core.tag",
	ID:    "id",
	Name:  "name",
	Color: "color",
	Slug:  "slug",
}

// Columns returns all standard column names
func (t CoreTagTable) Columns() []string {
	return []string{t.ID, t.Name, t.Color, t.Slug}
}
