// Copyright (c) 2026 Foodgram. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package recipe

import (
	"fmt"
	"strings"

	"github.com/taibuivan/foodgram/internal/platform/validate"
	"github.com/taibuivan/foodgram/pkg/slice"
)

// Draft is the unvalidated payload of a recipe create or update.
type Draft struct {
	Name        string      `json:"name" validate:"required,max=200"`
	Text        string      `json:"text" validate:"required"`
	CookingTime int         `json:"cooking_time" validate:"gte=1,lte=32000"`
	Image       string      `json:"image"`
	Tags        []int64     `json:"tags"`
	Ingredients []DraftLine `json:"ingredients" validate:"required,min=1,dive"`
}

// DraftLine is one requested ingredient line.
type DraftLine struct {
	ID     int64 `json:"id" validate:"gte=1"`
	Amount int   `json:"amount" validate:"gte=1,lte=32000"`
}

/*
Validate normalizes the draft and checks it.

Description: Name and text are trimmed and duplicate tag ids collapse, keeping
first occurrence order. Ingredient lines must be non-empty, reference distinct
ingredients and carry amounts between 1 and 32000, the same cap that applies
to cooking time so both fit an INTEGER column. Every failure is reported, not
only the first.

Returns:
  - error: VALIDATION_ERROR with per-field details, or nil
*/
func (draft *Draft) Validate() error {
	draft.Name = strings.TrimSpace(draft.Name)
	draft.Text = strings.TrimSpace(draft.Text)
	draft.Image = strings.TrimSpace(draft.Image)
	draft.Tags = slice.Unique(draft.Tags)

	validator := &validate.Validator{}
	if err := validator.Merge(validate.Struct(draft)); err != nil {
		return err
	}

	seen := make(map[int64]bool, len(draft.Ingredients))
	for index, line := range draft.Ingredients {
		validator.Custom(fmt.Sprintf("ingredients[%d].id", index), seen[line.ID], "Ingredient is listed more than once")
		seen[line.ID] = true
	}

	for index, tagID := range draft.Tags {
		validator.Custom(fmt.Sprintf("tags[%d]", index), tagID < 1, "Must be at least 1")
	}

	return validator.Err()
}
