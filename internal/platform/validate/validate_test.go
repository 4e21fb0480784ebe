// Copyright (c) 2026 Foodgram. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package validate_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/foodgram/internal/platform/apperr"
	"github.com/taibuivan/foodgram/internal/platform/validate"
)

/*
TestValidator_Required tests the mandatory field validation logic.
*/
func TestValidator_Required(t *testing.T) {
	tests := []struct {
		name     string
		value    string
		hasError bool
	}{
		{"valid_string", "Borscht", false},
		{"empty_string", "", true},
		{"whitespace_only", "   ", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := &validate.Validator{}
			v.Required("name", tt.value)

			if !tt.hasError {
				assert.False(t, v.HasErrors())
				assert.Nil(t, v.Err())
				return
			}

			ae := apperr.As(v.Err())
			require.NotNil(t, ae)
			assert.Equal(t, apperr.CodeValidation, ae.Code)
			assert.Equal(t, "name", ae.Details[0].Field)
		})
	}
}

/*
TestValidator_Min covers the inclusive lower bound.
*/
func TestValidator_Min(t *testing.T) {
	assert.True(t, (&validate.Validator{}).Min("amount", 0, 1).HasErrors())
	assert.False(t, (&validate.Validator{}).Min("amount", 1, 1).HasErrors())
	assert.False(t, (&validate.Validator{}).Min("amount", 500, 1).HasErrors())
}

func TestValidator_OneOf(t *testing.T) {
	assert.False(t, (&validate.Validator{}).OneOf("format", "json", "csv", "json").HasErrors())

	ae := apperr.As((&validate.Validator{}).OneOf("format", "xml", "csv", "json").Err())
	require.NotNil(t, ae)
	assert.Equal(t, "format", ae.Details[0].Field)
	assert.Equal(t, "Must be one of: csv, json", ae.Details[0].Message)
}

/*
TestValidator_Chain_Failure tests error accumulation in the chain.
*/
func TestValidator_Chain_Failure(t *testing.T) {
	v := &validate.Validator{}

	err := v.
		Required("name", "").
		MaxLen("name", "abcdef", 3).
		Min("cooking_time", 0, 1).
		Err()

	ae := apperr.As(err)
	require.NotNil(t, ae)
	assert.Len(t, ae.Details, 3)
}

/*
TestValidator_Merge folds validation details and passes other errors through.
*/
func TestValidator_Merge(t *testing.T) {
	v := &validate.Validator{}

	assert.NoError(t, v.Merge(nil))
	assert.NoError(t, v.Merge(validate.FieldError("tags", "Unknown tag")))
	assert.True(t, v.HasErrors())

	boom := errors.New("boom")
	assert.Equal(t, boom, v.Merge(boom))
}

type lineRequest struct {
	IngredientID int64 `json:"id" validate:"required"`
	Amount       int64 `json:"amount" validate:"gte=1,lte=32000"`
}

type draftRequest struct {
	Name        string        `json:"name" validate:"required,max=10"`
	Color       string        `json:"color" validate:"omitempty,hexcolor"`
	Ingredients []lineRequest `json:"ingredients" validate:"min=1,dive"`
}

/*
TestStruct reports JSON field paths for tag failures.
*/
func TestStruct(t *testing.T) {
	t.Run("valid", func(t *testing.T) {
		err := validate.Struct(draftRequest{
			Name:        "Soup",
			Color:       "#E26C2D",
			Ingredients: []lineRequest{{IngredientID: 1, Amount: 1}},
		})
		assert.NoError(t, err)
	})

	t.Run("nested_failure", func(t *testing.T) {
		err := validate.Struct(draftRequest{
			Name:        "Soup",
			Ingredients: []lineRequest{{IngredientID: 1, Amount: 1}, {IngredientID: 2, Amount: 0}},
		})

		ae := apperr.As(err)
		require.NotNil(t, ae)
		require.Len(t, ae.Details, 1)
		assert.Equal(t, "ingredients[1].amount", ae.Details[0].Field)
		assert.Equal(t, "Must be at least 1", ae.Details[0].Message)
	})

	t.Run("upper_bound", func(t *testing.T) {
		err := validate.Struct(draftRequest{
			Name:        "Soup",
			Ingredients: []lineRequest{{IngredientID: 1, Amount: 3_000_000_000}},
		})

		ae := apperr.As(err)
		require.NotNil(t, ae)
		require.Len(t, ae.Details, 1)
		assert.Equal(t, "ingredients[0].amount", ae.Details[0].Field)
		assert.Equal(t, "Must be at most 32000", ae.Details[0].Message)
	})

	t.Run("multiple_failures", func(t *testing.T) {
		err := validate.Struct(draftRequest{Color: "red"})

		ae := apperr.As(err)
		require.NotNil(t, ae)

		fields := make([]string, 0, len(ae.Details))
		for _, detail := range ae.Details {
			fields = append(fields, detail.Field)
		}
		assert.ElementsMatch(t, []string{"name", "color", "ingredients"}, fields)
	})
}
