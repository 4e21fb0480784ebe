// Copyright (c) 2026 Foodgram. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package uuidv7_test

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/foodgram/pkg/uuidv7"
)

func TestNew(t *testing.T) {
	first, second := uuidv7.New(), uuidv7.New()

	parsed, err := uuid.Parse(first)
	require.NoError(t, err)
	assert.Equal(t, uuid.Version(7), parsed.Version())
	assert.NotEqual(t, first, second)
	assert.LessOrEqual(t, first[:8], second[:8], "ids are time ordered")
}

func TestValid(t *testing.T) {
	assert.True(t, uuidv7.Valid(uuidv7.New()))
	assert.False(t, uuidv7.Valid("not-a-uuid"))
	assert.False(t, uuidv7.Valid(""))
}
