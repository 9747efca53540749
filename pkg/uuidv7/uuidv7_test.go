// Copyright (c) 2026 Folio. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package uuidv7_test

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/folio/pkg/uuidv7"
)

func TestNew(t *testing.T) {
	first := uuidv7.New()
	second := uuidv7.New()

	parsed, err := uuid.Parse(first)
	require.NoError(t, err)
	assert.Equal(t, uuid.Version(7), parsed.Version())

	assert.NotEqual(t, first, second)
	assert.LessOrEqual(t, first, second)
}
