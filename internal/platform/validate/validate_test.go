// Copyright (c) 2026 Folio. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package validate_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/folio/internal/platform/apperr"
	"github.com/taibuivan/folio/internal/platform/validate"
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
		{"valid_string", "Les Misérables", false},
		{"empty_string", "", true},
		{"whitespace_only", " \t\n ", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := &validate.Validator{}
			v.Required("title", tt.value)

			if !tt.hasError {
				assert.Nil(t, v.Err())
				return
			}

			ae := apperr.As(v.Err())
			require.NotNil(t, ae)
			assert.Equal(t, apperr.CodeValidation, ae.Code)
			assert.Equal(t, "title", ae.Details[0].Field)
		})
	}
}

/*
TestValidator_MaxLen counts characters, not bytes.
*/
func TestValidator_MaxLen(t *testing.T) {
	assert.NoError(t, (&validate.Validator{}).MaxLen("title", "ééééé", 5).Err())
	assert.Error(t, (&validate.Validator{}).MaxLen("title", strings.Repeat("é", 6), 5).Err())
}

func TestValidator_Formats(t *testing.T) {
	tests := []struct {
		name    string
		check   func(v *validate.Validator) *validate.Validator
		isValid bool
	}{
		{"slug_ok", func(v *validate.Validator) *validate.Validator { return v.Slug("slug", "war-and-peace") }, true},
		{"slug_upper", func(v *validate.Validator) *validate.Validator { return v.Slug("slug", "War-and-Peace") }, false},
		{"slug_trailing_hyphen", func(v *validate.Validator) *validate.Validator { return v.Slug("slug", "war-") }, false},
		{"uuid_v5", func(v *validate.Validator) *validate.Validator {
			return v.UUID("id", "522e2d60-c5e5-5c1a-b576-e3e177cfdec0")
		}, true},
		{"uuid_upper", func(v *validate.Validator) *validate.Validator {
			return v.UUID("id", "522E2D60-C5E5-5C1A-B576-E3E177CFDEC0")
		}, true},
		{"uuid_garbage", func(v *validate.Validator) *validate.Validator { return v.UUID("id", "chapter-1") }, false},
		{"text_ok", func(v *validate.Validator) *validate.Validator { return v.Text("content", "Il était une fois.", 100) }, true},
		{"text_invalid_utf8", func(v *validate.Validator) *validate.Validator { return v.Text("content", "bad \xff byte", 100) }, false},
		{"text_nul", func(v *validate.Validator) *validate.Validator { return v.Text("content", "a\x00b", 100) }, false},
		{"text_too_long", func(v *validate.Validator) *validate.Validator { return v.Text("content", "abcdef", 5) }, false},
		{"at_least_ok", func(v *validate.Validator) *validate.Validator { return v.AtLeast("chapter_number", 1, 1) }, true},
		{"at_least_zero", func(v *validate.Validator) *validate.Validator { return v.AtLeast("chapter_number", 0, 1) }, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.isValid, tt.check(&validate.Validator{}).Err() == nil)
		})
	}
}

/*
TestValidator_Chain_Failure tests error accumulation in the chain.
*/
func TestValidator_Chain_Failure(t *testing.T) {
	err := (&validate.Validator{}).
		Required("title", "").
		MaxLen("content", strings.Repeat("x", 11), 10).
		Custom("chapter_number", true, "Must be at least 1").
		Err()

	ae := apperr.As(err)
	require.NotNil(t, ae)
	assert.Len(t, ae.Details, 3)
	assert.Equal(t, "chapter_number", ae.Details[2].Field)
}
