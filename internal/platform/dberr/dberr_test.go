// Copyright (c) 2026 Folio. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package dberr_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/folio/internal/platform/apperr"
	"github.com/taibuivan/folio/internal/platform/database/schema"
	"github.com/taibuivan/folio/internal/platform/dberr"
)

/*
TestWrap classifies driver errors into application errors.
*/
func TestWrap(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		wantCode string
	}{
		{"no_rows", pgx.ErrNoRows, apperr.CodeNotFound},
		{"wrapped_no_rows", fmt.Errorf("scan: %w", pgx.ErrNoRows), apperr.CodeNotFound},
		{
			name:     "chapter_number_clash",
			err:      &pgconn.PgError{Code: pgerrcode.UniqueViolation, ConstraintName: schema.CoreChapter.NumberConstraint},
			wantCode: apperr.CodeOrdinalConflict,
		},
		{
			name:     "primary_key_clash",
			err:      &pgconn.PgError{Code: pgerrcode.UniqueViolation, ConstraintName: "author_pkey"},
			wantCode: apperr.CodeConflict,
		},
		{
			name:     "missing_author",
			err:      &pgconn.PgError{Code: pgerrcode.ForeignKeyViolation, ConstraintName: "book_authorid_fkey"},
			wantCode: apperr.CodeValidation,
		},
		{"unknown", errors.New("connection reset"), apperr.CodeInternal},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			wrapped := dberr.Wrap(tt.err, "test_action")
			ae := apperr.As(wrapped)
			require.NotNil(t, ae)
			assert.Equal(t, tt.wantCode, ae.Code)
		})
	}
}

/*
TestWrap_PassThrough keeps nil and already classified errors unchanged.
*/
func TestWrap_PassThrough(t *testing.T) {
	assert.NoError(t, dberr.Wrap(nil, "noop"))

	notFound := apperr.NotFound("Chapter")
	assert.Same(t, notFound, dberr.Wrap(notFound, "noop"))
}
