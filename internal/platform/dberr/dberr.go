// Copyright (c) 2026 Folio. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package dberr provides a bridge between low-level database errors and
// higher-level application errors.
package dberr

import (
	"errors"
	"fmt"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/taibuivan/folio/internal/platform/apperr"
	"github.com/taibuivan/folio/internal/platform/database/schema"
)

var (
	// ErrNotFound is a standard error returned when a queried row doesn't exist.
	ErrNotFound = apperr.NotFound("Resource")
)

// ordinalConstraints maps the (container, ordinal) unique constraints to the
// resource named in the conflict message.
var ordinalConstraints = map[string]string{
	schema.CoreChapter.NumberConstraint:   "Chapter",
	schema.CoreParagraph.NumberConstraint: "Paragraph",
	schema.CoreSentence.NumberConstraint:  "Sentence",
}

// Wrap inspects a database error and wraps it into a meaningful [apperr.AppError].
// It hides internal database details from the client while classifying the error type.
func Wrap(err error, action string) error {
	if err == nil {
		return nil
	}

	// 1. Errors already classified upstream pass through
	if apperr.IsAppError(err) {
		return err
	}

	// 2. Not Found mapping
	if errors.Is(err, pgx.ErrNoRows) {
		return ErrNotFound
	}

	// 3. Unique violations become conflicts
	var pgError *pgconn.PgError
	if errors.As(err, &pgError) && pgError.Code == pgerrcode.UniqueViolation {
		if resource, ok := ordinalConstraints[pgError.ConstraintName]; ok {
			return apperr.OrdinalConflict(resource, err)
		}
		conflict := apperr.Conflict("Resource already exists")
		conflict.Cause = err
		return conflict
	}

	// 4. Dangling references are client input errors
	if errors.As(err, &pgError) && pgError.Code == pgerrcode.ForeignKeyViolation {
		invalid := apperr.ValidationError("Referenced resource does not exist")
		invalid.Cause = err
		return invalid
	}

	// 5. Unknown query errors become Internal Server Errors
	return apperr.Internal(fmt.Errorf("postgres: %s: %w", action, err))
}
