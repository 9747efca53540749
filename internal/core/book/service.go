// Copyright (c) 2026 Folio. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package book

import (
	"context"
	"log/slog"

	"github.com/taibuivan/folio/internal/core/content"
	"github.com/taibuivan/folio/internal/platform/apperr"
	"github.com/taibuivan/folio/internal/platform/validate"
	"github.com/taibuivan/folio/pkg/slug"
	"github.com/taibuivan/folio/pkg/uuidv7"
)

const (
	maxTitleLength = 500
	maxSlugLength  = 500
)

// # Service Layer

// Service orchestrates the business logic for books.
type Service struct {
	repo        Repository
	invalidator content.TreeInvalidator
	logger      *slog.Logger
}

// NewService constructs a new [Service]. The invalidator drops cached chapter
// trees when a book delete cascades to its chapters.
func NewService(repo Repository, invalidator content.TreeInvalidator, logger *slog.Logger) *Service {
	return &Service{
		repo:        repo,
		invalidator: invalidator,
		logger:      logger,
	}
}

// ListBooks returns a page of books matching the filter.
func (service *Service) ListBooks(ctx context.Context, filter Filter, limit, offset int) ([]*Book, int, error) {
	return service.repo.List(ctx, filter, limit, offset)
}

/*
GetBook retrieves a book by UUID or slug.

Description: UUID-shaped identifiers are looked up by id. Anything else is
treated as a slug.
*/
func (service *Service) GetBook(ctx context.Context, identifier string) (*Book, error) {
	if isUUID(identifier) {
		return service.repo.FindByID(ctx, identifier)
	}
	return service.repo.FindBySlug(ctx, identifier)
}

/*
CreateBook validates and persists a new book.

Description: The id is a fresh UUIDv7. When no slug is provided one is derived
from the title.

Returns:
  - error: VALIDATION_ERROR, or CONFLICT when the slug is taken
*/
func (service *Service) CreateBook(ctx context.Context, book *Book) error {
	if book.Slug == "" {
		book.Slug = slug.From(book.Title)
	}

	validator := &validate.Validator{}
	validator.Required(FieldTitle, book.Title).MaxLen(FieldTitle, book.Title, maxTitleLength)
	validator.Required(FieldSlug, book.Slug).MaxLen(FieldSlug, book.Slug, maxSlugLength)
	if book.Slug != "" {
		validator.Slug(FieldSlug, book.Slug)
	}
	if book.AuthorID != nil {
		validator.UUID(FieldAuthorID, *book.AuthorID)
	}
	if book.PublisherID != nil {
		validator.UUID(FieldPublisherID, *book.PublisherID)
	}
	if err := validator.Err(); err != nil {
		return err
	}

	book.ID = uuidv7.New()

	if err := service.repo.Create(ctx, book); err != nil {
		if apperr.HasCode(err, apperr.CodeConflict) {
			return apperr.Conflict("A book with this slug already exists")
		}
		return err
	}

	service.logger.Info("book_created",
		slog.String("book_id", book.ID),
		slog.String("slug", book.Slug),
	)
	return nil
}

/*
DeleteBook removes a book and every chapter it owns.

Description: Cached trees of the removed chapters are dropped afterwards.
Cache failures are logged and do not fail the delete.
*/
func (service *Service) DeleteBook(ctx context.Context, id string) error {
	chapterIDs, err := service.repo.Delete(ctx, id)
	if err != nil {
		return err
	}

	for _, chapterID := range chapterIDs {
		if err := service.invalidator.InvalidateTree(ctx, chapterID); err != nil {
			service.logger.Warn("chapter_tree_invalidate_failed",
				slog.String("chapter_id", chapterID),
				slog.Any("error", err),
			)
		}
	}

	service.logger.Warn("book_deleted",
		slog.String("book_id", id),
		slog.Int("chapters", len(chapterIDs)),
	)
	return nil
}

// isUUID reports whether the identifier has the canonical UUID length.
func isUUID(s string) bool {
	return len(s) == 36
}
