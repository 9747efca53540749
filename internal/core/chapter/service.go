// Copyright (c) 2026 Folio. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package chapter

import (
	"context"
	"log/slog"

	"github.com/taibuivan/folio/internal/core/content"
	"github.com/taibuivan/folio/internal/platform/validate"
	"github.com/taibuivan/folio/pkg/identity"
	"github.com/taibuivan/folio/pkg/ordinal"
	"github.com/taibuivan/folio/pkg/pointer"
)

const (
	maxTitleLength   = 500
	maxContentLength = 2_000_000
)

// Rebuilder regenerates a chapter's paragraphs on a transactional ctx.
type Rebuilder interface {
	RebuildChapter(ctx context.Context, chapterID, raw string) ([]*content.Paragraph, error)
}

// TreeLoader reads a chapter's paragraphs with their sentences.
type TreeLoader interface {
	Tree(ctx context.Context, chapterID string) ([]*content.Paragraph, error)
}

// # Service Layer

// Service orchestrates the business logic for chapters.
type Service struct {
	transactor content.Transactor
	chapters   ChapterRepository
	rebuilder  Rebuilder
	trees      TreeLoader
	cache      TreeCache
	logger     *slog.Logger
}

// NewService constructs a new [Service]. cache may be nil to disable tree caching.
func NewService(transactor content.Transactor, chapters ChapterRepository, rebuilder Rebuilder, trees TreeLoader, cache TreeCache, logger *slog.Logger) *Service {
	return &Service{
		transactor: transactor,
		chapters:   chapters,
		rebuilder:  rebuilder,
		trees:      trees,
		cache:      cache,
		logger:     logger,
	}
}

// # Chapter Reads

// ListChapters returns a page of a book's chapters and the total count.
func (service *Service) ListChapters(ctx context.Context, bookID string, limit, offset int) ([]*Chapter, int, error) {
	return service.chapters.ListByBook(ctx, bookID, limit, offset)
}

// GetChapter returns a chapter's metadata and raw content.
func (service *Service) GetChapter(ctx context.Context, id string) (*Chapter, error) {
	return service.chapters.FindByID(ctx, id)
}

/*
GetChapterTree returns a chapter with its paragraphs and their sentences.

Trees are served from the cache when present. On a miss the chapter row and
its tree are read from one snapshot, then cached only if the chapter was not
invalidated since the miss. A cache failure degrades to a storage read and is
only logged; a failed cache read also skips the fill.
*/
func (service *Service) GetChapterTree(ctx context.Context, id string) (*Chapter, error) {
	generation, fill := int64(0), false
	if service.cache != nil {
		cached, observed, err := service.cache.Get(ctx, id)
		switch {
		case err != nil:
			service.logger.WarnContext(ctx, "chapter_tree_cache_read_failed",
				slog.String("chapter_id", id),
				slog.Any("error", err),
			)
		case cached != nil:
			return cached, nil
		default:
			generation, fill = observed, true
		}
	}

	var chapter *Chapter
	err := service.transactor.WithinReadTx(ctx, func(ctx context.Context) error {
		found, err := service.chapters.FindByID(ctx, id)
		if err != nil {
			return err
		}

		paragraphs, err := service.trees.Tree(ctx, id)
		if err != nil {
			return err
		}

		found.Paragraphs = paragraphs
		chapter = found
		return nil
	})
	if err != nil {
		return nil, err
	}

	if fill {
		if err := service.cache.Set(ctx, chapter, generation); err != nil {
			service.logger.WarnContext(ctx, "chapter_tree_cache_write_failed",
				slog.String("chapter_id", id),
				slog.Any("error", err),
			)
		}
	}

	return chapter, nil
}

// # Chapter Writes

/*
CreateChapter creates a chapter and builds its paragraph tree.

The chapter number is resolved against the book's current maximum while the
book row is locked. The id is derived from the chapter's DN. The insert and
the tree rebuild commit together.

Returns:
  - *Chapter: The created chapter with its paragraphs
  - error: VALIDATION_ERROR, NOT_FOUND (book), CONFLICT (id collision),
    ORDINAL_CONFLICT or PARTIAL_CASCADE_FAILURE
*/
func (service *Service) CreateChapter(ctx context.Context, input CreateInput) (*Chapter, error) {
	validator := &validate.Validator{}
	validator.UUID(FieldBookID, input.BookID)
	validator.Required(FieldTitle, input.Title).MaxLen(FieldTitle, input.Title, maxTitleLength)
	validator.Text(FieldContent, input.Content, maxContentLength)
	if err := validator.Err(); err != nil {
		return nil, err
	}

	chapter := &Chapter{BookID: input.BookID, Title: input.Title, Content: input.Content}

	err := service.transactor.WithinTx(ctx, func(ctx context.Context) error {
		if err := service.chapters.LockBook(ctx, input.BookID); err != nil {
			return err
		}

		number, err := ordinal.Resolve(ctx, input.Number, func(ctx context.Context) (*int, error) {
			return service.chapters.FindMaxNumber(ctx, input.BookID)
		})
		if err != nil {
			return err
		}

		chapter.Number = number
		chapter.ID = identity.ChapterID(chapter.Title, chapter.BookID, chapter.Number).String()

		if err := service.chapters.Create(ctx, chapter); err != nil {
			return err
		}

		chapter.Paragraphs, err = service.rebuilder.RebuildChapter(ctx, chapter.ID, chapter.Content)
		return err
	})
	if err != nil {
		return nil, content.Classify(err)
	}

	service.logger.InfoContext(ctx, "chapter_created",
		slog.String("chapter_id", chapter.ID),
		slog.String("book_id", chapter.BookID),
		slog.Int("number", chapter.Number),
		slog.Int("paragraphs", len(chapter.Paragraphs)),
	)

	return chapter, nil
}

/*
UpdateChapter changes a chapter in place.

The id is never re-derived, even when the title or number change. When
Content is set, the paragraph tree is rebuilt in the same transaction.

Returns:
  - *Chapter: The updated chapter, carrying paragraphs only if rebuilt
  - error: VALIDATION_ERROR, NOT_FOUND, ORDINAL_CONFLICT or PARTIAL_CASCADE_FAILURE
*/
func (service *Service) UpdateChapter(ctx context.Context, id string, input UpdateInput) (*Chapter, error) {
	validator := &validate.Validator{}
	if input.Title != nil {
		validator.Required(FieldTitle, *input.Title).MaxLen(FieldTitle, *input.Title, maxTitleLength)
	}
	if input.Number != nil {
		validator.AtLeast(FieldChapterNumber, *input.Number, ordinal.First)
	}
	if input.Content != nil {
		validator.Text(FieldContent, *input.Content, maxContentLength)
	}
	if err := validator.Err(); err != nil {
		return nil, err
	}

	var chapter *Chapter
	err := service.transactor.WithinTx(ctx, func(ctx context.Context) error {
		var err error
		chapter, err = service.chapters.FindByIDForUpdate(ctx, id)
		if err != nil {
			return err
		}

		chapter.Title = pointer.Or(input.Title, chapter.Title)
		chapter.Number = pointer.Or(input.Number, chapter.Number)
		chapter.Content = pointer.Or(input.Content, chapter.Content)

		if err := service.chapters.Update(ctx, chapter); err != nil {
			return err
		}

		if input.Content == nil {
			return nil
		}

		chapter.Paragraphs, err = service.rebuilder.RebuildChapter(ctx, chapter.ID, chapter.Content)
		return err
	})
	if err != nil {
		return nil, content.Classify(err)
	}

	service.invalidate(ctx, id)

	service.logger.InfoContext(ctx, "chapter_updated",
		slog.String("chapter_id", chapter.ID),
		slog.Bool("resynced", input.Content != nil),
		slog.Int("paragraphs", len(chapter.Paragraphs)),
	)

	return chapter, nil
}

// DeleteChapter removes a chapter and, through the cascade, its tree.
func (service *Service) DeleteChapter(ctx context.Context, id string) error {
	if err := service.chapters.Delete(ctx, id); err != nil {
		return err
	}

	service.invalidate(ctx, id)

	service.logger.InfoContext(ctx, "chapter_deleted", slog.String("chapter_id", id))
	return nil
}

// invalidate drops the cached tree. A cache failure is logged, not returned.
func (service *Service) invalidate(ctx context.Context, id string) {
	if service.cache == nil {
		return
	}
	if err := service.cache.InvalidateTree(ctx, id); err != nil {
		service.logger.WarnContext(ctx, "chapter_tree_invalidation_failed",
			slog.String("chapter_id", id),
			slog.Any("error", err),
		)
	}
}
