// Copyright (c) 2026 Folio. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package chapter

import "context"

// # Chapter Data Access

// ChapterRepository defines the data access contract for chapters.
type ChapterRepository interface {

	/*
		ListByBook returns a page of a book's chapters, ordered by chapter number.

		Parameters:
		  - ctx: context.Context
		  - bookID: string (Owner ID)
		  - limit: int
		  - offset: int

		Returns:
		  - []*Chapter: Chapters without their paragraph tree
		  - int: Total chapters in the book
		  - error: Storage failures
	*/
	ListByBook(ctx context.Context, bookID string, limit, offset int) ([]*Chapter, int, error)

	/*
		FindByID returns the chapter with the given ID.

		Returns:
		  - *Chapter: Chapter metadata and raw content
		  - error: apperr.NotFound if missing
	*/
	FindByID(ctx context.Context, id string) (*Chapter, error)

	/*
		FindByIDForUpdate is [ChapterRepository.FindByID] holding a row lock
		until the surrounding transaction ends.
	*/
	FindByIDForUpdate(ctx context.Context, id string) (*Chapter, error)

	/*
		FindMaxNumber returns the highest chapter number in a book.

		Returns:
		  - *int: nil when the book has no chapters
		  - error: Storage failures
	*/
	FindMaxNumber(ctx context.Context, bookID string) (*int, error)

	/*
		LockBook takes a row lock on the owning book so that concurrent
		chapter creations in one book serialize their ordinal assignment.

		Returns:
		  - error: apperr.NotFound if the book does not exist
	*/
	LockBook(ctx context.Context, bookID string) error

	/*
		Create persists a new chapter.

		Returns:
		  - error: CONFLICT on an id collision, ORDINAL_CONFLICT on a taken number
	*/
	Create(ctx context.Context, chapter *Chapter) error

	// Update persists title, number and content of an existing chapter.
	Update(ctx context.Context, chapter *Chapter) error

	// Delete removes a chapter; its paragraphs and sentences cascade.
	Delete(ctx context.Context, id string) error
}

/*
TreeCache stores rendered chapter trees.

Every invalidation advances a per-chapter generation. A reader records the
generation on its miss and hands it back to Set, which stores the tree only
if no invalidation happened in between. A tree read before an edit committed
therefore never outlives that edit's invalidation.
*/
type TreeCache interface {

	// Get returns the cached tree (nil on a miss) and the current generation.
	Get(ctx context.Context, chapterID string) (*Chapter, int64, error)

	// Set caches a chapter with its paragraphs unless the chapter was
	// invalidated after generation was observed.
	Set(ctx context.Context, tree *Chapter, generation int64) error

	// InvalidateTree drops the cached tree and advances the generation.
	InvalidateTree(ctx context.Context, chapterID string) error
}
