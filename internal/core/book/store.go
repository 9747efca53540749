// Copyright (c) 2026 Folio. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package book

import "context"

// # Book Data Access

// Repository defines the data access contract for books.
type Repository interface {

	/*
		List returns a page of books matching the filter, newest first.

		Returns:
		  - []*Book: Matching books
		  - int: Total matching books
		  - error: Storage failures
	*/
	List(ctx context.Context, filter Filter, limit, offset int) ([]*Book, int, error)

	// FindByID returns a book or apperr.NotFound.
	FindByID(ctx context.Context, id string) (*Book, error)

	// FindBySlug returns a book or apperr.NotFound.
	FindBySlug(ctx context.Context, slug string) (*Book, error)

	/*
		Create persists a new book.

		Returns:
		  - error: CONFLICT when the slug is taken, VALIDATION_ERROR when the
		    referenced author or publisher does not exist
	*/
	Create(ctx context.Context, book *Book) error

	/*
		Delete removes a book together with its chapters.

		Returns:
		  - []string: IDs of the chapters removed by the cascade
		  - error: apperr.NotFound if the book is missing
	*/
	Delete(ctx context.Context, id string) ([]string, error)
}
