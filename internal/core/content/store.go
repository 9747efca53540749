// Copyright (c) 2026 Folio. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package content

import "context"

// # Persistence Contracts

// Transactor scopes a unit of work. Repositories called with the ctx handed to
// fn take part in the same transaction; an error from fn rolls it back.
type Transactor interface {
	WithinTx(ctx context.Context, fn func(ctx context.Context) error) error

	// WithinReadTx runs fn against one consistent snapshot. Reads issued
	// through its ctx never observe a rebuild that commits midway.
	WithinReadTx(ctx context.Context, fn func(ctx context.Context) error) error
}

// ParagraphRepository defines the data access contract for paragraphs.
type ParagraphRepository interface {

	/*
		LockChapter takes a write lock on the chapter row for the rest of the
		transaction so that concurrent rebuilds of one chapter serialize.

		Returns:
		  - error: apperr.NotFound if the chapter does not exist
	*/
	LockChapter(ctx context.Context, chapterID string) error

	/*
		LockParagraph takes a write lock on the paragraph row.

		Returns:
		  - error: apperr.NotFound if the paragraph does not exist
	*/
	LockParagraph(ctx context.Context, paragraphID string) error

	// DeleteByChapter removes every paragraph of a chapter (sentences cascade).
	DeleteByChapter(ctx context.Context, chapterID string) error

	// Create persists one paragraph.
	Create(ctx context.Context, paragraph *Paragraph) error

	// UpdateContent overwrites the raw content of a paragraph in place.
	UpdateContent(ctx context.Context, paragraphID, content string) error

	// FindByID returns a paragraph without its sentences.
	FindByID(ctx context.Context, paragraphID string) (*Paragraph, error)

	// ListByChapter returns a chapter's paragraphs ordered by number.
	ListByChapter(ctx context.Context, chapterID string) ([]*Paragraph, error)
}

// SentenceRepository defines the data access contract for sentences.
type SentenceRepository interface {

	// DeleteByParagraph removes every sentence of a paragraph.
	DeleteByParagraph(ctx context.Context, paragraphID string) error

	// Create persists one sentence.
	Create(ctx context.Context, sentence *Sentence) error

	// ListByParagraph returns a paragraph's sentences ordered by number.
	ListByParagraph(ctx context.Context, paragraphID string) ([]*Sentence, error)

	// ListByChapter returns every sentence under a chapter ordered by
	// paragraph number, then sentence number.
	ListByChapter(ctx context.Context, chapterID string) ([]*Sentence, error)
}

// TreeInvalidator drops any cached rendering of a chapter's content tree.
type TreeInvalidator interface {
	InvalidateTree(ctx context.Context, chapterID string) error
}
