// Copyright (c) 2026 Folio. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package chapter manages the chapters of a book and keeps their derived
paragraph and sentence tree in step with the raw chapter text.

# Core Responsibility

  - Identity: A chapter id is derived once, at creation, from its canonical
    DN (title, owning book, chapter number). Later edits update the record in
    place and never re-derive it.
  - Ordering: Chapter numbers are 1-based and unique within a book. An
    omitted or unusable number is assigned after the current maximum.
  - Synchronization: Every change to the content rebuilds the paragraph tree
    in the same transaction as the chapter write.
*/
package chapter

import (
	"time"

	"github.com/taibuivan/folio/internal/core/content"
)

const (
	FieldBookID        = "book_id"
	FieldTitle         = "title"
	FieldChapterNumber = "chapter_number"
	FieldContent       = "content"
)

// # Chapter Aggregate

// Chapter is one ordered unit of a book's text.
type Chapter struct {
	ID        string    `json:"id"`
	BookID    string    `json:"book_id"`
	Number    int       `json:"chapter_number"`
	Title     string    `json:"title"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// Paragraphs is populated by create, update and tree reads only.
	Paragraphs []*content.Paragraph `json:"paragraphs,omitempty"`
}

// # Inputs

// CreateInput carries the fields accepted when creating a chapter.
type CreateInput struct {
	BookID string
	Title  string
	// Number is the raw requested ordinal. Empty, non-numeric or
	// non-positive values fall back to the next free number.
	Number  string
	Content string
}

// UpdateInput carries the fields of a partial chapter update. Nil fields are
// left unchanged; a nil Content skips the paragraph rebuild.
type UpdateInput struct {
	Title   *string
	Number  *int
	Content *string
}
