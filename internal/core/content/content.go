// Copyright (c) 2026 Folio. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package content manages the derived decomposition of chapter text.

A chapter's raw content is the source of truth. Its [Paragraph] rows, and the
[Sentence] rows under each paragraph, are derived data: they are never patched
incrementally but wiped and rebuilt by the [Synchronizer] whenever the parent
content is set.

# Identity

Paragraphs and sentences receive opaque, random ids on every rebuild. Two
resyncs of identical content therefore produce different ids, which consumers
may treat as a revision signal.
*/
package content

import "time"

// # Derived Entities

// Paragraph is one line of normalized chapter content.
type Paragraph struct {
	ID        string      `json:"id"`
	ChapterID string      `json:"chapter_id"`
	Number    int         `json:"paragraph_number"`
	Content   string      `json:"content"`
	Sentences []*Sentence `json:"sentences,omitempty"`
	CreatedAt time.Time   `json:"created_at"`
}

// Sentence is one sentence of a [Paragraph].
type Sentence struct {
	ID          string    `json:"id"`
	ParagraphID string    `json:"paragraph_id"`
	Number      int       `json:"sentence_number"`
	Content     string    `json:"content"`
	CreatedAt   time.Time `json:"created_at"`
}

// Global field names for validation
const (
	FieldContent = "content"
)
