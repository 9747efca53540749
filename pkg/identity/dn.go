// Copyright (c) 2026 Folio. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package identity

import (
	"fmt"

	"github.com/google/uuid"
)

// # Canonical Distinguished Names

// AuthorDN builds the canonical string identifying an author.
func AuthorDN(lastName, firstName string) string {
	return fmt.Sprintf("sn=%s,givenName=%s", lastName, firstName)
}

// PublisherDN builds the canonical string identifying a publisher.
func PublisherDN(name string) string {
	return "cn=" + name
}

// ChapterDN builds the canonical string identifying a chapter within a book.
func ChapterDN(title, bookID string, chapterNumber int) string {
	return fmt.Sprintf("cn=%s,o=%s,ou=%d", title, bookID, chapterNumber)
}

// AuthorID derives an author's deterministic id.
func AuthorID(lastName, firstName string) uuid.UUID {
	return Deterministic(AuthorDN(lastName, firstName))
}

// PublisherID derives a publisher's deterministic id.
func PublisherID(name string) uuid.UUID {
	return Deterministic(PublisherDN(name))
}

// ChapterID derives a chapter's deterministic id.
func ChapterID(title, bookID string, chapterNumber int) uuid.UUID {
	return Deterministic(ChapterDN(title, bookID, chapterNumber))
}
