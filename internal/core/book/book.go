// Copyright (c) 2026 Folio. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package book defines the top-level literary work that owns chapters.

Books carry an opaque, time-ordered UUIDv7 and a URL slug derived from the
title. Unlike authors, publishers and chapters, a book's identity is not
derived from its content, so two books may share a title as long as their
slugs differ.
*/
package book

import "time"

// # Core Entities

// Book is a literary work made of ordered chapters.
type Book struct {
	ID          string    `json:"id"` // UUIDv7
	Title       string    `json:"title"`
	Slug        string    `json:"slug"`
	AuthorID    *string   `json:"author_id,omitempty"`
	PublisherID *string   `json:"publisher_id,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// # Filter Criteria

// Filter holds parameters for searching the book list.
type Filter struct {
	Query       string // Case-insensitive title match
	AuthorID    string
	PublisherID string
}

// Global field names for validation
const (
	FieldTitle       = "title"
	FieldSlug        = "slug"
	FieldAuthorID    = "author_id"
	FieldPublisherID = "publisher_id"
)
