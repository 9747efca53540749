// Copyright (c) 2026 Folio. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package publisher manages the organizations that publish books.

A publisher's id is derived from the canonical DN "cn=<name>". The name is
hashed verbatim, so "Penguin" and "penguin" are different publishers while a
second "Penguin" collides with the first.
*/
package publisher

import "time"

// # Core Entities

// Publisher represents an organization that publishes books.
type Publisher struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	DN        string    `json:"dn"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Filter holds the parameters for a paginated publisher search.
type Filter struct {
	Query string
}

// Global field names for validation
const (
	FieldName = "name"
)
