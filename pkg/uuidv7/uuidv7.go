// Copyright (c) 2026 Folio. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package uuidv7 wraps google/uuid to generate time-ordered UUIDv7 values.
//
// Books are the only catalogue entity whose id carries no meaning, so they
// get a UUIDv7. Sorting by id then sorts by creation time, and inserts stay
// clustered at the tail of the primary key index.
package uuidv7

import "github.com/google/uuid"

// New generates a new UUIDv7 string.
//
// It panics only if the OS random source is unavailable.
func New() string {
	return uuid.Must(uuid.NewV7()).String()
}
