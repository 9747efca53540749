// Copyright (c) 2026 Folio. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package ordinal resolves 1-based sequence numbers for ordered children
(chapters in a book, paragraphs in a chapter, sentences in a paragraph).

An explicit, positive ordinal is caller intent and is returned untouched. No
collision check happens here; the store's unique constraint reports clashes.
Anything else (absent, non-numeric, zero, negative) falls back to the next
free slot after the current maximum.
*/
package ordinal

import (
	"context"
	"strconv"
	"strings"
)

// First is the ordinal of the first child in any container.
const First = 1

// MaxFinder reports the highest ordinal currently used in a container, or nil
// when the container has no children.
type MaxFinder func(ctx context.Context) (*int, error)

// Parse reports whether raw is a positive integer ordinal.
func Parse(raw string) (int, bool) {
	value, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil || value < First {
		return 0, false
	}
	return value, true
}

// Next returns max(existing)+1, or [First] when existing is empty.
func Next(existing ...int) int {
	highest := 0
	for _, value := range existing {
		if value > highest {
			highest = value
		}
	}
	return highest + 1
}

// Resolve returns the explicit ordinal in raw when it is valid, otherwise the
// next ordinal after the maximum reported by find.
func Resolve(ctx context.Context, raw string, find MaxFinder) (int, error) {
	if value, ok := Parse(raw); ok {
		return value, nil
	}

	highest, err := find(ctx)
	if err != nil {
		return 0, err
	}
	if highest == nil {
		return First, nil
	}
	return Next(*highest), nil
}
