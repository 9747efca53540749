// Copyright (c) 2026 Folio. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package slug generates ASCII URL slugs from arbitrary Unicode strings.
//
// Book slugs are derived from titles (e.g., "Les Misérables" becomes
// "les-miserables") and serve as the human-readable alternative to a book's
// UUID in URLs.
package slug

import (
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

var (
	// nonAlphanumeric matches any run of characters that cannot appear in a slug.
	nonAlphanumeric = regexp.MustCompile(`[^a-z0-9]+`)
)

// From converts an arbitrary Unicode string into a URL-safe ASCII slug.
//
// # Transformation Pipeline
//
// 1. Normalizes to NFD and drops combining marks (é becomes e).
// 2. Converts to lowercase.
// 3. Replaces every run of non-alphanumeric characters with one hyphen.
// 4. Trims leading and trailing hyphens.
//
// Scripts without an ASCII decomposition yield an empty slug.
func From(s string) string {
	stripAccents := transform.Chain(norm.NFD, transform.RemoveFunc(isMn), norm.NFC)
	result, _, err := transform.String(stripAccents, s)
	if err != nil {
		result = s
	}

	result = nonAlphanumeric.ReplaceAllString(strings.ToLower(result), "-")
	return strings.Trim(result, "-")
}

// isMn reports whether r is a Unicode non-spacing mark (e.g., accents).
func isMn(r rune) bool {
	return unicode.Is(unicode.Mn, r)
}
