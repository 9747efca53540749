// Copyright (c) 2026 Folio. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package textseg decomposes raw chapter text into paragraphs and sentences.

Every function here is pure and safe for concurrent use. The rules are
deliberately simple and deterministic:

  - Normalization trims the input and folds every run of line breaks into a
    single "\n". A blank line and a single break become indistinguishable.
  - Paragraphs are the non-empty lines of normalized text.
  - Sentences end at '.', '!' or '?' when followed by whitespace and an ASCII
    uppercase letter. Abbreviations are not special-cased, so "Dr. Smith"
    yields "Dr." and "Smith".

Usage:

	for _, paragraph := range textseg.Paragraphs(textseg.Normalize(raw)) {
	    sentences := textseg.Sentences(paragraph)
	    ...
	}
*/
package textseg

import (
	"regexp"
	"strings"
)

const (
	// ParagraphSeparator joins paragraphs in [CombineParagraphs].
	ParagraphSeparator = "\n"
	// SentenceSeparator joins sentences in [CombineSentences].
	SentenceSeparator = " "
)

var (
	// lineBreakRun matches any run of CRLF, CR or LF sequences.
	lineBreakRun = regexp.MustCompile(`(?:\r\n|\r|\n)+`)
	// newlineRun matches one or more consecutive LF characters.
	newlineRun = regexp.MustCompile(`\n+`)
	// whitespaceRun matches any run of whitespace, newlines included.
	whitespaceRun = regexp.MustCompile(`\s+`)
	// sentenceBoundary matches terminal punctuation, the whitespace after it,
	// and the uppercase letter that opens the next sentence.
	sentenceBoundary = regexp.MustCompile(`[.!?]\s+[A-Z]`)
)

// # Normalization

// Normalize trims the text and collapses every run of line breaks into "\n".
func Normalize(text string) string {
	trimmed := strings.TrimSpace(text)
	return lineBreakRun.ReplaceAllString(trimmed, "\n")
}

// CollapseWhitespace folds every whitespace run into a single space and trims
// both ends.
func CollapseWhitespace(text string) string {
	return strings.TrimSpace(whitespaceRun.ReplaceAllString(text, " "))
}

// # Segmentation

// Paragraphs splits normalized text into its ordered, non-empty paragraphs.
//
// Blank input yields an empty, non-nil slice.
func Paragraphs(text string) []string {
	paragraphs := []string{}
	for _, fragment := range newlineRun.Split(text, -1) {
		if strings.TrimSpace(fragment) == "" {
			continue
		}
		paragraphs = append(paragraphs, fragment)
	}
	return paragraphs
}

// Sentences splits a paragraph into its ordered, non-empty sentences.
//
// The split happens right after the terminal punctuation and the whitespace
// between sentences is dropped. Blank input yields an empty, non-nil slice.
func Sentences(text string) []string {
	collapsed := CollapseWhitespace(text)
	sentences := []string{}
	if collapsed == "" {
		return sentences
	}

	start := 0
	for _, match := range sentenceBoundary.FindAllStringIndex(collapsed, -1) {
		// match[0] is the punctuation, match[1]-1 is the uppercase letter.
		end := match[0] + 1
		sentences = appendFragment(sentences, collapsed[start:end])
		start = match[1] - 1
	}
	return appendFragment(sentences, collapsed[start:])
}

func appendFragment(fragments []string, fragment string) []string {
	if fragment = strings.TrimSpace(fragment); fragment != "" {
		fragments = append(fragments, fragment)
	}
	return fragments
}

// # Recombination

// CombineParagraphs joins paragraphs with [ParagraphSeparator].
func CombineParagraphs(paragraphs []string) string {
	return strings.Join(paragraphs, ParagraphSeparator)
}

// CombineSentences joins sentences with [SentenceSeparator].
func CombineSentences(sentences []string) string {
	return strings.Join(sentences, SentenceSeparator)
}
