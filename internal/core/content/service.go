// Copyright (c) 2026 Folio. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package content

import (
	"context"
	"log/slog"

	"github.com/taibuivan/folio/internal/platform/validate"
)

// maxParagraphLength bounds a single paragraph edit, in characters.
const maxParagraphLength = 100_000

// # Service Layer

// Service exposes read access to the derived tree and paragraph-level edits.
type Service struct {
	transactor   Transactor
	paragraphs   ParagraphRepository
	sentences    SentenceRepository
	synchronizer *Synchronizer
	invalidator  TreeInvalidator
	logger       *slog.Logger
}

// NewService constructs a new [Service] with its required repositories.
func NewService(transactor Transactor, paragraphs ParagraphRepository, sentences SentenceRepository, synchronizer *Synchronizer, invalidator TreeInvalidator, logger *slog.Logger) *Service {
	return &Service{
		transactor:   transactor,
		paragraphs:   paragraphs,
		sentences:    sentences,
		synchronizer: synchronizer,
		invalidator:  invalidator,
		logger:       logger,
	}
}

// # Read Operations

// ListParagraphs returns a chapter's paragraphs without sentences.
func (service *Service) ListParagraphs(ctx context.Context, chapterID string) ([]*Paragraph, error) {
	return service.paragraphs.ListByChapter(ctx, chapterID)
}

// GetParagraph returns a paragraph together with its sentences.
func (service *Service) GetParagraph(ctx context.Context, paragraphID string) (*Paragraph, error) {
	paragraph, err := service.paragraphs.FindByID(ctx, paragraphID)
	if err != nil {
		return nil, err
	}

	sentences, err := service.sentences.ListByParagraph(ctx, paragraphID)
	if err != nil {
		return nil, err
	}

	paragraph.Sentences = sentences
	return paragraph, nil
}

// ListSentences returns a paragraph's sentences, failing if the paragraph is missing.
func (service *Service) ListSentences(ctx context.Context, paragraphID string) ([]*Sentence, error) {
	if _, err := service.paragraphs.FindByID(ctx, paragraphID); err != nil {
		return nil, err
	}
	return service.sentences.ListByParagraph(ctx, paragraphID)
}

/*
Tree loads a chapter's paragraphs with their sentences attached, in order.

Both queries read the same snapshot, so a rebuild committing between them
cannot pair old paragraphs with new sentences.
*/
func (service *Service) Tree(ctx context.Context, chapterID string) ([]*Paragraph, error) {
	var tree []*Paragraph
	err := service.transactor.WithinReadTx(ctx, func(ctx context.Context) error {
		paragraphs, err := service.paragraphs.ListByChapter(ctx, chapterID)
		if err != nil {
			return err
		}

		sentences, err := service.sentences.ListByChapter(ctx, chapterID)
		if err != nil {
			return err
		}

		tree = Assemble(paragraphs, sentences)
		return nil
	})
	if err != nil {
		return nil, err
	}

	return tree, nil
}

// Assemble attaches each sentence to its paragraph, preserving input order.
func Assemble(paragraphs []*Paragraph, sentences []*Sentence) []*Paragraph {
	byID := make(map[string]*Paragraph, len(paragraphs))
	for _, paragraph := range paragraphs {
		paragraph.Sentences = []*Sentence{}
		byID[paragraph.ID] = paragraph
	}

	for _, sentence := range sentences {
		if paragraph, ok := byID[sentence.ParagraphID]; ok {
			paragraph.Sentences = append(paragraph.Sentences, sentence)
		}
	}

	return paragraphs
}

// # Paragraph Edits

/*
UpdateParagraph overwrites a paragraph's content and rebuilds its sentences
in one transaction.

Blank content is valid and leaves the paragraph without sentences. The owning
chapter's raw content is not rewritten.

Returns:
  - *Paragraph: The updated paragraph with its new sentences
  - error: NOT_FOUND, VALIDATION_ERROR or PARTIAL_CASCADE_FAILURE
*/
func (service *Service) UpdateParagraph(ctx context.Context, paragraphID, content string) (*Paragraph, error) {
	validator := &validate.Validator{}
	validator.Text(FieldContent, content, maxParagraphLength)
	if err := validator.Err(); err != nil {
		return nil, err
	}

	var paragraph *Paragraph
	err := service.transactor.WithinTx(ctx, func(ctx context.Context) error {
		if err := service.paragraphs.LockParagraph(ctx, paragraphID); err != nil {
			return err
		}

		if err := service.paragraphs.UpdateContent(ctx, paragraphID, content); err != nil {
			return err
		}

		sentences, err := service.synchronizer.RebuildParagraph(ctx, paragraphID, content)
		if err != nil {
			return err
		}

		paragraph, err = service.paragraphs.FindByID(ctx, paragraphID)
		if err != nil {
			return err
		}
		paragraph.Sentences = sentences
		return nil
	})
	if err != nil {
		return nil, Classify(err)
	}

	service.invalidate(ctx, paragraph.ChapterID)

	service.logger.InfoContext(ctx, "paragraph_updated",
		slog.String("paragraph_id", paragraph.ID),
		slog.String("chapter_id", paragraph.ChapterID),
		slog.Int("sentences", len(paragraph.Sentences)),
	)

	return paragraph, nil
}

// invalidate drops the cached chapter tree. A cache failure is logged, not returned.
func (service *Service) invalidate(ctx context.Context, chapterID string) {
	if service.invalidator == nil {
		return
	}
	if err := service.invalidator.InvalidateTree(ctx, chapterID); err != nil {
		service.logger.WarnContext(ctx, "chapter_tree_invalidation_failed",
			slog.String("chapter_id", chapterID),
			slog.Any("error", err),
		)
	}
}
