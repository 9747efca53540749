// Copyright (c) 2026 Folio. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package content

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/google/uuid"

	"github.com/taibuivan/folio/internal/platform/apperr"
	"github.com/taibuivan/folio/internal/platform/postgres"
	"github.com/taibuivan/folio/pkg/identity"
	"github.com/taibuivan/folio/pkg/textseg"
)

// # Rebuild States

// State is a step of a single container rebuild.
type State int

const (
	StateIdle State = iota
	StateNormalizing
	StateSegmenting
	StateRebuilding
	StateDone
	StateFailed
)

var stateNames = [...]string{"idle", "normalizing_content", "segmenting", "rebuilding_children", "done", "failed"}

func (s State) String() string {
	if int(s) < len(stateNames) {
		return stateNames[s]
	}
	return fmt.Sprintf("state(%d)", int(s))
}

// Level names the container kind being rebuilt.
type Level string

const (
	LevelChapter   Level = "chapter"
	LevelParagraph Level = "paragraph"
)

// Observer is notified of every state transition.
type Observer func(level Level, containerID string, state State)

// # Cascade Failures

// CascadeError reports a storage failure part-way through a rebuild.
type CascadeError struct {
	Level       Level
	ContainerID string
	// Created counts the rows (paragraphs and sentences) written before the failure.
	Created int
	Err     error
}

func (e *CascadeError) Error() string {
	return fmt.Sprintf("content: rebuild of %s %s failed after %d children: %v", e.Level, e.ContainerID, e.Created, e.Err)
}

func (e *CascadeError) Unwrap() error { return e.Err }

// Classify converts a [*CascadeError] returned from a finished transaction
// into an [apperr.PartialCascadeFailure]. Other errors pass through.
//
// Call it only after the outermost transaction has returned, so that the
// rollback outcome is known.
func Classify(err error) error {
	var cascadeErr *CascadeError
	if !errors.As(err, &cascadeErr) {
		return err
	}
	// Domain errors raised mid-cascade (e.g. an ordinal clash) keep their code.
	if ae := apperr.As(cascadeErr.Err); ae != nil && ae.Code != apperr.CodeInternal {
		return ae
	}
	rolledBack := !errors.Is(err, postgres.ErrRollbackFailed)
	return apperr.PartialCascadeFailure(cascadeErr.Created, rolledBack, err)
}

// # Synchronizer

// Synchronizer rebuilds the derived paragraph and sentence rows of a container.
//
// # Concurrency
//
// The segmentation itself is pure. All writes of one rebuild happen inside a
// single transaction holding a row lock on the container, so readers never
// see a half-built tree and concurrent rebuilds of one container serialize.
type Synchronizer struct {
	transactor Transactor
	paragraphs ParagraphRepository
	sentences  SentenceRepository
	logger     *slog.Logger
	newID      func() uuid.UUID
	observer   Observer
}

// Option customizes a [Synchronizer].
type Option func(*Synchronizer)

// WithIDGenerator replaces the opaque id source.
func WithIDGenerator(generate func() uuid.UUID) Option {
	return func(s *Synchronizer) { s.newID = generate }
}

// WithObserver registers a state transition observer.
func WithObserver(observer Observer) Option {
	return func(s *Synchronizer) { s.observer = observer }
}

// NewSynchronizer constructs a [Synchronizer].
func NewSynchronizer(transactor Transactor, paragraphs ParagraphRepository, sentences SentenceRepository, logger *slog.Logger, options ...Option) *Synchronizer {
	synchronizer := &Synchronizer{
		transactor: transactor,
		paragraphs: paragraphs,
		sentences:  sentences,
		logger:     logger,
		newID:      identity.NewOpaque,
	}
	for _, option := range options {
		option(synchronizer)
	}
	return synchronizer
}

/*
ResyncChapter replaces every paragraph of a chapter with a fresh decomposition
of raw, inside its own transaction.

Blank raw content clears the chapter. A storage failure rolls everything back
and surfaces as PARTIAL_CASCADE_FAILURE.

Returns:
  - []*Paragraph: The new paragraphs in order, each carrying its sentences
  - error: apperr.NotFound if the chapter is missing, or the cascade failure
*/
func (s *Synchronizer) ResyncChapter(ctx context.Context, chapterID, raw string) ([]*Paragraph, error) {
	var paragraphs []*Paragraph
	err := s.transactor.WithinTx(ctx, func(ctx context.Context) error {
		if err := s.paragraphs.LockChapter(ctx, chapterID); err != nil {
			return err
		}

		var err error
		paragraphs, err = s.RebuildChapter(ctx, chapterID, raw)
		return err
	})
	if err != nil {
		return nil, Classify(err)
	}

	s.logger.InfoContext(ctx, "chapter_resynced",
		slog.String("chapter_id", chapterID),
		slog.Int("paragraphs", len(paragraphs)),
	)
	return paragraphs, nil
}

/*
ResyncParagraph replaces every sentence of a paragraph with a fresh
segmentation of raw, inside its own transaction.
*/
func (s *Synchronizer) ResyncParagraph(ctx context.Context, paragraphID, raw string) ([]*Sentence, error) {
	var sentences []*Sentence
	err := s.transactor.WithinTx(ctx, func(ctx context.Context) error {
		if err := s.paragraphs.LockParagraph(ctx, paragraphID); err != nil {
			return err
		}

		var err error
		sentences, err = s.RebuildParagraph(ctx, paragraphID, raw)
		return err
	})
	if err != nil {
		return nil, Classify(err)
	}

	s.logger.DebugContext(ctx, "paragraph_resynced",
		slog.String("paragraph_id", paragraphID),
		slog.Int("sentences", len(sentences)),
	)
	return sentences, nil
}

// RebuildChapter performs the chapter cascade on a ctx that already carries a
// transaction and a lock on the chapter. Failures are returned as
// [*CascadeError]; run them through [Classify] once the transaction is over.
func (s *Synchronizer) RebuildChapter(ctx context.Context, chapterID, raw string) ([]*Paragraph, error) {
	run := s.start(ctx, LevelChapter, chapterID)

	if err := s.paragraphs.DeleteByChapter(ctx, chapterID); err != nil {
		return nil, run.fail(err)
	}

	paragraphs := []*Paragraph{}
	if strings.TrimSpace(raw) == "" {
		run.to(StateDone)
		return paragraphs, nil
	}

	run.to(StateNormalizing)
	normalized := textseg.Normalize(raw)

	run.to(StateSegmenting)
	texts := textseg.Paragraphs(normalized)

	run.to(StateRebuilding)
	for position, text := range texts {
		paragraph := &Paragraph{
			ID:        s.newID().String(),
			ChapterID: chapterID,
			Number:    position + 1,
			Content:   text,
		}
		if err := s.paragraphs.Create(ctx, paragraph); err != nil {
			return nil, run.fail(err)
		}
		run.created++

		sentences, err := s.RebuildParagraph(ctx, paragraph.ID, paragraph.Content)
		if err != nil {
			return nil, run.fail(err)
		}
		run.created += len(sentences)

		paragraph.Sentences = sentences
		paragraphs = append(paragraphs, paragraph)
	}

	run.to(StateDone)
	return paragraphs, nil
}

// RebuildParagraph performs the sentence cascade on a ctx that already
// carries a transaction. See [Synchronizer.RebuildChapter].
func (s *Synchronizer) RebuildParagraph(ctx context.Context, paragraphID, raw string) ([]*Sentence, error) {
	run := s.start(ctx, LevelParagraph, paragraphID)

	if err := s.sentences.DeleteByParagraph(ctx, paragraphID); err != nil {
		return nil, run.fail(err)
	}

	sentences := []*Sentence{}
	if strings.TrimSpace(raw) == "" {
		run.to(StateDone)
		return sentences, nil
	}

	run.to(StateNormalizing)
	collapsed := textseg.CollapseWhitespace(raw)

	run.to(StateSegmenting)
	texts := textseg.Sentences(collapsed)

	run.to(StateRebuilding)
	for position, text := range texts {
		sentence := &Sentence{
			ID:          s.newID().String(),
			ParagraphID: paragraphID,
			Number:      position + 1,
			Content:     text,
		}
		if err := s.sentences.Create(ctx, sentence); err != nil {
			return nil, run.fail(err)
		}
		run.created++
		sentences = append(sentences, sentence)
	}

	run.to(StateDone)
	return sentences, nil
}

// # Rebuild Bookkeeping

type rebuild struct {
	ctx         context.Context
	owner       *Synchronizer
	level       Level
	containerID string
	state       State
	created     int
}

func (s *Synchronizer) start(ctx context.Context, level Level, containerID string) *rebuild {
	run := &rebuild{ctx: ctx, owner: s, level: level, containerID: containerID}
	run.to(StateIdle)
	return run
}

func (r *rebuild) to(next State) {
	r.state = next
	r.owner.logger.DebugContext(r.ctx, "content_rebuild_state",
		slog.String("level", string(r.level)),
		slog.String("container_id", r.containerID),
		slog.String("state", next.String()),
	)
	if r.owner.observer != nil {
		r.owner.observer(r.level, r.containerID, next)
	}
}

// fail moves the rebuild to StateFailed and folds a nested cascade failure
// into this level's count.
func (r *rebuild) fail(err error) error {
	r.to(StateFailed)

	var nested *CascadeError
	if errors.As(err, &nested) {
		return &CascadeError{Level: r.level, ContainerID: r.containerID, Created: r.created + nested.Created, Err: nested.Err}
	}
	return &CascadeError{Level: r.level, ContainerID: r.containerID, Created: r.created, Err: err}
}
