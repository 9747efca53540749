// Copyright (c) 2026 Folio. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package content_test

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"

	"github.com/taibuivan/folio/internal/core/content"
	"github.com/taibuivan/folio/internal/platform/apperr"
	"github.com/taibuivan/folio/internal/platform/postgres"
)

// errDiskFull is the storage failure injected by memoryStore.
var errDiskFull = errors.New("disk full")

// memoryState is one consistent copy of the stored rows.
type memoryState struct {
	chapters   map[string]bool
	paragraphs map[string]content.Paragraph
	sentences  map[string]content.Sentence
}

func (state *memoryState) clone() *memoryState {
	copied := &memoryState{
		chapters:   make(map[string]bool, len(state.chapters)),
		paragraphs: make(map[string]content.Paragraph, len(state.paragraphs)),
		sentences:  make(map[string]content.Sentence, len(state.sentences)),
	}
	for id, exists := range state.chapters {
		copied.chapters[id] = exists
	}
	for id, paragraph := range state.paragraphs {
		copied.paragraphs[id] = paragraph
	}
	for id, sentence := range state.sentences {
		copied.sentences[id] = sentence
	}
	return copied
}

type memoryTxKey struct{}

// memoryStore is a transactional in-memory implementation of the content
// repositories. Transactions run one at a time on a private copy that is
// swapped in on commit.
type memoryStore struct {
	txMu      sync.Mutex
	dataMu    sync.Mutex
	committed *memoryState

	// failOnCreate makes the Nth Create call (1-based, paragraphs and
	// sentences together) fail. Zero disables the injection.
	failOnCreate  int
	creates       int
	rollbackFails bool
}

func newMemoryStore(chapterIDs ...string) *memoryStore {
	store := &memoryStore{committed: &memoryState{
		chapters:   map[string]bool{},
		paragraphs: map[string]content.Paragraph{},
		sentences:  map[string]content.Sentence{},
	}}
	for _, id := range chapterIDs {
		store.committed.chapters[id] = true
	}
	return store
}

func (store *memoryStore) WithinTx(ctx context.Context, fn func(ctx context.Context) error) error {
	if _, ok := ctx.Value(memoryTxKey{}).(*memoryState); ok {
		return fn(ctx)
	}

	store.txMu.Lock()
	defer store.txMu.Unlock()

	store.dataMu.Lock()
	working := store.committed.clone()
	store.dataMu.Unlock()

	if err := fn(context.WithValue(ctx, memoryTxKey{}, working)); err != nil {
		if store.rollbackFails {
			// The partial writes leak, as they would without a working rollback.
			store.commit(working)
			return errors.Join(err, fmt.Errorf("%w: connection lost", postgres.ErrRollbackFailed))
		}
		return err
	}

	store.commit(working)
	return nil
}

// WithinReadTx pins the committed state for fn. Commits replace that state
// wholesale and never mutate it, so the pinned copy is a stable snapshot.
func (store *memoryStore) WithinReadTx(ctx context.Context, fn func(ctx context.Context) error) error {
	if _, ok := ctx.Value(memoryTxKey{}).(*memoryState); ok {
		return fn(ctx)
	}

	store.dataMu.Lock()
	snapshot := store.committed
	store.dataMu.Unlock()

	return fn(context.WithValue(ctx, memoryTxKey{}, snapshot))
}

func (store *memoryStore) commit(state *memoryState) {
	store.dataMu.Lock()
	store.committed = state
	store.dataMu.Unlock()
}

// view returns the state visible to ctx and a release func.
func (store *memoryStore) view(ctx context.Context) (*memoryState, func()) {
	if state, ok := ctx.Value(memoryTxKey{}).(*memoryState); ok {
		return state, func() {}
	}
	store.dataMu.Lock()
	return store.committed, store.dataMu.Unlock
}

func (store *memoryStore) nextCreateFails() bool {
	store.creates++
	return store.failOnCreate > 0 && store.creates == store.failOnCreate
}

// # ParagraphRepository

func (store *memoryStore) LockChapter(ctx context.Context, chapterID string) error {
	state, release := store.view(ctx)
	defer release()
	if !state.chapters[chapterID] {
		return apperr.NotFound("Chapter")
	}
	return nil
}

func (store *memoryStore) LockParagraph(ctx context.Context, paragraphID string) error {
	state, release := store.view(ctx)
	defer release()
	if _, ok := state.paragraphs[paragraphID]; !ok {
		return apperr.NotFound("Paragraph")
	}
	return nil
}

func (store *memoryStore) DeleteByChapter(ctx context.Context, chapterID string) error {
	state, release := store.view(ctx)
	defer release()
	for id, paragraph := range state.paragraphs {
		if paragraph.ChapterID != chapterID {
			continue
		}
		delete(state.paragraphs, id)
		for sentenceID, sentence := range state.sentences {
			if sentence.ParagraphID == id {
				delete(state.sentences, sentenceID)
			}
		}
	}
	return nil
}

func (store *memoryStore) Create(ctx context.Context, paragraph *content.Paragraph) error {
	state, release := store.view(ctx)
	defer release()
	if store.nextCreateFails() {
		return errDiskFull
	}
	for _, existing := range state.paragraphs {
		if existing.ChapterID == paragraph.ChapterID && existing.Number == paragraph.Number {
			return apperr.OrdinalConflict("Paragraph", nil)
		}
	}
	stored := *paragraph
	stored.Sentences = nil
	state.paragraphs[paragraph.ID] = stored
	return nil
}

func (store *memoryStore) UpdateContent(ctx context.Context, paragraphID, text string) error {
	state, release := store.view(ctx)
	defer release()
	paragraph, ok := state.paragraphs[paragraphID]
	if !ok {
		return apperr.NotFound("Paragraph")
	}
	paragraph.Content = text
	state.paragraphs[paragraphID] = paragraph
	return nil
}

func (store *memoryStore) FindByID(ctx context.Context, paragraphID string) (*content.Paragraph, error) {
	state, release := store.view(ctx)
	defer release()
	paragraph, ok := state.paragraphs[paragraphID]
	if !ok {
		return nil, apperr.NotFound("Paragraph")
	}
	return &paragraph, nil
}

func (store *memoryStore) ListByChapter(ctx context.Context, chapterID string) ([]*content.Paragraph, error) {
	state, release := store.view(ctx)
	defer release()
	paragraphs := []*content.Paragraph{}
	for _, paragraph := range state.paragraphs {
		if paragraph.ChapterID == chapterID {
			copied := paragraph
			paragraphs = append(paragraphs, &copied)
		}
	}
	sort.Slice(paragraphs, func(i, j int) bool { return paragraphs[i].Number < paragraphs[j].Number })
	return paragraphs, nil
}

// interleavedParagraphs runs between once the paragraphs of a tree read are
// loaded, standing in for a rebuild that commits between two statements.
type interleavedParagraphs struct {
	*memoryStore
	between func()
}

func (paragraphs *interleavedParagraphs) ListByChapter(ctx context.Context, chapterID string) ([]*content.Paragraph, error) {
	listed, err := paragraphs.memoryStore.ListByChapter(ctx, chapterID)
	if paragraphs.between != nil {
		between := paragraphs.between
		paragraphs.between = nil
		between()
	}
	return listed, err
}

// # SentenceRepository

// sentenceView adapts memoryStore to content.SentenceRepository, whose
// method names overlap with the paragraph side.
type sentenceView struct {
	store *memoryStore
}

func (view sentenceView) DeleteByParagraph(ctx context.Context, paragraphID string) error {
	state, release := view.store.view(ctx)
	defer release()
	for id, sentence := range state.sentences {
		if sentence.ParagraphID == paragraphID {
			delete(state.sentences, id)
		}
	}
	return nil
}

func (view sentenceView) Create(ctx context.Context, sentence *content.Sentence) error {
	state, release := view.store.view(ctx)
	defer release()
	if view.store.nextCreateFails() {
		return errDiskFull
	}
	state.sentences[sentence.ID] = *sentence
	return nil
}

func (view sentenceView) ListByParagraph(ctx context.Context, paragraphID string) ([]*content.Sentence, error) {
	state, release := view.store.view(ctx)
	defer release()
	sentences := []*content.Sentence{}
	for _, sentence := range state.sentences {
		if sentence.ParagraphID == paragraphID {
			copied := sentence
			sentences = append(sentences, &copied)
		}
	}
	sort.Slice(sentences, func(i, j int) bool { return sentences[i].Number < sentences[j].Number })
	return sentences, nil
}

func (view sentenceView) ListByChapter(ctx context.Context, chapterID string) ([]*content.Sentence, error) {
	state, release := view.store.view(ctx)
	defer release()
	sentences := []*content.Sentence{}
	for _, sentence := range state.sentences {
		if paragraph, ok := state.paragraphs[sentence.ParagraphID]; ok && paragraph.ChapterID == chapterID {
			copied := sentence
			sentences = append(sentences, &copied)
		}
	}
	sort.Slice(sentences, func(i, j int) bool {
		left, right := state.paragraphs[sentences[i].ParagraphID], state.paragraphs[sentences[j].ParagraphID]
		if left.Number != right.Number {
			return left.Number < right.Number
		}
		return sentences[i].Number < sentences[j].Number
	})
	return sentences, nil
}

// counts reports the committed paragraph and sentence totals.
func (store *memoryStore) counts() (paragraphs, sentences int) {
	store.dataMu.Lock()
	defer store.dataMu.Unlock()
	return len(store.committed.paragraphs), len(store.committed.sentences)
}

// orphanSentences counts committed sentences whose paragraph is gone.
func (store *memoryStore) orphanSentences() int {
	store.dataMu.Lock()
	defer store.dataMu.Unlock()
	orphans := 0
	for _, sentence := range store.committed.sentences {
		if _, ok := store.committed.paragraphs[sentence.ParagraphID]; !ok {
			orphans++
		}
	}
	return orphans
}

// recordingInvalidator records invalidated chapter ids.
type recordingInvalidator struct {
	mu      sync.Mutex
	chapter []string
}

func (invalidator *recordingInvalidator) InvalidateTree(_ context.Context, chapterID string) error {
	invalidator.mu.Lock()
	defer invalidator.mu.Unlock()
	invalidator.chapter = append(invalidator.chapter, chapterID)
	return nil
}
