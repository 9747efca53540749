// Copyright (c) 2026 Folio. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package content_test

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/folio/internal/core/content"
	"github.com/taibuivan/folio/internal/platform/apperr"
)

type serviceFixture struct {
	store       *memoryStore
	invalidator *recordingInvalidator
	service     *content.Service
	paragraphs  []*content.Paragraph
}

func newServiceFixture(t *testing.T) *serviceFixture {
	t.Helper()

	store := newMemoryStore(chapterID)
	sentences := sentenceView{store: store}
	synchronizer := content.NewSynchronizer(store, store, sentences, discardLogger())
	invalidator := &recordingInvalidator{}

	paragraphs, err := synchronizer.ResyncChapter(context.Background(), chapterID, threeParagraphs)
	require.NoError(t, err)

	return &serviceFixture{
		store:       store,
		invalidator: invalidator,
		service:     content.NewService(store, store, sentences, synchronizer, invalidator, discardLogger()),
		paragraphs:  paragraphs,
	}
}

func TestService_Reads(t *testing.T) {
	fixture := newServiceFixture(t)
	ctx := context.Background()

	t.Run("list paragraphs", func(t *testing.T) {
		paragraphs, err := fixture.service.ListParagraphs(ctx, chapterID)
		require.NoError(t, err)
		require.Len(t, paragraphs, 3)
		assert.Empty(t, paragraphs[0].Sentences)
	})

	t.Run("get paragraph carries sentences", func(t *testing.T) {
		paragraph, err := fixture.service.GetParagraph(ctx, fixture.paragraphs[0].ID)
		require.NoError(t, err)
		require.Len(t, paragraph.Sentences, 2)
		assert.Equal(t, "First paragraph.", paragraph.Sentences[0].Content)
	})

	t.Run("list sentences of missing paragraph", func(t *testing.T) {
		_, err := fixture.service.ListSentences(ctx, "missing")
		assert.True(t, apperr.HasCode(err, apperr.CodeNotFound))
	})

	t.Run("tree", func(t *testing.T) {
		tree, err := fixture.service.Tree(ctx, chapterID)
		require.NoError(t, err)
		require.Len(t, tree, 3)
		assert.Len(t, tree[0].Sentences, 2)
		assert.Len(t, tree[1].Sentences, 1)
		assert.Len(t, tree[2].Sentences, 2)
		assert.Equal(t, "Yes.", tree[2].Sentences[1].Content)
	})
}

func TestAssemble(t *testing.T) {
	paragraphs := []*content.Paragraph{{ID: "p1"}, {ID: "p2"}}
	sentences := []*content.Sentence{
		{ID: "s1", ParagraphID: "p1"},
		{ID: "s2", ParagraphID: "p2"},
		{ID: "s3", ParagraphID: "p1"},
		{ID: "stray", ParagraphID: "gone"},
	}

	tree := content.Assemble(paragraphs, sentences)

	require.Len(t, tree, 2)
	assert.Equal(t, []string{"s1", "s3"}, []string{tree[0].Sentences[0].ID, tree[0].Sentences[1].ID})
	require.Len(t, tree[1].Sentences, 1)
	assert.Equal(t, "s2", tree[1].Sentences[0].ID)
}

/*
TestService_UpdateParagraph verifies a paragraph edit rewrites its sentences,
keeps its identity and invalidates the chapter tree.
*/
func TestService_UpdateParagraph(t *testing.T) {
	fixture := newServiceFixture(t)
	ctx := context.Background()
	target := fixture.paragraphs[1]

	updated, err := fixture.service.UpdateParagraph(ctx, target.ID, "Rewritten here. With a second sentence.")
	require.NoError(t, err)

	assert.Equal(t, target.ID, updated.ID)
	assert.Equal(t, target.Number, updated.Number)
	assert.Equal(t, "Rewritten here. With a second sentence.", updated.Content)
	require.Len(t, updated.Sentences, 2)
	assert.Equal(t, "With a second sentence.", updated.Sentences[1].Content)
	assert.Equal(t, []string{chapterID}, fixture.invalidator.chapter)

	stored, err := fixture.service.GetParagraph(ctx, target.ID)
	require.NoError(t, err)
	assert.Len(t, stored.Sentences, 2)

	_, sentenceCount := fixture.store.counts()
	assert.Equal(t, 6, sentenceCount)
}

func TestService_UpdateParagraph_Errors(t *testing.T) {
	t.Run("missing paragraph", func(t *testing.T) {
		fixture := newServiceFixture(t)
		_, err := fixture.service.UpdateParagraph(context.Background(), "missing", "Text.")
		assert.True(t, apperr.HasCode(err, apperr.CodeNotFound))
		assert.Empty(t, fixture.invalidator.chapter)
	})

	t.Run("content too long", func(t *testing.T) {
		fixture := newServiceFixture(t)
		_, err := fixture.service.UpdateParagraph(context.Background(), fixture.paragraphs[0].ID, strings.Repeat("a", 100_001))
		assert.True(t, apperr.HasCode(err, apperr.CodeValidation))
	})

	t.Run("storage failure rolls back", func(t *testing.T) {
		fixture := newServiceFixture(t)
		ctx := context.Background()
		target := fixture.paragraphs[0]

		fixture.store.failOnCreate = fixture.store.creates + 2
		_, err := fixture.service.UpdateParagraph(ctx, target.ID, "New one. New two. New three.")
		require.Error(t, err)
		assert.True(t, apperr.HasCode(err, apperr.CodePartialCascadeFailure))

		stored, err := fixture.service.GetParagraph(ctx, target.ID)
		require.NoError(t, err)
		assert.Equal(t, target.Content, stored.Content)
		require.Len(t, stored.Sentences, 2)
		assert.Equal(t, target.Sentences[0].ID, stored.Sentences[0].ID)
		assert.Empty(t, fixture.invalidator.chapter)
	})
}

/*
TestService_Tree_RebuildBetweenReads verifies a tree read keeps one snapshot
when a rebuild commits after the paragraphs are loaded but before the
sentences are.
*/
func TestService_Tree_RebuildBetweenReads(t *testing.T) {
	store := newMemoryStore(chapterID)
	sentences := sentenceView{store: store}
	synchronizer := content.NewSynchronizer(store, store, sentences, discardLogger())

	before, err := synchronizer.ResyncChapter(context.Background(), chapterID, threeParagraphs)
	require.NoError(t, err)

	paragraphs := &interleavedParagraphs{memoryStore: store}
	paragraphs.between = func() {
		_, err := synchronizer.ResyncChapter(context.Background(), chapterID, "Rewritten opening. Now shorter.\n\nClosing line.")
		require.NoError(t, err)
	}
	service := content.NewService(store, paragraphs, sentences, synchronizer, &recordingInvalidator{}, discardLogger())

	tree, err := service.Tree(context.Background(), chapterID)
	require.NoError(t, err)
	require.Len(t, tree, 3)
	for index, paragraph := range tree {
		assert.Equal(t, before[index].ID, paragraph.ID)
		assert.NotEmpty(t, paragraph.Sentences, "paragraph %d", paragraph.Number)
	}

	tree, err = service.Tree(context.Background(), chapterID)
	require.NoError(t, err)
	require.Len(t, tree, 2)
	assert.Len(t, tree[0].Sentences, 2)
	assert.Len(t, tree[1].Sentences, 1)
}
