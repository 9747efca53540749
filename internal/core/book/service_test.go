// Copyright (c) 2026 Folio. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package book_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/folio/internal/core/book"
	"github.com/taibuivan/folio/internal/platform/apperr"
)

type fakeRepository struct {
	books    []*book.Book
	chapters map[string][]string
}

func newFakeRepository() *fakeRepository {
	return &fakeRepository{chapters: map[string][]string{}}
}

func (repository *fakeRepository) List(_ context.Context, filter book.Filter, limit, offset int) ([]*book.Book, int, error) {
	matches := []*book.Book{}
	for _, stored := range repository.books {
		if filter.Query != "" && !strings.Contains(strings.ToLower(stored.Title), strings.ToLower(filter.Query)) {
			continue
		}
		if filter.AuthorID != "" && (stored.AuthorID == nil || *stored.AuthorID != filter.AuthorID) {
			continue
		}
		copied := *stored
		matches = append(matches, &copied)
	}
	total := len(matches)
	offset = min(offset, total)
	return matches[offset:min(offset+limit, total)], total, nil
}

func (repository *fakeRepository) find(match func(*book.Book) bool) (*book.Book, error) {
	for _, stored := range repository.books {
		if match(stored) {
			copied := *stored
			return &copied, nil
		}
	}
	return nil, apperr.NotFound("Book")
}

func (repository *fakeRepository) FindByID(_ context.Context, id string) (*book.Book, error) {
	return repository.find(func(candidate *book.Book) bool { return candidate.ID == id })
}

func (repository *fakeRepository) FindBySlug(_ context.Context, slug string) (*book.Book, error) {
	return repository.find(func(candidate *book.Book) bool { return candidate.Slug == slug })
}

func (repository *fakeRepository) Create(_ context.Context, created *book.Book) error {
	for _, stored := range repository.books {
		if stored.Slug == created.Slug {
			return apperr.Conflict("Resource already exists")
		}
	}
	copied := *created
	repository.books = append(repository.books, &copied)
	return nil
}

func (repository *fakeRepository) Delete(_ context.Context, id string) ([]string, error) {
	for index, stored := range repository.books {
		if stored.ID == id {
			repository.books = append(repository.books[:index], repository.books[index+1:]...)
			removed := repository.chapters[id]
			delete(repository.chapters, id)
			return removed, nil
		}
	}
	return nil, apperr.NotFound("Book")
}

type recordingInvalidator struct {
	invalidated []string
	err         error
}

func (invalidator *recordingInvalidator) InvalidateTree(_ context.Context, chapterID string) error {
	invalidator.invalidated = append(invalidator.invalidated, chapterID)
	return invalidator.err
}

func newService(repository book.Repository, invalidator *recordingInvalidator) *book.Service {
	return book.NewService(repository, invalidator, slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func TestCreateBook(t *testing.T) {
	service := newService(newFakeRepository(), &recordingInvalidator{})
	ctx := context.Background()

	created := &book.Book{Title: "Les Misérables: Tome I"}
	require.NoError(t, service.CreateBook(ctx, created))

	assert.Equal(t, "les-miserables-tome-i", created.Slug)
	parsed, err := uuid.Parse(created.ID)
	require.NoError(t, err)
	assert.Equal(t, uuid.Version(7), parsed.Version())

	t.Run("lookup by id and slug", func(t *testing.T) {
		byID, err := service.GetBook(ctx, created.ID)
		require.NoError(t, err)
		bySlug, err := service.GetBook(ctx, created.Slug)
		require.NoError(t, err)
		assert.Equal(t, byID.ID, bySlug.ID)
	})

	t.Run("same title twice conflicts on slug", func(t *testing.T) {
		err := service.CreateBook(ctx, &book.Book{Title: "Les Misérables: Tome I"})
		require.Error(t, err)
		assert.Equal(t, "A book with this slug already exists", apperr.As(err).Message)
	})

	t.Run("same title with explicit slug", func(t *testing.T) {
		again := &book.Book{Title: "Les Misérables: Tome I", Slug: "les-miserables-2"}
		require.NoError(t, service.CreateBook(ctx, again))
		assert.NotEqual(t, created.ID, again.ID)
	})
}

func TestCreateBook_Validation(t *testing.T) {
	badAuthor := "not-a-uuid"

	tests := []struct {
		name   string
		input  *book.Book
		fields []string
	}{
		{name: "empty title", input: &book.Book{}, fields: []string{"title", "slug"}},
		{name: "title without slug characters", input: &book.Book{Title: "!!!"}, fields: []string{"slug"}},
		{name: "bad explicit slug", input: &book.Book{Title: "Dune", Slug: "Dune Saga"}, fields: []string{"slug"}},
		{name: "bad author id", input: &book.Book{Title: "Dune", AuthorID: &badAuthor}, fields: []string{"author_id"}},
		{name: "long title", input: &book.Book{Title: strings.Repeat("a", 501), Slug: "long"}, fields: []string{"title"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := newService(newFakeRepository(), &recordingInvalidator{}).CreateBook(context.Background(), tt.input)
			appErr := apperr.As(err)
			require.NotNil(t, appErr)
			assert.Equal(t, apperr.CodeValidation, appErr.Code)

			fields := []string{}
			for _, detail := range appErr.Details {
				fields = append(fields, detail.Field)
			}
			for _, field := range tt.fields {
				assert.Contains(t, fields, field)
			}
		})
	}
}

/*
TestDeleteBook_InvalidatesChapterTrees verifies every cascaded chapter loses
its cached tree, and that cache failures do not fail the delete.
*/
func TestDeleteBook_InvalidatesChapterTrees(t *testing.T) {
	ctx := context.Background()

	t.Run("invalidates each chapter", func(t *testing.T) {
		repository := newFakeRepository()
		invalidator := &recordingInvalidator{}
		service := newService(repository, invalidator)

		created := &book.Book{Title: "Dune"}
		require.NoError(t, service.CreateBook(ctx, created))
		repository.chapters[created.ID] = []string{"c1", "c2"}

		require.NoError(t, service.DeleteBook(ctx, created.ID))
		assert.Equal(t, []string{"c1", "c2"}, invalidator.invalidated)

		_, err := service.GetBook(ctx, created.ID)
		assert.True(t, apperr.HasCode(err, apperr.CodeNotFound))
	})

	t.Run("cache failure is tolerated", func(t *testing.T) {
		repository := newFakeRepository()
		service := newService(repository, &recordingInvalidator{err: errors.New("redis down")})

		created := &book.Book{Title: "Dune"}
		require.NoError(t, service.CreateBook(ctx, created))
		repository.chapters[created.ID] = []string{"c1"}

		assert.NoError(t, service.DeleteBook(ctx, created.ID))
	})

	t.Run("missing book", func(t *testing.T) {
		err := newService(newFakeRepository(), &recordingInvalidator{}).DeleteBook(ctx, "0190a3c4-5b6e-7f80-9a1b-2c3d4e5f6a7b")
		assert.True(t, apperr.HasCode(err, apperr.CodeNotFound))
	})
}

func TestListBooks(t *testing.T) {
	service := newService(newFakeRepository(), &recordingInvalidator{})
	ctx := context.Background()

	authorID := "522e2d60-c5e5-5c1a-b576-e3e177cfdec0"
	require.NoError(t, service.CreateBook(ctx, &book.Book{Title: "Dune", AuthorID: &authorID}))
	require.NoError(t, service.CreateBook(ctx, &book.Book{Title: "Dune Messiah"}))
	require.NoError(t, service.CreateBook(ctx, &book.Book{Title: "Emma"}))

	books, total, err := service.ListBooks(ctx, book.Filter{Query: "dune"}, 10, 0)
	require.NoError(t, err)
	assert.Equal(t, 2, total)
	assert.Len(t, books, 2)

	books, total, err = service.ListBooks(ctx, book.Filter{AuthorID: authorID}, 10, 0)
	require.NoError(t, err)
	assert.Equal(t, 1, total)
	assert.Equal(t, "dune", books[0].Slug)
}
