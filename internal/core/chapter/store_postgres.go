// Copyright (c) 2026 Folio. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package chapter

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/taibuivan/folio/internal/platform/apperr"
	"github.com/taibuivan/folio/internal/platform/database/schema"
	"github.com/taibuivan/folio/internal/platform/dberr"
	"github.com/taibuivan/folio/internal/platform/postgres"
)

// # PostgreSQL Repositories

// chapterRepository implements the [ChapterRepository] interface using pgx.
type chapterRepository struct {
	pool *pgxpool.Pool
}

// NewChapterRepository constructs a PostgreSQL backed chapter store.
func NewChapterRepository(pool *pgxpool.Pool) ChapterRepository {
	return &chapterRepository{pool: pool}
}

// selectColumns lists the chapter columns in scan order.
func selectColumns() string {
	return fmt.Sprintf("%s, %s, %s, %s, %s, %s, %s",
		schema.CoreChapter.ID, schema.CoreChapter.BookID, schema.CoreChapter.ChapterNumber,
		schema.CoreChapter.Title, schema.CoreChapter.Content,
		schema.CoreChapter.CreatedAt, schema.CoreChapter.UpdatedAt,
	)
}

func scanTargets(chapter *Chapter) []any {
	return []any{
		&chapter.ID, &chapter.BookID, &chapter.Number,
		&chapter.Title, &chapter.Content,
		&chapter.CreatedAt, &chapter.UpdatedAt,
	}
}

// # Chapter Repository Implementation

/*
ListByBook retrieves a page of chapters linked to a book.

The total is computed with a window function so that a single round-trip
returns both the page and the count.
*/
func (repository *chapterRepository) ListByBook(ctx context.Context, bookID string, limit, offset int) ([]*Chapter, int, error) {
	query := fmt.Sprintf(`
		SELECT %s, COUNT(*) OVER() AS total_count
		FROM %s
		WHERE %s = $1
		ORDER BY %s ASC
		LIMIT $2 OFFSET $3
	`,
		selectColumns(),
		schema.CoreChapter.Table,
		schema.CoreChapter.BookID,
		schema.CoreChapter.ChapterNumber,
	)

	rows, err := postgres.Executor(ctx, repository.pool).Query(ctx, query, bookID, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("postgres: failed to list chapters: %w", err)
	}
	defer rows.Close()

	chapters := []*Chapter{}
	var totalCount int

	for rows.Next() {
		var chapter Chapter
		if err := rows.Scan(append(scanTargets(&chapter), &totalCount)...); err != nil {
			return nil, 0, fmt.Errorf("postgres: failed to scan chapter: %w", err)
		}
		chapters = append(chapters, &chapter)
	}

	return chapters, totalCount, rows.Err()
}

func (repository *chapterRepository) FindByID(ctx context.Context, id string) (*Chapter, error) {
	return repository.find(ctx, id, "")
}

func (repository *chapterRepository) FindByIDForUpdate(ctx context.Context, id string) (*Chapter, error) {
	return repository.find(ctx, id, "FOR UPDATE")
}

func (repository *chapterRepository) find(ctx context.Context, id, locking string) (*Chapter, error) {
	query := fmt.Sprintf(`SELECT %s FROM %s WHERE %s = $1 %s`,
		selectColumns(), schema.CoreChapter.Table, schema.CoreChapter.ID, locking)

	var chapter Chapter
	err := postgres.Executor(ctx, repository.pool).QueryRow(ctx, query, id).Scan(scanTargets(&chapter)...)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperr.NotFound("Chapter")
		}
		return nil, dberr.Wrap(err, "find_chapter")
	}

	return &chapter, nil
}

func (repository *chapterRepository) FindMaxNumber(ctx context.Context, bookID string) (*int, error) {
	query := fmt.Sprintf(`SELECT MAX(%s) FROM %s WHERE %s = $1`,
		schema.CoreChapter.ChapterNumber, schema.CoreChapter.Table, schema.CoreChapter.BookID)

	var highest *int
	if err := postgres.Executor(ctx, repository.pool).QueryRow(ctx, query, bookID).Scan(&highest); err != nil {
		return nil, dberr.Wrap(err, "max_chapter_number")
	}
	return highest, nil
}

func (repository *chapterRepository) LockBook(ctx context.Context, bookID string) error {
	query := fmt.Sprintf(`SELECT %s FROM %s WHERE %s = $1 FOR UPDATE`,
		schema.CoreBook.ID, schema.CoreBook.Table, schema.CoreBook.ID)

	var lockedID string
	err := postgres.Executor(ctx, repository.pool).QueryRow(ctx, query, bookID).Scan(&lockedID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apperr.NotFound("Book")
		}
		return dberr.Wrap(err, "lock_book")
	}
	return nil
}

func (repository *chapterRepository) Create(ctx context.Context, chapter *Chapter) error {
	query := fmt.Sprintf(`
		INSERT INTO %s (%s, %s, %s, %s, %s)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING %s, %s
	`,
		schema.CoreChapter.Table,
		schema.CoreChapter.ID, schema.CoreChapter.BookID, schema.CoreChapter.ChapterNumber,
		schema.CoreChapter.Title, schema.CoreChapter.Content,
		schema.CoreChapter.CreatedAt, schema.CoreChapter.UpdatedAt,
	)

	err := postgres.Executor(ctx, repository.pool).QueryRow(ctx, query,
		chapter.ID, chapter.BookID, chapter.Number, chapter.Title, chapter.Content,
	).Scan(&chapter.CreatedAt, &chapter.UpdatedAt)

	return dberr.Wrap(err, "create_chapter")
}

func (repository *chapterRepository) Update(ctx context.Context, chapter *Chapter) error {
	query := fmt.Sprintf(`
		UPDATE %s
		SET %s = $1, %s = $2, %s = $3, %s = NOW()
		WHERE %s = $4
		RETURNING %s
	`,
		schema.CoreChapter.Table,
		schema.CoreChapter.Title, schema.CoreChapter.ChapterNumber, schema.CoreChapter.Content, schema.CoreChapter.UpdatedAt,
		schema.CoreChapter.ID,
		schema.CoreChapter.UpdatedAt,
	)

	err := postgres.Executor(ctx, repository.pool).QueryRow(ctx, query,
		chapter.Title, chapter.Number, chapter.Content, chapter.ID,
	).Scan(&chapter.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return apperr.NotFound("Chapter")
	}

	return dberr.Wrap(err, "update_chapter")
}

func (repository *chapterRepository) Delete(ctx context.Context, id string) error {
	query := fmt.Sprintf(`DELETE FROM %s WHERE %s = $1`, schema.CoreChapter.Table, schema.CoreChapter.ID)

	result, err := postgres.Executor(ctx, repository.pool).Exec(ctx, query, id)
	if err != nil {
		return dberr.Wrap(err, "delete_chapter")
	}

	if result.RowsAffected() == 0 {
		return apperr.NotFound("Chapter")
	}
	return nil
}
