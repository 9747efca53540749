// Copyright (c) 2026 Folio. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package book

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/taibuivan/folio/internal/platform/apperr"
	"github.com/taibuivan/folio/internal/platform/database/schema"
	"github.com/taibuivan/folio/internal/platform/dberr"
	"github.com/taibuivan/folio/internal/platform/postgres"
)

// # PostgreSQL Repository

// PostgresRepository implements [Repository] using pgx.
type PostgresRepository struct {
	pool *pgxpool.Pool
}

// NewPostgresRepository constructs a PostgreSQL backed book store.
func NewPostgresRepository(pool *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{pool: pool}
}

func bookColumns() string {
	return fmt.Sprintf("%s, %s, %s, %s, %s, %s, %s",
		schema.CoreBook.ID, schema.CoreBook.Title, schema.CoreBook.Slug,
		schema.CoreBook.AuthorID, schema.CoreBook.PublisherID,
		schema.CoreBook.CreatedAt, schema.CoreBook.UpdatedAt,
	)
}

func bookTargets(book *Book) []any {
	return []any{
		&book.ID, &book.Title, &book.Slug,
		&book.AuthorID, &book.PublisherID,
		&book.CreatedAt, &book.UpdatedAt,
	}
}

/*
List retrieves a filtered page of books.

Description: Filters are appended as numbered arguments and the total is
computed with COUNT(*) OVER() in the same round-trip.
*/
func (repository *PostgresRepository) List(ctx context.Context, filter Filter, limit, offset int) ([]*Book, int, error) {
	var queryBuilder strings.Builder
	queryBuilder.WriteString(fmt.Sprintf(`
		SELECT %s, COUNT(*) OVER() AS total_count
		FROM %s
		WHERE TRUE
	`, bookColumns(), schema.CoreBook.Table))

	args := []any{}
	argID := 1

	if filter.Query != "" {
		queryBuilder.WriteString(fmt.Sprintf(" AND %s ILIKE $%d", schema.CoreBook.Title, argID))
		args = append(args, "%"+filter.Query+"%")
		argID++
	}

	if filter.AuthorID != "" {
		queryBuilder.WriteString(fmt.Sprintf(" AND %s = $%d", schema.CoreBook.AuthorID, argID))
		args = append(args, filter.AuthorID)
		argID++
	}

	if filter.PublisherID != "" {
		queryBuilder.WriteString(fmt.Sprintf(" AND %s = $%d", schema.CoreBook.PublisherID, argID))
		args = append(args, filter.PublisherID)
		argID++
	}

	// UUIDv7 ids sort by creation time.
	queryBuilder.WriteString(fmt.Sprintf(" ORDER BY %s DESC LIMIT $%d OFFSET $%d", schema.CoreBook.ID, argID, argID+1))
	args = append(args, limit, offset)

	rows, err := repository.pool.Query(ctx, queryBuilder.String(), args...)
	if err != nil {
		return nil, 0, dberr.Wrap(err, "list_books")
	}
	defer rows.Close()

	books := []*Book{}
	var total int
	for rows.Next() {
		var book Book
		if err := rows.Scan(append(bookTargets(&book), &total)...); err != nil {
			return nil, 0, dberr.Wrap(err, "scan_book")
		}
		books = append(books, &book)
	}

	return books, total, rows.Err()
}

func (repository *PostgresRepository) FindByID(ctx context.Context, id string) (*Book, error) {
	return repository.findBy(ctx, schema.CoreBook.ID, id)
}

func (repository *PostgresRepository) FindBySlug(ctx context.Context, slug string) (*Book, error) {
	return repository.findBy(ctx, schema.CoreBook.Slug, slug)
}

func (repository *PostgresRepository) findBy(ctx context.Context, column, value string) (*Book, error) {
	query := fmt.Sprintf(`SELECT %s FROM %s WHERE %s = $1`, bookColumns(), schema.CoreBook.Table, column)

	var book Book
	if err := repository.pool.QueryRow(ctx, query, value).Scan(bookTargets(&book)...); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperr.NotFound("Book")
		}
		return nil, dberr.Wrap(err, "find_book")
	}
	return &book, nil
}

func (repository *PostgresRepository) Create(ctx context.Context, book *Book) error {
	query := fmt.Sprintf(`
		INSERT INTO %s (%s, %s, %s, %s, %s)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING %s, %s
	`,
		schema.CoreBook.Table,
		schema.CoreBook.ID, schema.CoreBook.Title, schema.CoreBook.Slug,
		schema.CoreBook.AuthorID, schema.CoreBook.PublisherID,
		schema.CoreBook.CreatedAt, schema.CoreBook.UpdatedAt,
	)

	err := repository.pool.QueryRow(ctx, query,
		book.ID, book.Title, book.Slug, book.AuthorID, book.PublisherID,
	).Scan(&book.CreatedAt, &book.UpdatedAt)

	return dberr.Wrap(err, "create_book")
}

/*
Delete collects the chapter ids and removes the book in one transaction so
that the returned ids match exactly what the cascade removed.
*/
func (repository *PostgresRepository) Delete(ctx context.Context, id string) ([]string, error) {
	var chapterIDs []string

	err := postgres.NewTransactor(repository.pool).WithinTx(ctx, func(ctx context.Context) error {
		executor := postgres.Executor(ctx, repository.pool)

		lockQuery := fmt.Sprintf(`SELECT %s FROM %s WHERE %s = $1 FOR UPDATE`,
			schema.CoreBook.ID, schema.CoreBook.Table, schema.CoreBook.ID)
		var lockedID string
		if err := executor.QueryRow(ctx, lockQuery, id).Scan(&lockedID); err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return apperr.NotFound("Book")
			}
			return dberr.Wrap(err, "lock_book")
		}

		chapterQuery := fmt.Sprintf(`SELECT %s FROM %s WHERE %s = $1`,
			schema.CoreChapter.ID, schema.CoreChapter.Table, schema.CoreChapter.BookID)
		rows, err := executor.Query(ctx, chapterQuery, id)
		if err != nil {
			return dberr.Wrap(err, "list_book_chapters")
		}
		chapterIDs, err = pgx.CollectRows(rows, pgx.RowTo[string])
		if err != nil {
			return dberr.Wrap(err, "scan_book_chapters")
		}

		deleteQuery := fmt.Sprintf(`DELETE FROM %s WHERE %s = $1`, schema.CoreBook.Table, schema.CoreBook.ID)
		if _, err := executor.Exec(ctx, deleteQuery, id); err != nil {
			return dberr.Wrap(err, "delete_book")
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return chapterIDs, nil
}
