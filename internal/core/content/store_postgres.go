// Copyright (c) 2026 Folio. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package content

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

// paragraphRepository implements [ParagraphRepository] using pgx.
type paragraphRepository struct {
	pool *pgxpool.Pool
}

// NewParagraphRepository constructs a PostgreSQL backed paragraph store.
func NewParagraphRepository(pool *pgxpool.Pool) ParagraphRepository {
	return &paragraphRepository{pool: pool}
}

// sentenceRepository implements [SentenceRepository] using pgx.
type sentenceRepository struct {
	pool *pgxpool.Pool
}

// NewSentenceRepository constructs a PostgreSQL backed sentence store.
func NewSentenceRepository(pool *pgxpool.Pool) SentenceRepository {
	return &sentenceRepository{pool: pool}
}

// # Paragraph Repository Implementation

func (repository *paragraphRepository) LockChapter(ctx context.Context, chapterID string) error {
	query := fmt.Sprintf(`SELECT %s FROM %s WHERE %s = $1 FOR UPDATE`,
		schema.CoreChapter.ID, schema.CoreChapter.Table, schema.CoreChapter.ID)

	var lockedID string
	err := postgres.Executor(ctx, repository.pool).QueryRow(ctx, query, chapterID).Scan(&lockedID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apperr.NotFound("Chapter")
		}
		return dberr.Wrap(err, "lock_chapter")
	}
	return nil
}

func (repository *paragraphRepository) LockParagraph(ctx context.Context, paragraphID string) error {
	query := fmt.Sprintf(`SELECT %s FROM %s WHERE %s = $1 FOR UPDATE`,
		schema.CoreParagraph.ID, schema.CoreParagraph.Table, schema.CoreParagraph.ID)

	var lockedID string
	err := postgres.Executor(ctx, repository.pool).QueryRow(ctx, query, paragraphID).Scan(&lockedID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apperr.NotFound("Paragraph")
		}
		return dberr.Wrap(err, "lock_paragraph")
	}
	return nil
}

func (repository *paragraphRepository) DeleteByChapter(ctx context.Context, chapterID string) error {
	query := fmt.Sprintf(`DELETE FROM %s WHERE %s = $1`, schema.CoreParagraph.Table, schema.CoreParagraph.ChapterID)

	if _, err := postgres.Executor(ctx, repository.pool).Exec(ctx, query, chapterID); err != nil {
		return fmt.Errorf("postgres: failed to clear paragraphs: %w", err)
	}
	return nil
}

func (repository *paragraphRepository) Create(ctx context.Context, paragraph *Paragraph) error {
	query := fmt.Sprintf(`
		INSERT INTO %s (%s, %s, %s, %s)
		VALUES ($1, $2, $3, $4)
		RETURNING %s
	`,
		schema.CoreParagraph.Table,
		schema.CoreParagraph.ID, schema.CoreParagraph.ChapterID, schema.CoreParagraph.ParagraphNumber, schema.CoreParagraph.Content,
		schema.CoreParagraph.CreatedAt,
	)

	err := postgres.Executor(ctx, repository.pool).QueryRow(ctx, query,
		paragraph.ID, paragraph.ChapterID, paragraph.Number, paragraph.Content,
	).Scan(&paragraph.CreatedAt)

	return dberr.Wrap(err, "create_paragraph")
}

func (repository *paragraphRepository) UpdateContent(ctx context.Context, paragraphID, content string) error {
	query := fmt.Sprintf(`UPDATE %s SET %s = $1 WHERE %s = $2`,
		schema.CoreParagraph.Table, schema.CoreParagraph.Content, schema.CoreParagraph.ID)

	result, err := postgres.Executor(ctx, repository.pool).Exec(ctx, query, content, paragraphID)
	if err != nil {
		return dberr.Wrap(err, "update_paragraph")
	}

	if result.RowsAffected() == 0 {
		return apperr.NotFound("Paragraph")
	}
	return nil
}

func (repository *paragraphRepository) FindByID(ctx context.Context, paragraphID string) (*Paragraph, error) {
	query := fmt.Sprintf(`SELECT %s, %s, %s, %s, %s FROM %s WHERE %s = $1`,
		schema.CoreParagraph.ID, schema.CoreParagraph.ChapterID, schema.CoreParagraph.ParagraphNumber,
		schema.CoreParagraph.Content, schema.CoreParagraph.CreatedAt,
		schema.CoreParagraph.Table, schema.CoreParagraph.ID,
	)

	var paragraph Paragraph
	err := postgres.Executor(ctx, repository.pool).QueryRow(ctx, query, paragraphID).Scan(
		&paragraph.ID, &paragraph.ChapterID, &paragraph.Number, &paragraph.Content, &paragraph.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperr.NotFound("Paragraph")
		}
		return nil, dberr.Wrap(err, "find_paragraph")
	}

	return &paragraph, nil
}

func (repository *paragraphRepository) ListByChapter(ctx context.Context, chapterID string) ([]*Paragraph, error) {
	query := fmt.Sprintf(`
		SELECT %s, %s, %s, %s, %s
		FROM %s
		WHERE %s = $1
		ORDER BY %s ASC
	`,
		schema.CoreParagraph.ID, schema.CoreParagraph.ChapterID, schema.CoreParagraph.ParagraphNumber,
		schema.CoreParagraph.Content, schema.CoreParagraph.CreatedAt,
		schema.CoreParagraph.Table,
		schema.CoreParagraph.ChapterID,
		schema.CoreParagraph.ParagraphNumber,
	)

	rows, err := postgres.Executor(ctx, repository.pool).Query(ctx, query, chapterID)
	if err != nil {
		return nil, fmt.Errorf("postgres: failed to list paragraphs: %w", err)
	}
	defer rows.Close()

	paragraphs := []*Paragraph{}
	for rows.Next() {
		var paragraph Paragraph
		if err := rows.Scan(&paragraph.ID, &paragraph.ChapterID, &paragraph.Number, &paragraph.Content, &paragraph.CreatedAt); err != nil {
			return nil, fmt.Errorf("postgres: failed to scan paragraph: %w", err)
		}
		paragraphs = append(paragraphs, &paragraph)
	}

	return paragraphs, rows.Err()
}

// # Sentence Repository Implementation

func (repository *sentenceRepository) DeleteByParagraph(ctx context.Context, paragraphID string) error {
	query := fmt.Sprintf(`DELETE FROM %s WHERE %s = $1`, schema.CoreSentence.Table, schema.CoreSentence.ParagraphID)

	if _, err := postgres.Executor(ctx, repository.pool).Exec(ctx, query, paragraphID); err != nil {
		return fmt.Errorf("postgres: failed to clear sentences: %w", err)
	}
	return nil
}

func (repository *sentenceRepository) Create(ctx context.Context, sentence *Sentence) error {
	query := fmt.Sprintf(`
		INSERT INTO %s (%s, %s, %s, %s)
		VALUES ($1, $2, $3, $4)
		RETURNING %s
	`,
		schema.CoreSentence.Table,
		schema.CoreSentence.ID, schema.CoreSentence.ParagraphID, schema.CoreSentence.SentenceNumber, schema.CoreSentence.Content,
		schema.CoreSentence.CreatedAt,
	)

	err := postgres.Executor(ctx, repository.pool).QueryRow(ctx, query,
		sentence.ID, sentence.ParagraphID, sentence.Number, sentence.Content,
	).Scan(&sentence.CreatedAt)

	return dberr.Wrap(err, "create_sentence")
}

func (repository *sentenceRepository) ListByParagraph(ctx context.Context, paragraphID string) ([]*Sentence, error) {
	query := fmt.Sprintf(`
		SELECT %s, %s, %s, %s, %s
		FROM %s
		WHERE %s = $1
		ORDER BY %s ASC
	`,
		schema.CoreSentence.ID, schema.CoreSentence.ParagraphID, schema.CoreSentence.SentenceNumber,
		schema.CoreSentence.Content, schema.CoreSentence.CreatedAt,
		schema.CoreSentence.Table,
		schema.CoreSentence.ParagraphID,
		schema.CoreSentence.SentenceNumber,
	)

	return repository.query(ctx, query, paragraphID)
}

func (repository *sentenceRepository) ListByChapter(ctx context.Context, chapterID string) ([]*Sentence, error) {
	query := fmt.Sprintf(`
		SELECT s.%s, s.%s, s.%s, s.%s, s.%s
		FROM %s s
		JOIN %s p ON s.%s = p.%s
		WHERE p.%s = $1
		ORDER BY p.%s ASC, s.%s ASC
	`,
		schema.CoreSentence.ID, schema.CoreSentence.ParagraphID, schema.CoreSentence.SentenceNumber,
		schema.CoreSentence.Content, schema.CoreSentence.CreatedAt,
		schema.CoreSentence.Table,
		schema.CoreParagraph.Table, schema.CoreSentence.ParagraphID, schema.CoreParagraph.ID,
		schema.CoreParagraph.ChapterID,
		schema.CoreParagraph.ParagraphNumber, schema.CoreSentence.SentenceNumber,
	)

	return repository.query(ctx, query, chapterID)
}

func (repository *sentenceRepository) query(ctx context.Context, query string, argument string) ([]*Sentence, error) {
	rows, err := postgres.Executor(ctx, repository.pool).Query(ctx, query, argument)
	if err != nil {
		return nil, fmt.Errorf("postgres: failed to list sentences: %w", err)
	}
	defer rows.Close()

	sentences := []*Sentence{}
	for rows.Next() {
		var sentence Sentence
		if err := rows.Scan(&sentence.ID, &sentence.ParagraphID, &sentence.Number, &sentence.Content, &sentence.CreatedAt); err != nil {
			return nil, fmt.Errorf("postgres: failed to scan sentence: %w", err)
		}
		sentences = append(sentences, &sentence)
	}

	return sentences, rows.Err()
}
