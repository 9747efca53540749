// Copyright (c) 2026 Folio. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package publisher

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
)

// PostgresRepository implements [Repository] using pgx.
type PostgresRepository struct {
	db *pgxpool.Pool
}

// NewPostgresRepository constructs a PostgreSQL backed publisher store.
func NewPostgresRepository(db *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// # Publisher Retrieval

/*
List returns a filtered and paginated list of publishers.

Description: Uses ILIKE for name search and COUNT(*) OVER() for total metadata.
*/
func (repository *PostgresRepository) List(ctx context.Context, filter Filter, limit, offset int) ([]*Publisher, int, error) {
	var queryBuilder strings.Builder
	queryBuilder.WriteString(fmt.Sprintf(`
		SELECT %s, %s, %s, %s, COUNT(*) OVER() as total
		FROM %s
		WHERE TRUE
	`,
		schema.CorePublisher.ID, schema.CorePublisher.Name,
		schema.CorePublisher.CreatedAt, schema.CorePublisher.UpdatedAt,
		schema.CorePublisher.Table,
	))

	args := []any{}
	argID := 1

	if filter.Query != "" {
		queryBuilder.WriteString(fmt.Sprintf(" AND %s ILIKE $%d", schema.CorePublisher.Name, argID))
		args = append(args, "%"+filter.Query+"%")
		argID++
	}

	queryBuilder.WriteString(fmt.Sprintf(" ORDER BY %s ASC LIMIT $%d OFFSET $%d", schema.CorePublisher.Name, argID, argID+1))
	args = append(args, limit, offset)

	rows, err := repository.db.Query(ctx, queryBuilder.String(), args...)
	if err != nil {
		return nil, 0, dberr.Wrap(err, "list_publishers")
	}
	defer rows.Close()

	publishers := []*Publisher{}
	var total int
	for rows.Next() {
		var publisher Publisher
		if err := rows.Scan(&publisher.ID, &publisher.Name, &publisher.CreatedAt, &publisher.UpdatedAt, &total); err != nil {
			return nil, 0, dberr.Wrap(err, "scan_publisher")
		}
		publishers = append(publishers, &publisher)
	}

	return publishers, total, rows.Err()
}

// FindByID returns a single publisher or apperr.NotFound.
func (repository *PostgresRepository) FindByID(ctx context.Context, id string) (*Publisher, error) {
	query := fmt.Sprintf(`SELECT %s, %s, %s, %s FROM %s WHERE %s = $1`,
		schema.CorePublisher.ID, schema.CorePublisher.Name,
		schema.CorePublisher.CreatedAt, schema.CorePublisher.UpdatedAt,
		schema.CorePublisher.Table, schema.CorePublisher.ID,
	)

	var publisher Publisher
	err := repository.db.QueryRow(ctx, query, id).Scan(&publisher.ID, &publisher.Name, &publisher.CreatedAt, &publisher.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperr.NotFound("Publisher")
		}
		return nil, dberr.Wrap(err, "find_publisher")
	}

	return &publisher, nil
}

// # Publisher Mutations

func (repository *PostgresRepository) Create(ctx context.Context, publisher *Publisher) error {
	query := fmt.Sprintf(`
		INSERT INTO %s (%s, %s)
		VALUES ($1, $2)
		RETURNING %s, %s
	`,
		schema.CorePublisher.Table, schema.CorePublisher.ID, schema.CorePublisher.Name,
		schema.CorePublisher.CreatedAt, schema.CorePublisher.UpdatedAt,
	)

	err := repository.db.QueryRow(ctx, query, publisher.ID, publisher.Name).Scan(&publisher.CreatedAt, &publisher.UpdatedAt)
	return dberr.Wrap(err, "create_publisher")
}

func (repository *PostgresRepository) Delete(ctx context.Context, id string) error {
	query := fmt.Sprintf(`DELETE FROM %s WHERE %s = $1`, schema.CorePublisher.Table, schema.CorePublisher.ID)

	cmd, err := repository.db.Exec(ctx, query, id)
	if err != nil {
		return dberr.Wrap(err, "delete_publisher")
	}

	if cmd.RowsAffected() == 0 {
		return apperr.NotFound("Publisher")
	}
	return nil
}
