package author

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/taibuivan/folio/internal/platform/apperr"
	"github.com/taibuivan/folio/internal/platform/database/schema"
	"github.com/taibuivan/folio/internal/platform/dberr"
)

type PostgresRepository struct {
	db *pgxpool.Pool
}

func NewPostgresRepository(db *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (repository *PostgresRepository) ListAuthors(ctx context.Context, f Filter, limit, offset int) ([]*Author, int, error) {
	query := fmt.Sprintf(`
		SELECT %s, %s, %s, %s, %s
		FROM %s
		WHERE TRUE
	`,
		schema.CoreAuthor.ID, schema.CoreAuthor.FirstName, schema.CoreAuthor.LastName,
		schema.CoreAuthor.CreatedAt, schema.CoreAuthor.UpdatedAt,
		schema.CoreAuthor.Table,
	)
	countQuery := fmt.Sprintf(`SELECT count(*) FROM %s WHERE TRUE`, schema.CoreAuthor.Table)

	args := []any{}
	countArgs := []any{}

	if f.Query != "" {
		searchTerm := "%" + f.Query + "%"
		filter := fmt.Sprintf(` AND (%s ILIKE $1 OR %s ILIKE $1)`, schema.CoreAuthor.FirstName, schema.CoreAuthor.LastName)
		query += filter
		countQuery += filter
		args = append(args, searchTerm)
		countArgs = append(countArgs, searchTerm)
	}

	query += fmt.Sprintf(" ORDER BY %s ASC, %s ASC LIMIT $", schema.CoreAuthor.LastName, schema.CoreAuthor.FirstName) + itos(len(args)+1) + ` OFFSET $` + itos(len(args)+2)
	args = append(args, limit, offset)

	var total int
	if err := repository.db.QueryRow(ctx, countQuery, countArgs...).Scan(&total); err != nil {
		return nil, 0, dberr.Wrap(err, "count_authors")
	}

	rows, err := repository.db.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, dberr.Wrap(err, "list_authors")
	}
	defer rows.Close()

	authors := []*Author{}
	for rows.Next() {
		a := &Author{}
		if err := rows.Scan(&a.ID, &a.FirstName, &a.LastName, &a.CreatedAt, &a.UpdatedAt); err != nil {
			return nil, 0, dberr.Wrap(err, "scan_author")
		}
		authors = append(authors, a)
	}

	return authors, total, rows.Err()
}

func (repository *PostgresRepository) GetAuthor(ctx context.Context, id string) (*Author, error) {
	query := fmt.Sprintf(`
		SELECT %s, %s, %s, %s, %s
		FROM %s
		WHERE %s = $1
	`,
		schema.CoreAuthor.ID, schema.CoreAuthor.FirstName, schema.CoreAuthor.LastName,
		schema.CoreAuthor.CreatedAt, schema.CoreAuthor.UpdatedAt,
		schema.CoreAuthor.Table, schema.CoreAuthor.ID,
	)
	a := &Author{}

	err := repository.db.QueryRow(ctx, query, id).Scan(&a.ID, &a.FirstName, &a.LastName, &a.CreatedAt, &a.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperr.NotFound("Author")
		}
		return nil, dberr.Wrap(err, "get_author")
	}

	return a, nil
}

func (repository *PostgresRepository) CreateAuthor(ctx context.Context, a *Author) error {
	query := fmt.Sprintf(`
		INSERT INTO %s (%s, %s, %s, %s, %s)
		VALUES ($1, $2, $3, NOW(), NOW())
		RETURNING %s, %s
	`,
		schema.CoreAuthor.Table, schema.CoreAuthor.ID, schema.CoreAuthor.FirstName, schema.CoreAuthor.LastName,
		schema.CoreAuthor.CreatedAt, schema.CoreAuthor.UpdatedAt,
		schema.CoreAuthor.CreatedAt, schema.CoreAuthor.UpdatedAt,
	)

	err := repository.db.QueryRow(ctx, query, a.ID, a.FirstName, a.LastName).Scan(&a.CreatedAt, &a.UpdatedAt)
	return dberr.Wrap(err, "create_author")
}

func (repository *PostgresRepository) DeleteAuthor(ctx context.Context, id string) error {
	query := fmt.Sprintf(`DELETE FROM %s WHERE %s = $1`, schema.CoreAuthor.Table, schema.CoreAuthor.ID)

	cmd, err := repository.db.Exec(ctx, query, id)
	if err != nil {
		return dberr.Wrap(err, "delete_author")
	}

	if cmd.RowsAffected() == 0 {
		return apperr.NotFound("Author")
	}
	return nil
}

func itos(i int) string {
	return strconv.Itoa(i)
}
