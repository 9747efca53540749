package author

import (
	"context"
	"log/slog"

	"github.com/taibuivan/folio/internal/platform/apperr"
	"github.com/taibuivan/folio/internal/platform/validate"
	"github.com/taibuivan/folio/pkg/identity"
)

const maxNameLength = 200

type Service struct {
	repo   Repository
	logger *slog.Logger
}

func NewService(repo Repository, logger *slog.Logger) *Service {
	return &Service{
		repo:   repo,
		logger: logger,
	}
}

func (service *Service) ListAuthors(ctx context.Context, filter Filter, limit, offset int) ([]*Author, int, error) {
	authors, total, err := service.repo.ListAuthors(ctx, filter, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	for _, author := range authors {
		author.DN = identity.AuthorDN(author.LastName, author.FirstName)
	}
	return authors, total, nil
}

func (service *Service) GetAuthor(ctx context.Context, id string) (*Author, error) {
	author, err := service.repo.GetAuthor(ctx, id)
	if err != nil {
		return nil, err
	}
	author.DN = identity.AuthorDN(author.LastName, author.FirstName)
	return author, nil
}

// CreateAuthor derives the author's id from its DN and stores it. An author
// with the same first and last name already present is a CONFLICT.
func (service *Service) CreateAuthor(ctx context.Context, author *Author) error {
	validator := &validate.Validator{}
	validator.Required(FieldFirstName, author.FirstName).MaxLen(FieldFirstName, author.FirstName, maxNameLength)
	validator.Required(FieldLastName, author.LastName).MaxLen(FieldLastName, author.LastName, maxNameLength)
	if err := validator.Err(); err != nil {
		return err
	}

	author.DN = identity.AuthorDN(author.LastName, author.FirstName)
	author.ID = identity.Deterministic(author.DN).String()

	if err := service.repo.CreateAuthor(ctx, author); err != nil {
		if apperr.HasCode(err, apperr.CodeConflict) {
			return apperr.Conflict("An author with this name already exists")
		}
		return err
	}

	service.logger.Info("author_created",
		slog.String("author_id", author.ID),
		slog.String("dn", author.DN),
	)
	return nil
}

func (service *Service) DeleteAuthor(ctx context.Context, id string) error {
	if err := service.repo.DeleteAuthor(ctx, id); err != nil {
		return err
	}

	service.logger.Warn("author_deleted", slog.String("author_id", id))
	return nil
}
