package author

import "context"

type Repository interface {
	ListAuthors(ctx context.Context, f Filter, limit, offset int) ([]*Author, int, error)
	GetAuthor(ctx context.Context, id string) (*Author, error)
	CreateAuthor(ctx context.Context, a *Author) error
	DeleteAuthor(ctx context.Context, id string) error
}
