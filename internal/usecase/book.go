package usecase

import (
	"context"

	"smartlibrary/internal/entity"
)

// ListParams filters and paginates the admin/user book listings.
type ListParams struct {
	Genre  string
	Q      string
	Limit  int
	Offset int
}

// BookRepository is the write-capable contract for the books table. The
// search executor consumes the narrower search.Catalog view instead.
type BookRepository interface {
	List(ctx context.Context, p ListParams) ([]entity.Book, int, error)
	GetByID(ctx context.Context, id string) (entity.Book, error)
	Create(ctx context.Context, b *entity.Book) error
	Update(ctx context.Context, b *entity.Book) error
	UpdateQuantity(ctx context.Context, id string, quantity int) error
	Delete(ctx context.Context, id string) error
	Search(ctx context.Context, term string) ([]entity.Book, error)
}
