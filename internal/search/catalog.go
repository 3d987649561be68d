package search

import (
	"context"

	"smartlibrary/internal/entity"
)

// Catalog is the read-only query surface the executor needs. Every operation
// returns available books only (quantity > 0); substring matches are
// case-insensitive and Unicode aware. Author matching covers both the Latin
// and the Bengali author columns.
type Catalog interface {
	Available(ctx context.Context) ([]entity.Book, error)
	ByYear(ctx context.Context, year int) ([]entity.Book, error)
	ByYearBetween(ctx context.Context, from, to int) ([]entity.Book, error)
	ByTitleContains(ctx context.Context, title string) ([]entity.Book, error)
	ByAuthorContains(ctx context.Context, author string) ([]entity.Book, error)
	ByGenreContains(ctx context.Context, genre string) ([]entity.Book, error)
	ByDescriptionContains(ctx context.Context, keyword string) ([]entity.Book, error)
	ByTitleAndDescriptionContains(ctx context.Context, title, keyword string) ([]entity.Book, error)
}
