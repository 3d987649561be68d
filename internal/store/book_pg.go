package store

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"smartlibrary/internal/entity"
	"smartlibrary/internal/usecase"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const bookColumns = `id, title, author, COALESCE(author_bengali, ''), published_year, quantity,
	COALESCE(isbn, ''), COALESCE(genre, ''), COALESCE(description, ''), created_at, updated_at`

// BookPG implements usecase.BookRepository and search.Catalog on Postgres.
// Substring operators use LOWER(...) LIKE so matching stays case-insensitive
// and byte-exact for the Bengali columns regardless of collation.
type BookPG struct {
	db *pgxpool.Pool
}

func NewBookPG(db *pgxpool.Pool) *BookPG {
	return &BookPG{db: db}
}

func (r *BookPG) List(ctx context.Context, p usecase.ListParams) ([]entity.Book, int, error) {
	clauses := []string{"1=1"}
	args := []any{}
	argn := 1

	if p.Genre != "" {
		clauses = append(clauses, fmt.Sprintf("LOWER(genre) LIKE LOWER($%d)", argn))
		args = append(args, "%"+p.Genre+"%")
		argn++
	}
	if p.Q != "" {
		clauses = append(clauses, fmt.Sprintf(
			"(LOWER(title) LIKE LOWER($%d) OR LOWER(author) LIKE LOWER($%d) OR LOWER(COALESCE(author_bengali, '')) LIKE LOWER($%d) OR LOWER(COALESCE(genre, '')) LIKE LOWER($%d))",
			argn, argn+1, argn+2, argn+3))
		pattern := "%" + p.Q + "%"
		args = append(args, pattern, pattern, pattern, pattern)
		argn += 4
	}

	where := "WHERE " + strings.Join(clauses, " AND ")

	var total int
	countSQL := "SELECT COUNT(*) FROM books " + where
	if err := r.db.QueryRow(ctx, countSQL, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	dataSQL := fmt.Sprintf("SELECT %s FROM books %s ORDER BY title LIMIT $%d OFFSET $%d",
		bookColumns, where, argn, argn+1)
	args = append(args, p.Limit, p.Offset)

	books, err := r.queryBooks(ctx, dataSQL, args...)
	if err != nil {
		return nil, 0, err
	}
	return books, total, nil
}

func (r *BookPG) GetByID(ctx context.Context, id string) (entity.Book, error) {
	query := fmt.Sprintf("SELECT %s FROM books WHERE id = $1 LIMIT 1", bookColumns)
	var b entity.Book
	err := r.db.QueryRow(ctx, query, id).Scan(
		&b.ID, &b.Title, &b.Author, &b.AuthorBengali, &b.PublishedYear, &b.Quantity,
		&b.ISBN, &b.Genre, &b.Description, &b.CreatedAt, &b.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return entity.Book{}, usecase.ErrNotFound
		}
		return entity.Book{}, err
	}
	return b, nil
}

func (r *BookPG) Create(ctx context.Context, b *entity.Book) error {
	const query = `
	INSERT INTO books (id, title, author, author_bengali, published_year, quantity, isbn, genre, description)
	VALUES (gen_random_uuid(), $1, $2, NULLIF($3, ''), $4, $5, NULLIF($6, ''), NULLIF($7, ''), NULLIF($8, ''))
	RETURNING id, created_at, updated_at
	`
	return r.db.QueryRow(ctx, query,
		b.Title, b.Author, b.AuthorBengali, b.PublishedYear, b.Quantity, b.ISBN, b.Genre, b.Description,
	).Scan(&b.ID, &b.CreatedAt, &b.UpdatedAt)
}

func (r *BookPG) Update(ctx context.Context, b *entity.Book) error {
	const query = `
	UPDATE books
	SET title = $2, author = $3, author_bengali = NULLIF($4, ''), published_year = $5,
	    quantity = $6, isbn = NULLIF($7, ''), genre = NULLIF($8, ''),
	    description = NULLIF($9, ''), updated_at = NOW()
	WHERE id = $1
	RETURNING updated_at
	`
	err := r.db.QueryRow(ctx, query,
		b.ID, b.Title, b.Author, b.AuthorBengali, b.PublishedYear, b.Quantity, b.ISBN, b.Genre, b.Description,
	).Scan(&b.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return usecase.ErrNotFound
	}
	return err
}

func (r *BookPG) UpdateQuantity(ctx context.Context, id string, quantity int) error {
	tag, err := r.db.Exec(ctx,
		"UPDATE books SET quantity = $2, updated_at = NOW() WHERE id = $1", id, quantity)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return usecase.ErrNotFound
	}
	return nil
}

func (r *BookPG) Delete(ctx context.Context, id string) error {
	tag, err := r.db.Exec(ctx, "DELETE FROM books WHERE id = $1", id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return usecase.ErrNotFound
	}
	return nil
}

// Search is the broad one-term lookup backing GET /books/search.
func (r *BookPG) Search(ctx context.Context, term string) ([]entity.Book, error) {
	query := fmt.Sprintf(`
	SELECT %s FROM books
	WHERE quantity > 0 AND (
		LOWER(title) LIKE LOWER($1) OR
		LOWER(author) LIKE LOWER($1) OR
		LOWER(COALESCE(author_bengali, '')) LIKE LOWER($1) OR
		LOWER(COALESCE(genre, '')) LIKE LOWER($1))
	ORDER BY title`, bookColumns)
	return r.queryBooks(ctx, query, "%"+term+"%")
}

// --- search.Catalog ---

func (r *BookPG) Available(ctx context.Context) ([]entity.Book, error) {
	query := fmt.Sprintf("SELECT %s FROM books WHERE quantity > 0 ORDER BY id", bookColumns)
	return r.queryBooks(ctx, query)
}

func (r *BookPG) ByYear(ctx context.Context, year int) ([]entity.Book, error) {
	query := fmt.Sprintf("SELECT %s FROM books WHERE quantity > 0 AND published_year = $1 ORDER BY id", bookColumns)
	return r.queryBooks(ctx, query, year)
}

func (r *BookPG) ByYearBetween(ctx context.Context, from, to int) ([]entity.Book, error) {
	query := fmt.Sprintf("SELECT %s FROM books WHERE quantity > 0 AND published_year BETWEEN $1 AND $2 ORDER BY id", bookColumns)
	return r.queryBooks(ctx, query, from, to)
}

func (r *BookPG) ByTitleContains(ctx context.Context, title string) ([]entity.Book, error) {
	query := fmt.Sprintf("SELECT %s FROM books WHERE quantity > 0 AND LOWER(title) LIKE LOWER($1) ORDER BY id", bookColumns)
	return r.queryBooks(ctx, query, "%"+title+"%")
}

func (r *BookPG) ByAuthorContains(ctx context.Context, author string) ([]entity.Book, error) {
	query := fmt.Sprintf(`
	SELECT %s FROM books
	WHERE quantity > 0 AND (
		LOWER(author) LIKE LOWER($1) OR
		LOWER(COALESCE(author_bengali, '')) LIKE LOWER($1))
	ORDER BY id`, bookColumns)
	return r.queryBooks(ctx, query, "%"+author+"%")
}

func (r *BookPG) ByGenreContains(ctx context.Context, genre string) ([]entity.Book, error) {
	query := fmt.Sprintf("SELECT %s FROM books WHERE quantity > 0 AND LOWER(COALESCE(genre, '')) LIKE LOWER($1) ORDER BY id", bookColumns)
	return r.queryBooks(ctx, query, "%"+genre+"%")
}

func (r *BookPG) ByDescriptionContains(ctx context.Context, keyword string) ([]entity.Book, error) {
	query := fmt.Sprintf("SELECT %s FROM books WHERE quantity > 0 AND LOWER(COALESCE(description, '')) LIKE LOWER($1) ORDER BY id", bookColumns)
	return r.queryBooks(ctx, query, "%"+keyword+"%")
}

func (r *BookPG) ByTitleAndDescriptionContains(ctx context.Context, title, keyword string) ([]entity.Book, error) {
	query := fmt.Sprintf(`
	SELECT %s FROM books
	WHERE quantity > 0
	  AND LOWER(title) LIKE LOWER($1)
	  AND LOWER(COALESCE(description, '')) LIKE LOWER($2)
	ORDER BY id`, bookColumns)
	return r.queryBooks(ctx, query, "%"+title+"%", "%"+keyword+"%")
}

func (r *BookPG) queryBooks(ctx context.Context, query string, args ...any) ([]entity.Book, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var books []entity.Book
	for rows.Next() {
		var b entity.Book
		if err := rows.Scan(
			&b.ID, &b.Title, &b.Author, &b.AuthorBengali, &b.PublishedYear, &b.Quantity,
			&b.ISBN, &b.Genre, &b.Description, &b.CreatedAt, &b.UpdatedAt,
		); err != nil {
			return nil, err
		}
		books = append(books, b)
	}
	return books, rows.Err()
}
