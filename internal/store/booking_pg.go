package store

import (
	"context"
	"errors"

	"smartlibrary/internal/entity"
	"smartlibrary/internal/usecase"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const bookingColumns = `bk.id, bk.user_id, bk.book_id, b.title, b.author, bk.status,
	COALESCE(bk.notes, ''), bk.booking_date, bk.return_date`

type BookingPG struct {
	db *pgxpool.Pool
}

func NewBookingPG(db *pgxpool.Pool) *BookingPG {
	return &BookingPG{db: db}
}

// Borrow decrements the book's quantity and records an active booking in one
// transaction. The conditional UPDATE is the guard: when quantity is already
// zero no row changes and the caller gets ErrUnavailable.
func (r *BookingPG) Borrow(ctx context.Context, userID, bookID, notes string) (entity.Booking, error) {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return entity.Booking{}, err
	}
	defer tx.Rollback(ctx)

	var title, author string
	err = tx.QueryRow(ctx,
		"UPDATE books SET quantity = quantity - 1, updated_at = NOW() WHERE id = $1 AND quantity > 0 RETURNING title, author",
		bookID,
	).Scan(&title, &author)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			var exists bool
			if err := tx.QueryRow(ctx, "SELECT EXISTS(SELECT 1 FROM books WHERE id = $1)", bookID).Scan(&exists); err != nil {
				return entity.Booking{}, err
			}
			if !exists {
				return entity.Booking{}, usecase.ErrNotFound
			}
			return entity.Booking{}, usecase.ErrUnavailable
		}
		return entity.Booking{}, err
	}

	bk := entity.Booking{
		UserID:     userID,
		BookID:     bookID,
		BookTitle:  title,
		BookAuthor: author,
		Status:     entity.BookingStatusActive,
		Notes:      notes,
	}
	err = tx.QueryRow(ctx, `
	INSERT INTO bookings (id, user_id, book_id, status, notes)
	VALUES (gen_random_uuid(), $1, $2, $3, NULLIF($4, ''))
	RETURNING id, booking_date`,
		userID, bookID, bk.Status, notes,
	).Scan(&bk.ID, &bk.BookingDate)
	if err != nil {
		return entity.Booking{}, err
	}

	if err := tx.Commit(ctx); err != nil {
		return entity.Booking{}, err
	}
	return bk, nil
}

// Return closes an active booking and puts the copy back on the shelf.
// When userID is empty the lookup skips the ownership check (admin path).
func (r *BookingPG) Return(ctx context.Context, bookingID, userID string) (entity.Booking, error) {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return entity.Booking{}, err
	}
	defer tx.Rollback(ctx)

	query := `
	UPDATE bookings SET status = $2, return_date = NOW()
	WHERE id = $1 AND status = $3`
	args := []any{bookingID, entity.BookingStatusReturned, entity.BookingStatusActive}
	if userID != "" {
		query += " AND user_id = $4"
		args = append(args, userID)
	}
	query += " RETURNING user_id, book_id, COALESCE(notes, ''), booking_date, return_date"

	bk := entity.Booking{ID: bookingID, Status: entity.BookingStatusReturned}
	err = tx.QueryRow(ctx, query, args...).Scan(
		&bk.UserID, &bk.BookID, &bk.Notes, &bk.BookingDate, &bk.ReturnDate,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return entity.Booking{}, usecase.ErrNotFound
		}
		return entity.Booking{}, err
	}

	err = tx.QueryRow(ctx,
		"UPDATE books SET quantity = quantity + 1, updated_at = NOW() WHERE id = $1 RETURNING title, author",
		bk.BookID,
	).Scan(&bk.BookTitle, &bk.BookAuthor)
	if err != nil {
		return entity.Booking{}, err
	}

	if err := tx.Commit(ctx); err != nil {
		return entity.Booking{}, err
	}
	return bk, nil
}

func (r *BookingPG) ListByUser(ctx context.Context, userID string, activeOnly bool) ([]entity.Booking, error) {
	query := `
	SELECT ` + bookingColumns + `
	FROM bookings bk JOIN books b ON b.id = bk.book_id
	WHERE bk.user_id = $1`
	if activeOnly {
		query += " AND bk.status = '" + entity.BookingStatusActive + "'"
	}
	query += " ORDER BY bk.booking_date DESC"
	return r.queryBookings(ctx, query, userID)
}

func (r *BookingPG) ListAll(ctx context.Context) ([]entity.Booking, error) {
	query := `
	SELECT ` + bookingColumns + `
	FROM bookings bk JOIN books b ON b.id = bk.book_id
	ORDER BY bk.booking_date DESC`
	return r.queryBookings(ctx, query)
}

func (r *BookingPG) queryBookings(ctx context.Context, query string, args ...any) ([]entity.Booking, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var bookings []entity.Booking
	for rows.Next() {
		var bk entity.Booking
		if err := rows.Scan(
			&bk.ID, &bk.UserID, &bk.BookID, &bk.BookTitle, &bk.BookAuthor,
			&bk.Status, &bk.Notes, &bk.BookingDate, &bk.ReturnDate,
		); err != nil {
			return nil, err
		}
		bookings = append(bookings, bk)
	}
	return bookings, rows.Err()
}
