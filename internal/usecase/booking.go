package usecase

import (
	"context"

	"smartlibrary/internal/entity"
)

type BookingRepository interface {
	// Borrow atomically decrements the book's quantity and opens an
	// ACTIVE booking; it fails with ErrUnavailable when no copy is left.
	Borrow(ctx context.Context, userID, bookID, notes string) (entity.Booking, error)
	// Return marks the booking RETURNED and restores the copy. A non-empty
	// userID restricts the lookup to that user's own bookings.
	Return(ctx context.Context, bookingID, userID string) (entity.Booking, error)
	ListByUser(ctx context.Context, userID string, activeOnly bool) ([]entity.Booking, error)
	ListAll(ctx context.Context) ([]entity.Booking, error)
}
