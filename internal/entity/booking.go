package entity

import "time"

const (
	BookingStatusActive   = "ACTIVE"
	BookingStatusReturned = "RETURNED"
)

// Booking records a borrowed copy of a book.
type Booking struct {
	ID          string     `json:"id"`
	UserID      string     `json:"user_id"`
	BookID      string     `json:"book_id"`
	BookTitle   string     `json:"book_title,omitempty"`
	BookAuthor  string     `json:"book_author,omitempty"`
	Status      string     `json:"status"`
	Notes       string     `json:"notes,omitempty"`
	BookingDate time.Time  `json:"booking_date"`
	ReturnDate  *time.Time `json:"return_date,omitempty"`
}
