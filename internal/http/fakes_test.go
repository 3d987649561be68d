package http

import (
	"context"
	"strings"

	"smartlibrary/internal/entity"
	"smartlibrary/internal/usecase"
)

// In-memory repository fakes shared by the handler tests.

type fakeUserRepo struct {
	users map[string]entity.User // keyed by username
	err   error
}

func newFakeUserRepo(users ...entity.User) *fakeUserRepo {
	r := &fakeUserRepo{users: make(map[string]entity.User)}
	for _, u := range users {
		r.users[u.Username] = u
	}
	return r
}

func (r *fakeUserRepo) Create(_ context.Context, u *entity.User) error {
	if r.err != nil {
		return r.err
	}
	if _, exists := r.users[u.Username]; exists {
		return usecase.ErrAlreadyExists
	}
	u.ID = "user-" + u.Username
	r.users[u.Username] = *u
	return nil
}

func (r *fakeUserRepo) GetByUsername(_ context.Context, username string) (entity.User, error) {
	if r.err != nil {
		return entity.User{}, r.err
	}
	u, ok := r.users[username]
	if !ok {
		return entity.User{}, usecase.ErrNotFound
	}
	return u, nil
}

func (r *fakeUserRepo) GetByID(_ context.Context, id string) (entity.User, error) {
	if r.err != nil {
		return entity.User{}, r.err
	}
	for _, u := range r.users {
		if u.ID == id {
			return u, nil
		}
	}
	return entity.User{}, usecase.ErrNotFound
}

func (r *fakeUserRepo) List(context.Context) ([]entity.User, error) {
	if r.err != nil {
		return nil, r.err
	}
	var out []entity.User
	for _, u := range r.users {
		out = append(out, u)
	}
	return out, nil
}

func (r *fakeUserRepo) Delete(_ context.Context, id string) error {
	if r.err != nil {
		return r.err
	}
	for name, u := range r.users {
		if u.ID == id {
			delete(r.users, name)
			return nil
		}
	}
	return usecase.ErrNotFound
}

type fakeBookRepo struct {
	books []entity.Book
	err   error
}

func (r *fakeBookRepo) List(_ context.Context, p usecase.ListParams) ([]entity.Book, int, error) {
	if r.err != nil {
		return nil, 0, r.err
	}
	return r.books, len(r.books), nil
}

func (r *fakeBookRepo) GetByID(_ context.Context, id string) (entity.Book, error) {
	if r.err != nil {
		return entity.Book{}, r.err
	}
	for _, b := range r.books {
		if b.ID == id {
			return b, nil
		}
	}
	return entity.Book{}, usecase.ErrNotFound
}

func (r *fakeBookRepo) Create(_ context.Context, b *entity.Book) error {
	if r.err != nil {
		return r.err
	}
	b.ID = "book-new"
	r.books = append(r.books, *b)
	return nil
}

func (r *fakeBookRepo) Update(_ context.Context, b *entity.Book) error {
	if r.err != nil {
		return r.err
	}
	for i, existing := range r.books {
		if existing.ID == b.ID {
			r.books[i] = *b
			return nil
		}
	}
	return usecase.ErrNotFound
}

func (r *fakeBookRepo) UpdateQuantity(_ context.Context, id string, quantity int) error {
	if r.err != nil {
		return r.err
	}
	for i, b := range r.books {
		if b.ID == id {
			r.books[i].Quantity = quantity
			return nil
		}
	}
	return usecase.ErrNotFound
}

func (r *fakeBookRepo) Delete(_ context.Context, id string) error {
	if r.err != nil {
		return r.err
	}
	for i, b := range r.books {
		if b.ID == id {
			r.books = append(r.books[:i], r.books[i+1:]...)
			return nil
		}
	}
	return usecase.ErrNotFound
}

func (r *fakeBookRepo) Search(_ context.Context, term string) ([]entity.Book, error) {
	if r.err != nil {
		return nil, r.err
	}
	var out []entity.Book
	for _, b := range r.books {
		if b.Quantity > 0 && strings.Contains(strings.ToLower(b.Title), strings.ToLower(term)) {
			out = append(out, b)
		}
	}
	return out, nil
}

// Available satisfies the catalog view the book handler needs.
func (r *fakeBookRepo) Available(context.Context) ([]entity.Book, error) {
	if r.err != nil {
		return nil, r.err
	}
	var out []entity.Book
	for _, b := range r.books {
		if b.Quantity > 0 {
			out = append(out, b)
		}
	}
	return out, nil
}

func (r *fakeBookRepo) ByYear(context.Context, int) ([]entity.Book, error) { return nil, r.err }

func (r *fakeBookRepo) ByYearBetween(context.Context, int, int) ([]entity.Book, error) {
	return nil, r.err
}

func (r *fakeBookRepo) ByTitleContains(ctx context.Context, title string) ([]entity.Book, error) {
	return r.Search(ctx, title)
}

func (r *fakeBookRepo) ByAuthorContains(context.Context, string) ([]entity.Book, error) {
	return nil, r.err
}

func (r *fakeBookRepo) ByGenreContains(context.Context, string) ([]entity.Book, error) {
	return nil, r.err
}

func (r *fakeBookRepo) ByDescriptionContains(_ context.Context, keyword string) ([]entity.Book, error) {
	if r.err != nil {
		return nil, r.err
	}
	var out []entity.Book
	for _, b := range r.books {
		if b.Quantity > 0 && strings.Contains(strings.ToLower(b.Description), strings.ToLower(keyword)) {
			out = append(out, b)
		}
	}
	return out, nil
}

func (r *fakeBookRepo) ByTitleAndDescriptionContains(context.Context, string, string) ([]entity.Book, error) {
	return nil, r.err
}

type fakeBookingRepo struct {
	bookings []entity.Booking
	borrowed entity.Booking
	err      error
}

func (r *fakeBookingRepo) Borrow(_ context.Context, userID, bookID, notes string) (entity.Booking, error) {
	if r.err != nil {
		return entity.Booking{}, r.err
	}
	r.borrowed = entity.Booking{
		ID:     "booking-1",
		UserID: userID,
		BookID: bookID,
		Status: entity.BookingStatusActive,
		Notes:  notes,
	}
	return r.borrowed, nil
}

func (r *fakeBookingRepo) Return(_ context.Context, bookingID, userID string) (entity.Booking, error) {
	if r.err != nil {
		return entity.Booking{}, r.err
	}
	for _, bk := range r.bookings {
		if bk.ID == bookingID && (userID == "" || bk.UserID == userID) {
			bk.Status = entity.BookingStatusReturned
			return bk, nil
		}
	}
	return entity.Booking{}, usecase.ErrNotFound
}

func (r *fakeBookingRepo) ListByUser(_ context.Context, userID string, activeOnly bool) ([]entity.Booking, error) {
	if r.err != nil {
		return nil, r.err
	}
	var out []entity.Booking
	for _, bk := range r.bookings {
		if bk.UserID != userID {
			continue
		}
		if activeOnly && bk.Status != entity.BookingStatusActive {
			continue
		}
		out = append(out, bk)
	}
	return out, nil
}

func (r *fakeBookingRepo) ListAll(context.Context) ([]entity.Booking, error) {
	if r.err != nil {
		return nil, r.err
	}
	return r.bookings, nil
}
