package http

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"smartlibrary/internal/httpx"
	"smartlibrary/internal/usecase"
)

type BookingHandler struct {
	repo usecase.BookingRepository
}

func NewBookingHandler(repo usecase.BookingRepository) *BookingHandler {
	return &BookingHandler{repo: repo}
}

type borrowReq struct {
	BookID string `json:"bookId" validate:"required"`
	Notes  string `json:"notes" validate:"max=500"`
}

func (h *BookingHandler) Borrow(w http.ResponseWriter, r *http.Request) {
	var req borrowReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpx.JSONError(w, http.StatusBadRequest, "BAD_REQUEST", "Invalid request body", nil)
		return
	}
	if details := ValidateStruct(req); len(details) > 0 {
		httpx.JSONError(w, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid input", details)
		return
	}

	booking, err := h.repo.Borrow(r.Context(), httpx.UserIDFrom(r), req.BookID, req.Notes)
	if err != nil {
		switch {
		case errors.Is(err, usecase.ErrNotFound):
			httpx.JSONError(w, http.StatusNotFound, "NOT_FOUND", "Book not found", nil)
		case errors.Is(err, usecase.ErrUnavailable):
			httpx.JSONError(w, http.StatusConflict, "UNAVAILABLE", "No copies available", nil)
		default:
			httpx.JSONError(w, http.StatusInternalServerError, "INTERNAL_ERROR", "Internal server error", nil)
		}
		return
	}
	httpx.JSONSuccessCreated(w, booking)
}

// Return closes one of the caller's own active bookings.
func (h *BookingHandler) Return(w http.ResponseWriter, r *http.Request, bookingID string) {
	h.doReturn(w, r, bookingID, httpx.UserIDFrom(r))
}

// ReturnAny is the admin variant: no ownership check.
func (h *BookingHandler) ReturnAny(w http.ResponseWriter, r *http.Request, bookingID string) {
	h.doReturn(w, r, bookingID, "")
}

func (h *BookingHandler) doReturn(w http.ResponseWriter, r *http.Request, bookingID, userID string) {
	booking, err := h.repo.Return(r.Context(), bookingID, userID)
	if err != nil {
		if errors.Is(err, usecase.ErrNotFound) {
			httpx.JSONError(w, http.StatusNotFound, "NOT_FOUND", "Active booking not found", nil)
			return
		}
		httpx.JSONError(w, http.StatusInternalServerError, "INTERNAL_ERROR", "Internal server error", nil)
		return
	}
	httpx.JSONSuccess(w, booking, nil)
}

func (h *BookingHandler) ListMine(w http.ResponseWriter, r *http.Request) {
	activeOnly := strings.HasSuffix(r.URL.Path, "/active")
	bookings, err := h.repo.ListByUser(r.Context(), httpx.UserIDFrom(r), activeOnly)
	if err != nil {
		httpx.JSONError(w, http.StatusInternalServerError, "INTERNAL_ERROR", "Internal server error", nil)
		return
	}
	httpx.JSONSuccess(w, bookings, nil)
}

func (h *BookingHandler) ListAll(w http.ResponseWriter, r *http.Request) {
	bookings, err := h.repo.ListAll(r.Context())
	if err != nil {
		httpx.JSONError(w, http.StatusInternalServerError, "INTERNAL_ERROR", "Internal server error", nil)
		return
	}
	httpx.JSONSuccess(w, bookings, nil)
}
