package http

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"smartlibrary/internal/entity"
	"smartlibrary/internal/httpx"
	"smartlibrary/internal/search"
	"smartlibrary/internal/usecase"
)

type BookHandler struct {
	repo    usecase.BookRepository
	catalog search.Catalog
}

func NewBookHandler(repo usecase.BookRepository, catalog search.Catalog) *BookHandler {
	return &BookHandler{repo: repo, catalog: catalog}
}

// ListAvailable returns every book with at least one copy on the shelf.
func (h *BookHandler) ListAvailable(w http.ResponseWriter, r *http.Request) {
	books, err := h.catalog.Available(r.Context())
	if err != nil {
		httpx.JSONError(w, http.StatusInternalServerError, "INTERNAL_ERROR", "Internal server error", nil)
		return
	}
	httpx.JSONSuccess(w, books, nil)
}

// SearchBooks is the plain one-term lookup; the chat endpoint is the smart one.
func (h *BookHandler) SearchBooks(w http.ResponseWriter, r *http.Request) {
	term := strings.TrimSpace(r.URL.Query().Get("term"))
	if term == "" {
		httpx.JSONError(w, http.StatusBadRequest, "BAD_REQUEST", "Missing search term", nil)
		return
	}

	books, err := h.repo.Search(r.Context(), term)
	if err != nil {
		httpx.JSONError(w, http.StatusInternalServerError, "INTERNAL_ERROR", "Internal server error", nil)
		return
	}
	httpx.JSONSuccess(w, books, nil)
}

func (h *BookHandler) GetByID(prefix string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := strings.TrimPrefix(r.URL.Path, prefix)
		if id == "" || strings.Contains(id, "/") {
			http.NotFound(w, r)
			return
		}

		book, err := h.repo.GetByID(r.Context(), id)
		if err != nil {
			if errors.Is(err, usecase.ErrNotFound) {
				httpx.JSONError(w, http.StatusNotFound, "NOT_FOUND", "Book not found", nil)
				return
			}
			httpx.JSONError(w, http.StatusInternalServerError, "INTERNAL_ERROR", "Internal server error", nil)
			return
		}
		httpx.JSONSuccess(w, book, nil)
	}
}

// List is the admin view: full catalog with filters and pagination,
// out-of-stock rows included.
func (h *BookHandler) List(w http.ResponseWriter, r *http.Request) {
	params := usecase.ListParams{
		Genre: r.URL.Query().Get("genre"),
		Q:     r.URL.Query().Get("q"),
	}

	page, _ := strconv.Atoi(r.URL.Query().Get("page"))
	if page < 1 {
		page = 1
	}
	pageSize, _ := strconv.Atoi(r.URL.Query().Get("page_size"))
	if pageSize <= 0 || pageSize > 100 {
		pageSize = 20
	}
	params.Limit = pageSize
	params.Offset = (page - 1) * pageSize

	books, total, err := h.repo.List(r.Context(), params)
	if err != nil {
		httpx.JSONError(w, http.StatusInternalServerError, "INTERNAL_ERROR", "Internal server error", nil)
		return
	}

	httpx.JSONSuccess(w, books, map[string]any{
		"page":        page,
		"page_size":   pageSize,
		"total":       total,
		"total_pages": (total + pageSize - 1) / pageSize,
	})
}

type bookReq struct {
	Title         string `json:"title" validate:"required,max=255"`
	Author        string `json:"author" validate:"required,max=255"`
	AuthorBengali string `json:"authorBengali" validate:"max=255"`
	PublishedYear int    `json:"publishedYear" validate:"gte=0,lte=2100"`
	Quantity      int    `json:"quantity" validate:"gte=0"`
	ISBN          string `json:"isbn" validate:"omitempty,isbn"`
	Genre         string `json:"genre" validate:"max=100"`
	Description   string `json:"description"`
}

func (h *BookHandler) Create(w http.ResponseWriter, r *http.Request) {
	req, ok := decodeBookReq(w, r)
	if !ok {
		return
	}

	book := &entity.Book{
		Title:         req.Title,
		Author:        req.Author,
		AuthorBengali: req.AuthorBengali,
		PublishedYear: req.PublishedYear,
		Quantity:      req.Quantity,
		ISBN:          req.ISBN,
		Genre:         req.Genre,
		Description:   req.Description,
	}
	if err := h.repo.Create(r.Context(), book); err != nil {
		httpx.JSONError(w, http.StatusInternalServerError, "INTERNAL_ERROR", "Internal server error", nil)
		return
	}
	httpx.JSONSuccessCreated(w, book)
}

func (h *BookHandler) Update(prefix string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := strings.TrimPrefix(r.URL.Path, prefix)
		if id == "" || strings.Contains(id, "/") {
			http.NotFound(w, r)
			return
		}

		req, ok := decodeBookReq(w, r)
		if !ok {
			return
		}

		book := &entity.Book{
			ID:            id,
			Title:         req.Title,
			Author:        req.Author,
			AuthorBengali: req.AuthorBengali,
			PublishedYear: req.PublishedYear,
			Quantity:      req.Quantity,
			ISBN:          req.ISBN,
			Genre:         req.Genre,
			Description:   req.Description,
		}
		if err := h.repo.Update(r.Context(), book); err != nil {
			if errors.Is(err, usecase.ErrNotFound) {
				httpx.JSONError(w, http.StatusNotFound, "NOT_FOUND", "Book not found", nil)
				return
			}
			httpx.JSONError(w, http.StatusInternalServerError, "INTERNAL_ERROR", "Internal server error", nil)
			return
		}
		httpx.JSONSuccess(w, book, nil)
	}
}

type quantityReq struct {
	Quantity int `json:"quantity" validate:"gte=0"`
}

func (h *BookHandler) UpdateQuantity(w http.ResponseWriter, r *http.Request, id string) {
	var req quantityReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpx.JSONError(w, http.StatusBadRequest, "BAD_REQUEST", "Invalid request body", nil)
		return
	}
	if details := ValidateStruct(req); len(details) > 0 {
		httpx.JSONError(w, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid input", details)
		return
	}

	if err := h.repo.UpdateQuantity(r.Context(), id, req.Quantity); err != nil {
		if errors.Is(err, usecase.ErrNotFound) {
			httpx.JSONError(w, http.StatusNotFound, "NOT_FOUND", "Book not found", nil)
			return
		}
		httpx.JSONError(w, http.StatusInternalServerError, "INTERNAL_ERROR", "Internal server error", nil)
		return
	}
	httpx.JSONSuccess(w, map[string]any{"id": id, "quantity": req.Quantity}, nil)
}

func (h *BookHandler) Delete(w http.ResponseWriter, r *http.Request, id string) {
	if err := h.repo.Delete(r.Context(), id); err != nil {
		if errors.Is(err, usecase.ErrNotFound) {
			httpx.JSONError(w, http.StatusNotFound, "NOT_FOUND", "Book not found", nil)
			return
		}
		httpx.JSONError(w, http.StatusInternalServerError, "INTERNAL_ERROR", "Internal server error", nil)
		return
	}
	httpx.JSONSuccessNoContent(w)
}

func decodeBookReq(w http.ResponseWriter, r *http.Request) (bookReq, bool) {
	var req bookReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpx.JSONError(w, http.StatusBadRequest, "BAD_REQUEST", "Invalid request body", nil)
		return req, false
	}
	req.Title = strings.TrimSpace(req.Title)
	req.Author = strings.TrimSpace(req.Author)

	if details := ValidateStruct(req); len(details) > 0 {
		httpx.JSONError(w, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid input", details)
		return req, false
	}
	return req, true
}
