package http

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"smartlibrary/internal/entity"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testBookRepo() *fakeBookRepo {
	return &fakeBookRepo{books: []entity.Book{
		{ID: "b1", Title: "Gitanjali", Author: "Rabindranath Tagore", Quantity: 3},
		{ID: "b2", Title: "Gora", Author: "Rabindranath Tagore", Quantity: 0},
		{ID: "b3", Title: "Himu", Author: "Humayun Ahmed", Quantity: 5},
	}}
}

func TestBookHandler_ListAvailable(t *testing.T) {
	repo := testBookRepo()
	handler := NewBookHandler(repo, repo)

	req := httptest.NewRequest(http.MethodGet, "/api/user/books/available", nil)
	rec := httptest.NewRecorder()
	handler.ListAvailable(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	data := decodeBody(t, rec)["data"].([]any)
	assert.Len(t, data, 2) // Gora is out of stock
}

func TestBookHandler_SearchBooks(t *testing.T) {
	repo := testBookRepo()
	handler := NewBookHandler(repo, repo)

	req := httptest.NewRequest(http.MethodGet, "/api/user/books/search?term=himu", nil)
	rec := httptest.NewRecorder()
	handler.SearchBooks(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	data := decodeBody(t, rec)["data"].([]any)
	require.Len(t, data, 1)

	// Missing term is a client error.
	req = httptest.NewRequest(http.MethodGet, "/api/user/books/search", nil)
	rec = httptest.NewRecorder()
	handler.SearchBooks(rec, req)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestBookHandler_GetByID(t *testing.T) {
	repo := testBookRepo()
	handler := NewBookHandler(repo, repo)
	get := handler.GetByID("/api/user/books/")

	req := httptest.NewRequest(http.MethodGet, "/api/user/books/b1", nil)
	rec := httptest.NewRecorder()
	get(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)

	req = httptest.NewRequest(http.MethodGet, "/api/user/books/missing", nil)
	rec = httptest.NewRecorder()
	get(rec, req)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestBookHandler_Create(t *testing.T) {
	repo := testBookRepo()
	handler := NewBookHandler(repo, repo)

	rec := postJSON(t, handler.Create, "/api/admin/books", map[string]any{
		"title":         "Sonali Kabin",
		"author":        "Al Mahmud",
		"authorBengali": "আল মাহমুদ",
		"publishedYear": 1973,
		"quantity":      3,
		"genre":         "Poetry",
	})

	require.Equal(t, http.StatusCreated, rec.Code)
	assert.Len(t, repo.books, 4)
}

func TestBookHandler_Create_Invalid(t *testing.T) {
	repo := testBookRepo()
	handler := NewBookHandler(repo, repo)

	rec := postJSON(t, handler.Create, "/api/admin/books", map[string]any{
		"author": "No Title",
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = postJSON(t, handler.Create, "/api/admin/books", map[string]any{
		"title":    "Bad ISBN",
		"author":   "Someone",
		"isbn":     "not-an-isbn",
		"quantity": 1,
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestBookHandler_UpdateQuantity(t *testing.T) {
	repo := testBookRepo()
	handler := NewBookHandler(repo, repo)

	rec := postJSON(t, func(w http.ResponseWriter, r *http.Request) {
		handler.UpdateQuantity(w, r, "b2")
	}, "/api/admin/books/b2/quantity", map[string]any{"quantity": 7})

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 7, repo.books[1].Quantity)
}

func TestBookHandler_Delete(t *testing.T) {
	repo := testBookRepo()
	handler := NewBookHandler(repo, repo)

	req := httptest.NewRequest(http.MethodDelete, "/api/admin/books/b1", nil)
	rec := httptest.NewRecorder()
	handler.Delete(rec, req, "b1")
	require.Equal(t, http.StatusNoContent, rec.Code)
	assert.Len(t, repo.books, 2)

	rec = httptest.NewRecorder()
	handler.Delete(rec, req, "missing")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}
