package handlers

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MrSnakeDoc/bookshelf/internal/domain"
	"github.com/MrSnakeDoc/bookshelf/internal/httpserver/deps"
	"github.com/MrSnakeDoc/bookshelf/internal/logger"
)

// stubBooks returns canned results and records what it was called with.
type stubBooks struct {
	createID   string
	err        error
	book       domain.Book
	summaries  []domain.Summary
	lastChange time.Time

	gotPayload domain.Payload
	gotID      string
	gotFilters domain.Filters
}

func (s *stubBooks) Create(_ context.Context, p domain.Payload) (string, error) {
	s.gotPayload = p
	return s.createID, s.err
}

func (s *stubBooks) List(_ context.Context, f domain.Filters) []domain.Summary {
	s.gotFilters = f
	return s.summaries
}

func (s *stubBooks) GetByID(_ context.Context, id string) (domain.Book, error) {
	s.gotID = id
	return s.book, s.err
}

func (s *stubBooks) UpdateByID(_ context.Context, id string, p domain.Payload) error {
	s.gotID, s.gotPayload = id, p
	return s.err
}

func (s *stubBooks) DeleteByID(_ context.Context, id string) error {
	s.gotID = id
	return s.err
}

func (s *stubBooks) Count() int { return len(s.summaries) }

func (s *stubBooks) LastChange() time.Time { return s.lastChange }

func testDeps(svc deps.BookService) deps.Deps {
	return deps.Deps{Logger: logger.NewNop(), Books: svc}
}

func withBookID(r *http.Request, id string) *http.Request {
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add(BookIDParam, id)
	return r.WithContext(context.WithValue(r.Context(), chi.RouteCtxKey, rctx))
}

func decodeEnvelope(t *testing.T, rr *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &body), "body: %s", rr.Body.String())
	return body
}

func TestAddBook(t *testing.T) {
	tests := []struct {
		name       string
		body       string
		err        error
		wantCode   int
		wantStatus string
		wantMsg    string
	}{
		{
			name:       "created",
			body:       `{"name":"Go","pageCount":10,"readPage":1}`,
			wantCode:   http.StatusCreated,
			wantStatus: StatusSuccess,
			wantMsg:    "Book added successfully",
		},
		{
			name:       "missing name",
			body:       `{"pageCount":10}`,
			err:        &domain.ValidationError{Field: "name", Message: domain.MsgNameRequired},
			wantCode:   http.StatusBadRequest,
			wantStatus: StatusFail,
			wantMsg:    "Failed to add book. Please provide the book name",
		},
		{
			name:       "read page exceeds",
			body:       `{"name":"Go","pageCount":1,"readPage":10}`,
			err:        &domain.ValidationError{Field: "readPage", Message: domain.MsgReadPageExceeds},
			wantCode:   http.StatusBadRequest,
			wantStatus: StatusFail,
			wantMsg:    "Failed to add book. readPage cannot be greater than pageCount",
		},
		{
			name:       "malformed json",
			body:       `{"name":`,
			wantCode:   http.StatusBadRequest,
			wantStatus: StatusFail,
			wantMsg:    "Failed to add book. Invalid request payload",
		},
		{
			name:       "wrong field type",
			body:       `{"name":"Go","pageCount":"ten"}`,
			wantCode:   http.StatusBadRequest,
			wantStatus: StatusFail,
			wantMsg:    "Failed to add book. Invalid request payload",
		},
		{
			name:       "internal fault",
			body:       `{"name":"Go"}`,
			err:        fmt.Errorf("%w: lost", domain.ErrInternal),
			wantCode:   http.StatusInternalServerError,
			wantStatus: StatusError,
			wantMsg:    "Failed to add book",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := &stubBooks{createID: "new-id", err: tt.err}
			rr := httptest.NewRecorder()
			r := httptest.NewRequest(http.MethodPost, "/books", strings.NewReader(tt.body))

			AddBook(testDeps(svc))(rr, r)

			assert.Equal(t, tt.wantCode, rr.Code)
			body := decodeEnvelope(t, rr)
			assert.Equal(t, tt.wantStatus, body["status"])
			assert.Equal(t, tt.wantMsg, body["message"])

			if tt.wantCode == http.StatusCreated {
				data := body["data"].(map[string]interface{})
				assert.Equal(t, "new-id", data["bookId"])
				assert.Equal(t, "Go", svc.gotPayload.Name)
			}
		})
	}
}

func TestListBooksPassesFirstQueryValues(t *testing.T) {
	svc := &stubBooks{summaries: []domain.Summary{{ID: "1", Name: "Go", Publisher: "P"}}}
	rr := httptest.NewRecorder()
	r := httptest.NewRequest(http.MethodGet, "/books?name=go&reading=1&reading=0", nil)

	ListBooks(testDeps(svc))(rr, r)

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, domain.Filters{"name": "go", "reading": "1"}, svc.gotFilters)

	body := decodeEnvelope(t, rr)
	assert.Equal(t, StatusSuccess, body["status"])
	_, hasMessage := body["message"]
	assert.False(t, hasMessage)

	books := body["data"].(map[string]interface{})["books"].([]interface{})
	require.Len(t, books, 1)
	assert.Equal(t, map[string]interface{}{"id": "1", "name": "Go", "publisher": "P"}, books[0])
}

func TestListBooksEmptyIsArray(t *testing.T) {
	svc := &stubBooks{summaries: []domain.Summary{}}
	rr := httptest.NewRecorder()

	ListBooks(testDeps(svc))(rr, httptest.NewRequest(http.MethodGet, "/books", nil))

	assert.Contains(t, rr.Body.String(), `"books":[]`)
}

func TestGetBook(t *testing.T) {
	t.Run("found", func(t *testing.T) {
		svc := &stubBooks{book: domain.Book{ID: "abc", Name: "Go"}}
		rr := httptest.NewRecorder()

		GetBook(testDeps(svc))(rr, withBookID(httptest.NewRequest(http.MethodGet, "/books/abc", nil), "abc"))

		assert.Equal(t, http.StatusOK, rr.Code)
		assert.Equal(t, "abc", svc.gotID)
		book := decodeEnvelope(t, rr)["data"].(map[string]interface{})["book"].(map[string]interface{})
		assert.Equal(t, "abc", book["id"])
		assert.Contains(t, book, "insertedAt")
	})

	t.Run("not found", func(t *testing.T) {
		svc := &stubBooks{err: &domain.NotFoundError{ID: "abc"}}
		rr := httptest.NewRecorder()

		GetBook(testDeps(svc))(rr, withBookID(httptest.NewRequest(http.MethodGet, "/books/abc", nil), "abc"))

		assert.Equal(t, http.StatusNotFound, rr.Code)
		body := decodeEnvelope(t, rr)
		assert.Equal(t, StatusFail, body["status"])
		assert.Equal(t, "Book not found", body["message"])
	})
}

func TestUpdateBook(t *testing.T) {
	tests := []struct {
		name     string
		body     string
		err      error
		wantCode int
		wantMsg  string
	}{
		{name: "updated", body: `{"name":"Go"}`, wantCode: http.StatusOK, wantMsg: "Book updated successfully"},
		{
			name:     "validation",
			body:     `{}`,
			err:      &domain.ValidationError{Field: "name", Message: domain.MsgNameRequired},
			wantCode: http.StatusBadRequest,
			wantMsg:  "Failed to update book. Please provide the book name",
		},
		{
			name:     "not found",
			body:     `{"name":"Go"}`,
			err:      &domain.NotFoundError{ID: "abc"},
			wantCode: http.StatusNotFound,
			wantMsg:  "Failed to update book. Id not found",
		},
		{name: "empty body", body: ``, wantCode: http.StatusBadRequest, wantMsg: "Failed to update book. Invalid request payload"},
		{name: "unexpected", body: `{"name":"Go"}`, err: errors.New("boom"), wantCode: http.StatusInternalServerError, wantMsg: "Failed to update book"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := &stubBooks{err: tt.err}
			rr := httptest.NewRecorder()
			r := withBookID(httptest.NewRequest(http.MethodPut, "/books/abc", strings.NewReader(tt.body)), "abc")

			UpdateBook(testDeps(svc))(rr, r)

			assert.Equal(t, tt.wantCode, rr.Code)
			assert.Equal(t, tt.wantMsg, decodeEnvelope(t, rr)["message"])
		})
	}
}

func TestDeleteBook(t *testing.T) {
	svc := &stubBooks{}
	rr := httptest.NewRecorder()
	DeleteBook(testDeps(svc))(rr, withBookID(httptest.NewRequest(http.MethodDelete, "/books/abc", nil), "abc"))
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "abc", svc.gotID)
	assert.Equal(t, "Book deleted successfully", decodeEnvelope(t, rr)["message"])

	svc = &stubBooks{err: &domain.NotFoundError{ID: "abc"}}
	rr = httptest.NewRecorder()
	DeleteBook(testDeps(svc))(rr, withBookID(httptest.NewRequest(http.MethodDelete, "/books/abc", nil), "abc"))
	assert.Equal(t, http.StatusNotFound, rr.Code)
	assert.Equal(t, "Failed to delete book. Id not found", decodeEnvelope(t, rr)["message"])
}
