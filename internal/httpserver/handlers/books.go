package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/MrSnakeDoc/bookshelf/internal/domain"
	"github.com/MrSnakeDoc/bookshelf/internal/httpserver/deps"
	"github.com/MrSnakeDoc/bookshelf/internal/logger"
)

// BookIDParam is the route parameter holding a book identifier.
const BookIDParam = "bookId"

type bookIDData struct {
	BookID string `json:"bookId"`
}

type bookData struct {
	Book domain.Book `json:"book"`
}

type booksData struct {
	Books []domain.Summary `json:"books"`
}

// AddBook handles POST /books
func AddBook(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		p, err := decodePayload(w, r)
		if err != nil {
			d.Logger.Debug("rejected book payload", logger.Error(err))
			fail(w, http.StatusBadRequest, "Failed to add book. Invalid request payload", d.Logger)
			return
		}

		id, err := d.Books.Create(r.Context(), p)
		switch {
		case err == nil:
			success(w, http.StatusCreated, "Book added successfully", bookIDData{BookID: id}, d.Logger)
		case domain.IsValidation(err):
			fail(w, http.StatusBadRequest, validationMessage("add", err), d.Logger)
		default:
			d.Logger.Error("failed to add book", logger.Error(err))
			serverError(w, "Failed to add book", d.Logger)
		}
	}
}

// ListBooks handles GET /books. Every query parameter is a filter; only
// the first value of a repeated parameter is used.
func ListBooks(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		query := r.URL.Query()
		filters := make(domain.Filters, len(query))
		for key, values := range query {
			if len(values) > 0 {
				filters[key] = values[0]
			}
		}

		summaries := d.Books.List(r.Context(), filters)
		success(w, http.StatusOK, "", booksData{Books: summaries}, d.Logger)
	}
}

// GetBook handles GET /books/{bookId}
func GetBook(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, BookIDParam)

		book, err := d.Books.GetByID(r.Context(), id)
		switch {
		case err == nil:
			success(w, http.StatusOK, "", bookData{Book: book}, d.Logger)
		case domain.IsNotFound(err):
			fail(w, http.StatusNotFound, "Book not found", d.Logger)
		default:
			d.Logger.Error("failed to get book", logger.String("id", id), logger.Error(err))
			serverError(w, "Failed to get book", d.Logger)
		}
	}
}

// UpdateBook handles PUT /books/{bookId}. The payload replaces the whole
// record; there are no partial updates.
func UpdateBook(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, BookIDParam)

		p, err := decodePayload(w, r)
		if err != nil {
			d.Logger.Debug("rejected book payload", logger.String("id", id), logger.Error(err))
			fail(w, http.StatusBadRequest, "Failed to update book. Invalid request payload", d.Logger)
			return
		}

		err = d.Books.UpdateByID(r.Context(), id, p)
		switch {
		case err == nil:
			success(w, http.StatusOK, "Book updated successfully", nil, d.Logger)
		case domain.IsValidation(err):
			fail(w, http.StatusBadRequest, validationMessage("update", err), d.Logger)
		case domain.IsNotFound(err):
			fail(w, http.StatusNotFound, "Failed to update book. Id not found", d.Logger)
		default:
			d.Logger.Error("failed to update book", logger.String("id", id), logger.Error(err))
			serverError(w, "Failed to update book", d.Logger)
		}
	}
}

// DeleteBook handles DELETE /books/{bookId}
func DeleteBook(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, BookIDParam)

		err := d.Books.DeleteByID(r.Context(), id)
		switch {
		case err == nil:
			success(w, http.StatusOK, "Book deleted successfully", nil, d.Logger)
		case domain.IsNotFound(err):
			fail(w, http.StatusNotFound, "Failed to delete book. Id not found", d.Logger)
		default:
			d.Logger.Error("failed to delete book", logger.String("id", id), logger.Error(err))
			serverError(w, "Failed to delete book", d.Logger)
		}
	}
}
