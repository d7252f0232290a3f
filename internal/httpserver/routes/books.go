package routes

import (
	"fmt"

	"github.com/go-chi/chi/v5"

	"github.com/MrSnakeDoc/bookshelf/internal/httpserver/deps"
	"github.com/MrSnakeDoc/bookshelf/internal/httpserver/handlers"
	"github.com/MrSnakeDoc/bookshelf/internal/httpserver/mw"
)

func init() { Register("books", registerBooks) }

func registerBooks(r chi.Router, d deps.Deps) {
	byID := fmt.Sprintf("/{%s}", handlers.BookIDParam)

	r.Route("/books", func(r chi.Router) {
		if d.RateLimitBurst > 0 {
			r.Use(mw.RateLimit(mw.RateLimitConfig{
				Burst:             d.RateLimitBurst,
				RefillPerIPPerMin: d.RateLimitPerMin,
				TrustProxy:        d.TrustProxy,
			}))
		}

		r.Post("/", handlers.AddBook(d))
		r.Get("/", handlers.ListBooks(d))
		r.Get(byID, handlers.GetBook(d))
		r.Put(byID, handlers.UpdateBook(d))
		r.Delete(byID, handlers.DeleteBook(d))
	})
}
