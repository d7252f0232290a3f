package memory

import (
	"fmt"
	"sync"
	"time"

	"github.com/MrSnakeDoc/bookshelf/internal/domain"
)

// BookStore keeps the shelf in insertion order behind a single lock.
// Every method takes the lock for its whole duration, so each call is one
// atomic step against the collection.
type BookStore struct {
	mu         sync.RWMutex
	books      []domain.Book
	lastChange time.Time // Timestamp of the last successful mutation
}

// NewBookStore creates an empty store
func NewBookStore() *BookStore {
	return &BookStore{
		books: make([]domain.Book, 0, 16),
	}
}

// Append adds a book at the end of the sequence.
// It refuses a book whose ID is already present.
func (s *BookStore) Append(book domain.Book) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.indexOf(book.ID) != -1 {
		return fmt.Errorf("duplicate book id: %s", book.ID)
	}

	s.books = append(s.books, book)
	s.lastChange = time.Now()
	return nil
}

// Get retrieves a copy of the book with the given ID
func (s *BookStore) Get(id string) (domain.Book, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	i := s.indexOf(id)
	if i == -1 {
		return domain.Book{}, false
	}
	return s.books[i], true
}

// Select returns, in insertion order, a fresh slice holding every book
// accepted by keep. A nil keep selects everything.
func (s *BookStore) Select(keep func(domain.Book) bool) []domain.Book {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]domain.Book, 0, len(s.books))
	for _, b := range s.books {
		if keep == nil || keep(b) {
			out = append(out, b)
		}
	}
	return out
}

// Replace swaps the book with the given ID for fn(current), in place.
// fn runs under the write lock and must not call back into the store.
func (s *BookStore) Replace(id string, fn func(domain.Book) domain.Book) (domain.Book, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexOf(id)
	if i == -1 {
		return domain.Book{}, false
	}

	next := fn(s.books[i])
	next.ID = id
	s.books[i] = next
	s.lastChange = time.Now()
	return next, true
}

// Delete removes the book with the given ID, keeping the order of the rest
func (s *BookStore) Delete(id string) (domain.Book, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexOf(id)
	if i == -1 {
		return domain.Book{}, false
	}

	removed := s.books[i]
	s.books = append(s.books[:i], s.books[i+1:]...)
	s.lastChange = time.Now()
	return removed, true
}

// Count returns the number of books on the shelf
func (s *BookStore) Count() int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return len(s.books)
}

// GetLastChange returns the timestamp of the last mutation
func (s *BookStore) GetLastChange() time.Time {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.lastChange
}

// indexOf must be called with the lock held.
func (s *BookStore) indexOf(id string) int {
	for i := range s.books {
		if s.books[i].ID == id {
			return i
		}
	}
	return -1
}
