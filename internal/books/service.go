package books

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/MrSnakeDoc/bookshelf/internal/domain"
	"github.com/MrSnakeDoc/bookshelf/internal/logger"
)

// DefaultPublishTimeout bounds a single change feed publish.
const DefaultPublishTimeout = 2 * time.Second

// Store is the collection the service operates on.
type Store interface {
	Append(book domain.Book) error
	Get(id string) (domain.Book, bool)
	Select(keep func(domain.Book) bool) []domain.Book
	Replace(id string, fn func(domain.Book) domain.Book) (domain.Book, bool)
	Delete(id string) (domain.Book, bool)
	Count() int
	GetLastChange() time.Time
}

// Publisher receives an event after every successful mutation.
type Publisher interface {
	Publish(ctx context.Context, ev domain.Event) error
}

// NopPublisher drops every event.
type NopPublisher struct{}

func (NopPublisher) Publish(context.Context, domain.Event) error { return nil }

// Service implements the shelf operations on top of a Store.
type Service struct {
	store          Store
	publisher      Publisher
	publishTimeout time.Duration
	logger         logger.Logger
	now            func() time.Time
	newID          func() string
}

type Option func(*Service)

// WithClock overrides the time source (UTC is applied on top).
func WithClock(now func() time.Time) Option {
	return func(s *Service) { s.now = now }
}

// WithIDGenerator overrides identifier generation.
func WithIDGenerator(newID func() string) Option {
	return func(s *Service) { s.newID = newID }
}

// WithPublisher sends change events to p, each bounded by timeout.
func WithPublisher(p Publisher, timeout time.Duration) Option {
	return func(s *Service) {
		s.publisher = p
		if timeout > 0 {
			s.publishTimeout = timeout
		}
	}
}

// NewService creates a service owning store.
func NewService(store Store, log logger.Logger, opts ...Option) *Service {
	s := &Service{
		store:          store,
		publisher:      NopPublisher{},
		publishTimeout: DefaultPublishTimeout,
		logger:         log,
		now:            time.Now,
		newID:          uuid.NewString,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Create validates p, stores a new record and returns its identifier.
func (s *Service) Create(ctx context.Context, p domain.Payload) (string, error) {
	if err := domain.Validate(p); err != nil {
		return "", err
	}

	id := s.newID()
	book := domain.NewBook(id, p, s.clock())

	if err := s.store.Append(book); err != nil {
		return "", fmt.Errorf("%w: %v", domain.ErrInternal, err)
	}

	// the record must be visible before success is reported
	if _, ok := s.store.Get(id); !ok {
		return "", fmt.Errorf("%w: book %s missing after insert", domain.ErrInternal, id)
	}

	s.logger.Debug("book created",
		logger.String("id", id),
		logger.Bool("finished", book.Finished))

	s.publish(ctx, domain.Event{Type: domain.EventCreated, BookID: id, Book: &book, At: book.UpdatedAt})
	return id, nil
}

// List returns the summaries of every record matching filters, in
// insertion order. The result is never nil.
func (s *Service) List(_ context.Context, filters domain.Filters) []domain.Summary {
	matched := s.store.Select(filters.Matches)

	out := make([]domain.Summary, 0, len(matched))
	for _, b := range matched {
		out = append(out, b.Brief())
	}
	return out
}

// GetByID returns the full record or a *domain.NotFoundError.
func (s *Service) GetByID(_ context.Context, id string) (domain.Book, error) {
	book, ok := s.store.Get(id)
	if !ok {
		return domain.Book{}, &domain.NotFoundError{ID: id}
	}
	return book, nil
}

// UpdateByID replaces every user field of the record. Validation runs
// before the lookup, so an invalid payload is rejected even for unknown ids.
func (s *Service) UpdateByID(ctx context.Context, id string, p domain.Payload) error {
	if err := domain.Validate(p); err != nil {
		return err
	}

	now := s.clock()
	book, ok := s.store.Replace(id, func(current domain.Book) domain.Book {
		return current.Apply(p, now)
	})
	if !ok {
		return &domain.NotFoundError{ID: id}
	}

	s.logger.Debug("book updated",
		logger.String("id", id),
		logger.Bool("finished", book.Finished))

	s.publish(ctx, domain.Event{Type: domain.EventUpdated, BookID: id, Book: &book, At: book.UpdatedAt})
	return nil
}

// DeleteByID removes the record or returns a *domain.NotFoundError.
func (s *Service) DeleteByID(ctx context.Context, id string) error {
	if _, ok := s.store.Delete(id); !ok {
		return &domain.NotFoundError{ID: id}
	}

	s.logger.Debug("book deleted", logger.String("id", id))

	s.publish(ctx, domain.Event{Type: domain.EventDeleted, BookID: id, At: s.clock()})
	return nil
}

// Count returns the number of records on the shelf.
func (s *Service) Count() int {
	return s.store.Count()
}

// LastChange returns when the shelf was last mutated, zero if never.
func (s *Service) LastChange() time.Time {
	return s.store.GetLastChange()
}

func (s *Service) clock() time.Time {
	return s.now().UTC()
}

// publish is best effort: a failing feed never fails the mutation.
func (s *Service) publish(ctx context.Context, ev domain.Event) {
	ctx, cancel := context.WithTimeout(ctx, s.publishTimeout)
	defer cancel()

	if err := s.publisher.Publish(ctx, ev); err != nil {
		s.logger.Warn("failed to publish book event",
			logger.String("type", string(ev.Type)),
			logger.String("id", ev.BookID),
			logger.Error(err))
	}
}
