package deps

import (
	"context"
	"time"

	"github.com/MrSnakeDoc/bookshelf/internal/domain"
	"github.com/MrSnakeDoc/bookshelf/internal/logger"
)

// BookService is the shelf as seen by the HTTP handlers.
type BookService interface {
	Create(ctx context.Context, p domain.Payload) (string, error)
	List(ctx context.Context, filters domain.Filters) []domain.Summary
	GetByID(ctx context.Context, id string) (domain.Book, error)
	UpdateByID(ctx context.Context, id string, p domain.Payload) error
	DeleteByID(ctx context.Context, id string) error
	Count() int
	LastChange() time.Time
}

// Pinger is implemented by optional backends checked by /readyz.
type Pinger interface {
	Ping(ctx context.Context) error
}

type Deps struct {
	Logger          logger.Logger
	StartTime       time.Time
	Version         string
	Commit          string
	BuildDate       string
	GoVersion       string
	TimeNow         func() time.Time // for testing, defaults to time.Now
	Books           BookService      // the book collection
	Feed            Pinger           // change feed backend, nil when disabled
	AllowedCIDRS    []string         // IPs allowed to access readyz
	TrustProxy      bool             // true if running behind a trusted reverse proxy
	RateLimitBurst  int              // per-IP burst on /books, 0 disables
	RateLimitPerMin int              // per-IP refill rate on /books
}
