package domain

import (
	"time"

	jsoniter "github.com/json-iterator/go"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// TimestampLayout is the wire format of InsertedAt and UpdatedAt.
const TimestampLayout = "2006-01-02T15:04:05.000Z07:00"

// Book is one record of the shelf.
//
// Records are values: the store hands out copies, so a Book obtained from
// a lookup can be read freely without holding any lock.
type Book struct {
	// ─────────────────────────────
	// Identity (immutable)
	// ─────────────────────────────

	// ID is generated on creation and never changes.
	ID string

	// ─────────────────────────────
	// User supplied fields
	// (fully replaced on update)
	// ─────────────────────────────

	Name      string
	Year      int
	Author    string
	Summary   string
	Publisher string
	PageCount int
	ReadPage  int
	Reading   bool

	// ─────────────────────────────
	// Derived
	// ─────────────────────────────

	// Finished is true iff ReadPage == PageCount at last write.
	Finished bool

	// ─────────────────────────────
	// Metadata
	// ─────────────────────────────

	// InsertedAt is set once on creation.
	InsertedAt time.Time

	// UpdatedAt is refreshed on every mutation and never moves backwards.
	UpdatedAt time.Time
}

// Payload is the caller supplied part of a Book, used by create and update.
type Payload struct {
	Name      string `json:"name" yaml:"name" validate:"required"`
	Year      int    `json:"year" yaml:"year"`
	Author    string `json:"author" yaml:"author"`
	Summary   string `json:"summary" yaml:"summary"`
	Publisher string `json:"publisher" yaml:"publisher"`
	PageCount int    `json:"pageCount" yaml:"pageCount" validate:"gte=0"`
	ReadPage  int    `json:"readPage" yaml:"readPage" validate:"gte=0,ltefield=PageCount"`
	Reading   bool   `json:"reading" yaml:"reading"`
}

// Summary is the reduced projection returned by listings.
type Summary struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Publisher string `json:"publisher"`
}

// NewBook builds a fresh record from a validated payload.
func NewBook(id string, p Payload, now time.Time) Book {
	b := Book{
		ID:         id,
		InsertedAt: now,
		UpdatedAt:  now,
	}
	b.assign(p)
	return b
}

// Apply returns a copy of b with every user field replaced by p.
// ID and InsertedAt are kept; UpdatedAt becomes now unless the clock went
// backwards, in which case the previous value is retained.
func (b Book) Apply(p Payload, now time.Time) Book {
	b.assign(p)
	if now.After(b.UpdatedAt) {
		b.UpdatedAt = now
	}
	return b
}

func (b *Book) assign(p Payload) {
	b.Name = p.Name
	b.Year = p.Year
	b.Author = p.Author
	b.Summary = p.Summary
	b.Publisher = p.Publisher
	b.PageCount = p.PageCount
	b.ReadPage = p.ReadPage
	b.Reading = p.Reading
	b.Finished = p.PageCount == p.ReadPage
}

// Brief projects the record onto its listing summary.
func (b Book) Brief() Summary {
	return Summary{ID: b.ID, Name: b.Name, Publisher: b.Publisher}
}

type bookJSON struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	Year       int    `json:"year"`
	Author     string `json:"author"`
	Summary    string `json:"summary"`
	Publisher  string `json:"publisher"`
	PageCount  int    `json:"pageCount"`
	ReadPage   int    `json:"readPage"`
	Finished   bool   `json:"finished"`
	Reading    bool   `json:"reading"`
	InsertedAt string `json:"insertedAt"`
	UpdatedAt  string `json:"updatedAt"`
}

// FormatTimestamp renders t the way records expose their timestamps.
func FormatTimestamp(t time.Time) string {
	return t.UTC().Format(TimestampLayout)
}

func (b Book) MarshalJSON() ([]byte, error) {
	return json.Marshal(bookJSON{
		ID:         b.ID,
		Name:       b.Name,
		Year:       b.Year,
		Author:     b.Author,
		Summary:    b.Summary,
		Publisher:  b.Publisher,
		PageCount:  b.PageCount,
		ReadPage:   b.ReadPage,
		Finished:   b.Finished,
		Reading:    b.Reading,
		InsertedAt: FormatTimestamp(b.InsertedAt),
		UpdatedAt:  FormatTimestamp(b.UpdatedAt),
	})
}

func (b *Book) UnmarshalJSON(data []byte) error {
	var raw bookJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	insertedAt, err := time.Parse(TimestampLayout, raw.InsertedAt)
	if err != nil {
		return err
	}
	updatedAt, err := time.Parse(TimestampLayout, raw.UpdatedAt)
	if err != nil {
		return err
	}

	*b = Book{
		ID:         raw.ID,
		Name:       raw.Name,
		Year:       raw.Year,
		Author:     raw.Author,
		Summary:    raw.Summary,
		Publisher:  raw.Publisher,
		PageCount:  raw.PageCount,
		ReadPage:   raw.ReadPage,
		Finished:   raw.Finished,
		Reading:    raw.Reading,
		InsertedAt: insertedAt,
		UpdatedAt:  updatedAt,
	}
	return nil
}
