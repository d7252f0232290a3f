package domain

import "time"

// EventType names a mutation of the shelf.
type EventType string

const (
	EventCreated EventType = "book.created"
	EventUpdated EventType = "book.updated"
	EventDeleted EventType = "book.deleted"
)

// Event describes one successful mutation. Book is nil for deletions.
type Event struct {
	Type   EventType
	BookID string
	Book   *Book
	At     time.Time
}
