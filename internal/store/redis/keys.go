package redis

const (
	// DefaultStream is the stream key receiving shelf change events
	DefaultStream = "bookshelf:events"
	// DefaultStreamMaxLen bounds the stream length (approximate trimming)
	DefaultStreamMaxLen = 10000
)

// Field names of a stream entry.
const (
	FieldType   = "type"
	FieldBookID = "bookId"
	FieldAt     = "at"
	FieldBook   = "book"
)
