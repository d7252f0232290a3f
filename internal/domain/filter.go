package domain

import (
	"strconv"
	"strings"
)

// FilterName is the only filter key matched by substring instead of equality.
const FilterName = "name"

// Filters maps a record field (wire name) to the value it must equal.
type Filters map[string]string

// Matches reports whether b satisfies f.
//
// A "name" filter is a case-insensitive substring test and, when present,
// it alone decides the outcome: every other key is ignored. Without it all
// keys must match exactly. Unknown keys never match.
func (f Filters) Matches(b Book) bool {
	if q, ok := f[FilterName]; ok {
		return strings.Contains(strings.ToLower(b.Name), strings.ToLower(q))
	}
	for key, want := range f {
		if !fieldEquals(b, key, want) {
			return false
		}
	}
	return true
}

func fieldEquals(b Book, key, want string) bool {
	switch key {
	case "id":
		return b.ID == want
	case "author":
		return b.Author == want
	case "summary":
		return b.Summary == want
	case "publisher":
		return b.Publisher == want
	case "year":
		return intEquals(b.Year, want)
	case "pageCount":
		return intEquals(b.PageCount, want)
	case "readPage":
		return intEquals(b.ReadPage, want)
	case "reading":
		return boolEquals(b.Reading, want)
	case "finished":
		return boolEquals(b.Finished, want)
	case "insertedAt":
		return FormatTimestamp(b.InsertedAt) == want
	case "updatedAt":
		return FormatTimestamp(b.UpdatedAt) == want
	default:
		return false
	}
}

func intEquals(have int, want string) bool {
	n, err := strconv.Atoi(strings.TrimSpace(want))
	return err == nil && n == have
}

// boolEquals accepts 1/0 as well as true/false spellings.
func boolEquals(have bool, want string) bool {
	v, err := strconv.ParseBool(strings.TrimSpace(want))
	return err == nil && v == have
}
