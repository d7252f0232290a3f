package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestFiltersMatches(t *testing.T) {
	ts := time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)
	harry := NewBook("h1", Payload{
		Name: "Harry Potter", Year: 1997, Author: "J. K. Rowling",
		Publisher: "Bloomsbury", PageCount: 223, ReadPage: 223, Reading: true,
	}, ts)

	tests := []struct {
		name    string
		filters Filters
		want    bool
	}{
		{name: "no filters", filters: Filters{}, want: true},
		{name: "name substring case-insensitive", filters: Filters{"name": "harry"}, want: true},
		{name: "name mismatch", filters: Filters{"name": "percy"}, want: false},
		{name: "empty name matches all", filters: Filters{"name": ""}, want: true},
		{name: "reading as 1", filters: Filters{"reading": "1"}, want: true},
		{name: "reading as 0", filters: Filters{"reading": "0"}, want: false},
		{name: "finished true", filters: Filters{"finished": "true"}, want: true},
		{name: "bool garbage", filters: Filters{"finished": "yes"}, want: false},
		{name: "year numeric", filters: Filters{"year": "1997"}, want: true},
		{name: "year wrong", filters: Filters{"year": "2001"}, want: false},
		{name: "year not a number", filters: Filters{"year": "abc"}, want: false},
		{name: "publisher exact", filters: Filters{"publisher": "Bloomsbury"}, want: true},
		{name: "publisher is case sensitive", filters: Filters{"publisher": "bloomsbury"}, want: false},
		{name: "conjunction all match", filters: Filters{"reading": "1", "finished": "1"}, want: true},
		{name: "conjunction one fails", filters: Filters{"reading": "1", "finished": "0"}, want: false},
		{name: "unknown key", filters: Filters{"colour": "red"}, want: false},
		{name: "inserted at", filters: Filters{"insertedAt": "2024-05-01T10:00:00.000Z"}, want: true},
		// name alone decides whenever it is supplied
		{name: "name overrides failing filter", filters: Filters{"name": "harry", "reading": "0"}, want: true},
		{name: "name failing overrides matching filter", filters: Filters{"name": "percy", "reading": "1"}, want: false},
		{name: "name overrides unknown key", filters: Filters{"name": "potter", "colour": "red"}, want: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.filters.Matches(harry))
		})
	}
}
