package book

import (
	"errors"
	"time"
)

// ErrNotFound is returned when a book is not found.
var ErrNotFound = errors.New("book not found")

// ErrInvalidSortField is returned when a sort request names a column
// outside the allow-list.
var ErrInvalidSortField = errors.New("invalid sort field")

// Book represents one read book and its metadata.
type Book struct {
	ID          int64     `json:"book_id"`
	Title       string    `json:"book_title"`
	ReadDate    time.Time `json:"read_date"`
	Rating      float64   `json:"rating"`
	ShortDetail string    `json:"short_detail,omitempty"`
	CoverURL    string    `json:"cover_url,omitempty"`
	Notes       string    `json:"notes,omitempty"`
}

// NewBook carries the fields required to insert a book. The cover URL
// may be empty when no cover was found.
type NewBook struct {
	Title       string
	ReadDate    time.Time
	Rating      float64
	ShortDetail string
	CoverURL    string
	Notes       string
}

// BookUpdate carries the mutable fields of a book. Title, cover URL
// and ID are immutable after creation and deliberately absent here.
type BookUpdate struct {
	ReadDate    time.Time
	Rating      float64
	ShortDetail string
	Notes       string
}

// SortField is a column name permitted in a sort request.
type SortField string

const (
	SortByTitle    SortField = "book_title"
	SortByRating   SortField = "rating"
	SortByReadDate SortField = "read_date"
)

// DefaultSortField orders listings by rating unless asked otherwise.
const DefaultSortField = SortByRating

// ParseSortField validates raw user input against the sort allow-list.
func ParseSortField(raw string) (SortField, error) {
	switch f := SortField(raw); f {
	case SortByTitle, SortByRating, SortByReadDate:
		return f, nil
	}
	return "", ErrInvalidSortField
}

// Descending reports the sort direction for the field. Titles browse
// A-Z; every other field shows highest or most recent first. The
// direction is derived solely from the field, there is no independent
// direction input.
func (f SortField) Descending() bool {
	return f != SortByTitle
}
