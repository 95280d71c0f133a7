package book

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseSortField(t *testing.T) {
	tests := []struct {
		name    string
		raw     string
		want    SortField
		wantErr bool
	}{
		{name: "title", raw: "book_title", want: SortByTitle},
		{name: "rating", raw: "rating", want: SortByRating},
		{name: "read date", raw: "read_date", want: SortByReadDate},
		{name: "empty", raw: "", wantErr: true},
		{name: "unknown column", raw: "notes", wantErr: true},
		{name: "injection attempt", raw: "rating; DROP TABLE books--", wantErr: true},
		{name: "case sensitive", raw: "Rating", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseSortField(tt.raw)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidSortField)
				return
			}
			assert.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestSortFieldDescending(t *testing.T) {
	// Titles browse A-Z, everything else highest or most recent first.
	assert.False(t, SortByTitle.Descending())
	assert.True(t, SortByRating.Descending())
	assert.True(t, SortByReadDate.Descending())
}

func TestDefaultSortFieldIsAllowed(t *testing.T) {
	// The default still has to pass validation like any other value.
	got, err := ParseSortField(string(DefaultSortField))
	assert.NoError(t, err)
	assert.Equal(t, DefaultSortField, got)
}
