package book

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestPostgresRepo_ListSortedRejectsUnknownColumn(t *testing.T) {
	// A nil pool proves the allow-list check runs before any query:
	// reaching the database would panic.
	repo := NewPostgresRepo(nil, time.Second)

	_, err := repo.ListSorted(context.Background(), SortField("notes; DROP TABLE books--"))

	assert.ErrorIs(t, err, ErrInvalidSortField)
}

func TestSortColumnsMatchAllowList(t *testing.T) {
	// Every parseable field must have a column mapping, and nothing else.
	for _, f := range []SortField{SortByTitle, SortByRating, SortByReadDate} {
		col, ok := sortColumns[f]
		assert.True(t, ok, "missing column for %s", f)
		assert.Equal(t, string(f), col)
	}
	assert.Len(t, sortColumns, 3)
}
