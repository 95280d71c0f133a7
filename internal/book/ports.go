package book

import (
	"context"
	"net/http"
)

//go:generate mockgen -source=ports.go -destination=mocks.go -package=book

// Repository defines the contract for book storage.
type Repository interface {
	ListSorted(ctx context.Context, field SortField) ([]Book, error)
	GetByID(ctx context.Context, id int64) (Book, error)
	Insert(ctx context.Context, b NewBook) (int64, error)
	Update(ctx context.Context, id int64, u BookUpdate) error
	Delete(ctx context.Context, id int64) error
}

// CoverFinder resolves a book title to a cover image URL. It is
// best-effort: an empty string means no cover, and lookup failures
// must be absorbed by the implementation, never returned.
type CoverFinder interface {
	FindCover(ctx context.Context, title string) string
}

// Renderer turns handler-produced page data into a response body. The
// templating mechanism behind it is not this package's concern.
type Renderer interface {
	Render(w http.ResponseWriter, page string, data any) error
}
