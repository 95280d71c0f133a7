package book

import (
	"context"
	"strings"
	"time"
)

// CreateInput carries the user-supplied fields for a new book. The
// cover URL is resolved by the service, not supplied by the caller.
type CreateInput struct {
	Title       string
	ReadDate    time.Time
	Rating      float64
	ShortDetail string
	Notes       string
}

// Service provides book catalog business logic.
type Service struct {
	repo   Repository
	covers CoverFinder
}

// NewService creates a new book service.
func NewService(repo Repository, covers CoverFinder) *Service {
	return &Service{repo: repo, covers: covers}
}

// List returns all books in the default order, rating descending.
func (s *Service) List(ctx context.Context) ([]Book, error) {
	return s.repo.ListSorted(ctx, DefaultSortField)
}

// ListSorted returns all books ordered by the requested field. An
// empty field falls back to the default, which still passes through
// validation like any other value. Returns ErrInvalidSortField before
// any query runs when the field is not in the allow-list.
func (s *Service) ListSorted(ctx context.Context, rawField string) ([]Book, SortField, error) {
	if rawField == "" {
		rawField = string(DefaultSortField)
	}
	field, err := ParseSortField(rawField)
	if err != nil {
		return nil, "", err
	}
	books, err := s.repo.ListSorted(ctx, field)
	if err != nil {
		return nil, "", err
	}
	return books, field, nil
}

// Get returns the book with the given id, or ErrNotFound.
func (s *Service) Get(ctx context.Context, id int64) (Book, error) {
	return s.repo.GetByID(ctx, id)
}

// Create looks up a cover for the title and inserts the book. The
// lookup is best-effort: a missing cover never blocks creation, the
// book is stored with an empty cover URL instead.
func (s *Service) Create(ctx context.Context, in CreateInput) (int64, error) {
	coverURL := s.covers.FindCover(ctx, strings.TrimSpace(in.Title))
	return s.repo.Insert(ctx, NewBook{
		Title:       in.Title,
		ReadDate:    in.ReadDate,
		Rating:      in.Rating,
		ShortDetail: in.ShortDetail,
		CoverURL:    coverURL,
		Notes:       in.Notes,
	})
}

// Update overwrites the mutable fields of the book with the given id.
func (s *Service) Update(ctx context.Context, id int64, u BookUpdate) error {
	return s.repo.Update(ctx, id, u)
}

// Delete removes the book with the given id.
func (s *Service) Delete(ctx context.Context, id int64) error {
	return s.repo.Delete(ctx, id)
}
