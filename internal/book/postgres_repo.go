package book

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// sortColumns is the sole source of ORDER BY identifiers. Column names
// cannot be bound as query parameters, so the allow-list is the
// injection defense and is checked on every call.
var sortColumns = map[SortField]string{
	SortByTitle:    "book_title",
	SortByRating:   "rating",
	SortByReadDate: "read_date",
}

type PostgresRepo struct {
	db      *pgxpool.Pool
	timeout time.Duration
}

func NewPostgresRepo(db *pgxpool.Pool, timeout time.Duration) *PostgresRepo {
	return &PostgresRepo{db: db, timeout: timeout}
}

func (r *PostgresRepo) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, r.timeout)
}

func (r *PostgresRepo) ListSorted(ctx context.Context, field SortField) ([]Book, error) {
	col, ok := sortColumns[field]
	if !ok {
		return nil, ErrInvalidSortField
	}
	order := "ASC"
	if field.Descending() {
		order = "DESC"
	}

	query := fmt.Sprintf(`
		SELECT book_id, book_title, read_date, rating, short_detail, cover_url, notes
		FROM books
		ORDER BY %s %s`, col, order)

	timeoutCtx, cancel := r.withTimeout(ctx)
	defer cancel()
	rows, err := r.db.Query(timeoutCtx, query)
	if err != nil {
		return nil, fmt.Errorf("listing books: %w", err)
	}
	defer rows.Close()

	var out []Book
	for rows.Next() {
		var b Book
		if err := rows.Scan(&b.ID, &b.Title, &b.ReadDate, &b.Rating, &b.ShortDetail, &b.CoverURL, &b.Notes); err != nil {
			return nil, fmt.Errorf("scanning book: %w", err)
		}
		out = append(out, b)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating books: %w", err)
	}
	return out, nil
}

func (r *PostgresRepo) GetByID(ctx context.Context, id int64) (Book, error) {
	const query = `
		SELECT book_id, book_title, read_date, rating, short_detail, cover_url, notes
		FROM books
		WHERE book_id = $1`

	var b Book
	timeoutCtx, cancel := r.withTimeout(ctx)
	defer cancel()
	err := r.db.QueryRow(timeoutCtx, query, id).Scan(
		&b.ID, &b.Title, &b.ReadDate, &b.Rating, &b.ShortDetail, &b.CoverURL, &b.Notes,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Book{}, ErrNotFound
		}
		return Book{}, fmt.Errorf("selecting book %d: %w", id, err)
	}
	return b, nil
}

func (r *PostgresRepo) Insert(ctx context.Context, b NewBook) (int64, error) {
	const query = `
		INSERT INTO books (book_title, read_date, rating, short_detail, cover_url, notes)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING book_id`

	var id int64
	timeoutCtx, cancel := r.withTimeout(ctx)
	defer cancel()
	err := r.db.QueryRow(timeoutCtx, query,
		b.Title, b.ReadDate, b.Rating, b.ShortDetail, b.CoverURL, b.Notes,
	).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("inserting book: %w", err)
	}
	return id, nil
}

func (r *PostgresRepo) Update(ctx context.Context, id int64, u BookUpdate) error {
	const query = `
		UPDATE books
		SET read_date = $1, rating = $2, short_detail = $3, notes = $4
		WHERE book_id = $5`

	timeoutCtx, cancel := r.withTimeout(ctx)
	defer cancel()
	tag, err := r.db.Exec(timeoutCtx, query, u.ReadDate, u.Rating, u.ShortDetail, u.Notes, id)
	if err != nil {
		return fmt.Errorf("updating book %d: %w", id, err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *PostgresRepo) Delete(ctx context.Context, id int64) error {
	const query = `DELETE FROM books WHERE book_id = $1`

	timeoutCtx, cancel := r.withTimeout(ctx)
	defer cancel()
	tag, err := r.db.Exec(timeoutCtx, query, id)
	if err != nil {
		return fmt.Errorf("deleting book %d: %w", id, err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
