// Seeds the books table with a few sample entries for local development.
package main

import (
	"context"
	"log"
	"time"

	"bookshelf/internal/book"
	"bookshelf/internal/config"

	"github.com/jackc/pgx/v5/pgxpool"
)

func main() {
	ctx := context.Background()
	cfg := config.Load()

	pool, err := pgxpool.New(ctx, cfg.DSN())
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer pool.Close()

	repo := book.NewPostgresRepo(pool, cfg.QueryTimeout)

	samples := []book.NewBook{
		{
			Title:       "Dune",
			ReadDate:    date(2024, 3, 18),
			Rating:      9,
			ShortDetail: "Desert planet politics and giant sandworms.",
			Notes:       "Reread before the film.",
		},
		{
			Title:       "The Pragmatic Programmer",
			ReadDate:    date(2023, 11, 2),
			Rating:      8.5,
			ShortDetail: "Timeless advice on the craft of software.",
		},
		{
			Title:       "Piranesi",
			ReadDate:    date(2024, 6, 30),
			Rating:      7,
			ShortDetail: "A man alone in an endless house of statues.",
		},
	}

	for _, s := range samples {
		id, err := repo.Insert(ctx, s)
		if err != nil {
			log.Fatalf("Failed to insert %q: %v", s.Title, err)
		}
		log.Printf("Inserted %q as book %d", s.Title, id)
	}

	log.Printf("Seeded %d books", len(samples))
}

func date(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}
