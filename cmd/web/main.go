package main

import (
	"context"
	"log"
	"net/http"
	"strings"
	"time"

	"bookshelf/internal/book"
	"bookshelf/internal/config"
	"bookshelf/internal/httpx"
	"bookshelf/internal/metrics"
	"bookshelf/internal/platform/openlibrary"
	"bookshelf/internal/render"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/httplog"
	"github.com/jackc/pgx/v5/pgxpool"
)

func main() {
	cfg := config.Load()

	dbPool := mustOpenDB(cfg.DSN())
	defer dbPool.Close()

	renderer, err := render.New()
	if err != nil {
		log.Fatalf("cannot load templates: %v", err)
	}

	bookRepository := book.NewPostgresRepo(dbPool, cfg.QueryTimeout)
	coverFinder := openlibrary.NewClient(cfg.UserAgent, cfg.CoverLookupTimeout, cfg.CoverLookupRPS)
	bookService := book.NewService(bookRepository, coverFinder)
	bookHandler := book.NewHTTPHandler(bookService, renderer)

	logger := httplog.NewLogger("bookshelf", httplog.Options{
		JSON: true,
	})

	router := chi.NewRouter()
	router.Use(httplog.RequestLogger(logger))
	router.Use(httpx.RequestIDMiddleware)
	router.Use(httpx.RecoveryMiddleware)
	router.Use(httpx.SecurityHeadersMiddleware)
	router.Use(httpx.RequestSizeLimitMiddleware(1 << 20))

	router.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	router.Get("/readyz", func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 500*time.Millisecond)
		defer cancel()
		if err := dbPool.Ping(ctx); err != nil {
			http.Error(w, "db not ready", http.StatusServiceUnavailable)
			return
		}
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ready"))
	})
	router.Method(http.MethodGet, "/metrics", metrics.Handler())

	router.Get("/", bookHandler.List)
	router.Post("/sort", bookHandler.Sort)
	router.Get("/new_book", bookHandler.NewForm)
	router.Post("/new", bookHandler.Create)
	router.Get("/view/{id}", bookHandler.View)
	router.Post("/book", bookHandler.Dispatch)
	router.Post("/update", bookHandler.Update)

	httpServer := &http.Server{
		Addr:         cfg.Addr,
		Handler:      router,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	log.Printf("Starting server on %s", cfg.Addr)
	if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Fatalf("server error: %v", err)
	}
}

func mustOpenDB(dsn string) *pgxpool.Pool {
	ctx := context.Background()
	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		log.Fatalf("cannot create db pool: %v", err)
	}
	pingCtx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()
	if err := pool.Ping(pingCtx); err != nil {
		pool.Close()
		log.Fatalf("cannot ping database (%s): %v", redactDSN(dsn), err)
	}
	log.Println("database connection OK")
	return pool
}

func redactDSN(dsn string) string {
	const marker = "://"
	start := strings.Index(dsn, marker)
	if start < 0 {
		return dsn
	}
	start += len(marker)
	end := strings.Index(dsn[start:], "@")
	if end < 0 {
		return dsn
	}
	return dsn[:start] + "***" + dsn[start+end:]
}
