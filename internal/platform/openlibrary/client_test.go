package openlibrary

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"golang.org/x/time/rate"
)

func newTestClient(searchBaseURL, coversBaseURL string) *Client {
	return &Client{
		httpClient:    &http.Client{Timeout: time.Second},
		userAgent:     "bookshelf-test",
		searchBaseURL: searchBaseURL,
		coversBaseURL: coversBaseURL,
		limiter:       rate.NewLimiter(rate.Inf, 1),
	}
}

func TestFindCover(t *testing.T) {
	t.Run("resolves the top hit's cover edition", func(t *testing.T) {
		covers := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "/b/olid/OL123M.json", r.URL.Path)
			fmt.Fprint(w, `{"id": 42, "source_url": "https://covers.example/42.jpg"}`)
		}))
		defer covers.Close()

		search := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "/search.json", r.URL.Path)
			assert.Equal(t, "The Dispossessed", r.URL.Query().Get("title"))
			assert.Equal(t, "bookshelf-test", r.Header.Get("User-Agent"))
			fmt.Fprint(w, `{"numFound": 2, "docs": [{"title": "The Dispossessed", "cover_edition_key": "OL123M"}, {"title": "Other"}]}`)
		}))
		defer search.Close()

		c := newTestClient(search.URL, covers.URL)
		got := c.FindCover(context.Background(), "The Dispossessed")

		assert.Equal(t, "https://covers.example/42.jpg", got)
	})

	t.Run("no search hits degrades to empty", func(t *testing.T) {
		search := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			fmt.Fprint(w, `{"numFound": 0, "docs": []}`)
		}))
		defer search.Close()

		c := newTestClient(search.URL, "http://covers.invalid")
		assert.Equal(t, "", c.FindCover(context.Background(), "No Such Book"))
	})

	t.Run("top hit without a cover edition degrades to empty", func(t *testing.T) {
		search := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			fmt.Fprint(w, `{"numFound": 1, "docs": [{"title": "Obscure"}]}`)
		}))
		defer search.Close()

		c := newTestClient(search.URL, "http://covers.invalid")
		assert.Equal(t, "", c.FindCover(context.Background(), "Obscure"))
	})

	t.Run("search failure degrades to empty", func(t *testing.T) {
		search := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusInternalServerError)
		}))
		defer search.Close()

		c := newTestClient(search.URL, "http://covers.invalid")
		assert.Equal(t, "", c.FindCover(context.Background(), "Dune"))
	})

	t.Run("covers failure degrades to empty", func(t *testing.T) {
		search := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			fmt.Fprint(w, `{"numFound": 1, "docs": [{"title": "Dune", "cover_edition_key": "OL123M"}]}`)
		}))
		defer search.Close()
		covers := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusTooManyRequests)
		}))
		defer covers.Close()

		c := newTestClient(search.URL, covers.URL)
		assert.Equal(t, "", c.FindCover(context.Background(), "Dune"))
	})

	t.Run("malformed search payload degrades to empty", func(t *testing.T) {
		search := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			fmt.Fprint(w, `<html>not json</html>`)
		}))
		defer search.Close()

		c := newTestClient(search.URL, "http://covers.invalid")
		assert.Equal(t, "", c.FindCover(context.Background(), "Dune"))
	})

	t.Run("unreachable service degrades to empty", func(t *testing.T) {
		search := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
		search.Close() // connection refused from here on

		c := newTestClient(search.URL, "http://covers.invalid")
		assert.Equal(t, "", c.FindCover(context.Background(), "Dune"))
	})

	t.Run("empty title skips the lookup entirely", func(t *testing.T) {
		called := false
		search := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			called = true
		}))
		defer search.Close()

		c := newTestClient(search.URL, "http://covers.invalid")
		assert.Equal(t, "", c.FindCover(context.Background(), ""))
		assert.False(t, called)
	})
}
