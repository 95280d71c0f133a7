// Package metrics exposes the service's Prometheus collectors.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// BooksCreated counts books successfully added to the catalog.
var BooksCreated = promauto.NewCounter(prometheus.CounterOpts{
	Namespace: "bookshelf",
	Name:      "books_created_total",
	Help:      "Number of books added to the catalog.",
})

// CoverLookups counts cover lookup attempts by outcome: found, miss
// or error. Misses and errors are expected, the lookup is best-effort.
var CoverLookups = promauto.NewCounterVec(prometheus.CounterOpts{
	Namespace: "bookshelf",
	Name:      "cover_lookups_total",
	Help:      "Number of cover lookup attempts by outcome.",
}, []string{"outcome"})

const (
	OutcomeFound = "found"
	OutcomeMiss  = "miss"
	OutcomeError = "error"
)

// Handler serves the Prometheus scrape endpoint.
func Handler() http.Handler {
	return promhttp.Handler()
}
