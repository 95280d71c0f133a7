// Package openlibrary resolves book titles to cover image URLs using
// the Open Library search and covers APIs.
package openlibrary

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"net/url"
	"time"

	"bookshelf/internal/metrics"

	"golang.org/x/time/rate"
)

const (
	defaultSearchBaseURL = "https://openlibrary.org"
	defaultCoversBaseURL = "https://covers.openlibrary.org"
)

type Client struct {
	httpClient    *http.Client
	userAgent     string
	searchBaseURL string
	coversBaseURL string
	limiter       *rate.Limiter
}

func NewClient(userAgent string, timeout time.Duration, rps int) *Client {
	if rps < 1 {
		rps = 1
	}
	return &Client{
		httpClient: &http.Client{
			Timeout: timeout,
		},
		userAgent:     userAgent,
		searchBaseURL: defaultSearchBaseURL,
		coversBaseURL: defaultCoversBaseURL,
		limiter:       rate.NewLimiter(rate.Every(time.Second/time.Duration(rps)), 1),
	}
}

// searchResponse matches search.json.
type searchResponse struct {
	NumFound int `json:"numFound"`
	Docs     []struct {
		Key             string `json:"key"`
		Title           string `json:"title"`
		CoverEditionKey string `json:"cover_edition_key"`
	} `json:"docs"`
}

// coverResponse matches covers /b/olid/{key}.json.
type coverResponse struct {
	ID        int    `json:"id"`
	SourceURL string `json:"source_url"`
}

// FindCover resolves a title to a cover image URL. The lookup is
// best-effort: no search hit, a top hit without a cover edition, and
// any network or decoding failure all degrade to an empty string. A
// missing cover must never block book creation, so errors stop here.
func (c *Client) FindCover(ctx context.Context, title string) string {
	if title == "" {
		metrics.CoverLookups.WithLabelValues(metrics.OutcomeMiss).Inc()
		return ""
	}

	editionKey, err := c.searchCoverEdition(ctx, title)
	if err != nil {
		log.Printf("cover search for %q: %v", title, err)
		metrics.CoverLookups.WithLabelValues(metrics.OutcomeError).Inc()
		return ""
	}
	if editionKey == "" {
		log.Printf("no cover available for %q", title)
		metrics.CoverLookups.WithLabelValues(metrics.OutcomeMiss).Inc()
		return ""
	}

	sourceURL, err := c.coverSourceURL(ctx, editionKey)
	if err != nil {
		log.Printf("cover fetch for %q (edition %s): %v", title, editionKey, err)
		metrics.CoverLookups.WithLabelValues(metrics.OutcomeError).Inc()
		return ""
	}

	metrics.CoverLookups.WithLabelValues(metrics.OutcomeFound).Inc()
	return sourceURL
}

// searchCoverEdition returns the cover edition key of the top search
// hit, or "" when there is no hit or the hit carries no edition.
func (c *Client) searchCoverEdition(ctx context.Context, title string) (string, error) {
	u := fmt.Sprintf("%s/search.json?title=%s", c.searchBaseURL, url.QueryEscape(title))

	var res searchResponse
	if err := c.get(ctx, u, &res); err != nil {
		return "", err
	}
	if len(res.Docs) == 0 {
		return "", nil
	}
	return res.Docs[0].CoverEditionKey, nil
}

func (c *Client) coverSourceURL(ctx context.Context, editionKey string) (string, error) {
	u := fmt.Sprintf("%s/b/olid/%s.json", c.coversBaseURL, url.PathEscape(editionKey))

	var res coverResponse
	if err := c.get(ctx, u, &res); err != nil {
		return "", err
	}
	return res.SourceURL, nil
}

func (c *Client) get(ctx context.Context, url string, target interface{}) error {
	if err := c.limiter.Wait(ctx); err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return err
	}
	req.Header.Set("User-Agent", c.userAgent)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("unexpected status code: %d", resp.StatusCode)
	}

	return json.NewDecoder(resp.Body).Decode(target)
}
