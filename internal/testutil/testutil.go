// Package testutil holds request helpers shared by handler tests.
package testutil

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
)

// NewFormRequest creates a form-encoded HTTP request for testing.
func NewFormRequest(method, path string, form url.Values) *http.Request {
	var r *http.Request
	if form != nil {
		r = httptest.NewRequest(method, path, strings.NewReader(form.Encode()))
		r.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	} else {
		r = httptest.NewRequest(method, path, nil)
	}
	return r
}

// Do routes the request through the handler and records the response.
func Do(h http.Handler, r *http.Request) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	h.ServeHTTP(w, r)
	return w
}
