// Package render produces HTML pages from handler-supplied data.
package render

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"net/http"
)

//go:embed templates/*.html
var templateFS embed.FS

// pages are the templates the handlers may ask for.
var pages = []string{"index", "new", "view"}

// HTML renders embedded html/template pages.
type HTML struct {
	templates map[string]*template.Template
}

func New() (*HTML, error) {
	templates := make(map[string]*template.Template, len(pages))
	for _, page := range pages {
		t, err := template.ParseFS(templateFS, "templates/"+page+".html")
		if err != nil {
			return nil, fmt.Errorf("parsing %s template: %w", page, err)
		}
		templates[page] = t
	}
	return &HTML{templates: templates}, nil
}

// Render executes the named page template. The page is buffered so a
// template failure never leaves a half-written response body.
func (h *HTML) Render(w http.ResponseWriter, page string, data any) error {
	t, ok := h.templates[page]
	if !ok {
		return fmt.Errorf("unknown page %q", page)
	}

	var buf bytes.Buffer
	if err := t.Execute(&buf, data); err != nil {
		return fmt.Errorf("executing %s template: %w", page, err)
	}
	_, err := buf.WriteTo(w)
	return err
}
