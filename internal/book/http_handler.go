package book

import (
	"errors"
	"log"
	"net/http"
	"strconv"
	"time"

	"bookshelf/internal/metrics"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
)

const dateLayout = "2006-01-02"

var validate = validator.New()

// createForm is the request schema for POST /new.
type createForm struct {
	Title       string `validate:"required,max=512"`
	Date        string `validate:"required,datetime=2006-01-02"`
	Rating      string `validate:"required,numeric"`
	Description string `validate:"max=4000"`
	Notes       string `validate:"max=4000"`
}

// updateForm is the request schema for POST /update.
type updateForm struct {
	BookID      string `validate:"required"`
	Date        string `validate:"required,datetime=2006-01-02"`
	Rating      string `validate:"required,numeric"`
	Description string `validate:"max=4000"`
	Notes       string `validate:"max=4000"`
}

// IndexPage is the data handed to the renderer for the book list.
type IndexPage struct {
	Books    []Book
	SortedBy SortField
}

// FormPage is the data for the creation form. Edit is nil for a new
// book and pre-populates the form when editing an existing one.
type FormPage struct {
	Edit *Book
}

// ViewPage is the data for a single book page.
type ViewPage struct {
	Book Book
}

type HTTPHandler struct {
	service  *Service
	renderer Renderer
}

func NewHTTPHandler(service *Service, renderer Renderer) *HTTPHandler {
	return &HTTPHandler{service: service, renderer: renderer}
}

// List handles GET /.
func (h *HTTPHandler) List(w http.ResponseWriter, r *http.Request) {
	books, err := h.service.List(r.Context())
	if err != nil {
		log.Printf("listing books: %v", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}
	h.render(w, "index", IndexPage{Books: books, SortedBy: DefaultSortField})
}

// Sort handles POST /sort.
func (h *HTTPHandler) Sort(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "Bad Request", http.StatusBadRequest)
		return
	}
	books, field, err := h.service.ListSorted(r.Context(), r.PostFormValue("sortby"))
	if err != nil {
		if errors.Is(err, ErrInvalidSortField) {
			http.Error(w, "Invalid sort field", http.StatusBadRequest)
			return
		}
		log.Printf("sorting books: %v", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}
	h.render(w, "index", IndexPage{Books: books, SortedBy: field})
}

// NewForm handles GET /new_book.
func (h *HTTPHandler) NewForm(w http.ResponseWriter, r *http.Request) {
	h.render(w, "new", FormPage{})
}

// Create handles POST /new.
func (h *HTTPHandler) Create(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "Bad Request", http.StatusBadRequest)
		return
	}
	form := createForm{
		Title:       r.PostFormValue("title"),
		Date:        r.PostFormValue("date"),
		Rating:      r.PostFormValue("rating"),
		Description: r.PostFormValue("description"),
		Notes:       r.PostFormValue("notes"),
	}
	if err := validate.Struct(form); err != nil {
		http.Error(w, "Invalid book data", http.StatusBadRequest)
		return
	}
	readDate, _ := time.Parse(dateLayout, form.Date)
	rating, _ := strconv.ParseFloat(form.Rating, 64)

	if _, err := h.service.Create(r.Context(), CreateInput{
		Title:       form.Title,
		ReadDate:    readDate,
		Rating:      rating,
		ShortDetail: form.Description,
		Notes:       form.Notes,
	}); err != nil {
		log.Printf("creating book: %v", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}
	metrics.BooksCreated.Inc()
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

// View handles GET /view/{id}.
func (h *HTTPHandler) View(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "Invalid book id", http.StatusBadRequest)
		return
	}
	b, err := h.service.Get(r.Context(), id)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			http.Error(w, "Book not found", http.StatusNotFound)
			return
		}
		log.Printf("fetching book %d: %v", id, err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}
	h.render(w, "view", ViewPage{Book: b})
}

// Dispatch handles POST /book, which multiplexes the edit and delete
// actions of the list page.
func (h *HTTPHandler) Dispatch(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "Bad Request", http.StatusBadRequest)
		return
	}
	id, err := parseID(r.PostFormValue("bookID"))
	if err != nil {
		http.Error(w, "Invalid book id", http.StatusBadRequest)
		return
	}

	switch r.PostFormValue("action") {
	case "edit":
		b, err := h.service.Get(r.Context(), id)
		if err != nil {
			if errors.Is(err, ErrNotFound) {
				http.Error(w, "Book not found", http.StatusNotFound)
				return
			}
			log.Printf("fetching book %d for edit: %v", id, err)
			http.Error(w, "Internal Server Error", http.StatusInternalServerError)
			return
		}
		h.render(w, "new", FormPage{Edit: &b})
	case "delete":
		if err := h.service.Delete(r.Context(), id); err != nil {
			if errors.Is(err, ErrNotFound) {
				http.Error(w, "Book not found", http.StatusNotFound)
				return
			}
			log.Printf("deleting book %d: %v", id, err)
			http.Error(w, "Internal Server Error", http.StatusInternalServerError)
			return
		}
		http.Redirect(w, r, "/", http.StatusSeeOther)
	default:
		http.Error(w, "Invalid action", http.StatusBadRequest)
	}
}

// Update handles POST /update.
func (h *HTTPHandler) Update(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "Bad Request", http.StatusBadRequest)
		return
	}
	form := updateForm{
		BookID:      r.PostFormValue("bookID"),
		Date:        r.PostFormValue("date"),
		Rating:      r.PostFormValue("rating"),
		Description: r.PostFormValue("description"),
		Notes:       r.PostFormValue("notes"),
	}
	if err := validate.Struct(form); err != nil {
		http.Error(w, "Invalid book data", http.StatusBadRequest)
		return
	}
	id, err := parseID(form.BookID)
	if err != nil {
		http.Error(w, "Invalid book id", http.StatusBadRequest)
		return
	}
	readDate, _ := time.Parse(dateLayout, form.Date)
	rating, _ := strconv.ParseFloat(form.Rating, 64)

	if err := h.service.Update(r.Context(), id, BookUpdate{
		ReadDate:    readDate,
		Rating:      rating,
		ShortDetail: form.Description,
		Notes:       form.Notes,
	}); err != nil {
		if errors.Is(err, ErrNotFound) {
			http.Error(w, "Book not found", http.StatusNotFound)
			return
		}
		log.Printf("updating book %d: %v", id, err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

func (h *HTTPHandler) render(w http.ResponseWriter, page string, data any) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := h.renderer.Render(w, page, data); err != nil {
		log.Printf("rendering %s page: %v", page, err)
	}
}

func parseID(raw string) (int64, error) {
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, err
	}
	if id < 0 {
		return 0, errors.New("negative id")
	}
	return id, nil
}
