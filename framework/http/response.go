package http

import (
	"bytes"
	"encoding/json"
	"fmt"
	"html/template"
	"io"
	"io/fs"
	"net/http"

	"github.com/km-arc/controlled-form/framework/http/validation"
)

// ── Response ─────────────────────────────────────────────────────────────────

// Response wraps http.ResponseWriter with Laravel-style helpers.
type Response struct {
	w http.ResponseWriter
}

// NewResponse wraps a ResponseWriter.
func NewResponse(w http.ResponseWriter) *Response {
	return &Response{w: w}
}

// Raw returns the underlying ResponseWriter.
func (res *Response) Raw() http.ResponseWriter { return res.w }

// ── JSON responses ────────────────────────────────────────────────────────────

// JSON sends a JSON response.
//
//	res.JSON(http.StatusOK, snapshot)
func (res *Response) JSON(status int, data any) {
	res.w.Header().Set("Content-Type", "application/json")
	res.w.WriteHeader(status)
	_ = json.NewEncoder(res.w).Encode(data)
}

// Success sends 200 JSON: {"data": v}
func (res *Response) Success(v any) {
	res.JSON(http.StatusOK, envelope{"data": v})
}

// NoContent sends 204 with no body.
func (res *Response) NoContent() {
	res.w.WriteHeader(http.StatusNoContent)
}

// Error sends a JSON error response.
//
//	res.Error(http.StatusBadRequest, "malformed change event")
func (res *Response) Error(status int, message string) {
	res.JSON(status, envelope{"message": message})
}

// NotFound sends 404.
func (res *Response) NotFound(message ...string) {
	msg := first(message, "Not found.")
	res.JSON(http.StatusNotFound, envelope{"message": msg})
}

// ServerError sends 500.
func (res *Response) ServerError(message ...string) {
	msg := first(message, "Server Error.")
	res.JSON(http.StatusInternalServerError, envelope{"message": msg})
}

// ValidationError sends 422 with the error bag.
//
//	res.ValidationError(validator.Errors())
func (res *Response) ValidationError(errors *validation.Errors) {
	res.JSON(http.StatusUnprocessableEntity, errors)
}

// ── HTML ─────────────────────────────────────────────────────────────────────

// HTML sends pre-rendered markup.
func (res *Response) HTML(status int, body []byte) {
	res.w.Header().Set("Content-Type", "text/html; charset=utf-8")
	res.w.WriteHeader(status)
	_, _ = res.w.Write(body)
}

// ── Redirects ────────────────────────────────────────────────────────────────

// RedirectTo performs a 302 redirect.
func (res *Response) RedirectTo(url string) {
	res.redirect(http.StatusFound, url)
}

// SeeOther performs a 303 redirect, the answer to a POST that should be
// followed by a GET.
func (res *Response) SeeOther(url string) {
	res.redirect(http.StatusSeeOther, url)
}

func (res *Response) redirect(status int, url string) {
	res.w.Header().Set("Location", url)
	res.w.WriteHeader(status)
}

// ── View / Templates ─────────────────────────────────────────────────────────

// ViewEngine holds a template set parsed once from a filesystem.
type ViewEngine struct {
	tmpl *template.Template
}

// NewViewEngine parses every file in fsys matching patterns.
//
//	engine, err := gohttp.NewViewEngine(views.FS, "*.html")
func NewViewEngine(fsys fs.FS, patterns ...string) (*ViewEngine, error) {
	if len(patterns) == 0 {
		patterns = []string{"*.html"}
	}
	tmpl, err := template.New("").ParseFS(fsys, patterns...)
	if err != nil {
		return nil, fmt.Errorf("parse views: %w", err)
	}
	return &ViewEngine{tmpl: tmpl}, nil
}

// Render executes the named template into w.
func (ve *ViewEngine) Render(w io.Writer, name string, data any) error {
	return ve.tmpl.ExecuteTemplate(w, name, data)
}

// View renders the named template as an HTML response. The template is
// rendered into a buffer first so a failure can still become a 500.
func (ve *ViewEngine) View(w http.ResponseWriter, name string, data any) {
	var buf bytes.Buffer
	if err := ve.Render(&buf, name, data); err != nil {
		http.Error(w, "Render error: "+err.Error(), http.StatusInternalServerError)
		return
	}
	NewResponse(w).HTML(http.StatusOK, buf.Bytes())
}

// ── Helpers ──────────────────────────────────────────────────────────────────

type envelope map[string]any

func first(ss []string, fallback string) string {
	if len(ss) > 0 && ss[0] != "" {
		return ss[0]
	}
	return fallback
}
