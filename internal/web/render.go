package web

import (
	"bytes"
	stderrors "errors"
	"html/template"
	"io/fs"
	"log"
	"net/http"
	"time"

	"github.com/bbscheffer1-byte/BAMAB-lekdetectie/internal/errors"
	"github.com/bbscheffer1-byte/BAMAB-lekdetectie/internal/report"
)

// PageData contains common fields used across all page templates.
type PageData struct {
	Title string
}

// ListPageData is the template data for the archive list page.
type ListPageData struct {
	PageData
	Items []report.SavedReportRecord
	Query string
}

// ErrorPageData is the template data for the error page.
type ErrorPageData struct {
	PageData
	StatusCode int
	Message    string
}

// Renderer manages template parsing and rendering.
type Renderer struct {
	templates map[string]*template.Template
	version   string
}

// NewRenderer creates a Renderer by parsing templates from the given FS.
func NewRenderer(templateFS fs.FS, version string) *Renderer {
	funcMap := template.FuncMap{
		"formatTimestamp": formatTimestamp,
		"orDash":          orDash,
	}

	layoutTmpl := template.Must(template.New("layout").Funcs(funcMap).ParseFS(templateFS, "layout.html"))

	pages := map[string]string{
		"list":  "list.html",
		"error": "error.html",
	}

	templates := make(map[string]*template.Template, len(pages))
	for name, file := range pages {
		t := template.Must(layoutTmpl.Clone())
		template.Must(t.ParseFS(templateFS, file))
		templates[name] = t
	}

	return &Renderer{
		templates: templates,
		version:   version,
	}
}

// renderPage renders a named page template with HTTP 200.
func (r *Renderer) renderPage(w http.ResponseWriter, name string, data any) {
	r.renderPageStatus(w, http.StatusOK, name, data)
}

// renderPageStatus renders a named page template with the given status.
func (r *Renderer) renderPageStatus(w http.ResponseWriter, status int, name string, data any) {
	t, ok := r.templates[name]
	if !ok {
		log.Printf("template %q not found", name)
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}

	var buf bytes.Buffer
	if err := t.ExecuteTemplate(&buf, "layout", data); err != nil {
		log.Printf("template execution error: %v", err)
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, _ = w.Write(buf.Bytes())
}

// renderError renders an error page from a structured error.
func (r *Renderer) renderError(w http.ResponseWriter, err error) {
	var rErr *errors.ReportError
	if !stderrors.As(err, &rErr) {
		rErr = errors.NewInternal(err)
	}

	r.renderPageStatus(w, rErr.Status, "error", ErrorPageData{
		PageData:   PageData{Title: "Fout"},
		StatusCode: rErr.Status,
		Message:    rErr.Message,
	})
}

// formatTimestamp renders a Unix-millisecond timestamp as a short Dutch
// date-time, e.g. "01-03-2024 14:30".
func formatTimestamp(ms int64) string {
	return time.UnixMilli(ms).Format("02-01-2006 15:04")
}

// orDash substitutes "-" for an empty value in listings.
func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
