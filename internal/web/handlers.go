package web

import (
	"net/http"
	"time"

	"github.com/bbscheffer1-byte/BAMAB-lekdetectie/internal/errors"
	"github.com/bbscheffer1-byte/BAMAB-lekdetectie/internal/render"
	"github.com/bbscheffer1-byte/BAMAB-lekdetectie/internal/report"
	"github.com/bbscheffer1-byte/BAMAB-lekdetectie/internal/store"
)

// Handlers holds shared dependencies for HTTP handlers.
type Handlers struct {
	store    *store.Store
	orgName  string
	renderer *Renderer
}

// HandleList renders the archive, newest first, optionally filtered by the
// q parameter (case-insensitive substring on client name or reference).
func (h *Handlers) HandleList(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query().Get("q")

	var items []report.SavedReportRecord
	if query != "" {
		items = h.store.Search(query)
	} else {
		items = h.store.Sorted()
	}

	h.renderer.renderPage(w, "list", ListPageData{
		PageData: PageData{Title: "Rapport Archief"},
		Items:    items,
		Query:    query,
	})
}

// HandleDocument serves the printable document for an archived record. The
// photo set is always empty here: stored records carry text only, so the
// renderer shows the photos-not-retained notice.
func (h *Handlers) HandleDocument(w http.ResponseWriter, r *http.Request) {
	rec, err := h.store.Get(r.PathValue("id"))
	if err != nil {
		h.renderer.renderError(w, err)
		return
	}

	doc, err := render.Document(render.Input{
		Markdown:  rec.Markdown,
		Photos:    nil,
		OrgName:   h.orgName,
		CreatedAt: time.UnixMilli(rec.Timestamp),
	})
	if err != nil {
		h.renderer.renderError(w, errors.NewInternal(err))
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = w.Write([]byte(doc))
}

// HandleDeleteForm deletes a record via a plain HTML form post and returns
// to the archive. Deletion is idempotent, so an already-gone id still
// redirects cleanly.
func (h *Handlers) HandleDeleteForm(w http.ResponseWriter, r *http.Request) {
	if err := h.store.Remove(r.PathValue("id")); err != nil {
		h.renderer.renderError(w, err)
		return
	}
	http.Redirect(w, r, "/reports", http.StatusSeeOther)
}

// HandleDelete deletes a record via the API-style DELETE verb.
func (h *Handlers) HandleDelete(w http.ResponseWriter, r *http.Request) {
	if err := h.store.Remove(r.PathValue("id")); err != nil {
		h.renderer.renderError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
