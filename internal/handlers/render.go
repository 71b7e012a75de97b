package handlers

import (
	"bytes"
	"io"
	"net/http"

	"github.com/flosch/pongo2/v6"

	"github.com/sbilibin2017/gw-user-admin/internal/logger"
	"github.com/sbilibin2017/gw-user-admin/internal/views"
)

// PageRenderer executes a named page template.
type PageRenderer interface {
	Render(w io.Writer, name string, data pongo2.Context) error
}

// renderPage renders into a buffer first so that a template failure still yields a clean 500.
func renderPage(w http.ResponseWriter, pages PageRenderer, status int, name string, data pongo2.Context) {
	var buf bytes.Buffer
	if err := pages.Render(&buf, name, data); err != nil {
		logger.Log.Errorw("failed to render page", "template", name, "error", err)
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, _ = buf.WriteTo(w)
}

func renderError(w http.ResponseWriter, pages PageRenderer, status int, message string) {
	renderPage(w, pages, status, views.TemplateError, views.ErrorPage(status, message))
}

func seeOther(w http.ResponseWriter, r *http.Request, url string) {
	http.Redirect(w, r, url, http.StatusSeeOther)
}

func draftURL(id string) string {
	return "/users/drafts/" + id
}

func listViewURL(id string) string {
	return "/users/views/" + id
}
