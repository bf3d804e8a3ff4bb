package http

import (
	"embed"
	"html/template"
	"net/http"
	"time"

	"github.com/MKhiriev/go-upload-desk/internal/logger"
	"github.com/MKhiriev/go-upload-desk/internal/utils"
)

//go:embed templates/*.html
var templateFS embed.FS

var pageTemplates = template.Must(template.ParseFS(templateFS, "templates/*.html"))

const (
	homePageTemplate   = "home_page.html"
	searchPageTemplate = "search_page.html"
)

type pageData struct {
	Timestamp int64
	Query     string
	CSRFToken string
}

func (h *Handler) homePage(w http.ResponseWriter, r *http.Request) {
	h.renderPage(w, r, homePageTemplate, "")
}

func (h *Handler) searchPage(w http.ResponseWriter, r *http.Request) {
	h.renderPage(w, r, searchPageTemplate, r.URL.Query().Get("q"))
}

// renderPage renders an HTML shell with caching disabled so the web client
// always picks up fresh scripts.
func (h *Handler) renderPage(w http.ResponseWriter, r *http.Request, name, query string) {
	token, ok := h.issueCSRF(w, r)
	if !ok {
		return
	}

	utils.SetNoCache(w)
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)

	data := pageData{
		Timestamp: time.Now().Unix(),
		Query:     query,
		CSRFToken: token,
	}
	if err := pageTemplates.ExecuteTemplate(w, name, data); err != nil {
		logger.FromRequest(r).Error().Err(err).Str("template", name).Msg("rendering page")
	}
}

//go:embed static
var staticFS embed.FS

// staticFiles serves the web client scripts under /static/.
func staticFiles() http.Handler {
	return http.FileServerFS(staticFS)
}
