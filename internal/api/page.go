package api

import (
	"embed"
	"html/template"
	"io/fs"
	"net/http"

	"infinite-experiment/gamecache/internal/common"
	"infinite-experiment/gamecache/internal/games"
	"infinite-experiment/gamecache/internal/logging"
)

//go:embed templates/*.html
var templateFS embed.FS

//go:embed static
var staticFS embed.FS

var indexTemplate = template.Must(template.ParseFS(templateFS, "templates/index.html"))

type pageData struct {
	Games     []games.Game
	Message   string
	FromCache bool
	Error     string
}

// StaticHandler serves the embedded stylesheet under /static/
func StaticHandler() http.Handler {
	sub, err := fs.Sub(staticFS, "static")
	if err != nil {
		panic(err)
	}
	return http.StripPrefix("/static/", http.FileServer(http.FS(sub)))
}

// IndexPageHandler handles GET /: renders the catalogue and where it came from
func (h *Handlers) IndexPageHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		res, err := h.deps.Services.Catalogue.Load(r.Context())
		if err != nil {
			logging.Error("Failed to load catalogue", "error", err)
			renderPage(w, http.StatusInternalServerError, pageData{Error: "Unable to load games"})
			return
		}
		renderPage(w, http.StatusOK, pageData{
			Games:     res.Games,
			Message:   res.Message,
			FromCache: res.FromCache,
		})
	}
}

// ClearPageHandler handles POST /clear: drops the cached catalogue and
// renders an empty page
func (h *Handlers) ClearPageHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := h.deps.Services.Catalogue.Clear(r.Context()); err != nil {
			logging.Error("Failed to clear catalogue cache", "error", err)
			renderPage(w, common.StatusForError(err), pageData{Error: "Unable to clear cache"})
			return
		}
		renderPage(w, http.StatusOK, pageData{})
	}
}

func renderPage(w http.ResponseWriter, status int, data pageData) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	if err := indexTemplate.Execute(w, data); err != nil {
		logging.Error("Failed to render page", "error", err)
	}
}
