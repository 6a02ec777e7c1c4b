package web

import (
	"embed"
	"fmt"
	"html/template"
	"io/fs"
	"log/slog"
	"net/http"

	"github.com/wadahiro/urllens/internal/state"
)

//go:embed templates static
var uiFS embed.FS

// Telemetry observes parse and comparison outcomes. Parse results never
// depend on it. Implementations must be safe for concurrent use.
type Telemetry interface {
	ObserveParse(ok bool)
	ObserveCompare(allIdentical bool)
}

type noopTelemetry struct{}

func (noopTelemetry) ObserveParse(bool)   {}
func (noopTelemetry) ObserveCompare(bool) {}

// Handler serves the inspector page and its JSON mirror.
type Handler struct {
	tmpl      *template.Template
	static    http.Handler
	theme     string
	telemetry Telemetry
}

// Options configures a Handler.
type Options struct {
	Theme     string    // auto, light, or dark; empty means auto
	Telemetry Telemetry // nil disables telemetry
}

// NewHandler parses the embedded templates and returns a ready handler.
func NewHandler(opts Options) (*Handler, error) {
	tmpl, err := template.ParseFS(uiFS, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("parse templates: %w", err)
	}

	staticFS, err := fs.Sub(uiFS, "static")
	if err != nil {
		return nil, fmt.Errorf("static files: %w", err)
	}

	theme := opts.Theme
	if theme == "" {
		theme = "auto"
	}
	telemetry := opts.Telemetry
	if telemetry == nil {
		telemetry = noopTelemetry{}
	}

	return &Handler{
		tmpl:      tmpl,
		static:    http.FileServer(http.FS(staticFS)),
		theme:     theme,
		telemetry: telemetry,
	}, nil
}

// RegisterRoutes registers the inspector handlers on the given mux.
func (h *Handler) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("/", h.handleIndex)
	mux.HandleFunc("/api/inspect", h.handleInspect)
	mux.Handle("/static/", http.StripPrefix("/static/", h.static))
}

func (h *Handler) handleIndex(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}

	slots := state.Decode(r.URL.Query())
	data := h.buildPageData(slots)

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := h.tmpl.ExecuteTemplate(w, "index.html", data); err != nil {
		slog.Error("Render failed", "error", err)
	}
}
