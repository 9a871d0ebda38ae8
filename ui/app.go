package ui

import (
	"embed"
	"fmt"
	"html/template"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"dfsummary/adapters/chart"
	"dfsummary/app"
	"dfsummary/internal"
	"dfsummary/ports"
)

//go:embed templates/* static/*
var embeddedFiles embed.FS

// App is the interactive summary dashboard
type App struct {
	router     *chi.Mux
	config     Config
	registry   ports.DatasetRegistryPort
	summarizer ports.SummarizerPort
	charts     *chart.Builder
	templates  *template.Template
	intro      template.HTML
	logger     *internal.Logger
}

// Config holds UI application configuration
type Config struct {
	Port           string
	DefaultDataset string
	DefaultMode    app.DisplayMode
	PanelHeight    int
	TableOptions   map[string]any
	PreviewRows    int
}

// NewApp creates the UI application. The view settings in config are
// validated here so a bad setup fails before any page is served.
func NewApp(config Config, registry ports.DatasetRegistryPort, summarizer ports.SummarizerPort, charts *chart.Builder, logger *internal.Logger) (*App, error) {
	if config.PreviewRows <= 0 {
		config.PreviewRows = 100
	}
	base := app.ViewConfig{Mode: config.DefaultMode, Height: config.PanelHeight, TableOptions: config.TableOptions}
	if err := base.Validate(); err != nil {
		return nil, err
	}

	templates, err := template.ParseFS(embeddedFiles, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("failed to parse templates: %w", err)
	}

	a := &App{
		router:     chi.NewRouter(),
		config:     config,
		registry:   registry,
		summarizer: summarizer,
		charts:     charts,
		templates:  templates,
		intro:      renderMarkdown(introText),
		logger:     logger,
	}

	a.setupMiddleware()
	a.setupRoutes()

	return a, nil
}

// setupMiddleware configures HTTP middleware
func (a *App) setupMiddleware() {
	a.router.Use(middleware.Logger)
	a.router.Use(middleware.Recoverer)
	a.router.Use(middleware.Compress(5))
}

// setupRoutes configures the application routes
func (a *App) setupRoutes() {
	a.router.Get("/", a.handleIndex)
	a.router.Get("/fragments/summary", a.handleSummaryFragment)

	staticFS := http.FileServer(http.FS(embeddedFiles))
	a.router.Handle("/static/*", staticFS)
}

// Handler exposes the router, mainly for tests
func (a *App) Handler() http.Handler {
	return a.router
}

// Start starts the HTTP server
func (a *App) Start() error {
	port := a.config.Port
	if port == "" {
		port = "8080"
	}
	a.logger.Info("Starting summary dashboard on http://localhost:%s", port)
	return http.ListenAndServe(":"+port, a.router)
}

// renderTemplate executes a template with the given data
func (a *App) renderTemplate(w http.ResponseWriter, templateName string, data interface{}) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := a.templates.ExecuteTemplate(w, templateName, data); err != nil {
		a.logger.Error("Template error for %s: %v", templateName, err)
		http.Error(w, "Template error", http.StatusInternalServerError)
	}
}

// HTMX helpers
func isHTMX(r *http.Request) bool {
	return r.Header.Get("HX-Request") == "true"
}
