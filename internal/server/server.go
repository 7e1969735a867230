// Package server is the live-preview HTTP server. Pages are rendered from
// source on every request, so edits show up on reload.
package server

import (
	"errors"
	"io/fs"
	"log/slog"
	"net/http"
	"path/filepath"
	"regexp"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	prom "github.com/prometheus/client_golang/prometheus"
	"github.com/rgrove/selleck/internal/config"
	"github.com/rgrove/selleck/internal/fileutil"
	"github.com/rgrove/selleck/internal/higgins"
	"github.com/rgrove/selleck/internal/metrics"
	"github.com/rgrove/selleck/internal/pipeline"
	"github.com/rgrove/selleck/internal/render"
	"github.com/rgrove/selleck/internal/source"
)

const pageExt = ".html"

var namePattern = regexp.MustCompile(`^[\w\-]+$`)

// Server serves project and component docs straight from the source tree.
type Server struct {
	router   chi.Router
	cfg      config.Config
	log      *slog.Logger
	registry *prom.Registry
	rec      metrics.Recorder
	renderer *render.Renderer
	override map[string]any

	mu         sync.RWMutex
	project    string
	components map[string]string
	watcher    *fsnotify.Watcher
}

// New indexes cfg.Root and returns a ready Server.
func New(cfg config.Config, log *slog.Logger) (*Server, error) {
	override, err := cfg.OverrideMeta()
	if err != nil {
		return nil, err
	}

	reg := prom.NewRegistry()
	s := &Server{
		cfg:      cfg,
		log:      log,
		registry: reg,
		rec:      metrics.NewPrometheusRecorder(reg),
		renderer: render.New(higgins.Renderer{RequireTOC: cfg.RequireTOC}),
		override: override,
	}
	if err := s.Rescan(); err != nil {
		return nil, err
	}
	s.setupRoutes()
	return s, nil
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

func (s *Server) setupRoutes() {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(middleware.RequestID)
	r.Use(RequestLogger(s.log))

	r.Get("/health", s.handleHealth)
	r.Method(http.MethodGet, "/metrics", metrics.HTTPHandler(s.registry))
	r.Get("/assets/*", s.handleAsset)

	r.Get("/", s.handleProjectIndex)
	r.Get("/{name}", s.handleTopLevel)
	r.Get("/{component}/", s.handleComponentIndex)
	r.Get("/{component}/{page}", s.handleComponentPage)

	s.router = r
}

// Rescan rebuilds the project path and component index from cfg.Root.
func (s *Server) Rescan() error {
	docs, err := source.FindDocs(s.cfg.Root, s.log)
	if err != nil {
		return err
	}
	index := source.ComponentIndex(docs.Components, s.log)

	s.mu.Lock()
	s.project = docs.Project
	s.components = index
	s.mu.Unlock()

	s.log.Info("indexed docs", "root", s.cfg.Root, "project", docs.Project, "components", len(index))
	return nil
}

func (s *Server) docs() (string, map[string]string) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.project, s.components
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.Write([]byte(`{"status":"ok"}`))
}

// handleAsset looks under the named component's assets, then the
// project's, then the theme's.
func (s *Server) handleAsset(w http.ResponseWriter, r *http.Request) {
	rest := chi.URLParam(r, "*")
	if rest == "" || strings.Contains(rest, "..") {
		http.NotFound(w, r)
		return
	}

	project, components := s.docs()
	var candidates []string
	if comp, file, ok := strings.Cut(rest, "/"); ok {
		if dir, ok := components[comp]; ok {
			candidates = append(candidates, filepath.Join(dir, "assets", filepath.FromSlash(file)))
		}
	}
	if project != "" {
		candidates = append(candidates, filepath.Join(project, "assets", filepath.FromSlash(rest)))
	}
	candidates = append(candidates, filepath.Join(s.cfg.Theme, "assets", filepath.FromSlash(rest)))

	for _, path := range candidates {
		if fileutil.IsFile(path) {
			http.ServeFile(w, r, path)
			return
		}
	}
	http.NotFound(w, r)
}

func (s *Server) handleProjectIndex(w http.ResponseWriter, r *http.Request) {
	s.serveProjectPage(w, r, "index")
}

// handleTopLevel serves /<page>.html from the project and redirects
// /<component> to /<component>/.
func (s *Server) handleTopLevel(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")
	if page, ok := strings.CutSuffix(name, pageExt); ok {
		s.serveProjectPage(w, r, page)
		return
	}
	if !namePattern.MatchString(name) {
		http.NotFound(w, r)
		return
	}
	http.Redirect(w, r, "/"+name+"/", http.StatusMovedPermanently)
}

func (s *Server) handleComponentIndex(w http.ResponseWriter, r *http.Request) {
	s.serveComponentPage(w, r, chi.URLParam(r, "component"), "index")
}

func (s *Server) handleComponentPage(w http.ResponseWriter, r *http.Request) {
	page, ok := strings.CutSuffix(chi.URLParam(r, "page"), pageExt)
	if !ok {
		http.NotFound(w, r)
		return
	}
	s.serveComponentPage(w, r, chi.URLParam(r, "component"), page)
}

func (s *Server) serveProjectPage(w http.ResponseWriter, r *http.Request, page string) {
	project, _ := s.docs()
	if project == "" || !namePattern.MatchString(page) {
		s.notFound(w, r, metrics.KindProject)
		return
	}
	s.servePage(w, r, metrics.KindProject, project, page)
}

func (s *Server) serveComponentPage(w http.ResponseWriter, r *http.Request, component, page string) {
	_, components := s.docs()
	dir, ok := components[component]
	if !ok || !namePattern.MatchString(page) {
		s.notFound(w, r, metrics.KindComponent)
		return
	}
	s.servePage(w, r, metrics.KindComponent, dir, page)
}

func (s *Server) servePage(w http.ResponseWriter, r *http.Request, kind metrics.Kind, dir, page string) {
	start := time.Now()
	html, err := s.renderPage(kind, dir, page)
	s.rec.ObserveRender(kind, time.Since(start))

	switch {
	case errors.Is(err, fs.ErrNotExist):
		s.notFound(w, r, kind)
	case err != nil:
		s.rec.IncRender(kind, metrics.ResultError)
		s.log.Error("render failed", "dir", dir, "page", page, "error", err)
		http.Error(w, err.Error(), http.StatusInternalServerError)
	default:
		s.rec.IncRender(kind, metrics.ResultSuccess)
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.Write([]byte(html))
	}
}

func (s *Server) notFound(w http.ResponseWriter, r *http.Request, kind metrics.Kind) {
	s.rec.IncRender(kind, metrics.ResultNotFound)
	http.NotFound(w, r)
}

// renderPage loads the theme, project and page from disk and renders the
// page the same way a build would.
func (s *Server) renderPage(kind metrics.Kind, dir, page string) (string, error) {
	base, err := pipeline.LoadTheme(s.cfg.Theme)
	if err != nil {
		return "", err
	}
	component := kind == metrics.KindComponent
	if component {
		project, _ := s.docs()
		if base, err = base.ProjectBase(project); err != nil {
			return "", err
		}
	}

	site, err := pipeline.Prepare(dir, pipeline.Options{
		Component:    component,
		Meta:         base.Meta,
		Layouts:      base.Layouts,
		Partials:     base.Partials,
		OverrideMeta: s.override,
		RequireTOC:   s.cfg.RequireTOC,
	}, s.log)
	if err != nil {
		return "", err
	}

	html, _, err := site.RenderPage(s.renderer, page)
	return html, err
}
