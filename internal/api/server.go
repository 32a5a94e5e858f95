package api

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/dgallion1/docfill/internal/apperr"
	"github.com/dgallion1/docfill/internal/config"
	"github.com/dgallion1/docfill/internal/placeholder"
	"github.com/dgallion1/docfill/internal/preview"
	"github.com/dgallion1/docfill/internal/session"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/rs/cors"
)

// Server is the HTTP API server for docfill.
type Server struct {
	router  chi.Router
	store   *session.Store
	scanner *placeholder.Scanner
	preview *preview.Renderer
	log     *slog.Logger
	cfg     config.Config
}

// NewServer creates and configures the HTTP server.
func NewServer(store *session.Store, scanner *placeholder.Scanner, renderer *preview.Renderer, log *slog.Logger, cfg config.Config) *Server {
	s := &Server{
		store:   store,
		scanner: scanner,
		preview: renderer,
		log:     log,
		cfg:     cfg,
	}
	s.setupRoutes()
	return s
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

func (s *Server) setupRoutes() {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(middleware.RequestID)
	r.Use(RequestLogger(s.log))
	r.Use(cors.New(cors.Options{
		AllowedOrigins: s.cfg.CORSAllowedOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodDelete},
		AllowedHeaders: []string{"Content-Type"},
	}).Handler)

	r.Get("/health", s.handleHealth)

	r.Post("/api/templates", s.handleUpload)
	r.Post("/api/templates/sample", s.handleSample)

	r.Route("/api/sessions/{sessionID}", func(r chi.Router) {
		r.Get("/", s.handleState)
		r.Delete("/", s.handleDestroy)
		r.Post("/answers", s.handleAnswer)
		r.Delete("/answers/{index}", s.handleClearAnswer)
		r.Get("/sheet", s.handleSheet)
		r.Get("/preview", s.handlePreview)
		r.Get("/export", s.handleExport)
	})

	s.router = r
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.Write([]byte(`{"status":"ok"}`))
}

// sessionFromRequest resolves the session URL param, or writes a 404.
func (s *Server) sessionFromRequest(w http.ResponseWriter, r *http.Request) *session.Session {
	id := chi.URLParam(r, "sessionID")
	sess := s.store.Get(id)
	if sess == nil {
		writeError(w, apperr.SessionNotFound(id))
		return nil
	}
	return sess
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, err error) {
	writeJSON(w, apperr.StatusCode(err), map[string]string{
		"error": err.Error(),
		"kind":  string(apperr.KindOf(err)),
	})
}
