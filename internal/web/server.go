// Package web serves the local map app: a Leaflet page over a small JSON API
// onto the collection, the selection and the analysis pipeline.
package web

import (
	"embed"
	"fmt"
	"io/fs"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"

	"github.com/chaejoon23/pind/internal/aggregator"
	"github.com/chaejoon23/pind/internal/pipeline"
	"github.com/chaejoon23/pind/internal/session"
)

//go:embed all:static
var staticFS embed.FS

// Server serves the interactive map web app and API.
type Server struct {
	Addr       string
	Pipeline   *pipeline.Pipeline
	Collection *aggregator.Collection
	Session    *session.Store
	Logger     zerolog.Logger
}

// Router builds the chi router for the app.
func (s *Server) Router() (http.Handler, error) {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)

	r.Get("/api/videos", s.handleVideos)
	r.Get("/api/locations", s.handleLocations)
	r.Get("/api/session", s.handleSession)
	r.Post("/api/selection", s.handleSelection)
	r.Post("/api/analyze", s.handleAnalyze)

	staticSub, err := fs.Sub(staticFS, "static")
	if err != nil {
		return nil, fmt.Errorf("creating sub filesystem: %w", err)
	}
	r.Handle("/*", http.FileServer(http.FS(staticSub)))

	return r, nil
}

// ListenAndServe starts the HTTP server.
func (s *Server) ListenAndServe() error {
	router, err := s.Router()
	if err != nil {
		return err
	}

	s.Logger.Info().Str("addr", s.Addr).Msg("serving map app")
	fmt.Printf("Serving at http://%s\n", s.Addr)
	return http.ListenAndServe(s.Addr, router)
}
