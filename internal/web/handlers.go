package web

import (
	"errors"
	"net/http"

	"github.com/goccy/go-json"

	"github.com/chaejoon23/pind/internal/analyzer"
	"github.com/chaejoon23/pind/internal/model"
)

func (s *Server) handleVideos(w http.ResponseWriter, r *http.Request) {
	resp := struct {
		Videos   []model.Video `json:"videos"`
		Selected []string      `json:"selected"`
	}{
		Videos:   s.Collection.Videos(),
		Selected: s.Collection.Selected(),
	}
	writeJSON(w, resp)
}

func (s *Server) handleLocations(w http.ResponseWriter, r *http.Request) {
	annotated := s.Collection.AnnotatedSelection()
	if annotated == nil {
		annotated = []model.AnnotatedLocation{}
	}
	writeJSON(w, annotated)
}

func (s *Server) handleSession(w http.ResponseWriter, r *http.Request) {
	resp := struct {
		Authenticated bool   `json:"authenticated"`
		Email         string `json:"email,omitempty"`
	}{}
	if s.Session != nil {
		resp.Authenticated = s.Session.IsAuthenticated()
		resp.Email = s.Session.UserEmail()
	}
	writeJSON(w, resp)
}

func (s *Server) handleSelection(w http.ResponseWriter, r *http.Request) {
	var req struct {
		VideoID string `json:"videoId"`
		Clear   bool   `json:"clear"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	switch {
	case req.Clear:
		s.Collection.ClearSelection()
	case req.VideoID != "":
		s.Collection.Toggle(req.VideoID)
	default:
		http.Error(w, "videoId or clear required", http.StatusBadRequest)
		return
	}

	writeJSON(w, map[string][]string{"selected": s.Collection.Selected()})
}

func (s *Server) handleAnalyze(w http.ResponseWriter, r *http.Request) {
	var req struct {
		URL string `json:"url"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.URL == "" {
		http.Error(w, "url required", http.StatusBadRequest)
		return
	}

	video, ok, err := s.Pipeline.Analyze(r.Context(), req.URL, nil)
	if err != nil {
		var ae *analyzer.Error
		if errors.As(err, &ae) {
			writeError(w, http.StatusBadGateway, ae.Message, ae.Category.String())
			return
		}
		writeError(w, http.StatusBadGateway, "analysis failed", "processing")
		return
	}

	resp := struct {
		Found bool         `json:"found"`
		Video *model.Video `json:"video,omitempty"`
	}{Found: ok}
	if ok {
		resp.Video = &video
	}
	writeJSON(w, resp)
}

func writeError(w http.ResponseWriter, status int, msg, category string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]string{
		"error":    msg,
		"category": category,
	})
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	// Wildcard CORS — this is a local tool, not a public API.
	w.Header().Set("Access-Control-Allow-Origin", "*")
	_ = json.NewEncoder(w).Encode(v)
}
