package server

import (
	"encoding/json"
	"errors"
	"io/fs"
	"net/http"

	"github.com/nishanthcgit/haystack-website/internal/outline"
	"github.com/nishanthcgit/haystack-website/internal/site"
)

type starsResponse struct {
	Stars *int `json:"stars"`
}

type outlineResponse struct {
	Page     string            `json:"page"`
	Headings []outline.Heading `json:"headings"`
	Outline  []*outline.Node   `json:"outline"`
	Count    int               `json:"count"`
}

type errorResponse struct {
	Error string `json:"error"`
}

func (s *Server) handleStars(w http.ResponseWriter, r *http.Request) {
	var resp starsResponse
	if s.stars != nil {
		if n, ok := s.stars.Load(r.Context()); ok {
			resp.Stars = &n
		}
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleOutline(w http.ResponseWriter, r *http.Request) {
	if s.outliner == nil {
		writeJSON(w, http.StatusNotFound, errorResponse{Error: "outline not available"})
		return
	}
	page := r.URL.Query().Get("page")
	if page == "" {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "page is required"})
		return
	}

	headings, err := s.outliner.Outline(page)
	if errors.Is(err, fs.ErrNotExist) {
		writeJSON(w, http.StatusNotFound, errorResponse{Error: "page not found"})
		return
	}
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error()})
		return
	}
	if headings == nil {
		headings = []outline.Heading{}
	}
	forest := outline.Group(headings)
	if forest == nil {
		forest = []*outline.Node{}
	}
	writeJSON(w, http.StatusOK, outlineResponse{
		Page:     page,
		Headings: headings,
		Outline:  forest,
		Count:    outline.Count(forest),
	})
}

func (s *Server) handlePages(w http.ResponseWriter, r *http.Request) {
	m, err := site.ReadManifest(s.cfg.SiteDir)
	if errors.Is(err, fs.ErrNotExist) {
		writeJSON(w, http.StatusNotFound, errorResponse{Error: "site not built"})
		return
	}
	if err != nil {
		s.log.Error("reading manifest", "error", err)
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "manifest unreadable"})
		return
	}
	writeJSON(w, http.StatusOK, m)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}
