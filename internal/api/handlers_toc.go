package api

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/flowershow/flowershow/internal/toc"
	"github.com/go-chi/chi/v5"
)

type pageTocResponse struct {
	URLPath  string              `json:"url_path"`
	Title    string              `json:"title,omitempty"`
	Headings []toc.HeadingRecord `json:"headings"`
	Outline  []*toc.Section      `json:"outline"`
}

func (s *Server) handlePageToc(w http.ResponseWriter, r *http.Request) {
	if !s.cfg.ShowToc {
		jsonError(w, "table of contents disabled", http.StatusNotFound)
		return
	}
	index := s.currentIndex(w)
	if index == nil {
		return
	}

	urlPath := "/" + strings.Trim(chi.URLParam(r, "*"), "/")
	page, ok := index.Page(urlPath)
	if !ok {
		jsonError(w, "page not found: "+urlPath, http.StatusNotFound)
		return
	}

	headings := page.Headings
	if headings == nil {
		headings = []toc.HeadingRecord{}
	}
	outline := toc.Outline(headings)
	if outline == nil {
		outline = []*toc.Section{}
	}
	writeJSON(w, http.StatusOK, pageTocResponse{
		URLPath:  page.Record.URLPath,
		Title:    page.Record.Title,
		Headings: headings,
		Outline:  outline,
	})
}

type currentSectionRequest struct {
	Headings       []toc.HeadingRecord `json:"headings"`
	ScrollY        float64             `json:"scroll_y"`
	ViewportOffset *float64            `json:"viewport_offset"`
}

type currentSectionResponse struct {
	Section  *string `json:"section"`
	Scrolled bool    `json:"scrolled"`
}

// handleCurrentSection answers which heading is active for one scroll
// sample. A missing viewport_offset falls back to the configured default.
func (s *Server) handleCurrentSection(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, 1<<20)

	var req currentSectionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		jsonError(w, "invalid request body: "+err.Error(), http.StatusBadRequest)
		return
	}
	offset := s.cfg.ViewportOffset
	if req.ViewportOffset != nil {
		offset = *req.ViewportOffset
	}

	var resp currentSectionResponse
	if id, ok := toc.CurrentSection(req.Headings, req.ScrollY, offset); ok {
		resp.Section = &id
	}
	resp.Scrolled = req.ScrollY > 0
	writeJSON(w, http.StatusOK, resp)
}
