package api

import (
	"net/http"

	"github.com/flowershow/flowershow/internal/sitemap"
)

type sitemapResponse struct {
	Sitemap     sitemap.Sitemap `json:"sitemap"`
	ActiveGroup string          `json:"active_group,omitempty"`
}

// handleSitemap serves the grouped navigation. With ?current=<href> the
// group holding that page is reported so a sidebar can expand it.
func (s *Server) handleSitemap(w http.ResponseWriter, r *http.Request) {
	if !s.cfg.ShowSidebar {
		jsonError(w, "sidebar disabled", http.StatusNotFound)
		return
	}
	index := s.currentIndex(w)
	if index == nil {
		return
	}

	sm, err := index.Sitemap(s.builder)
	if err != nil {
		s.log.Error("build sitemap", "build_id", index.BuildID, "error", err)
		jsonError(w, "failed to build sitemap: "+err.Error(), http.StatusInternalServerError)
		return
	}

	resp := sitemapResponse{Sitemap: sm}
	if current := r.URL.Query().Get("current"); current != "" {
		resp.ActiveGroup, _ = sm.Locate(current)
	}
	writeJSON(w, http.StatusOK, resp)
}
