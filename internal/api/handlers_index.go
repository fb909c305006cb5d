package api

import (
	"net/http"

	"github.com/flowershow/flowershow/internal/content"
)

// handleSearchIndex serves the page feed of the current index.
func (s *Server) handleSearchIndex(w http.ResponseWriter, r *http.Request) {
	index := s.currentIndex(w)
	if index == nil {
		return
	}
	writeJSON(w, http.StatusOK, index.Records())
}

func (s *Server) handleRebuild(w http.ResponseWriter, r *http.Request) {
	index, err := s.orchestrator.Rebuild(r.Context())
	if err != nil {
		jsonError(w, "rebuild failed: "+err.Error(), http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"build_id":    index.BuildID,
		"pages":       len(index.Pages),
		"duration_ms": index.Duration.Milliseconds(),
	})
}

func (s *Server) handleStats(w http.ResponseWriter, r *http.Request) {
	if s.stats == nil {
		jsonError(w, "build stats unavailable", http.StatusServiceUnavailable)
		return
	}
	resp := map[string]any{"builds": s.stats.Snapshot()}
	if index := s.orchestrator.Current(); index != nil {
		resp["build_id"] = index.BuildID
		resp["built_at"] = index.BuiltAt
		resp["pages"] = len(index.Pages)
	}
	writeJSON(w, http.StatusOK, resp)
}

// recordBuild feeds every build attempt into metrics and build stats.
func (s *Server) recordBuild(index *content.Index, err error) {
	if err != nil {
		if s.stats != nil {
			s.stats.Record(0, true)
		}
		s.metrics.RecordBuild(0, 0, err)
		return
	}

	groups := 0
	if sm, serr := index.Sitemap(s.builder); serr == nil {
		for _, e := range sm {
			if e.IsGroup() {
				groups++
			}
		}
	} else {
		s.log.Warn("sitemap for build metrics", "build_id", index.BuildID, "error", serr)
	}
	if s.stats != nil {
		s.stats.Record(index.Duration, false)
	}
	s.metrics.RecordBuild(len(index.Pages), groups, nil)
}
