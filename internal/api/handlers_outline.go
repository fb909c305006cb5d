package api

import (
	"bytes"
	"fmt"
	"io"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/flowershow/flowershow/internal/parser"
	"github.com/flowershow/flowershow/internal/toc"
)

type outlineResponse struct {
	Filename string              `json:"filename"`
	Title    string              `json:"title,omitempty"`
	Draft    bool                `json:"draft,omitempty"`
	Headings []toc.HeadingRecord `json:"headings"`
	Outline  []*toc.Section      `json:"outline"`
}

// handleOutline parses an uploaded document and returns its table of
// contents without adding it to the site.
func (s *Server) handleOutline(w http.ResponseWriter, r *http.Request) {
	// Extra 1MB for form overhead.
	r.Body = http.MaxBytesReader(w, r.Body, s.cfg.MaxUploadBytes+1024*1024)

	if err := r.ParseMultipartForm(32 << 20); err != nil {
		jsonError(w, "invalid multipart form: "+err.Error(), http.StatusBadRequest)
		return
	}
	defer r.MultipartForm.RemoveAll()

	file, header, err := r.FormFile("file")
	if err != nil {
		jsonError(w, "file is required: "+err.Error(), http.StatusBadRequest)
		return
	}
	defer file.Close()

	filename := sanitizeFilename(header.Filename)
	p, err := parser.ForFile(filename)
	if err != nil {
		jsonError(w, fmt.Sprintf("unsupported file type: %s", filepath.Ext(filename)), http.StatusBadRequest)
		return
	}

	data, err := io.ReadAll(io.LimitReader(file, s.cfg.MaxUploadBytes+1))
	if err != nil {
		jsonError(w, "failed to read file", http.StatusInternalServerError)
		return
	}
	if int64(len(data)) > s.cfg.MaxUploadBytes {
		jsonError(w, fmt.Sprintf("file exceeds max size (%d bytes)", s.cfg.MaxUploadBytes), http.StatusRequestEntityTooLarge)
		return
	}

	tree, err := p.Parse(bytes.NewReader(data), filename)
	if err != nil {
		jsonError(w, "failed to parse file: "+err.Error(), http.StatusUnprocessableEntity)
		return
	}

	headings := tree.Headings()
	if headings == nil {
		headings = []toc.HeadingRecord{}
	}
	outline := toc.Outline(headings)
	if outline == nil {
		outline = []*toc.Section{}
	}
	writeJSON(w, http.StatusOK, outlineResponse{
		Filename: filename,
		Title:    tree.Title,
		Draft:    tree.Draft,
		Headings: headings,
		Outline:  outline,
	})
}

func sanitizeFilename(name string) string {
	// Strip path components, keep only the base name.
	name = filepath.Base(strings.ReplaceAll(name, "\\", "/"))
	if name == "." || name == "/" {
		return "upload"
	}
	return name
}
