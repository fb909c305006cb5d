package content

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/flowershow/flowershow/internal/sitemap"
	"github.com/flowershow/flowershow/internal/toc"
)

// Page is one published content file.
type Page struct {
	Record   sitemap.PageRecord
	Path     string // Source path relative to the content root
	Headings []toc.HeadingRecord
}

// Index is an immutable snapshot of the site's pages.
type Index struct {
	BuildID  string
	BuiltAt  time.Time
	Duration time.Duration
	Pages    []Page
}

// Records returns the search.json feed for the index.
func (ix *Index) Records() []sitemap.PageRecord {
	out := make([]sitemap.PageRecord, len(ix.Pages))
	for i, p := range ix.Pages {
		out[i] = p.Record
	}
	return out
}

// Page returns the page published at urlPath.
func (ix *Index) Page(urlPath string) (*Page, bool) {
	for i := range ix.Pages {
		if ix.Pages[i].Record.URLPath == urlPath {
			return &ix.Pages[i], true
		}
	}
	return nil, false
}

// Sitemap groups the index pages with the given builder.
func (ix *Index) Sitemap(b *sitemap.Builder) (sitemap.Sitemap, error) {
	return b.Build(ix.Records())
}

// WriteSearchIndex writes records as JSON to path, creating parent dirs.
func WriteSearchIndex(path string, records []sitemap.PageRecord) error {
	if records == nil {
		records = []sitemap.PageRecord{}
	}
	data, err := json.MarshalIndent(records, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal search index: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create %s: %w", filepath.Dir(path), err)
	}
	return os.WriteFile(path, data, 0o644)
}

// ReadSearchIndex decodes a search.json feed.
func ReadSearchIndex(r io.Reader) ([]sitemap.PageRecord, error) {
	var records []sitemap.PageRecord
	if err := json.NewDecoder(r).Decode(&records); err != nil {
		return nil, fmt.Errorf("decode search index: %w", err)
	}
	return records, nil
}
