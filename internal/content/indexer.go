package content

import (
	"context"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path"
	"path/filepath"
	"strings"
	"time"

	"github.com/flowershow/flowershow/internal/parser"
	"github.com/flowershow/flowershow/internal/sitemap"
	"github.com/google/uuid"
)

// Indexer turns a content folder into an Index.
type Indexer struct {
	Root    string
	Exclude []string
	Log     *slog.Logger
}

// NewIndexer returns an indexer for root. DefaultExcludes are always applied.
func NewIndexer(root string, exclude []string, log *slog.Logger) *Indexer {
	if log == nil {
		log = slog.Default()
	}
	patterns := append(append([]string{}, DefaultExcludes...), exclude...)
	return &Indexer{Root: root, Exclude: patterns, Log: log}
}

// Build walks the content folder and parses every supported file. Drafts
// and pages without a url path are left out. Files that fail to parse are
// logged and skipped.
func (ix *Indexer) Build(ctx context.Context) (*Index, error) {
	root, err := filepath.EvalSymlinks(ix.Root)
	if err != nil {
		return nil, fmt.Errorf("resolve content dir: %w", err)
	}
	info, err := os.Stat(root)
	if err != nil {
		return nil, fmt.Errorf("stat content dir: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("content dir %s is not a directory", ix.Root)
	}

	start := time.Now()
	index := &Index{BuildID: uuid.NewString(), BuiltAt: start}
	log := ix.Log.With("build_id", index.BuildID, "root", ix.Root)
	skipped := 0

	err = filepath.WalkDir(root, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if err := ctx.Err(); err != nil {
			return err
		}
		rel, err := filepath.Rel(root, p)
		if err != nil {
			return err
		}
		if rel == "." {
			return nil
		}
		if excluded(rel, ix.Exclude) {
			if d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}
		if d.IsDir() || !parser.IsSupportedExtension(rel) {
			return nil
		}

		page, ok, err := ix.parseFile(p, filepath.ToSlash(rel))
		if err != nil {
			log.Warn("skipping unparseable file", "path", rel, "error", err)
			skipped++
			return nil
		}
		if ok {
			index.Pages = append(index.Pages, page)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walk content dir: %w", err)
	}

	index.Duration = time.Since(start)
	log.Info("index built",
		"pages", len(index.Pages),
		"skipped", skipped,
		"duration_ms", index.Duration.Milliseconds(),
	)
	return index, nil
}

func (ix *Indexer) parseFile(fullPath, rel string) (Page, bool, error) {
	p, err := parser.ForFile(rel)
	if err != nil {
		return Page{}, false, err
	}
	f, err := os.Open(fullPath)
	if err != nil {
		return Page{}, false, err
	}
	defer f.Close()

	tree, err := p.Parse(f, path.Base(rel))
	if err != nil {
		return Page{}, false, err
	}
	if tree.Draft {
		return Page{}, false, nil
	}

	record := RecordFor(rel)
	if record.URLPath == "" {
		return Page{}, false, nil
	}
	record.Title = tree.Title

	return Page{
		Record:   record,
		Path:     rel,
		Headings: tree.Headings(),
	}, true, nil
}

// RecordFor derives slug, url path and source dir from a content-relative
// path such as "docs/guides/intro.md". The root index page has an empty url
// path: it is the home page, not a navigation entry.
func RecordFor(rel string) sitemap.PageRecord {
	rel = filepath.ToSlash(rel)
	dir := path.Dir(rel)
	if dir == "." {
		dir = ""
	}
	name := strings.TrimSuffix(path.Base(rel), path.Ext(rel))

	urlPath := strings.TrimSuffix(rel, path.Ext(rel))
	slug := name
	if name == "index" {
		urlPath = dir
		if dir != "" {
			slug = path.Base(dir)
		}
	}
	if urlPath != "" {
		urlPath = "/" + urlPath
	}

	return sitemap.PageRecord{
		Slug:      slug,
		URLPath:   urlPath,
		SourceDir: dir,
	}
}
