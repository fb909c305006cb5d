package content

import (
	"bytes"
	"context"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/flowershow/flowershow/internal/sitemap"
)

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func writeFiles(t *testing.T, root string, files map[string]string) {
	t.Helper()
	for name, body := range files {
		p := filepath.Join(root, filepath.FromSlash(name))
		if err := os.MkdirAll(filepath.Dir(p), 0o755); err != nil {
			t.Fatalf("mkdir: %v", err)
		}
		if err := os.WriteFile(p, []byte(body), 0o644); err != nil {
			t.Fatalf("write %s: %v", name, err)
		}
	}
}

func TestRecordFor(t *testing.T) {
	tests := []struct {
		rel  string
		want sitemap.PageRecord
	}{
		{"about.md", sitemap.PageRecord{Slug: "about", URLPath: "/about"}},
		{"index.md", sitemap.PageRecord{Slug: "index", URLPath: ""}},
		{"docs/index.md", sitemap.PageRecord{Slug: "docs", URLPath: "/docs", SourceDir: "docs"}},
		{"docs/guides/intro.mdx", sitemap.PageRecord{Slug: "intro", URLPath: "/docs/guides/intro", SourceDir: "docs/guides"}},
		{"notes/todo.txt", sitemap.PageRecord{Slug: "todo", URLPath: "/notes/todo", SourceDir: "notes"}},
	}
	for _, tt := range tests {
		if got := RecordFor(tt.rel); got != tt.want {
			t.Errorf("RecordFor(%q) = %+v, want %+v", tt.rel, got, tt.want)
		}
	}
}

func TestIndexer_Build(t *testing.T) {
	root := t.TempDir()
	writeFiles(t, root, map[string]string{
		"index.md":            "# Home\n",
		"about.md":            "# About Us\n\n## Team\n",
		"docs/intro.md":       "---\ntitle: Introduction\n---\n## Setup\n",
		"docs/guides/deep.md": "Plain body, no heading.\n",
		"blog/draft.md":       "---\nisDraft: true\n---\n# Secret\n",
		"blog/post.html":      "<html><head><title>A Post</title></head><body><h2 id=\"one\">One</h2></body></html>",
		"notes.txt":           "just text",
		"data.csv":            "a,b\n1,2\n",
		"node_modules/x/y.md": "# ignored\n",
		"private/secret.md":   "# excluded by pattern\n",
		"docs/broken.md":      "---\ntitle: [oops\n---\n",
	})

	ix := NewIndexer(root, []string{"private/**"}, quietLogger())
	index, err := ix.Build(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if index.BuildID == "" {
		t.Error("expected a build id")
	}

	byURL := map[string]Page{}
	for _, p := range index.Pages {
		byURL[p.Record.URLPath] = p
	}
	wantURLs := []string{"/about", "/blog/post", "/docs/guides/deep", "/docs/intro", "/notes"}
	if len(byURL) != len(wantURLs) {
		t.Fatalf("expected pages %v, got %v", wantURLs, index.Records())
	}
	for _, u := range wantURLs {
		if _, ok := byURL[u]; !ok {
			t.Errorf("missing page %s", u)
		}
	}

	about := byURL["/about"]
	if about.Record.Title != "About Us" || about.Record.SourceDir != "" {
		t.Errorf("unexpected about record %+v", about.Record)
	}
	if len(about.Headings) != 2 || about.Headings[1].ID != "team" {
		t.Errorf("unexpected about headings %+v", about.Headings)
	}
	if intro := byURL["/docs/intro"]; intro.Record.Title != "Introduction" || intro.Record.SourceDir != "docs" {
		t.Errorf("unexpected intro record %+v", intro.Record)
	}
	if deep := byURL["/docs/guides/deep"]; deep.Record.Title != "" || deep.Record.Slug != "deep" {
		t.Errorf("unexpected deep record %+v", deep.Record)
	}
	if post := byURL["/blog/post"]; post.Record.Title != "A Post" || len(post.Headings) != 1 {
		t.Errorf("unexpected post %+v", post)
	}

	s, err := index.Sitemap(mustBuilder(t))
	if err != nil {
		t.Fatalf("sitemap: %v", err)
	}
	var names []string
	for _, e := range s {
		names = append(names, e.Name)
	}
	want := []string{"About Us", "just text", "blog", "docs"}
	if !reflect.DeepEqual(names, want) {
		t.Errorf("expected sitemap %v, got %v", want, names)
	}
	if g, ok := s.Locate("/docs/guides/deep"); !ok || g != "docs" {
		t.Errorf("expected deep page under docs, got (%q, %v)", g, ok)
	}
}

func TestIndexer_MissingRoot(t *testing.T) {
	ix := NewIndexer(filepath.Join(t.TempDir(), "nope"), nil, quietLogger())
	if _, err := ix.Build(context.Background()); err == nil {
		t.Fatal("expected error for missing content dir")
	}
}

func TestIndexer_FollowsSymlinkedRoot(t *testing.T) {
	real := t.TempDir()
	writeFiles(t, real, map[string]string{"page.md": "# Page\n"})
	link := filepath.Join(t.TempDir(), "content")
	if err := os.Symlink(real, link); err != nil {
		t.Skipf("symlinks unavailable: %v", err)
	}
	index, err := NewIndexer(link, nil, quietLogger()).Build(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(index.Pages) != 1 {
		t.Errorf("expected 1 page through symlink, got %d", len(index.Pages))
	}
}

func TestIndexer_Canceled(t *testing.T) {
	root := t.TempDir()
	writeFiles(t, root, map[string]string{"a.md": "# A\n"})
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := NewIndexer(root, nil, quietLogger()).Build(ctx); err == nil {
		t.Fatal("expected error for canceled context")
	}
}

func TestSearchIndex_RoundTrip(t *testing.T) {
	records := []sitemap.PageRecord{
		{Title: "Intro", Slug: "intro", URLPath: "/docs/intro", SourceDir: "docs"},
		{Slug: "about", URLPath: "/about"},
	}
	out := filepath.Join(t.TempDir(), "public", "search.json")
	if err := WriteSearchIndex(out, records); err != nil {
		t.Fatalf("write: %v", err)
	}
	data, err := os.ReadFile(out)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if !bytes.Contains(data, []byte(`"sourceDir": null`)) {
		t.Errorf("expected null sourceDir in output, got %s", data)
	}
	got, err := ReadSearchIndex(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if !reflect.DeepEqual(got, records) {
		t.Errorf("expected %+v, got %+v", records, got)
	}
}

func TestExcluded(t *testing.T) {
	patterns := append(append([]string{}, DefaultExcludes...), "drafts/**", "*.tmp")
	tests := map[string]bool{
		".git":                 true,
		"node_modules":         true,
		"docs/.DS_Store":       true,
		"drafts/a.md":          true,
		"notes/scratch.tmp":    true,
		"docs/intro.md":        false,
		"docs/drafts-later.md": false,
	}
	for p, want := range tests {
		if got := excluded(p, patterns); got != want {
			t.Errorf("excluded(%q) = %v, want %v", p, got, want)
		}
	}
}

func mustBuilder(t *testing.T) *sitemap.Builder {
	t.Helper()
	b, err := sitemap.NewBuilder(sitemap.DefaultLocale)
	if err != nil {
		t.Fatalf("builder: %v", err)
	}
	return b
}
