// Package sitemap groups flat page records into the sidebar navigation.
//
// Pages are grouped by the first segment of their source directory only;
// deeper directories are flattened into that group. Loose pages (no source
// directory) come first, followed by the groups. Every level is stably sorted
// by name with a locale collation.
package sitemap

import (
	"encoding/json"
	"errors"
	"fmt"
	"slices"
	"strings"
)

// ErrInvalidRecord is returned when a page has neither a title nor a slug.
var ErrInvalidRecord = errors.New("invalid page record: title and slug are both empty")

// PageRecord is one entry of the search.json feed.
type PageRecord struct {
	Title     string `json:"title,omitempty"`
	Slug      string `json:"slug"`
	URLPath   string `json:"url_path"`
	SourceDir string `json:"sourceDir"`
}

// UnmarshalJSON accepts both url_path and urlPath, and a null sourceDir.
func (p *PageRecord) UnmarshalJSON(data []byte) error {
	var raw struct {
		Title      *string `json:"title"`
		Slug       *string `json:"slug"`
		URLPath    *string `json:"url_path"`
		URLPathAlt *string `json:"urlPath"`
		SourceDir  *string `json:"sourceDir"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	*p = PageRecord{
		Title:     deref(raw.Title),
		Slug:      deref(raw.Slug),
		URLPath:   deref(raw.URLPath),
		SourceDir: deref(raw.SourceDir),
	}
	if p.URLPath == "" {
		p.URLPath = deref(raw.URLPathAlt)
	}
	return nil
}

// MarshalJSON writes a null sourceDir for loose pages, as the feed does.
func (p PageRecord) MarshalJSON() ([]byte, error) {
	out := struct {
		Title     string  `json:"title,omitempty"`
		Slug      string  `json:"slug"`
		URLPath   string  `json:"url_path"`
		SourceDir *string `json:"sourceDir"`
	}{Title: p.Title, Slug: p.Slug, URLPath: p.URLPath}
	if p.SourceDir != "" {
		dir := p.SourceDir
		out.SourceDir = &dir
	}
	return json.Marshal(out)
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

// NavItem is a leaf navigation link.
type NavItem struct {
	Name string `json:"name"`
	Href string `json:"href"`
}

// NavGroup is a top-level directory with its pages.
type NavGroup struct {
	Name     string    `json:"name"`
	Children []NavItem `json:"children"`
}

// Entry is either a loose NavItem or a NavGroup. Groups always have a
// non-nil Children slice; items never do.
type Entry struct {
	Name     string    `json:"name"`
	Href     string    `json:"href,omitempty"`
	Children []NavItem `json:"children,omitempty"`
}

// IsGroup reports whether the entry is a directory group.
func (e Entry) IsGroup() bool { return e.Children != nil }

// Item returns the entry as a NavItem.
func (e Entry) Item() NavItem { return NavItem{Name: e.Name, Href: e.Href} }

// Group returns the entry as a NavGroup.
func (e Entry) Group() NavGroup { return NavGroup{Name: e.Name, Children: e.Children} }

func itemEntry(it NavItem) Entry { return Entry{Name: it.Name, Href: it.Href} }

func groupEntry(g NavGroup) Entry { return Entry{Name: g.Name, Children: g.Children} }

// Sitemap is the ordered navigation: loose items first, then groups.
type Sitemap []Entry

// Locate returns the name of the group containing a page with the given href.
// ok is true only when href belongs to a group; loose pages report false.
func (s Sitemap) Locate(href string) (group string, ok bool) {
	for _, e := range s {
		if !e.IsGroup() {
			continue
		}
		for _, c := range e.Children {
			if c.Href == href {
				return e.Name, true
			}
		}
	}
	return "", false
}

// Flatten returns every leaf in sitemap order.
func (s Sitemap) Flatten() []NavItem {
	var out []NavItem
	for _, e := range s {
		if e.IsGroup() {
			out = append(out, e.Children...)
			continue
		}
		out = append(out, e.Item())
	}
	return out
}

// GroupKey returns the grouping key of a source directory: its first path
// segment. loose is true when the page sits at the content root.
func GroupKey(sourceDir string) (key string, loose bool) {
	dir := strings.TrimSpace(sourceDir)
	for {
		trimmed := strings.TrimPrefix(strings.TrimPrefix(dir, "./"), "/")
		if trimmed == dir {
			break
		}
		dir = trimmed
	}
	if dir == "" || dir == "." {
		return "", true
	}
	key, _, _ = strings.Cut(dir, "/")
	return key, false
}

// NavItemFor maps a page to its navigation link.
func NavItemFor(p PageRecord) (NavItem, error) {
	name := p.Title
	if name == "" {
		name = p.Slug
	}
	if name == "" {
		return NavItem{}, ErrInvalidRecord
	}
	return NavItem{Name: name, Href: p.URLPath}, nil
}

// Builder builds sitemaps with a fixed collation.
type Builder struct {
	coll *Collator
}

// NewBuilder returns a Builder collating names for locale.
func NewBuilder(locale string) (*Builder, error) {
	coll, err := NewCollator(locale)
	if err != nil {
		return nil, err
	}
	return &Builder{coll: coll}, nil
}

var defaultBuilder = mustBuilder(DefaultLocale)

func mustBuilder(locale string) *Builder {
	b, err := NewBuilder(locale)
	if err != nil {
		panic(err)
	}
	return b
}

// Build groups pages using the root collation.
func Build(pages []PageRecord) (Sitemap, error) {
	return defaultBuilder.Build(pages)
}

// Locale returns the collation locale of the builder.
func (b *Builder) Locale() string { return b.coll.Locale() }

// Build groups pages into a Sitemap. It fails with ErrInvalidRecord if any
// page lacks both title and slug; no partial result is returned.
func (b *Builder) Build(pages []PageRecord) (Sitemap, error) {
	var loose []NavItem
	grouped := make(map[string][]NavItem)
	var order []string

	for i, p := range pages {
		item, err := NavItemFor(p)
		if err != nil {
			return nil, fmt.Errorf("page %d (url_path %q): %w", i, p.URLPath, err)
		}
		key, isLoose := GroupKey(p.SourceDir)
		if isLoose {
			loose = append(loose, item)
			continue
		}
		if _, seen := grouped[key]; !seen {
			order = append(order, key)
		}
		grouped[key] = append(grouped[key], item)
	}

	byName := func(a, c NavItem) int { return b.coll.Compare(a.Name, c.Name) }

	groups := make([]NavGroup, 0, len(order))
	for _, key := range order {
		children := grouped[key]
		slices.SortStableFunc(children, byName)
		groups = append(groups, NavGroup{Name: key, Children: children})
	}
	slices.SortStableFunc(groups, func(a, c NavGroup) int { return b.coll.Compare(a.Name, c.Name) })
	slices.SortStableFunc(loose, byName)

	out := make(Sitemap, 0, len(loose)+len(groups))
	for _, it := range loose {
		out = append(out, itemEntry(it))
	}
	for _, g := range groups {
		out = append(out, groupEntry(g))
	}
	return out, nil
}
