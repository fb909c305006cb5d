package doctree

import (
	"fmt"

	"github.com/flowershow/flowershow/internal/toc"
)

// DocTree is the root of a parsed content file.
type DocTree struct {
	Title    string     // Document title; empty if none
	Draft    bool       // Excluded from the site when true
	Children []*DocNode // Top-level sections
}

// DocNode is a recursive section in the document tree.
type DocNode struct {
	Title    string     // Section heading
	ID       string     // Anchor id of the heading; empty when the format has none
	Level    int        // Heading level 1..6
	Offset   float64    // Position of the heading in document order
	Children []*DocNode // Subsections
}

// Markers returns the tree's headings in document order.
func (t *DocTree) Markers() []toc.Marker {
	var out []toc.Marker
	var walk func(nodes []*DocNode)
	walk = func(nodes []*DocNode) {
		for _, n := range nodes {
			if n.Level > 0 {
				out = append(out, toc.Marker{
					Tag:      fmt.Sprintf("h%d", n.Level),
					ID:       n.ID,
					Title:    n.Title,
					Position: n.Offset,
				})
			}
			walk(n.Children)
		}
	}
	walk(t.Children)
	return out
}

// Headings returns the table-of-contents headings of the tree.
func (t *DocTree) Headings() []toc.HeadingRecord {
	return toc.ExtractHeadings(t.Markers())
}

// FirstHeading returns the text of the first heading at level, or "".
func (t *DocTree) FirstHeading(level int) string {
	for _, m := range t.Markers() {
		if m.Tag == fmt.Sprintf("h%d", level) && m.Title != "" {
			return m.Title
		}
	}
	return ""
}
