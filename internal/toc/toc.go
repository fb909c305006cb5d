// Package toc builds the table of contents of a page and decides which
// heading is active for a scroll position.
package toc

import (
	"strings"
)

// MaxLevel is the deepest heading level tracked in the table of contents.
const MaxLevel = 3

// Marker is a raw heading found in rendered content.
type Marker struct {
	Tag      string  `json:"tag"`
	ID       string  `json:"id,omitempty"`
	Title    string  `json:"title,omitempty"`
	Position float64 `json:"position"`
}

// HeadingRecord is a heading that can be targeted by navigation.
type HeadingRecord struct {
	ID            string  `json:"id"`
	Level         int     `json:"level"`
	TextOffsetTop float64 `json:"textOffsetTop"`
	Title         string  `json:"title,omitempty"`
}

// Section is a heading with its nested subheadings.
type Section struct {
	HeadingRecord
	Children []*Section `json:"children,omitempty"`
}

// LevelOf returns the level encoded in an h1..h3 tag, or 0.
func LevelOf(tag string) int {
	switch strings.ToLower(strings.TrimSpace(tag)) {
	case "h1":
		return 1
	case "h2":
		return 2
	case "h3":
		return 3
	}
	return 0
}

// ExtractHeadings converts markers into heading records. Markers that are not
// h1..h3 or have no id are skipped; order is preserved.
func ExtractHeadings(markers []Marker) []HeadingRecord {
	out := make([]HeadingRecord, 0, len(markers))
	for _, m := range markers {
		level := LevelOf(m.Tag)
		if level == 0 || m.ID == "" {
			continue
		}
		out = append(out, HeadingRecord{
			ID:            m.ID,
			Level:         level,
			TextOffsetTop: m.Position,
			Title:         m.Title,
		})
	}
	return out
}

// CurrentSection returns the id of the last heading, in document order, whose
// offset is at or above scrollY+viewportOffset. ok is false when no heading
// qualifies. headings must be in document order.
func CurrentSection(headings []HeadingRecord, scrollY, viewportOffset float64) (id string, ok bool) {
	anchor := scrollY + viewportOffset
	for _, h := range headings {
		if h.TextOffsetTop <= anchor {
			id, ok = h.ID, true
		}
	}
	return id, ok
}

// Outline nests headings by level. A heading becomes a child of the closest
// preceding heading with a lower level.
func Outline(headings []HeadingRecord) []*Section {
	type stackEntry struct {
		node  *Section
		level int
	}
	root := &Section{}
	stack := []stackEntry{{node: root, level: 0}}

	for _, h := range headings {
		node := &Section{HeadingRecord: h}
		for len(stack) > 1 && stack[len(stack)-1].level >= h.Level {
			stack = stack[:len(stack)-1]
		}
		parent := stack[len(stack)-1].node
		parent.Children = append(parent.Children, node)
		stack = append(stack, stackEntry{node: node, level: h.Level})
	}
	return root.Children
}
