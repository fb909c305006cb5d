package parser

import (
	"io"
	"strings"

	"github.com/flowershow/flowershow/internal/doctree"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	gmparser "github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/text"
)

// MarkdownParser handles Markdown files using goldmark.
type MarkdownParser struct{}

func (p *MarkdownParser) Parse(r io.Reader, filename string) (*doctree.DocTree, error) {
	raw, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	meta, src, err := splitFrontmatter(raw)
	if err != nil {
		return nil, err
	}

	md := goldmark.New(
		goldmark.WithParserOptions(
			gmparser.WithAutoHeadingID(),
			gmparser.WithAttribute(),
		),
	)
	doc := md.Parser().Parse(text.NewReader(src))

	// Headings nested in blockquotes and list items count too.
	var o outline
	err = ast.Walk(doc, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		h, ok := n.(*ast.Heading)
		if !ok {
			return ast.WalkContinue, nil
		}
		var offset float64
		if lines := h.Lines(); lines.Len() > 0 {
			offset = float64(lines.At(0).Start)
		}
		o.add(&doctree.DocNode{
			Title:  strings.TrimSpace(string(h.Text(src))),
			ID:     headingID(h),
			Level:  h.Level,
			Offset: offset,
		})
		return ast.WalkSkipChildren, nil
	})
	if err != nil {
		return nil, err
	}

	tree := &doctree.DocTree{
		Title:    metaString(meta, "title"),
		Draft:    metaBool(meta, "isDraft"),
		Children: o.roots,
	}
	if tree.Title == "" {
		tree.Title = tree.FirstHeading(1)
	}
	return tree, nil
}

func headingID(h *ast.Heading) string {
	v, ok := h.AttributeString("id")
	if !ok {
		return ""
	}
	switch id := v.(type) {
	case []byte:
		return string(id)
	case string:
		return id
	}
	return ""
}
