package parser

import (
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/flowershow/flowershow/internal/doctree"
)

// ErrUnsupported is returned by ForFile for extensions no parser handles.
var ErrUnsupported = errors.New("unsupported file extension")

// Parser converts raw document bytes into a DocTree.
type Parser interface {
	Parse(r io.Reader, filename string) (*doctree.DocTree, error)
}

// SupportedExtensions lists file extensions that become site pages.
var SupportedExtensions = map[string]bool{
	".md":       true,
	".markdown": true,
	".mdx":      true,
	".txt":      true,
	".html":     true,
	".htm":      true,
	".pdf":      true,
	".docx":     true,
}

// ForFile returns the appropriate parser for a filename.
func ForFile(filename string) (Parser, error) {
	ext := strings.ToLower(filepath.Ext(filename))
	switch ext {
	case ".txt":
		return &TextParser{}, nil
	case ".md", ".markdown", ".mdx":
		return &MarkdownParser{}, nil
	case ".html", ".htm":
		return &HTMLParser{}, nil
	case ".pdf":
		return &PDFParser{}, nil
	case ".docx":
		return &DOCXParser{}, nil
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupported, ext)
	}
}

// IsSupportedExtension checks if a file extension is supported.
func IsSupportedExtension(filename string) bool {
	ext := strings.ToLower(filepath.Ext(filename))
	return SupportedExtensions[ext]
}

// outline nests headings under the nearest preceding heading of a lower level.
type outline struct {
	roots []*doctree.DocNode
	stack []*doctree.DocNode
}

func (o *outline) add(n *doctree.DocNode) {
	for len(o.stack) > 0 && o.stack[len(o.stack)-1].Level >= n.Level {
		o.stack = o.stack[:len(o.stack)-1]
	}
	if len(o.stack) == 0 {
		o.roots = append(o.roots, n)
	} else {
		parent := o.stack[len(o.stack)-1]
		parent.Children = append(parent.Children, n)
	}
	o.stack = append(o.stack, n)
}
