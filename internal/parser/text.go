package parser

import (
	"bufio"
	"io"
	"strings"

	"github.com/flowershow/flowershow/internal/doctree"
)

// TextParser handles plain text files.
type TextParser struct{}

// Parse titles a text file by its first non-blank line. Plain text carries
// no headings, so the tree has no children.
func (p *TextParser) Parse(r io.Reader, filename string) (*doctree.DocTree, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	tree := &doctree.DocTree{}
	for scanner.Scan() {
		line := strings.TrimSpace(strings.TrimPrefix(scanner.Text(), "\ufeff"))
		if line != "" {
			tree.Title = line
			break
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return tree, nil
}
