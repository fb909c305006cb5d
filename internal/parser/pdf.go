package parser

import (
	"bytes"
	"fmt"
	"io"
	"strings"

	"github.com/flowershow/flowershow/internal/doctree"
	pdflib "github.com/ledongthuc/pdf"
)

// PDFParser handles PDF files. PDFs carry no anchored headings, so only the
// title is extracted: the Info dictionary's /Title, else the first line of
// text on page one.
type PDFParser struct{}

func (p *PDFParser) Parse(r io.Reader, filename string) (tree *doctree.DocTree, err error) {
	raw, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	// The pdf reader panics on some malformed object graphs.
	defer func() {
		if rec := recover(); rec != nil {
			tree, err = nil, fmt.Errorf("parse pdf: %v", rec)
		}
	}()

	reader, err := pdflib.NewReader(bytes.NewReader(raw), int64(len(raw)))
	if err != nil {
		return nil, fmt.Errorf("parse pdf: %w", err)
	}

	title := strings.TrimSpace(reader.Trailer().Key("Info").Key("Title").Text())
	if title == "" && reader.NumPage() > 0 {
		title = firstPDFLine(reader.Page(1))
	}
	return &doctree.DocTree{Title: title}, nil
}

func firstPDFLine(page pdflib.Page) string {
	if page.V.IsNull() {
		return ""
	}
	text, err := page.GetPlainText(nil)
	if err != nil {
		return ""
	}
	for _, line := range strings.Split(text, "\n") {
		if line = strings.TrimSpace(line); line != "" {
			return line
		}
	}
	return ""
}
