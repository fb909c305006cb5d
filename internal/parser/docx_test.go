package parser

import (
	"bytes"
	"strings"
	"testing"

	"github.com/fumiama/go-docx"
)

func buildDocx(t *testing.T, build func(d *docx.Docx)) *bytes.Buffer {
	t.Helper()
	d := docx.New().WithDefaultTheme()
	build(d)
	var buf bytes.Buffer
	if _, err := d.WriteTo(&buf); err != nil {
		t.Fatalf("write docx: %v", err)
	}
	return &buf
}

func TestDOCXParser_HeadingStyles(t *testing.T) {
	buf := buildDocx(t, func(d *docx.Docx) {
		d.AddParagraph().Style("Heading2").AddText("Preface")
		d.AddParagraph().AddText("Some body text.")
		d.AddParagraph().Style("Heading1").AddText("Guide")
		d.AddParagraph().Style("heading 2").AddText("Install")
		d.AddParagraph().AddText("More body.")
		d.AddParagraph().Style("Heading3").AddText("Linux")
		d.AddParagraph().Style("Heading1").AddText("Second Part")
		d.AddParagraph().Style("Heading2")
	})

	tree, err := (&DOCXParser{}).Parse(buf, "guide.docx")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if tree.Title != "Guide" {
		t.Errorf("expected title from first level-1 heading, got %q", tree.Title)
	}
	if h := tree.Headings(); len(h) != 0 {
		t.Errorf("word headings have no ids, expected no TOC entries, got %+v", h)
	}

	markers := tree.Markers()
	wantTitles := []string{"Preface", "Guide", "Install", "Linux", "Second Part"}
	wantTags := []string{"h2", "h1", "h2", "h3", "h1"}
	if len(markers) != len(wantTitles) {
		t.Fatalf("expected %d markers, got %+v", len(wantTitles), markers)
	}
	for i := range markers {
		if markers[i].Title != wantTitles[i] || markers[i].Tag != wantTags[i] {
			t.Errorf("marker %d: expected %s %q, got %+v", i, wantTags[i], wantTitles[i], markers[i])
		}
		if i > 0 && markers[i].Position <= markers[i-1].Position {
			t.Errorf("marker %d position %v not after %v", i, markers[i].Position, markers[i-1].Position)
		}
	}

	if len(tree.Children) != 3 || len(tree.Children[1].Children) != 1 || len(tree.Children[1].Children[0].Children) != 1 {
		t.Errorf("unexpected nesting %+v", tree.Children)
	}
}

func TestDOCXParser_NoHeadings(t *testing.T) {
	buf := buildDocx(t, func(d *docx.Docx) {
		d.AddParagraph().AddText("Only a paragraph.")
	})
	tree, err := (&DOCXParser{}).Parse(buf, "plain.docx")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if tree.Title != "" || len(tree.Children) != 0 {
		t.Errorf("expected untitled empty tree, got %+v", tree)
	}
}

func TestDOCXParser_Invalid(t *testing.T) {
	if _, err := (&DOCXParser{}).Parse(strings.NewReader("not a zip archive"), "broken.docx"); err == nil {
		t.Fatal("expected error for non-zip input")
	}
}
