package doctree

import "testing"

func TestMarkers_PreOrder(t *testing.T) {
	tree := &DocTree{
		Children: []*DocNode{
			{Title: "Guide", ID: "guide", Level: 1, Offset: 0, Children: []*DocNode{
				{Title: "Setup", ID: "setup", Level: 2, Offset: 40, Children: []*DocNode{
					{Title: "Linux", ID: "linux", Level: 3, Offset: 60},
				}},
				{Title: "Usage", Level: 2, Offset: 90},
			}},
		},
	}

	markers := tree.Markers()
	wantTags := []string{"h1", "h2", "h3", "h2"}
	if len(markers) != len(wantTags) {
		t.Fatalf("expected %d markers, got %d", len(wantTags), len(markers))
	}
	for i, tag := range wantTags {
		if markers[i].Tag != tag {
			t.Errorf("marker %d: expected tag %q, got %q", i, tag, markers[i].Tag)
		}
	}

	headings := tree.Headings()
	if len(headings) != 3 {
		t.Fatalf("expected 3 headings (one has no id), got %d", len(headings))
	}
	if headings[2].ID != "linux" || headings[2].TextOffsetTop != 60 {
		t.Errorf("unexpected third heading %+v", headings[2])
	}
}

func TestFirstHeading(t *testing.T) {
	tree := &DocTree{Children: []*DocNode{
		{Title: "Sub", Level: 2},
		{Title: "Main", Level: 1},
	}}
	if got := tree.FirstHeading(1); got != "Main" {
		t.Errorf("expected Main, got %q", got)
	}
	if got := (&DocTree{}).FirstHeading(1); got != "" {
		t.Errorf("expected empty, got %q", got)
	}
}
