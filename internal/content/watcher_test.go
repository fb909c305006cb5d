package content

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/goleak"
)

func TestRelevant(t *testing.T) {
	root := t.TempDir()
	writeFiles(t, root, map[string]string{"docs/a.md": "# A\n", "public/search.json": "[]"})

	tests := []struct {
		name string
		ev   fsnotify.Event
		want bool
	}{
		{"page write", fsnotify.Event{Name: filepath.Join(root, "docs/a.md"), Op: fsnotify.Write}, true},
		{"page chmod", fsnotify.Event{Name: filepath.Join(root, "docs/a.md"), Op: fsnotify.Chmod}, false},
		{"removed page", fsnotify.Event{Name: filepath.Join(root, "docs/gone.pdf"), Op: fsnotify.Remove}, true},
		{"search index write", fsnotify.Event{Name: filepath.Join(root, "public/search.json"), Op: fsnotify.Write}, false},
		{"search index create", fsnotify.Event{Name: filepath.Join(root, "public/search.json"), Op: fsnotify.Create}, false},
		{"editor swap file", fsnotify.Event{Name: filepath.Join(root, "docs/.a.md.swp"), Op: fsnotify.Create}, false},
		{"new directory", fsnotify.Event{Name: filepath.Join(root, "docs"), Op: fsnotify.Create}, true},
		{"removed directory", fsnotify.Event{Name: filepath.Join(root, "old"), Op: fsnotify.Remove}, true},
		{"renamed directory", fsnotify.Event{Name: filepath.Join(root, "old"), Op: fsnotify.Rename}, true},
		{"missing extensionless write", fsnotify.Event{Name: filepath.Join(root, "old"), Op: fsnotify.Write}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := relevant(tt.ev); got != tt.want {
				t.Errorf("relevant(%v) = %v, want %v", tt.ev, got, tt.want)
			}
		})
	}
}

func TestOrchestrator_SearchIndexInsideContentDoesNotLoop(t *testing.T) {
	defer goleak.VerifyNone(t)

	root := t.TempDir()
	writeFiles(t, root, map[string]string{"a.md": "# A\n", "public/.keep": ""})
	out := filepath.Join(root, "public", "search.json")

	o := NewOrchestrator(NewIndexer(root, nil, quietLogger()), Options{Watch: true, Debounce: 50 * time.Millisecond}, quietLogger())
	rebuilt := make(chan struct{}, 64)
	o.OnRebuild(func(ix *Index, err error) {
		if err == nil {
			if werr := WriteSearchIndex(out, ix.Records()); werr != nil {
				t.Errorf("write search index: %v", werr)
			}
		}
		rebuilt <- struct{}{}
	})

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	if err := o.Start(ctx); err != nil {
		t.Fatalf("start: %v", err)
	}
	defer o.Stop()
	<-rebuilt // initial build

	if err := os.WriteFile(filepath.Join(root, "b.md"), []byte("# B\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	select {
	case <-rebuilt:
	case <-time.After(5 * time.Second):
		t.Fatal("timed out waiting for rebuild after a page change")
	}

	// The rebuild rewrote the search index inside the watched tree.
	select {
	case <-rebuilt:
		t.Fatal("writing the search index triggered another rebuild")
	case <-time.After(300 * time.Millisecond):
	}
}
