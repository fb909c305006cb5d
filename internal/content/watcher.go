package content

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/flowershow/flowershow/internal/parser"
	"github.com/fsnotify/fsnotify"
)

// relevant reports whether ev can change the page set. Writes to files the
// indexer ignores, such as a search index written inside the content
// directory, do not trigger a rebuild. A removed path cannot be stat'ed, so
// an extensionless removal is treated as a possible directory.
func relevant(ev fsnotify.Event) bool {
	if ev.Op == fsnotify.Chmod {
		return false
	}
	if parser.IsSupportedExtension(ev.Name) {
		return true
	}
	if info, err := os.Stat(ev.Name); err == nil {
		return info.IsDir()
	}
	return ev.Has(fsnotify.Remove|fsnotify.Rename) && filepath.Ext(ev.Name) == ""
}

// addTree watches dir and every non-excluded directory below it; fsnotify
// is not recursive. Exclusions are relative to the resolved content root.
func (o *Orchestrator) addTree(w *fsnotify.Watcher, root, dir string) error {
	return filepath.WalkDir(dir, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() {
			return nil
		}
		if rel, err := filepath.Rel(root, p); err == nil && rel != "." && excluded(rel, o.indexer.Exclude) {
			return filepath.SkipDir
		}
		if err := w.Add(p); err != nil {
			return fmt.Errorf("watch %s: %w", p, err)
		}
		return nil
	})
}

// watch coalesces file events and rebuilds once the content has been quiet
// for the debounce window.
func (o *Orchestrator) watch(ctx context.Context, w *fsnotify.Watcher, root string) {
	var pending <-chan time.Time
	for {
		select {
		case <-ctx.Done():
			return
		case ev, ok := <-w.Events:
			if !ok {
				return
			}
			if !relevant(ev) {
				continue
			}
			if rel, err := filepath.Rel(root, ev.Name); err == nil && excluded(rel, o.indexer.Exclude) {
				continue
			}
			if ev.Has(fsnotify.Create) {
				if info, err := os.Stat(ev.Name); err == nil && info.IsDir() {
					if err := o.addTree(w, root, ev.Name); err != nil {
						o.log.Warn("watch new directory", "path", ev.Name, "error", err)
					}
				}
			}
			o.log.Debug("content changed", "path", ev.Name, "op", ev.Op.String())
			pending = time.After(o.opts.Debounce)
		case err, ok := <-w.Errors:
			if !ok {
				return
			}
			o.log.Warn("watcher error", "error", err)
		case <-pending:
			pending = nil
			o.Rebuild(ctx)
		}
	}
}
