package content

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"
	"sync"
	"sync/atomic"
	"time"

	"github.com/fsnotify/fsnotify"
)

// Options configures an Orchestrator.
type Options struct {
	Watch    bool
	Debounce time.Duration
}

// Orchestrator keeps the current index and rebuilds it when content changes.
type Orchestrator struct {
	indexer *Indexer
	log     *slog.Logger
	opts    Options

	current   atomic.Pointer[Index]
	buildMu   sync.Mutex
	mu        sync.Mutex
	callbacks []func(*Index, error)

	cancel context.CancelFunc
	wg     sync.WaitGroup
}

// NewOrchestrator creates an orchestrator; call Start to build and watch.
func NewOrchestrator(ix *Indexer, opts Options, log *slog.Logger) *Orchestrator {
	if opts.Debounce <= 0 {
		opts.Debounce = 300 * time.Millisecond
	}
	if log == nil {
		log = slog.Default()
	}
	return &Orchestrator{indexer: ix, log: log, opts: opts}
}

// OnRebuild registers fn to run after every build attempt.
func (o *Orchestrator) OnRebuild(fn func(*Index, error)) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.callbacks = append(o.callbacks, fn)
}

// Start performs the initial build and, when watching, launches the
// watcher goroutine.
func (o *Orchestrator) Start(ctx context.Context) error {
	if _, err := o.Rebuild(ctx); err != nil {
		return err
	}
	if !o.opts.Watch {
		return nil
	}

	root, err := filepath.EvalSymlinks(o.indexer.Root)
	if err != nil {
		return fmt.Errorf("resolve content dir: %w", err)
	}
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}
	if err := o.addTree(w, root, root); err != nil {
		w.Close()
		return err
	}

	watchCtx, cancel := context.WithCancel(ctx)
	o.cancel = cancel
	o.wg.Add(1)
	go func() {
		defer o.wg.Done()
		defer w.Close()
		o.watch(watchCtx, w, root)
	}()
	return nil
}

// Stop shuts down the watcher and waits for it to exit.
func (o *Orchestrator) Stop() {
	if o.cancel != nil {
		o.cancel()
	}
	o.wg.Wait()
}

// Rebuild indexes the content folder and swaps in the new index. Builds are
// serialized; on failure the previous index stays current.
func (o *Orchestrator) Rebuild(ctx context.Context) (*Index, error) {
	o.buildMu.Lock()
	index, err := o.indexer.Build(ctx)
	if err == nil {
		o.current.Store(index)
	}
	o.buildMu.Unlock()

	if err != nil && !errors.Is(err, context.Canceled) {
		o.log.Error("index build failed", "error", err)
	}

	o.mu.Lock()
	callbacks := make([]func(*Index, error), len(o.callbacks))
	copy(callbacks, o.callbacks)
	o.mu.Unlock()
	for _, fn := range callbacks {
		fn(index, err)
	}
	return index, err
}

// Current returns the latest successful index, or nil before the first build.
func (o *Orchestrator) Current() *Index {
	return o.current.Load()
}
