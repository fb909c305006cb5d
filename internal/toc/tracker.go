package toc

import "sync"

// Tracker binds CurrentSection to a stream of scroll samples. It keeps only
// the latest inputs, so its answer always equals CurrentSection on them.
type Tracker struct {
	// update serializes SetHeadings and Observe so listeners see changes in
	// the order they were applied. Listeners must not call back into either.
	update    sync.Mutex
	mu        sync.Mutex
	headings  []HeadingRecord
	offset    float64
	scrollY   float64
	current   string
	active    bool
	listeners []func(id string, ok bool)
}

// NewTracker returns a tracker anchoring the viewport at viewportOffset.
func NewTracker(viewportOffset float64) *Tracker {
	return &Tracker{offset: viewportOffset}
}

// OnChange registers fn to run whenever the active heading changes.
func (t *Tracker) OnChange(fn func(id string, ok bool)) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.listeners = append(t.listeners, fn)
}

// SetHeadings replaces the heading list after a navigation and re-evaluates
// the last scroll sample against it.
func (t *Tracker) SetHeadings(headings []HeadingRecord) (string, bool) {
	t.update.Lock()
	defer t.update.Unlock()
	t.mu.Lock()
	t.headings = append([]HeadingRecord(nil), headings...)
	return t.updateLocked()
}

// Observe records a scroll sample and returns the active heading.
func (t *Tracker) Observe(scrollY float64) (string, bool) {
	t.update.Lock()
	defer t.update.Unlock()
	t.mu.Lock()
	t.scrollY = scrollY
	return t.updateLocked()
}

// Current returns the active heading for the latest inputs.
func (t *Tracker) Current() (string, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.current, t.active
}

// Scrolled reports whether the last sample was below the top of the page.
func (t *Tracker) Scrolled() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.scrollY > 0
}

// updateLocked must be called with t.update and t.mu held; it releases t.mu
// before notifying listeners.
func (t *Tracker) updateLocked() (string, bool) {
	id, ok := CurrentSection(t.headings, t.scrollY, t.offset)
	changed := id != t.current || ok != t.active
	t.current, t.active = id, ok
	var listeners []func(string, bool)
	if changed {
		listeners = make([]func(string, bool), len(t.listeners))
		copy(listeners, t.listeners)
	}
	t.mu.Unlock()

	for _, fn := range listeners {
		fn(id, ok)
	}
	return id, ok
}
