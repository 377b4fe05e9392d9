package louver

import "sync"

// renderedRow ties a materialized element to its source index.
type renderedRow struct {
	index int
	el    Element
}

// Engine windows one dataset over one Container. It owns the rendered
// elements and the two spacers, listens to the container's scroll and resize
// signals while windowing is active, and never shares state between
// instances; any number of engines can coexist in a process.
//
// Methods are safe for concurrent use. Scheduled recomputation fires on timer
// goroutines, so the engine serializes all state behind one mutex.
type Engine[T any] struct {
	host    Container
	factory RowFactory[T]
	cfg     Config

	mu          sync.Mutex
	data        Dataset[T]
	initialized bool
	destroyed   bool
	disabled    bool
	mode        renderMode
	window      WindowRange
	rendered    []renderedRow
	lead        *Spacer
	trail       *Spacer

	schedule    scheduler
	frameCancel func()
	quietCancel func()
	stopScroll  func()
	stopResize  func()
}

// New constructs an engine bound to host. The factory and configuration are
// fixed for the engine's lifetime; invalid configuration is the only
// construction failure.
func New[T any](host Container, factory RowFactory[T], cfg Config) (*Engine[T], error) {
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &Engine[T]{
		host:     host,
		factory:  factory,
		cfg:      cfg,
		schedule: timerScheduler,
	}, nil
}

// Initialize binds the first dataset, decides the rendering mode, and
// performs the first render. It reports whether windowing activated. With a
// nil host or factory the engine stays inert and returns false, leaving the
// caller on whatever rendering it already had. Initializing again behaves
// like Update.
func (e *Engine[T]) Initialize(data Dataset[T]) bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	if !e.usable() {
		return false
	}
	e.apply(data)
	return e.mode == modeWindowed
}

// Update replaces the dataset wholesale, re-evaluates the mode decision, and
// re-renders. Rows rebuild even when the computed range is unchanged: the
// same indices may now hold different records.
func (e *Engine[T]) Update(data Dataset[T]) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if !e.usable() {
		return
	}
	e.apply(data)
}

// apply binds data and routes to the right render path. Callers hold e.mu.
func (e *Engine[T]) apply(data Dataset[T]) {
	if data == nil {
		data = Slice[T](nil)
	}
	e.data = data
	if e.applyMode() {
		return
	}
	switch e.mode {
	case modeDirect:
		e.renderDirect()
	case modeWindowed:
		e.refresh(trigData)
	}
}

// Refresh recomputes the window from current scroll state immediately,
// canceling a pending frame. Synchronous hosts call it after mutating scroll
// state so the very next render reflects the change instead of waiting out
// the frame coalescing.
func (e *Engine[T]) Refresh() {
	e.mu.Lock()
	defer e.mu.Unlock()
	if !e.usable() || !e.initialized || e.mode != modeWindowed {
		return
	}
	if e.frameCancel != nil {
		e.frameCancel()
		e.frameCancel = nil
	}
	e.refresh(trigScroll)
}

// Disable forces direct rendering regardless of dataset length. It is
// sticky: the engine stays direct until destroyed.
func (e *Engine[T]) Disable() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.disabled = true
	if !e.usable() || !e.initialized {
		return
	}
	e.applyMode()
}

// Destroy cancels pending work, detaches subscriptions, and removes every
// element the engine placed in the container, returning it to its pre-engine
// state. Signals already in flight are ignored once it returns. Idempotent.
func (e *Engine[T]) Destroy() {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.destroyed {
		return
	}
	e.cancelPending()
	e.detach()
	e.clearRendered()
	e.dropSpacers()
	e.window = WindowRange{}
	e.initialized = false
	e.destroyed = true
	logger.Debug("engine destroyed")
}

// State returns a diagnostic snapshot. When windowing is off the range spans
// the whole dataset; VisibleRows is the viewport's row capacity.
func (e *Engine[T]) State() State {
	e.mu.Lock()
	defer e.mu.Unlock()
	st := State{
		Enabled:    e.initialized && !e.destroyed && e.mode == modeWindowed,
		StartIndex: e.window.Start,
		EndIndex:   e.window.End,
	}
	if e.data != nil {
		st.TotalRows = e.data.Len()
	}
	if e.host != nil {
		st.ScrollOffset = e.host.ScrollOffset()
		st.ViewportHeight = e.host.ViewportHeight()
		st.VisibleRows = visibleCount(st.ViewportHeight, e.cfg.RowHeight)
	}
	return st
}

// usable reports whether the engine can touch its collaborators. A nil host
// or factory is the structural precondition failure: recoverable, not fatal.
func (e *Engine[T]) usable() bool {
	return !e.destroyed && e.host != nil && e.factory != nil
}
