package louver

import "time"

// scheduler defers fn by d and returns a cancel handle. The engine keeps it
// as a swappable field so tests can drive scheduling by hand.
type scheduler func(d time.Duration, fn func()) (cancel func())

func timerScheduler(d time.Duration, fn func()) (cancel func()) {
	t := time.AfterFunc(d, fn)
	return func() { t.Stop() }
}

// handleScroll coalesces scroll notifications. The first one schedules a
// recompute on the next frame; anything arriving while it is pending is
// absorbed. The recompute reads scroll state when it fires, so the newest
// position always wins.
func (e *Engine[T]) handleScroll() {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.destroyed || e.mode != modeWindowed || e.frameCancel != nil {
		return
	}
	e.frameCancel = e.schedule(frameInterval, e.frameTick)
}

func (e *Engine[T]) frameTick() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.frameCancel = nil
	if e.destroyed || e.mode != modeWindowed {
		return
	}
	e.refresh(trigScroll)
}

// handleResize debounces resize notifications. Every one re-arms the quiet
// timer, so recomputation waits until the size has stopped changing.
func (e *Engine[T]) handleResize() {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.destroyed || e.mode != modeWindowed {
		return
	}
	if e.quietCancel != nil {
		e.quietCancel()
	}
	e.quietCancel = e.schedule(resizeQuiet, e.quietTick)
}

func (e *Engine[T]) quietTick() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.quietCancel = nil
	if e.destroyed || e.mode != modeWindowed {
		return
	}
	e.refresh(trigResize)
}

// cancelPending drops any scheduled frame or quiet-period work. Callers hold
// e.mu.
func (e *Engine[T]) cancelPending() {
	if e.frameCancel != nil {
		e.frameCancel()
		e.frameCancel = nil
	}
	if e.quietCancel != nil {
		e.quietCancel()
		e.quietCancel = nil
	}
}

// detach cancels the container subscriptions. Callers hold e.mu.
func (e *Engine[T]) detach() {
	if e.stopScroll != nil {
		e.stopScroll()
		e.stopScroll = nil
	}
	if e.stopResize != nil {
		e.stopResize()
		e.stopResize = nil
	}
}
