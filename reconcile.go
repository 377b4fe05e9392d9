package louver

// trigger identifies what drove a recompute; the skip rules differ per path.
type trigger int

const (
	trigScroll trigger = iota
	trigResize
	trigData
)

// refresh recomputes the window from current scroll state and reconciles.
// Callers hold e.mu and have verified the engine is live and windowed.
func (e *Engine[T]) refresh(tr trigger) {
	next := computeWindow(e.host.ScrollOffset(), e.host.ViewportHeight(), e.cfg, e.data.Len())
	e.reconcile(next, tr)
}

// reconcile replaces the rendered set for the new range, or skips when the
// movement doesn't warrant it. An identical range is always a no-op.
// Scroll-driven recomputes inside the hysteresis gate also skip; the buffer
// rows keep the viewport covered, so small oscillation costs nothing. A
// dataset replacement never skips.
func (e *Engine[T]) reconcile(next WindowRange, tr trigger) {
	if tr != trigData {
		if next == e.window {
			return
		}
		if tr == trigScroll && withinGate(e.window, next, e.cfg.BufferSize) {
			return
		}
	}

	e.clearRendered()

	// Spacer heights move before rows materialize so the content extent
	// never dips below rows * RowHeight mid-pass.
	length := e.data.Len()
	e.lead.SetHeight(float64(next.Start) * e.cfg.RowHeight)
	e.trail.SetHeight(float64(length-next.End) * e.cfg.RowHeight)

	e.materialize(next, func(el Element) {
		e.host.InsertBefore(el, e.trail)
	})
	e.window = next
}

// materialize builds a row for every index in r, ascending, handing each
// element to place. A factory failure substitutes a row-height spacer and the
// pass keeps going; failures aggregate into one warning. Callers hold e.mu.
func (e *Engine[T]) materialize(r WindowRange, place func(Element)) {
	failures := 0
	for i := r.Start; i < r.End; i++ {
		el := e.buildRow(i)
		if el == nil {
			el = NewSpacer(e.cfg.RowHeight)
			failures++
		}
		place(el)
		e.rendered = append(e.rendered, renderedRow{index: i, el: el})
	}
	if failures > 0 {
		logger.Warn("row factory failed", "failures", failures, "start", r.Start, "end", r.End)
	}
}

// buildRow runs the factory for one index, treating a panic like a nil
// result.
func (e *Engine[T]) buildRow(i int) (el Element) {
	defer func() {
		if r := recover(); r != nil {
			el = nil
		}
	}()
	return e.factory(e.data.At(i), i)
}

// clearRendered removes every materialized element from the container.
func (e *Engine[T]) clearRendered() {
	for _, r := range e.rendered {
		e.host.RemoveChild(r.el)
	}
	e.rendered = e.rendered[:0]
}

// dropSpacers removes the spacers from the container, if planted.
func (e *Engine[T]) dropSpacers() {
	if e.lead != nil {
		e.host.RemoveChild(e.lead)
		e.lead = nil
	}
	if e.trail != nil {
		e.host.RemoveChild(e.trail)
		e.trail = nil
	}
}
