package louver

// renderMode selects between materializing every row and windowing.
type renderMode int

const (
	modeDirect renderMode = iota
	modeWindowed
)

func (m renderMode) String() string {
	if m == modeWindowed {
		return "windowed"
	}
	return "direct"
}

// modeFor decides the mode for a dataset length. The disable latch wins over
// the threshold.
func (e *Engine[T]) modeFor(length int) renderMode {
	if e.disabled || length <= e.cfg.Threshold {
		return modeDirect
	}
	return modeWindowed
}

// applyMode transitions to whichever mode the current dataset calls for and
// reports whether a transition (with its re-render) happened. Re-applying the
// current mode is a no-op. Callers hold e.mu.
func (e *Engine[T]) applyMode() bool {
	target := e.modeFor(e.data.Len())
	if e.initialized && target == e.mode {
		return false
	}
	switch target {
	case modeWindowed:
		e.enterWindowed()
	case modeDirect:
		e.enterDirect()
	}
	e.initialized = true
	logger.Debug("render mode applied", "mode", target, "rows", e.data.Len())
	return true
}

// enterWindowed attaches the scroll and resize subscriptions, plants the two
// spacers, and materializes the first window.
func (e *Engine[T]) enterWindowed() {
	e.clearRendered()
	e.dropSpacers()
	e.lead = NewSpacer(0)
	e.trail = NewSpacer(0)
	e.host.AppendChild(e.lead)
	e.host.AppendChild(e.trail)
	e.stopScroll = e.host.OnScroll(e.handleScroll)
	e.stopResize = e.host.OnResize(e.handleResize)
	e.mode = modeWindowed
	e.refresh(trigData)
}

// enterDirect cancels pending windowed work, detaches the subscriptions,
// removes the spacers, and renders every row.
func (e *Engine[T]) enterDirect() {
	e.cancelPending()
	e.detach()
	e.mode = modeDirect
	e.renderDirect()
}

// renderDirect materializes the entire dataset with no spacers.
func (e *Engine[T]) renderDirect() {
	e.clearRendered()
	e.dropSpacers()
	length := e.data.Len()
	e.materialize(WindowRange{Start: 0, End: length}, e.host.AppendChild)
	e.window = WindowRange{Start: 0, End: length}
}
