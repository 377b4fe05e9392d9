package louver

import "math"

// WindowRange is a half-open range [Start, End) of row indices, with
// 0 <= Start <= End <= dataset length.
type WindowRange struct {
	Start int
	End   int
}

// Count returns the number of rows in the range.
func (r WindowRange) Count() int { return r.End - r.Start }

// visibleCount is the number of rows needed to cover the viewport.
func visibleCount(viewportHeight, rowHeight float64) int {
	if viewportHeight <= 0 {
		return 0
	}
	return int(math.Ceil(viewportHeight / rowHeight))
}

// computeWindow derives the materialization range from scroll state. Pure and
// deterministic: the first row under the offset minus the buffer, through the
// rows covering the viewport plus a buffer on each side, clamped to the
// dataset.
func computeWindow(offset, viewport float64, cfg Config, length int) WindowRange {
	if length <= 0 {
		return WindowRange{}
	}

	start := int(math.Floor(offset/cfg.RowHeight)) - cfg.BufferSize
	if start < 0 {
		start = 0
	} else if start > length {
		start = length
	}

	end := start + visibleCount(viewport, cfg.RowHeight) + 2*cfg.BufferSize
	if end > length {
		end = length
	}
	if end < start {
		end = start
	}

	return WindowRange{Start: start, End: end}
}

// withinGate reports whether next differs from prev by less than half the
// buffer on both ends. Scroll-driven recomputes inside the gate are treated
// as unchanged so single-row scrolling cannot thrash the rendered set; the
// buffered rows absorb the movement.
func withinGate(prev, next WindowRange, bufferSize int) bool {
	gate := float64(bufferSize) / 2
	return math.Abs(float64(next.Start-prev.Start)) < gate &&
		math.Abs(float64(next.End-prev.End)) < gate
}
