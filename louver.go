// Package louver renders large ordered datasets inside a fixed-height
// scrollable surface without materializing an element per row. Only the rows
// near the viewport exist at any moment; two spacer elements preserve the
// scrollable extent a fully rendered list would have.
package louver

import (
	"fmt"
	"time"
)

// Scheduling constants for the event coordinator.
const (
	// frameInterval approximates one display frame. Scroll recomputation is
	// coalesced so at most one runs per frame.
	frameInterval = time.Second / 60

	// resizeQuiet is the debounce window for resize signals. Resizes change
	// the viewport height and force a recompute, so they wait for a quiet
	// period instead of firing per notification.
	resizeQuiet = 150 * time.Millisecond
)

// Config fixes the geometry and activation policy of an engine. It is
// immutable after construction; build a new engine to change it.
type Config struct {
	// RowHeight is the fixed height of every row, in the container's units
	// (terminal hosts use one unit per line). Must be positive.
	RowHeight float64

	// BufferSize is the number of extra rows materialized beyond each edge
	// of the visible range. Half of it doubles as the hysteresis gate.
	BufferSize int

	// Threshold is the dataset length above which windowing activates.
	// Shorter datasets render directly.
	Threshold int
}

func (c Config) validate() error {
	if c.RowHeight <= 0 {
		return fmt.Errorf("louver: row height must be positive (got %v)", c.RowHeight)
	}
	if c.BufferSize < 0 {
		return fmt.Errorf("louver: buffer size must not be negative (got %d)", c.BufferSize)
	}
	if c.Threshold < 0 {
		return fmt.Errorf("louver: threshold must not be negative (got %d)", c.Threshold)
	}
	return nil
}

// State is a read-only snapshot of an engine, for diagnostics and tests.
type State struct {
	Enabled        bool
	TotalRows      int
	VisibleRows    int
	StartIndex     int
	EndIndex       int
	ScrollOffset   float64
	ViewportHeight float64
}
