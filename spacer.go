package louver

import (
	"math"
	"sync/atomic"
)

// Spacer is an invisible element occupying vertical extent. The engine keeps
// one before and one after the rendered window so the container's scrollable
// extent always matches a fully materialized list, and substitutes a
// row-height spacer for any row its factory fails to build.
//
// The height is stored atomically: the engine resizes spacers on its timer
// goroutines while hosts read heights mid-render.
type Spacer struct {
	bits atomic.Uint64
}

// NewSpacer creates a spacer with the given height.
func NewSpacer(height float64) *Spacer {
	s := &Spacer{}
	s.bits.Store(math.Float64bits(height))
	return s
}

// Height implements Element.
func (s *Spacer) Height() float64 {
	return math.Float64frombits(s.bits.Load())
}

// SetHeight resizes the spacer.
func (s *Spacer) SetHeight(height float64) {
	s.bits.Store(math.Float64bits(height))
}
