package louver

import (
	"fmt"
	"strings"
	"sync"
)

// Pane is an in-memory scroll container: the reference Container used by the
// terminal hosts and the tests. It keeps children in order, clamps its scroll
// offset to the content extent, and notifies subscribers outside its lock.
type Pane struct {
	mu       sync.Mutex
	children []Element
	offset   float64
	viewport float64

	scrollSubs []func()
	resizeSubs []func()
}

// NewPane creates a pane with the given viewport height.
func NewPane(viewportHeight float64) *Pane {
	if viewportHeight < 0 {
		viewportHeight = 0
	}
	return &Pane{viewport: viewportHeight}
}

func (p *Pane) ScrollOffset() float64 {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.offset
}

func (p *Pane) ViewportHeight() float64 {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.viewport
}

func (p *Pane) AppendChild(el Element) {
	if el == nil {
		return
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	p.children = append(p.children, el)
}

// InsertBefore places el ahead of ref. A nil or unknown ref appends.
func (p *Pane) InsertBefore(el, ref Element) {
	if el == nil {
		return
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	at := p.indexOf(ref)
	if at < 0 {
		p.children = append(p.children, el)
		return
	}
	p.children = append(p.children, nil)
	copy(p.children[at+1:], p.children[at:])
	p.children[at] = el
}

// RemoveChild drops el; unknown elements are ignored.
func (p *Pane) RemoveChild(el Element) {
	p.mu.Lock()
	defer p.mu.Unlock()
	at := p.indexOf(el)
	if at < 0 {
		return
	}
	p.children = append(p.children[:at], p.children[at+1:]...)
}

// indexOf finds el by identity. Callers hold p.mu.
func (p *Pane) indexOf(el Element) int {
	for i, c := range p.children {
		if c == el {
			return i
		}
	}
	return -1
}

// Children returns a copy of the child list in order.
func (p *Pane) Children() []Element {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]Element, len(p.children))
	copy(out, p.children)
	return out
}

// ContentHeight is the summed extent of all children.
func (p *Pane) ContentHeight() float64 {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.contentLocked()
}

func (p *Pane) contentLocked() float64 {
	var total float64
	for _, c := range p.children {
		total += c.Height()
	}
	return total
}

// MaxScroll is the largest offset that still fills the viewport.
func (p *Pane) MaxScroll() float64 {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.maxScrollLocked()
}

func (p *Pane) maxScrollLocked() float64 {
	m := p.contentLocked() - p.viewport
	if m < 0 {
		return 0
	}
	return m
}

// SetScrollOffset moves the scroll position, clamped to [0, MaxScroll].
// Scroll subscribers run outside the lock, and only when the offset changed.
func (p *Pane) SetScrollOffset(offset float64) {
	p.mu.Lock()
	if offset < 0 {
		offset = 0
	}
	if m := p.maxScrollLocked(); offset > m {
		offset = m
	}
	var subs []func()
	if offset != p.offset {
		p.offset = offset
		subs = snapshotSubs(p.scrollSubs)
	}
	p.mu.Unlock()
	notify(subs)
}

// ScrollBy moves the scroll position by delta.
func (p *Pane) ScrollBy(delta float64) {
	p.SetScrollOffset(p.ScrollOffset() + delta)
}

// ScrollToBottom pins the view to the end of the content.
func (p *Pane) ScrollToBottom() {
	p.SetScrollOffset(p.MaxScroll())
}

// SetViewportHeight resizes the visible extent. Resize subscribers run
// outside the lock, and only when the height changed.
func (p *Pane) SetViewportHeight(h float64) {
	p.mu.Lock()
	if h < 0 {
		h = 0
	}
	var subs []func()
	if h != p.viewport {
		p.viewport = h
		subs = snapshotSubs(p.resizeSubs)
	}
	p.mu.Unlock()
	notify(subs)
}

// OnScroll registers fn for offset changes. The returned function cancels.
func (p *Pane) OnScroll(fn func()) (cancel func()) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.scrollSubs = append(p.scrollSubs, fn)
	i := len(p.scrollSubs) - 1
	return func() {
		p.mu.Lock()
		defer p.mu.Unlock()
		p.scrollSubs[i] = nil
	}
}

// OnResize registers fn for viewport changes. The returned function cancels.
func (p *Pane) OnResize(fn func()) (cancel func()) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.resizeSubs = append(p.resizeSubs, fn)
	i := len(p.resizeSubs) - 1
	return func() {
		p.mu.Lock()
		defer p.mu.Unlock()
		p.resizeSubs[i] = nil
	}
}

// snapshotSubs copies a subscriber list so it can run after unlock.
func snapshotSubs(subs []func()) []func() {
	out := make([]func(), len(subs))
	copy(out, subs)
	return out
}

func notify(subs []func()) {
	for _, fn := range subs {
		if fn != nil {
			fn()
		}
	}
}

// viewportLines flattens the children intersecting [offset, offset+view)
// into per-line strings, padding spacer spans and short rows with blanks.
// One height unit is one line; the result always holds rows entries.
func viewportLines(children []Element, offset, view float64, rows int) []string {
	lines := make([]string, 0, rows)
	y := 0.0
	for _, c := range children {
		if len(lines) >= rows {
			break
		}
		h := c.Height()
		if y+h <= offset {
			y += h
			continue
		}
		if y >= offset+view {
			break
		}
		start := 0
		if offset > y {
			start = int(offset - y)
		}
		var parts []string
		if s, ok := c.(fmt.Stringer); ok {
			parts = strings.Split(s.String(), "\n")
		}
		span := int(h + 0.5)
		for k := start; k < span && len(lines) < rows; k++ {
			if k < len(parts) {
				lines = append(lines, parts[k])
			} else {
				lines = append(lines, "")
			}
		}
		y += h
	}
	for len(lines) < rows {
		lines = append(lines, "")
	}
	return lines
}
