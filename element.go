package louver

import "fmt"

// Element is anything a Container can hold. The engine only ever needs an
// element's vertical extent; hosts may type-assert for richer contracts
// (fmt.Stringer for text content, for example).
type Element interface {
	Height() float64
}

// Container is the host surface an engine is bound to. It owns scroll state
// and the ordered child list, and reports scroll and size changes through
// subscriptions that return cancel functions.
//
// Containers must not emit scroll or resize notifications synchronously from
// inside a child mutation; the engine mutates children while holding its own
// state lock.
type Container interface {
	// ScrollOffset is the current scroll position, in height units, from the
	// top of the content.
	ScrollOffset() float64

	// ViewportHeight is the visible extent of the surface, in height units.
	ViewportHeight() float64

	// AppendChild places el after all existing children.
	AppendChild(el Element)

	// InsertBefore places el immediately before ref. A nil or unknown ref
	// appends instead.
	InsertBefore(el, ref Element)

	// RemoveChild detaches el. Unknown elements are ignored.
	RemoveChild(el Element)

	// OnScroll registers fn to run after the scroll offset changes. The
	// returned function cancels the subscription.
	OnScroll(fn func()) (cancel func())

	// OnResize registers fn to run after the viewport height changes. The
	// returned function cancels the subscription.
	OnResize(fn func()) (cancel func())
}

// Dataset is an ordered, index-addressable sequence of row records. The
// engine treats records as opaque; it only reads length and individual
// entries while rendering.
type Dataset[T any] interface {
	Len() int
	At(i int) T
}

// Slice adapts a plain slice to the Dataset contract.
type Slice[T any] []T

func (s Slice[T]) Len() int   { return len(s) }
func (s Slice[T]) At(i int) T { return s[i] }

// RowFactory turns one record and its index into a displayable element. It is
// supplied at construction and must be deterministic per (item, index).
// Elements must report the configured row height; the window math and the
// spacer accounting assume uniform rows. A nil result (or a panic) marks the
// row as failed; the engine substitutes a row-height placeholder and carries
// on.
type RowFactory[T any] func(item T, index int) Element

// Label is a minimal text element for the hosts in this package. One label is
// one row; taller rows carry embedded newlines and a matching height.
type Label struct {
	text   string
	height float64
}

// NewLabel creates a single-height label.
func NewLabel(text string) *Label {
	return &Label{text: text, height: 1}
}

// Labelf creates a single-height label with printf-style formatting.
func Labelf(format string, args ...any) *Label {
	return NewLabel(fmt.Sprintf(format, args...))
}

// WithHeight sets the label's height. Returns the label for chaining.
func (l *Label) WithHeight(h float64) *Label {
	l.height = h
	return l
}

// SetText replaces the label's content.
func (l *Label) SetText(text string) *Label {
	l.text = text
	return l
}

func (l *Label) Height() float64 { return l.height }

func (l *Label) String() string { return l.text }
