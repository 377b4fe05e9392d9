package louver

import "sync"

// Feed is a mutable dataset with change notification: the bridge between an
// application producing rows and an engine rendering them.
type Feed[T any] struct {
	mu    sync.Mutex
	items []T
	subs  []func()
}

// NewFeed creates a feed seeded with items.
func NewFeed[T any](items ...T) *Feed[T] {
	f := &Feed[T]{}
	if len(items) > 0 {
		f.items = append(f.items, items...)
	}
	return f
}

func (f *Feed[T]) Len() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.items)
}

// At returns the item at i. An index that fell outside the feed (it can
// shrink between a length check and the read) yields the zero record rather
// than a panic; the change notification that follows re-renders with real
// data.
func (f *Feed[T]) At(i int) T {
	f.mu.Lock()
	defer f.mu.Unlock()
	if i < 0 || i >= len(f.items) {
		var zero T
		return zero
	}
	return f.items[i]
}

// Set replaces the feed contents and notifies. The feed takes ownership of
// the slice.
func (f *Feed[T]) Set(items []T) {
	f.mu.Lock()
	f.items = items
	subs := snapshotSubs(f.subs)
	f.mu.Unlock()
	notify(subs)
}

// Append adds items to the end and notifies.
func (f *Feed[T]) Append(items ...T) {
	f.mu.Lock()
	f.items = append(f.items, items...)
	subs := snapshotSubs(f.subs)
	f.mu.Unlock()
	notify(subs)
}

// TrimFront drops the oldest entries so at most limit remain. Trimming
// reallocates, so it waits until the feed has grown a quarter past limit;
// nothing happens (and nobody is notified) below that.
func (f *Feed[T]) TrimFront(limit int) {
	f.mu.Lock()
	if limit < 0 {
		limit = 0
	}
	if len(f.items) <= limit+limit/4 {
		f.mu.Unlock()
		return
	}
	f.items = append([]T(nil), f.items[len(f.items)-limit:]...)
	subs := snapshotSubs(f.subs)
	f.mu.Unlock()
	notify(subs)
}

// Snapshot returns a copy of the current items.
func (f *Feed[T]) Snapshot() []T {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]T(nil), f.items...)
}

// Subscribe registers fn to run after every change. The returned function
// cancels the subscription.
func (f *Feed[T]) Subscribe(fn func()) (cancel func()) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.subs = append(f.subs, fn)
	i := len(f.subs) - 1
	return func() {
		f.mu.Lock()
		defer f.mu.Unlock()
		f.subs[i] = nil
	}
}

// Bind renders feed changes through the engine: every mutation becomes an
// Update. The returned function unbinds.
func Bind[T any](e *Engine[T], f *Feed[T]) (unbind func()) {
	return f.Subscribe(func() { e.Update(f) })
}
