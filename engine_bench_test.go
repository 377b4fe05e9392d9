package louver

import (
	"fmt"
	"testing"
	"time"
)

func BenchmarkComputeWindow(b *testing.B) {
	cfg := Config{RowHeight: 40, BufferSize: 10}
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		computeWindow(float64(i%100000)*13, 600, cfg, 1000000)
	}
}

// dropScheduler discards deferred work; benchmarks drive the engine through
// Refresh so they measure the reconcile itself, not timer plumbing.
func dropScheduler(d time.Duration, fn func()) func() {
	return func() {}
}

func BenchmarkScrollReconcile(b *testing.B) {
	for _, n := range []int{1000, 100000, 1000000} {
		b.Run(fmt.Sprintf("rows-%d", n), func(b *testing.B) {
			host := NewPane(600)
			eng, err := New[int](host, testFactory(cfg40.RowHeight), cfg40)
			if err != nil {
				b.Fatal(err)
			}
			eng.schedule = dropScheduler
			eng.Initialize(ints(n))
			maxOff := host.MaxScroll()

			b.ReportAllocs()
			b.ResetTimer()
			for i := 0; i < b.N; i++ {
				// Jump far enough that every pass rebuilds.
				host.SetScrollOffset(float64(i%7) / 7 * maxOff)
				eng.Refresh()
			}
		})
	}
}

func BenchmarkDirectRender(b *testing.B) {
	host := NewPane(600)
	cfg := Config{RowHeight: 40, BufferSize: 10, Threshold: 1000}
	eng, err := New[int](host, testFactory(cfg.RowHeight), cfg)
	if err != nil {
		b.Fatal(err)
	}
	data := ints(500)

	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		eng.Update(data)
	}
}

func BenchmarkViewportLines(b *testing.B) {
	children := make([]Element, 0, 202)
	children = append(children, NewSpacer(500000))
	for i := 0; i < 200; i++ {
		children = append(children, NewLabel(fmt.Sprintf("row %d", i)))
	}
	children = append(children, NewSpacer(500000))

	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		viewportLines(children, 500000+float64(i%150), 40, 40)
	}
}
