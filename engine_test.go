package louver

import (
	"fmt"
	"math"
	"testing"
	"time"
)

// countingHost wraps a Pane and counts child mutations so tests can prove a
// pass touched, or didn't touch, the tree.
type countingHost struct {
	*Pane
	appends int
	inserts int
	removes int
}

func (h *countingHost) AppendChild(el Element) {
	h.appends++
	h.Pane.AppendChild(el)
}

func (h *countingHost) InsertBefore(el, ref Element) {
	h.inserts++
	h.Pane.InsertBefore(el, ref)
}

func (h *countingHost) RemoveChild(el Element) {
	h.removes++
	h.Pane.RemoveChild(el)
}

func (h *countingHost) mutations() int { return h.appends + h.inserts + h.removes }

// manualScheduler queues callbacks for explicit firing instead of timers.
type manualScheduler struct {
	queue []*manualTask
}

type manualTask struct {
	delay    time.Duration
	fn       func()
	canceled bool
}

func (m *manualScheduler) schedule(d time.Duration, fn func()) func() {
	task := &manualTask{delay: d, fn: fn}
	m.queue = append(m.queue, task)
	return func() { task.canceled = true }
}

// fire runs everything queued that hasn't been canceled.
func (m *manualScheduler) fire() {
	q := m.queue
	m.queue = nil
	for _, task := range q {
		if !task.canceled {
			task.fn()
		}
	}
}

func (m *manualScheduler) pending() int {
	n := 0
	for _, task := range m.queue {
		if !task.canceled {
			n++
		}
	}
	return n
}

// testFactory builds rows at the given height. Factories must honor the
// configured RowHeight or the spacer accounting drifts.
func testFactory(height float64) RowFactory[int] {
	return func(item, index int) Element {
		return NewLabel(fmt.Sprintf("<%04d>", item)).WithHeight(height)
	}
}

func ints(n int) Slice[int] {
	s := make(Slice[int], n)
	for i := range s {
		s[i] = i
	}
	return s
}

var cfg40 = Config{RowHeight: 40, BufferSize: 10, Threshold: 100}

// newTestEngine builds an engine on a counting pane with a manual scheduler.
// A negative n skips Initialize.
func newTestEngine(t *testing.T, viewport float64, cfg Config, n int) (*Engine[int], *countingHost, *manualScheduler) {
	t.Helper()
	host := &countingHost{Pane: NewPane(viewport)}
	eng, err := New[int](host, testFactory(cfg.RowHeight), cfg)
	if err != nil {
		t.Fatal(err)
	}
	sched := &manualScheduler{}
	eng.schedule = sched.schedule
	if n >= 0 {
		eng.Initialize(ints(n))
	}
	return eng, host, sched
}

func TestNewValidation(t *testing.T) {
	host := NewPane(600)
	cases := []struct {
		name string
		cfg  Config
		ok   bool
	}{
		{"valid", Config{RowHeight: 40, BufferSize: 10, Threshold: 100}, true},
		{"zero row height", Config{RowHeight: 0, BufferSize: 10, Threshold: 100}, false},
		{"negative row height", Config{RowHeight: -3, BufferSize: 10, Threshold: 100}, false},
		{"negative buffer", Config{RowHeight: 40, BufferSize: -1, Threshold: 100}, false},
		{"negative threshold", Config{RowHeight: 40, BufferSize: 10, Threshold: -1}, false},
		{"zero buffer and threshold", Config{RowHeight: 40}, true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := New[int](host, testFactory(tc.cfg.RowHeight), tc.cfg)
			if tc.ok && err != nil {
				t.Errorf("unexpected error: %v", err)
			}
			if !tc.ok && err == nil {
				t.Error("want an error, got none")
			}
		})
	}
}

func TestInitializeThreshold(t *testing.T) {
	t.Run("at threshold renders direct", func(t *testing.T) {
		eng, host, _ := newTestEngine(t, 600, cfg40, -1)
		if eng.Initialize(ints(100)) {
			t.Error("windowing should stay off at the threshold")
		}
		if got := len(eng.rendered); got != 100 {
			t.Errorf("rendered %d rows, want 100", got)
		}
		if eng.lead != nil || eng.trail != nil {
			t.Error("direct mode must not keep spacers")
		}
		if got := len(host.Children()); got != 100 {
			t.Errorf("container holds %d children, want 100", got)
		}
		st := eng.State()
		if st.Enabled {
			t.Error("state reports windowing enabled")
		}
		if st.StartIndex != 0 || st.EndIndex != 100 {
			t.Errorf("range = [%d %d], want [0 100]", st.StartIndex, st.EndIndex)
		}
	})

	t.Run("past threshold windows", func(t *testing.T) {
		eng, host, _ := newTestEngine(t, 600, cfg40, -1)
		if !eng.Initialize(ints(101)) {
			t.Fatal("windowing should activate past the threshold")
		}
		if eng.lead == nil || eng.trail == nil {
			t.Fatal("spacers missing")
		}
		if got := len(eng.rendered); got >= 101 {
			t.Errorf("rendered %d rows, want a window", got)
		}
		if got := host.ContentHeight(); got != 101*40 {
			t.Errorf("content height = %v, want %v", got, 101*40)
		}
	})

	t.Run("nil dataset is empty", func(t *testing.T) {
		eng, _, _ := newTestEngine(t, 600, cfg40, -1)
		if eng.Initialize(nil) {
			t.Error("empty dataset must not window")
		}
		if got := eng.State().TotalRows; got != 0 {
			t.Errorf("TotalRows = %d, want 0", got)
		}
	})
}

func TestInitializeScenario(t *testing.T) {
	eng, host, sched := newTestEngine(t, 600, cfg40, -1)
	if !eng.Initialize(ints(200)) {
		t.Fatal("want windowing for 200 rows over threshold 100")
	}

	if eng.window.Start != 0 || eng.window.End != 35 {
		t.Fatalf("initial window = %+v, want {0 35}", eng.window)
	}
	if got := len(eng.rendered); got != 35 {
		t.Errorf("rendered %d rows, want 35", got)
	}
	if got := host.ContentHeight(); got != 8000 {
		t.Errorf("content height = %v, want 8000", got)
	}

	host.SetScrollOffset(4000)
	if sched.pending() != 1 {
		t.Fatalf("pending tasks = %d, want 1", sched.pending())
	}
	sched.fire()

	if eng.window.Start != 90 || eng.window.End != 125 {
		t.Fatalf("window after scroll = %+v, want {90 125}", eng.window)
	}
	if got := eng.lead.Height(); got != 90*40 {
		t.Errorf("leading spacer = %v, want %v", got, 90*40)
	}
	if got := eng.trail.Height(); got != (200-125)*40 {
		t.Errorf("trailing spacer = %v, want %v", got, (200-125)*40)
	}
	if got := host.ContentHeight(); got != 8000 {
		t.Errorf("content height drifted to %v", got)
	}

	// Rows sit between the spacers, ascending.
	children := host.Children()
	if children[0] != Element(eng.lead) || children[len(children)-1] != Element(eng.trail) {
		t.Fatal("spacers are not the outermost children")
	}
	if got := children[1].(*Label).String(); got != "<0090>" {
		t.Errorf("first row renders %q, want %q", got, "<0090>")
	}
	if got := children[1].Height(); got != cfg40.RowHeight {
		t.Errorf("row height = %v, want the configured %v", got, cfg40.RowHeight)
	}
	if got := children[len(children)-2].(*Label).String(); got != "<0124>" {
		t.Errorf("last row renders %q, want %q", got, "<0124>")
	}
}

func TestInitializeStructuralFailure(t *testing.T) {
	t.Run("nil host", func(t *testing.T) {
		eng, err := New[int](nil, testFactory(cfg40.RowHeight), cfg40)
		if err != nil {
			t.Fatalf("construction should succeed: %v", err)
		}
		if eng.Initialize(ints(200)) {
			t.Error("initialize must report failure without a host")
		}
		eng.Update(ints(300)) // must not panic
		st := eng.State()
		if st.Enabled {
			t.Error("inert engine reports enabled")
		}
	})

	t.Run("nil factory", func(t *testing.T) {
		eng, err := New[int](NewPane(600), nil, cfg40)
		if err != nil {
			t.Fatalf("construction should succeed: %v", err)
		}
		if eng.Initialize(ints(200)) {
			t.Error("initialize must report failure without a factory")
		}
	})
}

func TestUpdateModeTransitions(t *testing.T) {
	eng, host, _ := newTestEngine(t, 600, cfg40, 200)
	if eng.mode != modeWindowed {
		t.Fatal("want windowed start")
	}

	eng.Update(ints(50))
	if eng.mode != modeDirect {
		t.Fatal("shrinking under the threshold must go direct")
	}
	if got := len(host.Children()); got != 50 {
		t.Errorf("container holds %d children, want exactly 50", got)
	}
	if eng.lead != nil || eng.trail != nil {
		t.Error("spacers survived the transition")
	}
	if got := len(eng.rendered); got != 50 {
		t.Errorf("rendered %d rows, want 50", got)
	}
	if eng.window.Start != 0 || eng.window.End != 50 {
		t.Errorf("window = %+v, want {0 50}", eng.window)
	}

	eng.Update(ints(200))
	if eng.mode != modeWindowed {
		t.Fatal("growing past the threshold must re-window")
	}
	if eng.lead == nil || eng.trail == nil {
		t.Fatal("spacers missing after re-window")
	}
	if got := len(eng.rendered); got != 35 {
		t.Errorf("rendered %d rows, want 35", got)
	}
	if got := host.ContentHeight(); got != 8000 {
		t.Errorf("content height = %v, want 8000", got)
	}
}

func TestUpdateSameModeRebuilds(t *testing.T) {
	t.Run("windowed", func(t *testing.T) {
		eng, host, _ := newTestEngine(t, 600, cfg40, 200)
		before := host.mutations()
		window := eng.window
		eng.Update(ints(200))
		if eng.window != window {
			t.Errorf("window moved to %+v", eng.window)
		}
		if host.mutations() == before {
			t.Error("dataset replacement must rebuild rows even for an equal range")
		}
	})

	t.Run("direct", func(t *testing.T) {
		eng, host, _ := newTestEngine(t, 600, cfg40, 50)
		before := host.mutations()
		eng.Update(ints(50))
		if host.mutations() == before {
			t.Error("dataset replacement must rebuild rows")
		}
		if got := len(host.Children()); got != 50 {
			t.Errorf("container holds %d children, want 50", got)
		}
	})
}

func TestDisable(t *testing.T) {
	eng, host, _ := newTestEngine(t, 600, cfg40, 200)
	eng.Disable()
	if eng.mode != modeDirect {
		t.Fatal("disable must force direct rendering")
	}
	if got := len(eng.rendered); got != 200 {
		t.Errorf("rendered %d rows, want all 200", got)
	}
	if eng.State().Enabled {
		t.Error("state reports enabled after disable")
	}

	// The latch holds across updates, whatever the length.
	eng.Update(ints(300))
	if eng.mode != modeDirect {
		t.Error("disable must stick across updates")
	}
	if got := len(host.Children()); got != 300 {
		t.Errorf("container holds %d children, want 300", got)
	}
}

func TestDestroy(t *testing.T) {
	eng, host, sched := newTestEngine(t, 600, cfg40, 200)
	host.SetScrollOffset(4000)
	if sched.pending() != 1 {
		t.Fatal("expected a pending frame")
	}

	eng.Destroy()
	if got := len(host.Children()); got != 0 {
		t.Fatalf("container holds %d children after destroy, want 0", got)
	}

	after := host.mutations()
	sched.fire()                // stale timer fires late
	host.SetScrollOffset(2000)  // scroll after teardown
	host.SetViewportHeight(900) // resize after teardown
	sched.fire()
	eng.Update(ints(300))
	eng.Refresh()
	if host.mutations() != after {
		t.Error("destroyed engine mutated the container")
	}

	eng.Destroy() // idempotent
	if st := eng.State(); st.Enabled {
		t.Error("destroyed engine reports enabled")
	}
}

func TestStateSnapshot(t *testing.T) {
	eng, host, sched := newTestEngine(t, 600, cfg40, 200)
	st := eng.State()
	if !st.Enabled {
		t.Error("want enabled")
	}
	if st.TotalRows != 200 || st.VisibleRows != 15 {
		t.Errorf("TotalRows=%d VisibleRows=%d, want 200 15", st.TotalRows, st.VisibleRows)
	}
	if st.StartIndex != 0 || st.EndIndex != 35 {
		t.Errorf("range = [%d %d], want [0 35]", st.StartIndex, st.EndIndex)
	}
	if st.ViewportHeight != 600 || st.ScrollOffset != 0 {
		t.Errorf("geometry = %v/%v, want 600/0", st.ViewportHeight, st.ScrollOffset)
	}

	host.SetScrollOffset(4000)
	sched.fire()
	st = eng.State()
	if st.StartIndex != 90 || st.ScrollOffset != 4000 {
		t.Errorf("after scroll: start=%d offset=%v, want 90 4000", st.StartIndex, st.ScrollOffset)
	}
}

func TestHeightConservation(t *testing.T) {
	cfg := Config{RowHeight: 17, BufferSize: 7, Threshold: 50}
	eng, host, sched := newTestEngine(t, 230, cfg, 999)
	want := 999 * 17.0

	for off := 0.0; off <= host.MaxScroll(); off += 113 {
		host.SetScrollOffset(off)
		sched.fire()
		if got := host.ContentHeight(); math.Abs(got-want) > 1e-6 {
			t.Fatalf("content height = %v at offset %v, want %v", got, off, want)
		}
		r := eng.window
		lead := eng.lead.Height()
		trail := eng.trail.Height()
		sum := lead + trail + float64(r.End-r.Start)*cfg.RowHeight
		if math.Abs(sum-want) > 1e-6 {
			t.Fatalf("spacers plus window = %v at offset %v, want %v", sum, off, want)
		}
	}
}
