package louver

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
)

func newTestList(t *testing.T, n int) *List[int] {
	t.Helper()
	l, err := NewList(ints(n), testFactory(1), Config{RowHeight: 1, BufferSize: 10, Threshold: 50})
	if err != nil {
		t.Fatal(err)
	}
	l.eng.schedule = (&manualScheduler{}).schedule
	l.Update(tea.WindowSizeMsg{Width: 30, Height: 11})
	return l
}

func TestListView(t *testing.T) {
	l := newTestList(t, 200)

	view := l.View()
	if got := strings.Count(view, "\n") + 1; got != 11 {
		t.Fatalf("view has %d lines, want 11", got)
	}
	if !strings.Contains(view, "<0000>") {
		t.Error("view missing the first row")
	}
	if strings.Contains(view, "<0120>") {
		t.Error("view shows a row far outside the window")
	}
	if !strings.Contains(view, "0-30 of 200") {
		t.Errorf("status line missing range:\n%s", view)
	}
	if !strings.Contains(view, "windowed") {
		t.Error("status line missing mode")
	}
}

func TestListKeys(t *testing.T) {
	l := newTestList(t, 200)

	update := func(msg tea.Msg) {
		m, _ := l.Update(msg)
		l = m.(*List[int])
	}

	update(tea.KeyMsg{Type: tea.KeyDown})
	if got := l.State().ScrollOffset; got != 1 {
		t.Errorf("offset = %v after down, want 1", got)
	}

	update(tea.KeyMsg{Type: tea.KeyPgDown})
	if got := l.State().ScrollOffset; got != 11 {
		t.Errorf("offset = %v after page down, want 11", got)
	}

	update(tea.KeyMsg{Type: tea.KeyEnd})
	if got := l.State().ScrollOffset; got != 190 {
		t.Errorf("offset = %v after end, want 190", got)
	}
	if got := l.State().EndIndex; got != 200 {
		t.Errorf("end index = %d at the bottom, want 200", got)
	}

	update(tea.KeyMsg{Type: tea.KeyHome})
	if got := l.State().ScrollOffset; got != 0 {
		t.Errorf("offset = %v after home, want 0", got)
	}
}

func TestListWheel(t *testing.T) {
	l := newTestList(t, 200)

	m, _ := l.Update(tea.MouseMsg{Button: tea.MouseButtonWheelDown, Action: tea.MouseActionPress})
	l = m.(*List[int])
	if got := l.State().ScrollOffset; got != 3 {
		t.Errorf("offset = %v after wheel, want 3", got)
	}

	m, _ = l.Update(tea.MouseMsg{Button: tea.MouseButtonWheelUp, Action: tea.MouseActionPress})
	l = m.(*List[int])
	if got := l.State().ScrollOffset; got != 0 {
		t.Errorf("offset = %v after wheel up, want 0", got)
	}
}

func TestListQuit(t *testing.T) {
	l := newTestList(t, 200)
	_, cmd := l.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'q'}})
	if cmd == nil {
		t.Fatal("quit key returned no command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("quit key must return tea.Quit")
	}
}

func TestListSetItems(t *testing.T) {
	l := newTestList(t, 200)

	m, _ := l.Update(tea.KeyMsg{Type: tea.KeyEnd})
	l = m.(*List[int])

	l.SetItems(ints(20)) // shrink under the threshold
	st := l.State()
	if st.Enabled {
		t.Error("20 rows should render direct")
	}
	if st.TotalRows != 20 {
		t.Errorf("TotalRows = %d, want 20", st.TotalRows)
	}
	if got := st.ScrollOffset; got != 10 {
		t.Errorf("offset = %v after shrink, want re-clamp to 10", got)
	}
	if !strings.Contains(l.View(), "direct") {
		t.Error("status line should report direct mode")
	}
}

func TestListTinyTerminal(t *testing.T) {
	l := newTestList(t, 200)
	m, _ := l.Update(tea.WindowSizeMsg{Width: 5, Height: 1})
	l = m.(*List[int])
	if got := l.View(); got != "" {
		t.Errorf("view for a one-line terminal = %q, want empty", got)
	}
}
