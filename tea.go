package louver

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
)

// KeyMap holds the list widget's bindings.
type KeyMap struct {
	Up       key.Binding
	Down     key.Binding
	PageUp   key.Binding
	PageDown key.Binding
	Home     key.Binding
	End      key.Binding
	Quit     key.Binding
}

// DefaultKeyMap returns arrow plus vi-flavored bindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Up:       key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
		Down:     key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
		PageUp:   key.NewBinding(key.WithKeys("pgup", "b"), key.WithHelp("pgup", "page up")),
		PageDown: key.NewBinding(key.WithKeys("pgdown", "f"), key.WithHelp("pgdn", "page down")),
		Home:     key.NewBinding(key.WithKeys("home", "g"), key.WithHelp("g", "top")),
		End:      key.NewBinding(key.WithKeys("end", "G"), key.WithHelp("G", "bottom")),
		Quit:     key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

// Styles colors the widget chrome.
type Styles struct {
	Status lipgloss.Style
	Thumb  lipgloss.Style
	Track  lipgloss.Style
}

func DefaultStyles() Styles {
	return Styles{
		Status: lipgloss.NewStyle().Foreground(lipgloss.Color("245")),
		Thumb:  lipgloss.NewStyle().Foreground(lipgloss.Color("62")),
		Track:  lipgloss.NewStyle().Foreground(lipgloss.Color("238")),
	}
}

// List is a bubbletea model that renders a dataset through a windowed
// engine. One height unit is one terminal line, so factories should build
// rows whose Height matches their line count.
type List[T any] struct {
	pane   *Pane
	eng    *Engine[T]
	keys   KeyMap
	styles Styles

	width  int
	height int
}

// NewList builds the widget and hands data to the engine. The viewport stays
// zero until the first tea.WindowSizeMsg arrives.
func NewList[T any](data Dataset[T], factory RowFactory[T], cfg Config) (*List[T], error) {
	pane := NewPane(0)
	eng, err := New(pane, factory, cfg)
	if err != nil {
		return nil, err
	}
	l := &List[T]{
		pane:   pane,
		eng:    eng,
		keys:   DefaultKeyMap(),
		styles: DefaultStyles(),
	}
	eng.Initialize(data)
	return l, nil
}

// Keys replaces the key map. Returns the list for chaining.
func (l *List[T]) Keys(k KeyMap) *List[T] {
	l.keys = k
	return l
}

// WithStyles replaces the chrome styles. Returns the list for chaining.
func (l *List[T]) WithStyles(s Styles) *List[T] {
	l.styles = s
	return l
}

// SetItems replaces the dataset.
func (l *List[T]) SetItems(data Dataset[T]) {
	l.eng.Update(data)
	// Shrinking content can leave the offset past the end.
	l.pane.SetScrollOffset(l.pane.ScrollOffset())
	l.eng.Refresh()
}

// State exposes the engine snapshot for status lines and tests.
func (l *List[T]) State() State {
	return l.eng.State()
}

func (l *List[T]) Init() tea.Cmd { return nil }

func (l *List[T]) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		l.width = msg.Width
		l.height = msg.Height
		l.pane.SetViewportHeight(float64(msg.Height - 1))
		l.eng.Refresh()

	case tea.MouseMsg:
		switch msg.Button {
		case tea.MouseButtonWheelUp:
			l.scrollBy(-3 * l.eng.cfg.RowHeight)
		case tea.MouseButtonWheelDown:
			l.scrollBy(3 * l.eng.cfg.RowHeight)
		}

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, l.keys.Quit):
			return l, tea.Quit
		case key.Matches(msg, l.keys.Up):
			l.scrollBy(-l.eng.cfg.RowHeight)
		case key.Matches(msg, l.keys.Down):
			l.scrollBy(l.eng.cfg.RowHeight)
		case key.Matches(msg, l.keys.PageUp):
			l.scrollBy(-l.pane.ViewportHeight())
		case key.Matches(msg, l.keys.PageDown):
			l.scrollBy(l.pane.ViewportHeight())
		case key.Matches(msg, l.keys.Home):
			l.pane.SetScrollOffset(0)
			l.eng.Refresh()
		case key.Matches(msg, l.keys.End):
			l.pane.ScrollToBottom()
			l.eng.Refresh()
		}
	}
	return l, nil
}

// scrollBy moves the pane and recomputes synchronously so the View that
// bubbletea renders next already reflects the new window.
func (l *List[T]) scrollBy(delta float64) {
	l.pane.ScrollBy(delta)
	l.eng.Refresh()
}

func (l *List[T]) View() string {
	rows := l.height - 1
	if rows < 1 {
		return ""
	}
	offset := l.pane.ScrollOffset()
	view := l.pane.ViewportHeight()
	lines := viewportLines(l.pane.Children(), offset, view, rows)
	thumbAt, thumbLen := thumbSpan(rows, l.pane.ContentHeight(), view, offset)

	textW := l.width - 1
	var b strings.Builder
	for i, line := range lines {
		b.WriteString(padTo(line, textW))
		if thumbLen > 0 && i >= thumbAt && i < thumbAt+thumbLen {
			b.WriteString(l.styles.Thumb.Render("█"))
		} else {
			b.WriteString(l.styles.Track.Render("░"))
		}
		b.WriteByte('\n')
	}
	b.WriteString(l.styles.Status.Render(l.statusLine()))
	return b.String()
}

func (l *List[T]) statusLine() string {
	st := l.eng.State()
	mode := "direct"
	if st.Enabled {
		mode = "windowed"
	}
	return fmt.Sprintf(" %d-%d of %d  %s", st.StartIndex, st.EndIndex, st.TotalRows, mode)
}

// padTo truncates or pads line to exactly w cells, counting ANSI styling as
// zero width.
func padTo(line string, w int) string {
	if w <= 0 {
		return ""
	}
	line = ansi.Truncate(line, w, "")
	if gap := w - ansi.StringWidth(line); gap > 0 {
		line += strings.Repeat(" ", gap)
	}
	return line
}
