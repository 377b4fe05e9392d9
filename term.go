package louver

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"os/signal"
	"sync"
	"unicode/utf8"

	"github.com/mattn/go-runewidth"
	"golang.org/x/sys/unix"
	"golang.org/x/term"
)

// Key is a decoded key press from a TermPane.
type Key int

const (
	KeyNone Key = iota
	KeyUp
	KeyDown
	KeyPageUp
	KeyPageDown
	KeyHome
	KeyEnd
	KeyQuit
	KeyRune
)

// TermPane is a Pane bound to a real terminal: raw-mode input, SIGWINCH
// resize, and ANSI rendering of whichever lines intersect the viewport. The
// bottom terminal row is reserved for a status line.
type TermPane struct {
	Pane

	in  *os.File
	out io.Writer
	fd  int

	tmu     sync.Mutex
	width   int
	status  string
	restore func() error

	sig      chan os.Signal
	renderCh chan struct{}
	done     chan struct{}
}

// NewTermPane takes over the terminal: alternate screen, hidden cursor, raw
// input. Close undoes all of it.
func NewTermPane() (*TermPane, error) {
	outFd := int(os.Stdout.Fd())
	if !term.IsTerminal(outFd) {
		return nil, fmt.Errorf("louver: stdout is not a terminal")
	}
	w, h, err := term.GetSize(outFd)
	if err != nil {
		return nil, fmt.Errorf("louver: terminal size: %w", err)
	}
	inFd := int(os.Stdin.Fd())
	prev, err := term.MakeRaw(inFd)
	if err != nil {
		return nil, fmt.Errorf("louver: raw mode: %w", err)
	}

	tp := &TermPane{
		in:       os.Stdin,
		out:      os.Stdout,
		fd:       outFd,
		width:    w,
		restore:  func() error { return term.Restore(inFd, prev) },
		sig:      make(chan os.Signal, 1),
		renderCh: make(chan struct{}, 1),
		done:     make(chan struct{}),
	}
	tp.viewport = float64(h - 1)

	fmt.Fprint(tp.out, "\x1b[?1049h\x1b[?25l\x1b[2J")
	signal.Notify(tp.sig, unix.SIGWINCH)
	go tp.watchResize()
	return tp, nil
}

// watchResize refreshes the viewport from the terminal on SIGWINCH. The
// engine's debounced resize path fires through SetViewportHeight.
func (tp *TermPane) watchResize() {
	for {
		select {
		case <-tp.done:
			return
		case <-tp.sig:
			w, h, err := term.GetSize(tp.fd)
			if err != nil {
				logger.Debug("terminal size read failed", "err", err)
				continue
			}
			tp.tmu.Lock()
			tp.width = w
			tp.tmu.Unlock()
			tp.SetViewportHeight(float64(h - 1))
			tp.RequestRender()
		}
	}
}

// RequestRender coalesces redraw requests; Run drains them one frame at a
// time. Safe from any goroutine.
func (tp *TermPane) RequestRender() {
	select {
	case tp.renderCh <- struct{}{}:
	default:
	}
}

// Engine reconciles land on timer goroutines with no caller around to ask for
// a frame, so every child mutation requests its own repaint.

func (tp *TermPane) AppendChild(el Element) {
	tp.Pane.AppendChild(el)
	tp.RequestRender()
}

func (tp *TermPane) InsertBefore(el, ref Element) {
	tp.Pane.InsertBefore(el, ref)
	tp.RequestRender()
}

func (tp *TermPane) RemoveChild(el Element) {
	tp.Pane.RemoveChild(el)
	tp.RequestRender()
}

// Run paints an initial frame, then redraws on every render request until
// Close. It blocks; input reading belongs on the caller's goroutine.
func (tp *TermPane) Run() {
	tp.Render()
	for {
		select {
		case <-tp.done:
			return
		case <-tp.renderCh:
			tp.Render()
		}
	}
}

// SetStatus replaces the status line under the viewport.
func (tp *TermPane) SetStatus(s string) {
	tp.tmu.Lock()
	tp.status = s
	tp.tmu.Unlock()
}

// Render composes the visible window, a scrollbar column, and the status
// line into one buffer and writes it in a single call.
func (tp *TermPane) Render() {
	tp.tmu.Lock()
	width := tp.width
	status := tp.status
	tp.tmu.Unlock()
	if width < 2 {
		return
	}

	offset := tp.ScrollOffset()
	view := tp.ViewportHeight()
	children := tp.Children()
	var content float64
	for _, c := range children {
		content += c.Height()
	}

	rows := int(view)
	if rows < 1 {
		return
	}
	lines := viewportLines(children, offset, view, rows)
	thumbAt, thumbLen := thumbSpan(rows, content, view, offset)

	var buf bytes.Buffer
	for i, line := range lines {
		fmt.Fprintf(&buf, "\x1b[%d;1H\x1b[2K", i+1)
		buf.WriteString(runewidth.Truncate(line, width-1, "…"))
		fmt.Fprintf(&buf, "\x1b[%d;%dH", i+1, width)
		if thumbLen > 0 && i >= thumbAt && i < thumbAt+thumbLen {
			buf.WriteRune('█')
		} else {
			buf.WriteRune('░')
		}
	}
	fmt.Fprintf(&buf, "\x1b[%d;1H\x1b[2K\x1b[7m", rows+1)
	buf.WriteString(runewidth.Truncate(status, width, ""))
	buf.WriteString("\x1b[0m")
	tp.out.Write(buf.Bytes())
}

// ReadKey blocks for one key press. Unrecognized printable input comes back
// as KeyRune with its rune.
func (tp *TermPane) ReadKey() (Key, rune, error) {
	var b [8]byte
	n, err := tp.in.Read(b[:])
	if err != nil {
		return KeyNone, 0, err
	}
	k, r := decodeKey(b[:n])
	return k, r, nil
}

// decodeKey maps one raw input chunk to a key. It understands the arrow,
// page, home and end sequences the demos use; everything else printable is
// KeyRune.
func decodeKey(b []byte) (Key, rune) {
	if len(b) == 0 {
		return KeyNone, 0
	}
	switch b[0] {
	case 'q', 0x03: // ctrl-c
		return KeyQuit, 0
	case 0x1b:
		if len(b) >= 3 && b[1] == '[' {
			switch b[2] {
			case 'A':
				return KeyUp, 0
			case 'B':
				return KeyDown, 0
			case 'H':
				return KeyHome, 0
			case 'F':
				return KeyEnd, 0
			case '5':
				return KeyPageUp, 0
			case '6':
				return KeyPageDown, 0
			}
		}
		return KeyNone, 0
	}
	r, _ := utf8.DecodeRune(b)
	if r == utf8.RuneError {
		return KeyNone, 0
	}
	return KeyRune, r
}

// Close restores the terminal and stops Run and the resize watcher.
// Idempotent.
func (tp *TermPane) Close() error {
	tp.tmu.Lock()
	select {
	case <-tp.done:
		tp.tmu.Unlock()
		return nil
	default:
	}
	close(tp.done)
	tp.tmu.Unlock()

	signal.Stop(tp.sig)
	fmt.Fprint(tp.out, "\x1b[?25h\x1b[?1049l")
	if tp.restore != nil {
		return tp.restore()
	}
	return nil
}

// thumbSpan sizes a scrollbar thumb for a track of the given line count,
// returning its first line and length. Content that fits the view has no
// thumb.
func thumbSpan(track int, content, view, offset float64) (at, size int) {
	if track <= 0 || content <= 0 || content <= view {
		return 0, 0
	}
	size = int(float64(track) * view / content)
	if size < 1 {
		size = 1
	}
	if size > track {
		size = track
	}
	maxOff := content - view
	at = int(float64(track-size)*offset/maxOff + 0.5)
	return at, size
}
