package progrich

import (
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/drei/progrich/internal/term"
)

const (
	ansiHideCursor = "\x1b[?25l"
	ansiShowCursor = "\x1b[?25h"
	ansiEraseLine  = "\x1b[2K"
	ansiEraseBelow = "\x1b[J"
)

// Manager owns the live region of the terminal and multiplexes every
// attached widget into it. Widgets attach themselves on construction and
// drive the manager's lifetime through their own Start/Stop, so most
// programs never touch the manager directly.
//
// Rendering degrades on non-terminal outputs: nothing is repainted live,
// and only the final line of persisted widgets is printed.
type Manager struct {
	mu             sync.Mutex
	out            io.Writer
	interval       time.Duration
	completedOnTop bool
	isTTY          bool
	fixedWidth     int

	widgets []Widget
	refs    int
	painted int
	running bool
	stopCh  chan struct{}
	doneCh  chan struct{}
	ping    chan struct{}
}

// ManagerOption configures a Manager.
type ManagerOption func(*Manager)

// WithOutput sets the writer the live region renders to. Default is stdout.
func WithOutput(w io.Writer) ManagerOption {
	return func(m *Manager) {
		m.out = w
		m.isTTY = term.IsTerminal(w)
	}
}

// WithFPS sets how many times per second the live region repaints.
func WithFPS(fps float64) ManagerOption {
	return func(m *Manager) {
		if fps > 0 {
			m.interval = time.Duration(float64(time.Second) / fps)
		}
	}
}

// WithCompletedOnTop renders finished persisted widgets above running ones.
func WithCompletedOnTop() ManagerOption {
	return func(m *Manager) { m.completedOnTop = true }
}

// WithWidth pins the render width instead of asking the terminal.
func WithWidth(cells int) ManagerOption {
	return func(m *Manager) { m.fixedWidth = cells }
}

// WithForceTTY makes the manager repaint live even when the output is not
// a terminal. Useful for tests that render into a buffer or a PTY wrapper.
func WithForceTTY() ManagerOption {
	return func(m *Manager) { m.isTTY = true }
}

// NewManager creates a manager rendering to stdout at 10 frames/second.
func NewManager(opts ...ManagerOption) *Manager {
	m := &Manager{
		out:      os.Stdout,
		interval: time.Second / 10,
		isTTY:    term.IsTerminal(os.Stdout),
		ping:     make(chan struct{}, 1),
	}
	for _, o := range opts {
		o(m)
	}
	return m
}

var (
	defaultMu  sync.Mutex
	defaultMgr *Manager
)

// Default returns the process-wide manager, creating it on first use.
// Widgets constructed without an explicit manager attach here.
func Default() *Manager {
	defaultMu.Lock()
	defer defaultMu.Unlock()
	if defaultMgr == nil {
		defaultMgr = NewManager()
	}
	return defaultMgr
}

// SetDefault replaces the process-wide manager. Widgets already attached
// to the previous default keep using it.
func SetDefault(m *Manager) {
	defaultMu.Lock()
	defer defaultMu.Unlock()
	defaultMgr = m
}

// attach registers a widget at the end of the display order.
func (m *Manager) attach(w Widget) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, existing := range m.widgets {
		if existing == w {
			return
		}
	}
	m.widgets = append(m.widgets, w)
}

// attachAfter registers a widget directly below anchor so related widgets
// render as one block. Falls back to attach when anchor is not present.
func (m *Manager) attachAfter(w, anchor Widget) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i, existing := range m.widgets {
		if existing == anchor {
			m.widgets = append(m.widgets[:i+1], append([]Widget{w}, m.widgets[i+1:]...)...)
			return
		}
	}
	m.widgets = append(m.widgets, w)
}

// Detach removes a widget from the display.
func (m *Manager) Detach(w Widget) {
	m.mu.Lock()
	m.detachLocked(w)
	m.mu.Unlock()
	m.notify()
}

func (m *Manager) detachLocked(w Widget) {
	for i, existing := range m.widgets {
		if existing == w {
			m.widgets = append(m.widgets[:i], m.widgets[i+1:]...)
			return
		}
	}
}

// acquire takes a reference on the live display, starting the render loop
// on the first one.
func (m *Manager) acquire() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.refs++
	if m.refs == 1 && m.isTTY && !m.running {
		m.running = true
		m.stopCh = make(chan struct{})
		m.doneCh = make(chan struct{})
		fmt.Fprint(m.out, ansiHideCursor)
		go m.loop(m.stopCh, m.doneCh)
	}
}

// release drops a reference. When the last one goes, the loop is stopped
// synchronously and the final frame is left on screen. On non-terminal
// outputs the widget's persisted line is printed instead.
func (m *Manager) release(w Widget) {
	m.mu.Lock()
	if m.refs > 0 {
		m.refs--
	}
	if !m.isTTY {
		if w != nil {
			if w.Persist() {
				fmt.Fprintln(m.out, w.View(m.widthLocked()))
			}
			m.detachLocked(w)
		}
		m.mu.Unlock()
		return
	}
	stop := m.refs == 0 && m.running
	var stopCh, doneCh chan struct{}
	if stop {
		m.running = false
		stopCh, doneCh = m.stopCh, m.doneCh
	}
	m.mu.Unlock()

	if stop {
		close(stopCh)
		<-doneCh
		m.finish()
	} else {
		m.notify()
	}
}

// notify requests an immediate repaint without waiting for the next tick.
func (m *Manager) notify() {
	select {
	case m.ping <- struct{}{}:
	default:
	}
}

func (m *Manager) loop(stop, done chan struct{}) {
	defer close(done)
	t := time.NewTicker(m.interval)
	defer t.Stop()
	m.Flush()
	for {
		select {
		case <-stop:
			return
		case <-t.C:
			m.Flush()
		case <-m.ping:
			m.Flush()
		}
	}
}

// finish paints the last frame, restores the cursor and resets the
// manager for the next live session. Finished widgets are detached,
// leaving their persisted lines in the scrollback; widgets attached but
// not yet started stay around for the next session.
func (m *Manager) finish() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.paintLocked(m.frameLocked())
	fmt.Fprint(m.out, ansiShowCursor)
	m.painted = 0
	kept := m.widgets[:0]
	for _, w := range m.widgets {
		if s := w.State(); s != StateCompleted && s != StateAborted {
			kept = append(kept, w)
		}
	}
	m.widgets = kept
}

// Flush repaints the live region once, synchronously.
func (m *Manager) Flush() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.paintLocked(m.frameLocked())
}

// Clear erases the live region and detaches every widget.
func (m *Manager) Clear() {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.painted > 0 {
		fmt.Fprintf(m.out, "\x1b[%dA\r%s", m.painted, ansiEraseBelow)
		m.painted = 0
	}
	m.widgets = nil
}

func (m *Manager) widthLocked() int {
	if m.fixedWidth > 0 {
		return m.fixedWidth
	}
	return term.Width(m.out)
}

// frameLocked renders every visible widget, one line each, completed ones
// first when so configured.
func (m *Manager) frameLocked() []string {
	width := m.widthLocked()
	var completed, active []string
	for _, w := range m.widgets {
		if !w.Visible() {
			continue
		}
		s := w.State()
		if m.completedOnTop && (s == StateCompleted || s == StateAborted) {
			completed = append(completed, w.View(width))
			continue
		}
		active = append(active, w.View(width))
	}
	return append(completed, active...)
}

// paintLocked replaces the previously painted frame with the new one.
// Every frame line ends in a newline so the cursor parks below the
// region, which keeps interleaved writes from other code readable.
// Non-terminal outputs get plain lines with no escape sequences.
func (m *Manager) paintLocked(lines []string) {
	if !m.isTTY {
		for _, ln := range lines {
			fmt.Fprintln(m.out, ln)
		}
		return
	}
	var b strings.Builder
	if m.painted > 0 {
		fmt.Fprintf(&b, "\x1b[%dA", m.painted)
	}
	b.WriteString("\r")
	for _, ln := range lines {
		b.WriteString(ansiEraseLine)
		b.WriteString(ln)
		b.WriteString("\n")
	}
	b.WriteString(ansiEraseBelow)
	fmt.Fprint(m.out, b.String())
	m.painted = len(lines)
}
