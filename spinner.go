package progrich

import (
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"
)

// Spinner is an animated status line for work without a measurable total.
//
//	⠦ Saving new best model to: log/example/best
//
// It reuses the frame sets shipped with bubbles/spinner and finishes with
// a persisted success or failure line.
type Spinner struct {
	base
	frames    spinner.Spinner
	text      string
	finalMark string
	finalText string
}

// SpinnerOption configures a Spinner.
type SpinnerOption func(*Spinner)

// WithSpinnerFrames selects the frame set, e.g. spinner.Line or
// spinner.MiniDot.
func WithSpinnerFrames(frames spinner.Spinner) SpinnerOption {
	return func(s *Spinner) { s.frames = frames }
}

// WithSpinnerManager attaches the spinner to a specific manager instead of
// the process default.
func WithSpinnerManager(m *Manager) SpinnerOption {
	return func(s *Spinner) { s.mgr = m }
}

// WithSpinnerPersist keeps the last rendered line on screen after Stop.
func WithSpinnerPersist() SpinnerOption {
	return func(s *Spinner) { s.persist = true }
}

// NewSpinner creates a spinner showing text and attaches it to a manager.
// It does not render until Start is called.
func NewSpinner(text string, opts ...SpinnerOption) *Spinner {
	s := &Spinner{text: text, frames: spinner.Dot}
	for _, o := range opts {
		o(s)
	}
	if s.mgr == nil {
		s.mgr = Default()
	}
	s.mgr.attach(s)
	return s
}

// Start begins animating. Starting a running spinner is a no-op; starting
// a finished one returns ErrAlreadyDone.
func (s *Spinner) Start() error {
	s.mu.Lock()
	started, err := s.startLocked()
	// A paused spinner still holds its manager ref; only take a new one
	// on the first start.
	acquire := started && !s.holding
	if started {
		s.holding = true
	}
	s.mu.Unlock()
	if err != nil || !started {
		return err
	}
	if acquire {
		s.mgr.acquire()
	}
	s.mgr.notify()
	return nil
}

// Stop finishes the spinner. Unless it persists, its line disappears from
// the live region.
func (s *Spinner) Stop() error {
	s.mu.Lock()
	if err := s.stopLocked(); err != nil {
		s.mu.Unlock()
		return err
	}
	hold := s.holding
	s.holding = false
	s.mu.Unlock()
	if hold {
		s.mgr.release(s)
	} else {
		s.mgr.notify()
	}
	return nil
}

// Pause suspends the animation without finishing the spinner.
func (s *Spinner) Pause() {
	s.mu.Lock()
	s.pauseLocked()
	s.mu.Unlock()
	s.mgr.notify()
}

// Update replaces the spinner text.
func (s *Spinner) Update(text string) {
	s.mu.Lock()
	s.text = text
	s.mu.Unlock()
	s.mgr.notify()
}

// Success stops the spinner and persists a green check line. An empty text
// keeps the current one.
func (s *Spinner) Success(text string) error {
	return s.finish(SymbolSuccess, styleSuccess, text, false)
}

// Fail stops the spinner and persists a red cross line, leaving the
// spinner aborted. An empty text keeps the current one.
func (s *Spinner) Fail(text string) error {
	return s.finish(SymbolFail, styleFail, text, true)
}

func (s *Spinner) finish(icon string, style lipgloss.Style, text string, abort bool) error {
	s.mu.Lock()
	if s.doneLocked() {
		s.mu.Unlock()
		return ErrAlreadyDone
	}
	if text == "" {
		text = s.text
	}
	s.finalMark = style.Render(icon)
	s.finalText = text
	s.persist = true
	_ = s.stopLocked()
	if abort {
		s.state = StateAborted
	}
	hold := s.holding
	s.holding = false
	s.mu.Unlock()
	if hold {
		s.mgr.release(s)
	} else {
		s.mgr.notify()
	}
	return nil
}

// Text returns the current spinner text.
func (s *Spinner) Text() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.text
}

// View renders the spinner line. The frame index is derived from the
// elapsed time and the frame set's own speed, so rendering needs no
// ticker of its own.
func (s *Spinner) View(width int) string {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.doneLocked() && s.finalMark != "" {
		return markedLine(s.finalMark, s.finalText, width)
	}
	fps := s.frames.FPS
	if fps <= 0 {
		fps = spinner.Dot.FPS
	}
	i := int(s.elapsedLocked()/fps) % len(s.frames.Frames)
	return markedLine(styleSpinner.Render(s.frames.Frames[i]), s.text, width)
}

// markedLine joins a styled one-cell mark and plain text, truncating the
// text so the whole line fits in width cells. The mark may carry escape
// sequences; the text must not, so it can be cut with runewidth.
func markedLine(mark, text string, width int) string {
	if width > 0 {
		avail := width - lipgloss.Width(mark) - 1
		if avail < 1 {
			avail = 1
		}
		if runewidth.StringWidth(text) > avail {
			text = runewidth.Truncate(text, avail, "…")
		}
	}
	return mark + " " + text
}
