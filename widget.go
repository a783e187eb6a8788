// Package progrich provides progress bars, spinners and other terminal
// widgets with more intuitive defaults than the usual building blocks.
//
// Widgets render through a shared Manager that owns a live region of the
// terminal, so any number of spinners and progress bars can be shown at
// the same time without coordinating anything by hand.
package progrich

import (
	"errors"
	"sync"
	"time"
)

// State describes where a widget is in its lifecycle.
type State int

const (
	StateIdle State = iota
	StateRunning
	StateCompleted
	StateAborted
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateRunning:
		return "running"
	case StateCompleted:
		return "completed"
	case StateAborted:
		return "aborted"
	}
	return "unknown"
}

var (
	// ErrAlreadyDone is returned when starting or stopping a widget that
	// has already completed or aborted.
	ErrAlreadyDone = errors.New("widget already finished")
	// ErrNotRunning is returned when advancing a widget that is not running.
	ErrNotRunning = errors.New("widget is not running")
	// ErrExceedsTotal is returned when a progress bar is advanced past its total.
	ErrExceedsTotal = errors.New("progress already reached the total")
)

// Widget is anything the manager can include in the live display.
type Widget interface {
	// View renders the widget into a single line no wider than width cells.
	View(width int) string
	State() State
	Visible() bool
	Persist() bool
}

// base carries the lifecycle shared by all widgets. The zero value is an
// idle, invisible widget.
type base struct {
	mu      sync.Mutex
	mgr     *Manager
	state   State
	visible bool
	persist bool
	holding bool // widget currently holds a manager ref
	started time.Time
	accrued time.Duration // elapsed time accumulated across pauses
}

// startLocked performs the idle/running -> running transition. It reports
// whether the widget actually transitioned: starting a running widget is a
// no-op, starting a finished one is an error.
func (b *base) startLocked() (bool, error) {
	if b.doneLocked() {
		return false, ErrAlreadyDone
	}
	if b.state == StateRunning {
		return false, nil
	}
	b.state = StateRunning
	b.visible = true
	b.started = time.Now()
	return true, nil
}

// stopLocked marks the widget completed and hides it unless it persists.
func (b *base) stopLocked() error {
	if b.doneLocked() {
		return ErrAlreadyDone
	}
	if b.state == StateRunning {
		b.accrued += time.Since(b.started)
	}
	b.state = StateCompleted
	b.visible = b.persist
	return nil
}

// pauseLocked returns the widget to idle, keeping the elapsed time accrued
// so far.
func (b *base) pauseLocked() {
	if b.state == StateRunning {
		b.accrued += time.Since(b.started)
	}
	b.state = StateIdle
}

func (b *base) doneLocked() bool {
	return b.state == StateCompleted || b.state == StateAborted
}

func (b *base) elapsedLocked() time.Duration {
	if b.state == StateRunning {
		return b.accrued + time.Since(b.started)
	}
	return b.accrued
}

// State returns the current lifecycle state.
func (b *base) State() State {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.state
}

// Done reports whether the widget completed or aborted.
func (b *base) Done() bool {
	s := b.State()
	return s == StateCompleted || s == StateAborted
}

// Running reports whether the widget is currently running.
func (b *base) Running() bool {
	return b.State() == StateRunning
}

// Visible reports whether the manager should render the widget.
func (b *base) Visible() bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.visible
}

// Persist reports whether the widget stays on screen after it stops.
func (b *base) Persist() bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.persist
}

// Elapsed returns how long the widget has been running, excluding pauses.
func (b *base) Elapsed() time.Duration {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.elapsedLocked()
}

// manager returns the manager the widget is attached to.
func (b *base) manager() *Manager {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.mgr
}
