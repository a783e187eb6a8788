package progrich

import (
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"
)

// ProgressBar is a determinate progress line with tqdm-flavored defaults,
// which read much better than the usual building-block defaults:
//
//	Epoch 1 - Train   4% ━╸━━━━━━━━━━━━━━━━━━  36/800 • 0:01:09 • ETA 0:18:08
//
// The bar column absorbs whatever width the other columns leave over.
type ProgressBar struct {
	base
	desc     string
	prefix   string
	total    float64
	current  float64
	estimate time.Duration
	group    *ProgressBar // anchor bar, only consulted while attaching
}

// BarOption configures a ProgressBar.
type BarOption func(*ProgressBar)

// WithCurrent starts the bar with some progress already made.
func WithCurrent(current float64) BarOption {
	return func(p *ProgressBar) { p.current = current }
}

// WithPrefix puts a fixed prefix before the description, handy for
// aligning related bars ("[ 1/10] ").
func WithPrefix(prefix string) BarOption {
	return func(p *ProgressBar) { p.prefix = prefix }
}

// WithBarManager attaches the bar to a specific manager instead of the
// process default.
func WithBarManager(m *Manager) BarOption {
	return func(p *ProgressBar) { p.mgr = m }
}

// WithBarPersist keeps the bar on screen after Stop.
func WithBarPersist() BarOption {
	return func(p *ProgressBar) { p.persist = true }
}

// WithEstimate seeds the ETA with an expected duration so the bar shows a
// countdown before the first Advance.
func WithEstimate(d time.Duration) BarOption {
	return func(p *ProgressBar) { p.estimate = d }
}

// WithGroup renders the bar directly below other, so related bars form one
// block regardless of what else is on screen. The manager is inherited
// from other.
func WithGroup(other *ProgressBar) BarOption {
	return func(p *ProgressBar) {
		p.mgr = other.manager()
		p.group = other
	}
}

// NewProgressBar creates a bar counting toward total and attaches it to a
// manager. It does not render until Start is called.
func NewProgressBar(desc string, total float64, opts ...BarOption) *ProgressBar {
	p := &ProgressBar{desc: desc, total: total}
	for _, o := range opts {
		o(p)
	}
	if p.mgr == nil {
		p.mgr = Default()
	}
	if p.group != nil {
		p.mgr.attachAfter(p, p.group)
	} else {
		p.mgr.attach(p)
	}
	return p
}

// Start begins tracking progress. Starting a running bar is a no-op;
// starting a finished one returns ErrAlreadyDone.
func (p *ProgressBar) Start() error {
	p.mu.Lock()
	started, err := p.startLocked()
	// A paused bar still holds its manager ref; only take a new one on
	// the first start.
	acquire := started && !p.holding
	if started {
		p.holding = true
	}
	p.mu.Unlock()
	if err != nil || !started {
		return err
	}
	if acquire {
		p.mgr.acquire()
	}
	p.mgr.notify()
	return nil
}

// Stop finishes the bar. It ends StateCompleted when the total was
// reached and StateAborted otherwise.
func (p *ProgressBar) Stop() error {
	p.mu.Lock()
	if err := p.stopLocked(); err != nil {
		p.mu.Unlock()
		return err
	}
	if p.current < p.total {
		p.state = StateAborted
	}
	hold := p.holding
	p.holding = false
	p.mu.Unlock()
	if hold {
		p.mgr.release(p)
	} else {
		p.mgr.notify()
	}
	return nil
}

// Pause suspends the bar; elapsed time stops accruing until Start.
func (p *ProgressBar) Pause() {
	p.mu.Lock()
	p.pauseLocked()
	p.mu.Unlock()
	p.mgr.notify()
}

// Advance moves the bar forward by n steps (1.0 when in doubt).
func (p *ProgressBar) Advance(n float64) error {
	p.mu.Lock()
	if p.state != StateRunning {
		p.mu.Unlock()
		return ErrNotRunning
	}
	if p.current >= p.total {
		p.mu.Unlock()
		return ErrExceedsTotal
	}
	p.current += n
	if p.current > p.total {
		p.current = p.total
	}
	p.mu.Unlock()
	p.mgr.notify()
	return nil
}

// Reset rewinds a bar to zero and restarts it, for reuse across epochs.
// A finished bar cannot be reset.
func (p *ProgressBar) Reset() error {
	p.mu.Lock()
	if p.doneLocked() {
		p.mu.Unlock()
		return ErrAlreadyDone
	}
	p.current = 0
	p.accrued = 0
	p.started = time.Now()
	starting := p.state != StateRunning
	p.state = StateRunning
	p.visible = true
	acquire := false
	if starting && !p.holding {
		p.holding = true
		acquire = true
	}
	p.mu.Unlock()
	if acquire {
		p.mgr.acquire()
	}
	p.mgr.notify()
	return nil
}

// Current returns the progress made so far.
func (p *ProgressBar) Current() float64 {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.current
}

// Total returns the bar's target amount.
func (p *ProgressBar) Total() float64 {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.total
}

// View renders the bar line into width cells.
func (p *ProgressBar) View(width int) string {
	p.mu.Lock()
	desc := p.prefix + p.desc
	current, total := p.current, p.total
	elapsed := p.elapsedLocked()
	estimate := p.estimate
	p.mu.Unlock()

	if width <= 0 {
		width = 80
	}
	pct := stylePercent.Render(formatPercent(current, total))
	count := styleCount.Render(formatCount(current, total))
	times := styleTime.Render(FormatClock(elapsed)) + " • ETA " +
		styleTime.Render(formatETA(elapsed, current, total, estimate))

	// Everything except the bar and the description has a fixed width:
	// three single-space separators plus the " • " before the clocks.
	fixed := lipgloss.Width(pct) + lipgloss.Width(count) + lipgloss.Width(times) +
		3 + lipgloss.Width(" • ")
	barWidth := width - fixed - runewidth.StringWidth(desc)
	if barWidth < minBarWidth {
		maxDesc := width - fixed - minBarWidth
		if maxDesc < minDescWidth {
			maxDesc = minDescWidth
		}
		desc = runewidth.Truncate(desc, maxDesc, "…")
		barWidth = width - fixed - runewidth.StringWidth(desc)
		if barWidth < minBarWidth {
			barWidth = minBarWidth
		}
	}
	frac := 0.0
	if total > 0 {
		frac = current / total
	}

	var b strings.Builder
	b.WriteString(desc)
	b.WriteString(" ")
	b.WriteString(pct)
	b.WriteString(" ")
	b.WriteString(RenderBar(frac, barWidth))
	b.WriteString(" ")
	b.WriteString(count)
	b.WriteString(" • ")
	b.WriteString(times)
	return b.String()
}

const (
	minBarWidth  = 4
	minDescWidth = 8
)
