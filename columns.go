package progrich

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"
)

// clockUnknown is rendered when no ETA can be computed yet.
const clockUnknown = "-:--:--"

// FormatClock renders a duration as h:mm:ss with unpadded hours, the way
// tqdm does (69s -> "0:01:09").
func FormatClock(d time.Duration) string {
	if d < 0 {
		d = 0
	}
	total := int(d.Seconds())
	h := total / 3600
	m := (total % 3600) / 60
	s := total % 60
	return fmt.Sprintf("%d:%02d:%02d", h, m, s)
}

// RenderBar draws a bar of the given cell width filled to frac (0..1).
// Completed cells use a heavy line, a trailing half cell marks partial
// progress, and the remainder is dimmed.
func RenderBar(frac float64, width int) string {
	if width <= 0 {
		return ""
	}
	if frac < 0 {
		frac = 0
	}
	if frac > 1 {
		frac = 1
	}
	halves := int(math.Floor(frac * float64(width) * 2))
	full := halves / 2
	half := halves % 2
	var b strings.Builder
	b.WriteString(styleBarDone.Render(strings.Repeat("━", full)))
	if half == 1 {
		b.WriteString(styleBarDone.Render("╸"))
	}
	rest := width - full - half
	if rest > 0 {
		b.WriteString(styleBarTodo.Render(strings.Repeat("━", rest)))
	}
	return b.String()
}

// formatPercent renders "  4%" padded to four cells.
func formatPercent(current, total float64) string {
	frac := 0.0
	if total > 0 {
		frac = current / total
	}
	return fmt.Sprintf("%3.0f%%", frac*100)
}

// formatAmount renders a progress amount without a trailing ".0" when it
// is a whole number, so integer totals read like integers.
func formatAmount(v float64) string {
	if v == math.Trunc(v) {
		return strconv.FormatInt(int64(v), 10)
	}
	return strconv.FormatFloat(v, 'f', 1, 64)
}

// formatCount renders "36/800" right-aligned against the width of the total.
func formatCount(current, total float64) string {
	t := formatAmount(total)
	c := formatAmount(current)
	if pad := len(t) - len(c); pad > 0 {
		c = strings.Repeat(" ", pad) + c
	}
	return c + "/" + t
}

// etaDuration estimates the remaining time from the rate so far, falling
// back to a seeded estimate before any progress was made.
func etaDuration(elapsed time.Duration, current, total float64, estimate time.Duration) (time.Duration, bool) {
	if current > 0 && total > 0 {
		remaining := float64(elapsed) * (total - current) / current
		return time.Duration(remaining), true
	}
	if estimate > 0 {
		remaining := estimate - elapsed
		if remaining < 0 {
			remaining = 0
		}
		return remaining, true
	}
	return 0, false
}

// formatETA renders the ETA clock, or a placeholder when it is unknown.
func formatETA(elapsed time.Duration, current, total float64, estimate time.Duration) string {
	if d, ok := etaDuration(elapsed, current, total, estimate); ok {
		return FormatClock(d)
	}
	return clockUnknown
}
