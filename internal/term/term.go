// Package term answers questions about the terminal a writer points at.
package term

import (
	"io"
	"os"
	"strconv"

	xterm "golang.org/x/term"
)

// DefaultWidth is used when the width cannot be determined.
const DefaultWidth = 80

// IsTerminal reports whether w is an interactive terminal.
func IsTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return xterm.IsTerminal(int(f.Fd()))
}

// Width returns the column count of the terminal behind w. It honors the
// COLUMNS environment variable for writers that are not terminals and
// falls back to DefaultWidth.
func Width(w io.Writer) int {
	if f, ok := w.(*os.File); ok {
		if cols, _, err := xterm.GetSize(int(f.Fd())); err == nil && cols > 0 {
			return cols
		}
	}
	if env := os.Getenv("COLUMNS"); env != "" {
		if cols, err := strconv.Atoi(env); err == nil && cols > 0 {
			return cols
		}
	}
	return DefaultWidth
}
