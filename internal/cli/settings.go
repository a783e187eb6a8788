package cli

import (
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"

	"github.com/drei/progrich/internal/config"
)

// spinnerFrames maps a config name to a bubbles frame set. Unknown names
// fall back to the default dots.
func spinnerFrames(name string) spinner.Spinner {
	switch name {
	case "line":
		return spinner.Line
	case "minidot":
		return spinner.MiniDot
	case "jump":
		return spinner.Jump
	case "points":
		return spinner.Points
	case "meter":
		return spinner.Meter
	default:
		return spinner.Dot
	}
}

// applyColorSetting forces monochrome rendering when the user asked for it.
func applyColorSetting(s config.Settings) {
	if s.NoColor {
		lipgloss.DefaultRenderer().SetColorProfile(termenv.Ascii)
	}
}
