package progrich

import "github.com/charmbracelet/lipgloss"

// Status symbols used when a spinner finishes. They match the usual
// conventions for terminal tooling and can be overridden per process.
var (
	SymbolSuccess = "✔"
	SymbolFail    = "✖"
)

// Styles for the default widget rendering. Colors degrade automatically on
// terminals without color support.
var (
	styleSpinner = lipgloss.NewStyle().Foreground(lipgloss.Color("6"))
	styleSuccess = lipgloss.NewStyle().Foreground(lipgloss.Color("2"))
	styleFail    = lipgloss.NewStyle().Foreground(lipgloss.Color("1"))

	styleBarDone = lipgloss.NewStyle().Foreground(lipgloss.Color("205"))
	styleBarTodo = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
	stylePercent = lipgloss.NewStyle().Foreground(lipgloss.Color("141"))
	styleCount   = lipgloss.NewStyle().Foreground(lipgloss.Color("114"))
	styleTime    = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
)
