// Package ui implements the Bubble Tea browser behind `progrich tui`.
package ui

import (
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/drei/progrich/internal/history"
)

// listLimit bounds how many runs the browser loads at once.
const listLimit = 500

// RunSource supplies recorded runs. It is an interface so tests can
// provide fakes without a database.
type RunSource interface {
	List(limit int) ([]history.Run, error)
}

type runItem struct {
	r history.Run
}

func (i runItem) Title() string { return i.r.Label }

func (i runItem) Description() string {
	status := "ok"
	if !i.r.OK {
		status = "failed"
	}
	return fmt.Sprintf("%s • %s • %s", i.r.Duration.Round(time.Millisecond), status, i.r.CreatedAt)
}

func (i runItem) FilterValue() string { return i.r.Label }

type itemsMsg struct {
	items []list.Item
}

type loadErrMsg struct {
	err error
}

var footerStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("240")).Padding(0, 1)

// Model is the browser's Bubble Tea model.
type Model struct {
	src  RunSource
	list list.Model
	err  error
}

// NewModel constructs the browser over a run source.
func NewModel(src RunSource) *Model {
	l := list.New([]list.Item{}, list.NewDefaultDelegate(), 0, 0)
	l.Title = "progrich — recorded runs"
	l.SetShowStatusBar(false)
	return &Model{src: src, list: l}
}

// NewProgram constructs the tea.Program for the browser.
func NewProgram(src RunSource) *tea.Program {
	return tea.NewProgram(NewModel(src), tea.WithAltScreen())
}

// Init loads the recorded runs.
func (m *Model) Init() tea.Cmd {
	return func() tea.Msg {
		runs, err := m.src.List(listLimit)
		if err != nil {
			return loadErrMsg{err: err}
		}
		items := make([]list.Item, 0, len(runs))
		for _, r := range runs {
			items = append(items, runItem{r: r})
		}
		return itemsMsg{items: items}
	}
}

// Update handles messages.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case itemsMsg:
		m.list.SetItems(msg.items)
		return m, nil
	case loadErrMsg:
		m.err = msg.err
		return m, nil
	case tea.WindowSizeMsg:
		m.list.SetSize(msg.Width, msg.Height-1)
		return m, nil
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "esc", "ctrl+c":
			return m, tea.Quit
		}
	}
	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

// View renders the list with a one-line footer.
func (m *Model) View() string {
	if m.err != nil {
		return footerStyle.Render("error: " + m.err.Error())
	}
	return m.list.View() + "\n" + footerStyle.Render("q quit • / filter")
}
