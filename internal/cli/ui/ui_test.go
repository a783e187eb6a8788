package ui

import (
	"errors"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/drei/progrich/internal/history"
)

type fakeSource struct {
	runs []history.Run
	err  error
}

func (f fakeSource) List(limit int) ([]history.Run, error) {
	return f.runs, f.err
}

func sampleRuns() []history.Run {
	return []history.Run{
		{ID: 2, Label: "make test", Duration: 9 * time.Second, OK: false, CreatedAt: "2026-08-25 10:00:01"},
		{ID: 1, Label: "make build", Duration: 3 * time.Second, OK: true, CreatedAt: "2026-08-25 10:00:00"},
	}
}

func loadedModel(t *testing.T, src RunSource) *Model {
	t.Helper()
	m := NewModel(src)
	msg := m.Init()()
	next, _ := m.Update(msg)
	updated, ok := next.(*Model)
	if !ok {
		t.Fatalf("Update returned %T", next)
	}
	updated.Update(tea.WindowSizeMsg{Width: 80, Height: 24})
	return updated
}

func TestInitPopulatesList(t *testing.T) {
	m := loadedModel(t, fakeSource{runs: sampleRuns()})
	if got := len(m.list.Items()); got != 2 {
		t.Fatalf("items = %d, want 2", got)
	}
	view := m.View()
	if !strings.Contains(view, "make test") {
		t.Fatalf("view missing run label:\n%s", view)
	}
}

func TestInitSurfacesLoadError(t *testing.T) {
	m := loadedModel(t, fakeSource{err: errors.New("disk gone")})
	if !strings.Contains(m.View(), "disk gone") {
		t.Fatalf("view should show the load error:\n%s", m.View())
	}
}

func TestQuitKeys(t *testing.T) {
	for _, key := range []string{"q", "esc", "ctrl+c"} {
		m := loadedModel(t, fakeSource{runs: sampleRuns()})
		var msg tea.Msg
		switch key {
		case "esc":
			msg = tea.KeyMsg{Type: tea.KeyEsc}
		case "ctrl+c":
			msg = tea.KeyMsg{Type: tea.KeyCtrlC}
		default:
			msg = tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(key)}
		}
		_, cmd := m.Update(msg)
		if cmd == nil {
			t.Fatalf("key %q should quit", key)
		}
	}
}

func TestRunItemDescription(t *testing.T) {
	ok := runItem{r: history.Run{Duration: 1500 * time.Millisecond, OK: true, CreatedAt: "ts"}}
	if d := ok.Description(); !strings.Contains(d, "ok") || !strings.Contains(d, "1.5s") {
		t.Fatalf("Description = %q", d)
	}
	bad := runItem{r: history.Run{Duration: time.Second, OK: false, CreatedAt: "ts"}}
	if d := bad.Description(); !strings.Contains(d, "failed") {
		t.Fatalf("Description = %q", d)
	}
}
