package progrich

import (
	"errors"
	"strings"
	"testing"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/lipgloss"
)

func TestSpinnerViewShowsFrameAndText(t *testing.T) {
	mgr, _ := quietManager()
	s := NewSpinner("downloading", WithSpinnerManager(mgr))
	if err := s.Start(); err != nil {
		t.Fatalf("Start: %v", err)
	}
	view := s.View(80)
	if !strings.Contains(view, "downloading") {
		t.Fatalf("view missing text: %q", view)
	}
	found := false
	for _, f := range spinner.Dot.Frames {
		if strings.Contains(view, f) {
			found = true
			break
		}
	}
	if !found {
		t.Fatalf("view missing a dot frame: %q", view)
	}
}

func TestSpinnerUpdate(t *testing.T) {
	mgr, _ := quietManager()
	s := NewSpinner("phase one", WithSpinnerManager(mgr))
	if err := s.Start(); err != nil {
		t.Fatalf("Start: %v", err)
	}
	s.Update("phase two")
	if s.Text() != "phase two" {
		t.Fatalf("Text = %q, want %q", s.Text(), "phase two")
	}
	if view := s.View(80); !strings.Contains(view, "phase two") {
		t.Fatalf("view not updated: %q", view)
	}
}

func TestSpinnerSuccess(t *testing.T) {
	mgr, _ := quietManager()
	s := NewSpinner("saving model", WithSpinnerManager(mgr))
	if err := s.Start(); err != nil {
		t.Fatalf("Start: %v", err)
	}
	if err := s.Success(""); err != nil {
		t.Fatalf("Success: %v", err)
	}
	if s.State() != StateCompleted {
		t.Fatalf("state = %v, want completed", s.State())
	}
	if !s.Persist() || !s.Visible() {
		t.Fatal("success line should persist")
	}
	view := s.View(80)
	if !strings.Contains(view, SymbolSuccess) || !strings.Contains(view, "saving model") {
		t.Fatalf("final view = %q", view)
	}
}

func TestSpinnerFailReplacesTextAndAborts(t *testing.T) {
	mgr, _ := quietManager()
	s := NewSpinner("uploading", WithSpinnerManager(mgr))
	if err := s.Start(); err != nil {
		t.Fatalf("Start: %v", err)
	}
	if err := s.Fail("upload failed"); err != nil {
		t.Fatalf("Fail: %v", err)
	}
	if s.State() != StateAborted {
		t.Fatalf("state = %v, want aborted", s.State())
	}
	view := s.View(80)
	if !strings.Contains(view, SymbolFail) || !strings.Contains(view, "upload failed") {
		t.Fatalf("final view = %q", view)
	}
	if err := s.Success(""); !errors.Is(err, ErrAlreadyDone) {
		t.Fatalf("Success after Fail = %v, want ErrAlreadyDone", err)
	}
}

func TestSpinnerViewStaysWithinWidth(t *testing.T) {
	mgr, _ := quietManager()
	s := NewSpinner(strings.Repeat("long text ", 12), WithSpinnerManager(mgr))
	if err := s.Start(); err != nil {
		t.Fatalf("Start: %v", err)
	}
	if view := s.View(40); lipgloss.Width(view) > 40 {
		t.Fatalf("running view is %d cells wide: %q", lipgloss.Width(view), view)
	}

	// The persisted final line is width-bound too.
	if err := s.Success(strings.Repeat("done ", 30)); err != nil {
		t.Fatalf("Success: %v", err)
	}
	view := s.View(40)
	if lipgloss.Width(view) > 40 {
		t.Fatalf("final view is %d cells wide: %q", lipgloss.Width(view), view)
	}
	if !strings.Contains(view, "…") {
		t.Fatalf("truncated view should carry an ellipsis: %q", view)
	}
}

func TestSpinnerCustomFrames(t *testing.T) {
	mgr, _ := quietManager()
	s := NewSpinner("x", WithSpinnerManager(mgr), WithSpinnerFrames(spinner.Line))
	if err := s.Start(); err != nil {
		t.Fatalf("Start: %v", err)
	}
	view := s.View(80)
	found := false
	for _, f := range spinner.Line.Frames {
		if strings.Contains(view, f) {
			found = true
			break
		}
	}
	if !found {
		t.Fatalf("view missing a line frame: %q", view)
	}
}
