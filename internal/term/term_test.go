package term

import (
	"bytes"
	"testing"
)

func TestIsTerminalFalseForBuffer(t *testing.T) {
	if IsTerminal(&bytes.Buffer{}) {
		t.Fatal("a bytes.Buffer is not a terminal")
	}
}

func TestWidthFallsBackToColumns(t *testing.T) {
	t.Setenv("COLUMNS", "123")
	if got := Width(&bytes.Buffer{}); got != 123 {
		t.Fatalf("Width = %d, want 123", got)
	}
}

func TestWidthDefault(t *testing.T) {
	t.Setenv("COLUMNS", "")
	if got := Width(&bytes.Buffer{}); got != DefaultWidth {
		t.Fatalf("Width = %d, want %d", got, DefaultWidth)
	}
}

func TestWidthIgnoresGarbageColumns(t *testing.T) {
	t.Setenv("COLUMNS", "not-a-number")
	if got := Width(&bytes.Buffer{}); got != DefaultWidth {
		t.Fatalf("Width = %d, want %d", got, DefaultWidth)
	}
}
