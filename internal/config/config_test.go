package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDataDirHonorsOverride(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("PROGRICH_HOME", dir)
	got, err := DataDir()
	if err != nil {
		t.Fatalf("DataDir: %v", err)
	}
	if got != dir {
		t.Fatalf("DataDir = %q, want %q", got, dir)
	}
	dbPath, err := DBPath()
	if err != nil {
		t.Fatalf("DBPath: %v", err)
	}
	if dbPath != filepath.Join(dir, "progrich.db") {
		t.Fatalf("DBPath = %q", dbPath)
	}
}

func TestLoadDefaults(t *testing.T) {
	t.Setenv("PROGRICH_HOME", t.TempDir())
	s, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if s.FPS != 10.0 {
		t.Errorf("FPS = %v, want 10", s.FPS)
	}
	if s.Spinner != "dot" {
		t.Errorf("Spinner = %q, want dot", s.Spinner)
	}
	if s.NoColor {
		t.Error("NoColor should default to false")
	}
	if s.HistoryLimit != 20 {
		t.Errorf("HistoryLimit = %d, want 20", s.HistoryLimit)
	}
}

func TestLoadReadsConfigFile(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("PROGRICH_HOME", dir)
	cfg := "fps: 30\nspinner: line\nno_color: true\n"
	if err := os.WriteFile(filepath.Join(dir, "config.yaml"), []byte(cfg), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	s, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if s.FPS != 30 || s.Spinner != "line" || !s.NoColor {
		t.Fatalf("unexpected settings: %+v", s)
	}
}

func TestEnvOverridesConfig(t *testing.T) {
	t.Setenv("PROGRICH_HOME", t.TempDir())
	t.Setenv("PROGRICH_SPINNER", "minidot")
	s, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if s.Spinner != "minidot" {
		t.Fatalf("Spinner = %q, want minidot", s.Spinner)
	}
}
