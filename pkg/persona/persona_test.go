package persona

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestEmbeddedDefaults(t *testing.T) {
	if !strings.Contains(DefaultWriter, "BlogBot") {
		t.Error("embedded writer persona missing expected content")
	}
	if !strings.Contains(DefaultReviewer, "APPROVE or REJECT") {
		t.Error("embedded reviewer persona missing decision instructions")
	}
}

func TestLoadExplicitPath(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "custom.md")
	if err := os.WriteFile(path, []byte("You are a pirate."), 0644); err != nil {
		t.Fatal(err)
	}

	got, err := LoadWriter(path)
	if err != nil {
		t.Fatalf("LoadWriter error: %v", err)
	}
	if got != "You are a pirate." {
		t.Errorf("expected custom persona, got %q", got)
	}
}

func TestLoadExplicitPathMissing(t *testing.T) {
	if _, err := LoadWriter(filepath.Join(t.TempDir(), "nope.md")); err == nil {
		t.Error("expected error for missing explicit persona file")
	}
}

func TestLoadFallsBackToDefault(t *testing.T) {
	// Run from a directory with no .bwx/personas/
	wd, _ := os.Getwd()
	defer func() { _ = os.Chdir(wd) }()
	if err := os.Chdir(t.TempDir()); err != nil {
		t.Fatal(err)
	}

	got, err := LoadReviewer("")
	if err != nil {
		t.Fatalf("LoadReviewer error: %v", err)
	}
	if got != DefaultReviewer {
		t.Error("expected embedded default reviewer persona")
	}
}

func TestInitCreatesFiles(t *testing.T) {
	wd, _ := os.Getwd()
	defer func() { _ = os.Chdir(wd) }()
	if err := os.Chdir(t.TempDir()); err != nil {
		t.Fatal(err)
	}

	if err := Init(); err != nil {
		t.Fatalf("Init error: %v", err)
	}

	content, err := os.ReadFile(WriterPath)
	if err != nil {
		t.Fatalf("expected writer persona file: %v", err)
	}
	if string(content) != DefaultWriter {
		t.Error("writer persona file differs from embedded default")
	}
}
