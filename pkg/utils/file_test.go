package utils

import (
	"os"
	"path/filepath"
	"testing"
)

func TestFileExists(t *testing.T) {
	dir := t.TempDir()

	path := filepath.Join(dir, "post.md")
	if FileExists(path) {
		t.Error("missing file should not exist")
	}

	if err := os.WriteFile(path, []byte("x"), 0644); err != nil {
		t.Fatal(err)
	}
	if !FileExists(path) {
		t.Error("regular file should exist")
	}

	if FileExists(dir) {
		t.Error("a directory is not a file")
	}

	// Stat fails with ENOTDIR, not ENOENT; must not panic
	if FileExists(filepath.Join(path, "child")) {
		t.Error("path under a regular file should not exist")
	}
}

func TestReadWriteRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "draft.md")

	if err := WriteFile(path, "post body"); err != nil {
		t.Fatalf("WriteFile error: %v", err)
	}

	got, err := ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile error: %v", err)
	}
	if got != "post body" {
		t.Errorf("content = %q", got)
	}
}

func TestEnsureStateGitignore(t *testing.T) {
	stateDir := filepath.Join(t.TempDir(), ".bwx")

	if err := EnsureStateGitignore(stateDir); err != nil {
		t.Fatalf("EnsureStateGitignore error: %v", err)
	}

	data, err := os.ReadFile(filepath.Join(stateDir, ".gitignore"))
	if err != nil {
		t.Fatalf("read gitignore: %v", err)
	}
	if string(data) != "*\n" {
		t.Errorf("gitignore content = %q", data)
	}

	// Idempotent
	if err := EnsureStateGitignore(stateDir); err != nil {
		t.Fatalf("second call error: %v", err)
	}
}
