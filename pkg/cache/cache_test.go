package cache

import (
	"strings"
	"testing"
)

func TestKeyDeterministic(t *testing.T) {
	url := "https://example.com/changelog"
	if Key(url) != Key(url) {
		t.Error("same URL should produce the same key")
	}
	if Key(url) == Key("https://example.com/other") {
		t.Error("different URLs should produce different keys")
	}
	if len(Key(url)) != 64 {
		t.Errorf("key length = %d, want 64 hex chars", len(Key(url)))
	}
}

func TestPathUsesKey(t *testing.T) {
	key := Key("https://example.com")
	path := Path(key)
	if !strings.Contains(path, key) {
		t.Errorf("path %q should contain key", path)
	}
	if !strings.HasSuffix(path, ".md") {
		t.Errorf("path %q should be a markdown file", path)
	}
}

func TestReadWriteRoundTrip(t *testing.T) {
	t.Setenv("XDG_CACHE_HOME", t.TempDir())

	key := Key("https://example.com/post")
	if Exists(key) {
		t.Fatal("key should not exist in a fresh cache dir")
	}
	if _, err := Read(key); err == nil {
		t.Fatal("expected cache miss error")
	}

	if err := Write(key, "cleaned article text"); err != nil {
		t.Fatalf("Write error: %v", err)
	}
	if !Exists(key) {
		t.Error("key should exist after write")
	}

	got, err := Read(key)
	if err != nil {
		t.Fatalf("Read error: %v", err)
	}
	if got != "cleaned article text" {
		t.Errorf("brief = %q", got)
	}
}
