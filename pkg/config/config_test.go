package config

import (
	"strings"
	"testing"
)

func TestLoadDefaults(t *testing.T) {
	ResetForTest(t.TempDir())

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}

	if cfg.StorePath != "blog_posts" {
		t.Errorf("expected default store_path 'blog_posts', got %q", cfg.StorePath)
	}
	if cfg.Author != "BlogBot" {
		t.Errorf("expected default author 'BlogBot', got %q", cfg.Author)
	}
	if cfg.MaxIterations != 5 {
		t.Errorf("expected default max_iterations 5, got %d", cfg.MaxIterations)
	}
}

func TestSetAndGet(t *testing.T) {
	ResetForTest(t.TempDir())

	if err := Set("author", "Alex"); err != nil {
		t.Fatalf("Set author error: %v", err)
	}
	if err := Set("agent", "gemini-2.5-flash"); err != nil {
		t.Fatalf("Set agent error: %v", err)
	}

	author, err := Get("author")
	if err != nil {
		t.Fatalf("Get author error: %v", err)
	}
	if author != "Alex" {
		t.Errorf("expected author 'Alex', got %q", author)
	}

	agent, err := Get("agent")
	if err != nil {
		t.Fatalf("Get agent error: %v", err)
	}
	if agent != "gemini-2.5-flash" {
		t.Errorf("expected agent 'gemini-2.5-flash', got %q", agent)
	}
}

func TestSetMaxIterationsValidates(t *testing.T) {
	ResetForTest(t.TempDir())

	if err := Set("max_iterations", "3"); err != nil {
		t.Fatalf("Set max_iterations error: %v", err)
	}
	val, err := Get("max_iterations")
	if err != nil {
		t.Fatalf("Get max_iterations error: %v", err)
	}
	if val != "3" {
		t.Errorf("expected '3', got %q", val)
	}

	if err := Set("max_iterations", "not-a-number"); err == nil {
		t.Error("expected error for non-numeric max_iterations")
	}
	if err := Set("max_iterations", "-1"); err == nil {
		t.Error("expected error for negative max_iterations")
	}
}

func TestUnknownKey(t *testing.T) {
	ResetForTest(t.TempDir())

	if _, err := Get("bogus"); err == nil || !strings.Contains(err.Error(), "unknown config key") {
		t.Errorf("expected unknown key error, got %v", err)
	}
	if err := Set("bogus", "x"); err == nil {
		t.Error("expected error setting unknown key")
	}
}
