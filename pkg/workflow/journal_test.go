package workflow

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestJournalMetrics(t *testing.T) {
	j := NewJournal()
	base := time.Date(2025, 7, 8, 12, 0, 0, 0, time.UTC)
	tick := 0
	j.now = func() time.Time {
		tick++
		return base.Add(time.Duration(tick) * time.Second)
	}

	j.Record("workflow_start", map[string]any{"topic": "X"})
	j.RecordReview(SourceAutomated, DecisionReject, "fix the intro")
	j.RecordRevision(2, SourceAutomated)
	j.RecordReview(SourceAutomated, DecisionApprove, "")
	j.RecordReview(SourceHuman, DecisionApprove, "")
	j.Record("workflow_complete", nil)

	m := j.Metrics()
	if m.TotalEvents != 6 {
		t.Errorf("total events = %d, want 6", m.TotalEvents)
	}
	if m.AutomatedReviews != 2 {
		t.Errorf("automated reviews = %d, want 2", m.AutomatedReviews)
	}
	if m.HumanReviews != 1 {
		t.Errorf("human reviews = %d, want 1", m.HumanReviews)
	}
	if m.Revisions != 1 {
		t.Errorf("revisions = %d, want 1", m.Revisions)
	}
	if m.Duration != 5*time.Second {
		t.Errorf("duration = %v, want 5s", m.Duration)
	}
}

func TestJournalMetricsEmpty(t *testing.T) {
	m := NewJournal().Metrics()
	if m.TotalEvents != 0 || m.Duration != 0 {
		t.Errorf("empty journal metrics = %+v", m)
	}
}

func TestJournalTruncatesLongFeedback(t *testing.T) {
	j := NewJournal()
	j.RecordReview(SourceAutomated, DecisionReject, strings.Repeat("x", 150))

	events := j.Events()
	fb := events[0].Details["feedback"].(string)
	if len(fb) != 103 || !strings.HasSuffix(fb, "...") {
		t.Errorf("feedback = %q (len %d), want 100 chars plus ellipsis", fb, len(fb))
	}
}

func TestJournalSave(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "journal.json")
	j := NewJournal()
	j.Record("workflow_start", map[string]any{"topic": "X"})
	j.RecordReview(SourceHuman, DecisionApprove, "ship it")

	if err := j.Save(path); err != nil {
		t.Fatalf("Save error: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read journal: %v", err)
	}
	var doc struct {
		Session struct {
			TotalEvents int `json:"total_events"`
		} `json:"workflow_session"`
		Events []Event `json:"events"`
	}
	if err := json.Unmarshal(data, &doc); err != nil {
		t.Fatalf("unmarshal journal: %v", err)
	}
	if doc.Session.TotalEvents != 2 || len(doc.Events) != 2 {
		t.Errorf("saved %d/%d events, want 2", doc.Session.TotalEvents, len(doc.Events))
	}
	if doc.Events[0].Type != "workflow_start" {
		t.Errorf("first event type = %q", doc.Events[0].Type)
	}
}

func TestSnapshotRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "state.json")
	post := &Post{
		ID:      "20250708_120000",
		Title:   "Hello",
		Body:    "World",
		Version: 3,
		FeedbackHistory: []FeedbackEntry{
			{Source: SourceAutomated, Text: "longer"},
			{Source: SourceHuman, Text: "tone"},
		},
	}

	if err := SaveSnapshot(path, post, StateHumanReview); err != nil {
		t.Fatalf("SaveSnapshot error: %v", err)
	}

	got, state, err := LoadSnapshot(path)
	if err != nil {
		t.Fatalf("LoadSnapshot error: %v", err)
	}
	if state != StateHumanReview {
		t.Errorf("state = %q, want HUMAN_REVIEW", state)
	}
	if got.ID != post.ID || got.Title != post.Title || got.Version != post.Version {
		t.Errorf("post = %+v", got)
	}
	if len(got.FeedbackHistory) != 2 || got.FeedbackHistory[1].Source != SourceHuman {
		t.Errorf("feedback history = %+v", got.FeedbackHistory)
	}
}

func TestLoadSnapshotMissingFile(t *testing.T) {
	if _, _, err := LoadSnapshot(filepath.Join(t.TempDir(), "nope.json")); err == nil {
		t.Fatal("expected error for missing snapshot")
	}
}
