package workflow

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"
)

// Event is one journal entry
type Event struct {
	Timestamp time.Time      `json:"timestamp"`
	Type      string         `json:"event_type"`
	Details   map[string]any `json:"details"`
}

// Journal records workflow events for metrics and post-run summaries.
// It is an observer only: journal failures never affect a run.
type Journal struct {
	mu     sync.Mutex
	events []Event
	now    func() time.Time
}

func NewJournal() *Journal {
	return &Journal{now: time.Now}
}

// Record appends an event
func (j *Journal) Record(eventType string, details map[string]any) {
	j.mu.Lock()
	defer j.mu.Unlock()
	j.events = append(j.events, Event{
		Timestamp: j.now(),
		Type:      eventType,
		Details:   details,
	})
}

// RecordReview logs a review outcome, truncating long feedback
func (j *Journal) RecordReview(source Source, decision Decision, feedback string) {
	if len(feedback) > 100 {
		feedback = feedback[:100] + "..."
	}
	j.Record("review", map[string]any{
		"source":   string(source),
		"decision": string(decision),
		"feedback": feedback,
	})
}

// RecordRevision logs an accepted revision
func (j *Journal) RecordRevision(version int, source Source) {
	j.Record("revision", map[string]any{
		"new_version":     version,
		"feedback_source": string(source),
	})
}

// Events returns a copy of the recorded events
func (j *Journal) Events() []Event {
	j.mu.Lock()
	defer j.mu.Unlock()
	out := make([]Event, len(j.events))
	copy(out, j.events)
	return out
}

// Metrics summarizes a run from its journal
type Metrics struct {
	TotalEvents      int           `json:"total_events"`
	AutomatedReviews int           `json:"automated_reviews"`
	HumanReviews     int           `json:"human_reviews"`
	Revisions        int           `json:"revisions"`
	Duration         time.Duration `json:"duration"`
}

// Metrics aggregates review and revision counts from the recorded events
func (j *Journal) Metrics() Metrics {
	j.mu.Lock()
	defer j.mu.Unlock()

	m := Metrics{TotalEvents: len(j.events)}
	if len(j.events) == 0 {
		return m
	}

	for _, e := range j.events {
		switch e.Type {
		case "review":
			if e.Details["source"] == string(SourceHuman) {
				m.HumanReviews++
			} else {
				m.AutomatedReviews++
			}
		case "revision":
			m.Revisions++
		}
	}
	m.Duration = j.events[len(j.events)-1].Timestamp.Sub(j.events[0].Timestamp)
	return m
}

type journalDocument struct {
	Session struct {
		StartTime   time.Time `json:"start_time"`
		EndTime     time.Time `json:"end_time"`
		TotalEvents int       `json:"total_events"`
	} `json:"workflow_session"`
	Events []Event `json:"events"`
}

// Save writes the journal as a JSON document
func (j *Journal) Save(path string) error {
	j.mu.Lock()
	defer j.mu.Unlock()

	var doc journalDocument
	doc.Events = j.events
	doc.Session.TotalEvents = len(j.events)
	doc.Session.EndTime = j.now()
	if len(j.events) > 0 {
		doc.Session.StartTime = j.events[0].Timestamp
	} else {
		doc.Session.StartTime = doc.Session.EndTime
	}

	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal journal: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create journal dir: %w", err)
	}
	return os.WriteFile(path, data, 0644)
}

// Snapshot is the persisted (post, state) pair. The two travel together so
// a run can be inspected or resumed as a unit.
type Snapshot struct {
	Post    *Post     `json:"post"`
	State   State     `json:"workflow_state"`
	SavedAt time.Time `json:"saved_at"`
}

// SaveSnapshot persists the current post and state
func SaveSnapshot(path string, post *Post, state State) error {
	snap := Snapshot{Post: post, State: state, SavedAt: time.Now()}
	data, err := json.MarshalIndent(snap, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal snapshot: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create snapshot dir: %w", err)
	}
	return os.WriteFile(path, data, 0644)
}

// LoadSnapshot restores a persisted post and state
func LoadSnapshot(path string) (*Post, State, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, "", fmt.Errorf("failed to read snapshot: %w", err)
	}
	var snap Snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return nil, "", fmt.Errorf("failed to parse snapshot: %w", err)
	}
	return snap.Post, snap.State, nil
}
