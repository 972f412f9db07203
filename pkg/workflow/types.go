// Package workflow implements the draft/review/revise state machine that
// produces an approved blog post from a topic.
package workflow

import (
	"context"
	"time"
)

// State identifies where a workflow run is in its lifecycle
type State string

const (
	StateInit            State = "INIT"
	StateAutomatedReview State = "AUTOMATED_REVIEW"
	StateHumanReview     State = "HUMAN_REVIEW"
	StateCompleted       State = "COMPLETED"
)

// Decision is a review verdict
type Decision string

const (
	DecisionApprove Decision = "APPROVE"
	DecisionReject  Decision = "REJECT"
)

// Source records who issued a review decision
type Source string

const (
	SourceAutomated Source = "AUTOMATED"
	SourceHuman     Source = "HUMAN"
)

// Review is the outcome of a single evaluation call
type Review struct {
	Decision Decision
	Feedback string
	Source   Source
}

// FeedbackEntry is one rejection's feedback, kept in chronological order
type FeedbackEntry struct {
	Source Source `json:"source"`
	Text   string `json:"text"`
}

// Post is the content item a run owns. Version starts at 1 and increments
// by exactly one per accepted revision, so version == len(FeedbackHistory)+1
// at all times.
type Post struct {
	ID              string          `json:"id,omitempty"`
	Title           string          `json:"title"`
	Body            string          `json:"body"`
	Version         int             `json:"version"`
	CreatedAt       time.Time       `json:"created_at"`
	FeedbackHistory []FeedbackEntry `json:"feedback_history"`
}

// Generator produces draft text from a topic, or revised text from prior
// content plus feedback. Responses are raw text fed to ParseDraft.
type Generator interface {
	Draft(ctx context.Context, topic string) (string, error)
	Revise(ctx context.Context, title, body, feedback string) (string, error)
}

// Reviewer evaluates a draft and returns an approve/reject outcome
type Reviewer interface {
	Review(ctx context.Context, title, body string) (Review, error)
}

// Gate is the human approval step. Implementations solicit a decision
// directly rather than parsing generated text.
type Gate interface {
	Confirm(ctx context.Context, post *Post) (Review, error)
}
