package workflow

import (
	"context"
	"fmt"
	"strings"
	"time"

	clog "github.com/bwx/bwx/pkg/log"
	"github.com/bwx/bwx/pkg/store"
)

// Options controls a workflow run
type Options struct {
	// MaxAutomatedIterations caps the automated reject-revise cycles
	// before the run escalates to human review. Zero skips automated
	// review entirely.
	MaxAutomatedIterations int
	// SnapshotPath, when set, receives a (post, state) snapshot after
	// every state change and accepted revision. Best-effort.
	SnapshotPath string
}

// DefaultOptions returns the standard iteration budget
func DefaultOptions() Options {
	return Options{MaxAutomatedIterations: 5}
}

// Request describes the post a run should produce
type Request struct {
	Topic  string
	Author string
	Tags   []string
}

// Result is the outcome of a run. State is COMPLETED on success; on
// cancellation it reports where the run stopped and Post holds the last
// fully-applied content.
type Result struct {
	Post     *Post
	State    State
	Warnings []string
}

// Engine owns the workflow state machine. Collaborators are injected and
// post/state live on the run, not the engine. The journal is engine-level,
// so concurrent runs on one engine interleave their events; give each run
// its own engine when per-run metrics matter.
type Engine struct {
	gen      Generator
	reviewer Reviewer
	gate     Gate
	store    store.Store
	journal  *Journal
	opts     Options
	now      func() time.Time
}

func NewEngine(gen Generator, reviewer Reviewer, gate Gate, st store.Store, journal *Journal, opts Options) *Engine {
	if journal == nil {
		journal = NewJournal()
	}
	return &Engine{
		gen:      gen,
		reviewer: reviewer,
		gate:     gate,
		store:    st,
		journal:  journal,
		opts:     opts,
		now:      time.Now,
	}
}

// Journal returns the engine's journal
func (e *Engine) Journal() *Journal {
	return e.journal
}

// run carries the mutable state of one workflow execution
type run struct {
	*Engine
	post     *Post
	state    State
	warnings []string
}

// Run executes the workflow for a topic and returns the final post.
//
// The only fatal failures are an unusable initial draft and context
// cancellation; store and journal failures are collected as warnings and
// the run continues with its in-memory post. On cancellation the returned
// Result reports the state at that moment alongside the error.
func (e *Engine) Run(ctx context.Context, req Request) (*Result, error) {
	if strings.TrimSpace(req.Topic) == "" {
		return nil, fmt.Errorf("topic must not be empty")
	}

	r := &run{Engine: e, state: StateInit}
	e.journal.Record("workflow_start", map[string]any{
		"topic":  req.Topic,
		"author": req.Author,
		"tags":   req.Tags,
	})

	if err := r.createInitialPost(ctx, req); err != nil {
		return nil, err
	}
	r.transition(StateAutomatedReview)

	if err := r.automatedReviewLoop(ctx); err != nil {
		return r.result(), err
	}

	if err := r.humanReviewLoop(ctx); err != nil {
		return r.result(), err
	}

	e.journal.Record("workflow_complete", map[string]any{
		"final_version":   r.post.Version,
		"total_revisions": len(r.post.FeedbackHistory),
		"post_id":         r.post.ID,
	})
	return r.result(), nil
}

func (r *run) result() *Result {
	return &Result{Post: r.post, State: r.state, Warnings: r.warnings}
}

func (r *run) warn(msg string, args ...any) {
	clog.Warn(msg, args...)
	line := msg
	for i := 0; i+1 < len(args); i += 2 {
		line += fmt.Sprintf(" %v=%v", args[i], args[i+1])
	}
	r.warnings = append(r.warnings, line)
}

func (r *run) transition(next State) {
	clog.Debug("state transition", "from", r.state, "to", next)
	r.state = next
	r.snapshot()
}

func (r *run) snapshot() {
	if r.opts.SnapshotPath == "" || r.post == nil {
		return
	}
	if err := SaveSnapshot(r.opts.SnapshotPath, r.post, r.state); err != nil {
		clog.Warn("could not save snapshot", "error", err)
	}
}

// createInitialPost generates v1 and creates it in the store. A generator
// failure here is fatal: there is no prior version to fall back to.
func (r *run) createInitialPost(ctx context.Context, req Request) error {
	raw, err := r.gen.Draft(ctx, req.Topic)
	if err != nil {
		return fmt.Errorf("initial draft failed: %w", err)
	}
	if strings.TrimSpace(raw) == "" {
		return fmt.Errorf("initial draft failed: generator returned empty response")
	}

	title, body := ParseDraft(raw)
	r.post = &Post{
		Title:     title,
		Body:      body,
		Version:   1,
		CreatedAt: r.now(),
	}

	id, err := r.store.Create(ctx, title, body, req.Author, req.Tags)
	if err != nil {
		r.warn("could not create post in store", "error", err)
		r.journal.Record("store_warning", map[string]any{"op": "create", "error": err.Error()})
	} else {
		r.post.ID = id
	}

	r.journal.Record("post_created", map[string]any{
		"title":   title,
		"version": 1,
		"post_id": r.post.ID,
	})
	return nil
}

// automatedReviewLoop runs at most MaxAutomatedIterations reject-revise
// cycles. Approval or budget exhaustion both route to human review;
// exhaustion is a designed fallback, not a failure.
func (r *run) automatedReviewLoop(ctx context.Context) error {
	budget := r.opts.MaxAutomatedIterations

	for i := 0; i < budget; i++ {
		if err := ctx.Err(); err != nil {
			return err
		}
		clog.Info("automated review iteration", "iteration", i+1, "max", budget)

		review, err := r.reviewer.Review(ctx, r.post.Title, r.post.Body)
		if err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			r.warn("automated review failed", "error", err)
			continue
		}
		review.Source = SourceAutomated
		r.journal.RecordReview(SourceAutomated, review.Decision, review.Feedback)

		if review.Decision == DecisionApprove {
			clog.Info("automated reviewer approved", "version", r.post.Version)
			r.transition(StateHumanReview)
			return nil
		}

		if review.Feedback == "" {
			r.warn("review rejected without feedback", "iteration", i+1)
		}
		if err := r.revise(ctx, review.Feedback, SourceAutomated); err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			// Recoverable: the next iteration retries the same decision
			r.warn("revision failed", "error", err)
		}
	}

	clog.Info("iteration budget exhausted, escalating to human review", "budget", budget)
	r.journal.Record("budget_exhausted", map[string]any{"budget": budget})
	r.transition(StateHumanReview)
	return nil
}

// humanReviewLoop solicits human decisions until approval. There is no
// iteration cap: the human gate is trusted to terminate.
func (r *run) humanReviewLoop(ctx context.Context) error {
	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		review, err := r.gate.Confirm(ctx, r.post)
		if err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			return fmt.Errorf("human review failed: %w", err)
		}
		review.Source = SourceHuman
		r.journal.RecordReview(SourceHuman, review.Decision, review.Feedback)

		if review.Decision == DecisionApprove {
			r.transition(StateCompleted)
			r.saveToStore(ctx)
			return nil
		}

		if err := r.revise(ctx, review.Feedback, SourceHuman); err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			// Recoverable: re-solicit the human with the post unchanged
			r.warn("revision failed", "error", err)
		}
	}
}

// revise produces a new version from feedback. The post mutates only after
// a successful generation and parse, so title and body always update
// together.
func (r *run) revise(ctx context.Context, feedback string, source Source) error {
	raw, err := r.gen.Revise(ctx, r.post.Title, r.post.Body, feedback)
	if err != nil {
		return err
	}
	if strings.TrimSpace(raw) == "" {
		return fmt.Errorf("generator returned empty revision")
	}

	title, body := ParseDraft(raw)
	r.post.Title = title
	r.post.Body = body
	r.post.Version++
	r.post.FeedbackHistory = append(r.post.FeedbackHistory, FeedbackEntry{Source: source, Text: feedback})

	r.journal.RecordRevision(r.post.Version, source)
	clog.Info("post revised", "version", r.post.Version, "source", source)

	r.saveToStore(ctx)
	r.snapshot()
	return nil
}

// saveToStore pushes the current title and body to the store. Best-effort:
// on failure the in-memory post stays ahead of the store and the
// discrepancy is reported as a warning.
func (r *run) saveToStore(ctx context.Context) {
	if r.post.ID == "" {
		clog.Debug("post has no store identifier, skipping update")
		return
	}
	if err := r.store.Update(ctx, r.post.ID, r.post.Title, r.post.Body); err != nil {
		r.warn("could not update post in store", "post_id", r.post.ID, "error", err)
		r.journal.Record("store_warning", map[string]any{"op": "update", "error": err.Error()})
	}
}
