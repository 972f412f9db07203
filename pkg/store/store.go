// Package store persists blog posts as markdown/metadata file pairs.
package store

import (
	"context"
	"time"
)

// Meta is the metadata record kept alongside each post
type Meta struct {
	ID     string
	Title  string
	Author string
	Date   time.Time
	Tags   []string
}

// Post is a stored post with its body
type Post struct {
	Meta
	Body string
}

// Store is the content-store contract the workflow engine depends on.
// Calls are best-effort from the engine's point of view: a failure is
// reported, never assumed transactional with the engine's own state.
type Store interface {
	// Create persists a new post and returns its assigned identifier
	Create(ctx context.Context, title, body, author string, tags []string) (string, error)
	// Get returns a post by identifier
	Get(ctx context.Context, id string) (*Post, error)
	// Update replaces the title and body of an existing post
	Update(ctx context.Context, id, title, body string) error
	// List returns metadata for all posts, sorted by identifier descending
	List(ctx context.Context) ([]Meta, error)
	// Search returns metadata for posts whose title, body, or tags contain
	// the query (case-insensitive), sorted by identifier descending
	Search(ctx context.Context, query string) ([]Meta, error)
	// Delete removes a post and its metadata
	Delete(ctx context.Context, id string) error
}
