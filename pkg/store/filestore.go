package store

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"
)

// idFormat is the creation timestamp used as the post identifier
const idFormat = "20060102_150405"

// FileStore keeps each post as a markdown document plus a pipe-delimited
// metadata record (<id>.md and <id>_meta.txt) under a single directory.
type FileStore struct {
	dir string
	now func() time.Time
}

// NewFileStore creates a store rooted at dir. The directory is created
// on first write.
func NewFileStore(dir string) *FileStore {
	return &FileStore{dir: dir, now: time.Now}
}

func (s *FileStore) postPath(id string) string {
	return filepath.Join(s.dir, id+".md")
}

func (s *FileStore) metaPath(id string) string {
	return filepath.Join(s.dir, id+"_meta.txt")
}

func (s *FileStore) Create(ctx context.Context, title, body, author string, tags []string) (string, error) {
	if err := os.MkdirAll(s.dir, 0755); err != nil {
		return "", fmt.Errorf("failed to create store directory: %w", err)
	}

	now := s.now()
	id := now.Format(idFormat)
	// Bump into the next second on collision so concurrent runs never
	// share an identifier
	for i := 1; fileExists(s.metaPath(id)); i++ {
		id = now.Add(time.Duration(i) * time.Second).Format(idFormat)
	}

	meta := Meta{ID: id, Title: title, Author: author, Date: now, Tags: tags}
	if err := s.write(meta, body); err != nil {
		return "", err
	}
	return id, nil
}

func (s *FileStore) Get(ctx context.Context, id string) (*Post, error) {
	meta, err := s.readMeta(id)
	if err != nil {
		return nil, err
	}

	content, err := os.ReadFile(s.postPath(id))
	if err != nil {
		return nil, fmt.Errorf("post %s has no content file: %w", id, err)
	}

	return &Post{Meta: *meta, Body: extractBody(string(content))}, nil
}

func (s *FileStore) Update(ctx context.Context, id, title, body string) error {
	meta, err := s.readMeta(id)
	if err != nil {
		return err
	}

	meta.Title = title
	// The creation date never changes on update
	return s.write(*meta, body)
}

func (s *FileStore) List(ctx context.Context) ([]Meta, error) {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to read store directory: %w", err)
	}

	var metas []Meta
	for _, entry := range entries {
		name := entry.Name()
		if !strings.HasSuffix(name, "_meta.txt") {
			continue
		}
		id := strings.TrimSuffix(name, "_meta.txt")
		meta, err := s.readMeta(id)
		if err != nil {
			continue // skip corrupt records
		}
		metas = append(metas, *meta)
	}

	sort.Slice(metas, func(i, j int) bool {
		return metas[i].ID > metas[j].ID
	})
	return metas, nil
}

func (s *FileStore) Search(ctx context.Context, query string) ([]Meta, error) {
	metas, err := s.List(ctx)
	if err != nil {
		return nil, err
	}

	query = strings.ToLower(query)
	var matches []Meta
	for _, meta := range metas {
		if matchesMeta(meta, query) {
			matches = append(matches, meta)
			continue
		}
		content, err := os.ReadFile(s.postPath(meta.ID))
		if err != nil {
			continue
		}
		if strings.Contains(strings.ToLower(extractBody(string(content))), query) {
			matches = append(matches, meta)
		}
	}
	return matches, nil
}

func matchesMeta(meta Meta, query string) bool {
	if strings.Contains(strings.ToLower(meta.Title), query) {
		return true
	}
	for _, tag := range meta.Tags {
		if strings.Contains(strings.ToLower(tag), query) {
			return true
		}
	}
	return false
}

func (s *FileStore) Delete(ctx context.Context, id string) error {
	if _, err := s.readMeta(id); err != nil {
		return err
	}
	if err := os.Remove(s.postPath(id)); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to remove post: %w", err)
	}
	if err := os.Remove(s.metaPath(id)); err != nil {
		return fmt.Errorf("failed to remove metadata: %w", err)
	}
	return nil
}

// write persists the markdown document and the metadata record together
func (s *FileStore) write(meta Meta, body string) error {
	doc := fmt.Sprintf("# %s\n\n**Author:** %s  \n**Date:** %s  \n**Tags:** %s\n\n%s\n",
		meta.Title,
		meta.Author,
		meta.Date.Format(time.RFC3339),
		strings.Join(meta.Tags, ", "),
		body,
	)
	if err := os.WriteFile(s.postPath(meta.ID), []byte(doc), 0644); err != nil {
		return fmt.Errorf("failed to write post: %w", err)
	}

	record := strings.Join([]string{
		meta.ID,
		meta.Title,
		meta.Author,
		meta.Date.Format(time.RFC3339),
		strings.Join(meta.Tags, ","),
	}, "|")
	if err := os.WriteFile(s.metaPath(meta.ID), []byte(record), 0644); err != nil {
		return fmt.Errorf("failed to write metadata: %w", err)
	}
	return nil
}

func (s *FileStore) readMeta(id string) (*Meta, error) {
	data, err := os.ReadFile(s.metaPath(id))
	if err != nil {
		return nil, fmt.Errorf("post %s not found: %w", id, err)
	}

	parts := strings.Split(strings.TrimSpace(string(data)), "|")
	if len(parts) < 5 {
		return nil, fmt.Errorf("post %s has a malformed metadata record", id)
	}

	date, err := time.Parse(time.RFC3339, parts[3])
	if err != nil {
		return nil, fmt.Errorf("post %s has an invalid date: %w", id, err)
	}

	var tags []string
	if parts[4] != "" {
		tags = strings.Split(parts[4], ",")
	}

	return &Meta{
		ID:     parts[0],
		Title:  parts[1],
		Author: parts[2],
		Date:   date,
		Tags:   tags,
	}, nil
}

// extractBody strips the title/author/date/tags header from a stored
// markdown document
func extractBody(doc string) string {
	lines := strings.Split(doc, "\n")
	for i, line := range lines {
		if strings.HasPrefix(line, "**Tags:**") {
			return strings.TrimSpace(strings.Join(lines[i+1:], "\n"))
		}
	}
	return strings.TrimSpace(doc)
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
