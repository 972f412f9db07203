package persona

import (
	_ "embed"
	"os"
	"path/filepath"
)

//go:embed defaults/writer.md
var DefaultWriter string

//go:embed defaults/reviewer.md
var DefaultReviewer string

const (
	WriterPath   = ".bwx/personas/writer.md"
	ReviewerPath = ".bwx/personas/reviewer.md"
)

// Init creates .bwx/personas/ with default persona files.
// Existing files are left untouched.
func Init() error {
	if err := os.MkdirAll(filepath.Dir(WriterPath), 0755); err != nil {
		return err
	}

	if _, err := os.Stat(WriterPath); os.IsNotExist(err) {
		if err := os.WriteFile(WriterPath, []byte(DefaultWriter), 0644); err != nil {
			return err
		}
	}

	if _, err := os.Stat(ReviewerPath); os.IsNotExist(err) {
		if err := os.WriteFile(ReviewerPath, []byte(DefaultReviewer), 0644); err != nil {
			return err
		}
	}

	return nil
}

// LoadWriter returns the writer persona. Resolution order: explicit path,
// .bwx/personas/writer.md, embedded default.
func LoadWriter(path string) (string, error) {
	return load(path, WriterPath, DefaultWriter)
}

// LoadReviewer returns the reviewer persona. Resolution order: explicit path,
// .bwx/personas/reviewer.md, embedded default.
func LoadReviewer(path string) (string, error) {
	return load(path, ReviewerPath, DefaultReviewer)
}

func load(path, projectPath, fallback string) (string, error) {
	if path != "" {
		content, err := os.ReadFile(path)
		if err != nil {
			return "", err
		}
		return string(content), nil
	}
	if content, err := os.ReadFile(projectPath); err == nil {
		return string(content), nil
	}
	return fallback, nil
}

// Reset overwrites persona files with the embedded defaults
func Reset() error {
	if err := os.MkdirAll(filepath.Dir(WriterPath), 0755); err != nil {
		return err
	}
	if err := os.WriteFile(WriterPath, []byte(DefaultWriter), 0644); err != nil {
		return err
	}
	return os.WriteFile(ReviewerPath, []byte(DefaultReviewer), 0644)
}
