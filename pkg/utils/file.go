package utils

import (
	"os"
	"path/filepath"
)

func ReadFile(path string) (string, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}
	return string(content), nil
}

func WriteFile(path, content string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}
	return os.WriteFile(path, []byte(content), 0o644)
}

func FileExists(path string) bool {
	info, err := os.Stat(path)
	if err != nil {
		return false
	}
	return !info.IsDir()
}

// EnsureStateGitignore creates <stateDir>/.gitignore to keep journals and
// snapshots out of git
func EnsureStateGitignore(stateDir string) error {
	gitignorePath := filepath.Join(stateDir, ".gitignore")

	// Skip if already exists
	if FileExists(gitignorePath) {
		return nil
	}

	if err := os.MkdirAll(stateDir, 0o755); err != nil {
		return err
	}

	// Ignore everything under the state dir
	content := "*\n"
	return os.WriteFile(gitignorePath, []byte(content), 0o644)
}
