package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"os"
	"path/filepath"

	"github.com/bwx/bwx/pkg/utils"
)

// Key computes a deterministic SHA256 hash of a fetched URL
func Key(url string) string {
	h := sha256.New()
	h.Write([]byte(url))
	return hex.EncodeToString(h.Sum(nil))
}

// Path returns the cache file for a given key
func Path(key string) string {
	base, err := os.UserCacheDir()
	if err != nil {
		base = "."
	}
	return filepath.Join(base, "bwx", "briefs", key+".md")
}

// Read returns the cached brief for a key, or an error on cache miss
func Read(key string) (string, error) {
	return utils.ReadFile(Path(key))
}

// Write stores a brief under a key
func Write(key, brief string) error {
	return utils.WriteFile(Path(key), brief)
}

// Exists checks if a brief is cached for a key
func Exists(key string) bool {
	return utils.FileExists(Path(key))
}
