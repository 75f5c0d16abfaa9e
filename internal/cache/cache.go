// Package cache provides JSON-based memoization of query results.
//
// The cache package persists computed results as JSON files under a local
// data directory, keyed by a digest of the call signature. Repeated calls
// with identical arguments read the persisted value back instead of
// re-fetching, until the entry's TTL elapses. The default location is
// ~/.local/share/bref-batting/.
package cache

import (
	"crypto/sha1"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// DefaultTTL is how long a cached result stays fresh. Published batting
// tables change rarely outside an active season.
const DefaultTTL = 24 * time.Hour

// Store manages cached results under a data directory.
type Store struct {
	dataDir string
	ttl     time.Duration
}

// New creates a Store rooted at dataDir, creating the directory if
// needed. A ttl <= 0 falls back to DefaultTTL.
func New(dataDir string, ttl time.Duration) (*Store, error) {
	// Expand ~ to home directory
	if strings.HasPrefix(dataDir, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("getting home directory: %w", err)
		}
		dataDir = filepath.Join(home, dataDir[2:])
	}

	if err := os.MkdirAll(dataDir, 0755); err != nil {
		return nil, fmt.Errorf("creating cache directory: %w", err)
	}

	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &Store{dataDir: dataDir, ttl: ttl}, nil
}

// Key builds a deterministic cache key from the call name and its
// arguments.
func Key(parts ...string) string {
	h := sha1.New()
	h.Write([]byte(strings.Join(parts, "|")))
	return fmt.Sprintf("%x", h.Sum(nil))
}

// envelope wraps a cached value with its write time so expiry survives
// process restarts.
type envelope struct {
	CachedAt time.Time       `json:"cached_at"`
	Value    json.RawMessage `json:"value"`
}

func (s *Store) path(key string) string {
	return filepath.Join(s.dataDir, key+".json")
}

// Get loads the cached value for key into out. Returns false when the key
// is absent, expired, or unreadable; expired and corrupt entries are
// removed.
func (s *Store) Get(key string, out any) (bool, error) {
	path := s.path(key)

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return false, nil
		}
		return false, fmt.Errorf("reading cache entry: %w", err)
	}

	var env envelope
	if err := json.Unmarshal(data, &env); err != nil {
		os.Remove(path)
		return false, nil
	}
	if time.Since(env.CachedAt) > s.ttl {
		os.Remove(path)
		return false, nil
	}
	if err := json.Unmarshal(env.Value, out); err != nil {
		os.Remove(path)
		return false, nil
	}
	return true, nil
}

// Put persists a value under key.
func (s *Store) Put(key string, value any) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("encoding cache value: %w", err)
	}
	env := envelope{
		CachedAt: time.Now().UTC(),
		Value:    raw,
	}
	data, err := json.MarshalIndent(env, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding cache entry: %w", err)
	}
	if err := os.WriteFile(s.path(key), data, 0644); err != nil {
		return fmt.Errorf("writing cache entry: %w", err)
	}
	return nil
}

// Clear removes every cached entry.
func (s *Store) Clear() (int, error) {
	entries, err := os.ReadDir(s.dataDir)
	if err != nil {
		return 0, fmt.Errorf("reading cache directory: %w", err)
	}
	removed := 0
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), ".json") {
			continue
		}
		if err := os.Remove(filepath.Join(s.dataDir, e.Name())); err != nil {
			return removed, fmt.Errorf("removing cache entry: %w", err)
		}
		removed++
	}
	return removed, nil
}
