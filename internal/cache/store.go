package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"
)

const fileExtension = ".json"

// DefaultTTL is used when a store is created with a non-positive TTL.
const DefaultTTL = 24 * time.Hour

// Cache errors.
var (
	ErrNotFound   = errors.New("cache entry not found")
	ErrExpired    = errors.New("cache entry expired")
	ErrInvalidKey = errors.New("cache key cannot be empty")
	ErrDisabled   = errors.New("cache is disabled")
)

// Store is a file-backed TTL cache. Safe for concurrent use.
type Store struct {
	dir     string
	ttl     time.Duration
	enabled bool
	now     func() time.Time

	mu sync.RWMutex
}

// Option customizes a Store.
type Option func(*Store)

// WithClock overrides the time source.
func WithClock(now func() time.Time) Option {
	return func(s *Store) { s.now = now }
}

// NewStore creates a store rooted at dir, creating the directory if needed.
// A disabled store returns ErrDisabled from every operation.
func NewStore(dir string, enabled bool, ttl time.Duration, opts ...Option) (*Store, error) {
	s := &Store{dir: dir, ttl: ttl, enabled: enabled, now: time.Now}
	for _, opt := range opts {
		opt(s)
	}
	if !enabled {
		return s, nil
	}
	if dir == "" {
		return nil, errors.New("cache directory cannot be empty")
	}
	if s.ttl <= 0 {
		s.ttl = DefaultTTL
	}
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return nil, fmt.Errorf("failed to create cache directory: %w", err)
	}
	return s, nil
}

// Enabled reports whether the store is active.
func (s *Store) Enabled() bool {
	return s != nil && s.enabled
}

// Get returns the payload stored under key.
func (s *Store) Get(key string) (json.RawMessage, error) {
	if !s.Enabled() {
		return nil, ErrDisabled
	}
	if strings.TrimSpace(key) == "" {
		return nil, ErrInvalidKey
	}

	path := s.path(key)

	s.mu.RLock()
	data, err := os.ReadFile(path)
	s.mu.RUnlock()
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to read cache file: %w", err)
	}

	var entry Entry
	if err = json.Unmarshal(data, &entry); err != nil {
		return nil, fmt.Errorf("failed to unmarshal cache entry: %w", err)
	}

	if entry.ExpiredAt(s.now()) {
		s.mu.Lock()
		_ = os.Remove(path)
		s.mu.Unlock()
		return nil, ErrExpired
	}

	return entry.Data, nil
}

// Set stores data under key, replacing any existing entry.
func (s *Store) Set(key string, data json.RawMessage) error {
	if !s.Enabled() {
		return ErrDisabled
	}
	if strings.TrimSpace(key) == "" {
		return ErrInvalidKey
	}

	encoded, err := json.Marshal(newEntry(normalize(key), data, s.now(), s.ttl))
	if err != nil {
		return fmt.Errorf("failed to marshal cache entry: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	path := s.path(key)
	tmp := path + ".tmp"
	if err = os.WriteFile(tmp, encoded, 0o600); err != nil {
		return fmt.Errorf("failed to write cache file: %w", err)
	}
	if err = os.Rename(tmp, path); err != nil {
		_ = os.Remove(tmp)
		return fmt.Errorf("failed to rename cache file: %w", err)
	}
	return nil
}

// Clear removes every entry in the store.
func (s *Store) Clear() error {
	if !s.Enabled() {
		return ErrDisabled
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	entries, err := os.ReadDir(s.dir)
	if err != nil {
		return fmt.Errorf("failed to read cache directory: %w", err)
	}
	for _, e := range entries {
		if e.IsDir() || filepath.Ext(e.Name()) != fileExtension {
			continue
		}
		if err = os.Remove(filepath.Join(s.dir, e.Name())); err != nil {
			return fmt.Errorf("failed to remove cache file %s: %w", e.Name(), err)
		}
	}
	return nil
}

// path maps a key to its file. Keys differing only in case or surrounding
// whitespace share an entry.
func (s *Store) path(key string) string {
	sum := sha256.Sum256([]byte(normalize(key)))
	return filepath.Join(s.dir, hex.EncodeToString(sum[:])+fileExtension)
}

func normalize(key string) string {
	return strings.ToLower(strings.TrimSpace(key))
}
