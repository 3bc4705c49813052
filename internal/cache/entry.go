package cache

import (
	"encoding/json"
	"time"
)

// Entry is a single cached payload with its expiry.
type Entry struct {
	Key       string          `json:"key"`
	Data      json.RawMessage `json:"data"`
	CreatedAt time.Time       `json:"created_at"`
	ExpiresAt time.Time       `json:"expires_at"`
}

func newEntry(key string, data json.RawMessage, now time.Time, ttl time.Duration) Entry {
	return Entry{
		Key:       key,
		Data:      data,
		CreatedAt: now,
		ExpiresAt: now.Add(ttl),
	}
}

// ExpiredAt reports whether the entry is expired at t.
func (e Entry) ExpiredAt(t time.Time) bool {
	return !t.Before(e.ExpiresAt)
}
