// Package cache stores geocoding lookups on disk with a TTL.
//
// Each entry is a JSON file named after the SHA-256 of its normalized key.
// Expired entries are reported as misses and removed lazily.
package cache
