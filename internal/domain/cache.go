package domain

import (
	"context"
	"time"
)

// CacheError is a sentinel error reported by a Cache.
type CacheError string

func (e CacheError) Error() string { return string(e) }

// ErrCacheMiss reports that a key holds no value.
const ErrCacheMiss = CacheError("cache: key not found")

// Cache is the key/value store holding the study streak hash and the feedback
// history listings.
type Cache interface {
	// Get returns ErrCacheMiss for an absent key.
	Get(ctx context.Context, key string) (string, error)
	// Set replaces the value at key. A zero expiration never expires.
	Set(ctx context.Context, key string, value string, expiration time.Duration) error
	// Delete succeeds for an absent key.
	Delete(ctx context.Context, key string) error
	Ping(ctx context.Context) error

	// HGetAll returns an empty map for an absent hash.
	HGetAll(ctx context.Context, key string) (map[string]string, error)
	HSet(ctx context.Context, key string, values map[string]string) error
}
