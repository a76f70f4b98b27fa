package cache

import (
	"context"
	"errors"
	"time"
)

// ErrKeyNotFound is returned by Get when the key does not exist or has expired.
var ErrKeyNotFound = errors.New("key not found")

// Cache defines the caching operations interface following hexagonal architecture.
// This is a port that can be implemented by different cache providers (Redis, Memcached, etc.).
type Cache interface {
	// Get retrieves a value from the cache by key.
	// Returns ErrKeyNotFound (wrapped) when the key is absent.
	Get(ctx context.Context, key string) ([]byte, error)

	// Set stores a value in the cache with the specified key and TTL.
	// TTL of 0 means no expiration.
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error

	// SetNX stores the value only if the key does not exist yet.
	// It reports whether the value was stored, which makes it usable as a lock.
	SetNX(ctx context.Context, key string, value []byte, ttl time.Duration) (bool, error)

	// Delete removes a value from the cache by key.
	Delete(ctx context.Context, key string) error

	// CompareAndDelete removes the key only while it still holds value.
	// It reports whether the key was removed, so a lock owner never frees a lock taken over by someone else.
	CompareAndDelete(ctx context.Context, key string, value []byte) (bool, error)

	// Ping checks if the cache service is reachable.
	Ping(ctx context.Context) error

	// Close closes the cache connection.
	Close() error
}
