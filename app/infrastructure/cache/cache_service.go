package cache

import (
	"context"
	"time"

	"github.com/go-redsync/redsync/v4"
)

// CacheService defines the interface for the shared, cross-instance cache.
// Values are JSON-serialized; the in-process MemoryCache is the typed,
// per-process hot path in front of this.
type CacheService interface {
	// Set stores a value in cache with an expiration time
	Set(ctx context.Context, key string, value any, expiration time.Duration) error

	// Get retrieves a value from cache into dest
	Get(ctx context.Context, key string, dest any) error

	// GetWithFallback retrieves a value from cache, or executes fallback function if not found
	GetWithFallback(ctx context.Context, key string, dest any, fallback func() (any, error), expiration time.Duration) error

	// Delete removes a key from cache
	Delete(ctx context.Context, key string) error

	// Unlink removes a key from cache asynchronously (non-blocking)
	Unlink(ctx context.Context, key string) error

	// DeletePattern removes all keys matching a pattern
	DeletePattern(ctx context.Context, pattern string) error

	// Exists checks if a key exists in cache
	Exists(ctx context.Context, key string) (bool, error)

	// Close closes the cache connection
	Close() error

	// HealthCheck verifies cache connectivity
	HealthCheck(ctx context.Context) error

	// Redlock distributed locking functions
	NewMutex(name string, options ...redsync.Option) *redsync.Mutex
}
