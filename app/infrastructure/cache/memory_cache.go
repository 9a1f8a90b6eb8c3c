package cache

import (
	"encoding/json"
	"fmt"
	"regexp"
	"strings"
	"sync"
	"time"
)

// DefaultMaxAge is the expiry horizon used when a read does not supply
// its own, and the horizon Stats and CleanupExpired are judged against.
const DefaultMaxAge = 5 * time.Minute

// Sentinels used in composite keys when a dimension is absent.
const (
	ScopeAll   = "all"
	DateNone   = "nodate"
	keySep     = "_"
	keyPairSep = ":"
)

// KV is one extra key/value dimension appended to a composite cache key.
type KV struct {
	Key   string
	Value string
}

// GenerateKey builds the composite key for a cached result set:
// kind, scope id (or "all"), date (or "nodate"), then any extra pairs
// as k:v joined with underscores, in argument order. Equal logical
// inputs always produce the same string.
func GenerateKey(kind, scopeID, date string, extra ...KV) string {
	if scopeID == "" {
		scopeID = ScopeAll
	}
	if date == "" {
		date = DateNone
	}
	var b strings.Builder
	b.WriteString(kind)
	b.WriteString(keySep)
	b.WriteString(scopeID)
	b.WriteString(keySep)
	b.WriteString(date)
	for _, kv := range extra {
		b.WriteString(keySep)
		b.WriteString(kv.Key)
		b.WriteString(keyPairSep)
		b.WriteString(kv.Value)
	}
	return b.String()
}

type memoryEntry[T any] struct {
	data      T
	timestamp time.Time
}

// CacheStats is a diagnostic snapshot. Expired is judged against the
// cache's default max age, not any per-read override, so treat it as
// an estimate. TotalMemory is a best-effort serialized-size estimate.
type CacheStats struct {
	Total       int   `json:"total"`
	Active      int   `json:"active"`
	Expired     int   `json:"expired"`
	TotalMemory int64 `json:"total_memory"`
}

// MemoryCache is an in-process cache with per-entry timestamps and
// lazy, read-time expiry. Entries are never returned once older than
// the lookup's max age; expired entries found on read are deleted.
// Unlike its single-threaded ancestor this cache is shared between the
// request goroutines of a server, so a mutex guards the map.
type MemoryCache[T any] struct {
	mu            sync.Mutex
	entries       map[string]memoryEntry[T]
	defaultMaxAge time.Duration
	now           func() time.Time
}

// NewMemoryCache builds an empty cache. A non-positive defaultMaxAge
// falls back to DefaultMaxAge.
func NewMemoryCache[T any](defaultMaxAge time.Duration) *MemoryCache[T] {
	if defaultMaxAge <= 0 {
		defaultMaxAge = DefaultMaxAge
	}
	return &MemoryCache[T]{
		entries:       make(map[string]memoryEntry[T]),
		defaultMaxAge: defaultMaxAge,
		now:           time.Now,
	}
}

// Get returns the entry for key if it exists and is younger than
// maxAge (the cache default when omitted). A found-but-expired entry
// is deleted and reported as a miss.
func (c *MemoryCache[T]) Get(key string, maxAge ...time.Duration) (T, bool) {
	age := c.defaultMaxAge
	if len(maxAge) > 0 && maxAge[0] > 0 {
		age = maxAge[0]
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	entry, ok := c.entries[key]
	if !ok {
		var zero T
		return zero, false
	}
	if c.now().Sub(entry.timestamp) > age {
		delete(c.entries, key)
		var zero T
		return zero, false
	}
	return entry.data, true
}

// Set stores data under key, stamping the current time. Last write wins.
func (c *MemoryCache[T]) Set(key string, data T) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[key] = memoryEntry[T]{data: data, timestamp: c.now()}
}

// Invalidate removes the exact key. No-op when absent.
func (c *MemoryCache[T]) Invalidate(key string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.entries, key)
}

// InvalidatePattern removes every entry whose key matches the regular
// expression and returns how many were removed.
func (c *MemoryCache[T]) InvalidatePattern(pattern string) (int, error) {
	re, err := regexp.Compile(pattern)
	if err != nil {
		return 0, fmt.Errorf("invalid invalidation pattern %q: %w", pattern, err)
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	deleted := 0
	for key := range c.entries {
		if re.MatchString(key) {
			delete(c.entries, key)
			deleted++
		}
	}
	return deleted, nil
}

// Clear drops all entries and returns how many were dropped.
func (c *MemoryCache[T]) Clear() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	n := len(c.entries)
	c.entries = make(map[string]memoryEntry[T])
	return n
}

// Stats snapshots entry counts and an estimated payload size.
func (c *MemoryCache[T]) Stats() CacheStats {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := c.now()
	stats := CacheStats{Total: len(c.entries)}
	for _, entry := range c.entries {
		if now.Sub(entry.timestamp) > c.defaultMaxAge {
			stats.Expired++
		}
		if raw, err := json.Marshal(entry.data); err == nil {
			stats.TotalMemory += int64(len(raw))
		}
	}
	stats.Active = stats.Total - stats.Expired
	return stats
}

// CleanupExpired eagerly removes every entry older than the default
// max age and returns the count removed. The cache never schedules
// this itself; a cron job drives it.
func (c *MemoryCache[T]) CleanupExpired() int {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := c.now()
	cleaned := 0
	for key, entry := range c.entries {
		if now.Sub(entry.timestamp) > c.defaultMaxAge {
			delete(c.entries, key)
			cleaned++
		}
	}
	return cleaned
}
