package cache

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateKey(t *testing.T) {
	key := GenerateKey("student_attendance", "class-5a", "2025-03-01",
		KV{Key: "tenant", Value: "t1"})
	assert.Equal(t, "student_attendance_class-5a_2025-03-01_tenant:t1", key)

	// Equal logical inputs always produce the same string.
	again := GenerateKey("student_attendance", "class-5a", "2025-03-01",
		KV{Key: "tenant", Value: "t1"})
	assert.Equal(t, key, again)
}

func TestGenerateKeySentinels(t *testing.T) {
	assert.Equal(t, "teacher_attendance_all_2025-03-01", GenerateKey("teacher_attendance", "", "2025-03-01"))
	assert.Equal(t, "students_by_class_class-5a_nodate", GenerateKey("students_by_class", "class-5a", ""))
	assert.Equal(t, "k_all_nodate", GenerateKey("k", "", ""))
}

func TestMemoryCacheRoundTrip(t *testing.T) {
	c := NewMemoryCache[[]string](time.Minute)
	c.Set("a", []string{"x", "y"})

	got, ok := c.Get("a")
	require.True(t, ok)
	assert.Equal(t, []string{"x", "y"}, got)

	_, ok = c.Get("missing")
	assert.False(t, ok)
}

func TestMemoryCacheLastWriteWins(t *testing.T) {
	c := NewMemoryCache[int](time.Minute)
	c.Set("a", 1)
	c.Set("a", 2)

	got, ok := c.Get("a")
	require.True(t, ok)
	assert.Equal(t, 2, got)
}

func TestMemoryCacheExpiry(t *testing.T) {
	base := time.Date(2025, 3, 1, 8, 0, 0, 0, time.UTC)
	c := NewMemoryCache[string](time.Minute)
	c.now = func() time.Time { return base }
	c.Set("a", "fresh")

	// Inside the window the entry is served.
	c.now = func() time.Time { return base.Add(59 * time.Second) }
	got, ok := c.Get("a")
	require.True(t, ok)
	assert.Equal(t, "fresh", got)

	// Past the window the entry is a miss and is deleted.
	c.now = func() time.Time { return base.Add(2 * time.Minute) }
	_, ok = c.Get("a")
	assert.False(t, ok)

	// Even when read again inside a generous per-read max age: the
	// expired read already removed it.
	_, ok = c.Get("a", time.Hour)
	assert.False(t, ok)
}

func TestMemoryCachePerReadMaxAge(t *testing.T) {
	base := time.Date(2025, 3, 1, 8, 0, 0, 0, time.UTC)
	c := NewMemoryCache[string](time.Minute)
	c.now = func() time.Time { return base }
	c.Set("a", "v")

	c.now = func() time.Time { return base.Add(30 * time.Second) }
	_, ok := c.Get("a", 10*time.Second)
	assert.False(t, ok, "a stricter per-read max age expires the entry")
}

func TestMemoryCacheInvalidate(t *testing.T) {
	c := NewMemoryCache[int](time.Minute)
	c.Set("a", 1)
	c.Invalidate("a")
	_, ok := c.Get("a")
	assert.False(t, ok)

	// Absent key is a no-op.
	c.Invalidate("missing")
}

func TestMemoryCacheInvalidatePattern(t *testing.T) {
	c := NewMemoryCache[int](time.Minute)
	c.Set("a_1", 1)
	c.Set("a_2", 2)
	c.Set("ab_1", 3)
	c.Set("b_1", 4)

	deleted, err := c.InvalidatePattern("^a_")
	require.NoError(t, err)
	assert.Equal(t, 2, deleted)

	// The anchored prefix must not take "ab_1" with it.
	_, ok := c.Get("ab_1")
	assert.True(t, ok)
	_, ok = c.Get("b_1")
	assert.True(t, ok)
	_, ok = c.Get("a_1")
	assert.False(t, ok)
}

func TestMemoryCacheInvalidatePatternRejectsBadRegexp(t *testing.T) {
	c := NewMemoryCache[int](time.Minute)
	c.Set("a", 1)

	deleted, err := c.InvalidatePattern("([")
	assert.Error(t, err)
	assert.Zero(t, deleted)

	_, ok := c.Get("a")
	assert.True(t, ok, "a bad pattern must not remove anything")
}

func TestMemoryCacheClear(t *testing.T) {
	c := NewMemoryCache[int](time.Minute)
	c.Set("a", 1)
	c.Set("b", 2)

	assert.Equal(t, 2, c.Clear())
	assert.Equal(t, 0, c.Clear())
	_, ok := c.Get("a")
	assert.False(t, ok)
}

func TestMemoryCacheStats(t *testing.T) {
	base := time.Date(2025, 3, 1, 8, 0, 0, 0, time.UTC)
	c := NewMemoryCache[string](time.Minute)
	c.now = func() time.Time { return base }
	c.Set("old", "x")

	c.now = func() time.Time { return base.Add(2 * time.Minute) }
	c.Set("young", "yy")

	stats := c.Stats()
	assert.Equal(t, 2, stats.Total)
	assert.Equal(t, 1, stats.Active)
	assert.Equal(t, 1, stats.Expired)
	// Both values serialize as quoted JSON strings.
	assert.Equal(t, int64(len(`"x"`)+len(`"yy"`)), stats.TotalMemory)

	// Stats must not evict anything, even expired entries.
	assert.Equal(t, 2, c.Clear())
}

func TestMemoryCacheCleanupExpired(t *testing.T) {
	base := time.Date(2025, 3, 1, 8, 0, 0, 0, time.UTC)
	c := NewMemoryCache[int](time.Minute)
	c.now = func() time.Time { return base }
	c.Set("old1", 1)
	c.Set("old2", 2)

	c.now = func() time.Time { return base.Add(2 * time.Minute) }
	c.Set("young", 3)

	assert.Equal(t, 2, c.CleanupExpired())
	assert.Equal(t, 0, c.CleanupExpired())

	_, ok := c.Get("young")
	assert.True(t, ok)
}

func TestMemoryCacheDefaultMaxAgeFallback(t *testing.T) {
	c := NewMemoryCache[int](0)
	assert.Equal(t, DefaultMaxAge, c.defaultMaxAge)
}
