package debounce

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// recorder collects invocations across goroutines.
type recorder struct {
	mu     sync.Mutex
	values []int
}

func (r *recorder) record(v int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.values = append(r.values, v)
}

func (r *recorder) snapshot() []int {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]int, len(r.values))
	copy(out, r.values)
	return out
}

func TestDebouncerCoalescesBurst(t *testing.T) {
	rec := &recorder{}
	d := New(rec.record, 20*time.Millisecond)

	for i := 1; i <= 10; i++ {
		d.Call(i)
	}

	require.Eventually(t, func() bool {
		return len(rec.snapshot()) == 1
	}, time.Second, 5*time.Millisecond)

	// Trailing edge only, with the most recent value.
	assert.Equal(t, []int{10}, rec.snapshot())

	// Nothing else fires once the burst is flushed.
	time.Sleep(60 * time.Millisecond)
	assert.Equal(t, []int{10}, rec.snapshot())
}

func TestDebouncerNoLeadingEdge(t *testing.T) {
	rec := &recorder{}
	d := New(rec.record, 50*time.Millisecond)

	d.Call(1)
	assert.Empty(t, rec.snapshot(), "nothing may fire before the quiet period")
}

func TestDebouncerMaxWaitBound(t *testing.T) {
	rec := &recorder{}
	delay := 20 * time.Millisecond
	d := New(rec.record, delay)

	// Keep calling faster than the delay so the trailing timer alone
	// would never fire. The maxWait bound must force an invocation.
	done := make(chan struct{})
	go func() {
		defer close(done)
		deadline := time.Now().Add(time.Duration(MaxWaitFactor+3) * delay)
		i := 0
		for time.Now().Before(deadline) {
			i++
			d.Call(i)
			time.Sleep(delay / 4)
		}
	}()

	require.Eventually(t, func() bool {
		return len(rec.snapshot()) >= 1
	}, time.Duration(MaxWaitFactor+2)*delay, time.Millisecond)

	<-done
	d.Cancel()
}

func TestDebouncerCancel(t *testing.T) {
	rec := &recorder{}
	d := New(rec.record, 20*time.Millisecond)

	d.Call(1)
	d.Cancel()

	time.Sleep(60 * time.Millisecond)
	assert.Empty(t, rec.snapshot())
}

func TestDebouncerFlush(t *testing.T) {
	rec := &recorder{}
	d := New(rec.record, time.Hour)

	d.Call(7)
	d.Flush()
	assert.Equal(t, []int{7}, rec.snapshot())

	// Flush with nothing pending is a no-op.
	d.Flush()
	assert.Equal(t, []int{7}, rec.snapshot())
}

func TestDebouncerReusableAfterFire(t *testing.T) {
	rec := &recorder{}
	d := New(rec.record, 10*time.Millisecond)

	d.Call(1)
	require.Eventually(t, func() bool { return len(rec.snapshot()) == 1 }, time.Second, time.Millisecond)

	d.Call(2)
	require.Eventually(t, func() bool { return len(rec.snapshot()) == 2 }, time.Second, time.Millisecond)

	assert.Equal(t, []int{1, 2}, rec.snapshot())
}

func TestDebouncerDefaultDelay(t *testing.T) {
	d := New(func(int) {}, 0)
	assert.Equal(t, DefaultDelay, d.delay)
	assert.Equal(t, DefaultDelay*MaxWaitFactor, d.maxWait)
}
