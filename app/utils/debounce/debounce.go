package debounce

import (
	"sync"
	"time"
)

// DefaultDelay is the quiet period used when no delay is configured.
const DefaultDelay = 100 * time.Millisecond

// MaxWaitFactor bounds how long a sustained burst can postpone the
// trailing invocation: after delay*MaxWaitFactor since the first
// pending call, the function fires regardless of new calls.
const MaxWaitFactor = 5

// Debouncer coalesces a burst of Call invocations into a single
// trailing-edge invocation of fn with the most recent value. There is
// no leading-edge call. Safe for concurrent use.
type Debouncer[T any] struct {
	fn      func(T)
	delay   time.Duration
	maxWait time.Duration

	mu        sync.Mutex
	timer     *time.Timer
	latest    T
	pending   bool
	firstCall time.Time
}

// New returns a Debouncer invoking fn after a quiet period of delay.
// A non-positive delay falls back to DefaultDelay.
func New[T any](fn func(T), delay time.Duration) *Debouncer[T] {
	if delay <= 0 {
		delay = DefaultDelay
	}
	return &Debouncer[T]{
		fn:      fn,
		delay:   delay,
		maxWait: delay * MaxWaitFactor,
	}
}

// Call records v as the latest value and (re)arms the trailing timer.
// If the burst has already lasted maxWait, the invocation fires after
// whatever slice of maxWait remains instead of a full delay.
func (d *Debouncer[T]) Call(v T) {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.latest = v
	now := time.Now()
	if !d.pending {
		d.pending = true
		d.firstCall = now
	}

	wait := d.delay
	if remaining := d.maxWait - now.Sub(d.firstCall); remaining < wait {
		wait = remaining
		if wait < 0 {
			wait = 0
		}
	}

	if d.timer != nil {
		d.timer.Stop()
	}
	d.timer = time.AfterFunc(wait, d.fire)
}

func (d *Debouncer[T]) fire() {
	d.mu.Lock()
	if !d.pending {
		d.mu.Unlock()
		return
	}
	v := d.latest
	d.pending = false
	d.timer = nil
	d.mu.Unlock()

	d.fn(v)
}

// Cancel drops any pending invocation. Used on teardown so the
// function is not invoked against state that no longer exists.
func (d *Debouncer[T]) Cancel() {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
	d.pending = false
}

// Flush invokes the pending call immediately, if there is one.
func (d *Debouncer[T]) Flush() {
	d.mu.Lock()
	if !d.pending {
		d.mu.Unlock()
		return
	}
	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
	v := d.latest
	d.pending = false
	d.mu.Unlock()

	d.fn(v)
}
