// Package debounce forwards the last value of a rapidly changing stream once
// it has stayed unchanged for a quiet window.
package debounce

import (
	"sync"
	"time"

	"k8s.io/utils/clock"
)

const DefaultWindow = 500 * time.Millisecond

// Debouncer is a single slot scheduler. Every Push replaces the pending value
// and restarts the window; only a value that survives the whole window is
// handed to the deliver callback. Intermediate values are dropped, not
// queued.
//
// deliver runs on the clock's timer goroutine (or on the caller of Flush) and
// must not call back into the Debouncer.
type Debouncer[T any] struct {
	clock   clock.WithDelayedExecution
	window  time.Duration
	deliver func(T)

	mu      sync.Mutex
	gen     uint64
	timer   clock.Timer
	pending bool
	value   T
	stopped bool

	// deliveries are serialized and never go back to an older generation
	deliverMu sync.Mutex
	delivered uint64
}

func New[T any](window time.Duration, deliver func(T)) *Debouncer[T] {
	return NewWithClock(clock.RealClock{}, window, deliver)
}

func NewWithClock[T any](c clock.WithDelayedExecution, window time.Duration, deliver func(T)) *Debouncer[T] {
	if window <= 0 {
		window = DefaultWindow
	}
	return &Debouncer[T]{
		clock:   c,
		window:  window,
		deliver: deliver,
	}
}

func (d *Debouncer[T]) Window() time.Duration {
	return d.window
}

// Push records v as the pending value and restarts the quiet window.
func (d *Debouncer[T]) Push(v T) {
	d.mu.Lock()
	if d.stopped {
		d.mu.Unlock()
		return
	}
	d.gen++
	gen := d.gen
	old := d.timer
	d.timer = nil
	d.value = v
	d.pending = true
	d.mu.Unlock()

	// timers are stopped and armed outside d.mu, the fake clock runs
	// callbacks while holding its own lock
	if old != nil {
		old.Stop()
	}
	t := d.clock.AfterFunc(d.window, func() { d.fire(gen) })

	d.mu.Lock()
	if d.gen != gen {
		d.mu.Unlock()
		t.Stop()
		return
	}
	d.timer = t
	d.mu.Unlock()
}

func (d *Debouncer[T]) fire(gen uint64) {
	d.mu.Lock()
	if d.gen != gen || !d.pending || d.stopped {
		d.mu.Unlock()
		return
	}
	v := d.value
	d.pending = false
	d.timer = nil
	d.mu.Unlock()

	d.emit(gen, v)
}

// emit hands v to deliver unless a newer generation was delivered since v
// was taken out of the slot.
func (d *Debouncer[T]) emit(gen uint64, v T) {
	d.deliverMu.Lock()
	defer d.deliverMu.Unlock()
	if gen <= d.delivered {
		return
	}
	d.delivered = gen
	d.deliver(v)
}

// Flush delivers the pending value right away, skipping what is left of the
// window. It reports whether a value was pending.
func (d *Debouncer[T]) Flush() bool {
	d.mu.Lock()
	if !d.pending || d.stopped {
		d.mu.Unlock()
		return false
	}
	d.gen++
	gen := d.gen
	v := d.value
	old := d.timer
	d.timer = nil
	d.pending = false
	d.mu.Unlock()

	if old != nil {
		old.Stop()
	}
	d.emit(gen, v)
	return true
}

// Pending reports whether a value is waiting for its window to elapse.
func (d *Debouncer[T]) Pending() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.pending
}

// Stop cancels the pending value without delivering it. Later calls to Push
// are ignored.
func (d *Debouncer[T]) Stop() {
	d.mu.Lock()
	d.stopped = true
	d.pending = false
	d.gen++
	old := d.timer
	d.timer = nil
	d.mu.Unlock()

	if old != nil {
		old.Stop()
	}
}
