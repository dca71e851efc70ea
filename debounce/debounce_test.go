package debounce

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	clocktesting "k8s.io/utils/clock/testing"
)

type recorder struct {
	mu     sync.Mutex
	values []string
}

func (r *recorder) deliver(v string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.values = append(r.values, v)
}

func (r *recorder) get() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string{}, r.values...)
}

func newTestDebouncer() (*Debouncer[string], *clocktesting.FakeClock, *recorder) {
	fc := clocktesting.NewFakeClock(time.Unix(0, 0))
	rec := &recorder{}
	return NewWithClock(fc, 500*time.Millisecond, rec.deliver), fc, rec
}

func TestOnlyStableValueIsDelivered(t *testing.T) {
	d, fc, rec := newTestDebouncer()

	for _, v := range []string{"a", "al", "ali", "alic", "alice.eth"} {
		d.Push(v)
		fc.Step(100 * time.Millisecond)
	}
	assert.Empty(t, rec.get(), "no intermediate values while typing faster than the window")
	assert.True(t, d.Pending())

	fc.Step(399 * time.Millisecond)
	assert.Empty(t, rec.get())

	fc.Step(time.Millisecond)
	assert.Equal(t, []string{"alice.eth"}, rec.get())
	assert.False(t, d.Pending())
}

func TestEachStableValueIsDeliveredOnce(t *testing.T) {
	d, fc, rec := newTestDebouncer()

	d.Push("a.eth")
	fc.Step(500 * time.Millisecond)
	fc.Step(time.Second)
	d.Push("b.eth")
	fc.Step(500 * time.Millisecond)

	assert.Equal(t, []string{"a.eth", "b.eth"}, rec.get())
}

func TestFlush(t *testing.T) {
	d, fc, rec := newTestDebouncer()

	assert.False(t, d.Flush())
	d.Push("bob.eth")
	require.True(t, d.Flush())
	assert.Equal(t, []string{"bob.eth"}, rec.get())

	// the superseded timer must not deliver a second time
	fc.Step(time.Second)
	assert.Equal(t, []string{"bob.eth"}, rec.get())
}

func TestOlderDeliveryAfterNewerIsDropped(t *testing.T) {
	d, _, rec := newTestDebouncer()

	// a timer that took "a.eth" out of the slot loses the race against a
	// Push and Flush of "b.eth"
	d.Push("a.eth")
	d.Push("b.eth")
	require.True(t, d.Flush())
	d.emit(1, "a.eth")

	assert.Equal(t, []string{"b.eth"}, rec.get())
}

func TestStop(t *testing.T) {
	d, fc, rec := newTestDebouncer()

	d.Push("x.eth")
	d.Stop()
	fc.Step(time.Second)
	d.Push("y.eth")
	fc.Step(time.Second)

	assert.Empty(t, rec.get())
	assert.False(t, d.Pending())
	assert.False(t, fc.HasWaiters())
}

func TestDefaultWindow(t *testing.T) {
	d := New(0, func(string) {})
	assert.Equal(t, DefaultWindow, d.Window())
}

func TestRealClock(t *testing.T) {
	rec := &recorder{}
	d := New(10*time.Millisecond, rec.deliver)
	d.Push("a")
	d.Push("b")
	assert.Eventually(t, func() bool {
		return len(rec.get()) == 1
	}, time.Second, time.Millisecond)
	assert.Equal(t, []string{"b"}, rec.get())
}
