package cache

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestKeysAreCaseInsensitive(t *testing.T) {
	c := New[string](10, time.Minute)
	c.Set("Vitalik.ETH", "0xd8dA6BF26964aF9D7eEd9e03E53415D37aA96045")

	v, ok := c.Get("vitalik.eth")
	assert.True(t, ok)
	assert.Equal(t, "0xd8dA6BF26964aF9D7eEd9e03E53415D37aA96045", v)

	c.Remove("VITALIK.eth")
	_, ok = c.Get("vitalik.eth")
	assert.False(t, ok)
}

func TestSizeBound(t *testing.T) {
	c := New[int](2, time.Minute)
	c.Set("a", 1)
	c.Set("b", 2)
	c.Set("c", 3)
	assert.Equal(t, 2, c.Len())
	_, ok := c.Get("a")
	assert.False(t, ok)
}

func TestEntriesExpire(t *testing.T) {
	c := New[int](2, 10*time.Millisecond)
	c.Set("a", 1)
	assert.Eventually(t, func() bool {
		_, ok := c.Get("a")
		return !ok
	}, time.Second, 5*time.Millisecond)
}

func TestDefaults(t *testing.T) {
	c := New[int](0, 0)
	c.Set("a", 1)
	assert.Equal(t, 1, c.Len())
	c.Purge()
	assert.Zero(t, c.Len())
}
